package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"StockSeer/internal/config"
	"StockSeer/internal/history"
	"StockSeer/internal/ledger"
	"StockSeer/internal/notifier"
	"StockSeer/internal/pipeline"
	"StockSeer/internal/quote"
	"StockSeer/internal/scheduler"
	"StockSeer/internal/store"
)

func main() {
	log.SetFlags(log.LstdFlags | log.Lshortfile)
	log.Println("[INFO] StockSeer starting...")

	// Load config
	cfgPath := "configs/config.yaml"
	if v := os.Getenv("CONFIG_PATH"); v != "" {
		cfgPath = v
	}
	cfg, err := config.Load(cfgPath)
	if err != nil {
		log.Fatalf("[FATAL] load config: %v", err)
	}
	if err := cfg.Validate(); err != nil {
		log.Fatalf("[FATAL] config validation: %v", err)
	}

	// Init quote fetcher
	var fetcher quote.Fetcher
	if cfg.DataSource.APIKey != "" {
		fetcher = quote.NewTwelveDataFetcher(cfg.DataSource.BaseURL, cfg.DataSource.APIKey, cfg.DataSource.OutputSize, cfg.Proxy)
	} else {
		log.Println("[WARN] no API key configured, using mock quote source")
		fetcher = &quote.MockFetcher{}
	}
	log.Printf("[INFO] quote source: %s", fetcher.Name())

	// Init historical store
	hist, err := history.NewStore(cfg.Storage.HistoryDir)
	if err != nil {
		log.Fatalf("[FATAL] init history store: %v", err)
	}

	// Init prediction ledger
	led, err := ledger.NewLedger(cfg.Storage.PredictionsFile)
	if err != nil {
		log.Fatalf("[FATAL] init ledger: %v", err)
	}

	// Init subscription store
	db, err := store.NewSQLiteStore(cfg.Storage.SQLitePath)
	if err != nil {
		log.Fatalf("[FATAL] init subscription store: %v", err)
	}
	defer db.Close()

	// Init mail sink and notifier
	sink := notifier.NewSMTPSink(cfg.Mail.Host, cfg.Mail.Port, cfg.Mail.Username, cfg.Mail.Password, cfg.Mail.From)
	ntf := notifier.NewNotifier(db, sink)

	// Context for graceful shutdown
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Init pipeline and scheduler
	p := pipeline.New(fetcher, hist, led, db, ntf, cfg.Pipeline.FetchConcurrency)
	sched := scheduler.NewScheduler(ctx, p)
	if err := sched.Register(cfg.Schedule.DailyCron); err != nil {
		log.Fatalf("[FATAL] register cron trigger: %v", err)
	}
	sched.Start()
	defer sched.Stop()

	// Optional: run immediately on start
	if os.Getenv("RUN_ON_START") == "true" {
		log.Println("[INFO] RUN_ON_START enabled, executing pipeline now")
		go sched.RunNow()
	}

	log.Println("[INFO] StockSeer is running. Press Ctrl+C to stop.")

	// Wait for shutdown signal
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	<-sigCh

	log.Println("[INFO] shutdown signal received, stopping...")
	cancel()
	log.Println("[INFO] StockSeer stopped")
}
