package pipeline

import (
	"context"
	"log"
	"sync"
	"time"

	"github.com/google/uuid"

	"StockSeer/internal/forecast"
	"StockSeer/internal/history"
	"StockSeer/internal/ledger"
	"StockSeer/internal/model"
	"StockSeer/internal/notifier"
	"StockSeer/internal/quote"
	"StockSeer/internal/store"
)

// Pipeline runs the three-stage prediction chain: fetch every symbol's
// recent history, fit and predict per symbol, then mail subscriber digests.
// Stages are separated by hard barriers; a stage starts only after the
// previous one has attempted every unit of work.
type Pipeline struct {
	Fetcher     quote.Fetcher
	History     *history.Store
	Ledger      *ledger.Ledger
	Resolver    store.Resolver
	Notifier    *notifier.Notifier
	Concurrency int
}

func New(fetcher quote.Fetcher, hist *history.Store, led *ledger.Ledger, resolver store.Resolver, n *notifier.Notifier, concurrency int) *Pipeline {
	if concurrency <= 0 {
		concurrency = 4
	}
	return &Pipeline{
		Fetcher:     fetcher,
		History:     hist,
		Ledger:      led,
		Resolver:    resolver,
		Notifier:    n,
		Concurrency: concurrency,
	}
}

// Run executes one full pipeline pass. Per-symbol and per-subscriber
// failures are contained and reported; only an unreachable subscription
// store stops a stage. There is no rollback: a partial run leaves whatever
// history and ledger state it produced, and the next trigger starts fresh.
func (p *Pipeline) Run(ctx context.Context) *model.RunReport {
	report := &model.RunReport{
		RunID:     uuid.NewString(),
		StartedAt: time.Now(),
	}
	defer func() {
		report.FinishedAt = time.Now()
		log.Printf("[INFO] run %s done in %s: fetched=%d/%d trained=%d/%d notified=%d/%d",
			report.RunID, report.FinishedAt.Sub(report.StartedAt).Round(time.Millisecond),
			report.Fetched, report.Fetched+len(report.FetchFailed),
			report.Trained, report.Trained+len(report.TrainFailed),
			report.Notified, report.Notified+len(report.NotifyFailed))
	}()

	symbols, err := p.Resolver.ListSymbols()
	if err != nil {
		log.Printf("[ERROR] run %s: list symbols: %v", report.RunID, err)
		report.ResolverErr = err.Error()
		return report
	}

	log.Printf("[INFO] run %s: stage %s, %d symbols", report.RunID, model.StageFetching, len(symbols))
	p.fetchStage(symbols, report)
	if ctx.Err() != nil {
		return report
	}

	log.Printf("[INFO] run %s: stage %s", report.RunID, model.StageTraining)
	records := p.trainStage(report)
	if ctx.Err() != nil {
		return report
	}

	log.Printf("[INFO] run %s: stage %s, %d predictions", report.RunID, model.StageNotifying, len(records))
	p.notifyStage(records, report)

	log.Printf("[INFO] run %s: stage %s", report.RunID, model.StageDone)
	return report
}

type fetchResult struct {
	symbol string
	err    error
}

// fetchStage fans out over the symbol universe with a bounded worker pool
// and blocks until every symbol has been attempted. A failed fetch is
// logged and leaves any prior snapshot for that symbol untouched.
func (p *Pipeline) fetchStage(symbols []string, report *model.RunReport) {
	jobs := make(chan string, len(symbols))
	for _, s := range symbols {
		jobs <- s
	}
	close(jobs)

	results := make(chan fetchResult, len(symbols))
	var wg sync.WaitGroup
	workers := p.Concurrency
	if workers > len(symbols) {
		workers = len(symbols)
	}
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for symbol := range jobs {
				results <- fetchResult{symbol: symbol, err: p.fetchOne(symbol)}
			}
		}()
	}
	wg.Wait()
	close(results)

	for r := range results {
		if r.err != nil {
			log.Printf("[ERROR] fetch %s: %v", r.symbol, r.err)
			report.FetchFailed = append(report.FetchFailed, model.UnitFailure{Unit: r.symbol, Reason: r.err.Error()})
			continue
		}
		report.Fetched++
	}
}

func (p *Pipeline) fetchOne(symbol string) error {
	series, err := p.Fetcher.FetchDailySeries(symbol)
	if err != nil {
		return err
	}
	return p.History.Write(series)
}

// trainStage walks every symbol with a snapshot on disk, fits and predicts
// sequentially, and buffers the records in memory. The buffer is flushed to
// the ledger in one append at the end of the stage, so ledger writes never
// race within a run.
func (p *Pipeline) trainStage(report *model.RunReport) []model.PredictionRecord {
	symbols, err := p.History.Symbols()
	if err != nil {
		log.Printf("[ERROR] list history: %v", err)
		return nil
	}

	var records []model.PredictionRecord
	for _, symbol := range symbols {
		series, err := p.History.Read(symbol)
		if err != nil {
			log.Printf("[ERROR] train %s: %v", symbol, err)
			report.TrainFailed = append(report.TrainFailed, model.UnitFailure{Unit: symbol, Reason: err.Error()})
			continue
		}
		rec, err := forecast.Predict(series)
		if err != nil {
			log.Printf("[ERROR] train %s: %v", symbol, err)
			report.TrainFailed = append(report.TrainFailed, model.UnitFailure{Unit: symbol, Reason: err.Error()})
			continue
		}
		records = append(records, rec)
		report.Trained++
	}

	if err := p.Ledger.AppendBatch(records); err != nil {
		log.Printf("[ERROR] flush ledger: %v", err)
		for _, r := range records {
			report.TrainFailed = append(report.TrainFailed, model.UnitFailure{Unit: r.Symbol, Reason: err.Error()})
		}
		report.Trained = 0
		return nil
	}
	return records
}

func (p *Pipeline) notifyStage(records []model.PredictionRecord, report *model.RunReport) {
	sent, failures, err := p.Notifier.NotifyAll(records)
	if err != nil {
		log.Printf("[ERROR] notify stage aborted: %v", err)
		report.ResolverErr = err.Error()
		return
	}
	report.Notified = sent
	report.NotifyFailed = failures
}
