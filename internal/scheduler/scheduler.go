package scheduler

import (
	"context"
	"fmt"
	"log"

	"github.com/robfig/cron/v3"

	"StockSeer/internal/pipeline"
)

// Scheduler triggers pipeline runs on a cron calendar. It is the opaque
// periodic caller; the pipeline owns all sequencing within a run.
type Scheduler struct {
	Cron     *cron.Cron
	Pipeline *pipeline.Pipeline
	Ctx      context.Context
}

// NewScheduler creates a new Scheduler.
func NewScheduler(ctx context.Context, p *pipeline.Pipeline) *Scheduler {
	return &Scheduler{
		Cron:     cron.New(cron.WithSeconds()),
		Pipeline: p,
		Ctx:      ctx,
	}
}

// Register adds the daily pipeline trigger.
func (s *Scheduler) Register(dailyCron string) error {
	if _, err := s.Cron.AddFunc(dailyCron, s.runPipeline); err != nil {
		return fmt.Errorf("register daily pipeline: %w", err)
	}
	return nil
}

// Start starts the cron scheduler.
func (s *Scheduler) Start() {
	s.Cron.Start()
	log.Println("[INFO] scheduler started")
}

// Stop stops the cron scheduler gracefully.
func (s *Scheduler) Stop() {
	s.Cron.Stop()
	log.Println("[INFO] scheduler stopped")
}

// RunNow executes one pipeline run immediately (manual trigger / RUN_ON_START).
func (s *Scheduler) RunNow() {
	s.runPipeline()
}

func (s *Scheduler) runPipeline() {
	log.Println("[INFO] triggering pipeline run")
	s.Pipeline.Run(s.Ctx)
}
