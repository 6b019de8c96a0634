// Package scheduler wires up the cron job that periodically triggers an
// ingestion run.
package scheduler

import (
	"context"
	"fmt"
	"log"

	"github.com/robfig/cron/v3"

	"github.com/salarvand/job-offer-aggregator/internal/ingest"
)

// Scheduler wraps robfig/cron and drives the ingestion loop. It owns the
// schedule; the orchestrator itself knows nothing about timing.
type Scheduler struct {
	cron *cron.Cron
	orch *ingest.Orchestrator
	spec string // cron spec, e.g. "@every 1m"
}

// New creates a Scheduler that fires every intervalMinutes minutes.
func New(orch *ingest.Orchestrator, intervalMinutes int) *Scheduler {
	return &Scheduler{
		cron: cron.New(cron.WithLogger(cron.DefaultLogger)),
		orch: orch,
		spec: fmt.Sprintf("@every %dm", intervalMinutes),
	}
}

// Start registers the job and starts the scheduler. Also runs one ingestion
// cycle immediately so the store is populated without waiting for the first
// tick.
func (s *Scheduler) Start(ctx context.Context) error {
	_, err := s.cron.AddFunc(s.spec, func() {
		s.orch.Run(ctx)
	})
	if err != nil {
		return fmt.Errorf("cron.AddFunc: %w", err)
	}

	s.cron.Start()
	log.Printf("[scheduler] Cron started — spec: %s", s.spec)

	// Run immediately on startup (non-blocking)
	go s.orch.Run(ctx)

	return nil
}

// Stop gracefully shuts down the scheduler.
func (s *Scheduler) Stop() {
	s.cron.Stop()
	log.Println("[scheduler] Cron stopped")
}
