// Package scheduler drives the periodic sync of all active integrations.
package scheduler

import (
	"context"
	"time"

	"github.com/rs/zerolog"
)

// SyncRunner runs one batch over all active integrations
type SyncRunner interface {
	SyncAll(ctx context.Context)
}

// Scheduler re-runs SyncAll on a fixed interval until the context is cancelled
type Scheduler struct {
	runner   SyncRunner
	interval time.Duration
	logger   zerolog.Logger
}

// New creates a scheduler
func New(runner SyncRunner, interval time.Duration, logger zerolog.Logger) *Scheduler {
	return &Scheduler{
		runner:   runner,
		interval: interval,
		logger:   logger,
	}
}

// Run blocks, firing a batch every interval. Call it from its own goroutine.
func (s *Scheduler) Run(ctx context.Context) {
	s.logger.Info().Dur("interval", s.interval).Msg("Sync scheduler started")

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			s.logger.Info().Msg("Sync scheduler stopped")
			return
		case <-ticker.C:
			s.runner.SyncAll(ctx)
		}
	}
}
