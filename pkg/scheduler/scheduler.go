// Package scheduler runs periodic background jobs on cron expressions.
package scheduler

import (
	"context"
	"fmt"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/ghuser/vetclinic/pkg/logger"
)

// Job is one scheduled unit of work. It must honour ctx cancellation.
type Job func(ctx context.Context) error

// Scheduler wraps cron.Cron with structured logging and per-run timeouts.
// Schedules are evaluated in UTC, and a run that is still in progress when
// the next tick fires causes that tick to be skipped.
type Scheduler struct {
	cron *cron.Cron
	log  logger.Logger
}

// New returns a stopped Scheduler.
func New(log logger.Logger) *Scheduler {
	return &Scheduler{
		cron: cron.New(
			cron.WithLocation(time.UTC),
			cron.WithChain(cron.SkipIfStillRunning(cron.DiscardLogger)),
		),
		log: log,
	}
}

// Add registers job under name on a standard 5-field cron expression (or a
// descriptor such as "@every 1h"). Each run is bounded by timeout.
func (s *Scheduler) Add(name, schedule string, timeout time.Duration, job Job) error {
	_, err := s.cron.AddFunc(schedule, func() {
		ctx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()

		start := time.Now()
		s.log.InfoContext(ctx, "scheduled job started", "job", name)
		if err := job(ctx); err != nil {
			s.log.ErrorContext(ctx, "scheduled job failed", "job", name, "error", err)
			return
		}
		s.log.InfoContext(ctx, "scheduled job finished", "job", name, "duration_ms", time.Since(start).Milliseconds())
	})
	if err != nil {
		return fmt.Errorf("schedule %s %q: %w", name, schedule, err)
	}
	s.log.Info("job scheduled", "job", name, "schedule", schedule)
	return nil
}

// Start begins running jobs in the background.
func (s *Scheduler) Start() {
	s.cron.Start()
}

// Stop halts scheduling and waits for running jobs to finish or ctx to expire.
func (s *Scheduler) Stop(ctx context.Context) {
	done := s.cron.Stop()
	select {
	case <-done.Done():
	case <-ctx.Done():
		s.log.Warn("scheduler stop timed out with jobs still running")
	}
}
