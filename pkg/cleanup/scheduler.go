package cleanup

import (
	"context"
	"log/slog"
	"time"
)

// Reporter receives the result of each scheduled run. Implemented by the
// notification manager wiring in cmd; a nil reporter disables reports.
type Reporter interface {
	Report(result RunResult) error
}

// Scheduler runs the cleanup service on a recurring interval. State is not
// carried between runs; a failed run simply waits for the next tick.
type Scheduler struct {
	service  *CleanupService
	interval time.Duration
	reporter Reporter
}

// SchedulerOption is a functional option for configuring Scheduler
type SchedulerOption func(*Scheduler)

// WithInterval sets how often the job runs. Default is 24 hours.
func WithInterval(interval time.Duration) SchedulerOption {
	return func(s *Scheduler) {
		s.interval = interval
	}
}

// WithReporter sets the per-run report destination
func WithReporter(reporter Reporter) SchedulerOption {
	return func(s *Scheduler) {
		s.reporter = reporter
	}
}

// NewScheduler creates a new Scheduler
func NewScheduler(service *CleanupService, opts ...SchedulerOption) *Scheduler {
	s := &Scheduler{
		service:  service,
		interval: 24 * time.Hour,
	}

	for _, opt := range opts {
		opt(s)
	}

	return s
}

// Start runs the scheduler loop until the context is cancelled. The first
// run happens after one full interval, not at startup, so a crash-looping
// process does not hammer the provider.
func (s *Scheduler) Start(ctx context.Context) {
	slog.Info("Cleanup scheduler started", "interval", s.interval)

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			slog.Info("Cleanup scheduler stopped")
			return
		case <-ticker.C:
			s.runOnce(ctx)
		}
	}
}

func (s *Scheduler) runOnce(ctx context.Context) {
	result := s.service.Run(ctx)

	if !result.Success {
		slog.Error("Scheduled cleanup run failed", "error", result.Error)
	}

	if s.reporter != nil {
		if err := s.reporter.Report(result); err != nil {
			slog.Error("Failed to send cleanup report", "error", err)
		}
	}
}
