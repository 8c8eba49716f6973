package reminder

import (
	"context"
	"log/slog"
	"time"

	"github.com/robfig/cron/v3"
)

// DefaultCheckSpec runs the watch-mode check once an hour.
const DefaultCheckSpec = "@every 1h"

// checkTimeout bounds one scheduled check run.
const checkTimeout = 5 * time.Minute

// Scheduler runs periodic reminder checks in watch mode. Each run is bounded
// by its own timeout so a stuck store cannot pile up overlapping checks.
type Scheduler struct {
	cron     *cron.Cron
	checker  *Checker
	onResult func(*CheckResult)
	spec     string
}

// SchedulerOption configures a Scheduler.
type SchedulerOption func(*Scheduler)

// WithCheckSpec overrides the cron spec for the periodic check.
func WithCheckSpec(spec string) SchedulerOption {
	return func(s *Scheduler) { s.spec = spec }
}

// WithResultObserver registers a callback invoked after every successful
// check. Used for metrics.
func WithResultObserver(fn func(*CheckResult)) SchedulerOption {
	return func(s *Scheduler) { s.onResult = fn }
}

// NewScheduler creates a watch-mode scheduler around the checker.
func NewScheduler(checker *Checker, opts ...SchedulerOption) *Scheduler {
	s := &Scheduler{
		cron:    cron.New(),
		checker: checker,
		spec:    DefaultCheckSpec,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Start registers the periodic check and begins running it. The first check
// fires immediately rather than waiting a full interval.
func (s *Scheduler) Start(ctx context.Context) error {
	if _, err := s.cron.AddFunc(s.spec, func() { s.runCheck(ctx) }); err != nil {
		return err
	}

	s.runCheck(ctx)
	s.cron.Start()
	slog.Info("reminder scheduler started", "spec", s.spec)
	return nil
}

// Stop halts the schedule and waits for any in-flight check to finish.
func (s *Scheduler) Stop() {
	stopCtx := s.cron.Stop()
	<-stopCtx.Done()
	slog.Info("reminder scheduler stopped")
}

func (s *Scheduler) runCheck(ctx context.Context) {
	checkCtx, cancel := context.WithTimeout(ctx, checkTimeout)
	defer cancel()

	result, err := s.checker.CheckUpcoming(checkCtx)
	if err != nil {
		slog.Error("scheduled reminder check failed", "error", err)
		if s.onResult != nil {
			s.onResult(nil)
		}
		return
	}

	if s.onResult != nil {
		s.onResult(result)
	}
}
