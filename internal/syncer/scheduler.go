package syncer

import (
	"context"
	"log/slog"
	"time"

	"github.com/robfig/cron/v3"
)

// DefaultSyncSpec runs the watch-mode sync every six hours.
const DefaultSyncSpec = "@every 6h"

// syncTimeout bounds one scheduled sync run.
const syncTimeout = 5 * time.Minute

// Scheduler runs periodic sync exchanges in watch mode. Each run is bounded
// by its own timeout so a hung endpoint cannot pile up overlapping syncs.
type Scheduler struct {
	cron     *cron.Cron
	gateway  *Gateway
	onResult func(*SyncResult, error)
	spec     string
}

// SchedulerOption configures a Scheduler.
type SchedulerOption func(*Scheduler)

// WithSyncSpec overrides the cron spec for the periodic sync.
func WithSyncSpec(spec string) SchedulerOption {
	return func(s *Scheduler) { s.spec = spec }
}

// WithResultObserver registers a callback invoked after every sync attempt.
// A failed attempt still delivers the partial result, which may be nil.
// Used for metrics.
func WithResultObserver(fn func(*SyncResult, error)) SchedulerOption {
	return func(s *Scheduler) { s.onResult = fn }
}

// NewScheduler creates a watch-mode scheduler around the gateway.
func NewScheduler(gateway *Gateway, opts ...SchedulerOption) *Scheduler {
	s := &Scheduler{
		cron:    cron.New(),
		gateway: gateway,
		spec:    DefaultSyncSpec,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Start registers the periodic sync and begins running it. The first sync
// fires immediately rather than waiting a full interval.
func (s *Scheduler) Start(ctx context.Context) error {
	if _, err := s.cron.AddFunc(s.spec, func() { s.runSync(ctx) }); err != nil {
		return err
	}

	s.runSync(ctx)
	s.cron.Start()
	slog.Info("sync scheduler started", "spec", s.spec)
	return nil
}

// Stop halts the schedule and waits for any in-flight sync to finish.
func (s *Scheduler) Stop() {
	stopCtx := s.cron.Stop()
	<-stopCtx.Done()
	slog.Info("sync scheduler stopped")
}

func (s *Scheduler) runSync(ctx context.Context) {
	syncCtx, cancel := context.WithTimeout(ctx, syncTimeout)
	defer cancel()

	result, err := s.gateway.Sync(syncCtx)
	if err != nil {
		slog.Error("scheduled sync failed", "error", err)
	}

	if s.onResult != nil {
		s.onResult(result, err)
	}
}
