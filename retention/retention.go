package retention

import (
	"context"
	"log/slog"
	"time"

	"github.com/romanqed/jobqd/internal"
	"github.com/romanqed/jobqd/job"
	"github.com/romanqed/jobqd/store"
)

// Config defines the scheduling and filtering parameters for a
// RetentionWorker.
//
// Status restricts deletion to one terminal state, or job.Unknown for
// both Completed and Dead.
//
// Interval defines how often the purge runs.
//
// If MaxAge is positive, deletion is restricted to jobs whose
// UpdatedAt is older than now - MaxAge. A zero MaxAge purges every
// matching terminal job regardless of age.
type Config struct {
	Status   job.Status
	Interval time.Duration
	MaxAge   time.Duration
}

// RetentionWorker periodically purges old terminal jobs from the
// store.
//
// RetentionWorker does not participate in job processing and does not
// affect claim eligibility.
//
// RetentionWorker has the same strict lifecycle as the other
// background components: Start may only be called once, and Stop
// waits for an in-flight purge to finish or the timeout to expire.
type RetentionWorker struct {
	internal.Lifecycle
	store    store.Store
	task     internal.TimerTask
	log      *slog.Logger
	status   job.Status
	interval time.Duration
	maxAge   time.Duration
}

// New creates a RetentionWorker using the provided store and
// configuration.
func New(s store.Store, c Config, log *slog.Logger) *RetentionWorker {
	return &RetentionWorker{store: s, log: log, status: c.Status, interval: c.Interval, maxAge: c.MaxAge}
}

func (rw *RetentionWorker) before() *time.Time {
	if rw.maxAge <= 0 {
		return nil
	}
	cutoff := time.Now().UTC().Add(-rw.maxAge)
	return &cutoff
}

func (rw *RetentionWorker) purge(ctx context.Context) {
	count, err := rw.store.Clean(ctx, rw.status, rw.before())
	if err != nil {
		rw.log.Error("error while purging jobs", "err", err)
		return
	}
	rw.log.Info("purged terminal jobs", "count", count)
}

// Start begins periodic execution of the purge task. It returns
// internal.ErrDoubleStarted if already running.
func (rw *RetentionWorker) Start(ctx context.Context) error {
	if err := rw.TryStart(); err != nil {
		return err
	}
	rw.task.Start(ctx, rw.purge, rw.interval)
	return nil
}

// Stop terminates the background purge task, waiting up to timeout
// for it to finish.
func (rw *RetentionWorker) Stop(timeout time.Duration) error {
	return rw.TryStop(timeout, rw.task.Stop)
}
