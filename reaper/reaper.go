package reaper

import (
	"context"
	"log/slog"
	"time"

	"github.com/romanqed/jobqd/config"
	"github.com/romanqed/jobqd/internal"
	"github.com/romanqed/jobqd/store"
)

// Config defines the scheduling parameters for a ReaperWorker.
//
// Interval controls how often orphan detection runs. Grace is added
// to a job's StartedAt+Timeout deadline before it is considered
// orphaned, absorbing clock skew between the worker that claimed it
// and the process running the reaper.
type Config struct {
	Interval time.Duration
	Grace    time.Duration
}

// ReaperWorker periodically reclaims Processing jobs abandoned by a
// worker that crashed or was killed before finalizing them.
//
// ReaperWorker does not participate in job execution; it only
// transitions orphaned rows back into the normal retry/DLQ flow.
//
// ReaperWorker has the same strict lifecycle as Worker: Start may
// only be called once, and Stop waits for the in-flight sweep to
// finish or the timeout to expire.
type ReaperWorker struct {
	internal.Lifecycle
	store    store.Store
	cfg      *config.Store
	task     internal.TimerTask
	interval time.Duration
	grace    time.Duration
	log      *slog.Logger
}

// New creates a ReaperWorker using the provided store and config.
func New(s store.Store, cfg *config.Store, c Config, log *slog.Logger) *ReaperWorker {
	return &ReaperWorker{store: s, cfg: cfg, interval: c.Interval, grace: c.Grace, log: log}
}

func (r *ReaperWorker) reap(ctx context.Context) {
	backoffBase, err := r.cfg.BackoffBase(ctx)
	if err != nil {
		r.log.Error("cannot read backoff_base", "err", err)
		return
	}
	count, err := r.store.ReapOrphans(ctx, time.Now().UTC(), r.grace, backoffBase)
	if err != nil {
		r.log.Error("error while reaping orphans", "err", err)
		return
	}
	if count > 0 {
		r.log.Info("reaped orphaned jobs", "count", count)
	}
}

// Start begins periodic orphan reclamation. It returns
// internal.ErrDoubleStarted if already running.
func (r *ReaperWorker) Start(ctx context.Context) error {
	if err := r.TryStart(); err != nil {
		return err
	}
	r.task.Start(ctx, r.reap, r.interval)
	return nil
}

// Stop terminates the sweep loop, waiting up to timeout for any
// in-flight sweep to finish.
func (r *ReaperWorker) Stop(timeout time.Duration) error {
	return r.TryStop(timeout, r.task.Stop)
}
