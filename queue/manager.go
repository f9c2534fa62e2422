package queue

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/romanqed/jobqd"
	"github.com/romanqed/jobqd/config"
	"github.com/romanqed/jobqd/job"
	"github.com/romanqed/jobqd/store"
)

// Manager is the composition root orchestration layer sits on: it
// turns a Spec into a durable Job, hands out claims, records
// finalization, and archives captured command output to disk
// (spec.md §6.3).
type Manager struct {
	store  store.Store
	cfg    *config.Store
	logDir string
}

// New builds a Manager. dataDir's logs subdirectory is created if
// missing.
func New(s store.Store, cfg *config.Store, dataDir string) (*Manager, error) {
	logDir := filepath.Join(dataDir, "logs")
	if err := os.MkdirAll(logDir, 0o755); err != nil {
		return nil, fmt.Errorf("jobqd: create log dir: %w", err)
	}
	return &Manager{store: s, cfg: cfg, logDir: logDir}, nil
}

// Enqueue persists a new Pending job built from spec, filling any
// field spec omits from the current config defaults.
func (m *Manager) Enqueue(ctx context.Context, spec job.Spec) (*job.Job, error) {
	if spec.Command == "" {
		return nil, jobqd.ErrEmptyCommand
	}
	if spec.RunAt != nil && spec.RunAt.IsZero() {
		return nil, jobqd.ErrInvalidTimestamp
	}
	maxRetries, err := m.cfg.MaxRetries(ctx)
	if err != nil {
		return nil, err
	}
	timeout, err := m.cfg.JobTimeout(ctx)
	if err != nil {
		return nil, err
	}
	j := job.New(spec, job.Defaults{MaxRetries: maxRetries, Timeout: timeout}, time.Now().UTC())
	if err := m.store.InsertJob(ctx, j); err != nil {
		return nil, err
	}
	return j, nil
}

// Claim atomically reserves the next eligible job, or returns
// (nil, nil) if the queue is empty.
func (m *Manager) Claim(ctx context.Context) (*job.Job, error) {
	return m.store.ClaimOne(ctx, time.Now().UTC())
}

// Complete finalizes j as Completed, persists output, and archives
// stdout/stderr to the log directory.
func (m *Manager) Complete(ctx context.Context, j *job.Job, stdout, stderr string) error {
	now := time.Now().UTC()
	j.MarkCompleted(now, stdout)
	if err := m.store.FinalizeJob(ctx, j); err != nil {
		return err
	}
	return m.archiveOutput(j.Id, now, stdout, stderr)
}

// Fail records a failed attempt, applying retry bookkeeping from the
// current backoff_base config value, and archives the captured
// output.
func (m *Manager) Fail(ctx context.Context, j *job.Job, stdout, stderr, errMsg string) error {
	now := time.Now().UTC()
	backoffBase, err := m.cfg.BackoffBase(ctx)
	if err != nil {
		return err
	}
	j.MarkForRetry(now, errMsg, backoffBase)
	if err := m.store.FinalizeJob(ctx, j); err != nil {
		return err
	}
	return m.archiveOutput(j.Id, now, stdout, stderr)
}

// archiveOutput writes <job id>.log under the manager's log
// directory, matching the header/section layout the original
// queuectl tool produced.
func (m *Manager) archiveOutput(id string, now time.Time, stdout, stderr string) error {
	path := filepath.Join(m.logDir, id+".log")
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("jobqd: archive output: %w", err)
	}
	defer f.Close()
	_, err = fmt.Fprintf(f,
		"=== Job Output Log ===\nJob ID: %s\nTimestamp: %s\n\n--- STDOUT ---\n%s\n\n--- STDERR ---\n%s\n",
		id, now.Format(time.RFC3339Nano), stdout, stderr)
	return err
}

// GetJob looks up a single job by id.
func (m *Manager) GetJob(ctx context.Context, id string) (*job.Job, error) {
	return m.store.GetJob(ctx, id)
}

// ListJobs lists jobs matching filter.
func (m *Manager) ListJobs(ctx context.Context, filter store.ListFilter) ([]*job.Job, error) {
	return m.store.ListJobs(ctx, filter)
}

// ListDLQ lists every Dead job.
func (m *Manager) ListDLQ(ctx context.Context) ([]*job.Job, error) {
	return m.store.ListJobs(ctx, store.ListFilter{State: job.Dead})
}

// RetryDLQJob resets a Dead job to Pending. It returns
// jobqd.ErrJobNotFound or jobqd.ErrNotDead if the precondition fails.
func (m *Manager) RetryDLQJob(ctx context.Context, id string) (*job.Job, error) {
	return m.store.RetryDeadJob(ctx, id, time.Now().UTC())
}

// Stats returns the job count grouped by state.
func (m *Manager) Stats(ctx context.Context) (map[job.Status]int64, error) {
	return m.store.CountByState(ctx)
}

// Metrics returns the aggregate execution metrics described in
// spec.md §6.6.
func (m *Manager) Metrics(ctx context.Context) (store.Metrics, error) {
	return m.store.AggregateMetrics(ctx, time.Now().UTC())
}
