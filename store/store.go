package store

import (
	"context"
	"time"

	"github.com/uptrace/bun"

	"github.com/romanqed/jobqd/job"
)

// ListFilter narrows ListJobs. A zero State means no status filter; a
// nil Priority means no priority filter; a non-positive Limit means no
// LIMIT clause.
type ListFilter struct {
	State    job.Status
	Priority *int32
	Limit    int
}

// Metrics mirrors spec.md §6.6's metrics() contract.
type Metrics struct {
	AvgExecutionTime time.Duration
	SuccessRate      float64
	JobsLast24h      int64
	PriorityDist     map[int32]int64
}

// Store is the transactional persistence contract jobqd's orchestration
// layer is built on (spec.md §4.1). Implementations must make ClaimOne
// linearizable: no two concurrent calls may return the same job.
type Store interface {
	ConfigStore

	InsertJob(ctx context.Context, j *job.Job) error
	UpdateJob(ctx context.Context, j *job.Job) error

	// FinalizeJob persists j's Completed/Failed/Dead transition, but
	// only if the row is still Processing. It returns
	// jobqd.ErrClaimLost if a concurrent reaper sweep (or a double
	// finalize) already moved the job on.
	FinalizeJob(ctx context.Context, j *job.Job) error

	GetJob(ctx context.Context, id string) (*job.Job, error)
	ListJobs(ctx context.Context, filter ListFilter) ([]*job.Job, error)

	// ClaimOne atomically selects and transitions the next eligible job
	// to Processing, or returns (nil, nil) if none is eligible.
	ClaimOne(ctx context.Context, now time.Time) (*job.Job, error)

	CountByState(ctx context.Context) (map[job.Status]int64, error)
	AggregateMetrics(ctx context.Context, now time.Time) (Metrics, error)

	// RetryDeadJob resets a Dead job to Pending (spec.md §4.4 DLQ
	// retry). It returns ErrJobNotFound or ErrNotDead without mutating
	// anything if the precondition fails.
	RetryDeadJob(ctx context.Context, id string, now time.Time) (*job.Job, error)

	// ReapOrphans transitions Processing jobs whose lease
	// (StartedAt+Timeout+grace) has elapsed back to Failed or Dead,
	// applying normal retry bookkeeping. It returns the count reaped.
	ReapOrphans(ctx context.Context, now time.Time, grace time.Duration, backoffBase int64) (int64, error)

	// Clean deletes terminal jobs matching status (job.Unknown means
	// both Completed and Dead) and, if before is non-nil, whose
	// UpdatedAt is <= *before. It returns ErrBadStatus for a
	// non-terminal status.
	Clean(ctx context.Context, status job.Status, before *time.Time) (int64, error)
}

type bunStore struct {
	db *bun.DB
}

// New wraps db in a Store. db must already have had InitDB applied.
func New(db *bun.DB) Store {
	return &bunStore{db: db}
}
