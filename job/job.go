package job

import (
	"math"
	"time"

	"github.com/google/uuid"
)

// MaxOutputBytes bounds the stdout summary retained on a completed Job.
const MaxOutputBytes = 500

// MaxErrorBytes bounds the error message retained on a failed Job.
const MaxErrorBytes = 4000

// DefaultTimeout is used when a Spec omits Timeout.
const DefaultTimeout = 300 * time.Second

// Job is a durable record tracking one shell command through the
// claim/execute/finalize lifecycle.
//
// Job values returned by a store are snapshots. Mutating a field
// directly does not change persisted state; callers apply a Mark*
// transition and write the result back through the store.
type Job struct {
	Id      string
	Command string

	State      Status
	Attempts   uint32
	MaxRetries uint32
	Priority   int32
	Timeout    time.Duration

	RunAt       *time.Time
	NextRetryAt *time.Time

	CreatedAt   time.Time
	UpdatedAt   time.Time
	StartedAt   *time.Time
	CompletedAt *time.Time

	ErrorMessage string
	Output       string

	ExecutionTime *time.Duration
}

// Spec is the enqueue-time input contract (spec.md §6.1): either a
// fully structured record or just a Command, with everything else
// filled from Config defaults.
type Spec struct {
	Command    string
	Id         string
	MaxRetries *uint32
	Priority   *int32
	Timeout    *time.Duration
	RunAt      *time.Time
}

// Defaults supplies the fallback values New applies when a Spec field
// is omitted. It mirrors the Config keys max_retries and job_timeout.
type Defaults struct {
	MaxRetries uint32
	Timeout    time.Duration
}

// New builds a Pending Job from a Spec and a set of defaults. now is
// injected by the caller so construction stays deterministic and
// testable.
func New(spec Spec, defaults Defaults, now time.Time) *Job {
	id := spec.Id
	if id == "" {
		id = uuid.NewString()
	}
	maxRetries := defaults.MaxRetries
	if spec.MaxRetries != nil {
		maxRetries = *spec.MaxRetries
	}
	var priority int32
	if spec.Priority != nil {
		priority = *spec.Priority
	}
	timeout := defaults.Timeout
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	if spec.Timeout != nil {
		timeout = *spec.Timeout
	}
	return &Job{
		Id:         id,
		Command:    spec.Command,
		State:      Pending,
		MaxRetries: maxRetries,
		Priority:   priority,
		Timeout:    timeout,
		RunAt:      spec.RunAt,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
}

// Ready reports whether the job may currently be claimed: its status
// allows claiming and both NextRetryAt and RunAt (if set) have elapsed.
func (j *Job) Ready(now time.Time) bool {
	if !j.State.Claimable() {
		return false
	}
	if j.NextRetryAt != nil && j.NextRetryAt.After(now) {
		return false
	}
	if j.RunAt != nil && j.RunAt.After(now) {
		return false
	}
	return true
}

// ShouldRetry reports whether another attempt is permitted given
// Attempts and MaxRetries.
func (j *Job) ShouldRetry() bool {
	return j.Attempts < j.MaxRetries
}

// RetryDelay computes the exponential backoff delay for the attempt
// that was just recorded: base^attempts seconds (spec.md §4.4).
func RetryDelay(base int64, attempts uint32) time.Duration {
	if base < 1 {
		base = 1
	}
	seconds := math.Pow(float64(base), float64(attempts))
	return time.Duration(seconds * float64(time.Second))
}

// MarkProcessing transitions the job to Processing, recording
// StartedAt. Attempts is incremented by the claim itself (store-side,
// in the same UPDATE that sets Processing), not here.
func (j *Job) MarkProcessing(now time.Time) {
	j.State = Processing
	j.StartedAt = &now
	j.UpdatedAt = now
}

// MarkCompleted transitions the job to Completed, truncating output to
// MaxOutputBytes and computing ExecutionTime from StartedAt.
func (j *Job) MarkCompleted(now time.Time, output string) {
	if len(output) > MaxOutputBytes {
		output = output[:MaxOutputBytes]
	}
	j.State = Completed
	j.Output = output
	j.CompletedAt = &now
	j.UpdatedAt = now
	if j.StartedAt != nil {
		d := now.Sub(*j.StartedAt)
		j.ExecutionTime = &d
	}
}

// MarkForRetry records a failed attempt. If retries remain, the job
// becomes Failed with NextRetryAt set backoffBase^Attempts seconds out;
// otherwise it becomes Dead with NextRetryAt cleared.
func (j *Job) MarkForRetry(now time.Time, errMsg string, backoffBase int64) {
	if len(errMsg) > MaxErrorBytes {
		errMsg = errMsg[:MaxErrorBytes]
	}
	j.ErrorMessage = errMsg
	j.UpdatedAt = now
	if j.ShouldRetry() {
		j.State = Failed
		next := now.Add(RetryDelay(backoffBase, j.Attempts))
		j.NextRetryAt = &next
	} else {
		j.State = Dead
		j.NextRetryAt = nil
	}
}

// MarkDLQRetry resets a Dead job back to Pending, clearing Attempts and
// history relevant to retry accounting while preserving identity.
func (j *Job) MarkDLQRetry(now time.Time) {
	j.State = Pending
	j.Attempts = 0
	j.NextRetryAt = nil
	j.ErrorMessage = ""
	j.UpdatedAt = now
}
