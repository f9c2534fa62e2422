package jobqd

import "errors"

var (
	// ErrDuplicateID is returned by store.Store.InsertJob when the
	// supplied Job.Id already exists.
	ErrDuplicateID = errors.New("jobqd: duplicate job id")

	// ErrJobNotFound is returned when an operation references a job id
	// that does not exist.
	ErrJobNotFound = errors.New("jobqd: job not found")

	// ErrClaimLost is returned when a state transition expected the job
	// to still be in Processing (owned by the caller) but the
	// underlying row had already moved on — e.g. a concurrent claim, a
	// reaper sweep, or a double finalize.
	ErrClaimLost = errors.New("jobqd: claim lost")

	// ErrNotDead is returned by a DLQ retry attempted on a job that is
	// not currently Dead. The record is left unmodified.
	ErrNotDead = errors.New("jobqd: job is not dead")

	// ErrBadStatus is returned by store.Store.Clean when asked to purge
	// a non-terminal status; retention.RetentionWorker logs it.
	ErrBadStatus = errors.New("jobqd: status is not terminal")

	// ErrEmptyCommand is returned when a Spec has no Command.
	ErrEmptyCommand = errors.New("jobqd: command must not be empty")

	// ErrInvalidTimestamp is returned by queue.Manager.Enqueue when a
	// Spec's RunAt is the zero time.Time rather than a real instant or
	// an omitted pointer.
	ErrInvalidTimestamp = errors.New("jobqd: invalid timestamp")
)
