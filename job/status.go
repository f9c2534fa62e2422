package job

import "fmt"

// Status represents the current lifecycle state of a Job.
//
// The state machine is:
//
//	Pending    -> Processing
//	Processing -> Completed
//	Processing -> Failed      (attempts < max_retries, waits on NextRetryAt)
//	Processing -> Dead        (attempts >= max_retries)
//	Failed     -> Processing  (claimed again once NextRetryAt elapses)
//	Dead       -> Pending     (operator-initiated DLQ retry)
//
// Unknown is reserved as a zero value and may be used to indicate an
// unspecified or invalid state in filtering contexts.
type Status uint8

const (
	// Unknown represents an unspecified or invalid job state.
	// It is the zero value of Status.
	Unknown Status = iota

	// Pending indicates the job is eligible for claiming. A Pending job
	// may have a future RunAt, delaying its first execution.
	Pending

	// Processing indicates the job has been claimed by a worker and is
	// currently running. StartedAt is set while in this state.
	Processing

	// Completed indicates successful execution. Terminal.
	Completed

	// Failed indicates an attempt ended in error but retries remain.
	// The job becomes eligible for re-claim once NextRetryAt elapses.
	Failed

	// Dead indicates attempts are exhausted. Terminal unless explicitly
	// requeued through a DLQ retry.
	Dead
)

func statusToString(status Status) string {
	switch status {
	case Pending:
		return "pending"
	case Processing:
		return "processing"
	case Completed:
		return "completed"
	case Failed:
		return "failed"
	case Dead:
		return "dead"
	default:
		return "unknown"
	}
}

func statusFromString(status string) (Status, error) {
	switch status {
	case "pending":
		return Pending, nil
	case "processing":
		return Processing, nil
	case "completed":
		return Completed, nil
	case "failed":
		return Failed, nil
	case "dead":
		return Dead, nil
	case "unknown":
		return Unknown, nil
	default:
		return 0, fmt.Errorf("job: unknown status %q", status)
	}
}

// ParseStatus converts a string representation of a status into a
// Status value. Recognized values are "pending", "processing",
// "completed", "failed", "dead" and "unknown". An error is returned for
// unrecognized strings.
func ParseStatus(s string) (Status, error) {
	return statusFromString(s)
}

// MarshalText implements encoding.TextMarshaler.
func (s Status) MarshalText() ([]byte, error) {
	return []byte(statusToString(s)), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (s *Status) UnmarshalText(text []byte) error {
	status, err := statusFromString(string(text))
	if err != nil {
		return err
	}
	*s = status
	return nil
}

// String returns the canonical string representation of the status.
func (s Status) String() string {
	return statusToString(s)
}

// Terminal reports whether the status is one from which no further
// worker-driven transition occurs without an explicit operator action.
func (s Status) Terminal() bool {
	return s == Completed || s == Dead
}

// Claimable reports whether a job in this status may be selected by
// Store.ClaimOne, subject to its scheduling fields.
func (s Status) Claimable() bool {
	return s == Pending || s == Failed
}
