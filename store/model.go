package store

import (
	"time"

	"github.com/uptrace/bun"

	"github.com/romanqed/jobqd/job"
)

type jobModel struct {
	bun.BaseModel `bun:"table:jobs"`

	Id      string `bun:"id,pk"`
	Command string `bun:"command,notnull"`

	State      job.Status `bun:"state,notnull,default:1"`
	Attempts   uint32     `bun:"attempts,notnull,default:0"`
	MaxRetries uint32     `bun:"max_retries,notnull,default:0"`
	Priority   int32      `bun:"priority,notnull,default:0"`
	// TimeoutSeconds stores job.Job.Timeout truncated to whole seconds,
	// matching spec.md §3's "positive int seconds" field.
	TimeoutSeconds int64 `bun:"timeout_seconds,notnull"`

	RunAt       *time.Time `bun:"run_at,nullzero"`
	NextRetryAt *time.Time `bun:"next_retry_at,nullzero"`

	CreatedAt time.Time  `bun:"created_at,notnull"`
	UpdatedAt time.Time  `bun:"updated_at,notnull"`
	StartedAt *time.Time `bun:"started_at,nullzero"`

	CompletedAt *time.Time `bun:"completed_at,nullzero"`

	ErrorMessage string `bun:"error_message"`
	Output       string `bun:"output"`

	// ExecutionSeconds stores job.Job.ExecutionTime as fractional
	// seconds, matching spec.md §3's "optional float seconds" field.
	ExecutionSeconds *float64 `bun:"execution_seconds,nullzero"`
}

func fromJob(j *job.Job) *jobModel {
	m := &jobModel{
		Id:             j.Id,
		Command:        j.Command,
		State:          j.State,
		Attempts:       j.Attempts,
		MaxRetries:     j.MaxRetries,
		Priority:       j.Priority,
		TimeoutSeconds: int64(j.Timeout / time.Second),
		RunAt:          j.RunAt,
		NextRetryAt:    j.NextRetryAt,
		CreatedAt:      j.CreatedAt,
		UpdatedAt:      j.UpdatedAt,
		StartedAt:      j.StartedAt,
		CompletedAt:    j.CompletedAt,
		ErrorMessage:   j.ErrorMessage,
		Output:         j.Output,
	}
	if j.ExecutionTime != nil {
		secs := j.ExecutionTime.Seconds()
		m.ExecutionSeconds = &secs
	}
	return m
}

func (m *jobModel) toJob() *job.Job {
	j := &job.Job{
		Id:           m.Id,
		Command:      m.Command,
		State:        m.State,
		Attempts:     m.Attempts,
		MaxRetries:   m.MaxRetries,
		Priority:     m.Priority,
		Timeout:      time.Duration(m.TimeoutSeconds) * time.Second,
		RunAt:        m.RunAt,
		NextRetryAt:  m.NextRetryAt,
		CreatedAt:    m.CreatedAt,
		UpdatedAt:    m.UpdatedAt,
		StartedAt:    m.StartedAt,
		CompletedAt:  m.CompletedAt,
		ErrorMessage: m.ErrorMessage,
		Output:       m.Output,
	}
	if m.ExecutionSeconds != nil {
		d := time.Duration(*m.ExecutionSeconds * float64(time.Second))
		j.ExecutionTime = &d
	}
	return j
}

func toJobs(models []jobModel) []*job.Job {
	ret := make([]*job.Job, len(models))
	for i := range models {
		ret[i] = models[i].toJob()
	}
	return ret
}

type configModel struct {
	bun.BaseModel `bun:"table:config"`

	Key   string `bun:"key,pk"`
	Value string `bun:"value,notnull"`
}
