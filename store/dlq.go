package store

import (
	"context"
	"time"

	"github.com/romanqed/jobqd"
	"github.com/romanqed/jobqd/job"
)

// RetryDeadJob implements the DLQ retry transition of spec.md §4.4:
// Dead -> Pending, Attempts reset to 0, NextRetryAt and ErrorMessage
// cleared. Identity and audit timestamps are otherwise preserved.
func (s *bunStore) RetryDeadJob(ctx context.Context, id string, now time.Time) (*job.Job, error) {
	res, err := s.db.NewUpdate().
		Model((*jobModel)(nil)).
		Set("state = ?", job.Pending).
		Set("attempts = ?", 0).
		Set("next_retry_at = NULL").
		Set("error_message = ?", "").
		Set("updated_at = ?", now).
		Where("id = ?", id).
		Where("state = ?", job.Dead).
		Exec(ctx)
	if err != nil {
		return nil, err
	}
	if isAffected(res) {
		return s.GetJob(ctx, id)
	}
	existing, err := s.GetJob(ctx, id)
	if err != nil {
		return nil, err
	}
	if existing == nil {
		return nil, jobqd.ErrJobNotFound
	}
	return nil, jobqd.ErrNotDead
}
