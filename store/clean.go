package store

import (
	"context"
	"time"

	"github.com/romanqed/jobqd"
	"github.com/romanqed/jobqd/job"
)

// Clean deletes terminal jobs for retention management. Only Completed
// and Dead are valid targets; any other explicit status returns
// jobqd.ErrBadStatus without touching the table.
func (s *bunStore) Clean(ctx context.Context, status job.Status, before *time.Time) (int64, error) {
	if status != job.Unknown && status != job.Completed && status != job.Dead {
		return 0, jobqd.ErrBadStatus
	}
	query := s.db.NewDelete().Model((*jobModel)(nil))
	if status != job.Unknown {
		query = query.Where("state = ?", status)
	} else {
		query = query.Where("state IN (?, ?)", job.Completed, job.Dead)
	}
	if before != nil {
		query = query.Where("updated_at <= ?", *before)
	}
	res, err := query.Exec(ctx)
	if err != nil {
		return 0, err
	}
	return getAffected(res), nil
}
