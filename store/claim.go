package store

import (
	"context"
	"time"

	"github.com/romanqed/jobqd/job"
)

// ClaimOne implements the claim algorithm of spec.md §4.3: a single
// UPDATE ... WHERE id IN (subquery) RETURNING * statement selects
// exactly one eligible job and transitions it to Processing, so the
// selection and the state transition share one write lock and no two
// concurrent callers can claim the same row.
//
// Eligible: state IN (pending, failed) AND (next_retry_at IS NULL OR
// next_retry_at <= now) AND (run_at IS NULL OR run_at <= now).
// Ordering: priority DESC, created_at ASC, id ASC.
func (s *bunStore) ClaimOne(ctx context.Context, now time.Time) (*job.Job, error) {
	subQuery := s.db.NewSelect().
		Model((*jobModel)(nil)).
		Column("id").
		Where("state IN (?, ?)", job.Pending, job.Failed).
		Where("(next_retry_at IS NULL OR next_retry_at <= ?)", now).
		Where("(run_at IS NULL OR run_at <= ?)", now).
		Order("priority DESC", "created_at ASC", "id ASC").
		Limit(1)

	var models []jobModel
	err := s.db.NewUpdate().
		Model((*jobModel)(nil)).
		Set("state = ?", job.Processing).
		Set("attempts = attempts + 1").
		Set("started_at = ?", now).
		Set("updated_at = ?", now).
		Where("id IN (?)", subQuery).
		Returning("*").
		Scan(ctx, &models)
	if err != nil {
		return nil, err
	}
	if len(models) == 0 {
		return nil, nil
	}
	return models[0].toJob(), nil
}
