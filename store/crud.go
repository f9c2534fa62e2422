package store

import (
	"context"
	"database/sql"
	"errors"

	"github.com/romanqed/jobqd"
	"github.com/romanqed/jobqd/job"
)

// InsertJob persists a new job in the Pending state. It returns
// jobqd.ErrDuplicateID if j.Id already exists.
func (s *bunStore) InsertJob(ctx context.Context, j *job.Job) error {
	model := fromJob(j)
	_, err := s.db.NewInsert().Model(model).Exec(ctx)
	if err != nil {
		if isUniqueViolation(err) {
			return jobqd.ErrDuplicateID
		}
		return err
	}
	return nil
}

// UpdateJob overwrites all mutable fields for j.Id.
func (s *bunStore) UpdateJob(ctx context.Context, j *job.Job) error {
	model := fromJob(j)
	res, err := s.db.NewUpdate().
		Model(model).
		WherePK().
		Exec(ctx)
	if err != nil {
		return err
	}
	if !isAffected(res) {
		return jobqd.ErrJobNotFound
	}
	return nil
}

// FinalizeJob applies j's Completed/Failed/Dead transition with a
// conditional UPDATE ... WHERE state = processing, mirroring
// ReapOrphans' own conditional update. It returns jobqd.ErrClaimLost
// if the row was no longer Processing.
func (s *bunStore) FinalizeJob(ctx context.Context, j *job.Job) error {
	model := fromJob(j)
	res, err := s.db.NewUpdate().
		Model(model).
		Where("id = ?", j.Id).
		Where("state = ?", job.Processing).
		Exec(ctx)
	if err != nil {
		return err
	}
	if !isAffected(res) {
		return jobqd.ErrClaimLost
	}
	return nil
}

// GetJob returns the job identified by id, or (nil, nil) if none
// exists.
func (s *bunStore) GetJob(ctx context.Context, id string) (*job.Job, error) {
	var model jobModel
	err := s.db.NewSelect().
		Model(&model).
		Where("id = ?", id).
		Scan(ctx)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return model.toJob(), nil
}

// ListJobs returns jobs matching filter, ordered priority DESC,
// created_at DESC (spec.md §6.6).
func (s *bunStore) ListJobs(ctx context.Context, filter ListFilter) ([]*job.Job, error) {
	var models []jobModel
	query := s.db.NewSelect().Model(&models)
	if filter.State != job.Unknown {
		query = query.Where("state = ?", filter.State)
	}
	if filter.Priority != nil {
		query = query.Where("priority = ?", *filter.Priority)
	}
	query = query.Order("priority DESC", "created_at DESC")
	if filter.Limit > 0 {
		query = query.Limit(filter.Limit)
	}
	if err := query.Scan(ctx); err != nil {
		return nil, err
	}
	return toJobs(models), nil
}
