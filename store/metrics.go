package store

import (
	"context"
	"database/sql"
	"time"

	"github.com/romanqed/jobqd/job"
)

// CountByState returns the number of jobs in each of the five states.
func (s *bunStore) CountByState(ctx context.Context) (map[job.Status]int64, error) {
	ret := map[job.Status]int64{
		job.Pending:    0,
		job.Processing: 0,
		job.Completed:  0,
		job.Failed:     0,
		job.Dead:       0,
	}
	var rows []struct {
		State job.Status `bun:"state"`
		Count int64      `bun:"count"`
	}
	err := s.db.NewSelect().
		Model((*jobModel)(nil)).
		ColumnExpr("state").
		ColumnExpr("count(*) AS count").
		Group("state").
		Scan(ctx, &rows)
	if err != nil {
		return nil, err
	}
	for _, row := range rows {
		ret[row.State] = row.Count
	}
	return ret, nil
}

// AggregateMetrics computes spec.md §6.6's metrics() payload.
func (s *bunStore) AggregateMetrics(ctx context.Context, now time.Time) (Metrics, error) {
	var avgRow struct {
		AvgSeconds sql.NullFloat64 `bun:"avg_seconds"`
	}
	err := s.db.NewSelect().
		Model((*jobModel)(nil)).
		ColumnExpr("AVG(execution_seconds) AS avg_seconds").
		Where("execution_seconds IS NOT NULL").
		Scan(ctx, &avgRow)
	if err != nil {
		return Metrics{}, err
	}

	total, err := s.db.NewSelect().Model((*jobModel)(nil)).Count(ctx)
	if err != nil {
		return Metrics{}, err
	}
	completed, err := s.db.NewSelect().
		Model((*jobModel)(nil)).
		Where("state = ?", job.Completed).
		Count(ctx)
	if err != nil {
		return Metrics{}, err
	}

	var successRate float64
	if total > 0 {
		successRate = float64(completed) / float64(total) * 100
	}

	since := now.Add(-24 * time.Hour)
	last24h, err := s.db.NewSelect().
		Model((*jobModel)(nil)).
		Where("created_at > ?", since).
		Count(ctx)
	if err != nil {
		return Metrics{}, err
	}

	var distRows []struct {
		Priority int32 `bun:"priority"`
		Count    int64 `bun:"count"`
	}
	err = s.db.NewSelect().
		Model((*jobModel)(nil)).
		ColumnExpr("priority").
		ColumnExpr("count(*) AS count").
		Group("priority").
		Order("priority DESC").
		Scan(ctx, &distRows)
	if err != nil {
		return Metrics{}, err
	}
	dist := make(map[int32]int64, len(distRows))
	for _, row := range distRows {
		dist[row.Priority] = row.Count
	}

	return Metrics{
		AvgExecutionTime: time.Duration(avgRow.AvgSeconds.Float64 * float64(time.Second)),
		SuccessRate:      successRate,
		JobsLast24h:      int64(last24h),
		PriorityDist:     dist,
	}, nil
}
