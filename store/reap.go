package store

import (
	"context"
	"time"

	"github.com/romanqed/jobqd/job"
)

const orphanedMessage = "orphaned"

// ReapOrphans implements the reaper pass spec.md §4.5/§9 leaves as an
// open question: a Processing job whose worker died leaves
// started_at+timeout+grace in the past with no one to finalize it.
// Each such job is transitioned to Failed (if retries remain, with the
// usual backoff_base^attempts NextRetryAt) or Dead (if exhausted),
// exactly as a normal execution failure would, with
// error_message="orphaned".
//
// Candidates are fetched once and then reclaimed one at a time with a
// conditional UPDATE ... WHERE state = processing, so a job already
// finalized or re-reaped by a concurrent pass is silently skipped
// rather than double-counted.
func (s *bunStore) ReapOrphans(ctx context.Context, now time.Time, grace time.Duration, backoffBase int64) (int64, error) {
	var candidates []jobModel
	err := s.db.NewSelect().
		Model(&candidates).
		Where("state = ?", job.Processing).
		Where("started_at IS NOT NULL").
		Scan(ctx)
	if err != nil {
		return 0, err
	}

	var reaped int64
	for i := range candidates {
		m := &candidates[i]
		deadline := m.StartedAt.Add(time.Duration(m.TimeoutSeconds)*time.Second + grace)
		if !deadline.Before(now) {
			continue
		}
		j := m.toJob()
		j.MarkForRetry(now, orphanedMessage, backoffBase)
		updated := fromJob(j)
		res, err := s.db.NewUpdate().
			Model(updated).
			Column("state", "attempts", "next_retry_at", "error_message", "updated_at").
			Where("id = ?", j.Id).
			Where("state = ?", job.Processing).
			Exec(ctx)
		if err != nil {
			return reaped, err
		}
		if isAffected(res) {
			reaped++
		}
	}
	return reaped, nil
}
