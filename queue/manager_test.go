package queue_test

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/romanqed/jobqd"
	"github.com/romanqed/jobqd/config"
	"github.com/romanqed/jobqd/job"
	"github.com/romanqed/jobqd/queue"
	"github.com/romanqed/jobqd/store"
)

func newTestManager(t *testing.T) *queue.Manager {
	t.Helper()
	db, err := store.OpenSQLite("file::memory:?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)")
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { _ = db.Close() })
	ctx := context.Background()
	if err := store.InitDB(ctx, db); err != nil {
		t.Fatal(err)
	}
	s := store.New(db)
	cfg, err := config.New(ctx, s)
	if err != nil {
		t.Fatal(err)
	}
	dir := t.TempDir()
	m, err := queue.New(s, cfg, dir)
	if err != nil {
		t.Fatal(err)
	}
	return m
}

func TestEnqueueRejectsEmptyCommand(t *testing.T) {
	m := newTestManager(t)
	_, err := m.Enqueue(context.Background(), job.Spec{})
	if err != jobqd.ErrEmptyCommand {
		t.Fatalf("expected ErrEmptyCommand, got %v", err)
	}
}

func TestEnqueueRejectsZeroRunAt(t *testing.T) {
	m := newTestManager(t)
	var zero time.Time
	_, err := m.Enqueue(context.Background(), job.Spec{Command: "true", RunAt: &zero})
	if err != jobqd.ErrInvalidTimestamp {
		t.Fatalf("expected ErrInvalidTimestamp, got %v", err)
	}
}

func TestEnqueueAppliesConfigDefaults(t *testing.T) {
	m := newTestManager(t)
	j, err := m.Enqueue(context.Background(), job.Spec{Command: "echo hi"})
	if err != nil {
		t.Fatal(err)
	}
	if j.MaxRetries != 3 {
		t.Fatalf("expected default max_retries 3, got %d", j.MaxRetries)
	}
	if j.Timeout.Seconds() != 300 {
		t.Fatalf("expected default timeout 300s, got %v", j.Timeout)
	}
}

func TestClaimCompleteArchivesOutput(t *testing.T) {
	m := newTestManager(t)
	ctx := context.Background()
	enqueued, err := m.Enqueue(ctx, job.Spec{Command: "echo hi"})
	if err != nil {
		t.Fatal(err)
	}

	claimed, err := m.Claim(ctx)
	if err != nil || claimed == nil || claimed.Id != enqueued.Id {
		t.Fatalf("claim: %v, %+v", err, claimed)
	}

	if err := m.Complete(ctx, claimed, "hi\n", ""); err != nil {
		t.Fatal(err)
	}

	got, err := m.GetJob(ctx, enqueued.Id)
	if err != nil {
		t.Fatal(err)
	}
	if got.State != job.Completed || got.Output != "hi\n" {
		t.Fatalf("unexpected job after complete: %+v", got)
	}
}

func TestFailAppliesRetryBookkeepingAndArchivesLog(t *testing.T) {
	db, err := store.OpenSQLite("file::memory:?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)")
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { _ = db.Close() })
	ctx := context.Background()
	if err := store.InitDB(ctx, db); err != nil {
		t.Fatal(err)
	}
	s := store.New(db)
	cfg, err := config.New(ctx, s)
	if err != nil {
		t.Fatal(err)
	}
	dir := t.TempDir()
	m, err := queue.New(s, cfg, dir)
	if err != nil {
		t.Fatal(err)
	}

	enqueued, err := m.Enqueue(ctx, job.Spec{Command: "false"})
	if err != nil {
		t.Fatal(err)
	}
	claimed, err := m.Claim(ctx)
	if err != nil || claimed == nil {
		t.Fatalf("claim: %v, %+v", err, claimed)
	}

	if err := m.Fail(ctx, claimed, "", "boom", "boom"); err != nil {
		t.Fatal(err)
	}
	got, err := m.GetJob(ctx, enqueued.Id)
	if err != nil {
		t.Fatal(err)
	}
	if got.State != job.Failed || got.NextRetryAt == nil {
		t.Fatalf("expected Failed with NextRetryAt set, got %+v", got)
	}

	data, err := os.ReadFile(filepath.Join(dir, "logs", enqueued.Id+".log"))
	if err != nil {
		t.Fatalf("expected archived log: %v", err)
	}
	if !strings.Contains(string(data), "--- STDERR ---\nboom") {
		t.Fatalf("expected stderr section in archived log, got %q", data)
	}
}

func TestRetryDLQJob(t *testing.T) {
	m := newTestManager(t)
	ctx := context.Background()
	enqueued, err := m.Enqueue(ctx, job.Spec{Command: "false", MaxRetries: uint32Ptr(0)})
	if err != nil {
		t.Fatal(err)
	}
	claimed, err := m.Claim(ctx)
	if err != nil || claimed == nil {
		t.Fatalf("claim: %v, %+v", err, claimed)
	}
	if err := m.Fail(ctx, claimed, "", "", "boom"); err != nil {
		t.Fatal(err)
	}
	got, err := m.GetJob(ctx, enqueued.Id)
	if err != nil {
		t.Fatal(err)
	}
	if got.State != job.Dead {
		t.Fatalf("expected Dead with no retries left, got %v", got.State)
	}

	retried, err := m.RetryDLQJob(ctx, enqueued.Id)
	if err != nil {
		t.Fatal(err)
	}
	if retried.State != job.Pending {
		t.Fatalf("expected Pending after DLQ retry, got %v", retried.State)
	}

	_, err = m.RetryDLQJob(ctx, enqueued.Id)
	if err != jobqd.ErrNotDead {
		t.Fatalf("expected ErrNotDead, got %v", err)
	}
}

func TestStatsAndMetrics(t *testing.T) {
	m := newTestManager(t)
	ctx := context.Background()
	if _, err := m.Enqueue(ctx, job.Spec{Command: "echo a", Priority: int32Ptr(1)}); err != nil {
		t.Fatal(err)
	}
	if _, err := m.Enqueue(ctx, job.Spec{Command: "echo b", Priority: int32Ptr(2)}); err != nil {
		t.Fatal(err)
	}

	stats, err := m.Stats(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if stats[job.Pending] != 2 {
		t.Fatalf("expected 2 pending, got %d", stats[job.Pending])
	}

	metrics, err := m.Metrics(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if metrics.JobsLast24h != 2 {
		t.Fatalf("expected 2 jobs in last 24h, got %d", metrics.JobsLast24h)
	}
	if len(metrics.PriorityDist) != 2 {
		t.Fatalf("expected 2 priority buckets, got %d", len(metrics.PriorityDist))
	}
}

func int32Ptr(v int32) *int32    { return &v }
func uint32Ptr(v uint32) *uint32 { return &v }
