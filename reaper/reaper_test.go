package reaper_test

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/romanqed/jobqd/config"
	"github.com/romanqed/jobqd/job"
	"github.com/romanqed/jobqd/reaper"
	"github.com/romanqed/jobqd/store"
)

func TestReaperWorkerReclaimsOrphans(t *testing.T) {
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

	now := time.Now().UTC()
	tinyTimeout := 10 * time.Millisecond
	j := job.New(job.Spec{Command: "sleep 1000", Timeout: &tinyTimeout}, job.Defaults{MaxRetries: 3, Timeout: time.Minute}, now)
	if err := s.InsertJob(ctx, j); err != nil {
		t.Fatal(err)
	}
	claimed, err := s.ClaimOne(ctx, now)
	if err != nil || claimed == nil {
		t.Fatalf("claim: %v, %+v", err, claimed)
	}

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	rw := reaper.New(s, cfg, reaper.Config{Interval: 10 * time.Millisecond, Grace: 0}, logger)

	runCtx, cancel := context.WithCancel(context.Background())
	defer cancel()
	if err := rw.Start(runCtx); err != nil {
		t.Fatal(err)
	}
	defer func() { _ = rw.Stop(5 * time.Second) }()

	deadline := time.Now().Add(5 * time.Second)
	for time.Now().Before(deadline) {
		got, err := s.GetJob(context.Background(), j.Id)
		if err != nil {
			t.Fatal(err)
		}
		if got.State == job.Failed {
			if got.ErrorMessage != "orphaned" {
				t.Fatalf("expected orphaned error message, got %q", got.ErrorMessage)
			}
			return
		}
		time.Sleep(10 * time.Millisecond)
	}
	t.Fatal("orphaned job was never reaped")
}
