package job_test

import (
	"testing"
	"time"

	"github.com/romanqed/jobqd/job"
)

func TestNewAppliesDefaults(t *testing.T) {
	now := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	j := job.New(job.Spec{Command: "echo hi"}, job.Defaults{MaxRetries: 3, Timeout: 300 * time.Second}, now)
	if j.State != job.Pending {
		t.Fatalf("expected Pending, got %v", j.State)
	}
	if j.MaxRetries != 3 || j.Timeout != 300*time.Second || j.Priority != 0 {
		t.Fatalf("defaults not applied: %+v", j)
	}
	if j.Id == "" {
		t.Fatal("expected generated id")
	}
}

func TestNewHonorsExplicitId(t *testing.T) {
	now := time.Now()
	j := job.New(job.Spec{Command: "true", Id: "custom-id"}, job.Defaults{MaxRetries: 3, Timeout: time.Minute}, now)
	if j.Id != "custom-id" {
		t.Fatalf("expected custom-id, got %s", j.Id)
	}
}

func TestRetryDelayIsIntegerExponent(t *testing.T) {
	cases := []struct {
		attempts uint32
		want     time.Duration
	}{
		{1, 2 * time.Second},
		{2, 4 * time.Second},
		{3, 8 * time.Second},
	}
	for _, c := range cases {
		got := job.RetryDelay(2, c.attempts)
		if got != c.want {
			t.Fatalf("RetryDelay(2, %d) = %v, want %v", c.attempts, got, c.want)
		}
	}
}

func TestMarkForRetryTransitionsToFailedThenDead(t *testing.T) {
	now := time.Now()
	j := &job.Job{State: job.Processing, Attempts: 0, MaxRetries: 2}
	j.Attempts = 1
	j.MarkForRetry(now, "boom", 2)
	if j.State != job.Failed {
		t.Fatalf("expected Failed, got %v", j.State)
	}
	if j.NextRetryAt == nil || !j.NextRetryAt.Equal(now.Add(2*time.Second)) {
		t.Fatalf("unexpected NextRetryAt: %v", j.NextRetryAt)
	}

	j.Attempts = 2
	j.MarkForRetry(now, "boom again", 2)
	if j.State != job.Dead {
		t.Fatalf("expected Dead, got %v", j.State)
	}
	if j.NextRetryAt != nil {
		t.Fatal("expected NextRetryAt cleared on Dead")
	}
	if j.Attempts != 2 {
		t.Fatalf("attempts must not exceed max_retries, got %d", j.Attempts)
	}
}

func TestMarkCompletedComputesExecutionTime(t *testing.T) {
	start := time.Now()
	end := start.Add(250 * time.Millisecond)
	j := &job.Job{StartedAt: &start}
	j.MarkCompleted(end, "hello world")
	if j.State != job.Completed {
		t.Fatalf("expected Completed, got %v", j.State)
	}
	if j.ExecutionTime == nil || *j.ExecutionTime != 250*time.Millisecond {
		t.Fatalf("unexpected execution time: %v", j.ExecutionTime)
	}
	if j.Output != "hello world" {
		t.Fatalf("unexpected output: %q", j.Output)
	}
}

func TestMarkCompletedTruncatesOutput(t *testing.T) {
	big := make([]byte, job.MaxOutputBytes+50)
	for i := range big {
		big[i] = 'x'
	}
	j := &job.Job{}
	j.MarkCompleted(time.Now(), string(big))
	if len(j.Output) != job.MaxOutputBytes {
		t.Fatalf("expected truncation to %d bytes, got %d", job.MaxOutputBytes, len(j.Output))
	}
}

func TestMarkDLQRetryResetsAttempts(t *testing.T) {
	j := &job.Job{State: job.Dead, Attempts: 3, MaxRetries: 3, ErrorMessage: "dead"}
	j.MarkDLQRetry(time.Now())
	if j.State != job.Pending || j.Attempts != 0 || j.ErrorMessage != "" || j.NextRetryAt != nil {
		t.Fatalf("unexpected state after DLQ retry: %+v", j)
	}
}

func TestReadyRespectsRunAtAndNextRetryAt(t *testing.T) {
	now := time.Now()
	future := now.Add(5 * time.Second)
	j := &job.Job{State: job.Pending, RunAt: &future}
	if j.Ready(now) {
		t.Fatal("expected not ready before RunAt")
	}
	if !j.Ready(future.Add(time.Millisecond)) {
		t.Fatal("expected ready after RunAt elapses")
	}

	j2 := &job.Job{State: job.Failed, NextRetryAt: &future}
	if j2.Ready(now) {
		t.Fatal("expected not ready before NextRetryAt")
	}

	j3 := &job.Job{State: job.Completed}
	if j3.Ready(now) {
		t.Fatal("terminal state must never be claimable")
	}
}

func TestStatusTextRoundTrip(t *testing.T) {
	for _, s := range []job.Status{job.Pending, job.Processing, job.Completed, job.Failed, job.Dead, job.Unknown} {
		text, err := s.MarshalText()
		if err != nil {
			t.Fatal(err)
		}
		var parsed job.Status
		if err := parsed.UnmarshalText(text); err != nil {
			t.Fatal(err)
		}
		if parsed != s {
			t.Fatalf("round trip mismatch: %v != %v", parsed, s)
		}
	}
}
