package config_test

import (
	"context"
	"testing"
	"time"

	"github.com/romanqed/jobqd/config"
	"github.com/romanqed/jobqd/store"
)

func newTestConfig(t *testing.T) *config.Store {
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
	cfg, err := config.New(ctx, store.New(db))
	if err != nil {
		t.Fatal(err)
	}
	return cfg
}

func TestNewSeedsDefaults(t *testing.T) {
	cfg := newTestConfig(t)
	all, err := cfg.All(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	for key, want := range config.Defaults() {
		if all[key] != want {
			t.Fatalf("expected seeded default %s=%s, got %s", key, want, all[key])
		}
	}
}

func TestSetOverridesDefault(t *testing.T) {
	cfg := newTestConfig(t)
	ctx := context.Background()
	if err := cfg.Set(ctx, config.KeyMaxRetries, "7"); err != nil {
		t.Fatal(err)
	}
	n, err := cfg.MaxRetries(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if n != 7 {
		t.Fatalf("expected 7, got %d", n)
	}
}

func TestTypedAccessorsParseSeededDefaults(t *testing.T) {
	cfg := newTestConfig(t)
	ctx := context.Background()

	base, err := cfg.BackoffBase(ctx)
	if err != nil || base != 2 {
		t.Fatalf("BackoffBase: %v, %d", err, base)
	}
	poll, err := cfg.WorkerPollInterval(ctx)
	if err != nil || poll != 2*time.Second {
		t.Fatalf("WorkerPollInterval: %v, %v", err, poll)
	}
	timeout, err := cfg.JobTimeout(ctx)
	if err != nil || timeout != 300*time.Second {
		t.Fatalf("JobTimeout: %v, %v", err, timeout)
	}
}

func TestGetUnrecognizedKeyReturnsEmpty(t *testing.T) {
	cfg := newTestConfig(t)
	v, err := cfg.Get(context.Background(), "not_a_real_key")
	if err != nil {
		t.Fatal(err)
	}
	if v != "" {
		t.Fatalf("expected empty string for unrecognized key, got %q", v)
	}
}
