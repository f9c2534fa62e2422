package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"github.com/uptrace/bun"

	"github.com/romanqed/jobqd/config"
	"github.com/romanqed/jobqd/queue"
	"github.com/romanqed/jobqd/store"
)

// globalFlags holds the persistent flags shared by every subcommand.
type globalFlags struct {
	dataDir string
	dsn     string
	dialect string
}

func (f *globalFlags) register(cmd *cobra.Command) {
	cmd.PersistentFlags().StringVar(&f.dataDir, "data-dir", "data", "directory for the database file, logs, and pid file")
	cmd.PersistentFlags().StringVar(&f.dsn, "dsn", "", "database DSN; defaults to a SQLite file under data-dir")
	cmd.PersistentFlags().StringVar(&f.dialect, "dialect", "sqlite", "database dialect: sqlite or postgres")
}

func (f *globalFlags) open(ctx context.Context) (*bun.DB, error) {
	if err := os.MkdirAll(f.dataDir, 0o755); err != nil {
		return nil, fmt.Errorf("jobqd: create data dir: %w", err)
	}
	switch f.dialect {
	case "postgres":
		dsn := f.dsn
		if dsn == "" {
			return nil, fmt.Errorf("jobqd: --dsn is required for --dialect=postgres")
		}
		return store.OpenPostgres(dsn)
	case "sqlite", "":
		dsn := f.dsn
		if dsn == "" {
			dsn = "file:" + filepath.Join(f.dataDir, "jobqd.db") + "?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)"
		}
		return store.OpenSQLite(dsn)
	default:
		return nil, fmt.Errorf("jobqd: unknown dialect %q", f.dialect)
	}
}

// env is the set of components every subcommand's RunE body needs.
// newEnv opens the database, ensures the schema exists, and wires the
// config/queue layers on top of it.
type env struct {
	db    *bun.DB
	store store.Store
	cfg   *config.Store
	mgr   *queue.Manager
	log   *slog.Logger
}

func newEnv(ctx context.Context, f *globalFlags) (*env, error) {
	logger := slog.New(slog.NewTextHandler(os.Stderr, nil))

	db, err := f.open(ctx)
	if err != nil {
		return nil, err
	}
	if err := store.InitDB(ctx, db); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("jobqd: init schema: %w", err)
	}

	s := store.New(db)
	cfg, err := config.New(ctx, s)
	if err != nil {
		_ = db.Close()
		return nil, err
	}
	mgr, err := queue.New(s, cfg, f.dataDir)
	if err != nil {
		_ = db.Close()
		return nil, err
	}
	return &env{db: db, store: s, cfg: cfg, mgr: mgr, log: logger}, nil
}

func (e *env) Close() error {
	return e.db.Close()
}
