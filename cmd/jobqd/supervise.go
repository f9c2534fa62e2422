package main

import (
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/romanqed/jobqd/job"
	"github.com/romanqed/jobqd/reaper"
	"github.com/romanqed/jobqd/retention"
	sv "github.com/romanqed/jobqd/supervisor"
)

func newSuperviseCmd(flags *globalFlags) *cobra.Command {
	var (
		count          int
		reaperInterval time.Duration
		reaperGrace    time.Duration
		retentionEvery time.Duration
		retentionAge   time.Duration
	)
	cmd := &cobra.Command{
		Use:   "supervise",
		Short: "Spawn N worker processes plus the reaper and retention background tasks",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			e, err := newEnv(ctx, flags)
			if err != nil {
				return err
			}
			defer e.Close()

			binary, err := os.Executable()
			if err != nil {
				return err
			}
			childArgs := []string{"worker",
				"--data-dir", flags.dataDir,
				"--dsn", flags.dsn,
				"--dialect", flags.dialect,
			}
			supervisor := sv.New(sv.Config{
				Count:   count,
				Binary:  binary,
				Args:    childArgs,
				PIDFile: filepath.Join(flags.dataDir, "workers.pid"),
			}, e.log)
			if err := supervisor.Start(ctx); err != nil {
				return err
			}

			reaperWorker := reaper.New(e.store, e.cfg, reaper.Config{Interval: reaperInterval, Grace: reaperGrace}, e.log)
			if err := reaperWorker.Start(ctx); err != nil {
				return err
			}
			retentionWorker := retention.New(e.store, retention.Config{
				Status:   job.Unknown,
				Interval: retentionEvery,
				MaxAge:   retentionAge,
			}, e.log)
			if err := retentionWorker.Start(ctx); err != nil {
				return err
			}

			exited := make(chan error, 1)
			go func() { exited <- supervisor.Wait() }()

			select {
			case <-ctx.Done():
				e.log.Info("supervisor shutting down, signaling workers")
				if err := supervisor.Stop(30 * time.Second); err != nil {
					e.log.Warn("workers still draining after SIGTERM, waiting", "err", err)
				}
				if err := <-exited; err != nil {
					e.log.Error("worker process exited with error", "err", err)
				}
			case err := <-exited:
				if err != nil {
					e.log.Error("worker process exited with error", "err", err)
				}
			}

			_ = reaperWorker.Stop(10 * time.Second)
			_ = retentionWorker.Stop(10 * time.Second)
			return nil
		},
	}
	cmd.Flags().IntVar(&count, "count", 1, "number of worker processes to spawn")
	cmd.Flags().DurationVar(&reaperInterval, "reaper-interval", 30*time.Second, "how often the reaper sweeps for orphaned jobs")
	cmd.Flags().DurationVar(&reaperGrace, "reaper-grace", 10*time.Second, "grace period added to a job's deadline before it is considered orphaned")
	cmd.Flags().DurationVar(&retentionEvery, "retention-interval", time.Hour, "how often the retention task purges old terminal jobs")
	cmd.Flags().DurationVar(&retentionAge, "retention-max-age", 7*24*time.Hour, "age after which a terminal job is purged; 0 purges all matching jobs immediately")
	return cmd
}
