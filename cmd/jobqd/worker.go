package main

import (
	"context"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/romanqed/jobqd/worker"
)

func newWorkerCmd(flags *globalFlags) *cobra.Command {
	var id int
	cmd := &cobra.Command{
		Use:   "worker",
		Short: "Run a single worker process, claiming and executing jobs until stopped",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			e, err := newEnv(ctx, flags)
			if err != nil {
				return err
			}
			defer e.Close()

			w := worker.New(strconv.Itoa(id), e.mgr, e.cfg, e.log)
			if err := w.Start(ctx); err != nil {
				return err
			}
			<-ctx.Done()
			e.log.Info("worker shutting down", "id", id)
			return w.Stop(30 * time.Second)
		},
	}
	cmd.Flags().IntVar(&id, "id", 0, "worker slot identifier, used only for logging")
	return cmd
}
