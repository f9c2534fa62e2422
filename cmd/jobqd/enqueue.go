package main

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/romanqed/jobqd"
	"github.com/romanqed/jobqd/job"
)

func newEnqueueCmd(flags *globalFlags) *cobra.Command {
	var (
		id         string
		maxRetries int32
		priority   int32
		timeout    time.Duration
		runAt      string
	)
	cmd := &cobra.Command{
		Use:   "enqueue <command>",
		Short: "Add a shell command to the queue",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			e, err := newEnv(ctx, flags)
			if err != nil {
				return err
			}
			defer e.Close()

			spec := job.Spec{Command: args[0], Id: id}
			if cmd.Flags().Changed("max-retries") {
				v := uint32(maxRetries)
				spec.MaxRetries = &v
			}
			if cmd.Flags().Changed("priority") {
				spec.Priority = &priority
			}
			if cmd.Flags().Changed("timeout") {
				spec.Timeout = &timeout
			}
			if runAt != "" {
				at, err := time.Parse(time.RFC3339, runAt)
				if err != nil {
					return fmt.Errorf("%w: --run-at must be an ISO-8601 timestamp: %s", jobqd.ErrInvalidTimestamp, err)
				}
				at = at.UTC()
				spec.RunAt = &at
			}

			j, err := e.mgr.Enqueue(ctx, spec)
			if err != nil {
				return err
			}
			return json.NewEncoder(os.Stdout).Encode(j)
		},
	}
	cmd.Flags().StringVar(&id, "id", "", "explicit job id (defaults to a generated UUID)")
	cmd.Flags().Int32Var(&maxRetries, "max-retries", 0, "override max_retries default")
	cmd.Flags().Int32Var(&priority, "priority", 0, "job priority, higher claims first")
	cmd.Flags().DurationVar(&timeout, "timeout", 0, "override job_timeout default")
	cmd.Flags().StringVar(&runAt, "run-at", "", "ISO-8601 UTC timestamp before which the job is not eligible (e.g. 2026-01-02T15:04:05Z)")
	return cmd
}
