package main

import (
	"encoding/json"
	"os"

	"github.com/spf13/cobra"
)

func newDLQCmd(flags *globalFlags) *cobra.Command {
	dlq := &cobra.Command{
		Use:   "dlq",
		Short: "Inspect and retry dead-lettered jobs",
	}
	dlq.AddCommand(newDLQListCmd(flags), newDLQRetryCmd(flags))
	return dlq
}

func newDLQListCmd(flags *globalFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List every dead job",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			e, err := newEnv(ctx, flags)
			if err != nil {
				return err
			}
			defer e.Close()

			jobs, err := e.mgr.ListDLQ(ctx)
			if err != nil {
				return err
			}
			return json.NewEncoder(os.Stdout).Encode(jobs)
		},
	}
}

func newDLQRetryCmd(flags *globalFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "retry <job-id>",
		Short: "Reset a dead job back to pending",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			e, err := newEnv(ctx, flags)
			if err != nil {
				return err
			}
			defer e.Close()

			j, err := e.mgr.RetryDLQJob(ctx, args[0])
			if err != nil {
				return err
			}
			return json.NewEncoder(os.Stdout).Encode(j)
		},
	}
}
