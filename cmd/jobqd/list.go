package main

import (
	"encoding/json"
	"os"

	"github.com/spf13/cobra"

	"github.com/romanqed/jobqd/job"
	"github.com/romanqed/jobqd/store"
)

func newListCmd(flags *globalFlags) *cobra.Command {
	var (
		state    string
		priority int32
		limit    int
	)
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List jobs, optionally filtered by state and/or priority",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			e, err := newEnv(ctx, flags)
			if err != nil {
				return err
			}
			defer e.Close()

			filter := store.ListFilter{Limit: limit}
			if state != "" {
				s, err := job.ParseStatus(state)
				if err != nil {
					return err
				}
				filter.State = s
			}
			if cmd.Flags().Changed("priority") {
				filter.Priority = &priority
			}

			jobs, err := e.mgr.ListJobs(ctx, filter)
			if err != nil {
				return err
			}
			return json.NewEncoder(os.Stdout).Encode(jobs)
		},
	}
	cmd.Flags().StringVar(&state, "state", "", "filter by state: pending, processing, completed, failed, dead")
	cmd.Flags().Int32Var(&priority, "priority", 0, "filter by exact priority")
	cmd.Flags().IntVar(&limit, "limit", 0, "maximum number of jobs to return; 0 means no limit")
	return cmd
}
