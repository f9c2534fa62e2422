package main

import (
	"github.com/spf13/cobra"
)

func newRootCmd() *cobra.Command {
	flags := &globalFlags{}
	root := &cobra.Command{
		Use:           "jobqd",
		Short:         "Durable shell-command job queue",
		SilenceUsage:  true,
		SilenceErrors: false,
	}
	flags.register(root)

	root.AddCommand(
		newEnqueueCmd(flags),
		newWorkerCmd(flags),
		newSuperviseCmd(flags),
		newStopCmd(flags),
		newStatsCmd(flags),
		newListCmd(flags),
		newDLQCmd(flags),
		newMigrateCmd(flags),
	)
	return root
}
