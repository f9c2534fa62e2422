package main

import (
	"errors"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/romanqed/jobqd/supervisor"
)

func newStopCmd(flags *globalFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "stop",
		Short: "Signal every worker process started by a prior supervise invocation",
		RunE: func(cmd *cobra.Command, args []string) error {
			pidFile := filepath.Join(flags.dataDir, "workers.pid")
			err := supervisor.Stop(pidFile)
			if errors.Is(err, supervisor.ErrNoPIDFile) {
				cmd.Println("no running supervisor found")
				return nil
			}
			return err
		},
	}
}
