package main

import (
	"github.com/spf13/cobra"
)

func newMigrateCmd(flags *globalFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Idempotently create the jobs/config tables and indexes",
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := newEnv(cmd.Context(), flags)
			if err != nil {
				return err
			}
			defer e.Close()
			cmd.Println("schema is up to date")
			return nil
		},
	}
}
