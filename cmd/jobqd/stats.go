package main

import (
	"encoding/json"
	"os"

	"github.com/spf13/cobra"
)

func newStatsCmd(flags *globalFlags) *cobra.Command {
	var metrics bool
	cmd := &cobra.Command{
		Use:   "stats",
		Short: "Print job counts by state, or execution metrics with --metrics",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			e, err := newEnv(ctx, flags)
			if err != nil {
				return err
			}
			defer e.Close()

			if metrics {
				m, err := e.mgr.Metrics(ctx)
				if err != nil {
					return err
				}
				return json.NewEncoder(os.Stdout).Encode(m)
			}

			counts, err := e.mgr.Stats(ctx)
			if err != nil {
				return err
			}
			byName := make(map[string]int64, len(counts))
			for status, count := range counts {
				byName[status.String()] = count
			}
			return json.NewEncoder(os.Stdout).Encode(byName)
		},
	}
	cmd.Flags().BoolVar(&metrics, "metrics", false, "print execution metrics instead of state counts")
	return cmd
}
