package cmd

import (
	"github.com/spf13/cobra"
)

var metricsCmd = &cobra.Command{
	Use:   "metrics",
	Short: "Score the task list and print the Prometheus metrics for this run",
	RunE:  runMetrics,
}

func init() {
	rootCmd.AddCommand(metricsCmd)
}

func runMetrics(cmd *cobra.Command, args []string) error {
	return withSession(func(s *session) error {
		s.engine.Snapshot()
		s.engine.CompletedToday()
		return s.metrics.WriteText(cmd.OutOrStdout())
	})
}
