package cmd

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"
)

var backgroundCmd = &cobra.Command{
	Use:   "background [value]",
	Short: "Show or set the background load added to every score",
	Long: `Show or set the background load: a constant added to the total for
pressure that is not on the task list (sleep debt, noise, a looming exam).
Negative values lower the total.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runBackground,
}

func init() {
	rootCmd.AddCommand(backgroundCmd)
}

func runBackground(cmd *cobra.Command, args []string) error {
	var value *float64
	if len(args) == 1 {
		v, err := strconv.ParseFloat(args[0], 64)
		if err != nil {
			return fmt.Errorf("invalid background load %q: expected a number", args[0])
		}
		value = &v
	}

	return withSession(func(s *session) error {
		if value != nil {
			s.engine.SetBackground(*value)
		}
		current := s.engine.Background()
		if jsonOutput {
			return writeJSON(cmd.OutOrStdout(), map[string]float64{"background": current})
		}
		_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Background load: %g\n", current)
		return nil
	})
}
