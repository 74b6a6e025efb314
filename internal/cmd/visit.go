package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var visitCmd = &cobra.Command{
	Use:   "visit",
	Short: "Record a session start and show the return-visit messages",
	Long: `Record that you are starting a session.

On the first visit of a new day this shows a welcome back message and how
your cognitive pressure compares with the last check-in. Each message is
shown at most once per day.`,
	RunE: runVisit,
}

func init() {
	rootCmd.AddCommand(visitCmd)
}

func runVisit(cmd *cobra.Command, args []string) error {
	return withSession(func(s *session) error {
		res := s.engine.Visit()
		if jsonOutput {
			return writeJSON(cmd.OutOrStdout(), res)
		}

		p := newPrinter(cmd.OutOrStdout(), s.cfg.Output.Color)
		if !res.IsNewDay {
			p.line(p.muted("Welcome. Picking up where you left off."))
			return nil
		}

		if res.ShouldShowReEntryMessage {
			switch res.DaysSinceLastVisit {
			case 0, 1:
				p.line(p.ok("Welcome back. A new day, a fresh start."))
			default:
				p.line(p.ok(fmt.Sprintf("Welcome back. It has been %d days.", res.DaysSinceLastVisit)))
			}
		}
		if res.ShouldShowLoadDiff {
			p.line(res.LoadDiffMessage)
		}
		return nil
	})
}
