package cmd

import (
	"fmt"

	"github.com/Iron-Ham/cogniload/internal/engine"
	"github.com/Iron-Ham/cogniload/internal/forecast"
	"github.com/Iron-Ham/cogniload/internal/util"
	"github.com/spf13/cobra"
)

var scoreCmd = &cobra.Command{
	Use:   "score",
	Short: "Show the current cognitive load and its per-task breakdown",
	Long: `Score the stored task list in order.

Each task contributes duration x effort, plus a context switch penalty when
its category differs from the task before it, plus a 20% urgency surcharge
when its deadline is less than a day away. The background load is added to
the total.`,
	RunE: runScore,
}

var stateCmd = &cobra.Command{
	Use:   "state",
	Short: "Show the load band, completions today and the forecast insight",
	RunE:  runState,
}

func init() {
	rootCmd.AddCommand(scoreCmd)
	rootCmd.AddCommand(stateCmd)
}

func runScore(cmd *cobra.Command, args []string) error {
	return withSession(func(s *session) error {
		snap := s.engine.Snapshot()
		if jsonOutput {
			return writeJSON(cmd.OutOrStdout(), snap)
		}

		p := newPrinter(cmd.OutOrStdout(), s.cfg.Output.Color)
		tasks := s.engine.Tasks()

		p.title("Cognitive load")
		p.line(fmt.Sprintf("Total: %s  %s",
			p.style(stateStyle(snap.State), fmt.Sprintf("%.1f", snap.TotalLoad)),
			p.muted(fmt.Sprintf("(background %+.1f)", snap.Background))))
		p.line("")

		if len(snap.Breakdown) == 0 {
			p.line(p.muted("No tasks. Add one with 'cogniload task add'."))
			return nil
		}

		p.title("Breakdown")
		for i, b := range snap.Breakdown {
			title := b.TaskID
			if i < len(tasks) {
				title = tasks[i].Title
			}
			extras := ""
			if b.ContextSwitchPenalty > 0 {
				extras += fmt.Sprintf(" +%.0f switch", b.ContextSwitchPenalty)
			}
			if b.UrgencyPenalty > 0 {
				extras += " " + p.warn(fmt.Sprintf("+%.1f urgent", b.UrgencyPenalty))
			}
			p.line(fmt.Sprintf("%s %7.1f  %s%s", util.Column(title, 40), b.TotalTaskLoad,
				p.muted(fmt.Sprintf("base %.0f", b.BaseLoad)), extras))
		}
		p.line("")
		return nil
	})
}

func runState(cmd *cobra.Command, args []string) error {
	return withSession(func(s *session) error {
		snap := s.engine.Snapshot()
		if jsonOutput {
			return writeJSON(cmd.OutOrStdout(), stateView(snap))
		}

		p := newPrinter(cmd.OutOrStdout(), s.cfg.Output.Color)
		p.title("State")
		p.line(fmt.Sprintf("%s  %s", p.style(stateStyle(snap.State), string(snap.State)), snap.StateMessage))
		p.line(fmt.Sprintf("Tasks completed today: %d", snap.CompletedToday))
		p.line("")

		p.title(snap.Insight.Headline)
		if snap.Insight.Overloaded {
			p.line(p.warn(fmt.Sprintf("%s: %d", snap.Insight.Date, snap.Insight.Load)))
		}
		p.line(snap.Insight.Suggestion)
		p.line("")
		return nil
	})
}

type stateJSON struct {
	State          string           `json:"state"`
	Message        string           `json:"message"`
	TotalLoad      float64          `json:"totalLoad"`
	CompletedToday int              `json:"completedToday"`
	Insight        forecast.Insight `json:"insight"`
}

func stateView(snap engine.Snapshot) stateJSON {
	return stateJSON{
		State:          string(snap.State),
		Message:        snap.StateMessage,
		TotalLoad:      snap.TotalLoad,
		CompletedToday: snap.CompletedToday,
		Insight:        snap.Insight,
	}
}
