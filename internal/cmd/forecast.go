package cmd

import (
	"fmt"
	"slices"

	"github.com/Iron-Ham/cogniload/internal/forecast"
	"github.com/Iron-Ham/cogniload/internal/util"
	"github.com/spf13/cobra"
)

var forecastCmd = &cobra.Command{
	Use:   "forecast",
	Short: "Show how task load spreads over the coming days",
	Long: `Forecast distributes each task's load over the days before its deadline:
70% on the deadline day and 15% on each of the two days before it. Tasks
without a deadline count fully on the day they were created.`,
	RunE: runForecast,
}

var weekCmd = &cobra.Command{
	Use:   "week",
	Short: "Show the tasks due on each of the coming days",
	RunE:  runWeek,
}

func init() {
	rootCmd.AddCommand(forecastCmd)
	rootCmd.AddCommand(weekCmd)
}

func runForecast(cmd *cobra.Command, args []string) error {
	return withSession(func(s *session) error {
		now := s.engine.Now()
		tasks := s.engine.Tasks()
		points := forecast.Daily(tasks, now)
		insight := forecast.Advise(points, tasks, s.cfg.Forecast.OverloadThreshold, now)

		if jsonOutput {
			if points == nil {
				points = []forecast.Point{}
			}
			return writeJSON(cmd.OutOrStdout(), struct {
				Points  []forecast.Point `json:"points"`
				Insight forecast.Insight `json:"insight"`
			}{points, insight})
		}

		p := newPrinter(cmd.OutOrStdout(), s.cfg.Output.Color)
		p.title("Forecast")
		if len(points) == 0 {
			p.line(p.muted("Nothing scheduled."))
			return nil
		}

		peak := slices.MaxFunc(points, func(a, b forecast.Point) int { return a.Load - b.Load }).Load
		cells := max(10, p.width-30)
		threshold := int(s.cfg.Forecast.OverloadThreshold)
		for _, pt := range points {
			b := bar(pt.Load, peak, cells)
			if pt.Load > threshold {
				b = p.warn(b)
			} else {
				b = p.ok(b)
			}
			p.line(fmt.Sprintf("%s %6d %s", pt.Date, pt.Load, b))
		}
		p.line("")
		p.line(insight.Headline)
		p.line(p.muted(insight.Suggestion))
		p.line("")
		return nil
	})
}

func runWeek(cmd *cobra.Command, args []string) error {
	return withSession(func(s *session) error {
		days := s.engine.Week()
		if jsonOutput {
			return writeJSON(cmd.OutOrStdout(), days)
		}

		p := newPrinter(cmd.OutOrStdout(), s.cfg.Output.Color)
		p.title("Week")
		for _, d := range days {
			p.line(fmt.Sprintf("%s  %-10s %s", d.Date,
				p.style(stateStyle(d.State), string(d.State)),
				p.muted(fmt.Sprintf("load %d", d.Load))))
			for _, t := range d.Tasks {
				p.line(fmt.Sprintf("    - %s %s", util.Fit(t.Title, 50), p.muted("["+t.Category+"]")))
			}
		}
		p.line("")
		return nil
	})
}
