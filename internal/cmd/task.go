package cmd

import (
	"fmt"
	"strings"

	"github.com/Iron-Ham/cogniload/internal/load"
	"github.com/Iron-Ham/cogniload/internal/task"
	"github.com/Iron-Ham/cogniload/internal/util"
	"github.com/spf13/cobra"
)

var taskCmd = &cobra.Command{
	Use:   "task",
	Short: "Manage the task list",
}

var taskAddCmd = &cobra.Command{
	Use:   "add <title>",
	Short: "Add a task to the end of the list",
	Long: `Add a task to the end of the list.

Examples:
  cogniload task add "DBMS revision" --duration 90 --effort 4 --category revision --deadline 2026-03-12
  cogniload task add "Inbox zero" -d 20 -e 1 -k admin`,
	Args: cobra.MinimumNArgs(1),
	RunE: runTaskAdd,
}

var taskListCmd = &cobra.Command{
	Use:   "list",
	Short: "List tasks in scoring order",
	RunE:  runTaskList,
}

var taskRemoveCmd = &cobra.Command{
	Use:     "rm <id>",
	Aliases: []string{"remove"},
	Short:   "Remove a task without counting it as completed",
	Args:    cobra.ExactArgs(1),
	RunE:    runTaskRemove,
}

var taskDoneCmd = &cobra.Command{
	Use:   "done <id>",
	Short: "Complete a task and count it toward today's completions",
	Args:  cobra.ExactArgs(1),
	RunE:  runTaskDone,
}

var taskWeightCmd = &cobra.Command{
	Use:   "weight",
	Short: "Preview how heavy a task would feel before adding it",
	RunE:  runTaskWeight,
}

var (
	taskDuration int
	taskEffort   int
	taskCategory string
	taskDeadline string
	taskFilter   string
)

func init() {
	taskAddCmd.Flags().IntVarP(&taskDuration, "duration", "d", 0, "Estimated duration in minutes")
	taskAddCmd.Flags().IntVarP(&taskEffort, "effort", "e", 0, "Mental effort from 1 to 5")
	taskAddCmd.Flags().StringVarP(&taskCategory, "category", "k", "", "Task category")
	taskAddCmd.Flags().StringVar(&taskDeadline, "deadline", "", "Deadline (YYYY-MM-DD or RFC 3339)")

	taskWeightCmd.Flags().IntVarP(&taskDuration, "duration", "d", 0, "Estimated duration in minutes")
	taskWeightCmd.Flags().IntVarP(&taskEffort, "effort", "e", 0, "Mental effort from 1 to 5")

	taskListCmd.Flags().StringVar(&taskFilter, "category", "", "Only list categories matching this glob (e.g. 'rev*')")

	taskCmd.AddCommand(taskAddCmd)
	taskCmd.AddCommand(taskListCmd)
	taskCmd.AddCommand(taskRemoveCmd)
	taskCmd.AddCommand(taskDoneCmd)
	taskCmd.AddCommand(taskWeightCmd)
	rootCmd.AddCommand(taskCmd)
}

func runTaskAdd(cmd *cobra.Command, args []string) error {
	t := task.Task{
		Title:             strings.Join(args, " "),
		EstimatedDuration: taskDuration,
		MentalEffort:      taskEffort,
		Category:          taskCategory,
	}
	if taskDeadline != "" {
		d, err := task.ParseTime(taskDeadline)
		if err != nil {
			return fmt.Errorf("invalid deadline %q: %w", taskDeadline, err)
		}
		t.Deadline = &d
	}

	return withSession(func(s *session) error {
		added, err := s.engine.AddTask(t)
		if err != nil {
			return err
		}
		if jsonOutput {
			return writeJSON(cmd.OutOrStdout(), added)
		}
		p := newPrinter(cmd.OutOrStdout(), s.cfg.Output.Color)
		p.line(fmt.Sprintf("Added %s %s", added.ID, p.muted(load.Weight(added.EstimatedDuration, added.MentalEffort).Message())))
		return nil
	})
}

func runTaskList(cmd *cobra.Command, args []string) error {
	return withSession(func(s *session) error {
		tasks, err := task.FilterCategory(s.engine.Tasks(), taskFilter)
		if err != nil {
			return err
		}
		if jsonOutput {
			return writeJSON(cmd.OutOrStdout(), tasks)
		}

		p := newPrinter(cmd.OutOrStdout(), s.cfg.Output.Color)
		p.title("Tasks")
		if len(tasks) == 0 {
			p.line(p.muted("No tasks."))
			return nil
		}
		for _, t := range tasks {
			due := "no deadline"
			if t.HasDeadline() {
				due = "due " + t.Deadline.Format("2006-01-02")
			}
			p.line(fmt.Sprintf("%s %s %4dm x%d  %s %s",
				util.Column(t.ID, 12), util.Column(t.Title, 40), t.EstimatedDuration, t.MentalEffort,
				util.Column(t.Category, 10), p.muted(due)))
		}
		return nil
	})
}

func runTaskRemove(cmd *cobra.Command, args []string) error {
	return withSession(func(s *session) error {
		if err := s.engine.RemoveTask(args[0]); err != nil {
			return err
		}
		_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Removed %s\n", args[0])
		return nil
	})
}

func runTaskDone(cmd *cobra.Command, args []string) error {
	return withSession(func(s *session) error {
		n, err := s.engine.CompleteTask(args[0])
		if err != nil {
			return err
		}
		if jsonOutput {
			return writeJSON(cmd.OutOrStdout(), map[string]any{"id": args[0], "completedToday": n})
		}
		p := newPrinter(cmd.OutOrStdout(), s.cfg.Output.Color)
		p.line(p.ok(fmt.Sprintf("Completed %s. %d done today.", args[0], n)))
		return nil
	})
}

func runTaskWeight(cmd *cobra.Command, args []string) error {
	w := load.Weight(taskDuration, taskEffort)
	if w == load.WeightNone {
		return fmt.Errorf("both --duration and --effort must be positive")
	}
	if jsonOutput {
		return writeJSON(cmd.OutOrStdout(), map[string]any{
			"weight":  string(w),
			"base":    taskDuration * taskEffort,
			"message": w.Message(),
		})
	}
	_, _ = fmt.Fprintf(cmd.OutOrStdout(), "%s (%d)\n", w.Message(), taskDuration*taskEffort)
	return nil
}
