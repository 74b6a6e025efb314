package cmd

import (
	"context"
	"fmt"
	"os/signal"
	"syscall"

	"github.com/Iron-Ham/cogniload/internal/store"
	"github.com/spf13/cobra"
)

var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Print the load every time the task list or background changes",
	Long: `Watch the store for changes made by other cogniload processes and
print the new total each time. Requires the file backend. Stop with Ctrl+C.`,
	RunE: runWatch,
}

func init() {
	rootCmd.AddCommand(watchCmd)
}

func runWatch(cmd *cobra.Command, args []string) error {
	return withSession(func(s *session) error {
		if s.cfg.Store.Backend != store.BackendFile {
			return fmt.Errorf("watch requires the file backend (store.backend is %q)", s.cfg.Store.Backend)
		}

		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()
		return watchLoad(ctx, s, func(total float64) {
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "%.1f\n", total)
		})
	})
}

// watchLoad reports the current total, then again after every change to the
// tasks or background load, until ctx is done.
func watchLoad(ctx context.Context, s *session, report func(total float64)) error {
	changed := make(chan struct{}, 1)
	notify := func(_, _ string) {
		select {
		case changed <- struct{}{}:
		default:
		}
	}
	defer s.store.Subscribe(store.KeyTasks, notify)()
	defer s.store.Subscribe(store.KeyBackgroundLoad, notify)()

	watchErr := make(chan error, 1)
	go func() { watchErr <- s.store.Watch(ctx) }()

	report(s.engine.Snapshot().TotalLoad)
	for {
		select {
		case <-ctx.Done():
			return <-watchErr
		case err := <-watchErr:
			return err
		case <-changed:
			report(s.engine.Snapshot().TotalLoad)
		}
	}
}
