package cmd

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/firefly-engineering/profilectl/internal/errors"
	"github.com/firefly-engineering/profilectl/internal/logging"
	"github.com/firefly-engineering/profilectl/internal/manager"
	"github.com/firefly-engineering/profilectl/internal/watcher"
)

var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Reload profiles when their files change",
	Long: `Watches every profile directory and reloads a profile when its file
changes on disk, printing the properties that changed. New files are loaded
as they appear. Stops on interrupt.`,
	Args: cobra.NoArgs,
	RunE: runWatch,
}

var watchDebounce time.Duration

func init() {
	watchCmd.Flags().DurationVar(&watchDebounce, "debounce", watcher.DefaultDebounce, "Quiet period before a burst of writes is reported")
	rootCmd.AddCommand(watchCmd)
}

func runWatch(cmd *cobra.Command, args []string) error {
	m := mgr()
	m.LoadAllProfiles()

	w, err := watcher.New(watcher.WithDebounce(watchDebounce))
	if err != nil {
		return errors.Wrap(errors.ExitGeneralError, "failed to start watcher", err)
	}
	defer w.Close()

	for _, dir := range paths().ProfileDirs() {
		if err := w.Watch(dir); err != nil {
			logWarning("Not watching %s: %v", dir, err)
		}
	}
	dirs := w.Dirs()
	if len(dirs) == 0 {
		return errors.ConfigError("no profile directory exists", nil)
	}
	logInfo("Watching %s", strings.Join(dirs, ", "))

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	return watchLoop(ctx, m, w.Events(), w.Errors(), cmd.OutOrStdout())
}

// watchLoop applies file events to m until ctx is done or events is
// closed.
func watchLoop(ctx context.Context, m *manager.Manager, events <-chan watcher.Event, errs <-chan error, out io.Writer) error {
	for {
		select {
		case <-ctx.Done():
			return nil

		case err, ok := <-errs:
			if !ok {
				errs = nil
				continue
			}
			logging.Warn("watch error", "error", err)

		case ev, ok := <-events:
			if !ok {
				return nil
			}
			handleFileEvent(m, ev, out)
		}
	}
}

func handleFileEvent(m *manager.Manager, ev watcher.Event, out io.Writer) {
	switch ev.Op {
	case watcher.Removed:
		fmt.Fprintf(out, "removed %s\n", ev.Path)

	case watcher.Changed:
		changed, err := m.ReloadProfile(ev.Path)
		switch {
		case errors.Is(err, manager.ErrNotLoaded):
			p, err := m.LoadProfile(ev.Path)
			if err != nil {
				logWarning("Failed to load %s: %v", ev.Path, err)
				return
			}
			fmt.Fprintf(out, "added %s (%s)\n", displayName(p), ev.Path)
		case err != nil:
			logWarning("Failed to reload %s: %v", ev.Path, err)
		case len(changed) == 0:
			logging.Debug("profile unchanged", "path", ev.Path)
		default:
			names := make([]string, 0, len(changed))
			for _, id := range changed {
				names = append(names, id.String())
			}
			p, _ := m.LoadProfile(ev.Path)
			name := ev.Path
			if p != nil {
				name = displayName(p)
			}
			fmt.Fprintf(out, "changed %s: %s\n", name, strings.Join(names, ", "))
		}
	}
}
