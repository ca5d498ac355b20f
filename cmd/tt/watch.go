package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/cobra"
)

var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Redraw the task forest whenever the task file changes",
	Args:  cobra.NoArgs,
	RunE:  runWatch,
}

var watchDebounce time.Duration

func init() {
	rootCmd.AddCommand(watchCmd)
	watchCmd.Flags().DurationVar(&watchDebounce, "debounce", 100*time.Millisecond, "Delay before redrawing after a change")
}

func runWatch(cmd *cobra.Command, args []string) error {
	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	out := cmd.OutOrStdout()
	draw := func() {
		store, err := loadStore()
		if err != nil {
			app.logger.Warn("reload failed", "store", app.storePath, "error", err)
			return
		}
		fmt.Fprintf(out, "%s\n%s\n", app.styles.Header.Render(time.Now().Format(time.TimeOnly)), renderTree(store, nil, app.threshold))
	}

	draw()
	return watchFile(ctx, app.logger, app.storePath, watchDebounce, draw)
}

// watchFile calls onChange after path is written, replaced or removed,
// waiting for debounce to pass without further events. It returns nil when
// ctx is done.
func watchFile(ctx context.Context, logger *slog.Logger, path string, debounce time.Duration, onChange func()) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("create watcher: %w", err)
	}
	defer watcher.Close()

	// Watch the directory: the file is replaced by rename on every save.
	path = filepath.Clean(path)
	if err := watcher.Add(filepath.Dir(path)); err != nil {
		return fmt.Errorf("watch %s: %w", filepath.Dir(path), err)
	}

	timer := time.NewTimer(debounce)
	if !timer.Stop() {
		<-timer.C
	}
	defer timer.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(event.Name) != path || event.Op == fsnotify.Chmod {
				continue
			}
			timer.Reset(debounce)
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			logger.Warn("watch error", "error", err)
		case <-timer.C:
			onChange()
		}
	}
}
