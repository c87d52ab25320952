package commands

import (
	"fmt"
	"io/fs"
	"path/filepath"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/cobra"
)

// debounceDelay coalesces editor save bursts into one re-run.
const debounceDelay = 250 * time.Millisecond

// NewWatchCommand creates the watch command.
func NewWatchCommand() *cobra.Command {
	opts := &ExtractOptions{}

	cmd := &cobra.Command{
		Use:   "watch <path>",
		Short: "Re-run extraction when inputs change",
		Long: `Watch a file or directory and re-run extraction whenever a SQL input
changes. Useful while iterating on query files.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runWatch(cmd, args[0], opts)
		},
	}

	cmd.Flags().BoolVar(&opts.NoExport, "no-export", true, "Skip CSV export, console report only")

	return cmd
}

func runWatch(cmd *cobra.Command, path string, opts *ExtractOptions) error {
	logger := getLogger(cmd)

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create watcher: %w", err)
	}
	defer func() { _ = watcher.Close() }()

	if err := watchRecursive(watcher, path); err != nil {
		return err
	}

	// Initial pass before waiting for events.
	if err := runExtract(cmd, path, opts); err != nil {
		return err
	}
	_, _ = fmt.Fprintln(cmd.OutOrStdout(), "watching for changes (ctrl-c to stop)")

	var timer *time.Timer
	pending := make(chan struct{}, 1)
	for {
		select {
		case <-cmd.Context().Done():
			return nil

		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if !isInputEvent(event) {
				continue
			}
			// New directories need watching too.
			if event.Op.Has(fsnotify.Create) {
				_ = watchRecursive(watcher, event.Name)
			}
			if timer == nil {
				timer = time.AfterFunc(debounceDelay, func() { pending <- struct{}{} })
			} else {
				timer.Reset(debounceDelay)
			}

		case <-pending:
			timer = nil
			logger.Debug("inputs changed, re-running extraction", "path", path)
			if err := runExtract(cmd, path, opts); err != nil {
				_, _ = fmt.Fprintf(cmd.ErrOrStderr(), "Error: %v\n", err)
			}

		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			_, _ = fmt.Fprintf(cmd.ErrOrStderr(), "watch error: %v\n", err)
		}
	}
}

// watchRecursive registers path and, for directories, every subdirectory.
func watchRecursive(watcher *fsnotify.Watcher, path string) error {
	return filepath.WalkDir(path, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			// The path may already be gone again; skip it.
			return nil
		}
		if d.IsDir() {
			if err := watcher.Add(p); err != nil {
				return fmt.Errorf("failed to watch %s: %w", p, err)
			}
			return nil
		}
		if p == path {
			// Watching a single file directly.
			if err := watcher.Add(p); err != nil {
				return fmt.Errorf("failed to watch %s: %w", p, err)
			}
		}
		return nil
	})
}

// isInputEvent reports whether an fsnotify event concerns a SQL input.
func isInputEvent(event fsnotify.Event) bool {
	if !event.Op.Has(fsnotify.Write) && !event.Op.Has(fsnotify.Create) &&
		!event.Op.Has(fsnotify.Remove) && !event.Op.Has(fsnotify.Rename) {
		return false
	}
	switch strings.ToLower(filepath.Ext(event.Name)) {
	case ".sql", ".txt", ".csv":
		return true
	}
	// Could be a directory event; let the re-run sort it out.
	return filepath.Ext(event.Name) == ""
}
