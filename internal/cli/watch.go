package cli

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/cobra"

	"github.com/yildizm/TweetSense/internal/analysis"
	"github.com/yildizm/TweetSense/internal/emoji"
)

var watchDebounce time.Duration

func newWatchCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "watch [file]",
		Short: "Re-analyze a spreadsheet whenever it changes",
		Long: `Watch a tweet spreadsheet and re-analyze it each time it is saved.

The file is analyzed once on start, then again after every change. Each
run prints a one-line summary. Press Ctrl+C to stop watching.

Examples:
  tweetsense watch tweets.xlsx
  tweetsense watch --debounce 2s tweets.csv`,
		Args: cobra.ExactArgs(1),
		RunE: runWatch,
	}

	cmd.Flags().DurationVar(&watchDebounce, "debounce", 500*time.Millisecond, "wait this long after the last change before analyzing")

	return cmd
}

func runWatch(cmd *cobra.Command, args []string) error {
	filename := args[0]

	watcher, target, err := setupFileWatcher(filename)
	if err != nil {
		return err
	}
	defer cleanupWatcher(watcher)

	svc, err := newServices(GetGlobalConfig(), false)
	if err != nil {
		return fmt.Errorf("failed to create backend client: %w", err)
	}
	defer svc.Close()

	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	out := cmd.OutOrStdout()
	analyze := func() {
		report, err := analyzeFile(ctx, svc, target)
		if ctx.Err() != nil {
			return
		}
		fmt.Fprintln(out, summaryLine(time.Now(), filepath.Base(target), report, err))
	}

	fmt.Fprintf(cmd.ErrOrStderr(), "%s Watching %s (Ctrl+C to stop)\n", emoji.GetEmoji("watch"), target)
	analyze()

	return runWatchLoop(ctx, watcher, target, watchDebounce, analyze)
}

// summaryLine renders one watch run as a single line
func summaryLine(at time.Time, source string, report *analysis.Report, err error) string {
	stamp := at.Format("15:04:05")
	if err != nil {
		return fmt.Sprintf("[%s] %s %s: %v", stamp, emoji.GetEmoji("error"), source, err)
	}

	stats := report.Stats
	line := fmt.Sprintf("[%s] %s %s: %d tweets | %s %d (%s) | %s %d (%s)",
		stamp, emoji.GetEmoji("tweet"), source, stats.Total(),
		emoji.GetEmoji("positive"), stats.Positive, analysis.FormatPercent(stats.PositivePercent()),
		emoji.GetEmoji("negative"), stats.Negative, analysis.FormatPercent(stats.NegativePercent()))
	if stats.Other > 0 {
		line += fmt.Sprintf(" | %s %d other", emoji.GetEmoji("other"), stats.Other)
	}
	return line
}

// cleanupWatcher safely closes watcher with error logging
func cleanupWatcher(watcher *fsnotify.Watcher) {
	if err := watcher.Close(); err != nil && isVerbose() {
		fmt.Fprintf(os.Stderr, "Warning: failed to close watcher: %v\n", err)
	}
}

// createWatcher watches the directory holding filename. Spreadsheet
// editors save by replacing the file, which drops a watch on the file
// itself.
func createWatcher(filename string) (*fsnotify.Watcher, error) {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed to create watcher: %w", err)
	}

	if err := watcher.Add(filepath.Dir(filename)); err != nil {
		cleanupWatcher(watcher)
		return nil, fmt.Errorf("failed to watch file: %w", err)
	}

	return watcher, nil
}

// setupFileWatcher validates filename and starts watching it. The
// returned path is absolute so events can be matched against it.
func setupFileWatcher(filename string) (*fsnotify.Watcher, string, error) {
	if err := validateWatchFilePath(filename); err != nil {
		return nil, "", fmt.Errorf("invalid file path: %w", err)
	}

	target, err := filepath.Abs(filepath.Clean(filename))
	if err != nil {
		return nil, "", fmt.Errorf("failed to resolve path: %w", err)
	}

	watcher, err := createWatcher(target)
	if err != nil {
		return nil, "", err
	}

	return watcher, target, nil
}

// runWatchLoop calls analyze once changes to target settle for debounce.
// It returns when ctx is done.
func runWatchLoop(ctx context.Context, watcher *fsnotify.Watcher, target string, debounce time.Duration, analyze func()) error {
	return watchEvents(ctx, watcher.Events, watcher.Errors, target, debounce, analyze)
}

func watchEvents(ctx context.Context, events <-chan fsnotify.Event, errs <-chan error, target string, debounce time.Duration, analyze func()) error {
	timer := time.NewTimer(debounce)
	if !timer.Stop() {
		<-timer.C
	}
	defer timer.Stop()

	for {
		select {
		case <-ctx.Done():
			if isVerbose() {
				fmt.Fprintf(os.Stderr, "\nReceived interrupt signal, stopping...\n")
			}
			return nil

		case event, ok := <-events:
			if !ok {
				return fmt.Errorf("watcher events channel closed")
			}
			if isRelevantEvent(event, target) {
				timer.Reset(debounce)
			}

		case <-timer.C:
			analyze()

		case err, ok := <-errs:
			if !ok {
				return fmt.Errorf("watcher errors channel closed")
			}
			if isVerbose() {
				fmt.Fprintf(os.Stderr, "Watcher error: %v\n", err)
			}
		}
	}
}

// isRelevantEvent reports whether event rewrote target
func isRelevantEvent(event fsnotify.Event, target string) bool {
	if filepath.Clean(event.Name) != target {
		return false
	}
	return event.Has(fsnotify.Write) || event.Has(fsnotify.Create)
}

// validateWatchFilePath checks that path names an existing spreadsheet
// outside the system directories
func validateWatchFilePath(path string) error {
	cleanPath := filepath.Clean(path)

	if strings.HasPrefix(cleanPath, "/proc/") ||
		strings.HasPrefix(cleanPath, "/sys/") ||
		strings.HasPrefix(cleanPath, "/dev/") {
		return fmt.Errorf("cannot watch system files: %s", cleanPath)
	}

	return validateFilePath(cleanPath)
}
