package cli

import (
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/cobra"
)

// watchDebounce coalesces bursts of write events from editors that save in
// several steps.
const watchDebounce = 500 * time.Millisecond

// watchCmd re-summarizes a file whenever it changes on disk.
var watchCmd = &cobra.Command{
	Use:   "watch <file>",
	Short: "Re-summarize a Python file whenever it changes",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runWatch(cmd, args[0])
	},
}

func init() {
	rootCmd.AddCommand(watchCmd)
}

// runWatch summarizes the file once, then again after every write, until
// interrupted.
func runWatch(cmd *cobra.Command, path string) error {
	info, err := os.Stat(path)
	if err != nil {
		return err
	}
	if info.IsDir() {
		return fmt.Errorf("watch expects a file, got directory: %s", path)
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer watcher.Close()

	// Watch the parent directory: editors replace files on save, which
	// drops a watch placed on the file itself.
	if err := watcher.Add(filepath.Dir(path)); err != nil {
		return err
	}

	if err := runSummarize(cmd, path); err != nil {
		fmt.Fprintln(os.Stderr, err)
	}

	interrupt := make(chan os.Signal, 1)
	signal.Notify(interrupt, os.Interrupt)
	defer signal.Stop(interrupt)

	var debounceTimer *time.Timer
	var timerCh <-chan time.Time
	target := filepath.Clean(path)

	for {
		select {
		case <-interrupt:
			return nil

		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(event.Name) != target {
				continue
			}
			if event.Op&(fsnotify.Write|fsnotify.Create) == 0 {
				continue
			}

			if debounceTimer != nil {
				debounceTimer.Stop()
			}
			debounceTimer = time.NewTimer(watchDebounce)
			timerCh = debounceTimer.C

		case <-timerCh:
			timerCh = nil
			if err := runSummarize(cmd, path); err != nil {
				fmt.Fprintln(os.Stderr, err)
			}

		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			fmt.Fprintln(os.Stderr, "watch error:", err)
		}
	}
}
