package latebind

import (
	"context"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/cobra"

	"github.com/latebind/latebind/internal/cache"
	"github.com/latebind/latebind/internal/engine"
	"github.com/latebind/latebind/internal/report"
)

func init() {
	var debounce time.Duration
	cmd := &cobra.Command{
		Use:   "watch",
		Short: "Re-evaluate files as they change",
		Long:  "Watches the repository and evaluates each batch of changed source files after a quiet period.",
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := resolveScan(cmd, args)
			if err != nil {
				return err
			}
			w, err := fsnotify.NewWatcher()
			if err != nil {
				return fmt.Errorf("watch init failed: %w", err)
			}
			defer w.Close()
			if err := addWatchRecursive(w, s.root); err != nil {
				return fmt.Errorf("watch failed: %w", err)
			}
			out := cmd.OutOrStdout()
			opts := report.PrintOptions{NoColor: s.noColor || !isTerminal(out)}
			fmt.Fprintf(cmd.ErrOrStderr(), "watching %s (ctrl-c to stop)\n", s.root)
			seen := cache.New()
			return watchLoop(cmd.Context(), w, s.root, debounce, func(paths []string) {
				paths = seen.Filter(s.root, paths)
				if len(paths) == 0 {
					return
				}
				cfg := s.engine
				cfg.Paths = paths
				res, err := engine.ScanWithStats(cmd.Context(), cfg)
				if err != nil {
					return
				}
				printBatch(out, res, opts)
			})
		},
	}
	cmd.Flags().StringVarP(&flagPath, "path", "p", ".", "repository path to watch")
	cmd.Flags().BoolVar(&flagJSON, "json", false, "print each batch as a JSON report")
	cmd.Flags().StringVar(&flagInclude, "include", "", "comma-separated include globs")
	cmd.Flags().StringVar(&flagExclude, "exclude", "", "comma-separated exclude globs")
	cmd.Flags().StringVar(&flagEnable, "enable", "", "only run these rules (comma-separated IDs)")
	cmd.Flags().StringVar(&flagDisable, "disable", "", "skip these rules (comma-separated IDs)")
	cmd.Flags().BoolVar(&flagEveryLine, "every-line", false, "report every implicit-context line, not only the first")
	cmd.Flags().BoolVar(&flagDefaultEx, "default-excludes", false, "skip vendored and generated paths")
	cmd.Flags().DurationVar(&debounce, "debounce", 300*time.Millisecond, "quiet period before evaluating a batch")
	rootCmd.AddCommand(cmd)
}

func printBatch(w io.Writer, res engine.Result, opts report.PrintOptions) {
	if flagJSON {
		_ = report.WriteJSON(w, res.Report)
		return
	}
	if len(res.Report.Findings) > 0 {
		_ = report.PrintTable(w, res.Report.Findings, opts)
	}
	opts.Duration = res.Duration
	report.PrintSummary(w, res.Report, opts)
}

// addWatchRecursive registers root and every directory below it, skipping
// .git and the default-excluded vendor directories.
func addWatchRecursive(w *fsnotify.Watcher, root string) error {
	return filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return nil
		}
		if !d.IsDir() {
			return nil
		}
		if path != root && skipWatchDir(d.Name()) {
			return filepath.SkipDir
		}
		return w.Add(path)
	})
}

func skipWatchDir(name string) bool {
	return name == ".git" || engine.IsDefaultDirExcluded(name)
}

// watchLoop collects scannable paths from w and hands them to onBatch, sorted
// and relative to root, once no event has arrived for the debounce period.
// It returns when ctx is done or the watcher closes.
func watchLoop(ctx context.Context, w *fsnotify.Watcher, root string, debounce time.Duration, onBatch func([]string)) error {
	pending := map[string]struct{}{}
	timer := time.NewTimer(debounce)
	timer.Stop()
	for {
		select {
		case <-ctx.Done():
			return nil
		case ev, ok := <-w.Events:
			if !ok {
				return nil
			}
			if ev.Has(fsnotify.Create) {
				if info, err := os.Stat(ev.Name); err == nil && info.IsDir() {
					if !skipWatchDir(info.Name()) {
						_ = addWatchRecursive(w, ev.Name)
					}
					continue
				}
			}
			if !ev.Has(fsnotify.Write) && !ev.Has(fsnotify.Create) && !ev.Has(fsnotify.Rename) {
				continue
			}
			if !engine.Scannable(ev.Name) {
				continue
			}
			rel, err := filepath.Rel(root, ev.Name)
			if err != nil {
				continue
			}
			pending[filepath.ToSlash(rel)] = struct{}{}
			timer.Reset(debounce)
		case err, ok := <-w.Errors:
			if !ok {
				return nil
			}
			logger.Warnw("watch error", "error", err)
		case <-timer.C:
			if len(pending) == 0 {
				continue
			}
			batch := make([]string, 0, len(pending))
			for p := range pending {
				batch = append(batch, p)
			}
			sort.Strings(batch)
			pending = map[string]struct{}{}
			onBatch(batch)
		}
	}
}
