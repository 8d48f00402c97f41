package latebind

import (
	"fmt"
	"io"
	"path/filepath"
	"strings"
	"sync/atomic"

	"github.com/spf13/cobra"

	"github.com/latebind/latebind/internal/config"
	"github.com/latebind/latebind/internal/engine"
	"github.com/latebind/latebind/internal/git"
	"github.com/latebind/latebind/internal/report"
	"github.com/latebind/latebind/internal/tui"
	"github.com/latebind/latebind/internal/types"
)

const defaultBase = "origin/main"

var (
	flagPath       string
	flagBase       string
	flagAll        bool
	flagJSON       bool
	flagSARIF      bool
	flagTable      bool
	flagTUI        bool
	flagInclude    string
	flagExclude    string
	flagEnable     string
	flagDisable    string
	flagEveryLine  bool
	flagGitBackend string
	flagDefaultEx  bool
)

func init() {
	cmd := &cobra.Command{
		Use:   "scan [base]",
		Short: "Check changed (or all tracked) files for late-binding violations",
		Long: "Selects files changed against the base revision (or every tracked file with --all), " +
			"evaluates every rule and prints the JSON report followed by a summary. " +
			"Exits 1 when any P1 finding exists. Recognized extensions: " + strings.Join(engine.Extensions(), ", "),
		Args: cobra.MaximumNArgs(1),
		RunE: runScan,
	}
	rootCmd.AddCommand(cmd)

	cmd.Flags().StringVarP(&flagPath, "path", "p", ".", "repository path to scan")
	cmd.Flags().StringVar(&flagBase, "base", defaultBase, "base revision for changed-file selection")
	cmd.Flags().BoolVar(&flagAll, "all", false, "scan every tracked file instead of changed files")
	cmd.Flags().BoolVar(&flagJSON, "json", false, "machine-readable output only")
	cmd.Flags().BoolVar(&flagSARIF, "sarif", false, "emit only a SARIF 2.1.0 document on stdout")
	cmd.Flags().BoolVar(&flagTable, "table", false, "print a findings table before the summary")
	cmd.Flags().BoolVar(&flagTUI, "tui", false, "browse findings interactively")
	cmd.Flags().StringVar(&flagInclude, "include", "", "comma-separated include globs")
	cmd.Flags().StringVar(&flagExclude, "exclude", "", "comma-separated exclude globs")
	cmd.Flags().StringVar(&flagEnable, "enable", "", "only run these rules (comma-separated IDs)")
	cmd.Flags().StringVar(&flagDisable, "disable", "", "skip these rules (comma-separated IDs)")
	cmd.Flags().BoolVar(&flagEveryLine, "every-line", false, "report every implicit-context line, not only the first")
	cmd.Flags().StringVar(&flagGitBackend, "git-backend", git.BackendAuto, "file selection backend: auto | cli | library")
	cmd.Flags().BoolVar(&flagDefaultEx, "default-excludes", false, "skip vendored and generated paths (node_modules, dist, *.min.js)")
}

// scanSettings is the resolved invocation: flags over local over global.
type scanSettings struct {
	root    string
	base    string
	backend string
	noColor bool
	engine  engine.Config
}

func resolveScan(cmd *cobra.Command, args []string) (scanSettings, error) {
	abs, err := resolveRoot(flagPath)
	if err != nil {
		return scanSettings{}, err
	}
	root := git.TopLevel(abs)

	cli := config.FileConfig{
		Base:            changedString(cmd, "base", flagBase),
		Include:         changedString(cmd, "include", flagInclude),
		Exclude:         changedString(cmd, "exclude", flagExclude),
		Enable:          changedString(cmd, "enable", flagEnable),
		Disable:         changedString(cmd, "disable", flagDisable),
		Threads:         changedInt(cmd, "threads", flagThreads),
		NoColor:         changedBool(cmd, "no-color", flagNoColor),
		DefaultExcludes: changedBool(cmd, "default-excludes", flagDefaultEx),
		GitBackend:      changedString(cmd, "git-backend", flagGitBackend),
	}
	if len(args) == 1 {
		cli.Base = strPtr(args[0])
	}
	if cmd.Flags().Changed("every-line") {
		cli.ImplicitContext = &config.ImplicitContextConfig{EveryLine: boolPtr(flagEveryLine)}
	}
	fc := config.Merge(cli, loadConfigs(root))

	ropts, err := ruleOptions(fc)
	if err != nil {
		return scanSettings{}, err
	}
	return scanSettings{
		root:    root,
		base:    deref(fc.Base, defaultBase),
		backend: deref(fc.GitBackend, git.BackendAuto),
		noColor: derefBool(fc.NoColor),
		engine: engine.Config{
			Root:            root,
			IncludeGlobs:    deref(fc.Include, ""),
			ExcludeGlobs:    deref(fc.Exclude, ""),
			DefaultExcludes: derefBool(fc.DefaultExcludes),
			Threads:         derefInt(fc.Threads),
			Rules:           ropts,
			Logger:          logger,
		},
	}, nil
}

func runScan(cmd *cobra.Command, args []string) error {
	s, err := resolveScan(cmd, args)
	if err != nil {
		return err
	}
	sel, err := git.NewSelector(s.root, s.backend)
	if err != nil {
		return err
	}
	stdout, stderr := cmd.OutOrStdout(), cmd.ErrOrStderr()

	scan := func() (engine.Result, error) {
		cfg := s.engine
		cfg.Paths = git.Select(sel, s.base, flagAll, logger)
		if !flagJSON && !flagSARIF && isTerminal(stderr) {
			total := len(cfg.Paths)
			var done int32
			cfg.Progress = func() {
				n := atomic.AddInt32(&done, 1)
				_, _ = fmt.Fprintf(stderr, "\r[%d/%d]", n, total)
			}
			defer fmt.Fprint(stderr, "\r\033[K")
		}
		res, err := engine.ScanWithStats(cmd.Context(), cfg)
		if err != nil {
			return res, fmt.Errorf("scan error: %w", err)
		}
		return res, nil
	}

	res, err := scan()
	if err != nil {
		return err
	}
	rep := res.Report
	logger.Debugw("scan complete", "files", rep.FilesScanned, "findings", len(rep.Findings), "duration", res.Duration)

	if flagTUI {
		rescan := func() ([]types.Finding, error) {
			r, err := scan()
			if err != nil {
				return nil, err
			}
			rep = r.Report
			return rep.Findings, nil
		}
		if err := tui.Run(s.root, rep.Findings, rescan); err != nil {
			return err
		}
	}

	if err := emitReport(stdout, s, rep); err != nil {
		return err
	}
	if !flagJSON && !flagSARIF && !flagTUI {
		opts := report.PrintOptions{NoColor: s.noColor || !isTerminal(stdout)}
		if flagTable {
			if err := report.PrintTable(stdout, rep.Findings, opts); err != nil {
				return err
			}
		}
		report.PrintSummary(stdout, rep, opts)
	}
	if code := rep.Verdict().ExitCode(); code != 0 {
		return exitError{code: code}
	}
	return nil
}

func emitReport(w io.Writer, s scanSettings, rep types.Report) error {
	if !flagSARIF {
		return report.WriteJSON(w, rep)
	}
	md := git.RepoMetadata(s.root)
	if err := report.WriteSARIF(w, relativize(s.root, rep), report.SARIFMeta{
		Version: version,
		Repo:    md.Repo,
		Commit:  md.Commit,
		Branch:  md.Branch,
	}); err != nil {
		return fmt.Errorf("sarif error: %w", err)
	}
	return nil
}

// relativize rewrites absolute finding paths relative to root, which SARIF
// consumers expect.
func relativize(root string, rep types.Report) types.Report {
	fs := make([]types.Finding, len(rep.Findings))
	for i, f := range rep.Findings {
		if filepath.IsAbs(f.Path) {
			if rel, err := filepath.Rel(root, f.Path); err == nil {
				f.Path = filepath.ToSlash(rel)
			}
		}
		fs[i] = f
	}
	return types.NewReport(rep.FilesScanned, fs)
}
