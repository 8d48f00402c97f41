package latebind

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/latebind/latebind/internal/logging"
)

var (
	flagThreads int
	flagNoColor bool
	flagDebug   bool

	version = "0.1.0"

	logger = logging.Nop()
)

// rootCmd is the base Cobra command for the latebind CLI.
var rootCmd = &cobra.Command{
	Use:   "latebind",
	Short: "Block destructive writes to append-only ledgers",
	Long: "latebind scans changed (or all tracked) source files for late-binding violations: " +
		"truncating ledger writes, UPDATE/DELETE on event tables, implicit global context and " +
		"ledger writes without an actor. Any P1 finding exits 1.",
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(_ *cobra.Command, _ []string) error {
		l, err := logging.New(flagDebug)
		if err != nil {
			return fmt.Errorf("init logger: %w", err)
		}
		logger = l
		return nil
	},
}

// exitError carries a non-zero exit status that is not a failure of the
// command itself, such as a blocking verdict.
type exitError struct{ code int }

func (e exitError) Error() string { return fmt.Sprintf("exit status %d", e.code) }

// Execute runs the latebind CLI. It should be called by the main package.
func Execute() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

// run executes the command tree and maps the outcome to an exit code:
// 0 pass, 1 blocking findings, 2 usage or runtime error.
func run(args []string, stdout, stderr io.Writer) int {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Subcommands keep the context of their first execution; hand every
	// run its own.
	setContext(rootCmd, ctx)
	rootCmd.SetArgs(args)
	rootCmd.SetOut(stdout)
	rootCmd.SetErr(stderr)
	err := rootCmd.ExecuteContext(ctx)
	defer func(l *zap.SugaredLogger) { _ = l.Sync() }(logger)

	var ee exitError
	switch {
	case err == nil:
		return 0
	case errors.As(err, &ee):
		return ee.code
	default:
		fmt.Fprintln(stderr, "error:", err)
		return 2
	}
}

func setContext(c *cobra.Command, ctx context.Context) {
	c.SetContext(ctx)
	for _, sub := range c.Commands() {
		setContext(sub, ctx)
	}
}

func init() {
	rootCmd.PersistentFlags().IntVar(&flagThreads, "threads", 0, "worker count (0 = GOMAXPROCS)")
	rootCmd.PersistentFlags().BoolVar(&flagNoColor, "no-color", false, "disable colorized output")
	rootCmd.PersistentFlags().BoolVar(&flagDebug, "debug", false, "verbose diagnostics on stderr")
	rootCmd.Version = version
}
