package engine

import (
	"context"
	"os"
	"runtime"
	"sync"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/latebind/latebind/internal/logging"
	"github.com/latebind/latebind/internal/rules"
	"github.com/latebind/latebind/internal/types"
)

// Config controls candidate selection and rule behavior for one invocation.
type Config struct {
	// Root resolves relative Paths and locates the ignore file.
	Root string
	// Paths is the ordered candidate list from the file selector.
	Paths []string

	IncludeGlobs    string
	ExcludeGlobs    string
	DefaultExcludes bool
	Threads         int

	Rules    rules.Options
	Progress func()
	Logger   *zap.SugaredLogger
}

// Result wraps the report with timing.
type Result struct {
	Report   types.Report
	Duration time.Duration
}

// Input is an in-memory file, used when content does not come from disk.
type Input struct {
	Path    string `json:"path"`
	Content string `json:"content"`
}

// RuleIDs returns the IDs of the rules cfg would run.
func RuleIDs(cfg Config) []string {
	var ids []string
	for _, r := range rules.New(cfg.Rules).Rules() {
		ids = append(ids, r.ID)
	}
	return ids
}

// Scan runs a scan and returns only findings.
func Scan(ctx context.Context, cfg Config) ([]types.Finding, error) {
	res, err := ScanWithStats(ctx, cfg)
	if err != nil {
		return nil, err
	}
	return res.Report.Findings, nil
}

// ScanWithStats evaluates every candidate file and builds the report. A file
// that cannot be read counts as scanned and contributes no findings. The
// only error is context cancellation.
func ScanWithStats(ctx context.Context, cfg Config) (Result, error) {
	log := logging.OrNop(cfg.Logger)
	started := time.Now()
	files := Candidates(cfg)
	log.Debugw("candidates selected", "paths", len(cfg.Paths), "candidates", len(files))

	eng := rules.New(cfg.Rules)
	perFile, err := evaluateOrdered(ctx, cfg, len(files), func(i int) []types.Finding {
		data, err := os.ReadFile(resolve(cfg.Root, files[i]))
		if err != nil {
			log.Debugw("skipping unreadable file", "path", files[i], "error", err)
			return nil
		}
		return eng.Evaluate(files[i], data)
	})
	if err != nil {
		return Result{}, err
	}
	return Result{Report: types.NewReport(len(files), flatten(perFile)), Duration: time.Since(started)}, nil
}

// ScanInputs evaluates in-memory files. Only the extension and glob checks
// apply; there is nothing on disk to look for.
func ScanInputs(ctx context.Context, cfg Config, inputs []Input) (Result, error) {
	started := time.Now()
	var selected []Input
	for _, in := range inputs {
		if in.Path != "" && eligible(in.Path, cfg, noIgnore) {
			selected = append(selected, in)
		}
	}
	eng := rules.New(cfg.Rules)
	perFile, err := evaluateOrdered(ctx, cfg, len(selected), func(i int) []types.Finding {
		return eng.Evaluate(selected[i].Path, []byte(selected[i].Content))
	})
	if err != nil {
		return Result{}, err
	}
	return Result{Report: types.NewReport(len(selected), flatten(perFile)), Duration: time.Since(started)}, nil
}

// evaluateOrdered runs eval for indices [0,n) on a bounded pool and stores
// results by index, so the caller sees candidate order regardless of
// completion order.
func evaluateOrdered(ctx context.Context, cfg Config, n int, eval func(i int) []types.Finding) ([][]types.Finding, error) {
	out := make([][]types.Finding, n)
	var mu sync.Mutex
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(workerCount(cfg.Threads))
	for i := 0; i < n; i++ {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			out[i] = eval(i)
			if cfg.Progress != nil {
				mu.Lock()
				cfg.Progress()
				mu.Unlock()
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return out, nil
}

func flatten(perFile [][]types.Finding) []types.Finding {
	out := []types.Finding{}
	for _, fs := range perFile {
		out = append(out, fs...)
	}
	return out
}

func workerCount(threads int) int {
	if threads <= 0 {
		threads = runtime.GOMAXPROCS(0)
	}
	if threads > 32 {
		threads = 32
	}
	return threads
}
