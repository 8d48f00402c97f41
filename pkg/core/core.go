package core

import (
	"context"

	"github.com/latebind/latebind/internal/engine"
	"github.com/latebind/latebind/internal/rules"
	"github.com/latebind/latebind/internal/types"
)

// Re-export selected internal types as a stable public API surface.
type (
	Config   = engine.Config
	Result   = engine.Result
	Input    = engine.Input
	Finding  = types.Finding
	Report   = types.Report
	Summary  = types.Summary
	Severity = types.Severity
	Verdict  = types.Verdict
)

const (
	SevP1 = types.SevP1
	SevP2 = types.SevP2
	SevP3 = types.SevP3
	Pass  = types.Pass
	Block = types.Block
)

// Evaluate runs every default rule over one file's content.
func Evaluate(path string, content []byte) []Finding {
	return rules.Evaluate(path, content)
}

// Scan evaluates cfg.Paths and returns the findings.
func Scan(ctx context.Context, cfg Config) ([]Finding, error) {
	return engine.Scan(ctx, cfg)
}

// ScanWithStats evaluates cfg.Paths and returns the full report with timing.
func ScanWithStats(ctx context.Context, cfg Config) (Result, error) {
	return engine.ScanWithStats(ctx, cfg)
}

// ScanFiles is the short form: default rules over paths relative to root.
func ScanFiles(ctx context.Context, root string, paths []string) (Report, error) {
	res, err := engine.ScanWithStats(ctx, Config{Root: root, Paths: paths})
	if err != nil {
		return Report{}, err
	}
	return res.Report, nil
}

// ScanInputs evaluates in-memory files.
func ScanInputs(ctx context.Context, inputs []Input) (Report, error) {
	res, err := engine.ScanInputs(ctx, Config{}, inputs)
	if err != nil {
		return Report{}, err
	}
	return res.Report, nil
}

// Decide maps a summary to the gating verdict.
func Decide(s Summary) Verdict { return types.Decide(s) }

// RuleIDs returns the IDs of the built-in rules in evaluation order.
func RuleIDs() []string { return rules.IDs() }
