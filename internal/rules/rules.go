package rules

import (
	"path/filepath"
	"strings"

	"github.com/latebind/latebind/internal/types"
)

// File is one decoded input handed to every rule.
type File struct {
	Path  string
	Text  string
	Lines []string
}

// Ext is the file's suffix as used for rule dispatch (case-sensitive).
func (f File) Ext() string { return filepath.Ext(f.Path) }

// Rule is a single detector. Applies is the cheap precondition, Exempt the
// whole-file exemption check, and Detect the per-line pass.
type Rule struct {
	ID       string
	Title    string
	Severity types.Severity
	Applies  func(f File) bool
	Exempt   Exemption
	Detect   func(f File) []types.Finding
}

func (r Rule) eval(f File) []types.Finding {
	if r.Applies != nil && !r.Applies(f) {
		return nil
	}
	if r.Exempt != nil && r.Exempt.Check(f) {
		return nil
	}
	return r.Detect(f)
}

// Run evaluates this rule alone against raw content.
func (r Rule) Run(path string, data []byte) []types.Finding {
	return r.eval(Decode(path, data))
}

func (r Rule) finding(path string, line int, body string) types.Finding {
	return types.Finding{
		Severity: r.Severity,
		Path:     path,
		Line:     line,
		Rule:     r.ID,
		Title:    r.Title,
		Body:     body,
	}
}

// Rule IDs in evaluation order.
const (
	IDLedgerOverwrite   = "ledger-overwrite"
	IDMutableEventTable = "mutable-event-table"
	IDImplicitContext   = "implicit-context"
	IDMissingActor      = "missing-actor"
)

// IDs returns every rule ID in evaluation order.
func IDs() []string {
	return []string{IDLedgerOverwrite, IDMutableEventTable, IDImplicitContext, IDMissingActor}
}

// ImplicitContextPolicy controls how many implicit-context findings a file yields.
type ImplicitContextPolicy int

const (
	// FirstMatch reports the first matching line only.
	FirstMatch ImplicitContextPolicy = iota
	// EveryLine reports every matching line.
	EveryLine
)

// Options tunes rule selection and the configurable heuristics.
type Options struct {
	// Enable and Disable are comma-separated rule IDs. Empty Enable means all.
	Enable  string
	Disable string

	ImplicitContext ImplicitContextPolicy
	// ContextTokens replaces the default global-context identifiers when set.
	ContextTokens []string

	// Exemptions overrides a rule's exemption check by rule ID. A nil value
	// removes the exemption.
	Exemptions map[string]Exemption
}

// Engine evaluates the configured rule set.
type Engine struct {
	rules []Rule
}

// New builds an engine from opts.
func New(opts Options) *Engine {
	all := []Rule{
		LedgerOverwrite(),
		MutableEventTable(),
		ImplicitContext(opts.ContextTokens, opts.ImplicitContext),
		MissingActor(),
	}
	enabled := idSet(opts.Enable)
	disabled := idSet(opts.Disable)
	var rs []Rule
	for _, r := range all {
		if len(enabled) > 0 && !enabled[r.ID] {
			continue
		}
		if disabled[r.ID] {
			continue
		}
		if ex, ok := opts.Exemptions[r.ID]; ok {
			r.Exempt = ex
		}
		rs = append(rs, r)
	}
	return &Engine{rules: rs}
}

var defaultEngine = New(Options{})

// Default returns the engine with every rule at default settings.
func Default() *Engine { return defaultEngine }

// Rules returns the active rules in evaluation order.
func (e *Engine) Rules() []Rule {
	out := make([]Rule, len(e.rules))
	copy(out, e.rules)
	return out
}

// Lookup finds an active rule by ID.
func (e *Engine) Lookup(id string) (Rule, bool) {
	for _, r := range e.rules {
		if r.ID == id {
			return r, true
		}
	}
	return Rule{}, false
}

// Evaluate runs every active rule over one file. It never fails: content is
// decoded leniently and each rule is total over any string.
func (e *Engine) Evaluate(path string, data []byte) []types.Finding {
	f := Decode(path, data)
	var out []types.Finding
	for _, r := range e.rules {
		out = append(out, r.eval(f)...)
	}
	return out
}

// Evaluate runs the default rule set.
func Evaluate(path string, data []byte) []types.Finding {
	return defaultEngine.Evaluate(path, data)
}

// EvaluateRule runs a single default rule by ID. ok is false for unknown IDs.
func EvaluateRule(id, path string, data []byte) (fs []types.Finding, ok bool) {
	r, ok := defaultEngine.Lookup(id)
	if !ok {
		return nil, false
	}
	return r.Run(path, data), true
}

// Decode turns raw bytes into a File, replacing invalid UTF-8 sequences.
func Decode(path string, data []byte) File {
	text := strings.ToValidUTF8(string(data), "\uFFFD")
	return File{Path: path, Text: text, Lines: splitLines(text)}
}

// splitLines splits on \n, \r\n and \r. A trailing terminator does not
// start an extra empty line.
func splitLines(text string) []string {
	if text == "" {
		return nil
	}
	text = strings.ReplaceAll(text, "\r\n", "\n")
	text = strings.ReplaceAll(text, "\r", "\n")
	lines := strings.Split(text, "\n")
	if lines[len(lines)-1] == "" {
		lines = lines[:len(lines)-1]
	}
	return lines
}

func idSet(list string) map[string]bool {
	out := map[string]bool{}
	for _, id := range strings.Split(list, ",") {
		if id = strings.TrimSpace(id); id != "" {
			out[id] = true
		}
	}
	return out
}
