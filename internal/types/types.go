package types

import "encoding/json"

// Severity is the closed set of finding tiers. Only P1 blocks.
type Severity string

const (
	SevP1 Severity = "P1"
	SevP2 Severity = "P2"
	SevP3 Severity = "P3"
)

// Severities lists every tier in descending order of importance.
var Severities = []Severity{SevP1, SevP2, SevP3}

// Valid reports whether s is one of the known tiers.
func (s Severity) Valid() bool {
	switch s {
	case SevP1, SevP2, SevP3:
		return true
	}
	return false
}

// Blocking reports whether findings of this tier fail a gated check.
func (s Severity) Blocking() bool { return s == SevP1 }

// Label is the human wording used in summaries.
func (s Severity) Label() string {
	switch s {
	case SevP1:
		return "blocking"
	case SevP2:
		return "warning"
	case SevP3:
		return "info"
	default:
		return string(s)
	}
}

// Finding is one rule match anchored to a file and, when Line > 0, a
// 1-based line. Line 0 marks a file-scoped finding.
type Finding struct {
	Severity Severity
	Path     string
	Line     int
	Rule     string
	Title    string
	Body     string
}

// FileScoped reports whether the finding carries no line anchor.
func (f Finding) FileScoped() bool { return f.Line <= 0 }

type findingJSON struct {
	Severity Severity `json:"severity"`
	Path     string   `json:"path"`
	Line     *int     `json:"line"`
	Rule     string   `json:"rule,omitempty"`
	Title    string   `json:"title"`
	Body     string   `json:"body"`
}

// MarshalJSON encodes file-scoped findings with "line": null.
func (f Finding) MarshalJSON() ([]byte, error) {
	out := findingJSON{Severity: f.Severity, Path: f.Path, Rule: f.Rule, Title: f.Title, Body: f.Body}
	if f.Line > 0 {
		line := f.Line
		out.Line = &line
	}
	return json.Marshal(out)
}

func (f *Finding) UnmarshalJSON(b []byte) error {
	var in findingJSON
	if err := json.Unmarshal(b, &in); err != nil {
		return err
	}
	*f = Finding{Severity: in.Severity, Path: in.Path, Rule: in.Rule, Title: in.Title, Body: in.Body}
	if in.Line != nil {
		f.Line = *in.Line
	}
	return nil
}
