package types

// ToolName identifies the producer in serialized reports.
const ToolName = "late_binding_check"

// Summary holds per-severity counts tallied from a findings slice.
type Summary struct {
	P1 int `json:"p1_count"`
	P2 int `json:"p2_count"`
	P3 int `json:"p3_count"`
}

// Summarize tallies findings by severity.
func Summarize(findings []Finding) Summary {
	var s Summary
	for _, f := range findings {
		switch f.Severity {
		case SevP1:
			s.P1++
		case SevP2:
			s.P2++
		case SevP3:
			s.P3++
		}
	}
	return s
}

// Count returns the tally for one severity.
func (s Summary) Count(sev Severity) int {
	switch sev {
	case SevP1:
		return s.P1
	case SevP2:
		return s.P2
	case SevP3:
		return s.P3
	}
	return 0
}

// Total is the number of findings across all tiers.
func (s Summary) Total() int { return s.P1 + s.P2 + s.P3 }

// Report is the immutable result of one invocation. Build it with NewReport
// so Summary always matches Findings.
type Report struct {
	Tool         string    `json:"tool"`
	FilesScanned int       `json:"files_scanned"`
	Findings     []Finding `json:"findings"`
	Summary      Summary   `json:"summary"`
}

// NewReport copies findings and derives the summary from them.
func NewReport(filesScanned int, findings []Finding) Report {
	fs := make([]Finding, len(findings))
	copy(fs, findings)
	return Report{
		Tool:         ToolName,
		FilesScanned: filesScanned,
		Findings:     fs,
		Summary:      Summarize(fs),
	}
}

// Verdict is the binary gating outcome.
type Verdict string

const (
	Pass  Verdict = "pass"
	Block Verdict = "block"
)

// Decide is the only blocking policy: any P1 blocks, nothing else does.
func Decide(s Summary) Verdict {
	if s.P1 > 0 {
		return Block
	}
	return Pass
}

// Verdict applies Decide to the report's summary.
func (r Report) Verdict() Verdict { return Decide(r.Summary) }

// ExitCode maps the verdict to the process exit status.
func (v Verdict) ExitCode() int {
	if v == Block {
		return 1
	}
	return 0
}
