package report

import (
	"fmt"
	"io"
	"sort"
	"strconv"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/olekukonko/tablewriter"

	"github.com/latebind/latebind/internal/types"
)

type PrintOptions struct {
	NoColor  bool
	Duration time.Duration
}

var (
	sevP1Style = lipgloss.NewStyle().Foreground(lipgloss.Color("9")).Bold(true)
	sevP2Style = lipgloss.NewStyle().Foreground(lipgloss.Color("11"))
	sevP3Style = lipgloss.NewStyle().Foreground(lipgloss.Color("6"))
	okStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("10"))
)

var summaryMarks = map[types.Severity]string{
	types.SevP1: "✗",
	types.SevP2: "⚠",
	types.SevP3: "ℹ",
}

func styleFor(s types.Severity) lipgloss.Style {
	switch s {
	case types.SevP1:
		return sevP1Style
	case types.SevP2:
		return sevP2Style
	default:
		return sevP3Style
	}
}

func paint(st lipgloss.Style, s string, opts PrintOptions) string {
	if opts.NoColor {
		return s
	}
	return st.Render(s)
}

// PrintSummary writes the short verdict lines: a success line when there are
// no findings, otherwise one line per non-empty severity tier.
func PrintSummary(w io.Writer, r types.Report, opts PrintOptions) {
	s := r.Summary
	if s.Total() == 0 {
		fmt.Fprintln(w, paint(okStyle, "✓ No late-binding violations found", opts))
	}
	for _, sev := range types.Severities {
		if n := s.Count(sev); n > 0 {
			line := fmt.Sprintf("%s %d %s (%s) finding(s)", summaryMarks[sev], n, sev, sev.Label())
			fmt.Fprintln(w, paint(styleFor(sev), line, opts))
		}
	}
	if opts.Duration > 0 {
		fmt.Fprintf(w, "Files scanned: %d in %.2fs\n", r.FilesScanned, opts.Duration.Seconds())
	}
}

// Location formats path:line, or just path for file-scoped findings.
func Location(f types.Finding) string {
	if f.FileScoped() {
		return f.Path
	}
	return f.Path + ":" + strconv.Itoa(f.Line)
}

// PrintTable renders findings sorted by severity, then path and line. The
// input slice is left untouched.
func PrintTable(w io.Writer, findings []types.Finding, opts PrintOptions) error {
	if len(findings) == 0 {
		fmt.Fprintln(w, paint(okStyle, "No findings", opts))
		return nil
	}
	sorted := append([]types.Finding(nil), findings...)
	sort.SliceStable(sorted, func(i, j int) bool {
		a, b := sorted[i], sorted[j]
		if a.Severity != b.Severity {
			return a.Severity < b.Severity
		}
		if a.Path != b.Path {
			return a.Path < b.Path
		}
		return a.Line < b.Line
	})
	table := tablewriter.NewWriter(w)
	table.Header("Severity", "Rule", "Location", "Title")
	for _, f := range sorted {
		if err := table.Append([]string{
			paint(styleFor(f.Severity), string(f.Severity), opts),
			f.Rule,
			Location(f),
			f.Title,
		}); err != nil {
			return err
		}
	}
	return table.Render()
}
