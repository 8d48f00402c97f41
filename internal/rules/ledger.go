package rules

import (
	"regexp"
	"strings"

	"github.com/latebind/latebind/internal/types"
)

var (
	reLedgerOpenWrite = regexp.MustCompile(`open\([^)]*ledger[^)]*,\s*["']w["']`)
	reModeWrite       = regexp.MustCompile(`mode\s*=\s*["']w["']`)
)

const (
	bodyOpenWrite = `Found open(..., "w") on ledger file. This destroys history. Use append mode ("a") or append-only event patterns.`
	bodyModeWrite = `Found mode="w" with ledger file. This destroys history. Use append mode ("a").`
)

// LedgerOverwrite flags truncating writes to ledger files. It favours recall:
// both idioms are checked independently, so one line may yield two findings.
func LedgerOverwrite() Rule {
	r := Rule{
		ID:       IDLedgerOverwrite,
		Title:    "Ledger overwritten in-place",
		Severity: types.SevP1,
		// "ledger.json" also covers "ledger.jsonl".
		Applies: func(f File) bool { return strings.Contains(f.Text, "ledger.json") },
	}
	r.Detect = func(f File) []types.Finding {
		var out []types.Finding
		for i, line := range f.Lines {
			if reLedgerOpenWrite.MatchString(line) {
				out = append(out, r.finding(f.Path, i+1, bodyOpenWrite))
			}
			if strings.Contains(strings.ToLower(line), "ledger") && reModeWrite.MatchString(line) {
				out = append(out, r.finding(f.Path, i+1, bodyModeWrite))
			}
		}
		return out
	}
	return r
}
