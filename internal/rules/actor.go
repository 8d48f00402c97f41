package rules

import (
	"regexp"
	"strings"

	"github.com/latebind/latebind/internal/types"
)

var (
	reLedgerOpenMutating = regexp.MustCompile(`open\([^)]*ledger[^)]*,\s*["'][wa][bt+]?["']`)
	reModeMutating       = regexp.MustCompile(`mode\s*=\s*["'][wa][bt+]?["']`)
)

// writesLedger reports whether any line looks like a ledger write: a ledger
// mention next to "write"/"append", or a ledger opened in w/a mode.
func writesLedger(lines []string) bool {
	for _, line := range lines {
		lower := strings.ToLower(line)
		if !strings.Contains(lower, "ledger") {
			continue
		}
		if strings.Contains(lower, "write") || strings.Contains(lower, "append") {
			return true
		}
		if reLedgerOpenMutating.MatchString(lower) || reModeMutating.MatchString(lower) {
			return true
		}
	}
	return false
}

// MissingActor flags Python files that write to a ledger without ever
// naming an actor. The finding is file-scoped.
func MissingActor() Rule {
	r := Rule{
		ID:       IDMissingActor,
		Title:    "Ledger write without actor tracking",
		Severity: types.SevP2,
		Applies:  func(f File) bool { return f.Ext() == ".py" },
		Exempt:   ActorMentioned,
	}
	r.Detect = func(f File) []types.Finding {
		if !writesLedger(f.Lines) {
			return nil
		}
		return []types.Finding{r.finding(f.Path, 0,
			"File writes to ledger but doesn't reference 'actor'. Events should include who performed the action.")}
	}
	return r
}
