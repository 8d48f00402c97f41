package rules

import (
	"strings"

	"github.com/latebind/latebind/internal/types"
)

// table-name fragments that mark a ledger or event table
var eventTableHints = []string{"ledger", "_events", "events_", "event_log"}

// MutableEventTable flags DELETE/UPDATE statements on ledger-like tables in
// SQL files. Lexical only: a line needs both the verb and a table hint.
func MutableEventTable() Rule {
	r := Rule{
		ID:       IDMutableEventTable,
		Title:    "Mutable operation on event table",
		Severity: types.SevP1,
		Applies:  func(f File) bool { return f.Ext() == ".sql" },
	}
	r.Detect = func(f File) []types.Finding {
		var out []types.Finding
		for i, line := range f.Lines {
			lower := strings.ToLower(line)
			if !strings.Contains(lower, "delete from") && !strings.Contains(lower, "update ") {
				continue
			}
			if containsAny(lower, eventTableHints) {
				out = append(out, r.finding(f.Path, i+1,
					"DELETE/UPDATE on ledger or events table. Append new events instead of mutating."))
			}
		}
		return out
	}
	return r
}

func containsAny(s string, subs []string) bool {
	for _, sub := range subs {
		if strings.Contains(s, sub) {
			return true
		}
	}
	return false
}
