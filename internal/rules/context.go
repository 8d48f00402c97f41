package rules

import (
	"regexp"
	"strings"

	"github.com/latebind/latebind/internal/types"
)

// DefaultContextTokens are the bare "current thing" globals, in both the
// lower and upper underscore forms.
var DefaultContextTokens = []string{
	"current_ticker", "current_user", "current_workspace",
	"CURRENT_TICKER", "CURRENT_USER", "CURRENT_WORKSPACE",
}

func contextPattern(tokens []string) *regexp.Regexp {
	quoted := make([]string, 0, len(tokens))
	for _, t := range tokens {
		if t = strings.TrimSpace(t); t != "" {
			quoted = append(quoted, regexp.QuoteMeta(t))
		}
	}
	if len(quoted) == 0 {
		return nil
	}
	return regexp.MustCompile(`\b(` + strings.Join(quoted, "|") + `)\b`)
}

// ImplicitContext flags global-looking context identifiers. Files that
// mention "scope" are exempt. Under FirstMatch only the first matching line
// is reported; it is a smell, not a locator.
func ImplicitContext(tokens []string, policy ImplicitContextPolicy) Rule {
	if len(tokens) == 0 {
		tokens = DefaultContextTokens
	}
	re := contextPattern(tokens)
	r := Rule{
		ID:       IDImplicitContext,
		Title:    "Possible implicit context",
		Severity: types.SevP2,
		Applies:  func(File) bool { return re != nil },
		Exempt:   ScopeMentioned,
	}
	r.Detect = func(f File) []types.Finding {
		var out []types.Finding
		for i, line := range f.Lines {
			if !re.MatchString(line) {
				continue
			}
			out = append(out, r.finding(f.Path, i+1,
				"Found global context variable without explicit Scope. Consider threading scope explicitly."))
			if policy == FirstMatch {
				break
			}
		}
		return out
	}
	return r
}
