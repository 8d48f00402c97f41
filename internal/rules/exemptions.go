package rules

import "strings"

// Exemption is a whole-file context check. When it holds, the owning rule
// is skipped for that file.
type Exemption interface {
	Name() string
	Check(f File) bool
}

// ExemptionFunc adapts a function to Exemption.
type ExemptionFunc struct {
	Label string
	Fn    func(f File) bool
}

func (e ExemptionFunc) Name() string      { return e.Label }
func (e ExemptionFunc) Check(f File) bool { return e.Fn(f) }

// ScopeMentioned exempts files that mention "scope" in any letter case,
// taken as evidence that context is threaded explicitly.
var ScopeMentioned Exemption = ExemptionFunc{
	Label: "scope-mentioned",
	Fn: func(f File) bool {
		return strings.Contains(strings.ToLower(f.Text), "scope")
	},
}

// ActorMentioned exempts files containing the literal token "actor".
var ActorMentioned Exemption = ExemptionFunc{
	Label: "actor-mentioned",
	Fn: func(f File) bool {
		return strings.Contains(f.Text, "actor")
	},
}
