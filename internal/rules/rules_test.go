package rules

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/latebind/latebind/internal/types"
)

func TestEvaluate_WriterScenario(t *testing.T) {
	data := []byte("import json\n\n\n\n\n\n\n\n\nf = open(\"ledger.jsonl\", \"w\")\n")
	fs := Evaluate("writer.py", data)
	require.Len(t, fs, 2)

	assert.Equal(t, types.SevP1, fs[0].Severity)
	assert.Equal(t, 10, fs[0].Line)
	assert.Equal(t, "Ledger overwritten in-place", fs[0].Title)

	assert.Equal(t, types.SevP2, fs[1].Severity)
	assert.True(t, fs[1].FileScoped())
	assert.Equal(t, IDMissingActor, fs[1].Rule)
}

func TestEvaluate_RuleOrderWithinFile(t *testing.T) {
	data := []byte("ledger.append(current_user)\nopen('ledger.json', 'w')\n")
	fs := Evaluate("mix.py", data)
	got := make([]string, len(fs))
	for i, f := range fs {
		got[i] = f.Rule
	}
	assert.Equal(t, []string{IDLedgerOverwrite, IDImplicitContext, IDMissingActor}, got)
}

func TestEvaluate_TotalOverArbitraryInput(t *testing.T) {
	inputs := [][]byte{
		nil,
		{},
		{0xff, 0xfe, 0x00, 'l', 'e', 'd', 'g', 'e', 'r'},
		[]byte("\r\n\r\n"),
		[]byte("open(ledger.json, \"w\")\x80\x81"),
	}
	for _, in := range inputs {
		assert.NotPanics(t, func() { Evaluate("f.py", in) })
	}
}

func TestEvaluate_InvalidUTF8Replaced(t *testing.T) {
	data := []byte("x = \xff\xfe\nf = open('ledger.json', 'w')\n")
	fs := Evaluate("bad.js", data)
	require.Len(t, fs, 1)
	assert.Equal(t, 2, fs[0].Line)
}

func TestSplitLines(t *testing.T) {
	assert.Nil(t, splitLines(""))
	assert.Equal(t, []string{"a"}, splitLines("a\n"))
	assert.Equal(t, []string{"a", ""}, splitLines("a\n\n"))
	assert.Equal(t, []string{"a", "b", "c"}, splitLines("a\r\nb\rc"))
}

func TestNew_EnableDisable(t *testing.T) {
	e := New(Options{Disable: IDMissingActor + ", " + IDImplicitContext})
	var ids []string
	for _, r := range e.Rules() {
		ids = append(ids, r.ID)
	}
	assert.Equal(t, []string{IDLedgerOverwrite, IDMutableEventTable}, ids)

	e = New(Options{Enable: IDMutableEventTable})
	require.Len(t, e.Rules(), 1)
	_, ok := e.Lookup(IDLedgerOverwrite)
	assert.False(t, ok)
}

func TestNew_ExemptionOverride(t *testing.T) {
	data := []byte("u = current_user\n# scope\n")
	assert.Empty(t, Default().Evaluate("a.py", data))

	e := New(Options{Exemptions: map[string]Exemption{IDImplicitContext: nil}})
	assert.Len(t, e.Evaluate("a.py", data), 1)
}

func TestEvaluateRule(t *testing.T) {
	fs, ok := EvaluateRule(IDMutableEventTable, "stdin.sql", []byte("delete from ledger"))
	require.True(t, ok)
	assert.Len(t, fs, 1)

	_, ok = EvaluateRule("nope", "stdin", nil)
	assert.False(t, ok)
}
