package types

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecide(t *testing.T) {
	assert.Equal(t, Pass, Decide(Summary{}))
	assert.Equal(t, Pass, Decide(Summary{P2: 3, P3: 9}))
	assert.Equal(t, Block, Decide(Summary{P1: 1, P2: 1}))
	assert.Equal(t, 0, Pass.ExitCode())
	assert.Equal(t, 1, Block.ExitCode())
}

func TestNewReport_SummaryMatchesFindings(t *testing.T) {
	in := []Finding{
		{Severity: SevP1, Path: "a.py", Line: 3},
		{Severity: SevP2, Path: "a.py"},
		{Severity: SevP2, Path: "b.ts", Line: 1},
	}
	r := NewReport(2, in)
	assert.Equal(t, ToolName, r.Tool)
	assert.Equal(t, Summary{P1: 1, P2: 2}, r.Summary)
	assert.Equal(t, 3, r.Summary.Total())
	assert.Equal(t, 2, r.Summary.Count(SevP2))
	assert.Equal(t, Block, r.Verdict())

	in[0].Severity = SevP3
	assert.Equal(t, SevP1, r.Findings[0].Severity)
}

func TestNewReport_EmptyFindingsEncodeAsArray(t *testing.T) {
	b, err := json.Marshal(NewReport(0, nil))
	require.NoError(t, err)
	assert.JSONEq(t, `{"tool":"late_binding_check","files_scanned":0,"findings":[],"summary":{"p1_count":0,"p2_count":0,"p3_count":0}}`, string(b))
}

func TestFinding_JSONLine(t *testing.T) {
	b, err := json.Marshal(Finding{Severity: SevP2, Path: "w.py", Title: "t", Body: "b"})
	require.NoError(t, err)
	assert.JSONEq(t, `{"severity":"P2","path":"w.py","line":null,"title":"t","body":"b"}`, string(b))

	b, err = json.Marshal(Finding{Severity: SevP1, Path: "m.sql", Line: 3, Rule: "mutable-event-table", Title: "t", Body: "b"})
	require.NoError(t, err)
	assert.JSONEq(t, `{"severity":"P1","path":"m.sql","line":3,"rule":"mutable-event-table","title":"t","body":"b"}`, string(b))

	var f Finding
	require.NoError(t, json.Unmarshal(b, &f))
	assert.Equal(t, 3, f.Line)
	assert.False(t, f.FileScoped())
}

func TestSeverity(t *testing.T) {
	assert.True(t, SevP1.Blocking())
	assert.False(t, SevP2.Blocking())
	assert.False(t, Severity("P4").Valid())
	assert.Equal(t, "warning", SevP2.Label())
}
