package report

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/latebind/latebind/internal/rules"
	"github.com/latebind/latebind/internal/types"
)

func sampleReport() types.Report {
	return types.NewReport(3, []types.Finding{
		{Severity: types.SevP1, Path: "migrate.sql", Line: 3, Rule: rules.IDMutableEventTable, Title: "Mutable operation on event table", Body: "DELETE/UPDATE on ledger or events table."},
		{Severity: types.SevP2, Path: "writer.py", Rule: rules.IDMissingActor, Title: "Ledger write without actor tracking", Body: "no actor"},
		{Severity: types.SevP2, Path: "svc.ts", Line: 7, Rule: rules.IDImplicitContext, Title: "Possible implicit context", Body: "scope"},
	})
}

func TestPrintSummary_NoFindings(t *testing.T) {
	var buf bytes.Buffer
	PrintSummary(&buf, types.NewReport(0, nil), PrintOptions{NoColor: true})
	assert.Equal(t, "✓ No late-binding violations found\n", buf.String())
}

func TestPrintSummary_Tiers(t *testing.T) {
	var buf bytes.Buffer
	PrintSummary(&buf, sampleReport(), PrintOptions{NoColor: true})
	assert.Equal(t, "✗ 1 P1 (blocking) finding(s)\n⚠ 2 P2 (warning) finding(s)\n", buf.String())
}

func TestPrintSummary_WarningsOnly(t *testing.T) {
	var buf bytes.Buffer
	r := types.NewReport(1, []types.Finding{{Severity: types.SevP2, Path: "a.py", Line: 1}})
	PrintSummary(&buf, r, PrintOptions{NoColor: true})
	assert.Equal(t, "⚠ 1 P2 (warning) finding(s)\n", buf.String())
}

func TestPrintSummary_AllTiersInOrder(t *testing.T) {
	var buf bytes.Buffer
	r := types.NewReport(1, []types.Finding{
		{Severity: types.SevP3, Path: "a.py", Line: 3},
		{Severity: types.SevP1, Path: "a.py", Line: 1},
	})
	PrintSummary(&buf, r, PrintOptions{NoColor: true})
	assert.Equal(t, "✗ 1 P1 (blocking) finding(s)\nℹ 1 P3 (info) finding(s)\n", buf.String())
}

func TestWriteJSON_Shape(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteJSON(&buf, sampleReport()))

	var doc map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &doc))
	assert.Equal(t, "late_binding_check", doc["tool"])
	assert.EqualValues(t, 3, doc["files_scanned"])
	findings := doc["findings"].([]any)
	require.Len(t, findings, 3)
	assert.Nil(t, findings[1].(map[string]any)["line"])
	assert.EqualValues(t, 3, findings[0].(map[string]any)["line"])
	summary := doc["summary"].(map[string]any)
	assert.EqualValues(t, 1, summary["p1_count"])
	assert.EqualValues(t, 2, summary["p2_count"])
	assert.EqualValues(t, 0, summary["p3_count"])

	back, err := ReadJSON(&buf)
	require.NoError(t, err)
	assert.Equal(t, sampleReport(), back)
}

func TestPrintTable(t *testing.T) {
	var buf bytes.Buffer
	in := sampleReport().Findings
	require.NoError(t, PrintTable(&buf, in, PrintOptions{NoColor: true}))
	out := buf.String()
	for _, want := range []string{"SEVERITY", "migrate.sql:3", "writer.py", "svc.ts:7", rules.IDImplicitContext} {
		assert.Contains(t, strings.ToUpper(out), strings.ToUpper(want))
	}
	assert.Less(t, strings.Index(out, "migrate.sql"), strings.Index(out, "svc.ts"))
	assert.Equal(t, "writer.py", in[1].Path, "input order must be preserved")

	buf.Reset()
	require.NoError(t, PrintTable(&buf, nil, PrintOptions{NoColor: true}))
	assert.Equal(t, "No findings\n", buf.String())
}

func TestWriteSARIF(t *testing.T) {
	var buf bytes.Buffer
	err := WriteSARIF(&buf, sampleReport(), SARIFMeta{Version: "1.2.3", Repo: "acme/ledger", Commit: "abc", Branch: "main"})
	require.NoError(t, err)

	var doc sarif
	require.NoError(t, json.Unmarshal(buf.Bytes(), &doc))
	assert.Equal(t, "2.1.0", doc.Version)
	require.Len(t, doc.Runs, 1)
	run := doc.Runs[0]
	assert.Equal(t, "1.2.3", run.Tool.Driver.Version)
	assert.Len(t, run.Tool.Driver.Rules, len(rules.IDs()))
	require.Len(t, run.Results, 3)

	assert.Equal(t, "error", run.Results[0].Level)
	require.NotNil(t, run.Results[0].Locations[0].PhysicalLocation.Region)
	assert.Equal(t, 3, run.Results[0].Locations[0].PhysicalLocation.Region.StartLine)
	assert.Equal(t, "warning", run.Results[1].Level)
	assert.Nil(t, run.Results[1].Locations[0].PhysicalLocation.Region)
	assert.Len(t, run.Results[0].PartialFingerprints["latebind/v1"], 16)
	assert.NotEqual(t, run.Results[0].PartialFingerprints, run.Results[1].PartialFingerprints)

	require.Len(t, run.VersionControlProvenance, 1)
	assert.Equal(t, "https://github.com/acme/ledger", run.VersionControlProvenance[0].RepositoryURI)
}

func TestFingerprint_IgnoresLine(t *testing.T) {
	a := types.Finding{Rule: "r", Path: "p.py", Line: 1, Body: "b"}
	b := a
	b.Line = 40
	assert.Equal(t, fingerprint(a), fingerprint(b))
	b.Path = "q.py"
	assert.NotEqual(t, fingerprint(a), fingerprint(b))
}

func TestWriteSARIF_Empty(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteSARIF(&buf, types.NewReport(0, nil), SARIFMeta{}))
	assert.Contains(t, buf.String(), `"results": []`)
	assert.NotContains(t, buf.String(), "versionControlProvenance")
}
