package rules

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/latebind/latebind/internal/types"
)

func TestLedgerOverwrite_OpenWrite(t *testing.T) {
	data := []byte("import json\n\nf = open(\"data/ledger.jsonl\", \"w\")\n")
	fs := LedgerOverwrite().Run("writer.py", data)
	require.Len(t, fs, 1)
	assert.Equal(t, types.SevP1, fs[0].Severity)
	assert.Equal(t, 3, fs[0].Line)
	assert.Equal(t, "Ledger overwritten in-place", fs[0].Title)
	assert.Contains(t, fs[0].Body, `open(..., "w")`)
}

func TestLedgerOverwrite_ModeKeyword(t *testing.T) {
	data := []byte("path = 'ledger.json'\nwith path.open(mode='w') as fh:  # LEDGER rewrite\n")
	fs := LedgerOverwrite().Run("x.py", data)
	require.Len(t, fs, 1)
	assert.Equal(t, 2, fs[0].Line)
	assert.Contains(t, fs[0].Body, `mode="w"`)
}

func TestLedgerOverwrite_BothIdiomsOnOneLine(t *testing.T) {
	data := []byte(`open("ledger.json", 'w'); open(LEDGER, mode="w")` + "\n")
	fs := LedgerOverwrite().Run("x.py", data)
	require.Len(t, fs, 2)
	assert.Equal(t, 1, fs[0].Line)
	assert.Equal(t, 1, fs[1].Line)
}

func TestLedgerOverwrite_PrefilterAndAppend(t *testing.T) {
	// no literal ledger.json token: pre-filter skips the file entirely
	if fs := LedgerOverwrite().Run("x.py", []byte(`open("ledger.csv", "w")`)); len(fs) != 0 {
		t.Fatalf("expected no findings without ledger.json token, got %d", len(fs))
	}
	if fs := LedgerOverwrite().Run("x.py", []byte(`open("ledger.jsonl", "a")`)); len(fs) != 0 {
		t.Fatalf("append mode must not be flagged, got %d", len(fs))
	}
}

func TestLedgerOverwrite_AnyExtension(t *testing.T) {
	data := []byte("const fs = require('fs')\nfs.open(\"ledger.json\", \"w\")\n")
	fs := LedgerOverwrite().Run("writer.js", data)
	require.Len(t, fs, 1)
	assert.Equal(t, 2, fs[0].Line)
}
