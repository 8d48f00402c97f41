package core_test

import (
	"context"
	"fmt"

	"github.com/latebind/latebind/pkg/core"
)

// ExampleEvaluate checks a single file held in memory.
func ExampleEvaluate() {
	src := []byte("BEGIN;\nDELETE FROM ledger_entries WHERE id < 10;\n")
	for _, f := range core.Evaluate("migrations/0042_prune.sql", src) {
		fmt.Printf("%s %s:%d %s\n", f.Severity, f.Path, f.Line, f.Title)
	}
	// Output: P1 migrations/0042_prune.sql:2 Mutable operation on event table
}

// ExampleScanInputs gates a batch of in-memory files.
func ExampleScanInputs() {
	rep, err := core.ScanInputs(context.Background(), []core.Input{
		{Path: "handlers/orders.py", Content: "user = current_user\n"},
		{Path: "notes.txt", Content: "DELETE FROM ledger"},
	})
	if err != nil {
		panic(err)
	}
	fmt.Println(rep.FilesScanned, rep.Summary.P2, core.Decide(rep.Summary))
	// Output: 1 1 pass
}
