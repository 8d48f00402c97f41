// Package core is the stable facade over latebind's engine for programs
// that embed the checks instead of shelling out to the CLI.
//
// Example:
//
//	rep, err := core.ScanFiles(ctx, ".", []string{"migrations/0042.sql"})
//	if err != nil { /* handle */ }
//	_ = core.MarshalReport(os.Stdout, rep)
//	os.Exit(core.Decide(rep.Summary).ExitCode())
package core
