// Package latebind provides the command-line interface for the latebind
// guardrail checker. It wires subcommands (scan, rules, watch, serve, etc.),
// parses flags and maps config files onto engine options.
//
// Typical usage from a main package:
//
//	package main
//	import "github.com/latebind/latebind/cmd/latebind"
//	func main() { latebind.Execute() }
package latebind
