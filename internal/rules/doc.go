// Package rules holds the late-binding detectors. Each rule is an
// independent predicate over one file's raw text; rules share no state and
// run in a fixed order so findings are reproducible. Matching is lexical only.
package rules
