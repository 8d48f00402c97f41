// Package engine is the aggregator: it narrows candidate paths to scannable
// files, runs the rule engine over each one and assembles the report in
// candidate order. External consumers should use the facade in pkg/core.
package engine
