// Package solo runs a chain synchronously on the calling goroutine.
//
// Highlights:
// - Run: walk the chain, returning the last value or the unhandled failure
// - Deferred: package a run for later, e.g. to hand to another goroutine
// - Finally: reduce a Result to a concrete value via handlers
//
// Chains containing a fan-out step are rejected before any step runs.
package solo
