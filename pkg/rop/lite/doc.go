// Package lite runs a chain hop by hop on a worker pool while the caller
// waits: the same order and failure handling as solo, only the goroutine
// executing each step differs.
//
// Common usage:
// - Run: walk the chain, blocking on one pool task at a time
// - Go: the same walk on a goroutine of its own, result on a channel
// - GroupPool: use an errgroup.Group as the pool
//
// core.Pool satisfies Pool. For fan-out chains see package mass.
package lite
