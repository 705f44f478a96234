// Package rop holds the Result type threaded through every hop of a chain,
// plus small error helpers shared by the runners.
//
// Sub-packages:
// - step: the Step contract, capabilities and failure policies
// - chain: immutable chain builder and cursor
// - core: hop envelopes, unbounded queue, worker pool
// - solo: synchronous runner
// - lite: inline-async runner over a worker pool
// - mass: decoupled two-pool scheduler
package rop
