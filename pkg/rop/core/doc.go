// Package core contains the plumbing shared by the runners: the hop
// envelopes (Input, Output, Failure), the walk loop used by the
// synchronous and inline runners, an unbounded queue, and the fixed-size
// worker pool driven by Locomotive workers. It does not pick an execution
// strategy; solo, lite and mass do.
package core
