// Package mass runs chains on a scheduler that never ties the caller to a
// unit of work. Submissions go to an execution pool; every finished hop
// lands on a completion queue where drain workers decide what happens
// next: continue, fan out, forward a failure or record a terminal outcome.
//
// Usage:
//
//	s, err := mass.New(4, 1, mass.WithLogger(log))
//	id, err := s.SubmitChain(c.Head(), "input.txt")
//	err = s.Drain(ctx)
//	res := s.LastResult()
//	err = s.Shutdown(2 * time.Second)
//
// Order is strict within one branch. Across branches and across chains it
// is not.
package mass
