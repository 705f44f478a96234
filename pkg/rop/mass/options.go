package mass

import (
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/ib-77/ropchain/pkg/rop"
)

type Option func(*Scheduler)

func WithLogger(log *zap.Logger) Option {
	return func(s *Scheduler) {
		if log != nil {
			s.log = log
		}
	}
}

// WithObserver is called for every terminal outcome. Calls never overlap
// and come from a goroutine of their own, outside both pools.
func WithObserver(fn func(id uuid.UUID, res rop.Result[any])) Option {
	return func(s *Scheduler) {
		s.observe = fn
	}
}

// WithFaultHandler receives the value of a panic raised inside a step, a
// drain worker or the observer. The panic continues after the handler
// returns.
func WithFaultHandler(fn func(v any)) Option {
	return func(s *Scheduler) {
		s.onFault = fn
	}
}
