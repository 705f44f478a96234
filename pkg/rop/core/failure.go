package core

import (
	"github.com/ib-77/ropchain/pkg/rop/chain"
	"github.com/ib-77/ropchain/pkg/rop/step"
)

// Failure is a step failure together with the step that raised it. Its
// message is the cause's message.
type Failure struct {
	Step  step.Step
	Index int
	Name  string
	Cause error
}

func (f *Failure) Error() string {
	if f.Cause == nil {
		return ""
	}
	return f.Cause.Error()
}

func (f *Failure) Unwrap() error {
	return f.Cause
}

// AsFailure attributes err to the step under at. A *Failure forwarded
// unchanged keeps its original step.
func AsFailure(at chain.Cursor, err error) *Failure {
	if f, ok := err.(*Failure); ok {
		return f
	}
	return &Failure{
		Step:  at.Step(),
		Index: at.Index(),
		Name:  step.Name(at.Step()),
		Cause: err,
	}
}
