package core

import (
	"context"

	"github.com/ib-77/ropchain/pkg/rop"
	"github.com/ib-77/ropchain/pkg/rop/chain"
	"github.com/ib-77/ropchain/pkg/rop/step"
)

// Input is a hop that has not run yet.
type Input struct {
	At     chain.Cursor
	Prior  error
	Value  any
	Extras []any
}

// Output is a hop that ran successfully. Many is set only for fan-out
// steps, in which case Value holds the same slice.
type Output struct {
	At     chain.Cursor
	Value  any
	Extras []any
	Many   []any
}

// Call invokes the step under in.At. A returned error becomes a *Failure.
func (in Input) Call(ctx context.Context) rop.Result[Output] {
	ctx = step.WithPosition(ctx, in.At.Position())
	s := in.At.Step()

	switch in.At.Kind() {
	case step.Many:
		outs, err := s.(step.ManyProducer).InvokeMany(ctx, in.Prior, in.Value, in.Extras)
		if err != nil {
			return rop.Fail[Output](AsFailure(in.At, err))
		}
		return rop.Success(Output{At: in.At, Value: outs, Many: outs})

	case step.Extras:
		out, more, err := s.(step.ExtrasProducer).InvokeExtras(ctx, in.Prior, in.Value, in.Extras)
		if err != nil {
			return rop.Fail[Output](AsFailure(in.At, err))
		}
		return rop.Success(Output{At: in.At, Value: out, Extras: more})

	default:
		out, err := s.Invoke(ctx, in.Prior, in.Value, in.Extras)
		if err != nil {
			return rop.Fail[Output](AsFailure(in.At, err))
		}
		return rop.Success(Output{At: in.At, Value: out})
	}
}

// Next builds the input of the following hop. ok is false at the end of
// the chain.
func (out Output) Next() (Input, bool) {
	next, ok := out.At.Next()
	if !ok {
		return Input{}, false
	}
	return Input{At: next, Value: out.Value, Extras: out.Extras}, true
}

// Fanout builds one independent input per produced element. Extras never
// cross a fan-out.
func (out Output) Fanout() []Input {
	next, ok := out.At.Next()
	if !ok {
		return nil
	}

	ins := make([]Input, 0, len(out.Many))
	for _, v := range out.Many {
		ins = append(ins, Input{At: next, Value: v})
	}
	return ins
}

// Forward builds the input that carries failure to the hop after in. The
// value is the one the failing hop received.
func Forward(in Input, failure error) (Input, bool) {
	next, ok := in.At.Next()
	if !ok {
		return Input{}, false
	}
	return Input{At: next, Prior: failure, Value: in.Value}, true
}
