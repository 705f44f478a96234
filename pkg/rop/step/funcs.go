package step

import (
	"context"
	"fmt"
)

// Func adapts an ordinary function to Step.
type Func func(ctx context.Context, prior error, in any, extras []any) (any, error)

func (f Func) Invoke(ctx context.Context, prior error, in any, extras []any) (any, error) {
	return f(ctx, prior, in, extras)
}

// ExtrasFunc adapts a function that also yields extras.
type ExtrasFunc func(ctx context.Context, prior error, in any, extras []any) (any, []any, error)

func (f ExtrasFunc) Invoke(ctx context.Context, prior error, in any, extras []any) (any, error) {
	out, _, err := f(ctx, prior, in, extras)
	return out, err
}

func (f ExtrasFunc) InvokeExtras(ctx context.Context, prior error, in any, extras []any) (any, []any, error) {
	return f(ctx, prior, in, extras)
}

// ManyFunc adapts a fan-out function.
type ManyFunc func(ctx context.Context, prior error, in any, extras []any) ([]any, error)

func (f ManyFunc) Invoke(ctx context.Context, prior error, in any, extras []any) (any, error) {
	outs, err := f(ctx, prior, in, extras)
	if err != nil {
		return nil, err
	}
	return outs, nil
}

func (f ManyFunc) InvokeMany(ctx context.Context, prior error, in any, extras []any) ([]any, error) {
	return f(ctx, prior, in, extras)
}

// Typed wraps a typed function. A prior failure is rethrown (fail-fast) and
// an input of the wrong type fails with ErrUnexpectedInput.
func Typed[In, Out any](fn func(ctx context.Context, in In) (Out, error)) Step {
	return Func(func(ctx context.Context, prior error, in any, _ []any) (any, error) {
		if prior != nil {
			return nil, prior
		}

		v, ok := in.(In)
		if !ok {
			var zero In
			return nil, fmt.Errorf("%w: got %T, want %T", ErrUnexpectedInput, in, zero)
		}

		out, err := fn(ctx, v)
		if err != nil {
			return nil, err
		}
		return out, nil
	})
}

type canned struct {
	Base
	out any
	err error
}

// Canned forwards failures (fail-slow), then fails with err when it is set,
// otherwise returns out.
func Canned(out any, err error) Step {
	return &canned{out: out, err: err}
}

func (c *canned) Invoke(ctx context.Context, prior error, in any, extras []any) (any, error) {
	if err := c.FailSlow(ctx, prior, in, extras); err != nil {
		return nil, err
	}
	if c.err != nil {
		return nil, c.err
	}
	return c.out, nil
}

func (c *canned) Name() string { return "canned" }

type nop struct {
	Base
}

// NOP rethrows failures and otherwise passes its input through.
func NOP() Step {
	return nop{}
}

func (n nop) Invoke(ctx context.Context, prior error, in any, extras []any) (any, error) {
	if err := n.FailFast(ctx, prior, in, extras); err != nil {
		return nil, err
	}
	return in, nil
}

func (nop) Name() string { return "nop" }
