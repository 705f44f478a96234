package solo

import (
	"context"

	"github.com/ib-77/ropchain/pkg/rop"
	"github.com/ib-77/ropchain/pkg/rop/chain"
	"github.com/ib-77/ropchain/pkg/rop/core"
)

// Run walks the chain from head. The result holds the final value, or the
// failure no later step handled as a *core.Failure.
func Run(ctx context.Context, head chain.Cursor, value any, extras ...any) rop.Result[any] {
	return core.Walk(ctx, head, value, extras, call)
}

func call(ctx context.Context, in core.Input) (rop.Result[core.Output], error) {
	return in.Call(ctx), nil
}

// Deferred returns a function performing Run when called.
func Deferred(ctx context.Context, head chain.Cursor, value any, extras ...any) func() rop.Result[any] {
	return func() rop.Result[any] {
		return Run(ctx, head, value, extras...)
	}
}

// Finally reduces an outcome to a plain value with the handler matching its
// state. An empty outcome counts as an error.
func Finally[In, Out any](ctx context.Context, input rop.Outcome[In],
	onSuccess func(ctx context.Context, r In) Out,
	onError func(ctx context.Context, err error) Out,
	onCancel func(ctx context.Context, err error) Out) Out {

	switch {
	case input.IsSuccess():
		return onSuccess(ctx, input.Result())
	case input.IsCancel():
		return onCancel(ctx, input.Err())
	default:
		return onError(ctx, input.Err())
	}
}
