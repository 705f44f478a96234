package core

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ib-77/ropchain/pkg/rop"
	"github.com/ib-77/ropchain/pkg/rop/chain"
	"github.com/ib-77/ropchain/pkg/rop/step"
)

var errBoom = errors.New("boom")

func upper() step.Step {
	return step.Typed(func(_ context.Context, s string) (string, error) {
		out := []byte(s)
		for i, c := range out {
			if c >= 'a' && c <= 'z' {
				out[i] = c - 32
			}
		}
		return string(out), nil
	})
}

func failing() step.Step {
	return step.Func(func(context.Context, error, any, []any) (any, error) {
		return nil, errBoom
	})
}

func TestInputCall_Kinds(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	extras := step.ExtrasFunc(func(_ context.Context, _ error, in any, _ []any) (any, []any, error) {
		return in, []any{"side"}, nil
	})
	many := step.ManyFunc(func(_ context.Context, _ error, in any, _ []any) ([]any, error) {
		return []any{in, in, in}, nil
	})

	ch := chain.Must(extras, many, upper())
	head := ch.Head()

	res := Input{At: head, Value: "x"}.Call(ctx)
	require.True(t, res.IsSuccess())
	assert.Equal(t, []any{"side"}, res.Result().Extras)

	second, _ := head.Next()
	res = Input{At: second, Value: "y"}.Call(ctx)
	require.True(t, res.IsSuccess())
	assert.Len(t, res.Result().Many, 3)
	assert.Equal(t, res.Result().Many, res.Result().Value)

	fan := res.Result().Fanout()
	require.Len(t, fan, 3)
	for _, in := range fan {
		assert.Equal(t, "y", in.Value)
		assert.Nil(t, in.Extras)
		assert.Equal(t, 2, in.At.Index())
	}
}

func TestInputCall_PositionInContext(t *testing.T) {
	t.Parallel()

	var seen []step.Position
	probe := step.Func(func(ctx context.Context, _ error, in any, _ []any) (any, error) {
		p, _ := step.PositionFrom(ctx)
		seen = append(seen, p)
		return in, nil
	})

	ch := chain.Must(probe, probe)
	first := Input{At: ch.Head()}.Call(context.Background())
	next, ok := first.Result().Next()
	require.True(t, ok)
	next.Call(context.Background())

	assert.Equal(t, []step.Position{{Index: 0, Len: 2}, {Index: 1, Len: 2}}, seen)
}

func TestInputCall_FailureAttribution(t *testing.T) {
	t.Parallel()

	ch := chain.Must(upper(), failing(), step.NOP())
	second, _ := ch.Head().Next()

	res := Input{At: second, Value: "v"}.Call(context.Background())
	require.False(t, res.IsSuccess())

	var f *Failure
	require.ErrorAs(t, res.Err(), &f)
	assert.Equal(t, 1, f.Index)
	assert.Equal(t, "boom", f.Error())
	assert.ErrorIs(t, f, errBoom)

	forwarded, ok := Forward(Input{At: second, Value: "v"}, f)
	require.True(t, ok)
	assert.Equal(t, "v", forwarded.Value)

	res = forwarded.Call(context.Background())
	var again *Failure
	require.ErrorAs(t, res.Err(), &again)
	assert.Same(t, f, again)

	third, _ := second.Next()
	_, ok = Forward(Input{At: third}, f)
	assert.False(t, ok)
}

func TestFailure_EmptyCause(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "", (&Failure{}).Error())
}

func TestWalk(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	direct := func(ctx context.Context, in Input) (rop.Result[Output], error) {
		return in.Call(ctx), nil
	}

	res := Walk(ctx, chain.Must(upper(), step.NOP()).Head(), "abc", nil, direct)
	require.True(t, res.IsSuccess())
	assert.Equal(t, "ABC", res.Result())

	res = Walk(ctx, chain.Must(failing(), upper()).Head(), "abc", nil, direct)
	assert.True(t, res.IsFailure())
	assert.ErrorIs(t, res.Err(), errBoom)

	res = Walk(ctx, chain.Cursor{}, "abc", nil, direct)
	assert.ErrorIs(t, res.Err(), chain.ErrEmptyChain)

	fan := step.ManyFunc(func(context.Context, error, any, []any) ([]any, error) { return nil, nil })
	calls := 0
	counting := func(ctx context.Context, in Input) (rop.Result[Output], error) {
		calls++
		return in.Call(ctx), nil
	}
	res = Walk(ctx, chain.Must(upper(), fan).Head(), "abc", nil, counting)
	assert.ErrorIs(t, res.Err(), ErrInvalidChainUsage)
	assert.Zero(t, calls, "chain must not run when it contains a fan-out step")
}

func TestWalk_ExecErrors(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	head := chain.Must(upper()).Head()

	res := Walk(ctx, head, "a", nil, func(context.Context, Input) (rop.Result[Output], error) {
		return rop.Result[Output]{}, context.Canceled
	})
	assert.True(t, res.IsCancel())

	res = Walk(ctx, head, "a", nil, func(context.Context, Input) (rop.Result[Output], error) {
		return rop.Result[Output]{}, ErrPoolClosed
	})
	assert.False(t, res.IsCancel())
	assert.ErrorIs(t, res.Err(), ErrPoolClosed)
}
