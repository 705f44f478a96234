package step

import (
	"context"
	"errors"
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type both struct {
	ExtrasFunc
}

func (both) InvokeMany(context.Context, error, any, []any) ([]any, error) { return nil, nil }

type named struct{ Func }

func (named) Name() string { return "reader" }

func TestClassify(t *testing.T) {
	t.Parallel()

	plain := Func(func(context.Context, error, any, []any) (any, error) { return nil, nil })
	extras := ExtrasFunc(func(context.Context, error, any, []any) (any, []any, error) { return nil, nil, nil })
	many := ManyFunc(func(context.Context, error, any, []any) ([]any, error) { return nil, nil })

	cases := []struct {
		name string
		step Step
		want Kind
	}{
		{"simple", plain, Simple},
		{"extras", extras, Extras},
		{"many", many, Many},
		{"nop", NOP(), Simple},
	}
	for _, tc := range cases {
		got, err := Classify(tc.step)
		require.NoError(t, err, tc.name)
		assert.Equal(t, tc.want, got, tc.name)
	}

	_, err := Classify(both{extras})
	assert.ErrorIs(t, err, ErrConflictingCapabilities)
}

func TestKindString(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "simple", Simple.String())
	assert.Equal(t, "extras", Extras.String())
	assert.Equal(t, "many", Many.String())
	assert.Equal(t, "kind(9)", Kind(9).String())
}

func TestName(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "reader", Name(named{}))
	assert.Equal(t, "nop", Name(NOP()))
	assert.Equal(t, "step.Func", Name(Func(nil)))
}

func TestHasNext(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	if HasNext(ctx) {
		t.Fatalf("expected no next step outside a runner")
	}
	if !HasNext(WithPosition(ctx, Position{Index: 0, Len: 2})) {
		t.Fatalf("expected next step at index 0 of 2")
	}
	if HasNext(WithPosition(ctx, Position{Index: 1, Len: 2})) {
		t.Fatalf("expected no next step at index 1 of 2")
	}

	p, ok := PositionFrom(WithPosition(ctx, Position{Index: 3, Len: 5}))
	require.True(t, ok)
	assert.Equal(t, Position{Index: 3, Len: 5}, p)
}

func TestFailFast(t *testing.T) {
	t.Parallel()

	boom := errors.New("boom")
	ctx := WithPosition(context.Background(), Position{Index: 0, Len: 3})

	var b Base
	assert.NoError(t, b.FailFast(ctx, nil, "in", nil))
	assert.ErrorIs(t, b.FailFast(ctx, boom, "in", nil), boom)

	var seen error
	recovering := Base{OnFailure: func(_ context.Context, err error, in any, _ []any) error {
		seen = err
		return nil
	}}
	assert.NoError(t, recovering.FailFast(ctx, boom, "in", nil))
	assert.ErrorIs(t, seen, boom)
}

func TestFailSlow(t *testing.T) {
	t.Parallel()

	boom := errors.New("boom")
	calls := 0
	b := Base{OnFailure: func(_ context.Context, err error, _ any, _ []any) error {
		calls++
		return err
	}}

	middle := WithPosition(context.Background(), Position{Index: 0, Len: 2})
	assert.ErrorIs(t, b.FailSlow(middle, boom, nil, nil), boom)
	assert.Equal(t, 0, calls, "hook must not run while a next step exists")

	last := WithPosition(context.Background(), Position{Index: 1, Len: 2})
	assert.ErrorIs(t, b.FailSlow(last, boom, nil, nil), boom)
	assert.Equal(t, 1, calls)

	assert.NoError(t, b.FailSlow(last, nil, nil, nil))
}

func TestTyped(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	atoi := Typed(func(_ context.Context, s string) (int, error) { return strconv.Atoi(s) })

	out, err := atoi.Invoke(ctx, nil, "42", nil)
	require.NoError(t, err)
	assert.Equal(t, 42, out)

	_, err = atoi.Invoke(ctx, nil, 42, nil)
	assert.ErrorIs(t, err, ErrUnexpectedInput)

	_, err = atoi.Invoke(ctx, nil, "x", nil)
	var numErr *strconv.NumError
	assert.ErrorAs(t, err, &numErr)

	boom := errors.New("boom")
	_, err = atoi.Invoke(ctx, boom, "42", nil)
	assert.ErrorIs(t, err, boom)
}

func TestCannedAndNOP(t *testing.T) {
	t.Parallel()

	ctx := WithPosition(context.Background(), Position{Index: 1, Len: 2})
	boom := errors.New("boom")

	out, err := Canned("fixed", nil).Invoke(ctx, nil, "ignored", nil)
	require.NoError(t, err)
	assert.Equal(t, "fixed", out)

	_, err = Canned("fixed", boom).Invoke(ctx, nil, "ignored", nil)
	assert.ErrorIs(t, err, boom)

	prior := errors.New("prior")
	_, err = Canned("fixed", nil).Invoke(ctx, prior, nil, nil)
	assert.ErrorIs(t, err, prior)

	out, err = NOP().Invoke(ctx, nil, 7, nil)
	require.NoError(t, err)
	assert.Equal(t, 7, out)

	_, err = NOP().Invoke(ctx, prior, 7, nil)
	assert.ErrorIs(t, err, prior)
}

func TestManyAndExtrasFuncAsPlainStep(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	many := ManyFunc(func(_ context.Context, _ error, in any, _ []any) ([]any, error) {
		return []any{in, in}, nil
	})
	out, err := many.Invoke(ctx, nil, "a", nil)
	require.NoError(t, err)
	assert.Equal(t, []any{"a", "a"}, out)

	extras := ExtrasFunc(func(_ context.Context, _ error, in any, _ []any) (any, []any, error) {
		return in, []any{"x"}, nil
	})
	out, err = extras.Invoke(ctx, nil, "a", nil)
	require.NoError(t, err)
	assert.Equal(t, "a", out)
}
