package step

import "context"

type positionKey struct{}

// Position locates the running hop inside its chain.
type Position struct {
	Index int
	Len   int
}

func (p Position) HasNext() bool {
	return p.Index+1 < p.Len
}

// WithPosition is called by the runners before every invoke.
func WithPosition(ctx context.Context, p Position) context.Context {
	return context.WithValue(ctx, positionKey{}, p)
}

func PositionFrom(ctx context.Context) (Position, bool) {
	p, ok := ctx.Value(positionKey{}).(Position)
	return p, ok
}

// HasNext reports whether the running hop has a following step. Outside a
// runner it reports false.
func HasNext(ctx context.Context) bool {
	p, ok := PositionFrom(ctx)
	return ok && p.HasNext()
}
