package lite

import (
	"context"

	"golang.org/x/sync/errgroup"

	"github.com/ib-77/ropchain/pkg/rop"
	"github.com/ib-77/ropchain/pkg/rop/chain"
	"github.com/ib-77/ropchain/pkg/rop/core"
)

// Pool executes tasks somewhere else. Submit fails when the pool no longer
// accepts work.
type Pool interface {
	Submit(task func()) error
}

// Run walks the chain from head, executing each step on pool. If ctx ends
// while a step is out, Run returns a cancel result; the step still runs to
// completion on the pool.
func Run(ctx context.Context, pool Pool, head chain.Cursor, value any, extras ...any) rop.Result[any] {
	return core.Walk(ctx, head, value, extras, onPool(pool))
}

func onPool(pool Pool) core.Exec {
	return func(ctx context.Context, in core.Input) (rop.Result[core.Output], error) {
		done := make(chan rop.Result[core.Output], 1)
		if err := pool.Submit(func() { done <- in.Call(ctx) }); err != nil {
			return rop.Result[core.Output]{}, err
		}

		select {
		case res := <-done:
			return res, nil
		case <-ctx.Done():
			return rop.Result[core.Output]{}, ctx.Err()
		}
	}
}

// Go performs Run on a new goroutine. The channel yields one result and is
// then closed.
func Go(ctx context.Context, pool Pool, head chain.Cursor, value any, extras ...any) <-chan rop.Result[any] {
	out := make(chan rop.Result[any], 1)
	go func() {
		defer close(out)
		out <- Run(ctx, pool, head, value, extras...)
	}()
	return out
}

type groupPool struct {
	g *errgroup.Group
}

// GroupPool submits tasks through g.Go. With a limit set on g, Submit
// blocks until a slot frees up.
func GroupPool(g *errgroup.Group) Pool {
	return groupPool{g: g}
}

func (p groupPool) Submit(task func()) error {
	p.g.Go(func() error {
		task()
		return nil
	})
	return nil
}
