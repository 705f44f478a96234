package core

import "context"

// Locomotive pulls values off inputCh and runs engine on each, one at a
// time. It returns nil once inputCh is closed and drained, ctx.Err() when
// ctx ends first, or the first error engine returns.
func Locomotive[T any](ctx context.Context, inputCh <-chan T,
	engine func(ctx context.Context, input T) error) error {

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case in, ok := <-inputCh:
			if !ok {
				return nil
			}

			if err := engine(ctx, in); err != nil {
				return err
			}
		}
	}
}
