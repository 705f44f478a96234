package step

import "context"

// Base carries the failure conventions. Embed it and call FailFast or
// FailSlow as the first statement of Invoke.
type Base struct {
	// OnFailure is the local recovery hook. Nil rethrows. Returning nil
	// means the failure was handled and the step may carry on.
	OnFailure func(ctx context.Context, err error, in any, extras []any) error
}

// FailFast hands prior to the recovery hook.
func (b Base) FailFast(ctx context.Context, prior error, in any, extras []any) error {
	if prior == nil {
		return nil
	}
	return b.handle(ctx, prior, in, extras)
}

// FailSlow returns prior unchanged when a next step exists, so the runner
// forwards it there. At the end of the chain the recovery hook gets it.
func (b Base) FailSlow(ctx context.Context, prior error, in any, extras []any) error {
	if prior == nil {
		return nil
	}
	if HasNext(ctx) {
		return prior
	}
	return b.handle(ctx, prior, in, extras)
}

func (b Base) handle(ctx context.Context, err error, in any, extras []any) error {
	if b.OnFailure == nil {
		return err
	}
	return b.OnFailure(ctx, err, in, extras)
}
