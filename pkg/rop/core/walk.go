package core

import (
	"context"
	"errors"
	"fmt"

	"github.com/ib-77/ropchain/pkg/rop"
	"github.com/ib-77/ropchain/pkg/rop/chain"
)

var ErrInvalidChainUsage = errors.New("core: fan-out step needs a scheduler")

// Exec runs one hop. A non-nil error aborts the walk; step failures travel
// inside the Result instead.
type Exec func(ctx context.Context, in Input) (rop.Result[Output], error)

// Walk drives a chain hop by hop on the calling goroutine, handing each hop
// to exec. A failure is offered to every later step as prior; the value is
// left as it was before the failing hop. The last failure not handled by a
// later step is the result.
func Walk(ctx context.Context, head chain.Cursor, value any, extras []any, exec Exec) rop.Result[any] {
	if !head.Valid() {
		return rop.Fail[any](chain.ErrEmptyChain)
	}
	if head.HasMany() {
		return rop.Fail[any](fmt.Errorf("%w: chain from %s", ErrInvalidChainUsage, head))
	}

	var failure error
	at := head
	for {
		res, err := exec(ctx, Input{At: at, Prior: failure, Value: value, Extras: extras})
		if err != nil {
			if rop.IsCancellationError(err) {
				return rop.Cancel[any](err)
			}
			return rop.Fail[any](err)
		}

		if res.IsSuccess() {
			out := res.Result()
			value, extras, failure = out.Value, out.Extras, nil
		} else {
			failure, extras = res.Err(), nil
		}

		next, ok := at.Next()
		if !ok {
			break
		}
		at = next
	}

	if failure != nil {
		return rop.Fail[any](failure)
	}
	return rop.Success(value)
}
