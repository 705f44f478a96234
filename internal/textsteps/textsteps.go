// Package textsteps holds small file and text steps: reading a file,
// fanning its content out, accumulating lengths, and a step that always
// fails. The CLI and the runner tests build their chains from them.
package textsteps

import (
	"context"
	"errors"
	"fmt"
	"os"
	"sync/atomic"

	"github.com/ib-77/ropchain/pkg/rop/step"
)

var ErrThrows = errors.New("THROWS")

// ReadFile takes a path and returns the file's content as a string.
type ReadFile struct {
	step.Base
}

func (r *ReadFile) Invoke(ctx context.Context, prior error, in any, extras []any) (any, error) {
	if err := r.FailFast(ctx, prior, in, extras); err != nil {
		return nil, err
	}

	path, ok := in.(string)
	if !ok {
		return nil, fmt.Errorf("%w: read file wants a path, got %T", step.ErrUnexpectedInput, in)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return string(data), nil
}

func (r *ReadFile) Name() string { return "ReadFile" }

// ReadCopies reads like ReadFile and fans the content out Copies times.
type ReadCopies struct {
	ReadFile
	Copies int
}

func (r *ReadCopies) InvokeMany(ctx context.Context, prior error, in any, extras []any) ([]any, error) {
	content, err := r.ReadFile.Invoke(ctx, prior, in, extras)
	if err != nil {
		return nil, err
	}

	outs := make([]any, r.Copies)
	for i := range outs {
		outs[i] = content
	}
	return outs, nil
}

func (r *ReadCopies) Name() string { return "ReadCopies" }

// Counter adds the length of every string it sees to a running total and
// returns the new total. It is safe to share between fan-out branches.
type Counter struct {
	step.Base
	total atomic.Int64
}

func (c *Counter) Invoke(ctx context.Context, prior error, in any, extras []any) (any, error) {
	if err := c.FailSlow(ctx, prior, in, extras); err != nil {
		return nil, err
	}

	s, ok := in.(string)
	if !ok {
		return nil, fmt.Errorf("%w: counter wants a string, got %T", step.ErrUnexpectedInput, in)
	}
	return int(c.total.Add(int64(len(s)))), nil
}

func (c *Counter) Total() int {
	return int(c.total.Load())
}

func (c *Counter) Name() string { return "Counter" }

// Throws fails every time with ErrThrows.
type Throws struct{}

func (Throws) Invoke(context.Context, error, any, []any) (any, error) {
	return nil, ErrThrows
}

func (Throws) Name() string { return "Throws" }
