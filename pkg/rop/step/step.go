package step

import (
	"context"
	"errors"
	"fmt"
)

var (
	ErrConflictingCapabilities = errors.New("step: produces both extras and many")
	ErrUnexpectedInput         = errors.New("step: unexpected input type")
)

// Step is one link of a chain. prior is the failure carried from the
// previous hop, nil when that hop succeeded. Implementations must check it.
type Step interface {
	Invoke(ctx context.Context, prior error, in any, extras []any) (any, error)
}

// ExtrasProducer yields extras alongside its output. They reach only the
// step right after it.
type ExtrasProducer interface {
	Step
	InvokeExtras(ctx context.Context, prior error, in any, extras []any) (out any, more []any, err error)
}

// ManyProducer yields several outputs. Each starts its own continuation of
// the remaining chain. When it is the last step the whole slice is the
// chain's result.
type ManyProducer interface {
	Step
	InvokeMany(ctx context.Context, prior error, in any, extras []any) ([]any, error)
}

// Named lets a step choose how it appears in failures and logs.
type Named interface {
	Name() string
}

type Kind uint8

const (
	Simple Kind = iota
	Extras
	Many
)

func (k Kind) String() string {
	switch k {
	case Simple:
		return "simple"
	case Extras:
		return "extras"
	case Many:
		return "many"
	default:
		return fmt.Sprintf("kind(%d)", uint8(k))
	}
}

// Classify resolves the capability of s.
func Classify(s Step) (Kind, error) {
	_, extras := s.(ExtrasProducer)
	_, many := s.(ManyProducer)

	switch {
	case extras && many:
		return Simple, ErrConflictingCapabilities
	case many:
		return Many, nil
	case extras:
		return Extras, nil
	default:
		return Simple, nil
	}
}

func Name(s Step) string {
	if n, ok := s.(Named); ok {
		return n.Name()
	}
	return fmt.Sprintf("%T", s)
}
