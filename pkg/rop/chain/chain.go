package chain

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/ib-77/ropchain/pkg/rop"
	"github.com/ib-77/ropchain/pkg/rop/step"
)

var (
	ErrEmptyChain = errors.New("chain: no steps")
	ErrNilStep    = errors.New("chain: nil step")
)

type link struct {
	step step.Step
	kind step.Kind
}

// Chain is an ordered, immutable sequence of steps.
type Chain struct {
	id    uuid.UUID
	links []link
}

// New links steps in argument order. Building twice from the same list
// yields the same links.
func New(steps ...step.Step) (*Chain, error) {
	if len(steps) == 0 {
		return nil, ErrEmptyChain
	}

	links := make([]link, 0, len(steps))
	for i, s := range steps {
		if rop.IsNil(s) {
			return nil, fmt.Errorf("%w at index %d", ErrNilStep, i)
		}

		kind, err := step.Classify(s)
		if err != nil {
			return nil, fmt.Errorf("chain: step %d (%s): %w", i, step.Name(s), err)
		}
		links = append(links, link{step: s, kind: kind})
	}

	return &Chain{id: uuid.New(), links: links}, nil
}

// Must is New for chains known to be valid.
func Must(steps ...step.Step) *Chain {
	c, err := New(steps...)
	if err != nil {
		panic(err)
	}
	return c
}

func (c *Chain) Id() uuid.UUID {
	return c.id
}

func (c *Chain) Len() int {
	return len(c.links)
}

func (c *Chain) Head() Cursor {
	return Cursor{chain: c, index: 0}
}

// Steps returns the steps in order.
func (c *Chain) Steps() []step.Step {
	steps := make([]step.Step, len(c.links))
	for i, l := range c.links {
		steps[i] = l.step
	}
	return steps
}

func (c *Chain) Kinds() []step.Kind {
	kinds := make([]step.Kind, len(c.links))
	for i, l := range c.links {
		kinds[i] = l.kind
	}
	return kinds
}
