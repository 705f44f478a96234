package chain

import (
	"fmt"

	"github.com/ib-77/ropchain/pkg/rop/step"
)

// Cursor points at one link of a chain. The zero value points nowhere.
type Cursor struct {
	chain *Chain
	index int
}

func (c Cursor) Valid() bool {
	return c.chain != nil && c.index >= 0 && c.index < len(c.chain.links)
}

func (c Cursor) Chain() *Chain {
	return c.chain
}

func (c Cursor) Index() int {
	return c.index
}

func (c Cursor) Step() step.Step {
	return c.chain.links[c.index].step
}

func (c Cursor) Kind() step.Kind {
	return c.chain.links[c.index].kind
}

func (c Cursor) HasNext() bool {
	return c.Valid() && c.index+1 < len(c.chain.links)
}

// Next moves to the following link. ok is false at the end of the chain.
func (c Cursor) Next() (next Cursor, ok bool) {
	if !c.HasNext() {
		return Cursor{}, false
	}
	return Cursor{chain: c.chain, index: c.index + 1}, true
}

// HasMany reports whether this link or any later one fans out.
func (c Cursor) HasMany() bool {
	if !c.Valid() {
		return false
	}
	for _, l := range c.chain.links[c.index:] {
		if l.kind == step.Many {
			return true
		}
	}
	return false
}

// Rest returns the steps from this link to the end.
func (c Cursor) Rest() []step.Step {
	if !c.Valid() {
		return nil
	}
	return c.chain.Steps()[c.index:]
}

func (c Cursor) Position() step.Position {
	if c.chain == nil {
		return step.Position{}
	}
	return step.Position{Index: c.index, Len: len(c.chain.links)}
}

func (c Cursor) String() string {
	if !c.Valid() {
		return "<end>"
	}
	return fmt.Sprintf("%s#%d", step.Name(c.Step()), c.index)
}
