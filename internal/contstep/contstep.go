// Package contstep chains a sequence of named steps that stop at the first
// failure, wrapping the failing step's error with its name for context.
//
// It is a trimmed variant of a step-chaining helper used elsewhere in this
// codebase: where that helper accumulates every error across the chain, this
// one only ever needs the first, since a truncated or partially written
// triefile is never safe to read regardless of what failed after it.
package contstep

import "fmt"

// Chain runs a sequence of steps in order, stopping at the first error.
type Chain struct {
	err error
}

// New returns an empty chain.
func New() *Chain {
	return &Chain{}
}

// Then runs f, labeled name, unless an earlier step already failed.
func (c *Chain) Then(name string, f func() error) *Chain {
	if c.err != nil {
		return c
	}
	if err := f(); err != nil {
		c.err = fmt.Errorf("%s: %w", name, err)
	}
	return c
}

// Err returns the first error encountered, or nil if every step succeeded.
func (c *Chain) Err() error {
	return c.err
}
