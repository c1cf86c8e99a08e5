package coro

import (
	"context"
	"iter"
)

// Generator is a lazy, non-restartable sequence produced by a
// coroutine body that yields values one at a time. Next/Value/Err
// follow the bufio.Scanner shape idiomatic Go uses for this pattern: a
// panic inside the generator body is captured and reported through
// Err rather than rethrown from Next, since propagating a panic across
// an iteration boundary isn't idiomatic Go.
type Generator[T any] struct {
	noCopy noCopy

	fr   *frame
	cur  T
	err  error
	done bool
}

// NewGenerator creates a suspended generator. fn receives a yield
// function; each call to yield publishes a value and parks the
// generator until the next call to Next.
func NewGenerator[T any](ctx context.Context, fn func(context.Context, func(T))) *Generator[T] {
	g := &Generator[T]{}

	g.fr = newFrame(func(suspend func()) {
		yield := func(v T) {
			g.cur = v
			suspend()
		}

		defer func() {
			if r := recover(); r != nil {
				g.err = newPanicError(r)
			}
		}()

		fn(ctx, yield)
	})

	return g
}

// Next advances the generator and reports whether a new value is
// available. It returns false once the generator has finished, whether
// normally or via a panic; check Err afterward to distinguish the two.
func (g *Generator[T]) Next() bool {
	if g.done {
		return false
	}
	if more := g.fr.Resume(); !more {
		g.done = true
		return false
	}
	return true
}

// Value returns the value published by the most recent Next call that
// returned true.
func (g *Generator[T]) Value() T { return g.cur }

// Err returns the error from a panic inside the generator body, if
// the generator has finished abnormally.
func (g *Generator[T]) Err() error { return g.err }

// Close tears down the generator's underlying goroutine without
// draining the rest of its values.
func (g *Generator[T]) Close() {
	g.fr.Cancel()
	g.done = true
}

// Seq adapts the generator to a Go 1.23 range-over-func sequence, so a
// Generator[T] composes with `for v := range gen.Seq()`. Breaking out
// of the range loop early cancels the underlying frame.
func (g *Generator[T]) Seq() iter.Seq[T] {
	return func(yield func(T) bool) {
		for g.Next() {
			if !yield(g.Value()) {
				g.Close()
				return
			}
		}
	}
}
