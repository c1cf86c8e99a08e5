package coro

import (
	"context"
	"sync"
)

// ErrGroup runs a group of tasks on an Executor and collects the first
// error any of them returns, cancelling the group's context at that
// point. Unlike AllSlice, which never cancels siblings, ErrGroup is
// the opt-in variant for callers who do want first-error-cancels-context
// semantics -- it is built from Task/WaitGroup rather than from
// AllSlice so that a caller's own context.WithCancelCause propagates
// into every child.
type ErrGroup struct {
	ctx    context.Context
	cancel context.CancelCauseFunc
	wg     WaitGroup

	mu  sync.Mutex
	err error
}

// NewErrGroup derives a cancellable context from ctx and returns a
// group bound to it, along with that derived context for callers to
// pass to Go.
func NewErrGroup(ctx context.Context) (*ErrGroup, context.Context) {
	cctx, cancel := context.WithCancelCause(ctx)
	return &ErrGroup{ctx: cctx, cancel: cancel}, cctx
}

// Go starts fn as a new task on exec. If fn returns an error, it is
// recorded (the first one wins) and the group's context is cancelled,
// which any child observing ctx.Err() can react to.
func (g *ErrGroup) Go(exec Executor, fn func(context.Context) error) {
	g.wg.Add(1)

	t := New(g.ctx, func(ctx context.Context, self *Task[struct{}]) (struct{}, error) {
		defer g.wg.Done()

		if err := fn(ctx); err != nil {
			g.mu.Lock()
			if g.err == nil {
				g.err = err
				g.cancel(err)
			}
			g.mu.Unlock()
		}
		return struct{}{}, nil
	})

	exec.Resume(t)
}

// Wait suspends the calling task until every child started with Go has
// finished, then returns the first error any of them returned.
func (g *ErrGroup) Wait(ctx context.Context) error {
	g.wg.Wait(ctx)
	g.cancel(g.err)
	return g.err
}
