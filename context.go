package coro

import "context"

// taskContextKey is a unique type used as a key for storing the
// currently-running TaskBase in a context.
type taskContextKey struct{}

// withTaskContext returns a context carrying task as the ambient
// TaskBase, retrievable by TaskBaseFromContext. Every Task installs
// itself into its own context before running its body, so that
// Event/Latch/Reactor calls deep in a call chain can recover "the task
// currently running" without it being threaded through every function
// signature.
func withTaskContext(ctx context.Context, task TaskBase) context.Context {
	return context.WithValue(ctx, taskContextKey{}, task)
}

// TaskBaseFromContext retrieves the TaskBase stored in ctx, if any.
func TaskBaseFromContext(ctx context.Context) (TaskBase, bool) {
	val, ok := ctx.Value(taskContextKey{}).(TaskBase)
	return val, ok
}

// MustTaskBaseFromContext retrieves the TaskBase stored in ctx,
// panicking if ctx was not derived from a running Task. Every
// suspension point in this package (Event.Wait, Latch.Wait,
// Reactor.Poll, Reactor.Schedule, Mutex.Lock, WaitGroup.Wait) calls
// this to find out who it's suspending.
func MustTaskBaseFromContext(ctx context.Context) TaskBase {
	val, ok := TaskBaseFromContext(ctx)
	if !ok {
		panic("coro: no task found in context")
	}
	return val
}
