package coro

import (
	"context"
	"sync/atomic"
)

// Result is one child's outcome from a fan-out combinator (All2..All4,
// AllSlice): the value it produced, or the error it failed with.
type Result[T any] struct {
	Value T
	Err   error
}

// allLatch is an N+1-initialized counter: N children plus one slot for
// the parent's own registration, so that whichever of "the parent
// calls tryWait" or "the last child finishes" happens second is the
// one that performs the resume. Using fetch-and-add's previous-value
// return (rather than splitting into a separate "register" and
// "count" step) is what makes the ordering race-free without a lock:
// both tryWait and notifyCompleted commit with one atomic op and
// reason about the same prior value.
type allLatch struct {
	count  atomic.Int64
	waiter atomic.Value // TaskBase
}

func newAllLatch(n int) *allLatch {
	l := &allLatch{}
	l.count.Store(int64(n) + 1)
	return l
}

// tryWait registers self as the parent's waiter and reports whether
// the parent must suspend (true) or whether every child had already
// finished by the time the parent got here (false).
func (l *allLatch) tryWait(self TaskBase) bool {
	l.waiter.Store(self)
	prev := l.count.Add(-1) + 1
	return prev > 1
}

// notifyCompleted is called from a child task's own completion. If it
// was the last outstanding registration, it resumes the parent.
func (l *allLatch) notifyCompleted() {
	prev := l.count.Add(-1) + 1
	if prev == 1 {
		if w, ok := l.waiter.Load().(TaskBase); ok && w != nil {
			w.Resume()
		}
	}
}

// startChild drives a child task's first step and arranges for the
// latch to learn about its completion, whether that happens inline
// (the child finishes synchronously, before it ever suspends) or later
// from wherever the child eventually gets resumed from.
func startChild[T any](child *Task[T], latch *allLatch) {
	if more := child.fr.Resume(); more {
		if !child.fr.setOnDone(latch.notifyCompleted) {
			latch.notifyCompleted()
		}
		return
	}
	latch.notifyCompleted()
}

// All2 runs two tasks concurrently and returns both results once both
// have finished. Neither task's failure cancels the other -- per the
// spec, fan-out never cancels siblings; see ErrGroup for an opt-in
// first-error-cancels variant.
func All2[A, B any](ctx context.Context, ta *Task[A], tb *Task[B]) (Result[A], Result[B]) {
	self := MustTaskBaseFromContext(ctx)
	latch := newAllLatch(2)

	startChild(ta, latch)
	startChild(tb, latch)

	if latch.tryWait(self) {
		self.Suspend()
	}

	va, ea := ta.p.result()
	vb, eb := tb.p.result()
	return Result[A]{va, ea}, Result[B]{vb, eb}
}

// All3 runs three tasks concurrently and returns all three results.
func All3[A, B, C any](ctx context.Context, ta *Task[A], tb *Task[B], tc *Task[C]) (Result[A], Result[B], Result[C]) {
	self := MustTaskBaseFromContext(ctx)
	latch := newAllLatch(3)

	startChild(ta, latch)
	startChild(tb, latch)
	startChild(tc, latch)

	if latch.tryWait(self) {
		self.Suspend()
	}

	va, ea := ta.p.result()
	vb, eb := tb.p.result()
	vc, ec := tc.p.result()
	return Result[A]{va, ea}, Result[B]{vb, eb}, Result[C]{vc, ec}
}

// All4 runs four tasks concurrently and returns all four results.
func All4[A, B, C, D any](ctx context.Context, ta *Task[A], tb *Task[B], tc *Task[C], td *Task[D]) (Result[A], Result[B], Result[C], Result[D]) {
	self := MustTaskBaseFromContext(ctx)
	latch := newAllLatch(4)

	startChild(ta, latch)
	startChild(tb, latch)
	startChild(tc, latch)
	startChild(td, latch)

	if latch.tryWait(self) {
		self.Suspend()
	}

	va, ea := ta.p.result()
	vb, eb := tb.p.result()
	vc, ec := tc.p.result()
	vd, ed := td.p.result()
	return Result[A]{va, ea}, Result[B]{vb, eb}, Result[C]{vc, ec}, Result[D]{vd, ed}
}

// AllSlice runs a homogeneous slice of tasks concurrently and returns
// their results in the same order. This is the variadic-range overload
// Go generics can express directly, without needing one function per
// arity the way All2..All4 do for heterogeneous tuples.
func AllSlice[T any](ctx context.Context, tasks []*Task[T]) []Result[T] {
	if len(tasks) == 0 {
		return nil
	}

	self := MustTaskBaseFromContext(ctx)
	latch := newAllLatch(len(tasks))

	for _, t := range tasks {
		startChild(t, latch)
	}

	if latch.tryWait(self) {
		self.Suspend()
	}

	results := make([]Result[T], len(tasks))
	for i, t := range tasks {
		v, err := t.p.result()
		results[i] = Result[T]{v, err}
	}
	return results
}
