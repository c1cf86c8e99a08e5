package coro

import (
	"context"
	"fmt"
	"runtime/trace"
	"strings"
)

const (
	taskTraceTaskType   = "coro-task"
	taskTraceRegionType = "coro-region"
	taskTraceCategory   = "coro"
)

// TaskBase is the type-erased half of Task[T]: the part every
// suspension point in this package needs regardless of a Task's
// result type. Event, Latch, Reactor and the executors all operate on
// TaskBase rather than Task[T] directly, which is what lets a
// Task[int] await a Task[string] through the same Await function.
//
// Only Task[T], for any T, implements this interface; the unexported
// parent/logging methods exist so a TaskBase can still be traced
// without exposing the frame itself outside this package.
type TaskBase interface {
	// Resume drives the task forward one step. It returns true if the
	// task suspended again, false once it has produced a result.
	Resume() bool
	// Destroy cancels the task's underlying goroutine without letting
	// the rest of its body run.
	Destroy()
	// Suspend parks the calling task. It must only be called from
	// within that task's own body.
	Suspend()
	// Context returns the task's context, the one carrying the task
	// itself; its body function is invoked with a context derived from
	// it that also carries the task's runtime/trace task.
	Context() context.Context

	Log(string)
	Logf(string, ...any)

	parent() TaskBase
}

// Task is a lazy, one-shot asynchronous computation. Calling New does
// not run fn; the task starts the first time it is driven, either by
// Resume or by being awaited. Once fn returns, the task's result (a
// value or an error, including a recovered panic) is fixed and can be
// read repeatedly.
type Task[T any] struct {
	noCopy noCopy

	ctx context.Context
	fr  *frame
	p   *promise[T]
	par TaskBase
}

// New creates a Task that will run fn, with ctx (extended to carry the
// task itself, see MustTaskBaseFromContext) passed to it, once the
// task is first driven.
func New[T any](ctx context.Context, fn func(context.Context, *Task[T]) (T, error)) *Task[T] {
	t := &Task[T]{p: &promise[T]{}}
	t.ctx = withTaskContext(ctx, t)

	t.fr = newFrame(func(suspend func()) {
		taskCtx, tracer := trace.NewTask(t.ctx, taskTraceTaskType)
		defer tracer.End()
		region := trace.StartRegion(taskCtx, taskTraceRegionType)
		defer region.End()

		var v T
		var err error
		func() {
			defer func() {
				if r := recover(); r != nil {
					err = newPanicError(r)
				}
			}()
			v, err = fn(taskCtx, t)
		}()

		if err != nil {
			t.p.setErr(err)
		} else {
			t.p.setValue(v)
		}
	})

	return t
}

// NewChild creates a Task the same way New does, but records parent as
// its logical parent for tracing (see Log/Logf) and for callers that
// want to walk a task tree (see ErrGroup, which spawns children off the
// task it was created from).
func NewChild[T any](parent TaskBase, ctx context.Context, fn func(context.Context, *Task[T]) (T, error)) *Task[T] {
	t := New(ctx, fn)
	t.par = parent
	return t
}

func (t *Task[T]) Resume() bool     { return t.fr.Resume() }
func (t *Task[T]) Destroy()         { t.fr.Cancel() }
func (t *Task[T]) Suspend()         { t.fr.suspend() }
func (t *Task[T]) Context() context.Context { return t.ctx }
func (t *Task[T]) Done() bool       { return t.fr.isDone() }
func (t *Task[T]) parent() TaskBase { return t.par }

// Result returns the task's settled value or error. It returns
// errResultNotReady if called before the task has finished; callers
// that need to block for the result should use Sync or Await instead.
func (t *Task[T]) Result() (T, error) {
	return t.p.result()
}

func (t *Task[T]) Log(msg string) {
	if !trace.IsEnabled() {
		return
	}
	var sb strings.Builder
	taskPath(&sb, t)
	sb.WriteRune(' ')
	sb.WriteString(msg)
	trace.Log(t.ctx, taskTraceCategory, sb.String())
}

func (t *Task[T]) Logf(format string, args ...any) {
	if !trace.IsEnabled() {
		return
	}
	var sb strings.Builder
	taskPath(&sb, t)
	sb.WriteRune(' ')
	fmt.Fprintf(&sb, format, args...)
	trace.Log(t.ctx, taskTraceCategory, sb.String())
}

func taskPath(sb *strings.Builder, t TaskBase) {
	if t == nil {
		return
	}
	taskPath(sb, t.parent())
	fmt.Fprintf(sb, "%p|", t)
}

// Await suspends self until task has produced a result, then returns
// it. task is driven inline the first time (frame.Resume performs the
// initial suspend-to-running transition and, if the child suspends
// again rather than finishing, runs synchronously up to that point);
// only if the child is not yet done does Await install self as its
// continuation and park. At most one consumer may await a given Task.
func Await[T any](self TaskBase, task *Task[T]) (T, error) {
	for {
		if v, err, ok := task.p.peek(); ok {
			return v, err
		}

		if more := task.fr.Resume(); more {
			if task.fr.setOnDone(func() { self.Resume() }) {
				self.Suspend()
			}
			continue
		}
		// The frame finished synchronously inside the call above; loop
		// back around and the peek at the top will pick up the result.
	}
}
