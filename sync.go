package coro

import "sync"

// syncEvent is a condition-variable-backed single-fire signal used to
// block a plain (non-task) goroutine.
type syncEvent struct {
	mu        sync.Mutex
	cond      *sync.Cond
	triggered bool
}

func newSyncEvent() *syncEvent {
	e := &syncEvent{}
	e.cond = sync.NewCond(&e.mu)
	return e
}

func (e *syncEvent) trigger() {
	e.mu.Lock()
	e.triggered = true
	e.mu.Unlock()
	e.cond.Broadcast()
}

func (e *syncEvent) wait() {
	e.mu.Lock()
	for !e.triggered {
		e.cond.Wait()
	}
	e.mu.Unlock()
}

// Sync runs task from ordinary, non-task code and blocks the calling
// goroutine until it finishes, returning its result or its captured
// panic as an error: frame.setOnDone triggers a condition variable
// that the calling goroutine waits on.
//
// Sync is the one place in this package meant to be called from a
// goroutine that is not itself a Task body -- main(), an HTTP handler,
// a test -- which is why it blocks with a condition variable instead
// of a Suspend call.
func Sync[T any](task *Task[T]) (T, error) {
	ev := newSyncEvent()

	if more := task.fr.Resume(); more {
		if task.fr.setOnDone(ev.trigger) {
			ev.wait()
		}
	}

	return task.p.result()
}
