package coro

import "sync"

// SingleThreadExecutor runs all resumed tasks on one dedicated worker
// goroutine, one pending task at a time: a single pending-handle slot
// and a condition variable instead of a queue, since only one worker
// ever drains it.
//
// A second Resume call before the worker has picked up the first
// overwrites the pending slot (last writer wins) rather than queuing
// -- callers that need every resumption preserved should use
// MultiThreadExecutor with a single worker instead, which queues.
type SingleThreadExecutor struct {
	mu       sync.Mutex
	cond     *sync.Cond
	pending  TaskBase
	shutdown bool
	done     chan struct{}
}

// NewSingleThreadExecutor starts the worker goroutine and returns the
// executor.
func NewSingleThreadExecutor() *SingleThreadExecutor {
	e := &SingleThreadExecutor{done: make(chan struct{})}
	e.cond = sync.NewCond(&e.mu)
	go e.loop()
	return e
}

func (e *SingleThreadExecutor) Resume(task TaskBase) {
	e.mu.Lock()
	e.pending = task
	e.cond.Signal()
	e.mu.Unlock()
}

func (e *SingleThreadExecutor) Shutdown() {
	e.mu.Lock()
	e.shutdown = true
	e.cond.Signal()
	e.mu.Unlock()
	<-e.done
}

func (e *SingleThreadExecutor) loop() {
	defer close(e.done)
	for {
		e.mu.Lock()
		for e.pending == nil && !e.shutdown {
			e.cond.Wait()
		}
		if e.pending == nil && e.shutdown {
			e.mu.Unlock()
			return
		}
		task := e.pending
		e.pending = nil
		e.mu.Unlock()

		task.Resume()
	}
}
