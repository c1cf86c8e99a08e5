package coro

import (
	"sync"

	"github.com/gammazero/deque"
)

// MultiThreadExecutor runs resumed tasks across n worker goroutines
// draining a shared deque, using github.com/gammazero/deque for the
// queue instead of a hand-rolled ring buffer or channel.
type MultiThreadExecutor struct {
	mu       sync.Mutex
	cond     *sync.Cond
	handles  deque.Deque[TaskBase]
	shutdown bool
	wg       sync.WaitGroup
}

// NewMultiThreadExecutor starts n worker goroutines (at least 1) and
// returns the executor.
func NewMultiThreadExecutor(n int) *MultiThreadExecutor {
	if n <= 0 {
		n = 1
	}
	e := &MultiThreadExecutor{}
	e.cond = sync.NewCond(&e.mu)
	e.wg.Add(n)
	for i := 0; i < n; i++ {
		go e.worker()
	}
	return e
}

func (e *MultiThreadExecutor) Resume(task TaskBase) {
	e.mu.Lock()
	e.handles.PushBack(task)
	e.cond.Signal()
	e.mu.Unlock()
}

func (e *MultiThreadExecutor) Shutdown() {
	e.mu.Lock()
	e.shutdown = true
	e.cond.Broadcast()
	e.mu.Unlock()
	e.wg.Wait()
}

func (e *MultiThreadExecutor) worker() {
	defer e.wg.Done()
	for {
		e.mu.Lock()
		for e.handles.Len() == 0 && !e.shutdown {
			e.cond.Wait()
		}
		if e.handles.Len() == 0 && e.shutdown {
			e.mu.Unlock()
			return
		}
		task := e.handles.PopFront()
		e.mu.Unlock()

		task.Resume()
	}
}
