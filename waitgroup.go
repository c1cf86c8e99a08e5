package coro

import (
	"context"
	"sync"

	"github.com/gammazero/deque"
)

// WaitGroup blocks tasks until a counter reaches zero, the task-aware
// counterpart of sync.WaitGroup.
type WaitGroup struct {
	noCopy noCopy

	mu      sync.Mutex
	count   int
	waiters deque.Deque[TaskBase]
}

// Add adds delta to the counter. If it drops to zero, every waiting
// task is resumed. Add panics if the counter would go negative.
func (wg *WaitGroup) Add(delta int) {
	wg.mu.Lock()
	wg.count += delta
	if wg.count < 0 {
		wg.mu.Unlock()
		panic("coro: negative WaitGroup counter")
	}
	if wg.count > 0 {
		wg.mu.Unlock()
		return
	}

	var ready []TaskBase
	for wg.waiters.Len() > 0 {
		ready = append(ready, wg.waiters.PopFront())
	}
	wg.mu.Unlock()

	for _, t := range ready {
		t.Resume()
	}
}

// Done decrements the counter by one.
func (wg *WaitGroup) Done() { wg.Add(-1) }

// Wait suspends the calling task until the counter is zero. It
// returns immediately if the counter is already zero.
func (wg *WaitGroup) Wait(ctx context.Context) {
	self := MustTaskBaseFromContext(ctx)

	wg.mu.Lock()
	if wg.count == 0 {
		wg.mu.Unlock()
		return
	}
	wg.waiters.PushBack(self)
	wg.mu.Unlock()

	self.Suspend()
}
