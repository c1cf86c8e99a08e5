package coro

import (
	"context"
	"sync"

	"github.com/gammazero/deque"
)

// Mutex provides mutual exclusion between tasks: only one task holds
// it at a time, and others calling Lock suspend until it's released.
// The FIFO wait queue is a gammazero/deque directly rather than a
// separate semaphore type, since a plain deque plus a mutex is all
// this needs.
type Mutex struct {
	noCopy noCopy

	mu      sync.Mutex
	locked  bool
	waiters deque.Deque[TaskBase]
}

// Lock acquires the mutex, suspending the calling task if it is
// already held.
func (m *Mutex) Lock(ctx context.Context) {
	self := MustTaskBaseFromContext(ctx)

	m.mu.Lock()
	if !m.locked {
		m.locked = true
		m.mu.Unlock()
		return
	}
	m.waiters.PushBack(self)
	m.mu.Unlock()

	self.Suspend()
}

// Unlock releases the mutex. If a task is waiting, ownership passes
// directly to it -- the mutex stays locked, and the next waiter is
// simply resumed.
func (m *Mutex) Unlock() {
	m.mu.Lock()
	if m.waiters.Len() == 0 {
		m.locked = false
		m.mu.Unlock()
		return
	}
	next := m.waiters.PopFront()
	m.mu.Unlock()

	next.Resume()
}

// WaitCount returns the number of tasks currently waiting to acquire
// the mutex.
func (m *Mutex) WaitCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.waiters.Len()
}
