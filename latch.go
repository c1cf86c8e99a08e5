package coro

import (
	"context"
	"sync"
)

// Latch is a single-use countdown gate: it starts at n and resumes its
// one waiter the moment the count reaches zero. Unlike Event, only a
// single task ever awaits a given Latch, so a mutex (rather than a
// lock-free structure) is the right choice here -- there's no waiter
// list to race over, just one slot.
type Latch struct {
	noCopy noCopy

	mu     sync.Mutex
	count  int64
	waiter TaskBase
}

// NewLatch creates a Latch requiring n calls to CountDown before a
// waiter is released. A non-positive n is already done.
func NewLatch(n int) *Latch {
	return &Latch{count: int64(n)}
}

// CountDown decrements the latch's count. If the count reaches zero
// and a task is waiting, it is resumed. Extra calls once the count has
// already reached zero are harmless no-ops.
func (l *Latch) CountDown() {
	l.mu.Lock()
	if l.count <= 0 {
		l.mu.Unlock()
		return
	}
	l.count--
	fire := l.count == 0
	w := l.waiter
	if fire {
		l.waiter = nil
	}
	l.mu.Unlock()

	if fire && w != nil {
		w.Resume()
	}
}

// Remaining reports the latch's current count.
func (l *Latch) Remaining() int64 {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.count
}

// Wait suspends the calling task until the count reaches zero. It
// returns immediately if the count is already zero.
func (l *Latch) Wait(ctx context.Context) {
	self := MustTaskBaseFromContext(ctx)

	l.mu.Lock()
	if l.count <= 0 {
		l.mu.Unlock()
		return
	}
	l.waiter = self
	l.mu.Unlock()

	self.Suspend()
}
