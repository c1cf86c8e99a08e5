package coro

import (
	"context"
	"sync/atomic"
)

// eventWaiter is one node of Event's Treiber stack of parked tasks.
type eventWaiter struct {
	next *eventWaiter
	task TaskBase
}

// Event is a single-fire broadcast signal: any number of tasks can
// wait on it, and a single call to Trigger resumes all of them. The
// waiter list is a lock-free CAS-linked stack; sync/atomic.Pointer
// gives the compare-and-swap primitive without needing to hand-roll
// unsafe pointer tagging.
//
// Installing a waiter and actually suspending it are two separate
// steps here (CAS the node onto the list, then call Suspend). This is
// safe because github.com/webriots/coro's resume/suspend pair is a
// synchronous rendezvous: a Trigger racing in after the CAS but before
// Suspend simply blocks on that handoff until this goroutine reaches
// its Suspend call, instead of corrupting state the way a plain
// unbuffered send to a not-yet-listening goroutine would.
type Event struct {
	noCopy    noCopy
	triggered atomic.Bool
	head      atomic.Pointer[eventWaiter]
}

// NewEvent creates an Event, optionally already triggered.
func NewEvent(alreadyTriggered bool) *Event {
	e := &Event{}
	e.triggered.Store(alreadyTriggered)
	return e
}

// IsTriggered reports whether Trigger has been called.
func (e *Event) IsTriggered() bool {
	return e.triggered.Load()
}

// Wait suspends the calling task until the event is triggered. It
// returns immediately if the event is already triggered.
func (e *Event) Wait(ctx context.Context) {
	if e.IsTriggered() {
		return
	}

	self := MustTaskBaseFromContext(ctx)
	w := &eventWaiter{task: self}

	for {
		head := e.head.Load()
		if e.IsTriggered() {
			return
		}
		w.next = head
		if e.head.CompareAndSwap(head, w) {
			break
		}
	}

	self.Suspend()
}

// Trigger marks the event triggered and resumes every task currently
// parked in Wait, in the order they happened to land on the stack
// (most-recently-parked first). Calling Trigger more than once has no
// further effect.
func (e *Event) Trigger() {
	if !e.triggered.CompareAndSwap(false, true) {
		return
	}

	for n := e.head.Swap(nil); n != nil; {
		next := n.next
		n.task.Resume()
		n = next
	}
}

// Reset clears the triggered flag and any stale waiter chain, so the
// Event can be reused. It must not be called concurrently with Wait or
// Trigger.
func (e *Event) Reset() {
	e.triggered.Store(false)
	e.head.Store(nil)
}
