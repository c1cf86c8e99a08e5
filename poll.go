package coro

import (
	"runtime"
	"sync/atomic"
)

// PollType selects which readiness direction Reactor.Poll waits for.
type PollType uint8

const (
	PollRead PollType = iota
	PollWrite
	PollReadWrite
)

func (t PollType) String() string {
	switch t {
	case PollRead:
		return "read"
	case PollWrite:
		return "write"
	case PollReadWrite:
		return "read_write"
	default:
		return "unknown"
	}
}

// PollStatus is the outcome Reactor.Poll resumes a waiting task with.
type PollStatus uint8

const (
	// EventReady means the fd became ready in the requested direction.
	EventReady PollStatus = iota
	// EventTimeout is reserved for a future timer integration; nothing
	// in this package currently produces it.
	EventTimeout
	// EventError means the poll failed (a bad fd, or a reactor-level
	// registration error).
	EventError
	// EventClosed means the fd's peer hung up / the fd was closed while
	// the poll was outstanding.
	EventClosed
)

func (s PollStatus) String() string {
	switch s {
	case EventReady:
		return "ready"
	case EventTimeout:
		return "timeout"
	case EventError:
		return "error"
	case EventClosed:
		return "closed"
	default:
		return "unknown"
	}
}

// pollRecord tracks one outstanding Reactor.Poll call: the fd it was
// registered for, the status the platform poller observed, and the
// waiting task, published through an atomic.Value rather than set
// directly, because FD registration with the kernel happens before the
// awaiting task is known to the reactor -- there is a real window in
// which the kernel could report readiness before the waiter is
// recorded. getWaiter spins until the Store lands, using
// atomic.Value's Load/Store for the acquire/release pairing rather
// than an ordering workaround.
type pollRecord struct {
	fd        int
	ptype     PollType
	status    PollStatus
	processed atomic.Bool
	waiter    atomic.Value // TaskBase
}

func (p *pollRecord) setWaiter(t TaskBase) {
	p.waiter.Store(t)
}

func (p *pollRecord) getWaiter() TaskBase {
	for {
		if v := p.waiter.Load(); v != nil {
			return v.(TaskBase)
		}
		runtime.Gosched()
	}
}
