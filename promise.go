package coro

import "sync"

type resultState uint8

const (
	resultUnset resultState = iota
	resultValue
	resultException
)

// promise holds a Task[T]'s result slot: unset, a value, or a
// captured exception. Reads and writes are mutex-protected rather than
// lock-free because at most one consumer observes a given Task's
// result, and that consumer always does so after the frame's
// completion has already been published through frame.onDone -- the
// mutex here only guards the promise's own internal bookkeeping, not
// the happens-before edge.
type promise[T any] struct {
	mu    sync.Mutex
	state resultState
	value T
	err   error
}

func (p *promise[T]) setValue(v T) {
	p.mu.Lock()
	p.value = v
	p.state = resultValue
	p.mu.Unlock()
}

func (p *promise[T]) setErr(err error) {
	p.mu.Lock()
	p.err = err
	p.state = resultException
	p.mu.Unlock()
}

// peek returns the settled result, if any, without blocking.
func (p *promise[T]) peek() (v T, err error, ok bool) {
	p.mu.Lock()
	defer p.mu.Unlock()
	switch p.state {
	case resultValue:
		return p.value, nil, true
	case resultException:
		var zero T
		return zero, p.err, true
	default:
		var zero T
		return zero, nil, false
	}
}

// result returns the settled value or error, or errResultNotReady if
// the promise has not been set yet.
func (p *promise[T]) result() (T, error) {
	v, err, ok := p.peek()
	if !ok {
		var zero T
		return zero, errResultNotReady
	}
	return v, err
}
