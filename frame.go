package coro

import (
	"sync"

	"github.com/webriots/coro"
)

// frame is the coroutine ABI every other primitive in this package is
// built on: one frame backs exactly one goroutine, created suspended,
// driven forward by calls to Resume and parked by calls internal to
// its own body calling Suspend. It carries no data across the
// suspend/resume boundary itself -- Task/Generator layer their own
// typed result slot on top -- so both type parameters of
// github.com/webriots/coro.New are instantiated to struct{}, matching
// the "pure control transfer" shape the rest of this package needs.
// Keeping the frame untyped lets it back Task[T] for any T without a
// type parameter of its own, which is what lets Await work across two
// Tasks of different result types.
type frame struct {
	resume  func(struct{}) (struct{}, bool)
	cancel  func()
	suspend func()

	mu     sync.Mutex
	done   bool
	onDone func()
}

// newFrame creates a suspended frame. body receives the frame's own
// suspend function; body runs on its own goroutine starting from the
// first call to Resume.
func newFrame(body func(suspend func())) *frame {
	fr := &frame{}
	resume, cancel := coro.New(
		func(_ func(struct{}) struct{}, suspend func() struct{}) (z struct{}) {
			fr.suspend = func() { suspend() }
			body(fr.suspend)
			return
		},
	)
	fr.resume = resume
	fr.cancel = cancel
	return fr
}

// Resume drives the frame forward. It returns true if the frame
// suspended again without finishing, false if its body returned. When
// the body finishes, Resume invokes the installed continuation (if
// any) inline, on the calling goroutine -- the Go-native equivalent of
// a final_suspend awaiter returning a coroutine handle for symmetric
// transfer: whoever's call causes completion keeps running, straight
// into the continuation, without bouncing back through an outer
// driver loop.
func (f *frame) Resume() bool {
	_, more := f.resume(struct{}{})
	if more {
		return true
	}

	f.mu.Lock()
	f.done = true
	cb := f.onDone
	f.onDone = nil
	f.mu.Unlock()

	if cb != nil {
		cb()
	}
	return false
}

// Cancel tears down the underlying goroutine without running the rest
// of the body.
func (f *frame) Cancel() {
	f.cancel()
}

// setOnDone installs cb to run the moment this frame finishes. It
// returns false without installing anything if the frame has already
// finished, so the caller can fall back to its own immediate path
// instead of racing a continuation that will never fire.
func (f *frame) setOnDone(cb func()) bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.done {
		return false
	}
	if f.onDone != nil {
		panic("coro: a continuation is already installed on this frame")
	}
	f.onDone = cb
	return true
}

func (f *frame) isDone() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.done
}
