package coro

import (
	"context"
	"sync"
	"sync/atomic"
)

// platform is the per-OS half of Reactor: registering interest with
// the kernel's readiness mechanism and blocking for the next batch of
// events. reactor_linux.go implements it with epoll,
// reactor_darwin.go with kqueue, and reactor_other.go with a stub that
// always fails, so the package still builds on unsupported GOOS values.
type platform interface {
	addPersistent(fd int) error
	addOneshot(fd int, pt PollType) error
	removeFD(fd int)
	wait() ([]platformEvent, error)
	close() error
}

// platformEvent is one readiness notification: either a wake fd (fd
// matches one of the reactor's own wake fds, status is meaningless) or
// a previously-registered Poll fd with its translated status.
type platformEvent struct {
	fd     int
	status PollStatus
}

// Reactor multiplexes kernel readiness events for many outstanding
// Poll calls and hands resumable tasks to an Executor: a dedicated
// background goroutine blocks in the platform's wait(), two wake fds
// unblock it for newly scheduled work and for shutdown, and oneshot
// registration means every fd needs re-arming (not done by this
// package) before it can fire again.
type Reactor struct {
	exec Executor
	plat platform

	schedWake    wakeFD
	shutdownWake wakeFD

	mu        sync.Mutex
	fdRecords map[int]*pollRecord

	schedMu        sync.Mutex
	scheduled      []TaskBase
	schedTriggered atomic.Bool

	awaitingSize   atomic.Int64
	closeRequested atomic.Bool
	ioDone         chan struct{}
}

// NewReactor creates a Reactor that hands ready tasks to exec and
// starts its background I/O goroutine.
func NewReactor(exec Executor) (*Reactor, error) {
	plat, err := newPlatform()
	if err != nil {
		return nil, err
	}

	schedWake, err := newWakeFD()
	if err != nil {
		plat.close()
		return nil, err
	}

	shutdownWake, err := newWakeFD()
	if err != nil {
		schedWake.close()
		plat.close()
		return nil, err
	}

	if err := plat.addPersistent(schedWake.fd()); err != nil {
		schedWake.close()
		shutdownWake.close()
		plat.close()
		return nil, err
	}
	if err := plat.addPersistent(shutdownWake.fd()); err != nil {
		schedWake.close()
		shutdownWake.close()
		plat.close()
		return nil, err
	}

	r := &Reactor{
		exec:         exec,
		plat:         plat,
		schedWake:    schedWake,
		shutdownWake: shutdownWake,
		fdRecords:    make(map[int]*pollRecord),
		ioDone:       make(chan struct{}),
	}
	go r.loop()
	return r, nil
}

// Size reports the number of tasks currently parked on this reactor
// (outstanding Poll and Schedule calls).
func (r *Reactor) Size() int64 {
	return r.awaitingSize.Load()
}

// Schedule suspends the calling task and resumes it, through the
// reactor's executor, on the next pass of the I/O loop. It is the
// reactor-backed counterpart of StartOn: instead of going straight to
// an executor, the task first crosses the reactor's wake fd.
func (r *Reactor) Schedule(ctx context.Context) {
	if r.closeRequested.Load() {
		return
	}

	self := MustTaskBaseFromContext(ctx)
	r.awaitingSize.Add(1)

	r.schedMu.Lock()
	r.scheduled = append(r.scheduled, self)
	r.schedMu.Unlock()

	if r.schedTriggered.CompareAndSwap(false, true) {
		r.schedWake.trigger()
	}

	self.Suspend()
}

// Poll suspends the calling task until the platform poller reports fd
// ready for pt, errored or hung up. Close does not cancel an
// outstanding poll; it waits for it to complete. On a reactor that is
// already closed, Poll returns EventClosed and ErrReactorClosed
// without suspending.
func (r *Reactor) Poll(ctx context.Context, fd int, pt PollType) (PollStatus, error) {
	if r.closeRequested.Load() {
		return EventClosed, ErrReactorClosed
	}

	rec := &pollRecord{fd: fd, ptype: pt}

	r.mu.Lock()
	r.fdRecords[fd] = rec
	r.mu.Unlock()
	r.awaitingSize.Add(1)

	if err := r.plat.addOneshot(fd, pt); err != nil {
		r.mu.Lock()
		delete(r.fdRecords, fd)
		r.mu.Unlock()
		r.awaitingSize.Add(-1)
		return EventError, err
	}

	self := MustTaskBaseFromContext(ctx)
	rec.setWaiter(self)
	self.Suspend()

	r.awaitingSize.Add(-1)
	return rec.status, nil
}

// Close shuts the reactor's executor down, stops the I/O goroutine and
// releases its fds. It is idempotent.
func (r *Reactor) Close() error {
	if !r.closeRequested.CompareAndSwap(false, true) {
		return nil
	}

	r.shutdownWake.trigger()
	<-r.ioDone
	r.exec.Shutdown()

	r.plat.close()
	r.schedWake.close()
	r.shutdownWake.close()
	return nil
}

func (r *Reactor) loop() {
	defer close(r.ioDone)

	for {
		events, err := r.plat.wait()
		if err != nil {
			return
		}

		shuttingDown := r.closeRequested.Load()

		for _, ev := range events {
			switch ev.fd {
			case r.schedWake.fd():
				r.schedWake.reset()
				r.drainScheduled()
			case r.shutdownWake.fd():
				// only exists to unblock plat.wait(); nothing to do.
			default:
				r.deliverPoll(ev)
			}
		}

		if shuttingDown && r.awaitingSize.Load() == 0 {
			return
		}
	}
}

func (r *Reactor) deliverPoll(ev platformEvent) {
	r.mu.Lock()
	rec, ok := r.fdRecords[ev.fd]
	if ok {
		delete(r.fdRecords, ev.fd)
	}
	r.mu.Unlock()

	if !ok {
		return
	}
	if !rec.processed.CompareAndSwap(false, true) {
		return
	}

	r.plat.removeFD(ev.fd)
	rec.status = ev.status

	waiter := rec.getWaiter()
	r.exec.Resume(waiter)
}

func (r *Reactor) drainScheduled() {
	r.schedMu.Lock()
	batch := r.scheduled
	r.scheduled = nil
	r.schedTriggered.Store(false)
	r.schedMu.Unlock()

	for _, h := range batch {
		r.awaitingSize.Add(-1)
		r.exec.Resume(h)
	}
}
