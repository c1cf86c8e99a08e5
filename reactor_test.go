package coro

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestReactorPollReadReady(t *testing.T) {
	r := require.New(t)

	exec := NewMultiThreadExecutor(2)
	reactor, err := NewReactor(exec)
	r.NoError(err)
	defer reactor.Close()

	pr, pw, err := os.Pipe()
	r.NoError(err)
	defer pr.Close()
	defer pw.Close()

	ctx := context.Background()
	task := New(ctx, func(ctx context.Context, _ *Task[PollStatus]) (PollStatus, error) {
		return reactor.Poll(ctx, int(pr.Fd()), PollRead)
	})

	done := make(chan struct{})
	var status PollStatus
	var perr error
	go func() {
		status, perr = Sync(task)
		close(done)
	}()

	select {
	case <-done:
		r.Fail("poll resolved before the pipe had data")
	case <-time.After(10 * time.Millisecond):
	}

	_, err = pw.Write([]byte("x"))
	r.NoError(err)

	<-done
	r.NoError(perr)
	r.Equal(EventReady, status)
}

func TestReactorSchedule(t *testing.T) {
	r := require.New(t)

	exec := NewMultiThreadExecutor(2)
	reactor, err := NewReactor(exec)
	r.NoError(err)
	defer reactor.Close()

	ctx := context.Background()
	task := New(ctx, func(ctx context.Context, _ *Task[int]) (int, error) {
		reactor.Schedule(ctx)
		return 7, nil
	})

	v, err := Sync(task)
	r.NoError(err)
	r.Equal(7, v)
}

func TestReactorCloseIsIdempotentAndRejectsNewPolls(t *testing.T) {
	r := require.New(t)

	exec := NewMultiThreadExecutor(1)
	reactor, err := NewReactor(exec)
	r.NoError(err)

	r.NoError(reactor.Close())
	r.NoError(reactor.Close())

	pr, pw, err := os.Pipe()
	r.NoError(err)
	defer pr.Close()
	defer pw.Close()

	ctx := context.Background()
	// a task that fails keeps no value, so the status is captured
	// directly from Poll rather than read back through Sync.
	var status PollStatus
	task := New(ctx, func(ctx context.Context, _ *Task[PollStatus]) (PollStatus, error) {
		var perr error
		status, perr = reactor.Poll(ctx, int(pr.Fd()), PollRead)
		return status, perr
	})

	_, err = Sync(task)
	r.ErrorIs(err, ErrReactorClosed)
	r.Equal(EventClosed, status)
}

func TestReactorSize(t *testing.T) {
	r := require.New(t)

	exec := NewMultiThreadExecutor(1)
	reactor, err := NewReactor(exec)
	r.NoError(err)
	defer reactor.Close()

	r.EqualValues(0, reactor.Size())

	pr, pw, err := os.Pipe()
	r.NoError(err)
	defer pr.Close()
	defer pw.Close()

	ctx := context.Background()
	task := New(ctx, func(ctx context.Context, _ *Task[PollStatus]) (PollStatus, error) {
		return reactor.Poll(ctx, int(pr.Fd()), PollRead)
	})

	done := make(chan struct{})
	go func() {
		_, _ = Sync(task)
		close(done)
	}()

	select {
	case <-done:
		r.Fail("poll resolved before the pipe had data")
	case <-time.After(10 * time.Millisecond):
	}
	r.EqualValues(1, reactor.Size())

	_, err = pw.Write([]byte("x"))
	r.NoError(err)
	<-done
	r.EqualValues(0, reactor.Size())
}
