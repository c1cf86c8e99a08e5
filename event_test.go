package coro

import (
	"context"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestEventBroadcastsToAllWaiters(t *testing.T) {
	r := require.New(t)

	ev := NewEvent(false)

	const n = 5
	var fired int32
	var wg sync.WaitGroup
	wg.Add(n)

	for i := 0; i < n; i++ {
		go func() {
			defer wg.Done()
			task := New(context.Background(), func(ctx context.Context, _ *Task[struct{}]) (struct{}, error) {
				ev.Wait(ctx)
				atomic.AddInt32(&fired, 1)
				return struct{}{}, nil
			})
			_, err := Sync(task)
			r.NoError(err)
		}()
	}

	ev.Trigger()
	wg.Wait()
	r.EqualValues(n, atomic.LoadInt32(&fired))
}

func TestEventAlreadyTriggeredReturnsImmediately(t *testing.T) {
	r := require.New(t)

	ev := NewEvent(true)
	r.True(ev.IsTriggered())

	task := New(context.Background(), func(ctx context.Context, _ *Task[struct{}]) (struct{}, error) {
		ev.Wait(ctx)
		return struct{}{}, nil
	})

	done := make(chan struct{})
	go func() {
		_, err := Sync(task)
		r.NoError(err)
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(time.Second):
		r.Fail("wait on an already-triggered event should not block")
	}
}

func TestEventResetAllowsReuse(t *testing.T) {
	r := require.New(t)

	ev := NewEvent(false)
	ev.Trigger()
	r.True(ev.IsTriggered())

	ev.Reset()
	r.False(ev.IsTriggered())

	task := New(context.Background(), func(ctx context.Context, _ *Task[int]) (int, error) {
		ev.Wait(ctx)
		return 1, nil
	})

	done := make(chan struct{})
	go func() {
		v, err := Sync(task)
		r.NoError(err)
		r.Equal(1, v)
		close(done)
	}()

	select {
	case <-done:
		r.Fail("wait should block until the reset event is triggered again")
	case <-time.After(10 * time.Millisecond):
	}

	ev.Trigger()
	<-done
}
