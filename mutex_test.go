package coro

import (
	"context"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestMutexExclusion(t *testing.T) {
	r := require.New(t)

	exec := NewMultiThreadExecutor(4)
	defer exec.Shutdown()

	ctx := context.Background()
	var mux Mutex
	var wg WaitGroup
	var critical int32
	var n int32

	parent := New(ctx, func(ctx context.Context, _ *Task[int32]) (int32, error) {
		mux.Lock(ctx)

		for i := 0; i < 8; i++ {
			wg.Add(1)
			child := New(ctx, func(ctx context.Context, _ *Task[struct{}]) (struct{}, error) {
				defer wg.Done()
				mux.Lock(ctx)
				defer mux.Unlock()

				c := atomic.AddInt32(&critical, 1)
				r.EqualValues(1, c)
				atomic.AddInt32(&n, 1)
				atomic.AddInt32(&critical, -1)
				return struct{}{}, nil
			})
			exec.Resume(child)
		}

		mux.Unlock()
		wg.Wait(ctx)
		return atomic.LoadInt32(&n), nil
	})

	v, err := Sync(parent)
	r.NoError(err)
	r.EqualValues(8, v)
	r.Zero(mux.WaitCount())
}

func TestMutexUnlockHandsOffDirectly(t *testing.T) {
	r := require.New(t)

	exec := NewMultiThreadExecutor(2)
	defer exec.Shutdown()

	ctx := context.Background()
	var mux Mutex
	var wg WaitGroup

	order := make([]int, 0, 2)

	parent := New(ctx, func(ctx context.Context, _ *Task[struct{}]) (struct{}, error) {
		mux.Lock(ctx)

		wg.Add(1)
		child := New(ctx, func(ctx context.Context, _ *Task[struct{}]) (struct{}, error) {
			defer wg.Done()
			mux.Lock(ctx)
			defer mux.Unlock()
			order = append(order, 2)
			return struct{}{}, nil
		})
		exec.Resume(child)

		order = append(order, 1)
		mux.Unlock()

		wg.Wait(ctx)
		return struct{}{}, nil
	})

	_, err := Sync(parent)
	r.NoError(err)
	r.Equal([]int{1, 2}, order)
}
