package coro

import (
	"context"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestStartOnSingleThreadExecutor(t *testing.T) {
	r := require.New(t)

	exec := NewSingleThreadExecutor()
	defer exec.Shutdown()

	task := New(context.Background(), func(ctx context.Context, _ *Task[int]) (int, error) {
		StartOn(ctx, exec)
		return 99, nil
	})

	done := make(chan int, 1)
	go func() {
		v, err := Sync(task)
		r.NoError(err)
		done <- v
	}()

	r.Equal(99, <-done)
}

func TestMultiThreadExecutorFansOut(t *testing.T) {
	r := require.New(t)

	exec := NewMultiThreadExecutor(4)
	defer exec.Shutdown()

	const n = 50
	var counter atomic.Int64
	ctx := context.Background()

	parent := New(ctx, func(ctx context.Context, _ *Task[int64]) (int64, error) {
		tasks := make([]*Task[struct{}], n)
		for i := range tasks {
			tasks[i] = New(ctx, func(ctx context.Context, _ *Task[struct{}]) (struct{}, error) {
				StartOn(ctx, exec)
				counter.Add(1)
				return struct{}{}, nil
			})
		}
		AllSlice(ctx, tasks)
		return counter.Load(), nil
	})

	v, err := Sync(parent)
	r.NoError(err)
	r.EqualValues(n, v)
}

func TestSingleThreadExecutorShutdownIsIdempotent(t *testing.T) {
	r := require.New(t)

	exec := NewSingleThreadExecutor()
	exec.Shutdown()
	r.NotPanics(func() { exec.Shutdown() })
}
