package coro

import (
	"context"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestWaitGroupWaitsForAllChildren(t *testing.T) {
	r := require.New(t)

	exec := NewMultiThreadExecutor(4)
	defer exec.Shutdown()

	ctx := context.Background()
	var wg WaitGroup
	var n atomic.Int32

	parent := New(ctx, func(ctx context.Context, _ *Task[int32]) (int32, error) {
		for i := 0; i < 20; i++ {
			wg.Add(1)
			child := New(ctx, func(ctx context.Context, _ *Task[struct{}]) (struct{}, error) {
				defer wg.Done()
				n.Add(1)
				return struct{}{}, nil
			})
			exec.Resume(child)
		}
		wg.Wait(ctx)
		return n.Load(), nil
	})

	v, err := Sync(parent)
	r.NoError(err)
	r.EqualValues(20, v)
}

func TestWaitGroupReturnsImmediatelyAtZero(t *testing.T) {
	r := require.New(t)

	var wg WaitGroup
	task := New(context.Background(), func(ctx context.Context, _ *Task[struct{}]) (struct{}, error) {
		wg.Wait(ctx)
		return struct{}{}, nil
	})

	_, err := Sync(task)
	r.NoError(err)
}

func TestWaitGroupPanicsOnNegativeCounter(t *testing.T) {
	r := require.New(t)

	var wg WaitGroup
	r.Panics(func() { wg.Done() })
}
