package coro

import (
	"context"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestSingleFlightDeduplicatesConcurrentCalls(t *testing.T) {
	r := require.New(t)

	exec := NewMultiThreadExecutor(8)
	defer exec.Shutdown()

	ctx := context.Background()
	var sf SingleFlight
	var calls atomic.Int32
	var shared atomic.Int32

	parent := New(ctx, func(ctx context.Context, _ *Task[int32]) (int32, error) {
		var wg WaitGroup
		for i := 0; i < 10; i++ {
			wg.Add(1)
			child := New(ctx, func(ctx context.Context, _ *Task[struct{}]) (struct{}, error) {
				defer wg.Done()
				v, err, wasShared := sf.Do(ctx, "key", func() (any, error) {
					calls.Add(1)
					return 42, nil
				})
				r.NoError(err)
				r.Equal(42, v)
				if wasShared {
					shared.Add(1)
				}
				return struct{}{}, nil
			})
			exec.Resume(child)
		}
		wg.Wait(ctx)
		return calls.Load(), nil
	})

	v, err := Sync(parent)
	r.NoError(err)
	r.EqualValues(1, v)
	r.Greater(shared.Load(), int32(0))
}

func TestSingleFlightDistinctKeysRunIndependently(t *testing.T) {
	r := require.New(t)

	var sf SingleFlight
	ctx := context.Background()

	task := New(ctx, func(ctx context.Context, _ *Task[int]) (int, error) {
		calls := 0
		for _, key := range []string{"a", "b", "a"} {
			_, _, _ = sf.Do(ctx, key, func() (any, error) {
				calls++
				return nil, nil
			})
		}
		return calls, nil
	})

	v, err := Sync(task)
	r.NoError(err)
	r.Equal(2, v)
}
