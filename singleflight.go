package coro

import (
	"context"
	"sync"
)

// singleFlightCall is an in-flight call shared among duplicate
// requesters for the same key.
type singleFlightCall struct {
	wg   WaitGroup
	val  any
	err  error
	dups int
}

// SingleFlight deduplicates concurrent calls that share a key, so that
// only one of them actually runs fn while the rest wait for its
// result, using this package's own WaitGroup as the wait mechanism.
type SingleFlight struct {
	mu sync.Mutex
	m  map[any]*singleFlightCall
}

// Do runs fn for key if no call for that key is already in flight,
// otherwise waits for the in-flight call and returns its result. The
// third return value reports whether the result was shared with at
// least one duplicate caller.
func (g *SingleFlight) Do(ctx context.Context, key any, fn func() (any, error)) (v any, err error, shared bool) {
	g.mu.Lock()
	if g.m == nil {
		g.m = make(map[any]*singleFlightCall)
	}

	if c, ok := g.m[key]; ok {
		c.dups++
		g.mu.Unlock()
		c.wg.Wait(ctx)
		return c.val, c.err, true
	}

	c := &singleFlightCall{}
	c.wg.Add(1)
	g.m[key] = c
	g.mu.Unlock()

	g.doCall(c, key, fn)
	return c.val, c.err, c.dups > 0
}

func (g *SingleFlight) doCall(c *singleFlightCall, key any, fn func() (any, error)) {
	defer func() {
		c.wg.Done()
		g.mu.Lock()
		if g.m[key] == c {
			delete(g.m, key)
		}
		g.mu.Unlock()
	}()

	c.val, c.err = fn()
}
