// Package coro implements a small asynchronous runtime built on
// stackless-coroutine-shaped primitives: a lazy, one-shot Task with a
// typed result and exception propagation, a lazy Generator, executors
// that own worker goroutines, and a readiness-based I/O reactor that
// bridges epoll (Linux) / kqueue (Darwin) into task resumption.
//
// Go has no compiler-level coroutines, so the runtime is built on top
// of github.com/webriots/coro, which gives a goroutine-backed
// suspend/resume/cancel triad through a synchronous channel rendezvous.
// Every suspension point in this package (Event.Wait, Latch.Wait,
// Reactor.Poll, Reactor.Schedule, a task-aware Mutex or WaitGroup) is
// ordinary Go code that calls Suspend on the task found in context;
// the resuming side is whichever goroutine later calls Resume, which
// is what gives this runtime its "symmetric transfer" property: a
// continuation runs on the resuming thread, not on some separate
// driver loop.
//
// Key components:
//
//   - Task[T]: the core unit of asynchronous work. Created suspended,
//     runs once, produces a value or an error.
//
//   - Generator[T]: a lazy, non-restartable sequence produced by a
//     coroutine that yields values one at a time.
//
//   - Event, Latch: composition primitives for fanning coroutines out
//     and back in.
//
//   - Executor (SingleThreadExecutor, MultiThreadExecutor): owns
//     worker goroutines and drives resumption of ready tasks.
//
//   - Reactor: multiplexes kernel readiness events and hands
//     resumable tasks to an Executor.
//
//   - Mutex, WaitGroup, SingleFlight, ErrGroup: task-aware
//     synchronization that parks and resumes Tasks (Mutex and
//     WaitGroup keep their waiters in a deque; SingleFlight and
//     ErrGroup wait through WaitGroup) instead of blocking goroutines,
//     so they compose with the rest of this package.
package coro
