package coro

// wakeFD is the wake primitive the reactor uses to unblock its own
// background poll: something it can register for read-readiness with
// the platform poller and that another goroutine can trigger to wake
// it up. newWakeFD is implemented per-OS: eventfd on Linux
// (eventfd_linux.go), a non-blocking self-pipe on Darwin
// (eventfd_darwin.go).
type wakeFD interface {
	// fd is the read end to register with the platform poller.
	fd() int
	// trigger makes fd become readable.
	trigger() error
	// reset drains fd back to non-readable after a wake.
	reset() error
	close() error
}
