//go:build darwin

package coro

import (
	"fmt"
	"syscall"

	"golang.org/x/sys/unix"
)

// pipeEventFD is a non-blocking self-pipe standing in for eventfd,
// which macOS doesn't have.
type pipeEventFD struct {
	r, w int
}

func newWakeFD() (wakeFD, error) {
	var fds [2]int
	if err := syscall.Pipe(fds[:]); err != nil {
		return nil, fmt.Errorf("coro: pipe: %w", err)
	}
	syscall.CloseOnExec(fds[0])
	syscall.CloseOnExec(fds[1])
	if err := syscall.SetNonblock(fds[0], true); err != nil {
		syscall.Close(fds[0])
		syscall.Close(fds[1])
		return nil, fmt.Errorf("coro: set nonblock: %w", err)
	}
	if err := syscall.SetNonblock(fds[1], true); err != nil {
		syscall.Close(fds[0])
		syscall.Close(fds[1])
		return nil, fmt.Errorf("coro: set nonblock: %w", err)
	}
	return &pipeEventFD{r: fds[0], w: fds[1]}, nil
}

func (w *pipeEventFD) fd() int { return w.r }

func (w *pipeEventFD) trigger() error {
	_, err := unix.Write(w.w, []byte{1})
	if err != nil && err != unix.EAGAIN {
		return err
	}
	return nil
}

func (w *pipeEventFD) reset() error {
	var buf [64]byte
	for {
		_, err := unix.Read(w.r, buf[:])
		if err != nil {
			if err == unix.EAGAIN {
				return nil
			}
			return err
		}
	}
}

func (w *pipeEventFD) close() error {
	err1 := unix.Close(w.r)
	err2 := unix.Close(w.w)
	if err1 != nil {
		return err1
	}
	return err2
}
