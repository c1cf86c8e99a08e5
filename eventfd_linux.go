//go:build linux

package coro

import (
	"encoding/binary"
	"fmt"

	"golang.org/x/sys/unix"
)

// unixEventFD wraps a Linux eventfd.
type unixEventFD struct {
	efd int
}

func newWakeFD() (wakeFD, error) {
	fd, err := unix.Eventfd(0, unix.EFD_NONBLOCK|unix.EFD_CLOEXEC)
	if err != nil {
		return nil, fmt.Errorf("coro: eventfd: %w", err)
	}
	return &unixEventFD{efd: fd}, nil
}

func (w *unixEventFD) fd() int { return w.efd }

func (w *unixEventFD) trigger() error {
	var buf [8]byte
	binary.LittleEndian.PutUint64(buf[:], 1)
	_, err := unix.Write(w.efd, buf[:])
	if err != nil && err != unix.EAGAIN {
		return err
	}
	return nil
}

func (w *unixEventFD) reset() error {
	var buf [8]byte
	for {
		_, err := unix.Read(w.efd, buf[:])
		if err != nil {
			if err == unix.EAGAIN {
				return nil
			}
			return err
		}
	}
}

func (w *unixEventFD) close() error {
	return unix.Close(w.efd)
}
