//go:build darwin

package coro

import (
	"fmt"

	"golang.org/x/sys/unix"
)

// darwinPoller implements platform with kqueue. EV_ONESHOT gives the
// one-shot registration semantics Reactor.Poll needs, the kqueue
// counterpart of EPOLLONESHOT on the Linux side.
type darwinPoller struct {
	kq int
}

func newPlatform() (platform, error) {
	kq, err := unix.Kqueue()
	if err != nil {
		return nil, fmt.Errorf("coro: kqueue: %w", err)
	}
	unix.CloseOnExec(kq)
	return &darwinPoller{kq: kq}, nil
}

func (p *darwinPoller) addPersistent(fd int) error {
	ev := unix.Kevent_t{
		Ident:  uint64(fd),
		Filter: unix.EVFILT_READ,
		Flags:  unix.EV_ADD | unix.EV_ENABLE,
	}
	_, err := unix.Kevent(p.kq, []unix.Kevent_t{ev}, nil, nil)
	return err
}

func (p *darwinPoller) addOneshot(fd int, pt PollType) error {
	var evs []unix.Kevent_t
	add := func(filter int16) {
		evs = append(evs, unix.Kevent_t{
			Ident:  uint64(fd),
			Filter: filter,
			Flags:  unix.EV_ADD | unix.EV_ENABLE | unix.EV_ONESHOT,
		})
	}
	switch pt {
	case PollRead:
		add(unix.EVFILT_READ)
	case PollWrite:
		add(unix.EVFILT_WRITE)
	case PollReadWrite:
		add(unix.EVFILT_READ)
		add(unix.EVFILT_WRITE)
	}
	_, err := unix.Kevent(p.kq, evs, nil, nil)
	return err
}

func (p *darwinPoller) removeFD(fd int) {
	for _, filter := range [...]int16{unix.EVFILT_READ, unix.EVFILT_WRITE} {
		ev := unix.Kevent_t{Ident: uint64(fd), Filter: filter, Flags: unix.EV_DELETE}
		_, _ = unix.Kevent(p.kq, []unix.Kevent_t{ev}, nil, nil)
	}
}

func (p *darwinPoller) wait() ([]platformEvent, error) {
	var raw [16]unix.Kevent_t
	n, err := unix.Kevent(p.kq, nil, raw[:], nil)
	if err != nil {
		if err == unix.EINTR {
			return nil, nil
		}
		return nil, fmt.Errorf("coro: kevent: %w", err)
	}

	out := make([]platformEvent, 0, n)
	for i := 0; i < n; i++ {
		out = append(out, platformEvent{
			fd:     int(raw[i].Ident),
			status: kqueueStatus(raw[i].Flags),
		})
	}
	return out, nil
}

func kqueueStatus(flags uint16) PollStatus {
	switch {
	case flags&unix.EV_EOF != 0:
		return EventClosed
	case flags&unix.EV_ERROR != 0:
		return EventError
	default:
		return EventReady
	}
}

func (p *darwinPoller) close() error {
	return unix.Close(p.kq)
}
