//go:build linux

package coro

import (
	"fmt"

	"golang.org/x/sys/unix"
)

// linuxPoller implements platform with epoll. fds are tracked by plain
// integer identity, since Go's unix.EpollEvent has no free-form
// data.ptr union member to stash a pointer in, and oneshot
// registrations use EPOLLONESHOT|EPOLLRDHUP.
type linuxPoller struct {
	epfd int
}

func newPlatform() (platform, error) {
	fd, err := unix.EpollCreate1(unix.EPOLL_CLOEXEC)
	if err != nil {
		return nil, fmt.Errorf("coro: epoll_create1: %w", err)
	}
	return &linuxPoller{epfd: fd}, nil
}

func (p *linuxPoller) addPersistent(fd int) error {
	ev := unix.EpollEvent{Events: unix.EPOLLIN, Fd: int32(fd)}
	return unix.EpollCtl(p.epfd, unix.EPOLL_CTL_ADD, fd, &ev)
}

func (p *linuxPoller) addOneshot(fd int, pt PollType) error {
	events := uint32(unix.EPOLLONESHOT | unix.EPOLLRDHUP)
	switch pt {
	case PollRead:
		events |= unix.EPOLLIN
	case PollWrite:
		events |= unix.EPOLLOUT
	case PollReadWrite:
		events |= unix.EPOLLIN | unix.EPOLLOUT
	}
	ev := unix.EpollEvent{Events: events, Fd: int32(fd)}
	return unix.EpollCtl(p.epfd, unix.EPOLL_CTL_ADD, fd, &ev)
}

func (p *linuxPoller) removeFD(fd int) {
	_ = unix.EpollCtl(p.epfd, unix.EPOLL_CTL_DEL, fd, nil)
}

func (p *linuxPoller) wait() ([]platformEvent, error) {
	var raw [16]unix.EpollEvent
	n, err := unix.EpollWait(p.epfd, raw[:], -1)
	if err != nil {
		if err == unix.EINTR {
			return nil, nil
		}
		return nil, fmt.Errorf("coro: epoll_wait: %w", err)
	}

	out := make([]platformEvent, 0, n)
	for i := 0; i < n; i++ {
		out = append(out, platformEvent{
			fd:     int(raw[i].Fd),
			status: epollStatus(raw[i].Events),
		})
	}
	return out, nil
}

func epollStatus(events uint32) PollStatus {
	switch {
	case events&unix.EPOLLRDHUP != 0:
		return EventClosed
	case events&unix.EPOLLERR != 0:
		return EventError
	default:
		return EventReady
	}
}

func (p *linuxPoller) close() error {
	return unix.Close(p.epfd)
}
