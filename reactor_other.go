//go:build !linux && !darwin

package coro

import "errors"

func newPlatform() (platform, error) {
	return nil, errors.New("coro: reactor is only implemented for linux and darwin")
}
