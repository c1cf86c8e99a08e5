//go:build !linux && !darwin

package coro

import "errors"

func newWakeFD() (wakeFD, error) {
	return nil, errors.New("coro: wake fd is only implemented for linux and darwin")
}
