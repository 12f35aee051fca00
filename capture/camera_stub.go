//go:build !gocv
// +build !gocv

package capture

import (
	"errors"
	"image"
)

// Camera is a stub used when the gocv build tag is not enabled.
type Camera struct{}

// OpenCamera reports that camera support is not compiled in.
func OpenCamera(device int) (*Camera, error) {
	_ = device
	return nil, errors.New("gocv build tag is not enabled")
}

// Grab always fails on the stub.
func (c *Camera) Grab(sel *image.Rectangle) (*image.RGBA, error) {
	_ = sel
	return nil, errors.New("gocv build tag is not enabled")
}

// Close is a no-op on the stub.
func (c *Camera) Close() error { return nil }
