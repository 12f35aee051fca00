//go:build gocv
// +build gocv

package capture

import (
	"errors"
	"fmt"
	"image"
	"image/draw"
	"sync"

	"gocv.io/x/gocv"
)

// Camera wraps a gocv video device. Frames are read on demand, so callers
// that poll too slowly simply see newer frames dropped by the driver.
type Camera struct {
	mu  sync.Mutex
	dev *gocv.VideoCapture
	mat gocv.Mat
}

// OpenCamera opens the video device with the given index.
func OpenCamera(device int) (*Camera, error) {
	dev, err := gocv.OpenVideoCapture(device)
	if err != nil {
		return nil, fmt.Errorf("open camera %d: %w", device, err)
	}
	return &Camera{dev: dev, mat: gocv.NewMat()}, nil
}

// Grab reads the next frame. A non-nil selection crops the frame to that
// region; the selection must lie inside the frame bounds.
func (c *Camera) Grab(sel *image.Rectangle) (*image.RGBA, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.dev == nil {
		return nil, errors.New("camera closed")
	}
	if ok := c.dev.Read(&c.mat); !ok || c.mat.Empty() {
		return nil, errors.New("camera read failed")
	}
	img, err := c.mat.ToImage()
	if err != nil {
		return nil, fmt.Errorf("convert frame: %w", err)
	}
	rgba := toRGBA(img)
	if sel == nil || sel.Empty() {
		return rgba, nil
	}
	if !sel.In(rgba.Bounds()) {
		return nil, fmt.Errorf("selection %v outside frame %v", *sel, rgba.Bounds())
	}
	crop := image.NewRGBA(image.Rect(0, 0, sel.Dx(), sel.Dy()))
	draw.Draw(crop, crop.Bounds(), rgba, sel.Min, draw.Src)
	return crop, nil
}

// Close releases the device.
func (c *Camera) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.dev == nil {
		return nil
	}
	err := c.dev.Close()
	c.dev = nil
	c.mat.Close()
	return err
}

func toRGBA(img image.Image) *image.RGBA {
	if rgba, ok := img.(*image.RGBA); ok {
		return rgba
	}
	b := img.Bounds()
	out := image.NewRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
	draw.Draw(out, out.Bounds(), img, b.Min, draw.Src)
	return out
}
