package vision

import (
	"context"
	"image"
	"time"
)

// synthGray creates a w x h grayscale image filled by fill(x, y).
func synthGray(w, h int, fill func(x, y int) uint8) *image.Gray {
	img := image.NewGray(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.Pix[y*img.Stride+x] = fill(x, y)
		}
	}
	return img
}

// synthRGBA creates a uniform RGBA image and applies an optional mutate func.
func synthRGBA(w, h int, base uint8, mutate func(img *image.RGBA)) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			i := img.PixOffset(x, y)
			img.Pix[i], img.Pix[i+1], img.Pix[i+2], img.Pix[i+3] = base, base, base, 255
		}
	}
	if mutate != nil {
		mutate(img)
	}
	return img
}

// setBlock sets RGB values to lum inside [x0,x1)x[y0,y1).
func setBlock(img *image.RGBA, x0, y0, x1, y1 int, lum uint8) {
	for y := y0; y < y1; y++ {
		for x := x0; x < x1; x++ {
			i := img.PixOffset(x, y)
			img.Pix[i], img.Pix[i+1], img.Pix[i+2] = lum, lum, lum
		}
	}
}

// frameSourceFunc adapts a func to the FrameSource interface.
type frameSourceFunc func() (image.Image, bool)

func (f frameSourceFunc) Frame() (image.Image, bool) { return f() }

// fakeClock records requested sleep durations without waiting.
type fakeClock struct {
	slept []time.Duration
	err   error
}

func (c *fakeClock) Sleep(ctx context.Context, d time.Duration) error {
	if c.err != nil {
		return c.err
	}
	c.slept = append(c.slept, d)
	return ctx.Err()
}

// texture is a deterministic pseudo-random fill used where alignment must
// lock onto structure. A hash mix keeps every shifted view distinct, unlike
// a linear gradient whose shifted copies can coincide, and the 60..187 range
// leaves headroom for additive perturbations.
func texture(x, y int) uint8 {
	h := uint32(x)*2654435761 ^ uint32(y)*40503
	h ^= h >> 13
	h *= 2246822519
	h ^= h >> 16
	return uint8(h%128 + 60)
}
