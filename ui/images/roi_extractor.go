package images

import (
	"errors"
	"image"
	"image/draw"
)

// ExtractROI copies the region rect out of frame. The rectangle is clamped to
// the frame bounds and must still contain at least one pixel after clamping.
// The returned image is a standalone copy with zero-based bounds, plus the
// clamped rectangle relative to the frame.
func ExtractROI(frame *image.RGBA, rect image.Rectangle) (*image.RGBA, image.Rectangle, error) {
	if frame == nil {
		return nil, image.Rectangle{}, errors.New("nil frame")
	}
	clamped := rect.Intersect(frame.Bounds())
	if clamped.Dx() < 1 || clamped.Dy() < 1 {
		return nil, image.Rectangle{}, errors.New("region outside frame")
	}
	out := image.NewRGBA(image.Rect(0, 0, clamped.Dx(), clamped.Dy()))
	draw.Draw(out, out.Bounds(), frame, clamped.Min, draw.Src)
	return out, clamped, nil
}
