package vision

import (
	"fmt"
	"image"
)

// ToGray converts an image to 8-bit grayscale using Rec.709 luma weights.
// A *image.Gray input is copied, never aliased.
func ToGray(src image.Image) *image.Gray {
	b := src.Bounds()
	w, h := b.Dx(), b.Dy()
	out := image.NewGray(image.Rect(0, 0, w, h))
	switch img := src.(type) {
	case *image.Gray:
		for y := 0; y < h; y++ {
			si := img.PixOffset(b.Min.X, b.Min.Y+y)
			copy(out.Pix[y*out.Stride:y*out.Stride+w], img.Pix[si:si+w])
		}
	case *image.RGBA:
		for y := 0; y < h; y++ {
			si := img.PixOffset(b.Min.X, b.Min.Y+y)
			di := y * out.Stride
			for x := 0; x < w; x++ {
				r := float64(img.Pix[si])
				g := float64(img.Pix[si+1])
				bl := float64(img.Pix[si+2])
				out.Pix[di+x] = clampByte(0.2126*r + 0.7152*g + 0.0722*bl)
				si += 4
			}
		}
	default:
		for y := 0; y < h; y++ {
			di := y * out.Stride
			for x := 0; x < w; x++ {
				r, g, bl, _ := src.At(b.Min.X+x, b.Min.Y+y).RGBA()
				lum := 0.2126*float64(r) + 0.7152*float64(g) + 0.0722*float64(bl)
				out.Pix[di+x] = clampByte(lum / 257.0)
			}
		}
	}
	return out
}

func clampByte(v float64) uint8 {
	if v <= 0 {
		return 0
	}
	if v >= 255 {
		return 255
	}
	return uint8(v + 0.5)
}

// CropROI returns the subregion of frame described by roi. The rectangle is
// interpreted in frame coordinates and must lie fully inside the frame
// bounds with positive width and height; otherwise ErrInvalidROI.
func CropROI(frame image.Image, roi image.Rectangle) (image.Image, error) {
	if frame == nil {
		return nil, fmt.Errorf("%w: nil frame", ErrInvalidROI)
	}
	if roi.Dx() <= 0 || roi.Dy() <= 0 {
		return nil, fmt.Errorf("%w: empty rectangle %v", ErrInvalidROI, roi)
	}
	b := frame.Bounds()
	if !roi.In(b) {
		return nil, fmt.Errorf("%w: %v exceeds frame bounds %v", ErrInvalidROI, roi, b)
	}
	type subImager interface {
		SubImage(image.Rectangle) image.Image
	}
	if s, ok := frame.(subImager); ok {
		return s.SubImage(roi), nil
	}
	out := image.NewRGBA(image.Rect(0, 0, roi.Dx(), roi.Dy()))
	for y := 0; y < roi.Dy(); y++ {
		for x := 0; x < roi.Dx(); x++ {
			out.Set(x, y, frame.At(roi.Min.X+x, roi.Min.Y+y))
		}
	}
	return out, nil
}
