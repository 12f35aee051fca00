package vision

import (
	"fmt"
	"image"
	"math"
)

// Equalize applies contrast-limited adaptive histogram equalization to a
// grayscale image. The image is partitioned into a grid x grid tile layout;
// each tile's histogram is clipped at clipLimit (relative to a flat
// distribution) and equalized, and per-pixel values are produced by bilinear
// interpolation between the four surrounding tile transfer functions.
// Deterministic: no temporal state, no randomness.
func Equalize(src *image.Gray, grid int, clipLimit float64) *image.Gray {
	b := src.Bounds()
	w, h := b.Dx(), b.Dy()
	out := image.NewGray(image.Rect(0, 0, w, h))
	if w == 0 || h == 0 {
		return out
	}
	if grid < 1 {
		grid = 1
	}
	gx, gy := grid, grid
	if gx > w {
		gx = w
	}
	if gy > h {
		gy = h
	}

	// Tile boundaries split each dimension evenly, so tiles differ by at
	// most one pixel in size and none is ever empty.
	luts := make([][256]uint8, gx*gy)
	for ty := 0; ty < gy; ty++ {
		y0, y1 := ty*h/gy, (ty+1)*h/gy
		for tx := 0; tx < gx; tx++ {
			x0, x1 := tx*w/gx, (tx+1)*w/gx
			luts[ty*gx+tx] = tileLUT(src, b, x0, y0, x1, y1, clipLimit)
		}
	}

	for y := 0; y < h; y++ {
		fy := (float64(y)+0.5)*float64(gy)/float64(h) - 0.5
		ty0 := int(math.Floor(fy))
		wy := fy - float64(ty0)
		ty1 := ty0 + 1
		if ty0 < 0 {
			ty0, ty1, wy = 0, 0, 0
		}
		if ty1 > gy-1 {
			ty1 = gy - 1
			if ty0 > ty1 {
				ty0 = ty1
			}
		}
		di := y * out.Stride
		si := src.PixOffset(b.Min.X, b.Min.Y+y)
		for x := 0; x < w; x++ {
			fx := (float64(x)+0.5)*float64(gx)/float64(w) - 0.5
			tx0 := int(math.Floor(fx))
			wx := fx - float64(tx0)
			tx1 := tx0 + 1
			if tx0 < 0 {
				tx0, tx1, wx = 0, 0, 0
			}
			if tx1 > gx-1 {
				tx1 = gx - 1
				if tx0 > tx1 {
					tx0 = tx1
				}
			}
			v := src.Pix[si+x]
			v00 := float64(luts[ty0*gx+tx0][v])
			v01 := float64(luts[ty0*gx+tx1][v])
			v10 := float64(luts[ty1*gx+tx0][v])
			v11 := float64(luts[ty1*gx+tx1][v])
			top := v00*(1-wx) + v01*wx
			bottom := v10*(1-wx) + v11*wx
			out.Pix[di+x] = clampByte(top*(1-wy) + bottom*wy)
		}
	}
	return out
}

// tileLUT builds the clipped-equalization transfer function for one tile.
// Histogram mass above the clip limit is redistributed evenly over all bins,
// which bounds noise amplification in flat regions.
func tileLUT(src *image.Gray, b image.Rectangle, x0, y0, x1, y1 int, clipLimit float64) [256]uint8 {
	var hist [256]float64
	area := float64((x1 - x0) * (y1 - y0))
	for y := y0; y < y1; y++ {
		si := src.PixOffset(b.Min.X+x0, b.Min.Y+y)
		for x := x0; x < x1; x++ {
			hist[src.Pix[si]]++
			si++
		}
	}
	limit := clipLimit * area / 256
	var excess float64
	for i := range hist {
		if hist[i] > limit {
			excess += hist[i] - limit
			hist[i] = limit
		}
	}
	incr := excess / 256

	var lut [256]uint8
	var cdf float64
	scale := 255.0 / area
	for i := 0; i < 256; i++ {
		cdf += hist[i] + incr
		lut[i] = clampByte(cdf * scale)
	}
	return lut
}

// Preprocess converts an ROI crop to the normalized grayscale representation
// used for both reference and live frames: grayscale conversion followed by
// Equalize. Output dimensions equal the crop dimensions.
func Preprocess(crop image.Image, grid int, clipLimit float64) (*image.Gray, error) {
	if crop == nil {
		return nil, fmt.Errorf("%w: nil crop", ErrInvalidROI)
	}
	cb := crop.Bounds()
	if cb.Dx() <= 0 || cb.Dy() <= 0 {
		return nil, fmt.Errorf("%w: empty crop %v", ErrInvalidROI, cb)
	}
	return Equalize(ToGray(crop), grid, clipLimit), nil
}

// PreprocessROI crops frame to roi and preprocesses the crop.
func PreprocessROI(frame image.Image, roi image.Rectangle, grid int, clipLimit float64) (*image.Gray, error) {
	crop, err := CropROI(frame, roi)
	if err != nil {
		return nil, err
	}
	return Preprocess(crop, grid, clipLimit)
}

func minInt(a, b int) int {
	if a < b {
		return a
	}
	return b
}
