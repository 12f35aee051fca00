package capture

import (
	"image"
	"sync"
)

// Lightweight reusable frame pool to reduce long-lived heap churn caused by
// repeated allocation of large RGBA backing slices. The underlying grabbers
// still return freshly allocated images; consumers that copy frames for
// processing can do so through pooled buffers and recycle them afterwards.
// If consumers never recycle, the behavior degrades gracefully to plain
// per-frame allocation.

var framePool sync.Pool // stores *image.RGBA

// acquireFrame returns a reusable RGBA image sized to rect. The returned Pix
// length exactly matches rect area * 4, and Stride is width*4.
func acquireFrame(rect image.Rectangle) *image.RGBA {
	w, h := rect.Dx(), rect.Dy()
	if w <= 0 || h <= 0 {
		return &image.RGBA{Rect: rect}
	}
	needed := w * h * 4
	var img *image.RGBA
	if v := framePool.Get(); v != nil {
		img = v.(*image.RGBA)
	}
	if img == nil || cap(img.Pix) < needed {
		img = &image.RGBA{Pix: make([]byte, needed), Stride: w * 4, Rect: rect}
	} else {
		img.Stride = w * 4
		img.Rect = rect
		img.Pix = img.Pix[:needed]
	}
	return img
}

// CopyFrame duplicates src into a pooled buffer. The copy is safe to hold
// while the capture loop overwrites its own slot, and should be returned via
// RecycleFrame once processed.
func CopyFrame(src *image.RGBA) *image.RGBA {
	if src == nil {
		return nil
	}
	dst := acquireFrame(src.Rect)
	if len(dst.Pix) == len(src.Pix) && dst.Stride == src.Stride {
		copy(dst.Pix, src.Pix)
		return dst
	}
	// Stride mismatch (sub-image source): copy row by row.
	w := src.Rect.Dx()
	for y := 0; y < src.Rect.Dy(); y++ {
		so := y * src.Stride
		do := y * dst.Stride
		copy(dst.Pix[do:do+w*4], src.Pix[so:so+w*4])
	}
	return dst
}

// RecycleFrame returns the frame to the pool for potential reuse. The frame
// must no longer be accessed by the caller after invoking RecycleFrame.
func RecycleFrame(img *image.RGBA) {
	if img == nil {
		return
	}
	if img.Pix == nil {
		return
	}
	framePool.Put(img)
}
