package vision

import (
	"fmt"
	"image"
)

// Offset is an integer translation of the live image relative to a reference.
type Offset struct {
	Dx, Dy int
}

// AlignResult carries the best offset found by Align together with the live
// and reference crops trimmed to their common overlap (identical dimensions,
// zero-based bounds) and the dissimilarity score at that offset.
type AlignResult struct {
	Offset Offset
	// Score is the mean absolute intensity difference over the overlap.
	// Normalizing by overlap size keeps offsets with different overlap
	// areas comparable.
	Score float64
	Live  *image.Gray
	Ref   *image.Gray
}

// Align searches all integer offsets |dx|,|dy| <= window for the translation
// of live relative to ref that minimizes the mean absolute intensity
// difference over the overlapping region. Ties are broken deterministically:
// smallest |dx|+|dy|, then smallest dx, then smallest dy.
//
// If the overlap remaining after the maximum shift would cover less than
// minOverlap of the original area the search fails with ErrAlignmentFailed;
// the caller treats that as a test failure, not a crash. Both images must
// share dimensions.
func Align(live, ref *image.Gray, window int, minOverlap float64) (AlignResult, error) {
	lw, lh := live.Bounds().Dx(), live.Bounds().Dy()
	rw, rh := ref.Bounds().Dx(), ref.Bounds().Dy()
	if lw != rw || lh != rh {
		return AlignResult{}, fmt.Errorf("%w: dimension mismatch %dx%d vs %dx%d", ErrAlignmentFailed, lw, lh, rw, rh)
	}
	if lw == 0 || lh == 0 {
		return AlignResult{}, fmt.Errorf("%w: empty image", ErrAlignmentFailed)
	}
	if window < 0 {
		window = 0
	}
	// The worst-case overlap occurs at the diagonal extreme of the search
	// window; if even that would be too small the images are not viable
	// for bounded-offset registration at all.
	worst := (lw - window) * (lh - window)
	if lw <= window || lh <= window || float64(worst) < minOverlap*float64(lw*lh) {
		return AlignResult{}, fmt.Errorf("%w: %dx%d leaves %d overlap pixels at window %d, below %.0f%% of area",
			ErrAlignmentFailed, lw, lh, maxInt(worst, 0), window, minOverlap*100)
	}

	lb, rb := live.Bounds(), ref.Bounds()
	found := false
	var best Offset
	bestScore := 0.0
	for dy := -window; dy <= window; dy++ {
		for dx := -window; dx <= window; dx++ {
			// Overlap in reference coordinates: ref[x,y] pairs with
			// live[x+dx, y+dy].
			x0, x1 := maxInt(0, -dx), minInt(lw, lw-dx)
			y0, y1 := maxInt(0, -dy), minInt(lh, lh-dy)
			ow, oh := x1-x0, y1-y0
			if ow <= 0 || oh <= 0 {
				continue
			}
			var sum uint64
			for y := y0; y < y1; y++ {
				ri := ref.PixOffset(rb.Min.X+x0, rb.Min.Y+y)
				li := live.PixOffset(lb.Min.X+x0+dx, lb.Min.Y+y+dy)
				for x := 0; x < ow; x++ {
					d := int(ref.Pix[ri+x]) - int(live.Pix[li+x])
					if d < 0 {
						d = -d
					}
					sum += uint64(d)
				}
			}
			score := float64(sum) / float64(ow*oh)
			off := Offset{Dx: dx, Dy: dy}
			if !found || betterOffset(score, off, bestScore, best) {
				found = true
				best, bestScore = off, score
			}
		}
	}
	if !found {
		return AlignResult{}, fmt.Errorf("%w: no viable offset in window %d", ErrAlignmentFailed, window)
	}

	x0, x1 := maxInt(0, -best.Dx), minInt(lw, lw-best.Dx)
	y0, y1 := maxInt(0, -best.Dy), minInt(lh, lh-best.Dy)
	res := AlignResult{
		Offset: best,
		Score:  bestScore,
		Ref:    cropGray(ref, x0, y0, x1, y1),
		Live:   cropGray(live, x0+best.Dx, y0+best.Dy, x1+best.Dx, y1+best.Dy),
	}
	return res, nil
}

// betterOffset reports whether (score, off) is preferable over the current
// best under the deterministic tie-break ordering.
func betterOffset(score float64, off Offset, bestScore float64, best Offset) bool {
	if score != bestScore {
		return score < bestScore
	}
	m, bm := absInt(off.Dx)+absInt(off.Dy), absInt(best.Dx)+absInt(best.Dy)
	if m != bm {
		return m < bm
	}
	if off.Dx != best.Dx {
		return off.Dx < best.Dx
	}
	return off.Dy < best.Dy
}

// cropGray copies the [x0,x1)x[y0,y1) region (image-local coordinates) into
// a fresh zero-based grayscale image.
func cropGray(src *image.Gray, x0, y0, x1, y1 int) *image.Gray {
	b := src.Bounds()
	w, h := x1-x0, y1-y0
	out := image.NewGray(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		si := src.PixOffset(b.Min.X+x0, b.Min.Y+y0+y)
		copy(out.Pix[y*out.Stride:y*out.Stride+w], src.Pix[si:si+w])
	}
	return out
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}

func absInt(a int) int {
	if a < 0 {
		return -a
	}
	return a
}
