package vision

import (
	"errors"
	"image"
	"testing"
)

// shiftedCrop cuts two same-sized views out of a larger scene so that live
// equals ref translated by (dx, dy).
func shiftedCrop(scene *image.Gray, x, y, w, h, dx, dy int) (ref, live *image.Gray) {
	ref = cropGray(scene, x, y, x+w, y+h)
	live = cropGray(scene, x-dx, y-dy, x-dx+w, y-dy+h)
	return ref, live
}

func TestAlignRecoversKnownShift(t *testing.T) {
	scene := synthGray(140, 140, texture)
	cases := []struct{ dx, dy int }{
		{0, 0}, {1, 0}, {0, 1}, {-1, 0}, {0, -1},
		{3, -2}, {-4, 4}, {5, 5}, {-5, -5},
	}
	for _, tc := range cases {
		ref, live := shiftedCrop(scene, 20, 20, 100, 100, tc.dx, tc.dy)
		res, err := Align(live, ref, 5, 0.5)
		if err != nil {
			t.Fatalf("(%d,%d): %v", tc.dx, tc.dy, err)
		}
		if res.Offset.Dx != tc.dx || res.Offset.Dy != tc.dy {
			t.Fatalf("(%d,%d): recovered (%d,%d)", tc.dx, tc.dy, res.Offset.Dx, res.Offset.Dy)
		}
		if res.Score != 0 {
			t.Fatalf("(%d,%d): expected zero dissimilarity on overlap, got %f", tc.dx, tc.dy, res.Score)
		}
		if res.Live.Bounds() != res.Ref.Bounds() {
			t.Fatalf("overlap crops differ: %v vs %v", res.Live.Bounds(), res.Ref.Bounds())
		}
	}
}

func TestAlignTieBreakPrefersZeroOffset(t *testing.T) {
	// Every offset scores zero on a flat field; the deterministic ordering
	// must settle on (0, 0).
	flat := synthGray(60, 60, func(x, y int) uint8 { return 90 })
	res, err := Align(flat, flat, 5, 0.5)
	if err != nil {
		t.Fatalf("align: %v", err)
	}
	if res.Offset != (Offset{}) {
		t.Fatalf("expected (0,0), got (%d,%d)", res.Offset.Dx, res.Offset.Dy)
	}
	if res.Live.Bounds().Dx() != 60 || res.Live.Bounds().Dy() != 60 {
		t.Fatalf("expected full overlap, got %v", res.Live.Bounds())
	}
}

func TestAlignOverlapTrimming(t *testing.T) {
	scene := synthGray(140, 140, texture)
	ref, live := shiftedCrop(scene, 20, 20, 100, 100, 4, -3)
	res, err := Align(live, ref, 5, 0.5)
	if err != nil {
		t.Fatalf("align: %v", err)
	}
	if got, want := res.Ref.Bounds().Dx(), 96; got != want {
		t.Fatalf("overlap width %d, want %d", got, want)
	}
	if got, want := res.Ref.Bounds().Dy(), 97; got != want {
		t.Fatalf("overlap height %d, want %d", got, want)
	}
}

func TestAlignFailsOnTinyImages(t *testing.T) {
	// A 6x6 image keeps only 1 of 36 pixels in overlap at the extreme of a
	// +/-5 window, far below the 50% viability floor.
	small := synthGray(6, 6, texture)
	_, err := Align(small, small, 5, 0.5)
	if !errors.Is(err, ErrAlignmentFailed) {
		t.Fatalf("expected ErrAlignmentFailed, got %v", err)
	}
	// A comfortably larger image passes the same guard.
	big := synthGray(40, 40, texture)
	if _, err := Align(big, big, 5, 0.5); err != nil {
		t.Fatalf("unexpected failure for 40x40: %v", err)
	}
}

func TestAlignRejectsDimensionMismatch(t *testing.T) {
	a := synthGray(10, 10, texture)
	b := synthGray(12, 10, texture)
	if _, err := Align(a, b, 5, 0.5); !errors.Is(err, ErrAlignmentFailed) {
		t.Fatalf("expected ErrAlignmentFailed for mismatched dimensions")
	}
}
