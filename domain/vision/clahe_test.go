package vision

import (
	"bytes"
	"image"
	"testing"
)

func TestPreprocessDeterministic(t *testing.T) {
	crop := synthGray(64, 48, texture)
	a, err := Preprocess(crop, 8, 2.0)
	if err != nil {
		t.Fatalf("preprocess: %v", err)
	}
	b, err := Preprocess(crop, 8, 2.0)
	if err != nil {
		t.Fatalf("preprocess: %v", err)
	}
	if !bytes.Equal(a.Pix, b.Pix) {
		t.Fatalf("same input produced different outputs")
	}
}

func TestPreprocessPreservesDimensions(t *testing.T) {
	for _, dims := range [][2]int{{100, 100}, {33, 17}, {8, 8}, {3, 200}} {
		crop := synthGray(dims[0], dims[1], texture)
		out, err := Preprocess(crop, 8, 2.0)
		if err != nil {
			t.Fatalf("%dx%d: %v", dims[0], dims[1], err)
		}
		if out.Bounds().Dx() != dims[0] || out.Bounds().Dy() != dims[1] {
			t.Fatalf("dimensions changed: in %dx%d out %v", dims[0], dims[1], out.Bounds())
		}
	}
}

func TestPreprocessUniformInputStaysUniformish(t *testing.T) {
	// A flat field must stay flat apart from per-tile rounding; anything
	// beyond a couple of intensity levels would mean the equalization
	// invents structure that the decision stage could misread as change.
	// The small sizes are ones where the tile grid does not divide the
	// image evenly, so edge tiles are smaller than interior ones.
	for _, side := range []int{12, 17, 23, 100} {
		crop := synthRGBA(side, side, 128, nil)
		out, err := Preprocess(crop, 8, 2.0)
		if err != nil {
			t.Fatalf("%dx%d: %v", side, side, err)
		}
		lo, hi := out.Pix[0], out.Pix[0]
		for _, v := range out.Pix {
			if v < lo {
				lo = v
			}
			if v > hi {
				hi = v
			}
		}
		if int(hi)-int(lo) > 2 {
			t.Fatalf("%dx%d flat field produced spread [%d, %d]", side, side, lo, hi)
		}
	}
}

func TestPreprocessRejectsEmptyCrop(t *testing.T) {
	if _, err := Preprocess(nil, 8, 2.0); err == nil {
		t.Fatalf("expected error for nil crop")
	}
	empty := image.NewGray(image.Rect(0, 0, 0, 10))
	if _, err := Preprocess(empty, 8, 2.0); err == nil {
		t.Fatalf("expected error for zero-width crop")
	}
}

func TestEqualizeImprovesLocalContrast(t *testing.T) {
	// Low-contrast ramp confined to a narrow band should spread out.
	crop := synthGray(64, 64, func(x, y int) uint8 { return uint8(100 + (x+y)%8) })
	out := Equalize(crop, 8, 4.0)
	lo, hi := out.Pix[0], out.Pix[0]
	for _, v := range out.Pix {
		if v < lo {
			lo = v
		}
		if v > hi {
			hi = v
		}
	}
	if int(hi)-int(lo) <= 7 {
		t.Fatalf("expected stretched range, got [%d, %d]", lo, hi)
	}
}

func TestCropROIBounds(t *testing.T) {
	frame := synthRGBA(100, 80, 50, nil)
	if _, err := CropROI(frame, image.Rect(10, 10, 10, 30)); err == nil {
		t.Fatalf("expected error for zero-width ROI")
	}
	if _, err := CropROI(frame, image.Rect(90, 70, 110, 90)); err == nil {
		t.Fatalf("expected error for out-of-bounds ROI")
	}
	crop, err := CropROI(frame, image.Rect(10, 10, 40, 30))
	if err != nil {
		t.Fatalf("crop: %v", err)
	}
	if crop.Bounds().Dx() != 30 || crop.Bounds().Dy() != 20 {
		t.Fatalf("unexpected crop size %v", crop.Bounds())
	}
}
