package images

import (
	"image"
	"testing"
)

func testFrame(w, h int) *image.RGBA {
	frame := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			i := frame.PixOffset(x, y)
			frame.Pix[i] = byte(x)
			frame.Pix[i+1] = byte(y)
			frame.Pix[i+3] = 255
		}
	}
	return frame
}

func TestExtractROICopiesRegion(t *testing.T) {
	frame := testFrame(100, 80)
	roi, rect, err := ExtractROI(frame, image.Rect(10, 20, 40, 50))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if rect != image.Rect(10, 20, 40, 50) {
		t.Fatalf("unexpected rect %v", rect)
	}
	if got := roi.Bounds(); got.Dx() != 30 || got.Dy() != 30 {
		t.Fatalf("unexpected size %v", got)
	}
	// Top-left ROI pixel must correspond to frame pixel (10,20).
	if roi.Pix[0] != 10 || roi.Pix[1] != 20 {
		t.Fatalf("roi origin pixel mismatch: got (%d,%d)", roi.Pix[0], roi.Pix[1])
	}
	// Mutating the copy must not touch the frame.
	roi.Pix[0] = 200
	if frame.Pix[frame.PixOffset(10, 20)] == 200 {
		t.Fatal("ExtractROI returned an aliased image")
	}
}

func TestExtractROIClampsToBounds(t *testing.T) {
	frame := testFrame(50, 50)
	_, rect, err := ExtractROI(frame, image.Rect(40, 40, 80, 80))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if rect != image.Rect(40, 40, 50, 50) {
		t.Fatalf("expected clamped rect, got %v", rect)
	}
}

func TestExtractROIRejectsOutside(t *testing.T) {
	frame := testFrame(50, 50)
	if _, _, err := ExtractROI(frame, image.Rect(60, 60, 70, 70)); err == nil {
		t.Fatal("expected error for region outside frame")
	}
	if _, _, err := ExtractROI(nil, image.Rect(0, 0, 10, 10)); err == nil {
		t.Fatal("expected error for nil frame")
	}
}

func TestScaleToFitPreservesAspect(t *testing.T) {
	frame := testFrame(400, 200)
	scaled := ScaleToFit(frame, 100, 100)
	b := scaled.Bounds()
	if b.Dx() != 100 || b.Dy() != 50 {
		t.Fatalf("unexpected scaled size %v", b)
	}
	small := testFrame(30, 30)
	if got := ScaleToFit(small, 100, 100); got != small {
		t.Fatal("images already within bounds must be returned as-is")
	}
}

func TestHeatmapMarksChangedPixels(t *testing.T) {
	diff := image.NewGray(image.Rect(0, 0, 4, 1))
	diff.Pix = []byte{0, 25, 26, 255}
	out := Heatmap(diff, 25)
	// Below/at floor: gray, red == green.
	for _, x := range []int{0, 1} {
		c := out.RGBAAt(x, 0)
		if c.R != c.G || c.R != c.B {
			t.Fatalf("pixel %d should be grayscale, got %+v", x, c)
		}
	}
	// Above floor: red dominant, no green/blue.
	for _, x := range []int{2, 3} {
		c := out.RGBAAt(x, 0)
		if c.R < 128 || c.G != 0 || c.B != 0 {
			t.Fatalf("pixel %d should be red, got %+v", x, c)
		}
	}
}
