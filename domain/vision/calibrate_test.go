package vision

import (
	"context"
	"errors"
	"image"
	"testing"
	"time"

	"github.com/soocke/vision-tester-go/config"
)

func calTestConfig() *config.Config {
	cfg := config.DefaultConfig()
	cfg.NumRefImages = 5
	cfg.CalibrationDelayMS = 200
	return cfg
}

func TestCalibratorFillsAndSealsStore(t *testing.T) {
	cfg := calTestConfig()
	clock := &fakeClock{}
	cal := NewCalibrator(cfg, clock, nil)
	store := NewReferenceStore(cfg.NumRefImages)

	frames := 0
	src := frameSourceFunc(func() (image.Image, bool) {
		frames++
		return synthRGBA(200, 200, 128, nil), true
	})
	roi := image.Rect(50, 50, 150, 150)
	if err := cal.Run(context.Background(), src, roi, store); err != nil {
		t.Fatalf("run: %v", err)
	}
	if !store.Sealed() || store.Len() != 5 {
		t.Fatalf("expected sealed store with 5 refs, got sealed=%t len=%d", store.Sealed(), store.Len())
	}
	if frames != 5 {
		t.Fatalf("expected 5 frame requests, got %d", frames)
	}
	// Inter-capture spacing: one wait between each pair of captures.
	if len(clock.slept) != 4 {
		t.Fatalf("expected 4 waits, got %d", len(clock.slept))
	}
	for _, d := range clock.slept {
		if d != 200*time.Millisecond {
			t.Fatalf("expected 200ms waits, got %v", d)
		}
	}
	refs, err := store.Images()
	if err != nil {
		t.Fatalf("images: %v", err)
	}
	for i, r := range refs {
		if r.Bounds().Dx() != 100 || r.Bounds().Dy() != 100 {
			t.Fatalf("reference %d has wrong dimensions %v", i, r.Bounds())
		}
	}
}

func TestCalibratorAbortsWhenSourceStops(t *testing.T) {
	cfg := calTestConfig()
	cal := NewCalibrator(cfg, &fakeClock{}, nil)
	store := NewReferenceStore(cfg.NumRefImages)

	frames := 0
	src := frameSourceFunc(func() (image.Image, bool) {
		frames++
		if frames > 3 {
			return nil, false
		}
		return synthRGBA(200, 200, 128, nil), true
	})
	err := cal.Run(context.Background(), src, image.Rect(0, 0, 100, 100), store)
	if !errors.Is(err, ErrCalibrationAborted) {
		t.Fatalf("expected ErrCalibrationAborted, got %v", err)
	}
	if store.Sealed() || store.Len() != 0 {
		t.Fatalf("aborted calibration must leave the store empty, got len=%d", store.Len())
	}
}

func TestCalibratorAbortsOnInvalidROI(t *testing.T) {
	cfg := calTestConfig()
	cal := NewCalibrator(cfg, &fakeClock{}, nil)
	store := NewReferenceStore(cfg.NumRefImages)
	src := frameSourceFunc(func() (image.Image, bool) {
		return synthRGBA(50, 50, 128, nil), true
	})

	// Zero-size ROI fails up front.
	err := cal.Run(context.Background(), src, image.Rectangle{}, store)
	if !errors.Is(err, ErrCalibrationAborted) || !errors.Is(err, ErrInvalidROI) {
		t.Fatalf("expected aborted+invalid ROI, got %v", err)
	}

	// ROI beyond the frame bounds fails at the first crop.
	err = cal.Run(context.Background(), src, image.Rect(0, 0, 100, 100), store)
	if !errors.Is(err, ErrCalibrationAborted) || !errors.Is(err, ErrInvalidROI) {
		t.Fatalf("expected aborted+invalid ROI, got %v", err)
	}
	if store.Sealed() || store.Len() != 0 {
		t.Fatalf("store must stay empty after abort")
	}
}

func TestCalibratorAbortsOnCancel(t *testing.T) {
	cfg := calTestConfig()
	cal := NewCalibrator(cfg, &fakeClock{}, nil)
	store := NewReferenceStore(cfg.NumRefImages)
	src := frameSourceFunc(func() (image.Image, bool) {
		return synthRGBA(200, 200, 128, nil), true
	})
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	err := cal.Run(ctx, src, image.Rect(0, 0, 100, 100), store)
	if !errors.Is(err, ErrCalibrationAborted) || !errors.Is(err, context.Canceled) {
		t.Fatalf("expected aborted+canceled, got %v", err)
	}
	if store.Sealed() || store.Len() != 0 {
		t.Fatalf("store must stay empty after cancellation")
	}
}
