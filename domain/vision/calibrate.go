package vision

import (
	"context"
	"fmt"
	"image"
	"log/slog"
	"time"

	"github.com/soocke/vision-tester-go/config"
)

// Clock abstracts the inter-capture wait so calibration is testable without
// real delays.
type Clock interface {
	// Sleep blocks for d or until ctx is done, returning the context error
	// in the latter case.
	Sleep(ctx context.Context, d time.Duration) error
}

// SystemClock implements Clock with wall-clock time.
type SystemClock struct{}

func (SystemClock) Sleep(ctx context.Context, d time.Duration) error {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-t.C:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// FrameSource supplies the most recent frame from the external capture
// collaborator. ok is false when no frame is currently available.
type FrameSource interface {
	Frame() (image.Image, bool)
}

// Calibrator drives acquisition of the reference set: it captures the
// configured number of frames, preprocesses the ROI crop of each, and fills
// the reference store, waiting a fixed delay between captures so the frame
// source returns temporally distinct samples.
type Calibrator struct {
	cfg    *config.Config
	clock  Clock
	logger *slog.Logger
}

// NewCalibrator returns a Calibrator. A nil cfg selects defaults; a nil
// clock selects SystemClock.
func NewCalibrator(cfg *config.Config, clock Clock, logger *slog.Logger) *Calibrator {
	if cfg == nil {
		cfg = config.DefaultConfig()
	}
	if clock == nil {
		clock = SystemClock{}
	}
	return &Calibrator{cfg: cfg, clock: clock, logger: logger}
}

// Run performs one full calibration pass against store. On any mid-sequence
// failure (invalid ROI, dead frame source, cancellation) the store is reset
// to empty/unsealed and the error wraps ErrCalibrationAborted; no partial
// calibration is ever retained.
func (c *Calibrator) Run(ctx context.Context, src FrameSource, roi image.Rectangle, store *ReferenceStore) error {
	if src == nil {
		return c.abort(store, fmt.Errorf("nil frame source"))
	}
	if roi.Dx() <= 0 || roi.Dy() <= 0 {
		return c.abort(store, fmt.Errorf("%w: %v", ErrInvalidROI, roi))
	}
	store.Reset()

	n := c.cfg.NumRefImages
	delay := time.Duration(c.cfg.CalibrationDelayMS) * time.Millisecond
	for i := 0; i < n; i++ {
		frame, ok := src.Frame()
		if !ok || frame == nil {
			return c.abort(store, fmt.Errorf("frame source stopped after %d of %d captures", i, n))
		}
		pre, err := PreprocessROI(frame, roi, c.cfg.ClaheTileGrid, c.cfg.ClaheClipLimit)
		if err != nil {
			return c.abort(store, err)
		}
		if err := store.Append(pre); err != nil {
			return c.abort(store, err)
		}
		if c.logger != nil {
			c.logger.Debug("reference captured", "index", i, "total", n)
		}
		if i < n-1 {
			if err := c.clock.Sleep(ctx, delay); err != nil {
				return c.abort(store, err)
			}
		}
	}
	if c.logger != nil {
		c.logger.Info("calibration complete", "references", n, "roi_w", roi.Dx(), "roi_h", roi.Dy())
	}
	return nil
}

func (c *Calibrator) abort(store *ReferenceStore, cause error) error {
	store.Reset()
	if c.logger != nil {
		c.logger.Warn("calibration aborted", "error", cause)
	}
	return fmt.Errorf("%w: %w", ErrCalibrationAborted, cause)
}
