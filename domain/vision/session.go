package vision

import (
	"context"
	"fmt"
	"image"
	"log/slog"
	"sync"

	"github.com/soocke/vision-tester-go/config"
)

// Session owns the mutable inspection state for one ROI: the currently
// selected rectangle, the reference store and the most recent verdict.
// There are no package-level singletons; independent sessions can run side
// by side. Calibration and testing sample the ROI and store once per
// invocation, so concurrent resets are observed safely: an in-flight
// operation may complete against stale state but never corrupts the store.
type Session struct {
	mu     sync.Mutex
	cfg    *config.Config
	logger *slog.Logger

	roi   image.Rectangle
	store *ReferenceStore
	last  Verdict

	calibrator *Calibrator
	decider    *Decider
}

// NewSession returns a session using the system clock for calibration
// pacing. A nil cfg selects defaults.
func NewSession(cfg *config.Config, logger *slog.Logger) *Session {
	if cfg == nil {
		cfg = config.DefaultConfig()
	}
	return &Session{
		cfg:        cfg,
		logger:     logger,
		store:      NewReferenceStore(cfg.NumRefImages),
		calibrator: NewCalibrator(cfg, SystemClock{}, logger),
		decider:    NewDecider(cfg, logger),
	}
}

// UseClock swaps the calibration clock. Intended for tests.
func (s *Session) UseClock(c Clock) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.calibrator = NewCalibrator(s.cfg, c, s.logger)
}

// SetROI selects the region under test. The rectangle must have positive
// dimensions; ErrInvalidROI otherwise. Changing the ROI invalidates any
// existing calibration.
func (s *Session) SetROI(r image.Rectangle) error {
	if r.Dx() <= 0 || r.Dy() <= 0 {
		return fmt.Errorf("%w: %v", ErrInvalidROI, r)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if r != s.roi {
		s.store.Reset()
		s.last = Verdict{RefIndex: -1}
	}
	s.roi = r
	return nil
}

// ROI returns the current rectangle; ok is false when none is selected.
func (s *Session) ROI() (image.Rectangle, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.roi, s.roi.Dx() > 0 && s.roi.Dy() > 0
}

// Reset clears the ROI, the reference store and the last verdict.
func (s *Session) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.roi = image.Rectangle{}
	s.store.Reset()
	s.last = Verdict{RefIndex: -1}
}

// Calibrated reports whether a complete reference set is available.
func (s *Session) Calibrated() bool {
	return s.snapshotStore().Sealed()
}

// Progress returns captured and required reference counts, for progress
// display during calibration.
func (s *Session) Progress() (done, total int) {
	st := s.snapshotStore()
	return st.Len(), st.Capacity()
}

// References returns the sealed reference set, or ErrNotCalibrated.
func (s *Session) References() ([]*image.Gray, error) {
	return s.snapshotStore().Images()
}

// Calibrate runs one full calibration pass using frames from src. On abort
// the session is left in the pre-calibration state, safe to retry.
func (s *Session) Calibrate(ctx context.Context, src FrameSource) error {
	s.mu.Lock()
	roi := s.roi
	store := s.store
	calibrator := s.calibrator
	s.mu.Unlock()
	return calibrator.Run(ctx, src, roi, store)
}

// Test scores a single frame against the reference set and records the
// verdict. All error conditions degrade to a non-PASS verdict with a
// reason; Test never panics and never returns an error.
func (s *Session) Test(frame image.Image) Verdict {
	s.mu.Lock()
	roi := s.roi
	store := s.store
	s.mu.Unlock()

	var v Verdict
	switch {
	case roi.Dx() <= 0 || roi.Dy() <= 0:
		v = Verdict{Status: StatusUncalibrated, RefIndex: -1, Reason: "no ROI selected"}
	case !store.Sealed():
		v = Verdict{Status: StatusUncalibrated, RefIndex: -1, Reason: "reference set not calibrated"}
	default:
		pre, err := PreprocessROI(frame, roi, s.cfg.ClaheTileGrid, s.cfg.ClaheClipLimit)
		if err != nil {
			v = Verdict{Status: StatusFail, RefIndex: -1, Reason: err.Error()}
		} else {
			v = s.decider.Decide(pre, store)
		}
	}

	s.mu.Lock()
	s.last = v
	s.mu.Unlock()
	return v
}

// LastVerdict returns the most recent verdict recorded by Test.
func (s *Session) LastVerdict() Verdict {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.last
}

func (s *Session) snapshotStore() *ReferenceStore {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.store
}
