package vision

import (
	"fmt"
	"image"
	"log/slog"

	"github.com/soocke/vision-tester-go/config"
)

// Status is the outcome class of a single test invocation.
type Status int

const (
	StatusUncalibrated Status = iota
	StatusPass
	StatusFail
)

func (s Status) String() string {
	switch s {
	case StatusPass:
		return "PASS"
	case StatusFail:
		return "FAIL"
	default:
		return "UNCALIBRATED"
	}
}

// Verdict is the result of scoring one live frame against the reference set.
type Verdict struct {
	Status Status
	// ChangedFraction is the proportion of overlap pixels whose intensity
	// delta exceeded the noise floor.
	ChangedFraction float64
	// RefIndex is the calibration index of the best-matching reference, or
	// -1 when no reference was scored.
	RefIndex int
	// Reason holds a human-readable explanation for non-PASS verdicts.
	Reason string
	// Diff is the per-pixel absolute delta of the aligned pair, for display.
	// Nil when no comparison happened.
	Diff *image.Gray
}

// Decider compares preprocessed live frames against a sealed reference set
// and produces verdicts. Stateless apart from configuration; safe for use
// from a single pipeline goroutine.
type Decider struct {
	cfg    *config.Config
	logger *slog.Logger
}

// NewDecider returns a Decider. If cfg is nil the default configuration is
// used.
func NewDecider(cfg *config.Config, logger *slog.Logger) *Decider {
	if cfg == nil {
		cfg = config.DefaultConfig()
	}
	return &Decider{cfg: cfg, logger: logger}
}

// Decide aligns live against every stored reference, picks the one with the
// lowest dissimilarity, and thresholds the changed-pixel fraction of the
// aligned pair. The best-of-N rule absorbs sensor jitter captured across the
// calibration pass. Failure to align against any reference degrades to a
// FAIL verdict, never an error.
func (d *Decider) Decide(live *image.Gray, store *ReferenceStore) Verdict {
	refs, err := store.Images()
	if err != nil {
		return Verdict{Status: StatusUncalibrated, RefIndex: -1, Reason: err.Error()}
	}

	bestIdx := -1
	var bestRes AlignResult
	var lastErr error
	for i, ref := range refs {
		res, err := Align(live, ref, d.cfg.SearchWindow, d.cfg.MinOverlapFraction)
		if err != nil {
			lastErr = err
			continue
		}
		if bestIdx < 0 || res.Score < bestRes.Score {
			bestIdx, bestRes = i, res
		}
	}
	if bestIdx < 0 {
		reason := "alignment failed against every reference"
		if lastErr != nil {
			reason = fmt.Sprintf("%s: %v", reason, lastErr)
		}
		return Verdict{Status: StatusFail, RefIndex: -1, Reason: reason}
	}

	changed, total, diff := diffChanged(bestRes.Ref, bestRes.Live, d.cfg.NoiseFloor)
	fraction := 0.0
	if total > 0 {
		fraction = float64(changed) / float64(total)
	}
	v := Verdict{ChangedFraction: fraction, RefIndex: bestIdx, Diff: diff}
	if fraction > d.cfg.PixelChangeThreshold {
		v.Status = StatusFail
		v.Reason = fmt.Sprintf("changed fraction %.4f exceeds threshold %.4f", fraction, d.cfg.PixelChangeThreshold)
	} else {
		v.Status = StatusPass
	}
	if d.logger != nil {
		d.logger.Debug("verdict",
			"status", v.Status.String(),
			"changed_fraction", fraction,
			"ref_index", bestIdx,
			"offset_dx", bestRes.Offset.Dx,
			"offset_dy", bestRes.Offset.Dy,
		)
	}
	return v
}

// diffChanged computes the per-pixel absolute delta image of two same-sized
// grayscale images and counts pixels whose delta exceeds the noise floor.
func diffChanged(ref, live *image.Gray, noiseFloor int) (changed, total int, diff *image.Gray) {
	rb, lb := ref.Bounds(), live.Bounds()
	w, h := rb.Dx(), rb.Dy()
	if lb.Dx() < w {
		w = lb.Dx()
	}
	if lb.Dy() < h {
		h = lb.Dy()
	}
	diff = image.NewGray(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		ri := ref.PixOffset(rb.Min.X, rb.Min.Y+y)
		li := live.PixOffset(lb.Min.X, lb.Min.Y+y)
		di := y * diff.Stride
		for x := 0; x < w; x++ {
			d := int(ref.Pix[ri+x]) - int(live.Pix[li+x])
			if d < 0 {
				d = -d
			}
			diff.Pix[di+x] = uint8(d)
			if d > noiseFloor {
				changed++
			}
		}
	}
	return changed, w * h, diff
}
