package model

import (
	"github.com/soocke/vision-tester-go/domain/vision"
)

// VerdictModel retains the most recent test verdict and calibration progress
// for display. Updates occur on the UI thread tick, so no locking is needed.
type VerdictModel struct {
	last        vision.Verdict
	hasVerdict  bool
	calibrating bool
	refsDone    int
	refsTotal   int
}

func NewVerdictModel() *VerdictModel { return &VerdictModel{last: vision.Verdict{RefIndex: -1}} }

// SetVerdict stores the latest test outcome.
func (m *VerdictModel) SetVerdict(v vision.Verdict) {
	if m == nil {
		return
	}
	m.last = v
	m.hasVerdict = true
}

// Verdict returns the last stored verdict and whether one exists.
func (m *VerdictModel) Verdict() (vision.Verdict, bool) {
	if m == nil {
		return vision.Verdict{RefIndex: -1}, false
	}
	return m.last, m.hasVerdict
}

// SetCalibration updates calibration progress for display.
func (m *VerdictModel) SetCalibration(active bool, done, total int) {
	if m == nil {
		return
	}
	m.calibrating = active
	m.refsDone = done
	m.refsTotal = total
}

// Calibration reports whether calibration is running and its progress.
func (m *VerdictModel) Calibration() (active bool, done, total int) {
	if m == nil {
		return false, 0, 0
	}
	return m.calibrating, m.refsDone, m.refsTotal
}

// Reset clears the stored verdict and progress.
func (m *VerdictModel) Reset() {
	if m == nil {
		return
	}
	m.last = vision.Verdict{RefIndex: -1}
	m.hasVerdict = false
	m.calibrating = false
	m.refsDone = 0
	m.refsTotal = 0
}
