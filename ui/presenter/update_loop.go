package presenter

import "time"

// Loop aggregates feature presenters and drives periodic updates.
//
// It calls Tick/ProcessFrame on the sub-presenters and invokes a
// scheduler callback. The zero value is usable (methods are nil-safe).
type Loop struct {
	Session     *SessionPresenter
	Calibration *CalibrationPresenter
	Test        *TestPresenter
	Schedule    func()
}

func NewLoop(sess *SessionPresenter, calib *CalibrationPresenter, test *TestPresenter, schedule func()) *Loop {
	return &Loop{Session: sess, Calibration: calib, Test: test, Schedule: schedule}
}

func (l *Loop) Tick() {
	if l == nil {
		return
	}
	now := time.Now()
	if l.Calibration != nil {
		l.Calibration.Tick()
	}
	if l.Session != nil {
		l.Session.Tick(now)
	}
	if l.Test != nil {
		l.Test.ProcessFrame()
	}
	if l.Schedule != nil {
		l.Schedule()
	}
}
