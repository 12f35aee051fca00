package model

import (
	"time"
)

// SessionModel tracks the current capture session duration, the accumulated
// active time, and counts of test verdicts observed during the run. It is
// decoupled from the UI; presenters should poll Values() and update views.
// The zero value is ready to use.
type SessionModel struct {
	active              bool
	captureStart        time.Time
	lastSessionDuration time.Duration
	accumulated         time.Duration

	passes uint64
	fails  uint64
}

// NewSessionModel returns a pointer to a ready-to-use SessionModel.
func NewSessionModel() *SessionModel { return &SessionModel{} }

// OnTick updates the model using the current capture state and timestamp.
// Call periodically (for example, from a presenter tick).
func (m *SessionModel) OnTick(capturing bool, now time.Time) {
	if m == nil {
		return
	}
	if capturing {
		if !m.active { // transition off -> on
			m.active = true
			m.captureStart = now
			m.lastSessionDuration = 0
		}
		m.lastSessionDuration = now.Sub(m.captureStart)
	} else if m.active { // transition on -> off
		m.lastSessionDuration = now.Sub(m.captureStart)
		m.accumulated += m.lastSessionDuration
		m.active = false
	}
}

// RecordVerdict counts a completed test outcome.
func (m *SessionModel) RecordVerdict(pass bool) {
	if m == nil {
		return
	}
	if pass {
		m.passes++
	} else {
		m.fails++
	}
}

// Values returns the current session duration and the total accumulated duration.
// The total includes the ongoing session when active.
func (m *SessionModel) Values() (session, total time.Duration) {
	if m == nil {
		return 0, 0
	}
	session = m.lastSessionDuration
	total = m.accumulated
	if m.active {
		total += session
	}
	return
}

// VerdictCounts returns the number of PASS and FAIL verdicts recorded so far.
func (m *SessionModel) VerdictCounts() (passes, fails uint64) {
	if m == nil {
		return 0, 0
	}
	return m.passes, m.fails
}
