package view

import (
	"fmt"
	"time"

	//lint:ignore ST1001 Dot import for concise Tk widget DSL.
	. "modernc.org/tk9.0"
)

// SessionStats displays capture durations and running verdict tallies.
type SessionStats interface {
	SetSession(session, total time.Duration)
	SetVerdictCounts(passes, fails uint64)
}

type sessionStats struct {
	sessionLbl *LabelWidget
	totalLbl   *LabelWidget
	countsLbl  *LabelWidget
}

// NewSessionStats creates the stats labels in a grid layout starting at
// (row, startCol).
func NewSessionStats(row, startCol int) SessionStats {
	s := &sessionStats{
		sessionLbl: Label(Width(14)),
		totalLbl:   Label(Width(14)),
		countsLbl:  Label(Width(20)),
	}
	Grid(s.sessionLbl, Row(row), Column(startCol), Sticky("w"), Padx("0.2m"))
	Grid(s.totalLbl, Row(row), Column(startCol+1), Sticky("w"), Padx("0.2m"))
	Grid(s.countsLbl, Row(row), Column(startCol+2), Sticky("w"), Padx("0.2m"))
	s.sessionLbl.Configure(Txt("Session: 00:00"))
	s.totalLbl.Configure(Txt("Total: 00:00"))
	s.countsLbl.Configure(Txt("Pass: 0  Fail: 0"))
	return s
}

func formatClock(d time.Duration) string {
	seconds := int(d.Seconds())
	return fmt.Sprintf("%02d:%02d", seconds/60, seconds%60)
}

// SetSession updates the duration displays.
func (s *sessionStats) SetSession(session, total time.Duration) {
	if s == nil {
		return
	}
	if s.sessionLbl != nil {
		s.sessionLbl.Configure(Txt("Session: " + formatClock(session)))
	}
	if s.totalLbl != nil {
		s.totalLbl.Configure(Txt("Total: " + formatClock(total)))
	}
}

// SetVerdictCounts updates the pass/fail tally display.
func (s *sessionStats) SetVerdictCounts(passes, fails uint64) {
	if s == nil || s.countsLbl == nil {
		return
	}
	s.countsLbl.Configure(Txt(fmt.Sprintf("Pass: %d  Fail: %d", passes, fails)))
}
