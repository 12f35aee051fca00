package model

import (
	"sync/atomic"
)

// CaptureModel tracks whether capture and continuous testing are enabled.
// The zero value is fully disabled and usable. Concurrency-safe via atomic
// Bools because UI callbacks and presenter ticks may race.
type CaptureModel struct {
	enabled atomic.Bool
	testing atomic.Bool
}

// Enabled reports whether capture is currently enabled.
func (m *CaptureModel) Enabled() bool {
	if m == nil {
		return false
	}
	return m.enabled.Load()
}

// SetEnabled stores the enabled flag. Disabling capture also stops testing,
// since testing needs live frames.
func (m *CaptureModel) SetEnabled(b bool) {
	if m == nil {
		return
	}
	prev := m.enabled.Load()
	if prev == b { // no change
		return
	}
	m.enabled.Store(b)
	if !b {
		m.testing.Store(false)
	}
}

// Testing reports whether continuous testing is armed.
func (m *CaptureModel) Testing() bool {
	if m == nil {
		return false
	}
	return m.testing.Load()
}

// SetTesting arms or disarms continuous testing. Arming has no effect while
// capture is disabled.
func (m *CaptureModel) SetTesting(b bool) {
	if m == nil {
		return
	}
	if b && !m.enabled.Load() {
		return
	}
	m.testing.Store(b)
}
