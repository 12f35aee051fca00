package vision

import (
	"fmt"
	"image"
	"sync"
)

// ReferenceStore holds the calibration set: a fixed number of preprocessed
// reference images captured at distinct instants. It is append-only while
// unsealed and read-only once sealed; no partial set is ever readable.
// Safe for concurrent use.
type ReferenceStore struct {
	mu       sync.RWMutex
	capacity int
	refs     []*image.Gray
	sealed   bool
}

// NewReferenceStore returns an empty, unsealed store that seals after
// exactly capacity appends.
func NewReferenceStore(capacity int) *ReferenceStore {
	if capacity < 1 {
		capacity = 1
	}
	return &ReferenceStore{capacity: capacity}
}

// Append adds one preprocessed reference image in calibration order. The
// store seals itself after the final append. Appending to a sealed store is
// an error.
func (s *ReferenceStore) Append(img *image.Gray) error {
	if img == nil {
		return fmt.Errorf("reference store: nil image")
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.sealed {
		return fmt.Errorf("reference store: already sealed with %d images", s.capacity)
	}
	s.refs = append(s.refs, img)
	if len(s.refs) == s.capacity {
		s.sealed = true
	}
	return nil
}

// Sealed reports whether the store holds a complete reference set.
func (s *ReferenceStore) Sealed() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.sealed
}

// Len returns the number of references appended so far.
func (s *ReferenceStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.refs)
}

// Capacity returns the number of references required to seal the store.
func (s *ReferenceStore) Capacity() int {
	return s.capacity
}

// Images returns the sealed reference set in calibration order. Until the
// store is sealed it fails with ErrNotCalibrated. The returned slice is a
// copy; the images themselves are shared and must not be mutated.
func (s *ReferenceStore) Images() ([]*image.Gray, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if !s.sealed {
		return nil, fmt.Errorf("%w: %d of %d references captured", ErrNotCalibrated, len(s.refs), s.capacity)
	}
	out := make([]*image.Gray, len(s.refs))
	copy(out, s.refs)
	return out, nil
}

// Reset clears the store back to empty and un-seals it.
func (s *ReferenceStore) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.refs = nil
	s.sealed = false
}
