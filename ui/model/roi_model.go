package model

import (
	"image"
)

// ROIModel holds the user-selected region of interest in frame coordinates.
// Zero value means no active ROI and is usable. No synchronization needed:
// updates occur on the UI thread tick.
type ROIModel struct {
	roi image.Rectangle
}

func NewROIModel() *ROIModel { return &ROIModel{} }

// SetROI sets the rectangle. Degenerate rectangles clear the selection.
func (m *ROIModel) SetROI(r image.Rectangle) {
	if m == nil {
		return
	}
	if r.Empty() || r.Dx() <= 0 || r.Dy() <= 0 {
		m.roi = image.Rectangle{}
		return
	}
	m.roi = r
}

// Clear removes the current selection.
func (m *ROIModel) Clear() {
	if m == nil {
		return
	}
	m.roi = image.Rectangle{}
}

// ROI returns the current rectangle (may be empty).
func (m *ROIModel) ROI() image.Rectangle {
	if m == nil {
		return image.Rectangle{}
	}
	return m.roi
}

// Active reports whether a usable selection exists.
func (m *ROIModel) Active() bool {
	if m == nil {
		return false
	}
	return !m.roi.Empty()
}
