package presenter

import (
	"image"

	"github.com/soocke/vision-tester-go/domain/capture"
	"github.com/soocke/vision-tester-go/domain/vision"
)

// FrameSource supplies the most recent frame from the capture layer.
type FrameSource interface {
	Running() bool
	LatestFrame() capture.FrameSnapshot
}

type serviceFrames struct{ src FrameSource }

// ServiceFrames adapts the capture service's latest-frame slot to the
// pull-style frame source the calibrator consumes.
func ServiceFrames(src FrameSource) vision.FrameSource {
	return serviceFrames{src: src}
}

func (s serviceFrames) Frame() (image.Image, bool) {
	if s.src == nil || !s.src.Running() {
		return nil, false
	}
	snap := s.src.LatestFrame()
	if snap.Image == nil {
		return nil, false
	}
	return snap.Image, true
}
