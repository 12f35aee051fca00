package capture

import "image"

// Grabber acquires a single frame from some device. A nil rectangle requests
// the full frame; a non-nil rectangle requests just that region. Implementations
// live in the top-level capture package (screen, camera).
type Grabber func(sel *image.Rectangle) (*image.RGBA, error)

// FrameSource provides read-only access to captured frames.
// LatestFrame returns the freshest snapshot while Running reports activity.
type FrameSource interface {
	LatestFrame() FrameSnapshot
	Running() bool
}
