package capture

import (
	"image"

	"github.com/vova616/screenshot"
)

// Grab returns a screen capture of the current active monitor.
func Grab() (*image.RGBA, error) {
	img, err := screenshot.CaptureScreen()
	if err != nil {
		return nil, err
	}
	return img, nil
}

// GrabRect captures only the given screen region.
func GrabRect(area image.Rectangle) (*image.RGBA, error) {
	img, err := screenshot.CaptureRect(area)
	if err != nil {
		return nil, err
	}
	return img, nil
}

// ScreenGrabber adapts the screenshot functions to the capture service
// contract: a nil selection grabs the full screen.
func ScreenGrabber(sel *image.Rectangle) (*image.RGBA, error) {
	if sel != nil && !sel.Empty() {
		return GrabRect(*sel)
	}
	return Grab()
}
