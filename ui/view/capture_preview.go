package view

import (
	"image"

	"github.com/soocke/vision-tester-go/ui/images"

	//lint:ignore ST1001 Dot import is intentional for concise Tk widget DSL builders.
	. "modernc.org/tk9.0"
)

// CapturePreview shows the live capture frame next to the most recent diff
// heatmap. It owns two LabelWidgets and provides methods to update or reset
// them.
type CapturePreview interface {
	UpdateCapture(img image.Image)
	UpdateDiff(img image.Image)
	Reset()
}

type capturePreview struct {
	captureLabel  *LabelWidget
	diffLabel     *LabelWidget
	prevCapture   *Img // last Tk photo image instance for the live frame
	prevDiffPhoto *Img // last Tk photo image instance for the diff heatmap
}

// Internal state tracks current preview photos so we can dispose old images
// before replacing them, preventing accumulation of off-screen image data.

// NewCapturePreview creates the preview labels, grids them and returns the view.
// Layout: live frame spans columns 0-3; the diff heatmap sits at column 4.
func NewCapturePreview(row int) CapturePreview {
	placeholder := image.NewRGBA(image.Rect(0, 0, 200, 120))
	pngBytes := images.EncodePNG(placeholder)
	capPhoto := NewPhoto(Data(pngBytes))
	diffPhoto := NewPhoto(Data(pngBytes))
	capture := Label(Image(capPhoto), Borderwidth(1), Relief("sunken"))
	diff := Label(Image(diffPhoto), Borderwidth(1), Relief("sunken"))
	Grid(capture, Row(row), Column(0), Columnspan(4), Sticky("we"), Padx("0.4m"), Pady("0.4m"))
	Grid(diff, Row(row), Column(4), Columnspan(1), Sticky("we"), Padx("0.4m"), Pady("0.4m"))
	return &capturePreview{captureLabel: capture, diffLabel: diff, prevCapture: capPhoto, prevDiffPhoto: diffPhoto}
}

const (
	// Max preview dimensions; scaling is proportional.
	maxPreviewW = 400
	maxPreviewH = 225
)

func (v *capturePreview) UpdateCapture(img image.Image) {
	if v.captureLabel == nil || img == nil {
		return
	}
	// Scale for display only; allocate a fresh scaled image each call.
	scaled := images.ScaleToFit(img, maxPreviewW, maxPreviewH)
	pngBytes := images.EncodePNG(scaled)
	// Replace previous photo to avoid retaining obsolete pixel buffers.
	if v.prevCapture != nil {
		v.prevCapture.Delete()
	}
	newPhoto := NewPhoto(Data(pngBytes))
	v.prevCapture = newPhoto
	v.captureLabel.Configure(Image(newPhoto))
}

func (v *capturePreview) UpdateDiff(img image.Image) {
	if v.diffLabel == nil || img == nil {
		return
	}
	scaled := images.ScaleToFit(img, maxPreviewH, maxPreviewH)
	pngBytes := images.EncodePNG(scaled)
	if v.prevDiffPhoto != nil {
		v.prevDiffPhoto.Delete()
	}
	newPhoto := NewPhoto(Data(pngBytes))
	v.prevDiffPhoto = newPhoto
	v.diffLabel.Configure(Image(newPhoto))
}

func (v *capturePreview) Reset() {
	placeholder := image.NewRGBA(image.Rect(0, 0, 200, 120))
	pngBytes := images.EncodePNG(placeholder)
	if v.captureLabel != nil {
		if v.prevCapture != nil {
			v.prevCapture.Delete()
		}
		v.prevCapture = NewPhoto(Data(pngBytes))
		v.captureLabel.Configure(Image(v.prevCapture))
	}
	if v.diffLabel != nil {
		if v.prevDiffPhoto != nil {
			v.prevDiffPhoto.Delete()
		}
		v.prevDiffPhoto = NewPhoto(Data(pngBytes))
		v.diffLabel.Configure(Image(v.prevDiffPhoto))
	}
}
