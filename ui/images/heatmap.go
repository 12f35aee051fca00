package images

import (
	"image"
	"image/color"
)

// Heatmap renders a per-pixel difference image for preview. Deltas at or
// below floor draw as dimmed grayscale; deltas above it draw in red with
// intensity proportional to the delta, so changed regions stand out.
func Heatmap(diff *image.Gray, floor uint8) *image.RGBA {
	if diff == nil {
		return nil
	}
	b := diff.Bounds()
	out := image.NewRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
	for y := 0; y < b.Dy(); y++ {
		for x := 0; x < b.Dx(); x++ {
			d := diff.Pix[y*diff.Stride+x]
			var c color.RGBA
			if d > floor {
				v := uint8(128 + int(d)/2)
				c = color.RGBA{R: v, A: 255}
			} else {
				v := d / 2
				c = color.RGBA{R: v, G: v, B: v, A: 255}
			}
			out.SetRGBA(x, y, c)
		}
	}
	return out
}
