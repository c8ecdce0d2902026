package barcode

import (
	"image"
	"image/color"
	"math"

	"github.com/disintegration/imaging"

	"github.com/scanium/barscan/internal/geometry"
)

// CropMargin is the padding, in pixels, added around extracted crops.
const CropMargin = 5

// BarcodeRect is one located barcode: its center, extents and rotation
// relative to the image axes. Width runs along the reading direction
// (perpendicular to the bars), Theta is in degrees in [-90, 90).
type BarcodeRect struct {
	CenterX float64 `json:"center_x"`
	CenterY float64 `json:"center_y"`
	Width   int     `json:"width"`
	Height  int     `json:"height"`
	Theta   float64 `json:"theta"`
}

// Extract returns the de-rotated crop of the barcode from img. The image is
// rotated by Theta so the bars become vertical, then a (Width+CropMargin) x
// (Height+CropMargin) window centered on the barcode is cut out. The crop
// origin is clamped to the canvas, so rects near the border yield a smaller
// crop rather than an error. Note that the rotation grows the canvas to fit
// the turned image (new corners are filled white) instead of keeping the
// input size, so a near-border window may retain content that a fixed-size
// rotation would have clipped.
func (r BarcodeRect) Extract(img image.Image) image.Image {
	b := img.Bounds()
	rotated := imaging.Rotate(img, r.Theta, color.White)

	// imaging.Rotate spins the whole canvas about its center and grows it to
	// fit. Track where the barcode center lands on the new canvas.
	rad := geometry.Radians(r.Theta)
	dx := r.CenterX - float64(b.Dx())/2
	dy := r.CenterY - float64(b.Dy())/2
	rb := rotated.Bounds()
	cx := float64(rb.Dx())/2 + dx*math.Cos(rad) + dy*math.Sin(rad)
	cy := float64(rb.Dy())/2 - dx*math.Sin(rad) + dy*math.Cos(rad)

	w := r.Width + CropMargin
	h := r.Height + CropMargin
	x0 := int(math.Round(cx - float64(w)/2))
	y0 := int(math.Round(cy - float64(h)/2))
	x0 = max(x0, 0)
	y0 = max(y0, 0)

	return imaging.Crop(rotated, image.Rect(x0, y0, x0+w, y0+h))
}
