package barcode

import (
	"math"

	"github.com/scanium/barscan/internal/geometry"
)

// BlobBox is the oriented bounding box of a single blob in the bar
// convention: Width <= Height, so Height always runs along the blob's long
// axis. Theta and Rho parametrize the box's perpendicular middle line in
// Hough form, which makes parallel bars compare equal in Theta regardless of
// where they sit along the line.
type BlobBox struct {
	CenterX float64
	CenterY float64
	Width   float64
	Height  float64
	Theta   float64 // radians in [-pi/2, pi/2)
	Rho     float64 // signed distance of the middle line from the origin
	// Corners of the raw minimum-area rectangle, rounded to whole pixels.
	Corners [4]geometry.Point
}

// NewBlobBox computes the minimum-area rotated rectangle of pts and derives
// the bar parametrization. When the raw rectangle is wider than tall, the
// extents are swapped and the angle re-derived from the perpendicular axis.
// Degenerate point sets yield a well-defined zero-size box.
func NewBlobBox(pts []geometry.Point) BlobBox {
	r := geometry.MinAreaRect(pts)

	w, h, angle := r.Width, r.Height, r.Angle
	if w > h {
		w, h = h, w
		angle = geometry.NormalizeAngle(angle + 90)
	}

	theta := geometry.Radians(angle)
	b := BlobBox{
		CenterX: r.Center.X,
		CenterY: r.Center.Y,
		Width:   w,
		Height:  h,
		Theta:   theta,
		Rho:     r.Center.X*math.Cos(theta) + r.Center.Y*math.Sin(theta),
	}
	for i, c := range r.Corners {
		b.Corners[i] = c.Round()
	}
	return b
}

// AngleDeg returns the bar orientation in degrees, in [-90, 90).
func (b BlobBox) AngleDeg() float64 { return geometry.Degrees(b.Theta) }
