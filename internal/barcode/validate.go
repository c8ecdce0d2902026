package barcode

import (
	"math"

	"github.com/scanium/barscan/internal/geometry"
)

// macroBox computes the enclosing oriented box of a whole cluster from the
// merged corner points of its member bars.
func macroBox(members []bar) BlobBox {
	corners := make([]geometry.Point, 0, 4*len(members))
	for _, m := range members {
		corners = append(corners, m.box.Corners[:]...)
	}
	return NewBlobBox(corners)
}

// buildRect validates a cluster and, when accepted, constructs its
// BarcodeRect. A genuine barcode's enclosing box runs perpendicular to the
// bars inside it, so clusters whose macro box orientation is closer than
// minDiff (radians) to the mean bar orientation are rejected as incidental
// groupings of parallel strokes. The accepted rect swaps the macro box
// extents and turns its angle a quarter turn, back into the reading
// direction.
func buildRect(members []bar, minDiff float64) (BarcodeRect, BlobBox, bool) {
	box := macroBox(members)
	if math.Abs(box.Theta-meanTheta(members)) < minDiff {
		return BarcodeRect{}, box, false
	}

	rect := BarcodeRect{
		CenterX: box.CenterX,
		CenterY: box.CenterY,
		Width:   int(math.Ceil(box.Height)),
		Height:  int(math.Ceil(box.Width)),
		Theta:   geometry.NormalizeAngle(box.AngleDeg() + 90),
	}
	return rect, box, true
}
