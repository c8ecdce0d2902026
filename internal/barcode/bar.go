package barcode

import (
	"image"

	"github.com/scanium/barscan/internal/blob"
	"github.com/scanium/barscan/internal/cluster"
	"github.com/scanium/barscan/internal/geometry"
)

// bar couples one detected blob with its oriented box and, after clustering,
// the cluster label it was assigned.
type bar struct {
	points []image.Point
	box    BlobBox
	label  int
}

func newBar(r blob.Region) bar {
	pts := make([]geometry.Point, len(r.Points))
	for i, p := range r.Points {
		pts[i] = geometry.FromImagePoint(p)
	}
	return bar{points: r.Points, box: NewBlobBox(pts), label: cluster.Noise}
}

// filterBars keeps the bars whose long/short extent ratio exceeds minRatio.
// Boxes with zero short extent have no meaningful ratio and are dropped.
func filterBars(bars []bar, minRatio float64) []bar {
	kept := make([]bar, 0, len(bars))
	for _, b := range bars {
		if b.box.Width <= 0 {
			continue
		}
		if b.box.Height/b.box.Width > minRatio {
			kept = append(kept, b)
		}
	}
	return kept
}
