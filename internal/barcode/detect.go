package barcode

import (
	"image"
	"log/slog"
	"math"
	"math/rand"

	"github.com/scanium/barscan/internal/blob"
	"github.com/scanium/barscan/internal/cluster"
)

// Options controls the detection pipeline.
type Options struct {
	// Blob configures the dark-region extraction stage.
	Blob blob.Params

	// AspectRatioMin is the minimum long/short extent ratio a blob must
	// exceed to count as a bar.
	AspectRatioMin float64

	// ClusterEps is the DBSCAN neighborhood radius in normalized feature
	// space; ClusterMinSamples is the density threshold (a point plus its
	// neighbors) required to seed a cluster.
	ClusterEps        float64
	ClusterMinSamples int

	// OrientationMinDiff is the minimum angle, in radians, between a
	// cluster's enclosing box and its mean bar orientation for the cluster
	// to be accepted as a barcode.
	OrientationMinDiff float64

	// Debug renders the intermediate clustering state to DebugSink. The
	// render uses DebugSeed for its color assignment and has no effect on
	// the returned results.
	Debug     bool
	DebugSeed int64
	DebugSink func(image.Image)
}

// DefaultOptions returns the detection parameters tuned for printed
// linear barcodes.
func DefaultOptions() Options {
	return Options{
		Blob:               blob.DefaultParams(),
		AspectRatioMin:     10,
		ClusterEps:         0.1,
		ClusterMinSamples:  5,
		OrientationMinDiff: math.Pi / 4,
	}
}

// FindBarcodes locates linear barcode regions in img and returns one
// BarcodeRect per detected barcode. An image with no bar-like blobs returns
// an empty slice.
func FindBarcodes(img image.Image, opts Options) []BarcodeRect {
	regions := blob.DetectRegions(img, opts.Blob)
	bars := make([]bar, 0, len(regions))
	for _, r := range regions {
		bars = append(bars, newBar(r))
	}
	bars = filterBars(bars, opts.AspectRatioMin)
	slog.Debug("bar candidates", "regions", len(regions), "bars", len(bars))

	results := []BarcodeRect{}
	if len(bars) == 0 {
		// The sink still gets a render so callers streaming overlays see
		// the (empty) state for every frame.
		if opts.Debug && opts.DebugSink != nil {
			opts.DebugSink(renderOverlay(img, bars, nil, nil))
		}
		return results
	}

	b := img.Bounds()
	maxDim := float64(max(b.Dx(), b.Dy()))
	clusters := clusterBars(bars, maxDim, cluster.Params{
		Eps:        opts.ClusterEps,
		MinSamples: opts.ClusterMinSamples,
	})

	accepted := make(map[int]BlobBox)
	for _, c := range clusters {
		if c.Number == cluster.Noise {
			continue
		}
		rect, box, ok := buildRect(membersOf(bars, c.Number), opts.OrientationMinDiff)
		if !ok {
			slog.Debug("cluster rejected: bars parallel to enclosing box",
				"cluster", c.Number, "bars", c.Count, "theta", box.AngleDeg())
			continue
		}
		slog.Debug("barcode found",
			"cluster", c.Number, "bars", c.Count,
			"center_x", rect.CenterX, "center_y", rect.CenterY, "theta", rect.Theta)
		accepted[c.Number] = box
		results = append(results, rect)
	}

	if opts.Debug && opts.DebugSink != nil {
		rng := rand.New(rand.NewSource(opts.DebugSeed))
		assignClusterColors(clusters, rng)
		opts.DebugSink(renderOverlay(img, bars, clusters, accepted))
	}
	return results
}
