package barcode

import (
	"image/color"
	"math/rand"

	colorful "github.com/lucasb-eyer/go-colorful"
)

// paletteSize is the number of distinct cluster tints in the overlay palette.
const paletteSize = 15

// displayPalette is a fixed hue sweep at constant saturation and value, so
// neighboring clusters get visually distinct tints.
var displayPalette = buildPalette(paletteSize)

func buildPalette(n int) []color.RGBA {
	pal := make([]color.RGBA, n)
	for i := range pal {
		r, g, b := colorful.Hsv(float64(i)*360/float64(n), 0.78, 0.82).RGB255()
		pal[i] = color.RGBA{R: r, G: g, B: b, A: 255}
	}
	return pal
}

// noiseColor marks bars that did not join any cluster.
var noiseColor = color.RGBA{A: 255}

// assignClusterColors picks a random palette tint for every real cluster and
// black for the noise pseudo-cluster. The RNG is injected so debug renders
// are reproducible under a fixed seed.
func assignClusterColors(clusters []Cluster, rng *rand.Rand) {
	for i := range clusters {
		if clusters[i].Number < 0 {
			clusters[i].Color = noiseColor
			continue
		}
		clusters[i].Color = displayPalette[rng.Intn(len(displayPalette))]
	}
}
