package barcode

import (
	"image/color"
	"sort"

	"gonum.org/v1/gonum/stat"

	"github.com/scanium/barscan/internal/cluster"
)

// Cluster summarizes one group of bars found by density clustering. Noise
// bars form their own pseudo-cluster with Number == cluster.Noise.
type Cluster struct {
	Number int
	Count  int
	// Color is the overlay tint for this cluster's pixels. It is only
	// assigned on the debug path and never influences detection.
	Color color.RGBA
}

// clusterBars groups bars that plausibly belong to the same barcode. Each bar
// is projected to the feature vector (theta, height/D, centerX/D, centerY/D),
// where D is the longer image dimension, so that orientation, scale and
// position all contribute on comparable ranges. Labels are stamped back onto
// the bars; the returned clusters are ordered by label, noise first.
func clusterBars(bars []bar, maxDim float64, p cluster.Params) []Cluster {
	features := make([][]float64, len(bars))
	for i, b := range bars {
		features[i] = []float64{
			b.box.Theta,
			b.box.Height / maxDim,
			b.box.CenterX / maxDim,
			b.box.CenterY / maxDim,
		}
	}

	labels := cluster.DBSCAN(features, p)

	counts := make(map[int]int)
	for i, l := range labels {
		bars[i].label = l
		counts[l]++
	}

	clusters := make([]Cluster, 0, len(counts))
	for l, n := range counts {
		clusters = append(clusters, Cluster{Number: l, Count: n})
	}
	sort.Slice(clusters, func(i, j int) bool { return clusters[i].Number < clusters[j].Number })
	return clusters
}

// membersOf returns the bars labeled with the given cluster number.
func membersOf(bars []bar, number int) []bar {
	var out []bar
	for _, b := range bars {
		if b.label == number {
			out = append(out, b)
		}
	}
	return out
}

// meanTheta averages the bar orientations of a cluster, in radians.
func meanTheta(members []bar) float64 {
	thetas := make([]float64, len(members))
	for i, m := range members {
		thetas[i] = m.box.Theta
	}
	return stat.Mean(thetas, nil)
}
