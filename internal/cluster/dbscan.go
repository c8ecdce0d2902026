// Package cluster implements density-based clustering (DBSCAN) over small
// sets of equal-length feature vectors.
package cluster

import "math"

// Noise is the label assigned to points that belong to no cluster.
const Noise = -1

// Params controls the density clustering run.
type Params struct {
	// Eps is the neighborhood radius (Euclidean distance in feature space).
	Eps float64
	// MinSamples is the minimum neighborhood size (including the point
	// itself) for a point to be a core point.
	MinSamples int
}

// DBSCAN assigns a cluster label to every input vector. Labels are dense
// integers starting at 0, assigned in the order clusters are first reached by
// the scan, so identical input always produces identical labels. Points in no
// sufficiently dense neighborhood get the Noise label.
//
// All vectors must have the same length; the function panics otherwise, since
// mixed dimensionality is a programming error, not an input condition.
func DBSCAN(vectors [][]float64, p Params) []int {
	n := len(vectors)
	labels := make([]int, n)
	for i := range labels {
		labels[i] = Noise
	}
	if n == 0 {
		return labels
	}

	dim := len(vectors[0])
	for _, v := range vectors {
		if len(v) != dim {
			panic("cluster: feature vectors differ in length")
		}
	}

	eps2 := p.Eps * p.Eps
	visited := make([]bool, n)
	next := 0

	for i := range n {
		if visited[i] {
			continue
		}
		visited[i] = true

		neighbors := regionQuery(vectors, i, eps2)
		if len(neighbors) < p.MinSamples {
			continue // stays noise unless claimed as a border point later
		}

		labels[i] = next
		expand(vectors, labels, visited, neighbors, next, eps2, p.MinSamples)
		next++
	}
	return labels
}

// expand grows cluster c from a core point's seed neighborhood, claiming
// border points and recursing (iteratively) into further core points.
func expand(vectors [][]float64, labels []int, visited []bool, seeds []int, c int, eps2 float64, minSamples int) {
	for k := 0; k < len(seeds); k++ {
		j := seeds[k]
		if labels[j] == Noise {
			labels[j] = c
		}
		if visited[j] {
			continue
		}
		visited[j] = true

		neighbors := regionQuery(vectors, j, eps2)
		if len(neighbors) >= minSamples {
			seeds = append(seeds, neighbors...)
		}
	}
}

// regionQuery returns the indices of all vectors within eps of vector i,
// including i itself.
func regionQuery(vectors [][]float64, i int, eps2 float64) []int {
	var out []int
	vi := vectors[i]
	for j, vj := range vectors {
		if dist2(vi, vj) <= eps2 {
			out = append(out, j)
		}
	}
	return out
}

func dist2(a, b []float64) float64 {
	var s float64
	for i := range a {
		d := a[i] - b[i]
		s += d * d
	}
	if math.IsNaN(s) {
		return math.Inf(1)
	}
	return s
}
