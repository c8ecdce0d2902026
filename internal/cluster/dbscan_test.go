package cluster

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// blobAround generates n vectors spread tightly around a 2D center.
func blobAround(cx, cy float64, n int) [][]float64 {
	out := make([][]float64, 0, n)
	for i := range n {
		d := float64(i) * 0.01
		out = append(out, []float64{cx + d, cy - d})
	}
	return out
}

func TestDBSCAN_TwoGroupsPlusNoise(t *testing.T) {
	var vecs [][]float64
	vecs = append(vecs, blobAround(0, 0, 8)...)
	vecs = append(vecs, blobAround(10, 10, 8)...)
	vecs = append(vecs, []float64{5, 5}) // isolated

	labels := DBSCAN(vecs, Params{Eps: 0.5, MinSamples: 5})
	require.Len(t, labels, 17)

	first := labels[0]
	second := labels[8]
	assert.NotEqual(t, Noise, first)
	assert.NotEqual(t, Noise, second)
	assert.NotEqual(t, first, second)
	for i := range 8 {
		assert.Equal(t, first, labels[i])
		assert.Equal(t, second, labels[8+i])
	}
	assert.Equal(t, Noise, labels[16])
}

func TestDBSCAN_MinSamplesBoundary(t *testing.T) {
	// Exactly minSamples points in one dense clump form a cluster.
	vecs := blobAround(0, 0, 5)
	labels := DBSCAN(vecs, Params{Eps: 0.5, MinSamples: 5})
	for _, l := range labels {
		assert.Equal(t, 0, l)
	}

	// One fewer and everything is noise.
	vecs = blobAround(0, 0, 4)
	labels = DBSCAN(vecs, Params{Eps: 0.5, MinSamples: 5})
	for _, l := range labels {
		assert.Equal(t, Noise, l)
	}
}

func TestDBSCAN_Deterministic(t *testing.T) {
	var vecs [][]float64
	vecs = append(vecs, blobAround(0, 0, 6)...)
	vecs = append(vecs, blobAround(3, 3, 6)...)
	vecs = append(vecs, blobAround(-4, 2, 6)...)

	first := DBSCAN(vecs, Params{Eps: 0.5, MinSamples: 5})
	for range 10 {
		assert.Equal(t, first, DBSCAN(vecs, Params{Eps: 0.5, MinSamples: 5}))
	}
}

func TestDBSCAN_BorderPointJoinsCluster(t *testing.T) {
	// A dense clump plus one point just inside eps of a core point: the
	// border point is claimed by the cluster even though its own
	// neighborhood is sparse.
	vecs := blobAround(0, 0, 6)
	vecs = append(vecs, []float64{0.4, 0})

	labels := DBSCAN(vecs, Params{Eps: 0.5, MinSamples: 5})
	assert.Equal(t, labels[0], labels[6])
}

func TestDBSCAN_Empty(t *testing.T) {
	assert.Empty(t, DBSCAN(nil, Params{Eps: 0.1, MinSamples: 5}))
}

func TestDBSCAN_HigherDimensions(t *testing.T) {
	// 4-D vectors, as used by the bar clusterer.
	var vecs [][]float64
	for i := range 6 {
		d := float64(i) * 0.005
		vecs = append(vecs, []float64{0.1 + d, 0.5, 0.2, 0.3 + d})
	}
	vecs = append(vecs, []float64{2, 2, 2, 2})

	labels := DBSCAN(vecs, Params{Eps: 0.1, MinSamples: 5})
	for i := range 6 {
		assert.Equal(t, 0, labels[i])
	}
	assert.Equal(t, Noise, labels[6])
}
