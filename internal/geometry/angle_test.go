package geometry

import (
	"math"
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
	"github.com/stretchr/testify/assert"
)

func TestNormalizeAngle(t *testing.T) {
	tests := []struct {
		name string
		in   float64
		want float64
	}{
		{"zero", 0, 0},
		{"positive in range", 45, 45},
		{"negative in range", -45, -45},
		{"lower bound", -90, -90},
		{"upper bound wraps", 90, -90},
		{"half turn", 180, 0},
		{"negative half turn", -180, 0},
		{"full turn", 360, 0},
		{"beyond upper", 135, -45},
		{"beyond lower", -135, 45},
		{"large positive", 900, 0},
		{"large negative", -991, 89},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.want, NormalizeAngle(tt.in), 1e-9)
		})
	}
}

func TestNormalizeAngle_Range(t *testing.T) {
	properties := gopter.NewProperties(nil)

	properties.Property("normalized angle lies in [-90, 90)", prop.ForAll(
		func(deg float64) bool {
			n := NormalizeAngle(deg)
			return n >= -90 && n < 90
		},
		gen.Float64Range(-1e6, 1e6),
	))

	properties.TestingRun(t)
}

func TestNormalizeAngle_Mod180Invariant(t *testing.T) {
	properties := gopter.NewProperties(nil)

	properties.Property("normalization is invariant modulo 180 degrees", prop.ForAll(
		func(deg float64, k int8) bool {
			a := NormalizeAngle(deg)
			b := NormalizeAngle(deg + 180*float64(k))
			return math.Abs(a-b) < 1e-6
		},
		gen.Float64Range(-1e4, 1e4),
		gen.Int8(),
	))

	properties.TestingRun(t)
}

func TestDegreesRadiansRoundTrip(t *testing.T) {
	assert.InDelta(t, 180.0, Degrees(math.Pi), 1e-12)
	assert.InDelta(t, math.Pi/4, Radians(45), 1e-12)
	assert.InDelta(t, 33.0, Degrees(Radians(33)), 1e-12)
}
