package geometry

import "math"

// NormalizeAngle maps an angle in degrees onto [-90, 90). Inputs that differ
// by a multiple of 180 degrees normalize to the same value, which makes the
// result usable as a line orientation (a bar and the same bar upside down are
// the same line).
func NormalizeAngle(deg float64) float64 {
	m := math.Mod(deg+90, 180)
	if m < 0 {
		m += 180
	}
	return m - 90
}

// Degrees converts radians to degrees.
func Degrees(rad float64) float64 { return rad * 180 / math.Pi }

// Radians converts degrees to radians.
func Radians(deg float64) float64 { return deg * math.Pi / 180 }
