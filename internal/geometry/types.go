// Package geometry provides the planar primitives the barcode locator is
// built on: points, axis-aligned boxes, convex hulls, minimum-area rotated
// rectangles and angle normalization.
package geometry

import (
	"image"
	"math"
)

// Point is a 2D coordinate in float space.
type Point struct {
	X float64
	Y float64
}

// FromImagePoint converts an integer pixel coordinate to a Point.
func FromImagePoint(p image.Point) Point {
	return Point{X: float64(p.X), Y: float64(p.Y)}
}

// Round returns the point with both coordinates rounded to the nearest integer.
func (p Point) Round() Point {
	return Point{X: math.Round(p.X), Y: math.Round(p.Y)}
}

// Box is an axis-aligned bounding box in float coordinates.
type Box struct {
	MinX float64
	MinY float64
	MaxX float64
	MaxY float64
}

// Width returns the box width.
func (b Box) Width() float64 { return b.MaxX - b.MinX }

// Height returns the box height.
func (b Box) Height() float64 { return b.MaxY - b.MinY }

// BoundingBox returns the axis-aligned bounding box for a set of points.
func BoundingBox(pts []Point) Box {
	if len(pts) == 0 {
		return Box{}
	}
	minX, minY := pts[0].X, pts[0].Y
	maxX, maxY := pts[0].X, pts[0].Y
	for _, p := range pts[1:] {
		if p.X < minX {
			minX = p.X
		}
		if p.Y < minY {
			minY = p.Y
		}
		if p.X > maxX {
			maxX = p.X
		}
		if p.Y > maxY {
			maxY = p.Y
		}
	}
	return Box{MinX: minX, MinY: minY, MaxX: maxX, MaxY: maxY}
}

// RotatedRect is a rectangle of arbitrary orientation. Angle is the
// orientation of the Width axis in degrees, normalized to [-90, 90).
// Corners are listed in order around the rectangle.
type RotatedRect struct {
	Center  Point
	Width   float64
	Height  float64
	Angle   float64
	Corners [4]Point
}
