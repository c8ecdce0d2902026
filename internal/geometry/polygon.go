package geometry

import (
	"math"
	"sort"
)

// ConvexHull computes the convex hull of a set of points using the monotone
// chain algorithm. The hull is returned in CCW order without duplicating the
// first point at the end.
func ConvexHull(pts []Point) []Point {
	if len(pts) <= 1 {
		return append([]Point(nil), pts...)
	}
	p := make([]Point, len(pts))
	copy(p, pts)
	sort.Slice(p, func(i, j int) bool {
		if p[i].X != p[j].X {
			return p[i].X < p[j].X
		}
		return p[i].Y < p[j].Y
	})
	p = dedupPoints(p)
	if len(p) <= 1 {
		return p
	}

	chain := func(seq []Point) []Point {
		out := make([]Point, 0, len(seq))
		for _, pt := range seq {
			for len(out) >= 2 && cross(out[len(out)-2], out[len(out)-1], pt) <= 0 {
				out = out[:len(out)-1]
			}
			out = append(out, pt)
		}
		return out
	}

	lower := chain(p)
	rev := make([]Point, len(p))
	for i, pt := range p {
		rev[len(p)-1-i] = pt
	}
	upper := chain(rev)

	hull := make([]Point, 0, len(lower)+len(upper)-2)
	hull = append(hull, lower[:len(lower)-1]...)
	hull = append(hull, upper[:len(upper)-1]...)
	return hull
}

func dedupPoints(sorted []Point) []Point {
	out := sorted[:0]
	for i, pt := range sorted {
		if i == 0 || pt != sorted[i-1] {
			out = append(out, pt)
		}
	}
	return out
}

func cross(o, a, b Point) float64 {
	return (a.X-o.X)*(b.Y-o.Y) - (a.Y-o.Y)*(b.X-o.X)
}

// MinAreaRect computes the minimum-area rotated rectangle enclosing the
// given point set using rotating calipers over the convex hull. Degenerate
// inputs (empty, single point, collinear points) produce a well-defined,
// possibly zero-size rectangle.
func MinAreaRect(pts []Point) RotatedRect {
	if len(pts) == 0 {
		return RotatedRect{}
	}
	hull := ConvexHull(pts)
	switch len(hull) {
	case 1:
		p := hull[0]
		return RotatedRect{Center: p, Corners: [4]Point{p, p, p, p}}
	case 2:
		return segmentRect(hull[0], hull[1])
	}

	type frame struct {
		ux, uy                 float64
		minS, maxS, minT, maxT float64
	}
	best := frame{}
	bestArea := math.Inf(1)
	for i := range hull {
		a := hull[i]
		b := hull[(i+1)%len(hull)]
		dx, dy := b.X-a.X, b.Y-a.Y
		l := math.Hypot(dx, dy)
		if l == 0 {
			continue
		}
		f := frame{ux: dx / l, uy: dy / l}
		f.minS, f.maxS = math.Inf(1), math.Inf(-1)
		f.minT, f.maxT = math.Inf(1), math.Inf(-1)
		// Project hull onto the edge direction and its perpendicular.
		for _, p := range hull {
			s := p.X*f.ux + p.Y*f.uy
			t := -p.X*f.uy + p.Y*f.ux
			f.minS = math.Min(f.minS, s)
			f.maxS = math.Max(f.maxS, s)
			f.minT = math.Min(f.minT, t)
			f.maxT = math.Max(f.maxT, t)
		}
		area := (f.maxS - f.minS) * (f.maxT - f.minT)
		if area < bestArea {
			bestArea = area
			best = f
		}
	}
	if math.IsInf(bestArea, 1) {
		p := hull[0]
		return RotatedRect{Center: p, Corners: [4]Point{p, p, p, p}}
	}
	return rectFromFrame(best.ux, best.uy, best.minS, best.maxS, best.minT, best.maxT)
}

// segmentRect builds the zero-height rectangle spanning a two-point hull.
func segmentRect(a, b Point) RotatedRect {
	dx, dy := b.X-a.X, b.Y-a.Y
	l := math.Hypot(dx, dy)
	if l == 0 {
		return RotatedRect{Center: a, Corners: [4]Point{a, a, a, a}}
	}
	ux, uy := dx/l, dy/l
	s0 := a.X*ux + a.Y*uy
	s1 := b.X*ux + b.Y*uy
	t := -a.X*uy + a.Y*ux
	if s1 < s0 {
		s0, s1 = s1, s0
	}
	return rectFromFrame(ux, uy, s0, s1, t, t)
}

// rectFromFrame reconstructs a RotatedRect from an orientation unit vector
// (ux, uy) and projection extents along it (s) and its perpendicular (t).
func rectFromFrame(ux, uy, minS, maxS, minT, maxT float64) RotatedRect {
	// Perpendicular axis: v = (-uy, ux).
	toWorld := func(s, t float64) Point {
		return Point{X: ux*s - uy*t, Y: uy*s + ux*t}
	}
	cs := (minS + maxS) / 2
	ct := (minT + maxT) / 2
	return RotatedRect{
		Center: toWorld(cs, ct),
		Width:  maxS - minS,
		Height: maxT - minT,
		Angle:  NormalizeAngle(Degrees(math.Atan2(uy, ux))),
		Corners: [4]Point{
			toWorld(minS, minT),
			toWorld(maxS, minT),
			toWorld(maxS, maxT),
			toWorld(minS, maxT),
		},
	}
}
