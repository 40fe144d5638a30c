package navigator

import "math"

// Vec2 is a 2-D point or vector in dot coordinates (x right, y down).
type Vec2 struct {
	X float64
	Y float64
}

func (v Vec2) Add(o Vec2) Vec2      { return Vec2{v.X + o.X, v.Y + o.Y} }
func (v Vec2) Sub(o Vec2) Vec2      { return Vec2{v.X - o.X, v.Y - o.Y} }
func (v Vec2) Scale(s float64) Vec2 { return Vec2{v.X * s, v.Y * s} }
func (v Vec2) Dot(o Vec2) float64   { return v.X*o.X + v.Y*o.Y }

func (v Vec2) Len() float64 {
	return math.Hypot(v.X, v.Y)
}

// Norm returns the unit vector, or the zero vector for near-zero input.
func (v Vec2) Norm() Vec2 {
	l := v.Len()
	if l < 1e-9 {
		return Vec2{}
	}
	return Vec2{v.X / l, v.Y / l}
}

func (v Vec2) IsFinite() bool {
	return !math.IsNaN(v.X) && !math.IsInf(v.X, 0) &&
		!math.IsNaN(v.Y) && !math.IsInf(v.Y, 0)
}

// Rect is an axis-aligned rectangle in dot coordinates.
type Rect struct {
	X float64
	Y float64
	W float64
	H float64
}

func (r Rect) MaxY() float64 { return r.Y + r.H }

func (r Rect) Contains(p Vec2) bool {
	return p.X >= r.X && p.X < r.X+r.W && p.Y >= r.Y && p.Y < r.Y+r.H
}

// Circle is the dial geometry derived per frame from the anchor location.
// Degenerate means the three defining points were collinear and the shape
// must be treated as a straight vertical line.
type Circle struct {
	Center     Vec2
	Radius     float64
	Theta      float64 // angular extent of a full vertical traversal
	Degenerate bool
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func clamp01(v float64) float64 { return clamp(v, 0, 1) }
