package navigator

import "math"

// Shape selects the visual form of the control. It is chosen once per
// activation and immutable for the activation's lifetime.
type Shape uint8

const (
	ShapeDial Shape = iota
	ShapeTimeline
	ShapeArc
)

func (s Shape) String() string {
	switch s {
	case ShapeDial:
		return "dial"
	case ShapeTimeline:
		return "timeline"
	case ShapeArc:
		return "arc"
	}
	return "unknown"
}

// rocAlpha is fit so the rate-of-change profile covers 5% of its range at
// half the tracking width: (1/2)^alpha = 0.05.
var rocAlpha = math.Log(0.05) / math.Log(0.5)

const degeneratePullout = 1.5 // dots; below this an arc collapses to a line

// Mapper converts between scroll position, screen location and angle for
// the active shape. All methods are pure; per-frame geometry (the dial
// circle) is derived from the anchor each call.
type Mapper struct {
	Shape  Shape
	Width  float64 // tracking width in dots
	Height float64 // viewport height in dots

	rocMin float64
	rocMax float64
	beta   float64

	bisectIters int
	bisectTol   float64
}

// NewMapper fits the ROC profile roc(x) = rocMin + beta*x^alpha so that
// roc(0) = rocMin and roc(width) = rocMax. rocMin is the 1:1 mapping rate
// for a fully visible list, rocMax the rate needed to cover the whole
// scroll range in one viewport of drag.
func NewMapper(shape Shape, width, height, rocMin, rocMax float64, p Params) Mapper {
	m := Mapper{
		Shape:       shape,
		Width:       width,
		Height:      height,
		rocMin:      rocMin,
		rocMax:      rocMax,
		bisectIters: p.BisectIterations,
		bisectTol:   p.BisectTolerance,
	}
	if rocMax > rocMin && width > 0 {
		m.beta = (rocMax - rocMin) / math.Pow(width, rocAlpha)
	}
	return m
}

// Roc is the rate of change of scroll position per dot of vertical drag
// at pull-out distance x. Non-decreasing on [0, width].
func (m Mapper) Roc(x float64) float64 {
	x = clamp(x, 0, m.Width)
	return m.rocMin + m.beta*math.Pow(x, rocAlpha)
}

// rocIntegral is the antiderivative of Roc.
func (m Mapper) rocIntegral(x float64) float64 {
	x = clamp(x, 0, m.Width)
	return m.rocMin*x + m.beta*math.Pow(x, rocAlpha+1)/(rocAlpha+1)
}

// Pullout converts a screen point to its horizontal pull-out distance.
func (m Mapper) Pullout(p Vec2) float64 {
	return clamp(m.Width-p.X, 0, m.Width)
}

// DragDelta integrates Roc along the drag segment from one screen point
// to another, returning the signed scroll-position change. Horizontal
// movement alone never scrolls; diagonal movement integrates the profile
// along the implied line y = m*x + b.
func (m Mapper) DragDelta(from, to Vec2) float64 {
	x0, x1 := m.Pullout(from), m.Pullout(to)
	dy := to.Y - from.Y
	if math.Abs(dy) < 1e-9 {
		// Pure horizontal: pull-out changes, position does not.
		return 0
	}
	if math.Abs(x1-x0) < 1e-9 {
		// Pure vertical: the integral collapses to roc(x)*dy.
		return m.Roc(x0) * dy
	}
	slope := dy / (x1 - x0)
	return slope * (m.rocIntegral(x1) - m.rocIntegral(x0))
}

// VerticalDelta is the non-elastic (dial) form: only the vertical drag
// component scrolls, at the anchor's current rate.
func (m Mapper) VerticalDelta(pullout, dy float64) float64 {
	return m.Roc(pullout) * dy
}

// CircleAt solves the dial circle through the anchor and the two
// right-edge corners of the tracking rect. Collinear inputs (minimal
// pull-out, or the timeline shape) yield a degenerate circle that is
// treated as a straight vertical line.
func (m Mapper) CircleAt(anchor Vec2) Circle {
	if m.Shape == ShapeTimeline || m.Pullout(anchor) < degeneratePullout {
		return Circle{Degenerate: true}
	}
	p1 := anchor
	p2 := Vec2{m.Width, 0}
	p3 := Vec2{m.Width, m.Height}

	d := 2 * (p1.X*(p2.Y-p3.Y) + p2.X*(p3.Y-p1.Y) + p3.X*(p1.Y-p2.Y))
	if math.Abs(d) < 1e-6 {
		return Circle{Degenerate: true}
	}
	s1 := p1.X*p1.X + p1.Y*p1.Y
	s2 := p2.X*p2.X + p2.Y*p2.Y
	s3 := p3.X*p3.X + p3.Y*p3.Y
	cx := (s1*(p2.Y-p3.Y) + s2*(p3.Y-p1.Y) + s3*(p1.Y-p2.Y)) / d
	cy := (s1*(p3.X-p2.X) + s2*(p1.X-p3.X) + s3*(p2.X-p1.X)) / d
	c := Circle{Center: Vec2{cx, cy}, Radius: math.Hypot(p1.X-cx, p1.Y-cy)}
	c.Theta = m.angleOf(c, p2) - m.angleOf(c, p3)
	return c
}

// angleOf returns the angle of p around the circle center, wrapped to
// [0, 2pi) so the visible arc (which straddles pi) stays continuous.
func (m Mapper) angleOf(c Circle, p Vec2) float64 {
	a := math.Atan2(p.Y-c.Center.Y, p.X-c.Center.X)
	if a < 0 {
		a += 2 * math.Pi
	}
	return a
}

// arcBounds returns the wrapped angles of the bottom and top ends of the
// visible arc. The angle decreases from top to bottom of the screen.
func (m Mapper) arcBounds(c Circle) (bottom, top float64) {
	bottom = m.angleOf(c, Vec2{m.Width, m.Height})
	top = m.angleOf(c, Vec2{m.Width, 0})
	return bottom, top
}

// PositionForAngle is the forward map. For the dial it is linear in the
// angle; for the arc it integrates the ROC profile along the curve, which
// has no closed form once elastic compression is in effect.
func (m Mapper) PositionForAngle(c Circle, anchor Vec2, curPos, phi float64) float64 {
	if c.Degenerate {
		return curPos
	}
	phiA := m.angleOf(c, anchor)
	if m.Shape == ShapeDial {
		return curPos - (phi-phiA)*c.Radius*m.Roc(m.Pullout(anchor))
	}
	return curPos + m.arcIntegral(c, phiA, phi)
}

// arcIntegral evaluates ∫ roc(x(u)) * r*cos(u) du from a to b by
// composite Simpson's rule. r*cos(u) is dy/du on the circle, so this is
// the scroll-position change along the arc between the two angles.
func (m Mapper) arcIntegral(c Circle, a, b float64) float64 {
	const steps = 16 // even
	h := (b - a) / steps
	if h == 0 {
		return 0
	}
	f := func(u float64) float64 {
		x := m.Width - (c.Center.X + c.Radius*math.Cos(u))
		return m.Roc(x) * c.Radius * math.Cos(u)
	}
	sum := f(a) + f(b)
	for i := 1; i < steps; i++ {
		u := a + float64(i)*h
		if i%2 == 1 {
			sum += 4 * f(u)
		} else {
			sum += 2 * f(u)
		}
	}
	return sum * h / 3
}

// AngleForPosition is the inverse map: closed-form for the dial, bounded
// bisection for the arc. On non-convergence it returns the last computed
// angle rather than an error; a slightly misplaced label beats a crash.
func (m Mapper) AngleForPosition(c Circle, anchor Vec2, curPos, pos float64) float64 {
	if c.Degenerate {
		return 0
	}
	phiA := m.angleOf(c, anchor)
	if m.Shape == ShapeDial {
		roc := m.Roc(m.Pullout(anchor))
		if roc*c.Radius < 1e-9 {
			return phiA
		}
		return phiA - (pos-curPos)/(c.Radius*roc)
	}

	// Position decreases as the angle increases (moving up screen), so
	// bisect the decreasing function over the visible arc.
	lo, hi := m.arcBounds(c) // lo=bottom (max position), hi=top (min position)
	mid := phiA
	for i := 0; i < m.bisectIters; i++ {
		mid = (lo + hi) / 2
		p := m.PositionForAngle(c, anchor, curPos, mid)
		if math.Abs(hi-lo)*c.Radius < m.bisectTol {
			break
		}
		if p > pos {
			lo = mid
		} else {
			hi = mid
		}
	}
	return mid
}

// ScreenForPosition places a scroll position on screen for the current
// anchor. Degenerate shapes map position directly to a vertical offset at
// the anchor's fixed horizontal coordinate.
func (m Mapper) ScreenForPosition(c Circle, anchor Vec2, curPos, pos float64) Vec2 {
	if c.Degenerate {
		roc := m.Roc(m.Pullout(anchor))
		if roc < 1e-9 {
			roc = 1e-9
		}
		return Vec2{anchor.X, anchor.Y + (pos-curPos)/roc}
	}
	phi := m.AngleForPosition(c, anchor, curPos, pos)
	return Vec2{
		c.Center.X + c.Radius*math.Cos(phi),
		c.Center.Y + c.Radius*math.Sin(phi),
	}
}

// VisibleInterval returns the scroll positions mapped to the top and
// bottom screen edges for the current geometry.
func (m Mapper) VisibleInterval(c Circle, anchor Vec2, curPos float64) (lo, hi float64) {
	if c.Degenerate {
		roc := m.Roc(m.Pullout(anchor))
		return curPos - anchor.Y*roc, curPos + (m.Height-anchor.Y)*roc
	}
	bottom, top := m.arcBounds(c)
	lo = m.PositionForAngle(c, anchor, curPos, top)
	hi = m.PositionForAngle(c, anchor, curPos, bottom)
	if lo > hi {
		lo, hi = hi, lo
	}
	return lo, hi
}
