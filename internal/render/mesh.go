package render

import (
	"math"

	"github.com/lucasb-eyer/go-colorful"
	"github.com/viewfinderco/feeddial/internal/navigator"
)

// Vertex carries interpolated draw attributes. Textured vertices sample
// the content texture through UV instead of using the flat color.
type Vertex struct {
	Pos      navigator.Vec2
	Color    colorful.Color
	Alpha    float64
	U        float64
	V        float64
	Textured bool
}

// Mesh is a triangle list fed to the rasterizer. Triangles draw in
// insertion order, so callers append back-to-front.
type Mesh struct {
	verts   []Vertex
	indices []uint16
}

func (m *Mesh) Reset() {
	m.verts = m.verts[:0]
	m.indices = m.indices[:0]
}

func (m *Mesh) AddTriangle(a, b, c Vertex) {
	i := uint16(len(m.verts))
	m.verts = append(m.verts, a, b, c)
	m.indices = append(m.indices, i, i+1, i+2)
}

// AddQuad adds a quad as two triangles sharing the a-c diagonal through
// the index buffer; vertices wind a-b-c-d.
func (m *Mesh) AddQuad(a, b, c, d Vertex) {
	i := uint16(len(m.verts))
	m.verts = append(m.verts, a, b, c, d)
	m.indices = append(m.indices, i, i+1, i+2, i, i+2, i+3)
}

func (m *Mesh) TriangleCount() int { return len(m.indices) / 3 }

// arcSegments picks a segment count for a given angular span so chords
// stay under roughly one dot of error.
func arcSegments(radius, span float64) int {
	n := int(math.Ceil(math.Abs(span) * radius / 2))
	if n < 4 {
		n = 4
	}
	if n > 96 {
		n = 96
	}
	return n
}

func arcPoint(c navigator.Circle, phi, radius float64) navigator.Vec2 {
	return navigator.Vec2{
		X: c.Center.X + radius*math.Cos(phi),
		Y: c.Center.Y + radius*math.Sin(phi),
	}
}

// ArcBand tessellates a concentric band between two radii into quads.
// Color and alpha interpolate radially from the inner to the outer edge.
func (m *Mesh) ArcBand(c navigator.Circle, phi0, phi1, r0, r1 float64, col0, col1 colorful.Color, a0, a1 float64) {
	n := arcSegments(r1, phi1-phi0)
	for i := 0; i < n; i++ {
		u0 := phi0 + (phi1-phi0)*float64(i)/float64(n)
		u1 := phi0 + (phi1-phi0)*float64(i+1)/float64(n)
		m.AddQuad(
			Vertex{Pos: arcPoint(c, u0, r0), Color: col0, Alpha: a0},
			Vertex{Pos: arcPoint(c, u1, r0), Color: col0, Alpha: a0},
			Vertex{Pos: arcPoint(c, u1, r1), Color: col1, Alpha: a1},
			Vertex{Pos: arcPoint(c, u0, r1), Color: col1, Alpha: a1},
		)
	}
}

// TexturedArcBand maps V along the angular sweep and U across the band
// width, letting the rasterizer sample the content preview.
func (m *Mesh) TexturedArcBand(c navigator.Circle, phi0, phi1, r0, r1, v0, v1 float64, alpha float64) {
	n := arcSegments(r1, phi1-phi0)
	for i := 0; i < n; i++ {
		t0 := float64(i) / float64(n)
		t1 := float64(i+1) / float64(n)
		u0 := phi0 + (phi1-phi0)*t0
		u1 := phi0 + (phi1-phi0)*t1
		va := v0 + (v1-v0)*t0
		vb := v0 + (v1-v0)*t1
		m.AddQuad(
			Vertex{Pos: arcPoint(c, u0, r0), Alpha: alpha, U: 0, V: va, Textured: true},
			Vertex{Pos: arcPoint(c, u1, r0), Alpha: alpha, U: 0, V: vb, Textured: true},
			Vertex{Pos: arcPoint(c, u1, r1), Alpha: alpha, U: 1, V: vb, Textured: true},
			Vertex{Pos: arcPoint(c, u0, r1), Alpha: alpha, U: 1, V: va, Textured: true},
		)
	}
}

// VerticalBand is the degenerate-shape counterpart of ArcBand.
func (m *Mesh) VerticalBand(x0, x1, y0, y1 float64, col0, col1 colorful.Color, a0, a1 float64) {
	m.AddQuad(
		Vertex{Pos: navigator.Vec2{X: x0, Y: y0}, Color: col0, Alpha: a0},
		Vertex{Pos: navigator.Vec2{X: x1, Y: y0}, Color: col1, Alpha: a1},
		Vertex{Pos: navigator.Vec2{X: x1, Y: y1}, Color: col1, Alpha: a1},
		Vertex{Pos: navigator.Vec2{X: x0, Y: y1}, Color: col0, Alpha: a0},
	)
}

// TexturedVerticalBand maps V down the band for the timeline preview.
func (m *Mesh) TexturedVerticalBand(x0, x1, y0, y1, v0, v1, alpha float64) {
	m.AddQuad(
		Vertex{Pos: navigator.Vec2{X: x0, Y: y0}, Alpha: alpha, U: 0, V: v0, Textured: true},
		Vertex{Pos: navigator.Vec2{X: x1, Y: y0}, Alpha: alpha, U: 1, V: v0, Textured: true},
		Vertex{Pos: navigator.Vec2{X: x1, Y: y1}, Alpha: alpha, U: 1, V: v1, Textured: true},
		Vertex{Pos: navigator.Vec2{X: x0, Y: y1}, Alpha: alpha, U: 0, V: v1, Textured: true},
	)
}

// AALine draws an anti-aliased line as three parallel quads: an opaque
// core of half-width w/2 - filterRadius and two fringes fading to
// transparent at w/2. The fringes form the AA edge; the over-blending
// canvas keeps them from double-darkening.
func (m *Mesh) AALine(p0, p1 navigator.Vec2, width, filterRadius float64, col colorful.Color, alpha float64) {
	d := p1.Sub(p0)
	l := d.Len()
	if l < 1e-9 {
		return
	}
	// Screen-space normal offset.
	n := navigator.Vec2{X: -d.Y / l, Y: d.X / l}
	half := width / 2
	core := half - filterRadius
	if core < 0 {
		core = 0
	}

	inA := p0.Add(n.Scale(core))
	inB := p1.Add(n.Scale(core))
	inC := p1.Sub(n.Scale(core))
	inD := p0.Sub(n.Scale(core))
	outA := p0.Add(n.Scale(half))
	outB := p1.Add(n.Scale(half))
	outC := p1.Sub(n.Scale(half))
	outD := p0.Sub(n.Scale(half))

	m.AddQuad(
		Vertex{Pos: inA, Color: col, Alpha: alpha},
		Vertex{Pos: inB, Color: col, Alpha: alpha},
		Vertex{Pos: inC, Color: col, Alpha: alpha},
		Vertex{Pos: inD, Color: col, Alpha: alpha},
	)
	m.AddQuad(
		Vertex{Pos: inA, Color: col, Alpha: alpha},
		Vertex{Pos: inB, Color: col, Alpha: alpha},
		Vertex{Pos: outB, Color: col, Alpha: 0},
		Vertex{Pos: outA, Color: col, Alpha: 0},
	)
	m.AddQuad(
		Vertex{Pos: inD, Color: col, Alpha: alpha},
		Vertex{Pos: inC, Color: col, Alpha: alpha},
		Vertex{Pos: outC, Color: col, Alpha: 0},
		Vertex{Pos: outD, Color: col, Alpha: 0},
	)
}

// TickTriangle draws a small filled pointer at p aimed along dir.
func (m *Mesh) TickTriangle(p, dir navigator.Vec2, length, width float64, col colorful.Color, alpha float64) {
	d := dir.Norm()
	if d.Len() < 1e-9 {
		return
	}
	n := navigator.Vec2{X: -d.Y, Y: d.X}
	tip := p.Add(d.Scale(length))
	m.AddTriangle(
		Vertex{Pos: p.Add(n.Scale(width / 2)), Color: col, Alpha: alpha},
		Vertex{Pos: p.Sub(n.Scale(width / 2)), Color: col, Alpha: alpha},
		Vertex{Pos: tip, Color: col, Alpha: 0},
	)
}

// intersectLines returns the intersection of lines (a0,a1) and (b0,b1).
// A near-zero denominator (near-parallel lines) falls back to the first
// line's starting point rather than failing.
func intersectLines(a0, a1, b0, b1 navigator.Vec2) navigator.Vec2 {
	da := a1.Sub(a0)
	db := b1.Sub(b0)
	denom := da.X*db.Y - da.Y*db.X
	if math.Abs(denom) < 1e-6 {
		return a0
	}
	t := ((b0.X-a0.X)*db.Y - (b0.Y-a0.Y)*db.X) / denom
	return a0.Add(da.Scale(t))
}

func segNormal(d navigator.Vec2) navigator.Vec2 {
	n := d.Norm()
	return navigator.Vec2{X: -n.Y, Y: n.X}
}

// offsetPolyline shifts a polyline sideways by d, mitering interior
// corners by intersecting the adjacent offset edges. Near-collinear
// corners (the usual case for arc chords) hit the intersection guard
// and keep the unmitered offset point.
func offsetPolyline(pts []navigator.Vec2, d float64) []navigator.Vec2 {
	out := make([]navigator.Vec2, len(pts))
	for i := range pts {
		switch {
		case i == 0:
			out[i] = pts[0].Add(segNormal(pts[1].Sub(pts[0])).Scale(d))
		case i == len(pts)-1:
			out[i] = pts[i].Add(segNormal(pts[i].Sub(pts[i-1])).Scale(d))
		default:
			n0 := segNormal(pts[i].Sub(pts[i-1]))
			n1 := segNormal(pts[i+1].Sub(pts[i]))
			out[i] = intersectLines(
				pts[i].Add(n0.Scale(d)), pts[i-1].Add(n0.Scale(d)),
				pts[i].Add(n1.Scale(d)), pts[i+1].Add(n1.Scale(d)),
			)
		}
	}
	return out
}

// AAPolyline draws a connected anti-aliased stroke with the same
// core/fringe technique as AALine, mitering the core at the joins.
func (m *Mesh) AAPolyline(pts []navigator.Vec2, width, filterRadius float64, col colorful.Color, alpha float64) {
	if len(pts) < 2 {
		return
	}
	half := width / 2
	core := half - filterRadius
	if core < 0 {
		core = 0
	}
	cp := offsetPolyline(pts, core)
	cn := offsetPolyline(pts, -core)
	op := offsetPolyline(pts, half)
	on := offsetPolyline(pts, -half)
	for i := 0; i+1 < len(pts); i++ {
		m.AddQuad(
			Vertex{Pos: cp[i], Color: col, Alpha: alpha},
			Vertex{Pos: cp[i+1], Color: col, Alpha: alpha},
			Vertex{Pos: cn[i+1], Color: col, Alpha: alpha},
			Vertex{Pos: cn[i], Color: col, Alpha: alpha},
		)
		m.AddQuad(
			Vertex{Pos: cp[i], Color: col, Alpha: alpha},
			Vertex{Pos: cp[i+1], Color: col, Alpha: alpha},
			Vertex{Pos: op[i+1], Color: col, Alpha: 0},
			Vertex{Pos: op[i], Color: col, Alpha: 0},
		)
		m.AddQuad(
			Vertex{Pos: cn[i], Color: col, Alpha: alpha},
			Vertex{Pos: cn[i+1], Color: col, Alpha: alpha},
			Vertex{Pos: on[i+1], Color: col, Alpha: 0},
			Vertex{Pos: on[i], Color: col, Alpha: 0},
		)
	}
}
