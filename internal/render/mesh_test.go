package render

import (
	"math"
	"testing"

	"github.com/viewfinderco/feeddial/internal/navigator"
)

func TestAALineQuadCount(t *testing.T) {
	var m Mesh
	m.AALine(navigator.Vec2{X: 0, Y: 0}, navigator.Vec2{X: 10, Y: 0}, 2, 0.7, testRed, 1)
	// One core quad plus two fringes, two triangles each.
	if got := m.TriangleCount(); got != 6 {
		t.Fatalf("triangle count = %d, want 6", got)
	}
}

func TestAALineZeroLengthIgnored(t *testing.T) {
	var m Mesh
	m.AALine(navigator.Vec2{X: 5, Y: 5}, navigator.Vec2{X: 5, Y: 5}, 2, 0.7, testRed, 1)
	if got := m.TriangleCount(); got != 0 {
		t.Fatalf("triangle count = %d, want 0 for a zero-length line", got)
	}
}

func TestArcBandSegmentCount(t *testing.T) {
	var m Mesh
	c := navigator.Circle{Center: navigator.Vec2{X: 0, Y: 0}, Radius: 40}
	m.ArcBand(c, 0, math.Pi/2, 30, 40, testRed, testRed, 1, 1)
	n := arcSegments(40, math.Pi/2)
	if got := m.TriangleCount(); got != n*2 {
		t.Fatalf("triangle count = %d, want %d", got, n*2)
	}
}

func TestArcSegmentsBounded(t *testing.T) {
	if got := arcSegments(1, 0.01); got != 4 {
		t.Fatalf("minimum segments = %d, want 4", got)
	}
	if got := arcSegments(1000, 2*math.Pi); got != 96 {
		t.Fatalf("maximum segments = %d, want 96", got)
	}
}

func TestIntersectLinesParallelFallsBack(t *testing.T) {
	a0 := navigator.Vec2{X: 0, Y: 0}
	got := intersectLines(a0, navigator.Vec2{X: 10, Y: 0}, navigator.Vec2{X: 0, Y: 5}, navigator.Vec2{X: 10, Y: 5})
	if got != a0 {
		t.Fatalf("parallel intersection = %v, want fallback %v", got, a0)
	}
}

func TestIntersectLinesCrossing(t *testing.T) {
	got := intersectLines(
		navigator.Vec2{X: 0, Y: 0}, navigator.Vec2{X: 10, Y: 10},
		navigator.Vec2{X: 0, Y: 10}, navigator.Vec2{X: 10, Y: 0},
	)
	if math.Abs(got.X-5) > 1e-9 || math.Abs(got.Y-5) > 1e-9 {
		t.Fatalf("intersection = %v, want (5, 5)", got)
	}
}

func TestOffsetPolylineStraight(t *testing.T) {
	pts := []navigator.Vec2{{X: 0, Y: 0}, {X: 10, Y: 0}, {X: 20, Y: 0}}
	out := offsetPolyline(pts, 2)
	for i, p := range out {
		if math.Abs(p.Y-2) > 1e-9 {
			t.Fatalf("offset point %d = %v, want y=2", i, p)
		}
	}
}

func TestOffsetPolylineMitersCorner(t *testing.T) {
	// Right angle: the mitered inner corner lands at the intersection of
	// the two offset edges.
	pts := []navigator.Vec2{{X: 0, Y: 0}, {X: 10, Y: 0}, {X: 10, Y: 10}}
	out := offsetPolyline(pts, -1)
	want := navigator.Vec2{X: 11, Y: -1}
	if out[1].Sub(want).Len() > 1e-9 {
		t.Fatalf("mitered corner = %v, want %v", out[1], want)
	}
}

func TestAAPolylineTriangleCount(t *testing.T) {
	var m Mesh
	pts := []navigator.Vec2{{X: 0, Y: 0}, {X: 10, Y: 2}, {X: 20, Y: 0}, {X: 30, Y: 4}}
	m.AAPolyline(pts, 2.2, 0.7, testRed, 1)
	// Three segments, three quads each.
	if got := m.TriangleCount(); got != 18 {
		t.Fatalf("triangle count = %d, want 18", got)
	}
}

func TestTickTriangle(t *testing.T) {
	var m Mesh
	m.TickTriangle(navigator.Vec2{X: 5, Y: 5}, navigator.Vec2{X: 1, Y: 0}, 4, 2, testRed, 1)
	if got := m.TriangleCount(); got != 1 {
		t.Fatalf("triangle count = %d, want 1", got)
	}
	m.Reset()
	m.TickTriangle(navigator.Vec2{X: 5, Y: 5}, navigator.Vec2{}, 4, 2, testRed, 1)
	if got := m.TriangleCount(); got != 0 {
		t.Fatalf("zero-direction tick added %d triangles", got)
	}
}

func TestTexturedBandCarriesUV(t *testing.T) {
	var m Mesh
	m.TexturedVerticalBand(0, 4, 0, 8, 0.25, 0.75, 1)
	if len(m.verts) != 4 {
		t.Fatalf("vertex count = %d, want 4", len(m.verts))
	}
	for _, v := range m.verts {
		if !v.Textured {
			t.Fatal("vertex not marked textured")
		}
		if v.V < 0.25 || v.V > 0.75 {
			t.Fatalf("vertex V = %v outside [0.25, 0.75]", v.V)
		}
	}
}
