package render

import (
	"testing"

	"github.com/lucasb-eyer/go-colorful"
	"github.com/viewfinderco/feeddial/internal/navigator"
)

var testBlue = colorful.Color{R: 0, G: 0, B: 1}

func solidVert(x, y float64) Vertex {
	return Vertex{Pos: navigator.Vec2{X: x, Y: y}, Color: testRed, Alpha: 1}
}

func countSetCells(c *Canvas) int {
	n := 0
	for _, row := range c.Cells() {
		for _, cell := range row {
			if cell.Set {
				n++
			}
		}
	}
	return n
}

func TestRasterizeSolidTriangle(t *testing.T) {
	c := NewCanvas(10, 10)
	var m Mesh
	m.AddTriangle(solidVert(0, 0), solidVert(19, 0), solidVert(0, 39))
	Rasterize(&m, c, nil)

	if got := countSetCells(c); got < 20 {
		t.Fatalf("solid triangle lit %d cells, want a filled interior", got)
	}
	corner := c.Cells()[0][0]
	if !corner.Set {
		t.Fatal("corner cell not set")
	}
	if corner.Color.R < 0.99 || corner.Color.G > 0.01 {
		t.Fatalf("interior color = %+v, want flat red", corner.Color)
	}
}

func TestRasterizeWindingIndependent(t *testing.T) {
	ccw := NewCanvas(10, 10)
	cw := NewCanvas(10, 10)
	var m Mesh
	m.AddTriangle(solidVert(0, 0), solidVert(19, 0), solidVert(0, 39))
	Rasterize(&m, ccw, nil)
	m.Reset()
	m.AddTriangle(solidVert(0, 0), solidVert(0, 39), solidVert(19, 0))
	Rasterize(&m, cw, nil)
	if countSetCells(ccw) != countSetCells(cw) {
		t.Fatalf("winding changed coverage: %d vs %d", countSetCells(ccw), countSetCells(cw))
	}
}

func TestRasterizeDegenerateTriangleSkipped(t *testing.T) {
	c := NewCanvas(10, 10)
	var m Mesh
	m.AddTriangle(solidVert(0, 0), solidVert(10, 10), solidVert(20, 20))
	Rasterize(&m, c, nil)
	if got := countSetCells(c); got != 0 {
		t.Fatalf("collinear triangle lit %d cells, want 0", got)
	}
}

func TestRasterizeTexturedSampling(t *testing.T) {
	tex := NewTexture(4, 4)
	tex.SetAt(1, 1, testBlue)

	uv := func(x, y float64) Vertex {
		return Vertex{Pos: navigator.Vec2{X: x, Y: y}, Alpha: 1, U: 0.375, V: 0.375, Textured: true}
	}
	c := NewCanvas(10, 10)
	var m Mesh
	m.AddTriangle(uv(0, 0), uv(19, 0), uv(0, 39))
	Rasterize(&m, c, tex)

	cell := c.Cells()[0][0]
	if !cell.Set {
		t.Fatal("textured triangle left the canvas empty")
	}
	if cell.Color.B < 0.99 {
		t.Fatalf("sampled color = %+v, want texel blue", cell.Color)
	}
}

func TestRasterizeSkipsUnsetTexels(t *testing.T) {
	tex := NewTexture(4, 4)
	tex.SetAt(1, 1, testBlue)

	// UV aimed at an unset texel: every dot sample misses.
	uv := func(x, y float64) Vertex {
		return Vertex{Pos: navigator.Vec2{X: x, Y: y}, Alpha: 1, U: 0.875, V: 0.875, Textured: true}
	}
	c := NewCanvas(10, 10)
	var m Mesh
	m.AddTriangle(uv(0, 0), uv(19, 0), uv(0, 39))
	Rasterize(&m, c, tex)
	if got := countSetCells(c); got != 0 {
		t.Fatalf("unset texels lit %d cells, want 0", got)
	}
}

func TestTextureSampleBounds(t *testing.T) {
	tex := NewTexture(4, 4)
	tex.SetAt(1, 1, testBlue)

	if got, ok := tex.Sample(0.375, 0.375); !ok || got != testBlue {
		t.Fatalf("in-range sample = (%+v, %v), want stored blue", got, ok)
	}
	for _, uv := range [][2]float64{{-0.1, 0.5}, {0.5, -0.1}, {1, 0.5}, {0.5, 1}} {
		if _, ok := tex.Sample(uv[0], uv[1]); ok {
			t.Fatalf("sample at (%v, %v) reported ok outside [0,1)", uv[0], uv[1])
		}
	}
	if _, ok := tex.Sample(0.9, 0.9); ok {
		t.Fatal("unset texel reported ok")
	}
	var nilTex *Texture
	if _, ok := nilTex.Sample(0.5, 0.5); ok {
		t.Fatal("nil texture reported ok")
	}
}
