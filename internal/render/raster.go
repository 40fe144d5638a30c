package render

import (
	"math"

	"github.com/lucasb-eyer/go-colorful"
)

// Texture is an offscreen cell-color buffer of the rendered feed,
// sampled by the content pass. V runs down the content, U across it.
type Texture struct {
	W      int
	H      int
	Colors []colorful.Color
	Set    []bool
}

func NewTexture(w, h int) *Texture {
	return &Texture{W: w, H: h, Colors: make([]colorful.Color, w*h), Set: make([]bool, w*h)}
}

func (t *Texture) SetAt(x, y int, c colorful.Color) {
	if x < 0 || x >= t.W || y < 0 || y >= t.H {
		return
	}
	t.Colors[y*t.W+x] = c
	t.Set[y*t.W+x] = true
}

// Sample does nearest-neighbor lookup; out-of-range coordinates and
// unset texels report ok=false so the rasterizer can skip the dot.
func (t *Texture) Sample(u, v float64) (colorful.Color, bool) {
	if t == nil || t.W == 0 || t.H == 0 {
		return colorful.Color{}, false
	}
	if u < 0 || u >= 1 || v < 0 || v >= 1 {
		return colorful.Color{}, false
	}
	x := int(u * float64(t.W))
	y := int(v * float64(t.H))
	i := y*t.W + x
	if !t.Set[i] {
		return colorful.Color{}, false
	}
	return t.Colors[i], true
}

// Rasterize draws the mesh into the canvas in triangle order with
// barycentric attribute interpolation, one dot per sample.
func Rasterize(m *Mesh, c *Canvas, tex *Texture) {
	for i := 0; i+2 < len(m.indices); i += 3 {
		rasterTriangle(c, tex, m.verts[m.indices[i]], m.verts[m.indices[i+1]], m.verts[m.indices[i+2]])
	}
}

func rasterTriangle(c *Canvas, tex *Texture, v0, v1, v2 Vertex) {
	minX := int(math.Floor(math.Min(v0.Pos.X, math.Min(v1.Pos.X, v2.Pos.X))))
	maxX := int(math.Ceil(math.Max(v0.Pos.X, math.Max(v1.Pos.X, v2.Pos.X))))
	minY := int(math.Floor(math.Min(v0.Pos.Y, math.Min(v1.Pos.Y, v2.Pos.Y))))
	maxY := int(math.Ceil(math.Max(v0.Pos.Y, math.Max(v1.Pos.Y, v2.Pos.Y))))
	if minX < 0 {
		minX = 0
	}
	if minY < 0 {
		minY = 0
	}
	if maxX >= c.W {
		maxX = c.W - 1
	}
	if maxY >= c.H {
		maxY = c.H - 1
	}

	area := edge(v0.Pos.X, v0.Pos.Y, v1.Pos.X, v1.Pos.Y, v2.Pos.X, v2.Pos.Y)
	if math.Abs(area) < 1e-9 {
		return
	}
	inv := 1 / area

	for y := minY; y <= maxY; y++ {
		for x := minX; x <= maxX; x++ {
			px := float64(x) + 0.5
			py := float64(y) + 0.5
			w0 := edge(v1.Pos.X, v1.Pos.Y, v2.Pos.X, v2.Pos.Y, px, py) * inv
			w1 := edge(v2.Pos.X, v2.Pos.Y, v0.Pos.X, v0.Pos.Y, px, py) * inv
			w2 := edge(v0.Pos.X, v0.Pos.Y, v1.Pos.X, v1.Pos.Y, px, py) * inv
			if w0 < 0 || w1 < 0 || w2 < 0 {
				continue
			}
			alpha := w0*v0.Alpha + w1*v1.Alpha + w2*v2.Alpha
			if alpha <= 0 {
				continue
			}
			var col colorful.Color
			if v0.Textured {
				u := w0*v0.U + w1*v1.U + w2*v2.U
				v := w0*v0.V + w1*v1.V + w2*v2.V
				sampled, ok := tex.Sample(u, v)
				if !ok {
					continue
				}
				col = sampled
			} else {
				col = colorful.Color{
					R: w0*v0.Color.R + w1*v1.Color.R + w2*v2.Color.R,
					G: w0*v0.Color.G + w1*v1.Color.G + w2*v2.Color.G,
					B: w0*v0.Color.B + w1*v1.Color.B + w2*v2.Color.B,
				}
			}
			c.Plot(x, y, col, alpha)
		}
	}
}

// edge is the signed parallelogram area of (a,b,p); sign gives the side
// of the edge the point falls on.
func edge(ax, ay, bx, by, px, py float64) float64 {
	return (bx-ax)*(py-ay) - (by-ay)*(px-ax)
}
