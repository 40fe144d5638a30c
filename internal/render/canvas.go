package render

import (
	"strings"

	"github.com/lucasb-eyer/go-colorful"
)

// A cell covers 2x4 braille dots, giving 2x horizontal and 4x vertical
// resolution over the character grid.
const (
	DotsPerCellX = 2
	DotsPerCellY = 4
)

// Braille dot positions (col, row) → bit offset:
//
//	(0,0)=0  (1,0)=3
//	(0,1)=1  (1,1)=4
//	(0,2)=2  (1,2)=5
//	(0,3)=6  (1,3)=7
var brailleBits = [2][4]uint{
	{0, 1, 2, 6},
	{3, 4, 5, 7},
}

// Cell is one finished character cell of the widget overlay.
type Cell struct {
	Ch    rune
	Color colorful.Color
	Alpha float64
	Set   bool
}

// Canvas is a dot-resolution draw target with per-dot color and
// coverage. Draws composite back-to-front with "over" blending, which
// keeps the AA fringe technique from double-darkening edges.
type Canvas struct {
	Cols int
	Rows int
	W    int // dots
	H    int // dots

	cov []float64
	r   []float64
	g   []float64
	b   []float64

	glyphs map[int]glyphStamp
}

type glyphStamp struct {
	ch    rune
	color colorful.Color
	alpha float64
}

func NewCanvas(cols, rows int) *Canvas {
	w, h := cols*DotsPerCellX, rows*DotsPerCellY
	return &Canvas{
		Cols:   cols,
		Rows:   rows,
		W:      w,
		H:      h,
		cov:    make([]float64, w*h),
		r:      make([]float64, w*h),
		g:      make([]float64, w*h),
		b:      make([]float64, w*h),
		glyphs: make(map[int]glyphStamp),
	}
}

func (c *Canvas) Clear() {
	for i := range c.cov {
		c.cov[i] = 0
		c.r[i] = 0
		c.g[i] = 0
		c.b[i] = 0
	}
	c.glyphs = make(map[int]glyphStamp)
}

// Plot composites one dot over the existing content.
func (c *Canvas) Plot(x, y int, col colorful.Color, alpha float64) {
	if x < 0 || x >= c.W || y < 0 || y >= c.H {
		return
	}
	if alpha <= 0 {
		return
	}
	if alpha > 1 {
		alpha = 1
	}
	i := y*c.W + x
	inv := 1 - alpha
	c.r[i] = col.R*alpha + c.r[i]*inv
	c.g[i] = col.G*alpha + c.g[i]*inv
	c.b[i] = col.B*alpha + c.b[i]*inv
	c.cov[i] = alpha + c.cov[i]*inv
}

// Stamp overrides the finished cell at (col, row) with a glyph; glyphs
// always win over dot patterns since text must stay legible.
func (c *Canvas) Stamp(col, row int, ch rune, color colorful.Color, alpha float64) {
	if col < 0 || col >= c.Cols || row < 0 || row >= c.Rows {
		return
	}
	if alpha <= 0 {
		return
	}
	c.glyphs[row*c.Cols+col] = glyphStamp{ch: ch, color: color, alpha: alpha}
}

const coverageThreshold = 0.12

// Cells folds the dot grid into character cells: a braille pattern from
// the dots above the coverage threshold, colored by the coverage-weighted
// average of the lit dots.
func (c *Canvas) Cells() [][]Cell {
	out := make([][]Cell, c.Rows)
	for row := 0; row < c.Rows; row++ {
		out[row] = make([]Cell, c.Cols)
		for col := 0; col < c.Cols; col++ {
			if g, ok := c.glyphs[row*c.Cols+col]; ok {
				out[row][col] = Cell{Ch: g.ch, Color: g.color, Alpha: g.alpha, Set: true}
				continue
			}
			var pattern uint
			var sumCov, sr, sg, sb float64
			for dx := 0; dx < DotsPerCellX; dx++ {
				for dy := 0; dy < DotsPerCellY; dy++ {
					x := col*DotsPerCellX + dx
					y := row*DotsPerCellY + dy
					i := y*c.W + x
					if c.cov[i] > coverageThreshold {
						pattern |= 1 << brailleBits[dx][dy]
						sumCov += c.cov[i]
						sr += c.r[i] * c.cov[i]
						sg += c.g[i] * c.cov[i]
						sb += c.b[i] * c.cov[i]
					}
				}
			}
			if pattern == 0 {
				continue
			}
			out[row][col] = Cell{
				Ch:    rune(0x2800 + pattern),
				Color: colorful.Color{R: sr / sumCov, G: sg / sumCov, B: sb / sumCov},
				Alpha: sumCov / (DotsPerCellX * DotsPerCellY),
				Set:   true,
			}
		}
	}
	return out
}

// RenderCells renders one finished cell row to a string, using spaces
// for unset cells. The host composites these over its own text columns.
func RenderCells(cells []Cell) string {
	var sb strings.Builder
	state := newANSIState()
	for _, cell := range cells {
		if !cell.Set {
			state.reset(&sb)
			sb.WriteByte(' ')
			continue
		}
		state.set(&sb, cell.Color)
		sb.WriteRune(cell.Ch)
	}
	state.reset(&sb)
	return sb.String()
}

// String renders the canvas standalone (used by tests and the demo
// screenshot path); the host UI composites Cells directly instead.
func (c *Canvas) String() string {
	cells := c.Cells()
	var sb strings.Builder
	state := newANSIState()
	for row, line := range cells {
		if row > 0 {
			sb.WriteByte('\n')
		}
		for _, cell := range line {
			if !cell.Set {
				sb.WriteByte(' ')
				continue
			}
			state.set(&sb, cell.Color)
			sb.WriteRune(cell.Ch)
		}
		state.reset(&sb)
	}
	return sb.String()
}
