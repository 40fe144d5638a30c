package render

import (
	"strings"
	"testing"

	"github.com/lucasb-eyer/go-colorful"
)

var testRed = colorful.Color{R: 1, G: 0, B: 0}

func TestPlotLightsBrailleDot(t *testing.T) {
	c := NewCanvas(4, 2)
	c.Plot(0, 0, testRed, 1)
	cells := c.Cells()
	if !cells[0][0].Set {
		t.Fatal("cell (0,0) not set after plotting its top-left dot")
	}
	// Dot (0,0) is braille bit 0.
	if cells[0][0].Ch != rune(0x2801) {
		t.Fatalf("glyph = %q, want %q", cells[0][0].Ch, rune(0x2801))
	}
	if cells[0][1].Set {
		t.Fatal("neighboring cell set without any coverage")
	}
}

func TestPlotBelowThresholdInvisible(t *testing.T) {
	c := NewCanvas(2, 2)
	c.Plot(0, 0, testRed, 0.05)
	if c.Cells()[0][0].Set {
		t.Fatal("sub-threshold coverage produced a visible cell")
	}
}

func TestPlotOutOfBoundsIgnored(t *testing.T) {
	c := NewCanvas(2, 2)
	c.Plot(-1, 0, testRed, 1)
	c.Plot(0, -1, testRed, 1)
	c.Plot(c.W, 0, testRed, 1)
	c.Plot(0, c.H, testRed, 1)
	for _, row := range c.Cells() {
		for _, cell := range row {
			if cell.Set {
				t.Fatal("out-of-bounds plot leaked into the canvas")
			}
		}
	}
}

func TestOverBlendingSaturates(t *testing.T) {
	c := NewCanvas(1, 1)
	for i := 0; i < 20; i++ {
		c.Plot(0, 0, testRed, 0.3)
	}
	cell := c.Cells()[0][0]
	if !cell.Set {
		t.Fatal("cell not set")
	}
	if cell.Alpha > 1.001 {
		t.Fatalf("repeated over-blending pushed alpha to %v", cell.Alpha)
	}
	if cell.Color.R < 0.99 {
		t.Fatalf("blended color R = %v, want ~1", cell.Color.R)
	}
}

func TestStampOverridesDots(t *testing.T) {
	c := NewCanvas(2, 1)
	for dx := 0; dx < DotsPerCellX; dx++ {
		for dy := 0; dy < DotsPerCellY; dy++ {
			c.Plot(dx, dy, testRed, 1)
		}
	}
	c.Stamp(0, 0, 'A', testRed, 1)
	cell := c.Cells()[0][0]
	if cell.Ch != 'A' {
		t.Fatalf("glyph = %q, want stamped 'A'", cell.Ch)
	}
}

func TestClearResets(t *testing.T) {
	c := NewCanvas(2, 2)
	c.Plot(0, 0, testRed, 1)
	c.Stamp(1, 1, 'x', testRed, 1)
	c.Clear()
	for _, row := range c.Cells() {
		for _, cell := range row {
			if cell.Set {
				t.Fatal("canvas not empty after Clear")
			}
		}
	}
}

func TestStringDimensions(t *testing.T) {
	c := NewCanvas(6, 3)
	c.Plot(5, 5, testRed, 1)
	lines := strings.Split(c.String(), "\n")
	if len(lines) != 3 {
		t.Fatalf("String produced %d lines, want 3", len(lines))
	}
}

func TestRenderCellsPadsUnset(t *testing.T) {
	cells := []Cell{{}, {Ch: '⣿', Color: testRed, Alpha: 1, Set: true}, {}}
	out := RenderCells(cells)
	if !strings.ContainsRune(out, '⣿') {
		t.Fatalf("rendered row %q missing glyph", out)
	}
	if !strings.HasPrefix(out, " ") {
		t.Fatalf("rendered row %q does not pad the leading unset cell", out)
	}
}
