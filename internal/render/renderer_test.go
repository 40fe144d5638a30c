package render

import (
	"math"
	"testing"

	"github.com/viewfinderco/feeddial/internal/navigator"
)

func indicatorScene() navigator.Scene {
	return navigator.Scene{
		Mode:   navigator.ModeScrolling,
		Width:  72,
		Height: 96,
		Indicator: navigator.IndicatorState{
			Visible: true,
			Alpha:   1,
			BarY:    10,
			BarH:    20,
		},
	}
}

func TestDrawSkipsWhenContextBusy(t *testing.T) {
	ctx := SharedContext()
	if !ctx.TryAcquire() {
		t.Fatal("setup: draw context already held")
	}
	defer ctx.Release()

	r := NewRenderer(36, 24)
	cells, ok := r.Draw(indicatorScene(), nil)
	if ok || cells != nil {
		t.Fatalf("Draw = (%v, %v) with the context held, want skipped frame", cells != nil, ok)
	}
}

func TestDrawInactiveSceneIsEmpty(t *testing.T) {
	r := NewRenderer(36, 24)
	cells, ok := r.Draw(navigator.Scene{Mode: navigator.ModeInactive, Width: 72, Height: 96}, nil)
	if !ok {
		t.Fatal("draw skipped")
	}
	for _, row := range cells {
		for _, cell := range row {
			if cell.Set {
				t.Fatal("inactive scene without an indicator lit a cell")
			}
		}
	}
}

func TestDrawScrollIndicatorHugsRightEdge(t *testing.T) {
	r := NewRenderer(36, 24)
	cells, ok := r.Draw(indicatorScene(), nil)
	if !ok {
		t.Fatal("draw skipped")
	}
	lit := 0
	for _, row := range cells {
		for col, cell := range row {
			if !cell.Set {
				continue
			}
			lit++
			if col < 34 {
				t.Fatalf("indicator cell at column %d, want right edge only", col)
			}
		}
	}
	if lit == 0 {
		t.Fatal("visible indicator drew nothing")
	}
}

func TestDrawActiveTimelineScene(t *testing.T) {
	r := NewRenderer(36, 24)
	tex := NewTexture(16, 40)
	for y := 0; y < 40; y++ {
		for x := 0; x < 16; x++ {
			tex.SetAt(x, y, testBlue)
		}
	}
	scene := navigator.Scene{
		Mode:       navigator.ModeTracking,
		Timeline:   true,
		Width:      72,
		Height:     96,
		Anchor:     navigator.Vec2{X: 36, Y: 48},
		Circle:     navigator.Circle{Degenerate: true},
		PctActive:  1,
		VisibleLo:  0,
		VisibleHi:  96,
		ContentEnd: 800,
		TimeLo:     0,
		TimeHi:     3 * 24 * 3600,
		TimeScale:  30 * 24 * 3600,
		Labels: []navigator.LabelPlacement{
			{Text: "Mar 14", Width: 6, Alpha: 1, Loc: navigator.Vec2{X: 36, Y: 40}},
		},
		Place: func(pos float64) (navigator.Vec2, float64) {
			return navigator.Vec2{X: 36, Y: pos}, 0
		},
	}
	cells, ok := r.Draw(scene, tex)
	if !ok {
		t.Fatal("draw skipped")
	}
	lit := 0
	var sawGlyph bool
	for _, row := range cells {
		for _, cell := range row {
			if !cell.Set {
				continue
			}
			lit++
			if cell.Ch == 'M' {
				sawGlyph = true
			}
		}
	}
	if lit < 24 {
		t.Fatalf("active timeline scene lit %d cells, want the band and spine", lit)
	}
	if !sawGlyph {
		t.Fatal("label text never stamped")
	}
}

func TestDrawActiveDialScene(t *testing.T) {
	r := NewRenderer(36, 24)
	scene := navigator.Scene{
		Mode:       navigator.ModeQuiescent,
		Width:      72,
		Height:     96,
		Anchor:     navigator.Vec2{X: 36, Y: 48},
		Circle:     navigator.Circle{Center: navigator.Vec2{X: 86, Y: 48}, Radius: 50},
		PctActive:  1,
		VisibleLo:  0,
		VisibleHi:  96,
		ContentEnd: 800,
		TimeLo:     0,
		TimeHi:     3 * 24 * 3600,
		TimeScale:  30 * 24 * 3600,
		Labels: []navigator.LabelPlacement{
			{Text: "Mar 14", Width: 6, Alpha: 1, Angle: math.Pi, Loc: navigator.Vec2{X: 43, Y: 48}},
		},
		Place: func(pos float64) (navigator.Vec2, float64) {
			return navigator.Vec2{}, 4.4 - pos/96*2.5
		},
	}
	cells, ok := r.Draw(scene, nil)
	if !ok {
		t.Fatal("draw skipped")
	}
	lit := 0
	var sawGlyph bool
	for _, row := range cells {
		for _, cell := range row {
			if !cell.Set {
				continue
			}
			lit++
			if cell.Ch == 'M' {
				sawGlyph = true
			}
		}
	}
	if lit < 24 {
		t.Fatalf("active dial scene lit %d cells, want the band and rim", lit)
	}
	if !sawGlyph {
		t.Fatal("label text never stamped along the arc")
	}
}

func TestDrawReusableAcrossResizes(t *testing.T) {
	r := NewRenderer(36, 24)
	if _, ok := r.Draw(indicatorScene(), nil); !ok {
		t.Fatal("first draw skipped")
	}
	r.Resize(20, 10)
	cells, ok := r.Draw(navigator.Scene{Mode: navigator.ModeInactive, Width: 40, Height: 40}, nil)
	if !ok {
		t.Fatal("draw after resize skipped")
	}
	if len(cells) != 10 || len(cells[0]) != 20 {
		t.Fatalf("cell grid = %dx%d after resize, want 20x10", len(cells[0]), len(cells))
	}
}
