package ui

import (
	"strings"
	"testing"

	"github.com/viewfinderco/feeddial/internal/feed"
	"github.com/viewfinderco/feeddial/internal/navigator"
	"github.com/viewfinderco/feeddial/internal/render"
)

func TestResizeSizesWidget(t *testing.T) {
	m := New(feed.Demo(3))

	m.resize(100, 30)
	if m.widgetW != maxWidgetCols {
		t.Fatalf("widgetW = %d on a wide terminal, want %d", m.widgetW, maxWidgetCols)
	}
	if m.bodyRows != 29 {
		t.Fatalf("bodyRows = %d, want 29 (one row reserved for status)", m.bodyRows)
	}
	if m.tex == nil || m.tex.W != textureCols || m.tex.H != m.feed.TotalHeight() {
		t.Fatal("resize did not rebuild the content texture")
	}

	m.resize(30, 10)
	if m.widgetW != minWidgetCols {
		t.Fatalf("widgetW = %d on a narrow terminal, want %d", m.widgetW, minWidgetCols)
	}
}

func TestRowBoundsInDots(t *testing.T) {
	m := New(feed.Demo(3))
	m.resize(100, 30)

	r := m.RowBounds(1)
	if r.Y != float64(m.feed.Position(1)*render.DotsPerCellY) {
		t.Fatalf("RowBounds(1).Y = %v, want cell position scaled to dots", r.Y)
	}
	if r.H != float64(m.feed.Entry(1).Height*render.DotsPerCellY) {
		t.Fatalf("RowBounds(1).H = %v, want entry height scaled to dots", r.H)
	}
	if r.W != float64(m.widgetW*render.DotsPerCellX) {
		t.Fatalf("RowBounds(1).W = %v, want widget width in dots", r.W)
	}
}

func TestRequestLabelOwnership(t *testing.T) {
	m := New(feed.Demo(3))

	h := m.RequestLabel(0, nil, false)
	if h == nil {
		t.Fatal("RequestLabel returned nil for a valid row")
	}
	if m.labelCache[0] != h {
		t.Fatal("unowned request did not cache the handle")
	}

	owned := m.RequestLabel(0, nil, true)
	if owned != h {
		t.Fatal("ownership request rebuilt the label instead of reusing the cache")
	}
	if _, ok := m.labelCache[0]; ok {
		t.Fatal("owned handle still sitting in the cache")
	}

	m.ReturnLabel(0, owned)
	if m.labelCache[0] != owned {
		t.Fatal("returned handle not cached")
	}

	if m.RequestLabel(-1, nil, false) != nil || m.RequestLabel(m.feed.Len(), nil, false) != nil {
		t.Fatal("out-of-range request produced a label")
	}
}

func TestHostScrollClamps(t *testing.T) {
	m := New(feed.Demo(3))
	m.resize(100, 30)

	m.hostScroll(-5)
	if m.scroll != 0 {
		t.Fatalf("scroll = %v after scrolling above the top, want 0", m.scroll)
	}
	m.hostScroll(1e9)
	if max := float64(m.feed.TotalHeight() - m.bodyRows); m.scroll != max {
		t.Fatalf("scroll = %v after overscrolling, want %v", m.scroll, max)
	}
}

func TestActiveControlOwnsScrolling(t *testing.T) {
	m := New(feed.Demo(3))
	m.resize(100, 30)
	m.scroll = 5

	m.ctrl.Open()
	if m.ctrl.Mode() == navigator.ModeInactive {
		t.Fatal("setup: Open did not activate the control")
	}
	m.hostScroll(3)
	if m.scroll != 5 {
		t.Fatalf("wheel scroll moved the view to %v while the control is out", m.scroll)
	}
}

func TestScrollUpdateIsAuthoritative(t *testing.T) {
	m := New(feed.Demo(3))
	m.resize(100, 30)

	m.ScrollUpdate(80, false)
	if m.scroll != 20 {
		t.Fatalf("scroll = %v after ScrollUpdate(80), want 20 cells", m.scroll)
	}
	m.ScrollUpdate(-400, false)
	if m.scroll != 0 {
		t.Fatalf("scroll = %v after negative update, want clamped 0", m.scroll)
	}
}

func TestViewLineCount(t *testing.T) {
	m := New(feed.Demo(3))
	m.resize(100, 30)

	lines := strings.Split(m.View(), "\n")
	if len(lines) != m.bodyRows+1 {
		t.Fatalf("View produced %d lines, want %d body rows plus status", len(lines), m.bodyRows+1)
	}
}

func TestStripANSI(t *testing.T) {
	if got := stripANSI("\x1b[1mhi\x1b[0m there"); got != "hi there" {
		t.Fatalf("stripANSI = %q, want %q", got, "hi there")
	}
}

func TestPadLine(t *testing.T) {
	if got := padLine("abc", 5); got != "abc  " {
		t.Fatalf("padLine = %q, want %q", got, "abc  ")
	}
	got := padLine("abcdefgh", 5)
	if !strings.HasSuffix(got, "…") {
		t.Fatalf("padLine overflow = %q, want ellipsis truncation", got)
	}
}
