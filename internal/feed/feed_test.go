package feed

import (
	"strings"
	"testing"
	"time"

	"github.com/viewfinderco/feeddial/internal/navigator"
)

func sampleEntries() []Entry {
	t0 := time.Date(2026, time.January, 10, 12, 0, 0, 0, time.UTC)
	return []Entry{
		{Kind: navigator.RowHeader, Title: "Beach weekend", Timestamp: t0, Height: 2, Weight: 1},
		{Kind: navigator.RowPhotos, Title: "Beach weekend", Timestamp: t0.Add(time.Hour), Height: 3, Weight: 0.8, PhotoCount: 4},
		{Kind: navigator.RowFooter, Title: "Beach weekend", Timestamp: t0.Add(2 * time.Hour), Height: 1, Weight: 0.1},
	}
}

func TestPrefixPositions(t *testing.T) {
	f := New(sampleEntries())
	want := []int{0, 2, 5}
	for i, w := range want {
		if got := f.Position(i); got != w {
			t.Fatalf("Position(%d) = %d, want %d", i, got, w)
		}
	}
	if f.TotalHeight() != 6 {
		t.Fatalf("TotalHeight = %d, want 6", f.TotalHeight())
	}
}

func TestEntryAt(t *testing.T) {
	f := New(sampleEntries())
	cases := []struct{ row, want int }{
		{-1, -1}, {0, 0}, {1, 0}, {2, 1}, {4, 1}, {5, 2}, {6, -1},
	}
	for _, tc := range cases {
		if got := f.EntryAt(tc.row); got != tc.want {
			t.Fatalf("EntryAt(%d) = %d, want %d", tc.row, got, tc.want)
		}
	}
}

func TestSpanSeconds(t *testing.T) {
	f := New(sampleEntries())
	if got := f.SpanSeconds(); got != 7200 {
		t.Fatalf("SpanSeconds = %v, want 7200", got)
	}
	if got := New(sampleEntries()[:1]).SpanSeconds(); got != 0 {
		t.Fatalf("single-entry span = %v, want 0", got)
	}
}

func TestDemoDeterministic(t *testing.T) {
	a := Demo(7)
	b := Demo(7)
	if a.Len() != b.Len() {
		t.Fatalf("same seed produced %d and %d entries", a.Len(), b.Len())
	}
	if a.Len() < 100 {
		t.Fatalf("demo feed has only %d entries", a.Len())
	}
	// The base time is sampled from the clock, so compare timestamps
	// relative to the first entry.
	for i := 0; i < a.Len(); i++ {
		ea, eb := a.Entry(i), b.Entry(i)
		if ea.Kind != eb.Kind || ea.Title != eb.Title || ea.Height != eb.Height ||
			ea.Unviewed != eb.Unviewed || ea.PhotoCount != eb.PhotoCount {
			t.Fatalf("entry %d differs between same-seed feeds", i)
		}
		da := ea.Timestamp.Sub(a.Entry(0).Timestamp)
		db := eb.Timestamp.Sub(b.Entry(0).Timestamp)
		if da != db {
			t.Fatalf("entry %d timestamp offset differs: %v vs %v", i, da, db)
		}
	}
}

func TestRenderLabelKinds(t *testing.T) {
	entries := sampleEntries()

	if got := RenderLabel(entries[0]).Text(); got != "Beach weekend" {
		t.Fatalf("header label = %q", got)
	}
	if got := RenderLabel(entries[1]).Text(); got != "Beach weekend (4)" {
		t.Fatalf("photos label = %q", got)
	}
	if got := RenderLabel(entries[2]).Text(); got != "Jan 10" {
		t.Fatalf("footer label = %q, want the timestamp", got)
	}
}

func TestRenderLabelTruncates(t *testing.T) {
	e := Entry{Kind: navigator.RowHeader, Title: strings.Repeat("x", 30)}
	l := RenderLabel(e)
	if !strings.HasSuffix(l.Text(), "…") {
		t.Fatalf("long label %q not truncated", l.Text())
	}
	if l.Width() != 18 {
		t.Fatalf("truncated width = %d, want 18", l.Width())
	}
}

func TestThumbStable(t *testing.T) {
	l := NewThumbLoader()
	e := sampleEntries()[1]
	first := l.Thumb(3, e)
	if second := l.Thumb(3, e); second != first {
		t.Fatalf("repeated load changed the swatch: %+v vs %+v", first, second)
	}
	if l.LoadedCount() != 1 {
		t.Fatalf("LoadedCount = %d, want 1", l.LoadedCount())
	}
}

func TestThumbEvictOutside(t *testing.T) {
	l := NewThumbLoader()
	e := sampleEntries()[0]
	for i := 0; i < 6; i++ {
		l.Thumb(i, e)
	}
	l.EvictOutside(2, 4)
	if l.LoadedCount() != 2 {
		t.Fatalf("LoadedCount after eviction = %d, want 2", l.LoadedCount())
	}
}

func TestTextureCoversFeed(t *testing.T) {
	f := New(sampleEntries())
	tex := Texture(f, NewThumbLoader(), 4)
	if tex.W != 4 || tex.H != f.TotalHeight() {
		t.Fatalf("texture is %dx%d, want 4x%d", tex.W, tex.H, f.TotalHeight())
	}
	for i, set := range tex.Set {
		if !set {
			t.Fatalf("texel %d unset, want full coverage", i)
		}
	}
	// Rows of one entry share its swatch.
	if tex.Colors[0] != tex.Colors[tex.W] {
		t.Fatal("rows of the first entry have different swatches")
	}
}
