// Package feed holds the host-side list model the navigator scrubs: a
// long, time-ordered sequence of conversation rows.
package feed

import (
	"fmt"
	"math/rand"
	"time"

	"github.com/viewfinderco/feeddial/internal/navigator"
)

// Entry is one feed row. Heights are in character cells.
type Entry struct {
	Kind       navigator.RowKind
	Title      string
	Timestamp  time.Time
	Height     int
	Weight     float64
	Unviewed   bool
	Subrow     bool
	PhotoCount int
}

// Feed is an ordered, append-only list of entries with prefix-summed
// positions. It is only mutated from the UI's single-threaded Update
// loop.
type Feed struct {
	entries   []Entry
	positions []int
	total     int
}

func New(entries []Entry) *Feed {
	f := &Feed{entries: entries, positions: make([]int, len(entries))}
	for i, e := range entries {
		f.positions[i] = f.total
		f.total += e.Height
	}
	return f
}

func (f *Feed) Len() int           { return len(f.entries) }
func (f *Feed) Entry(i int) Entry  { return f.entries[i] }
func (f *Feed) Position(i int) int { return f.positions[i] }
func (f *Feed) TotalHeight() int   { return f.total }

// SpanSeconds is the total time range the feed covers.
func (f *Feed) SpanSeconds() float64 {
	if len(f.entries) < 2 {
		return 0
	}
	first := f.entries[0].Timestamp
	last := f.entries[len(f.entries)-1].Timestamp
	d := last.Sub(first).Seconds()
	if d < 0 {
		d = -d
	}
	return d
}

// EntryAt returns the index of the entry covering the given cell row,
// or -1 outside the content.
func (f *Feed) EntryAt(row int) int {
	if row < 0 || row >= f.total {
		return -1
	}
	lo, hi := 0, len(f.positions)
	for lo < hi {
		mid := (lo + hi) / 2
		if f.positions[mid] <= row {
			lo = mid + 1
		} else {
			hi = mid
		}
	}
	return lo - 1
}

var demoTitles = []string{
	"Beach weekend", "Sara's birthday", "Hiking Mt. Tam", "Dinner at Nopa",
	"Road trip", "Office party", "Kids' recital", "Tahoe cabin",
	"Farmers market", "Golden Gate run", "Museum day", "Camping at Big Sur",
}

// Demo generates a deterministic feed spanning roughly eighteen months,
// grouped into conversations of header/activity/photos/update/reply
// rows.
func Demo(seed int64) *Feed {
	rng := rand.New(rand.NewSource(seed))
	start := time.Now().Add(-18 * 30 * 24 * time.Hour)
	var entries []Entry
	t := start
	for t.Before(time.Now()) {
		title := demoTitles[rng.Intn(len(demoTitles))]
		unviewed := rng.Float64() < 0.15
		entries = append(entries, Entry{
			Kind: navigator.RowHeader, Title: title, Timestamp: t,
			Height: 2, Weight: 1.0, Unviewed: unviewed,
		})
		n := 1 + rng.Intn(4)
		for i := 0; i < n; i++ {
			t = t.Add(time.Duration(10+rng.Intn(200)) * time.Minute)
			switch rng.Intn(4) {
			case 0:
				entries = append(entries, Entry{
					Kind: navigator.RowActivity, Title: title, Timestamp: t,
					Height: 1, Weight: 0.3, Subrow: true,
				})
			case 1, 2:
				entries = append(entries, Entry{
					Kind: navigator.RowPhotos, Title: title, Timestamp: t,
					Height: 3 + rng.Intn(3), Weight: 0.8, Unviewed: unviewed,
					PhotoCount: 1 + rng.Intn(9), Subrow: true,
				})
			case 3:
				entries = append(entries, Entry{
					Kind: navigator.RowReplyActivity, Title: title, Timestamp: t,
					Height: 1, Weight: 0.4, Subrow: true,
				})
			}
		}
		if rng.Float64() < 0.3 {
			entries = append(entries, Entry{
				Kind: navigator.RowUpdate, Title: title, Timestamp: t,
				Height: 1, Weight: 0.2, Subrow: true,
			})
		}
		entries = append(entries, Entry{
			Kind: navigator.RowFooter, Title: title, Timestamp: t,
			Height: 1, Weight: 0.1, Subrow: true,
		})
		t = t.Add(time.Duration(1+rng.Intn(9)) * 24 * time.Hour)
	}
	return New(entries)
}

// Label is the host-rendered label object handed to the navigator.
type Label struct {
	text  string
	width int
}

func (l *Label) Text() string { return l.text }
func (l *Label) Width() int   { return l.width }

// RenderLabel builds the label text for an entry.
func RenderLabel(e Entry) *Label {
	var text string
	switch e.Kind {
	case navigator.RowHeader:
		text = e.Title
	case navigator.RowPhotos:
		text = fmt.Sprintf("%s (%d)", e.Title, e.PhotoCount)
	case navigator.RowActivity, navigator.RowUpdate, navigator.RowReplyActivity, navigator.RowFooter:
		text = e.Timestamp.Format("Jan 2")
	}
	if len(text) > 18 {
		text = text[:17] + "…"
	}
	return &Label{text: text, width: len([]rune(text))}
}
