package feed

import (
	"sync"

	"github.com/lucasb-eyer/go-colorful"
	"github.com/viewfinderco/feeddial/internal/navigator"
	"github.com/viewfinderco/feeddial/internal/render"
)

// ThumbLoader produces placeholder thumbnail swatches for feed entries.
// It stands in for the image-loading subsystem: access to the loaded set
// is guarded by its own mutex, and every caller holds the lock only for
// the scoped duration of a single call.
type ThumbLoader struct {
	mu     sync.Mutex
	loaded map[int]colorful.Color
}

func NewThumbLoader() *ThumbLoader {
	return &ThumbLoader{loaded: make(map[int]colorful.Color)}
}

// Thumb returns the swatch for an entry, loading it on first use.
func (l *ThumbLoader) Thumb(index int, e Entry) colorful.Color {
	l.mu.Lock()
	defer l.mu.Unlock()
	if c, ok := l.loaded[index]; ok {
		return c
	}
	c := swatch(index, e)
	l.loaded[index] = c
	return c
}

// EvictOutside drops swatches for entries outside [lo, hi), bounding
// memory during long jumps.
func (l *ThumbLoader) EvictOutside(lo, hi int) {
	l.mu.Lock()
	defer l.mu.Unlock()
	for i := range l.loaded {
		if i < lo || i >= hi {
			delete(l.loaded, i)
		}
	}
}

func (l *ThumbLoader) LoadedCount() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.loaded)
}

func swatch(index int, e Entry) colorful.Color {
	hue := float64((index * 47) % 360)
	return colorful.Hsv(hue, 0.45, value(e))
}

func value(e Entry) float64 {
	switch e.Kind {
	case navigator.RowPhotos:
		return 0.85
	case navigator.RowHeader:
		return 0.65
	case navigator.RowActivity, navigator.RowReplyActivity:
		return 0.45
	case navigator.RowUpdate, navigator.RowFooter:
		return 0.3
	}
	return 0.3
}

// Texture renders the whole feed into an offscreen cell-color buffer the
// renderer samples for the dial's content preview. Width is in cells.
func Texture(f *Feed, loader *ThumbLoader, width int) *render.Texture {
	tex := render.NewTexture(width, f.TotalHeight())
	for i := 0; i < f.Len(); i++ {
		e := f.Entry(i)
		c := loader.Thumb(i, e)
		y0 := f.Position(i)
		for y := y0; y < y0+e.Height; y++ {
			for x := 0; x < width; x++ {
				tex.SetAt(x, y, c)
			}
		}
	}
	return tex
}
