package navigator

import (
	"math"
	"sort"
)

// LabelEntry is one cached on-screen label. The handle is owned by the
// host except while the control draws it along a curved path.
type LabelEntry struct {
	RowIndex int
	Handle   LabelHandle
	Alpha    float64
	Angle    float64
	Loc      Vec2
	Owned    bool
}

// LabelEngine decides which rows get on-screen labels each frame,
// manages handle reuse with the host, and fades labels by overlap. The
// cache is effectively an LRU keyed by continued visibility rather than
// recency.
type LabelEngine struct {
	host  Host
	p     Params
	cache map[int]*LabelEntry
}

func NewLabelEngine(host Host, p Params) *LabelEngine {
	return &LabelEngine{host: host, p: p, cache: make(map[int]*LabelEntry)}
}

// placeFunc maps a content position to a screen location and arc angle.
type placeFunc func(pos float64) (loc Vec2, angle float64)

// Refresh recomputes the visible label set for the interval [visLo,
// visHi). curved is true while the control draws labels itself along a
// curved path; it is passed through as the ownership flag on every
// handle request. The returned slice is ordered top to bottom.
func (e *LabelEngine) Refresh(idx *RowIndex, visLo, visHi float64, curved bool, place placeFunc) []*LabelEntry {
	start, end := idx.Bracket(visLo, visHi)

	// Evict anything that fell outside the bracket expanded by 10% on
	// both sides, returning the handle to the host's view cache.
	margin := (visHi - visLo) * e.p.EvictExpand
	eStart, eEnd := idx.Bracket(visLo-margin, visHi+margin)
	for ri, entry := range e.cache {
		if ri < eStart || ri >= eEnd {
			e.evict(entry)
		}
	}

	candidates := e.sample(idx, start, end)

	// Already-visible labels must never be starved by newcomers.
	sort.SliceStable(candidates, func(i, j int) bool {
		ai, aj := e.cachedAlpha(candidates[i]), e.cachedAlpha(candidates[j])
		if ai != aj {
			return ai > aj
		}
		return idx.Row(candidates[i]).Weight > idx.Row(candidates[j]).Weight
	})

	var placed []*LabelEntry
	created := 0
	for _, ri := range candidates {
		entry, cached := e.cache[ri]
		if !cached {
			// New-label creation is capped per redraw; overflow
			// candidates wait for the next frame.
			if created >= e.p.MaxNewLabelsPerTick {
				continue
			}
			entry = &LabelEntry{RowIndex: ri}
		}

		handle := e.host.RequestLabel(ri, entry.Handle, curved)
		if handle == nil {
			continue
		}
		if !cached {
			created++
		}
		entry.Handle = handle
		entry.Owned = curved
		entry.Loc, entry.Angle = place(idx.Row(ri).Position)

		alpha := 1.0
		for _, other := range placed {
			alpha -= e.overlap(entry, other)
		}
		entry.Alpha = clamp01(alpha)

		if entry.Alpha < e.p.VisibilityCutoff {
			e.evict(entry)
			continue
		}
		e.cache[ri] = entry
		placed = append(placed, entry)
	}

	sort.Slice(placed, func(i, j int) bool { return placed[i].Loc.Y < placed[j].Loc.Y })
	return placed
}

// sample reduces the bracket to at most MaxLabelRows candidates by
// bucketing; each bucket keeps a row that already has a cached label (to
// avoid flicker) or, failing that, its highest-weighted row.
func (e *LabelEngine) sample(idx *RowIndex, start, end int) []int {
	size := end - start
	if size <= 0 {
		return nil
	}
	if size <= e.p.MaxLabelRows {
		out := make([]int, 0, size)
		for i := start; i < end; i++ {
			out = append(out, i)
		}
		return out
	}

	bucket := (size + e.p.MaxLabelRows - 1) / e.p.MaxLabelRows
	out := make([]int, 0, e.p.MaxLabelRows)
	for lo := start; lo < end; lo += bucket {
		hi := lo + bucket
		if hi > end {
			hi = end
		}
		best := -1
		for i := lo; i < hi; i++ {
			if _, ok := e.cache[i]; ok {
				best = i
				break
			}
			if best < 0 || idx.Row(i).Weight > idx.Row(best).Weight {
				best = i
			}
		}
		if best >= 0 {
			out = append(out, best)
		}
	}
	return out
}

// overlap is the fade contribution of a neighbor: 1 at zero separation,
// linearly down to 0 at the neighbor's fade distance. The distance
// shrinks with the neighbor's own transparency, so two faint labels can
// sit closer together than two opaque ones.
func (e *LabelEngine) overlap(entry, neighbor *LabelEntry) float64 {
	t := 1 - neighbor.Alpha
	fade := e.p.FadeDistance * (1 - t*t)
	if fade < 1e-9 {
		return 0
	}
	sep := math.Abs(entry.Loc.Y - neighbor.Loc.Y)
	if sep >= fade {
		return 0
	}
	return 1 - sep/fade
}

func (e *LabelEngine) cachedAlpha(ri int) float64 {
	if entry, ok := e.cache[ri]; ok {
		return entry.Alpha
	}
	return 0
}

func (e *LabelEngine) evict(entry *LabelEntry) {
	if entry.Handle != nil {
		e.host.ReturnLabel(entry.RowIndex, entry.Handle)
	}
	delete(e.cache, entry.RowIndex)
}

// EvictAll returns every cached handle to the host. Called on forced
// deactivation and on invalidate.
func (e *LabelEngine) EvictAll() {
	for _, entry := range e.cache {
		e.evict(entry)
	}
}

// CachedCount reports the live cache size.
func (e *LabelEngine) CachedCount() int { return len(e.cache) }
