package navigator

import "sort"

// Row is one entry of the per-session geometry snapshot.
type Row struct {
	Index     int
	Position  float64
	Height    float64
	Timestamp float64
	Weight    float64
	Unviewed  bool
	Subrow    bool
	Kind      RowKind
}

// RowIndex is a read-only snapshot of row geometry pulled from the host.
// The parallel arrays are sorted ascending by position (and by timestamp
// within a session) and are rebuilt wholesale on invalidate, never
// mutated in place.
type RowIndex struct {
	rows       []Row
	positions  []float64
	timestamps []float64
	ascending  bool
	contentEnd float64
}

// BuildRowIndex snapshots the host's current row set.
func BuildRowIndex(h Host) *RowIndex {
	n := h.RowCount()
	idx := &RowIndex{
		rows:       make([]Row, 0, n),
		positions:  make([]float64, 0, n),
		timestamps: make([]float64, 0, n),
		ascending:  h.TimeAscending(),
	}
	for i := 0; i < n; i++ {
		b := h.RowBounds(i)
		info := h.RowInfo(i)
		idx.rows = append(idx.rows, Row{
			Index:     i,
			Position:  b.Y,
			Height:    b.H,
			Timestamp: info.Timestamp,
			Weight:    info.Weight,
			Unviewed:  info.Unviewed,
			Subrow:    h.IsSubrow(i),
			Kind:      info.Kind,
		})
		idx.positions = append(idx.positions, b.Y)
		idx.timestamps = append(idx.timestamps, info.Timestamp)
		if end := b.Y + b.H; end > idx.contentEnd {
			idx.contentEnd = end
		}
	}
	return idx
}

func (x *RowIndex) Len() int            { return len(x.rows) }
func (x *RowIndex) Row(i int) Row       { return x.rows[i] }
func (x *RowIndex) ContentEnd() float64 { return x.contentEnd }
func (x *RowIndex) Ascending() bool     { return x.ascending }

// Bracket returns the half-open row range [start, end) whose positions
// fall inside [lo, hi).
func (x *RowIndex) Bracket(lo, hi float64) (start, end int) {
	start = sort.SearchFloat64s(x.positions, lo)
	end = sort.SearchFloat64s(x.positions, hi)
	return start, end
}

// NearestRow returns the index of the row whose position is closest to p,
// or -1 for an empty snapshot.
func (x *RowIndex) NearestRow(p float64) int {
	if len(x.positions) == 0 {
		return -1
	}
	i := sort.SearchFloat64s(x.positions, p)
	if i == 0 {
		return 0
	}
	if i == len(x.positions) {
		return len(x.positions) - 1
	}
	if p-x.positions[i-1] <= x.positions[i]-p {
		return i - 1
	}
	return i
}

// interp maps v through the piecewise-linear function (xs -> ys), with
// linear extrapolation beyond the first/last sample using the slope of
// the nearest interior segment. Extrapolating instead of clamping lets
// the control express "before first item" / "after last item" by
// position rather than by value.
func interp(xs, ys []float64, v float64) float64 {
	n := len(xs)
	switch n {
	case 0:
		return 0
	case 1:
		return ys[0]
	}
	i := sort.SearchFloat64s(xs, v)
	if i <= 0 {
		i = 1
	}
	if i >= n {
		i = n - 1
	}
	x0, x1 := xs[i-1], xs[i]
	y0, y1 := ys[i-1], ys[i]
	if x1 == x0 {
		return y0
	}
	return y0 + (v-x0)*(y1-y0)/(x1-x0)
}

// PositionForTime converts a timestamp into a content position.
func (x *RowIndex) PositionForTime(t float64) float64 {
	if x.ascending {
		return interp(x.timestamps, x.positions, t)
	}
	// Descending sessions store timestamps high-to-low; flip to keep the
	// binary search over an ascending array.
	n := len(x.timestamps)
	ts := make([]float64, n)
	ps := make([]float64, n)
	for i := 0; i < n; i++ {
		ts[i] = -x.timestamps[i]
		ps[i] = x.positions[i]
	}
	return interp(ts, ps, -t)
}

// TimeForPosition converts a content position into a timestamp.
func (x *RowIndex) TimeForPosition(p float64) float64 {
	return interp(x.positions, x.timestamps, p)
}
