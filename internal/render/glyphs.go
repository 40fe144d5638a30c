package render

import (
	"math"
	"time"

	"github.com/lucasb-eyer/go-colorful"
	"github.com/mattn/go-runewidth"
	"github.com/viewfinderco/feeddial/internal/navigator"
)

// ArcTextSegment is a labeled span of the visible arc between two
// time-bucket boundaries. Segments are rebuilt fresh every render pass;
// spans shorter than the minimum angular length are merged into a
// neighbor.
type ArcTextSegment struct {
	BeginTime  float64
	EndTime    float64
	BeginAngle float64
	EndAngle   float64
	Merged     bool
	Text       string
}

// minSegmentAngle is the smallest angular length a segment may keep on
// its own, in radians.
const minSegmentAngle = 0.06

// bucketGranularity picks outer and inner bucket sizes from the total
// time span the list represents.
func bucketGranularity(timeScale float64) (outer, inner time.Duration) {
	span := time.Duration(timeScale * float64(time.Second))
	switch {
	case span > 180*24*time.Hour:
		return 30 * 24 * time.Hour, 7 * 24 * time.Hour
	case span > 14*24*time.Hour:
		return 7 * 24 * time.Hour, 24 * time.Hour
	case span > 2*24*time.Hour:
		return 24 * time.Hour, 6 * time.Hour
	default:
		return time.Hour, 10 * time.Minute
	}
}

func bucketLabel(ts float64, outer time.Duration) string {
	t := time.Unix(int64(ts), 0)
	switch {
	case outer >= 30*24*time.Hour:
		return t.Format("Jan 2006")
	case outer >= 24*time.Hour:
		return t.Format("Jan 2")
	default:
		return t.Format("15:04")
	}
}

// bucketBoundaries returns the monotonically increasing boundary set of
// the given granularity inside [lo, hi].
func bucketBoundaries(lo, hi float64, g time.Duration) []float64 {
	if hi <= lo || g <= 0 {
		return nil
	}
	step := g.Seconds()
	first := math.Ceil(lo/step) * step
	if first <= lo {
		// A boundary exactly on lo would cut a zero-length leading
		// segment that the merge pass cannot absorb.
		first += step
	}
	var out []float64
	for t := first; t <= hi; t += step {
		out = append(out, t)
	}
	return out
}

// BuildSegments lays out the outer time buckets along the visible arc,
// merging segments that come out shorter than the minimum angular
// length. The inner (bucketed) boundaries become plain ticks and are
// returned separately as angles.
func BuildSegments(scene navigator.Scene) (segments []ArcTextSegment, innerTicks []float64) {
	if scene.Place == nil || scene.Circle.Degenerate {
		return nil, nil
	}
	lo, hi := scene.TimeLo, scene.TimeHi
	if hi < lo {
		lo, hi = hi, lo
	}
	outer, inner := bucketGranularity(scene.TimeScale)

	angleForTime := func(t float64) float64 {
		// Times map through positions; the interval is small enough for
		// the row snapshot's piecewise-linear conversion done upstream,
		// so interpolate within the visible span here.
		frac := (t - lo) / (hi - lo)
		pos := scene.VisibleLo + frac*(scene.VisibleHi-scene.VisibleLo)
		_, angle := scene.Place(pos)
		return angle
	}

	bounds := bucketBoundaries(lo, hi, outer)
	edges := append([]float64{lo}, bounds...)
	edges = append(edges, hi)

	for i := 0; i+1 < len(edges); i++ {
		a0 := angleForTime(edges[i])
		a1 := angleForTime(edges[i+1])
		seg := ArcTextSegment{
			BeginTime:  edges[i],
			EndTime:    edges[i+1],
			BeginAngle: a0,
			EndAngle:   a1,
			Text:       bucketLabel(edges[i], outer),
		}
		if math.Abs(a1-a0) < minSegmentAngle && len(segments) > 0 {
			last := &segments[len(segments)-1]
			last.EndTime = seg.EndTime
			last.EndAngle = seg.EndAngle
			last.Merged = true
			continue
		}
		segments = append(segments, seg)
	}

	for _, t := range bucketBoundaries(lo, hi, inner) {
		innerTicks = append(innerTicks, angleForTime(t))
	}
	return segments, innerTicks
}

// stampString writes a string onto the canvas starting at a dot
// location, advancing by rune width.
func stampString(c *Canvas, loc navigator.Vec2, s string, col colorful.Color, alpha float64) {
	cellCol := int(loc.X) / DotsPerCellX
	cellRow := int(loc.Y) / DotsPerCellY
	for _, ch := range s {
		c.Stamp(cellCol, cellRow, ch, col, alpha)
		cellCol += runewidth.RuneWidth(ch)
	}
}

// stampAlongArc lays the string's runes along the curve at the given
// radius, one cell per glyph. Terminal cells cannot rotate and are
// twice as tall as they are wide in dots, so the per-rune advance
// projects the cell footprint onto the local tangent.
func stampAlongArc(c *Canvas, circle navigator.Circle, startAngle, radius float64, s string, col colorful.Color, alpha float64) {
	if radius < 1e-9 {
		return
	}
	angle := startAngle
	for _, ch := range s {
		p := arcPoint(circle, angle, radius)
		c.Stamp(int(p.X)/DotsPerCellX, int(p.Y)/DotsPerCellY, ch, col, alpha)
		w := float64(runewidth.RuneWidth(ch)*DotsPerCellX)*math.Abs(math.Sin(angle)) +
			DotsPerCellY*math.Abs(math.Cos(angle))
		// Angle decreases toward the bottom of the visible arc; advance
		// the text downward along the curve.
		angle -= w / radius
	}
}
