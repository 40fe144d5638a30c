package render

import (
	"log"
	"sync"

	"github.com/lucasb-eyer/go-colorful"
	"github.com/viewfinderco/feeddial/internal/navigator"
)

// drawMu is the single shared draw-context lock. Draws and activation
// probes contend on it process-wide.
var drawMu sync.Mutex

type contextLock struct{}

func (contextLock) TryAcquire() bool { return drawMu.TryLock() }
func (contextLock) Release()         { drawMu.Unlock() }

// SharedContext exposes the process-wide draw lock to the control.
func SharedContext() navigator.DrawContext { return contextLock{} }

// gradientStops darken toward the dial's center and fade to transparent
// past the outer edge. Radii are fractions across the band, 0 at the
// inner edge.
var gradientStops = []struct {
	frac  float64
	color colorful.Color
	alpha float64
}{
	{0.00, colorful.Color{R: 0.02, G: 0.03, B: 0.09}, 0.0},
	{0.25, colorful.Color{R: 0.04, G: 0.06, B: 0.16}, 0.75},
	{0.70, colorful.Color{R: 0.07, G: 0.10, B: 0.24}, 0.9},
	{0.92, colorful.Color{R: 0.10, G: 0.14, B: 0.30}, 0.5},
	{1.00, colorful.Color{R: 0.10, G: 0.14, B: 0.30}, 0.0},
}

var (
	tickColor      = colorful.Color{R: 0.55, G: 0.66, B: 0.86}
	labelColor     = colorful.Color{R: 0.92, G: 0.94, B: 0.98}
	unviewedColor  = colorful.Color{R: 1.0, G: 0.72, B: 0.25}
	segmentColor   = colorful.Color{R: 0.62, G: 0.68, B: 0.80}
	indicatorColor = colorful.Color{R: 0.85, G: 0.88, B: 0.95}
)

const (
	bandWidth      = 14.0 // dots across the gradient band
	previewWidth   = 8.0  // dots across the content preview band
	tickLen        = 4.0
	tickWidth      = 1.6
	aaFilterRadius = 0.7
)

// Renderer tessellates the scene into a triangle mesh and rasterizes it
// into a dot canvas, producing character cells for the host to
// composite. One instance per widget; not safe for concurrent use.
type Renderer struct {
	cols   int
	rows   int
	canvas *Canvas
	mesh   Mesh
}

func NewRenderer(cols, rows int) *Renderer {
	return &Renderer{cols: cols, rows: rows, canvas: NewCanvas(cols, rows)}
}

func (r *Renderer) Resize(cols, rows int) {
	if cols == r.cols && rows == r.rows {
		return
	}
	r.cols, r.rows = cols, rows
	r.canvas = NewCanvas(cols, rows)
}

// Draw renders the scene over the content texture. It acquires the
// shared draw context for the duration of the draw; if the context is
// unavailable the frame is skipped and ok is false.
func (r *Renderer) Draw(scene navigator.Scene, tex *Texture) (cells [][]Cell, ok bool) {
	if !drawMu.TryLock() {
		log.Printf("render: draw context busy, skipping frame (mode=%s)", scene.Mode)
		return nil, false
	}
	defer drawMu.Unlock()

	r.canvas.Clear()

	if scene.Mode == navigator.ModeInactive || scene.Mode == navigator.ModeScrolling {
		r.drawIndicator(scene)
		return r.canvas.Cells(), true
	}

	// Back-to-front: gradient mask, content preview, glyphs and ticks.
	r.drawGradient(scene)
	r.drawContent(scene, tex)
	r.drawGlyphs(scene)
	r.drawIndicator(scene)
	return r.canvas.Cells(), true
}

// drawGradient tessellates the stop list into concentric arc bands (or
// vertical bands for degenerate shapes) and rasterizes them.
func (r *Renderer) drawGradient(scene navigator.Scene) {
	r.mesh.Reset()
	if scene.Circle.Degenerate {
		x := scene.Anchor.X
		for i := 0; i+1 < len(gradientStops); i++ {
			s0, s1 := gradientStops[i], gradientStops[i+1]
			r.mesh.VerticalBand(
				x-bandWidth/2+s0.frac*bandWidth, x-bandWidth/2+s1.frac*bandWidth,
				0, scene.Height,
				s0.color, s1.color, s0.alpha*scene.PctActive, s1.alpha*scene.PctActive,
			)
		}
	} else {
		c := scene.Circle
		phi0, phi1 := arcAngles(scene)
		for i := 0; i+1 < len(gradientStops); i++ {
			s0, s1 := gradientStops[i], gradientStops[i+1]
			r.mesh.ArcBand(c, phi0, phi1,
				c.Radius-bandWidth+s0.frac*bandWidth,
				c.Radius-bandWidth+s1.frac*bandWidth,
				s0.color, s1.color, s0.alpha*scene.PctActive, s1.alpha*scene.PctActive,
			)
		}
	}
	Rasterize(&r.mesh, r.canvas, nil)
}

// drawContent samples the offscreen feed texture through coordinates
// derived from the visible interval, giving the dial a miniature
// continuously-scrolling preview of the list.
func (r *Renderer) drawContent(scene navigator.Scene, tex *Texture) {
	if tex == nil || scene.ContentEnd <= 0 {
		return
	}
	v0 := clamp01(scene.VisibleLo / scene.ContentEnd)
	v1 := clamp01(scene.VisibleHi / scene.ContentEnd)
	alpha := 0.85 * scene.PctActive

	r.mesh.Reset()
	if scene.Circle.Degenerate {
		x := scene.Anchor.X
		r.mesh.TexturedVerticalBand(x-previewWidth/2, x+previewWidth/2, 0, scene.Height, v0, v1, alpha)
	} else {
		c := scene.Circle
		phi0, phi1 := arcAngles(scene)
		// The angle decreases top to bottom, so V runs from the top
		// (visible low) at phi1 down to phi0.
		r.mesh.TexturedArcBand(c, phi1, phi0, c.Radius-previewWidth-2, c.Radius-2, v0, v1, alpha)
	}
	Rasterize(&r.mesh, r.canvas, tex)
}

// drawGlyphs draws the label text, the unviewed markers, the time-bucket
// segment text and the anti-aliased tick lines.
func (r *Renderer) drawGlyphs(scene navigator.Scene) {
	r.mesh.Reset()

	// Rim stroke along the arc (or spine along the timeline).
	if scene.Circle.Degenerate {
		r.mesh.AAPolyline([]navigator.Vec2{
			{X: scene.Anchor.X, Y: 0},
			{X: scene.Anchor.X, Y: scene.Height / 2},
			{X: scene.Anchor.X, Y: scene.Height},
		}, 2.2, aaFilterRadius, tickColor, 0.8*scene.PctActive)
	} else {
		c := scene.Circle
		phi0, phi1 := arcAngles(scene)
		n := arcSegments(c.Radius, phi1-phi0)
		pts := make([]navigator.Vec2, 0, n+1)
		for i := 0; i <= n; i++ {
			pts = append(pts, arcPoint(c, phi0+(phi1-phi0)*float64(i)/float64(n), c.Radius))
		}
		r.mesh.AAPolyline(pts, 2.2, aaFilterRadius, tickColor, 0.8*scene.PctActive)
	}

	segments, innerTicks := BuildSegments(scene)
	if !scene.Circle.Degenerate {
		c := scene.Circle
		for _, phi := range innerTicks {
			p0 := arcPoint(c, phi, c.Radius-bandWidth)
			p1 := arcPoint(c, phi, c.Radius-bandWidth+tickLen)
			r.mesh.AALine(p0, p1, tickWidth, aaFilterRadius, tickColor, 0.6*scene.PctActive)
		}
		for _, seg := range segments {
			p0 := arcPoint(c, seg.BeginAngle, c.Radius-bandWidth)
			p1 := arcPoint(c, seg.BeginAngle, c.Radius-bandWidth+tickLen*1.6)
			r.mesh.AALine(p0, p1, tickWidth, aaFilterRadius, segmentColor, 0.9*scene.PctActive)
		}
	}

	for _, l := range scene.Labels {
		loc := l.Loc
		if scene.Circle.Degenerate {
			p0 := navigator.Vec2{X: loc.X - tickLen, Y: loc.Y}
			r.mesh.AALine(p0, loc, tickWidth, aaFilterRadius, tickColor, l.Alpha)
		} else {
			dir := loc.Sub(scene.Circle.Center).Norm()
			r.mesh.TickTriangle(loc, dir.Scale(-1), tickLen, tickWidth*2, tickColor, l.Alpha)
		}
	}

	Rasterize(&r.mesh, r.canvas, nil)

	// Glyph stamps go on top of the rasterized geometry.
	for _, seg := range segments {
		mid := (seg.BeginAngle + seg.EndAngle) / 2
		textW := float64(len(seg.Text) * DotsPerCellX)
		stampAlongArc(r.canvas, scene.Circle, mid+textW/(2*scene.Circle.Radius),
			scene.Circle.Radius-bandWidth-2, seg.Text, segmentColor, 0.8*scene.PctActive)
	}
	for _, l := range scene.Labels {
		col := labelColor
		if l.Unviewed {
			col = unviewedColor
		}
		if scene.Circle.Degenerate {
			at := navigator.Vec2{X: l.Loc.X - float64((l.Width+2)*DotsPerCellX), Y: l.Loc.Y}
			stampString(r.canvas, at, l.Text, col, l.Alpha)
		} else {
			startAngle := l.Angle + float64(l.Width*DotsPerCellX)/(2*scene.Circle.Radius)
			stampAlongArc(r.canvas, scene.Circle, startAngle,
				scene.Circle.Radius-bandWidth/2, l.Text, col, l.Alpha)
		}
	}
}

// drawIndicator draws the derived scrollbar thumb and the position
// timestamp readout.
func (r *Renderer) drawIndicator(scene navigator.Scene) {
	ind := scene.Indicator
	if !ind.Visible || ind.Alpha <= 0 {
		return
	}
	r.mesh.Reset()
	x := scene.Width - 1
	r.mesh.AALine(
		navigator.Vec2{X: x, Y: ind.BarY},
		navigator.Vec2{X: x, Y: ind.BarY + ind.BarH},
		2.4, aaFilterRadius, indicatorColor, ind.Alpha,
	)
	Rasterize(&r.mesh, r.canvas, nil)

	if ind.Text != "" {
		y := clamp(ind.BarY+ind.BarH/2, 0, scene.Height-1)
		at := navigator.Vec2{X: x - float64((len(ind.Text)+2)*DotsPerCellX), Y: y}
		stampString(r.canvas, at, ind.Text, indicatorColor, ind.Alpha)
	}
}

// arcAngles returns the angular bounds of the visible arc, low to high.
func arcAngles(scene navigator.Scene) (float64, float64) {
	if scene.Place == nil {
		return 0, 0
	}
	_, a0 := scene.Place(scene.VisibleHi) // bottom of screen, smaller angle
	_, a1 := scene.Place(scene.VisibleLo) // top of screen, larger angle
	if a0 > a1 {
		a0, a1 = a1, a0
	}
	return a0, a1
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
