package navigator

import (
	"log"
	"math"
)

// DrawContext is the exclusive process-wide draw resource. Acquisition
// failure aborts activation silently; release is guaranteed on every
// deactivation path.
type DrawContext interface {
	TryAcquire() bool
	Release()
}

// Spring constants shared with the tracking simulation: the "quick"
// spring is slightly underdamped, the "very-quick" one near critical.
const (
	kQuick     = 56.25
	cQuick     = 9.0
	kVeryQuick = 144.0
	cVeryQuick = 22.0
)

// Control is the position-navigator state machine. It owns the row
// snapshot, the physics simulations and the label engine, interprets
// gestures, and reports scroll positions back to the host. All mutation
// happens serially inside gesture callbacks or the per-frame Tick; it is
// not safe for concurrent use.
type Control struct {
	host Host
	p    Params
	draw DrawContext

	mode           Mode
	shape          Shape
	preferredShape Shape
	mapper         Mapper

	index   *RowIndex
	labels  *LabelEngine
	hostVel *VelocityTracker
	dragVel *VelocityTracker
	ind     *Indicator

	width       float64
	height      float64
	insetTop    float64
	insetBottom float64
	minTrack    float64
	maxTrack    float64

	// curPos is the host scroll offset (content position at the top of
	// the viewport) in dots. The content position under the anchor is
	// curPos + curLoc.Y; mapper calls take that anchor-relative form.
	curPos      float64
	curLoc      Vec2
	lastGoodPos float64
	lastGoodLoc Vec2

	locSpring *AnchorSpring
	trackSim  *Simulation

	timeline  bool
	elastic   bool
	impulse   bool
	touchDown bool
	lastTouch Vec2

	now         float64
	lastTrackAt float64
	quietFor    float64
	active      bool

	zeroTarget float64
	placed     []*LabelEntry
}

// New builds a control for the host. Call SetViewport and Invalidate
// before the first gesture.
func New(host Host, p Params) *Control {
	return &Control{
		host:           host,
		p:              p,
		preferredShape: ShapeDial,
		hostVel:        NewVelocityTrackerFrom(p),
		dragVel:        NewVelocityTrackerFrom(p),
		ind:            NewIndicator(p),
		labels:         NewLabelEngine(host, p),
	}
}

// SetDrawContext installs the shared draw lock. A nil context never
// blocks activation.
func (c *Control) SetDrawContext(d DrawContext) { c.draw = d }

// SetPreferredShape picks the shape used by the next activation.
func (c *Control) SetPreferredShape(s Shape) { c.preferredShape = s }

// SetViewport sets the tracking rect size in dot coordinates.
func (c *Control) SetViewport(width, height float64) {
	c.width = width
	c.height = height
	c.rebuildMapper()
}

// Invalidate rebuilds the row snapshot wholesale. Any cached labels are
// returned to the host since their row indices may no longer be valid.
func (c *Control) Invalidate() {
	c.labels.EvictAll()
	c.index = BuildRowIndex(c.host)
	c.insetTop, c.insetBottom = c.host.ContentInsets()
	c.minTrack = -c.insetTop
	c.maxTrack = math.Max(c.index.ContentEnd()-c.height, 0) + c.insetBottom
	c.rebuildMapper()
}

func (c *Control) rebuildMapper() {
	if c.index == nil || c.height <= 0 {
		return
	}
	scrollRange := math.Max(c.index.ContentEnd()-c.height, 0)
	rocMin := 1.0
	rocMax := math.Max(rocMin, scrollRange/c.height)
	c.mapper = NewMapper(c.activeShape(), c.width, c.height, rocMin, rocMax, c.p)
}

// activeShape is the shape used for mapping right now: jump scrolling
// flips to the linear timeline once the drag crosses the flip margin.
func (c *Control) activeShape() Shape {
	if c.timeline {
		return ShapeTimeline
	}
	return c.shape
}

func (c *Control) Mode() Mode        { return c.mode }
func (c *Control) Position() float64 { return c.curPos }
func (c *Control) Anchor() Vec2      { return c.curLoc }
func (c *Control) Timeline() bool    { return c.timeline }

// HostScrolled feeds the host's own scroll movement so the control can
// wake into SCROLLING and fade the indicator.
func (c *Control) HostScrolled(delta, dt float64) {
	c.hostVel.AddSample(Vec2{0, delta}, dt)
	if !c.mode.active() {
		c.curPos += delta
		c.lastGoodPos = c.curPos
	}
}

// Open and Close are host-issued commands with activation/release
// semantics. Close while inactive is a pure no-op; close mid-animation
// schedules a stow that the next tick processes.
func (c *Control) Open() {
	c.HandleGesture(GestureEvent{Kind: GestureOpen, Loc: Vec2{c.width, c.height / 2}})
}

func (c *Control) Close() {
	c.HandleGesture(GestureEvent{Kind: GestureClose})
}

// HandleGesture interprets one raw gesture against the current mode.
func (c *Control) HandleGesture(ev GestureEvent) {
	switch ev.Kind {
	case GestureActivation, GestureOpen:
		c.onActivation(ev)
	case GestureTrack:
		c.onTrack(ev)
	case GestureRelease:
		c.onRelease(ev)
	case GestureSingleTap:
		c.onSingleTap(ev)
	case GestureSwipeLeft:
		c.onSwipeLeft()
	case GestureSwipeRight:
		c.onSwipeRight()
	case GesturePinch:
		c.onPinch(ev)
	case GestureClose:
		c.onClose()
	case GestureBounce:
		if c.mode.active() && c.outOfBounds() {
			c.startBounce()
		}
	case GestureTransition:
		c.onTransition()
	case GestureNone:
	}
}

// canActivate checks the capacity predicates. A refused activation is a
// silent no-op, never an error.
func (c *Control) canActivate() bool {
	if c.index == nil || !c.host.IsAlive() {
		return false
	}
	return c.index.ContentEnd() > c.height
}

// acquireDraw probes the shared draw context. No retry within the
// frame; the next activation gesture probes again.
func (c *Control) acquireDraw() bool {
	if c.draw == nil {
		return true
	}
	if !c.draw.TryAcquire() {
		log.Printf("navigator: draw context unavailable, activation aborted (mode=%s)", c.mode)
		return false
	}
	c.draw.Release()
	return true
}

func (c *Control) onActivation(ev GestureEvent) {
	if c.mode != ModeInactive && c.mode != ModeScrolling {
		return
	}
	if !c.canActivate() {
		return
	}
	pullout := c.width - ev.Loc.X
	jump := pullout <= c.p.JumpScrollMargin
	inMargin := pullout <= c.p.ActivationMargin
	if !jump && !inMargin {
		return
	}
	if !c.acquireDraw() {
		return
	}

	c.touchDown = ev.Kind == GestureActivation
	c.lastTouch = ev.Loc
	c.dragVel.Reset()
	c.begin()

	if jump && ev.Kind == GestureActivation {
		// Right-edge strip: straight into jump scrolling on the arc,
		// flipping to the timeline once dragged far enough left.
		c.shape = ShapeArc
		c.timeline = false
		c.curLoc = Vec2{clamp(ev.Loc.X, 0, c.width), clamp(ev.Loc.Y, 0, c.height)}
		c.rebuildMapper()
		c.setMode(ModeJumpScrolling)
		return
	}

	c.shape = c.preferredShape
	c.timeline = false
	c.rebuildMapper()
	c.curLoc = Vec2{c.width, clamp(ev.Loc.Y, 0, c.height)}
	c.locSpring = QuickSpring(c.p.FrameRate, c.curLoc)
	c.locSpring.Target = Vec2{c.width - c.p.PreferredPullout, c.curLoc.Y}
	c.setMode(ModeActivating)
}

func (c *Control) onTrack(ev GestureEvent) {
	if !ev.Loc.IsFinite() || !ev.Delta.IsFinite() {
		log.Printf("navigator: dropped non-finite track event (loc=%v delta=%v)", ev.Loc, ev.Delta)
		return
	}
	c.touchDown = true
	if c.mode == ModeActivating {
		progress := (c.width - c.curLoc.X) / c.p.PreferredPullout
		if progress < c.p.InterruptThreshold {
			c.lastTouch = ev.Loc
			return
		}
		c.locSpring = nil
		c.lastTouch = ev.Loc.Sub(ev.Delta)
		c.setMode(ModeTracking)
	} else if c.mode.trackable() {
		if c.mode != ModeTracking && c.mode != ModeJumpScrolling {
			// Fresh grab: the previous gesture's touch point must not
			// leak into the first delta integration.
			c.trackSim = nil
			c.lastTouch = ev.Loc.Sub(ev.Delta)
			c.setMode(ModeTracking)
		}
	} else {
		return
	}

	c.lastTrackAt = c.now
	c.dragVel.AddSample(ev.Delta, ev.Dt)

	if c.mode == ModeJumpScrolling && !c.timeline && ev.Loc.X < c.width-c.p.TimelineFlipMargin {
		c.timeline = true
		c.rebuildMapper()
	}

	var delta float64
	if c.activeShape() == ShapeDial && !c.elastic {
		// The dial ignores the horizontal drag component unless
		// elastic: only vertical motion scrolls, at the anchor's rate.
		delta = c.mapper.VerticalDelta(c.mapper.Pullout(c.curLoc), ev.Delta.Y)
		c.curLoc.Y = clamp(ev.Loc.Y, 0, c.height)
	} else {
		// Timeline and arc compress the integrated delta toward the
		// touch to keep the mapping from diverging under fast drags.
		delta = c.mapper.DragDelta(c.lastTouch, ev.Loc) * c.p.DampingRatio
		c.curLoc = Vec2{clamp(ev.Loc.X, 0, c.width), clamp(ev.Loc.Y, 0, c.height)}
	}

	next := c.curPos + delta
	if !math.IsNaN(next) && !math.IsInf(next, 0) {
		c.curPos = next
	} else {
		log.Printf("navigator: dropped non-finite drag delta (shape=%s from=%v to=%v)",
			c.activeShape(), c.lastTouch, ev.Loc)
	}
	c.clampTracking()
	c.lastTouch = ev.Loc
	c.lastGoodPos = c.curPos
	c.lastGoodLoc = c.curLoc
	c.host.ScrollUpdate(c.curPos, false)
}

func (c *Control) onRelease(ev GestureEvent) {
	c.touchDown = false
	switch c.mode {
	case ModeTracking, ModeJumpScrolling:
		c.impulse = c.now-c.lastTrackAt <= c.p.ImpulseWindow
		c.startRelease()
	case ModePinching:
		c.setMode(ModeQuiescent)
	case ModeActivating:
		// The activation spring finishes first; the settle transition
		// sees touchDown=false and releases then.
	}
}

// startRelease configures the momentum/friction simulation, or stows
// directly when the anchor never left the activation margin.
func (c *Control) startRelease() {
	pullout := c.mapper.Pullout(c.curLoc)
	if pullout < degeneratePullout {
		c.deactivate()
		return
	}
	if pullout <= c.p.ActivationMargin && c.mode != ModeJumpScrolling {
		c.startStow()
		return
	}

	var v0 float64
	if c.impulse {
		// Drag-then-release within the impulse window keeps momentum.
		v0 = c.dragVel.Velocity().Y * c.mapper.Roc(pullout) * c.p.DampingRatio
	}

	// Momentum decays under friction until velocity drops below the
	// snap threshold; the filter then swaps in a spring that settles on
	// the nearest row center.
	var snapTarget float64
	snapSet := false
	snap := SpringForce{K: kQuick, C: cQuick, Target: func(float64) Vec2 {
		return Vec2{0, snapTarget}
	}}
	force := FilterForce{
		Inner: FrictionForce{Drag: c.p.Friction},
		When: func(s PhysicsState, _ float64) bool {
			if math.Abs(s.Vel.Y) >= c.p.SnapVelocity && !snapSet {
				return false
			}
			if !snapSet {
				snapSet = true
				snapTarget = s.Pos.Y
				if i := c.index.NearestRow(s.Pos.Y); i >= 0 {
					snapTarget = c.index.Row(i).Position
				}
			}
			return true
		},
		Then: snap,
	}
	c.trackSim = NewSimulation(
		PhysicsState{Pos: Vec2{0, c.curPos}, Vel: Vec2{0, v0}},
		SettleExit(0.8, 2.0),
		force,
	)
	c.setMode(ModeReleasing)
}

func (c *Control) onSingleTap(ev GestureEvent) {
	if !c.mode.trackable() {
		return
	}
	if c.dragVel.Speed() > c.p.ZeroingVelocity {
		return
	}
	pos := c.positionAtScreen(ev.Loc)
	i := c.index.NearestRow(pos)
	if i < 0 {
		c.startStow()
		return
	}
	// Scroll the tapped row under the anchor's centered resting point.
	c.zeroTarget = clamp(c.index.Row(i).Position-c.height/2, c.minTrack, c.maxTrack)
	c.trackSim = NewSimulation(
		PhysicsState{Pos: Vec2{0, c.curPos}},
		SettleExit(0.8, 2.0),
		StaticSpring(kVeryQuick, cVeryQuick, Vec2{0, c.zeroTarget}),
	)
	c.locSpring = VeryQuickSpring(c.p.FrameRate, c.curLoc)
	c.locSpring.Target = Vec2{c.width - c.p.PreferredPullout, c.height / 2}
	c.setMode(ModeZeroing)
}

func (c *Control) onSwipeLeft() {
	if !c.mode.trackable() {
		return
	}
	// Pull the control fully out and allow horizontal drag to feed the
	// mapping for the rest of the activation.
	c.elastic = true
	c.locSpring = QuickSpring(c.p.FrameRate, c.curLoc)
	c.locSpring.Target = Vec2{c.width - c.p.MaxPullout, c.curLoc.Y}
}

func (c *Control) onSwipeRight() {
	if c.mode.active() {
		c.startStow()
	}
}

func (c *Control) onPinch(ev GestureEvent) {
	if !c.mode.pinchable() {
		return
	}
	c.setMode(ModePinching)
	if ev.Scale <= 0 {
		return
	}
	pullout := clamp(c.mapper.Pullout(c.curLoc)*ev.Scale, 0, c.p.MaxPullout)
	c.curLoc.X = c.width - pullout
	c.lastGoodLoc = c.curLoc
}

func (c *Control) onClose() {
	if !c.mode.active() {
		return
	}
	c.startStow()
}

func (c *Control) startStow() {
	c.trackSim = nil
	c.locSpring = VeryQuickSpring(c.p.FrameRate, c.curLoc)
	c.locSpring.Target = Vec2{c.width, c.curLoc.Y}
	c.setMode(ModeStowing)
}

func (c *Control) startBounce() {
	target := clamp(c.curPos, c.minTrack, c.maxTrack)
	var v0 Vec2
	if c.trackSim != nil {
		v0 = c.trackSim.State.Vel
	}
	c.trackSim = NewSimulation(
		PhysicsState{Pos: Vec2{0, c.curPos}, Vel: v0},
		CrossingExit(target, 0.5),
		StaticSpring(kVeryQuick, cVeryQuick, Vec2{0, target}),
	)
	c.setMode(ModeBouncing)
}

// onTransition handles the internal gesture emitted when a running
// simulation settles.
func (c *Control) onTransition() {
	switch c.mode {
	case ModeActivating:
		c.locSpring = nil
		if c.touchDown {
			c.setMode(ModeTracking)
		} else {
			c.impulse = false
			c.startRelease()
		}
	case ModeReleasing:
		c.trackSim = nil
		if c.outOfBounds() {
			c.startBounce()
			return
		}
		if c.mapper.Pullout(c.curLoc) <= c.p.ActivationMargin {
			c.startStow()
			return
		}
		c.setMode(ModeQuiescent)
	case ModeBouncing:
		c.trackSim = nil
		c.clampTracking()
		c.setMode(ModeQuiescent)
	case ModeZeroing:
		c.trackSim = nil
		// Zoom: collapse the pull-out over the centered row.
		c.locSpring = VeryQuickSpring(c.p.FrameRate, c.curLoc)
		c.locSpring.Target = Vec2{c.width, c.curLoc.Y}
		c.setMode(ModeZooming)
	case ModeZooming, ModeStowing:
		c.locSpring = nil
		c.deactivate()
	}
}

// Tick advances the control by dt seconds. It returns true while more
// frames are needed; at rest the caller should pause the refresh
// subscription to avoid burning CPU.
func (c *Control) Tick(dt float64) bool {
	if dt <= 0 {
		return c.needsFrames()
	}
	c.now += dt
	c.hostVel.Decay(dt)
	if !c.touchDown {
		c.dragVel.Decay(dt)
	}

	prevPos := c.curPos

	switch c.mode {
	case ModeInactive:
		if c.hostVel.Speed() > c.p.ShowVelocity {
			c.quietFor = 0
			c.setMode(ModeScrolling)
		}
	case ModeScrolling:
		if c.hostVel.Speed() < c.p.HideVelocity {
			c.quietFor += dt
			if c.quietFor >= c.p.QuiescenceWindow {
				c.setMode(ModeInactive)
			}
		} else {
			c.quietFor = 0
		}
	case ModeReleasing:
		c.stepTracking(dt)
		if c.mode == ModeReleasing && c.outOfBounds() && c.trackSim != nil && !c.trackSim.Settled() {
			c.startBounce()
		}
	case ModeBouncing, ModeZeroing:
		c.stepTracking(dt)
	case ModeActivating, ModeStowing, ModeZooming,
		ModeTracking, ModeJumpScrolling, ModePinching, ModeQuiescent:
		// Anchor motion only; handled below.
	}
	// The anchor spring runs in whatever mode installed it: activation
	// and stow flows, but also swipe-left pull-out during tracking.
	c.stepLocation()

	c.refreshDerived(dt, prevPos)
	return c.needsFrames()
}

func (c *Control) stepLocation() {
	if c.locSpring == nil {
		return
	}
	next := c.locSpring.Update()
	if !next.IsFinite() {
		log.Printf("navigator: dropped non-finite anchor update (mode=%s target=%v)", c.mode, c.locSpring.Target)
		c.locSpring.Pos = c.lastGoodLoc
		c.locSpring.Vel = Vec2{}
		return
	}
	c.curLoc = next
	c.lastGoodLoc = next
	if c.locSpring.Settled() {
		switch c.mode {
		case ModeActivating, ModeStowing, ModeZooming:
			c.onTransition()
		case ModeZeroing:
			// The tracking simulation drives the transition.
		default:
			c.locSpring = nil
		}
	}
}

func (c *Control) stepTracking(dt float64) {
	if c.trackSim == nil {
		return
	}
	settled := c.trackSim.Step(dt)
	next := c.trackSim.State.Pos.Y
	if math.IsNaN(next) || math.IsInf(next, 0) {
		log.Printf("navigator: dropped non-finite tracking update (mode=%s pos=%v vel=%v)",
			c.mode, c.trackSim.State.Pos, c.trackSim.State.Vel)
		c.trackSim = nil
		c.curPos = c.lastGoodPos
		return
	}
	c.curPos = next
	c.lastGoodPos = next
	if settled {
		if c.mode == ModeZeroing {
			if c.locSpring == nil || c.locSpring.Settled() {
				c.onTransition()
			}
			return
		}
		c.onTransition()
	}
}

// refreshDerived recomputes geometry, labels and the indicator after the
// physics step, and pushes the position to the host.
func (c *Control) refreshDerived(dt float64, prevPos float64) {
	speed := c.hostVel.Speed()
	if v := math.Abs(c.curPos-prevPos) / dt; v > speed {
		speed = v
	}
	c.ind.Update(speed, dt)

	if c.mode.active() && c.index != nil {
		circle := c.mapper.CircleAt(c.curLoc)
		anchorPos := c.anchorPos()
		visLo, visHi := c.mapper.VisibleInterval(circle, c.curLoc, anchorPos)
		curved := !circle.Degenerate && c.pctActive() > 0
		c.placed = c.labels.Refresh(c.index, visLo, visHi, curved, func(pos float64) (Vec2, float64) {
			loc := c.mapper.ScreenForPosition(circle, c.curLoc, anchorPos, pos)
			var angle float64
			if !circle.Degenerate {
				angle = c.mapper.AngleForPosition(circle, c.curLoc, anchorPos, pos)
			}
			return loc, angle
		})
	} else if len(c.placed) > 0 {
		c.placed = nil
	}

	if c.active && c.curPos != prevPos {
		c.host.ScrollUpdate(c.curPos, c.mode != ModeTracking && c.mode != ModeJumpScrolling)
	}
}

func (c *Control) needsFrames() bool {
	if c.mode != ModeInactive {
		return true
	}
	return c.ind.Fading() || c.hostVel.Speed() > c.p.HideVelocity
}

func (c *Control) pctActive() float64 {
	return clamp01(c.mapper.Pullout(c.curLoc) / c.p.PreferredPullout)
}

// anchorPos is the content position under the anchor, the quantity the
// mapper works in.
func (c *Control) anchorPos() float64 {
	return c.curPos + c.curLoc.Y
}

func (c *Control) outOfBounds() bool {
	return c.curPos < c.minTrack || c.curPos > c.maxTrack
}

// clampTracking enforces the scroll-offset bounds invariant. It must
// hold in every mode except RELEASING and BOUNCING, which re-enter
// bounds via the bounce spring.
func (c *Control) clampTracking() {
	if c.mode.overshoots() {
		return
	}
	c.curPos = clamp(c.curPos, c.minTrack, c.maxTrack)
}

// positionAtScreen inverts the screen mapping for hit testing.
func (c *Control) positionAtScreen(loc Vec2) float64 {
	circle := c.mapper.CircleAt(c.curLoc)
	if circle.Degenerate {
		return c.anchorPos() + (loc.Y-c.curLoc.Y)*c.mapper.Roc(c.mapper.Pullout(c.curLoc))
	}
	phi := c.mapper.angleOf(circle, loc)
	return c.mapper.PositionForAngle(circle, c.curLoc, c.anchorPos(), phi)
}

func (c *Control) begin() {
	if !c.active {
		c.active = true
		c.host.ScrollBegin()
	}
}

// deactivate releases every held resource on the way out; it is the
// single exit path for all stow/zoom/forced-close flows.
func (c *Control) deactivate() {
	c.labels.EvictAll()
	c.placed = nil
	c.trackSim = nil
	c.locSpring = nil
	c.timeline = false
	c.elastic = false
	c.impulse = false
	c.clampTracking()
	if c.active {
		c.active = false
		c.host.ScrollFinish()
	}
	c.setMode(ModeInactive)
}

func (c *Control) setMode(m Mode) {
	if c.mode == m {
		return
	}
	c.mode = m
}

// Scene assembles the current draw description.
func (c *Control) Scene() Scene {
	s := Scene{
		Mode:      c.mode,
		Shape:     c.activeShape(),
		Timeline:  c.timeline,
		Width:     c.width,
		Height:    c.height,
		Anchor:    c.curLoc,
		PctActive: c.pctActive(),
	}
	if c.index != nil {
		s.ContentEnd = c.index.ContentEnd()
		s.Ascending = c.index.Ascending()
		s.TimeScale = c.host.TimeScaleSeconds()
	}
	if !c.mode.active() {
		if c.ind.Alpha() > 0 && c.host.DisplayPositionIndicator() && c.index != nil {
			visLo := c.curPos
			visHi := c.curPos + c.height
			y, h := c.ind.Bar(visLo, visHi, s.ContentEnd, c.height)
			s.Indicator = IndicatorState{
				Visible: true,
				Alpha:   c.ind.Alpha(),
				Text:    c.host.FormatPositionIndicator(c.index.TimeForPosition(c.curPos)),
				BarY:    y,
				BarH:    h,
			}
		}
		return s
	}

	s.Circle = c.mapper.CircleAt(c.curLoc)
	s.VisibleLo, s.VisibleHi = c.mapper.VisibleInterval(s.Circle, c.curLoc, c.anchorPos())
	circle, anchor, anchorPos := s.Circle, c.curLoc, c.anchorPos()
	mapper := c.mapper
	s.Place = func(pos float64) (Vec2, float64) {
		loc := mapper.ScreenForPosition(circle, anchor, anchorPos, pos)
		var angle float64
		if !circle.Degenerate {
			angle = mapper.AngleForPosition(circle, anchor, anchorPos, pos)
		}
		return loc, angle
	}
	if c.index != nil {
		s.TimeLo = c.index.TimeForPosition(s.VisibleLo)
		s.TimeHi = c.index.TimeForPosition(s.VisibleHi)
	}
	s.Labels = make([]LabelPlacement, 0, len(c.placed))
	for _, e := range c.placed {
		row := c.index.Row(e.RowIndex)
		s.Labels = append(s.Labels, LabelPlacement{
			Text:     e.Handle.Text(),
			Width:    e.Handle.Width(),
			Alpha:    e.Alpha,
			Angle:    e.Angle,
			Loc:      e.Loc,
			Unviewed: row.Unviewed,
			Time:     row.Timestamp,
		})
	}
	if c.host.DisplayPositionIndicator() {
		y, h := c.ind.Bar(s.VisibleLo, s.VisibleHi, s.ContentEnd, c.height)
		s.Indicator = IndicatorState{
			Visible: true,
			Alpha:   math.Max(c.ind.Alpha(), c.pctActive()),
			// While out, the readout follows the row under the anchor at
			// full precision rather than the coarse scrollbar month.
			Text: c.host.FormatCurrentTime(c.index.TimeForPosition(c.anchorPos())),
			BarY: y,
			BarH: h,
		}
	}
	return s
}
