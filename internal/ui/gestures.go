package ui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/viewfinderco/feeddial/internal/navigator"
)

const (
	// dragSlop is the maximum travel (in dots) a press may accumulate
	// and still count as a tap or long-press.
	dragSlop       = 3.0
	tapMaxDuration = 300 * time.Millisecond
	longPressDelay = 350 * time.Millisecond
	// swipeMinSpeed separates a flick at release time from a drag that
	// merely stopped, in dots per second.
	swipeMinSpeed = 160.0
)

// recognizer turns the terminal mouse stream into the control's gesture
// vocabulary. The rules are fixed: a pan cancels the pending long-press
// and excludes taps; a tap is only delivered on release, after the
// long-press timer has failed to fire; swipes are classified from the
// release-time velocity of a pan. Terminal mice carry no multitouch, so
// pinches arrive separately via keys and the ctrl-wheel.
type recognizer struct {
	ctrl *navigator.Control
	p    navigator.Params
	vel  *navigator.VelocityTracker

	pressed   bool
	panning   bool
	longFired bool
	seq       int
	pressLoc  navigator.Vec2
	lastLoc   navigator.Vec2
	pressAt   time.Time
	lastAt    time.Time
	maxTravel float64
}

func newRecognizer(ctrl *navigator.Control, p navigator.Params) *recognizer {
	return &recognizer{ctrl: ctrl, p: p, vel: navigator.NewVelocityTrackerFrom(p)}
}

// press starts a touch at loc. It arms the long-press timer; the
// returned command delivers longPressMsg with the current sequence.
func (r *recognizer) press(loc navigator.Vec2, now time.Time) tea.Cmd {
	r.pressed = true
	r.panning = false
	r.longFired = false
	r.seq++
	r.pressLoc = loc
	r.lastLoc = loc
	r.pressAt = now
	r.lastAt = now
	r.maxTravel = 0
	r.vel.Reset()
	return longPressAfter(longPressDelay, r.seq)
}

// motion feeds a drag sample. Crossing the slop converts the press into
// a pan, which invalidates the long-press timer for good.
func (r *recognizer) motion(loc navigator.Vec2, now time.Time) {
	if !r.pressed {
		return
	}
	dt := now.Sub(r.lastAt).Seconds()
	delta := loc.Sub(r.lastLoc)
	r.vel.AddSample(delta, dt)

	if travel := loc.Sub(r.pressLoc).Len(); travel > r.maxTravel {
		r.maxTravel = travel
	}
	if !r.panning && !r.longFired && r.maxTravel > dragSlop {
		r.panning = true
		r.seq++ // long-press fails once a pan begins
	}
	if r.panning || r.longFired {
		r.ctrl.HandleGesture(navigator.GestureEvent{
			Kind:  navigator.GestureTrack,
			Loc:   loc,
			Delta: delta,
			Dt:    dt,
		})
	}
	r.lastLoc = loc
	r.lastAt = now
}

// release ends the touch: a pan resolves to RELEASE (plus a swipe when
// the release-time velocity points firmly sideways), a short still press
// resolves to SINGLE_TAP, and anything else is dropped.
func (r *recognizer) release(loc navigator.Vec2, now time.Time) {
	if !r.pressed {
		return
	}
	r.pressed = false
	r.seq++ // cancel any timer still in flight

	if r.longFired {
		r.ctrl.HandleGesture(navigator.GestureEvent{Kind: navigator.GestureRelease, Loc: loc})
		return
	}
	if r.panning {
		r.ctrl.HandleGesture(navigator.GestureEvent{Kind: navigator.GestureRelease, Loc: loc})
		if r.vel.Speed() >= swipeMinSpeed {
			if r.vel.DirectionConfidence(navigator.Vec2{X: -1}) >= r.p.SwipeConfidence {
				r.ctrl.HandleGesture(navigator.GestureEvent{Kind: navigator.GestureSwipeLeft, Loc: loc})
			} else if r.vel.DirectionConfidence(navigator.Vec2{X: 1}) >= r.p.SwipeConfidence {
				r.ctrl.HandleGesture(navigator.GestureEvent{Kind: navigator.GestureSwipeRight, Loc: loc})
			}
		}
		return
	}
	if now.Sub(r.pressAt) <= tapMaxDuration {
		r.ctrl.HandleGesture(navigator.GestureEvent{Kind: navigator.GestureSingleTap, Loc: loc})
	}
}

// longPress handles a fired timer. A stale sequence means the press
// moved or lifted in the meantime and the timer loses.
func (r *recognizer) longPress(seq int) {
	if seq != r.seq || !r.pressed || r.panning {
		return
	}
	r.longFired = true
	r.ctrl.HandleGesture(navigator.GestureEvent{
		Kind: navigator.GestureActivation,
		Loc:  r.lastLoc,
	})
}
