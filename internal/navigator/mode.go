package navigator

// Mode is the control's gesture/animation state. Exactly one is active.
type Mode uint8

const (
	ModeInactive Mode = iota
	ModeScrolling
	ModeActivating
	ModeTracking
	ModeReleasing
	ModeBouncing
	ModePinching
	ModeQuiescent
	ModeZeroing
	ModeZooming
	ModeStowing
	ModeJumpScrolling
)

func (m Mode) String() string {
	switch m {
	case ModeInactive:
		return "inactive"
	case ModeScrolling:
		return "scrolling"
	case ModeActivating:
		return "activating"
	case ModeTracking:
		return "tracking"
	case ModeReleasing:
		return "releasing"
	case ModeBouncing:
		return "bouncing"
	case ModePinching:
		return "pinching"
	case ModeQuiescent:
		return "quiescent"
	case ModeZeroing:
		return "zeroing"
	case ModeZooming:
		return "zooming"
	case ModeStowing:
		return "stowing"
	case ModeJumpScrolling:
		return "jump-scrolling"
	}
	return "unknown"
}

// trackable reports whether a TRACK gesture may drive this mode directly
// into TRACKING. ACTIVATING is handled separately: it becomes trackable
// only past the interrupt threshold.
func (m Mode) trackable() bool {
	switch m {
	case ModeQuiescent, ModeTracking, ModeReleasing, ModeBouncing, ModeJumpScrolling:
		return true
	}
	return false
}

func (m Mode) pinchable() bool {
	switch m {
	case ModeTracking, ModeQuiescent, ModePinching:
		return true
	}
	return false
}

// overshoots reports whether the tracking-bounds invariant is suspended:
// RELEASING and BOUNCING may leave bounds and re-enter via the bounce
// spring.
func (m Mode) overshoots() bool {
	return m == ModeReleasing || m == ModeBouncing
}

// active reports whether the control is visually out (scroll feedback
// protocol is open).
func (m Mode) active() bool {
	switch m {
	case ModeInactive, ModeScrolling:
		return false
	}
	return true
}

// Gesture is a raw input interpreted by the state machine.
type Gesture uint8

const (
	GestureNone Gesture = iota
	GestureTrack
	GestureActivation
	GestureSingleTap
	GestureSwipeLeft
	GestureSwipeRight
	GesturePinch
	GestureRelease
	GestureBounce
	GestureOpen
	GestureClose
	GestureTransition
)

func (g Gesture) String() string {
	switch g {
	case GestureNone:
		return "none"
	case GestureTrack:
		return "track"
	case GestureActivation:
		return "activation"
	case GestureSingleTap:
		return "single-tap"
	case GestureSwipeLeft:
		return "swipe-left"
	case GestureSwipeRight:
		return "swipe-right"
	case GesturePinch:
		return "pinch"
	case GestureRelease:
		return "release"
	case GestureBounce:
		return "bounce"
	case GestureOpen:
		return "open"
	case GestureClose:
		return "close"
	case GestureTransition:
		return "transition"
	}
	return "unknown"
}

// GestureEvent carries a gesture with its touch context.
type GestureEvent struct {
	Kind  Gesture
	Loc   Vec2    // touch location in dot coordinates
	Delta Vec2    // movement since the previous event (TRACK)
	Scale float64 // pinch magnitude, 1 = no change
	Dt    float64 // seconds since the previous event of this gesture
}
