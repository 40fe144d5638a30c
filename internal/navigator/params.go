package navigator

// Params holds the tuned constants for the control. Distances are in dot
// coordinates (2 dots per cell horizontally, 4 vertically), durations in
// seconds, velocities in dots per second.
type Params struct {
	FrameRate int

	// Activation geometry.
	ActivationMargin   float64 // touch must start this close to the right edge
	JumpScrollMargin   float64 // inner strip that starts jump scrolling directly
	TimelineFlipMargin float64 // dragging left past this flips jump scroll to timeline
	PreferredPullout   float64 // resting pull-out the activation spring drives toward
	MaxPullout         float64
	InterruptThreshold float64 // pull-out fraction past which ACTIVATING accepts TRACK

	// Gesture classification.
	ImpulseWindow    float64 // drag→release gap that preserves momentum
	QuiescenceWindow float64 // SCROLLING→INACTIVE delay once velocity drops
	ShowVelocity     float64 // host scroll speed that wakes the control
	HideVelocity     float64
	ZeroingVelocity  float64 // taps above this speed are ignored
	SwipeConfidence  float64 // dot product against a cardinal direction

	// Velocity tracker.
	VelocityHalfLife  float64
	MinSampleInterval float64
	MinVelocity       float64
	MaxVelocity       float64

	// Tracking feel.
	DampingRatio float64 // compresses timeline/arc drag deltas toward the touch
	Friction     float64 // momentum decay after release
	SnapVelocity float64 // below this the release filter blends in the center snap

	// Labels.
	MaxLabelRows        int
	LabelHeight         float64
	FadeDistance        float64
	VisibilityCutoff    float64
	EvictExpand         float64 // bracket expansion before eviction
	MaxNewLabelsPerTick int

	// Mapper numerics.
	BisectIterations int
	BisectTolerance  float64 // dots of arc length

	// Indicator.
	IndicatorFadeIn  float64 // seconds to full alpha at ShowVelocity
	IndicatorFadeOut float64 // quiescence delay before fading out
	MinScrollbarSize float64
}

// DefaultParams returns the tuning used by the shipped control.
func DefaultParams() Params {
	return Params{
		FrameRate:           30,
		ActivationMargin:    14,
		JumpScrollMargin:    5,
		TimelineFlipMargin:  50,
		PreferredPullout:    36,
		MaxPullout:          72,
		InterruptThreshold:  0.35,
		ImpulseWindow:       0.2,
		QuiescenceWindow:    0.5,
		ShowVelocity:        40,
		HideVelocity:        12,
		ZeroingVelocity:     25,
		SwipeConfidence:     0.8,
		VelocityHalfLife:    0.12,
		MinSampleInterval:   0.004,
		MinVelocity:         2,
		MaxVelocity:         4000,
		DampingRatio:        0.65,
		Friction:            4.2,
		SnapVelocity:        30,
		MaxLabelRows:        12,
		LabelHeight:         4,
		FadeDistance:        6,
		VisibilityCutoff:    0.05,
		EvictExpand:         0.1,
		MaxNewLabelsPerTick: 4,
		BisectIterations:    12,
		BisectTolerance:     0.5,
		IndicatorFadeIn:     0.15,
		IndicatorFadeOut:    0.9,
		MinScrollbarSize:    6,
	}
}
