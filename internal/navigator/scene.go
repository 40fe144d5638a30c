package navigator

// LabelPlacement is one label ready to draw, in dot coordinates.
type LabelPlacement struct {
	Text     string
	Width    int
	Alpha    float64
	Angle    float64
	Loc      Vec2
	Unviewed bool
	Time     float64
}

// IndicatorState is the derived scrollbar/position-indicator display.
type IndicatorState struct {
	Visible bool
	Alpha   float64
	Text    string
	BarY    float64
	BarH    float64
}

// Scene is the per-frame draw description the renderer consumes.
type Scene struct {
	Mode     Mode
	Shape    Shape
	Timeline bool

	Width  float64 // dots
	Height float64 // dots

	Anchor    Vec2
	Circle    Circle
	PctActive float64 // pull-out fraction; drives gradient and ownership

	VisibleLo  float64
	VisibleHi  float64
	ContentEnd float64
	TimeLo     float64
	TimeHi     float64
	TimeScale  float64
	Ascending  bool

	Labels    []LabelPlacement
	Indicator IndicatorState

	// Place maps a scroll position to its screen location and arc
	// angle under the frame's geometry. Nil while inactive.
	Place func(pos float64) (Vec2, float64)
}
