package navigator

// Indicator derives the scrollbar geometry and the position-indicator
// fade. Pure display state: it never feeds back into the state machine.
type Indicator struct {
	p        Params
	alpha    float64
	quietFor float64
}

func NewIndicator(p Params) *Indicator {
	return &Indicator{p: p}
}

// Update advances the fade given the current scroll speed. The indicator
// fades in proportionally to velocity and fades out after a fixed
// quiescence delay once motion stops.
func (n *Indicator) Update(speed, dt float64) {
	if speed > n.p.HideVelocity {
		n.quietFor = 0
		gain := speed / n.p.ShowVelocity
		if gain > 1 {
			gain = 1
		}
		n.alpha = clamp01(n.alpha + gain*dt/n.p.IndicatorFadeIn)
		return
	}
	n.quietFor += dt
	if n.quietFor >= n.p.IndicatorFadeOut {
		n.alpha = clamp01(n.alpha - dt/n.p.IndicatorFadeIn)
	}
}

func (n *Indicator) Alpha() float64 { return n.alpha }

// Fading reports whether the indicator still needs frames.
func (n *Indicator) Fading() bool { return n.alpha > 0 }

// Bar returns the scrollbar thumb geometry in dots for the visible
// interval. Height is inversely proportional to the visible/total ratio,
// clamped to a minimum.
func (n *Indicator) Bar(visLo, visHi, contentEnd, height float64) (y, h float64) {
	if contentEnd <= 0 || height <= 0 {
		return 0, height
	}
	frac := (visHi - visLo) / contentEnd
	h = clamp(height*frac, n.p.MinScrollbarSize, height)
	span := height - h
	denom := contentEnd - (visHi - visLo)
	if denom <= 0 {
		return 0, h
	}
	y = clamp(span*visLo/denom, 0, span)
	return y, h
}
