package navigator

import "math"

// VelocityTracker keeps an exponentially decayed running average of 2-D
// motion speed from a stream of (displacement, duration) samples.
type VelocityTracker struct {
	halfLife    float64
	minInterval float64
	minSpeed    float64
	maxSpeed    float64

	totalMove Vec2
	totalDur  float64

	pendingMove Vec2
	pendingDur  float64
}

// NewVelocityTracker builds a tracker with half-life h seconds. Samples
// arriving closer together than minInterval are coalesced; samples whose
// instantaneous speed falls outside [minSpeed, maxSpeed] are dropped or
// capped respectively.
func NewVelocityTracker(h, minInterval, minSpeed, maxSpeed float64) *VelocityTracker {
	return &VelocityTracker{
		halfLife:    h,
		minInterval: minInterval,
		minSpeed:    minSpeed,
		maxSpeed:    maxSpeed,
	}
}

func NewVelocityTrackerFrom(p Params) *VelocityTracker {
	return NewVelocityTracker(p.VelocityHalfLife, p.MinSampleInterval, p.MinVelocity, p.MaxVelocity)
}

// AddSample records a displacement observed over dt seconds.
func (t *VelocityTracker) AddSample(move Vec2, dt float64) {
	if dt <= 0 {
		return
	}
	t.pendingMove = t.pendingMove.Add(move)
	t.pendingDur += dt
	if t.pendingDur < t.minInterval {
		return
	}
	move, dt = t.pendingMove, t.pendingDur
	t.pendingMove, t.pendingDur = Vec2{}, 0

	speed := move.Len() / dt
	if speed < t.minSpeed {
		// Noise floor: decay the average without feeding it.
		move = Vec2{}
	} else if speed > t.maxSpeed {
		move = move.Scale(t.maxSpeed / speed)
	}

	decay := math.Exp(-math.Ln2 * dt / t.halfLife)
	t.totalMove = t.totalMove.Scale(decay).Add(move)
	t.totalDur = t.totalDur*decay + dt
}

// Decay lets the average fall off over dt seconds of silence.
func (t *VelocityTracker) Decay(dt float64) {
	t.AddSample(Vec2{}, dt)
}

// Velocity returns the current estimate in dots per second.
func (t *VelocityTracker) Velocity() Vec2 {
	if t.totalDur <= 0 {
		return Vec2{}
	}
	return t.totalMove.Scale(1 / t.totalDur)
}

func (t *VelocityTracker) Speed() float64 {
	return t.Velocity().Len()
}

// DirectionConfidence returns the normalized-velocity dot product against
// dir, used to classify swipes. Zero velocity yields zero confidence.
func (t *VelocityTracker) DirectionConfidence(dir Vec2) float64 {
	return t.Velocity().Norm().Dot(dir.Norm())
}

func (t *VelocityTracker) Reset() {
	t.totalMove = Vec2{}
	t.totalDur = 0
	t.pendingMove = Vec2{}
	t.pendingDur = 0
}
