package navigator

import "github.com/charmbracelet/harmonica"

// PhysicsState is a (position, velocity) pair advanced by a Simulation.
type PhysicsState struct {
	Pos Vec2
	Vel Vec2
}

// Force produces an acceleration from the current state and elapsed time.
type Force interface {
	Accel(s PhysicsState, t float64) Vec2
}

// SpringForce pulls the state toward a (possibly moving) target:
// a = -k(p - target(t)) - c*v.
type SpringForce struct {
	K      float64
	C      float64
	Target func(t float64) Vec2
}

func (f SpringForce) Accel(s PhysicsState, t float64) Vec2 {
	return s.Pos.Sub(f.Target(t)).Scale(-f.K).Sub(s.Vel.Scale(f.C))
}

// StaticSpring is a SpringForce with a fixed target.
func StaticSpring(k, c float64, target Vec2) SpringForce {
	return SpringForce{K: k, C: c, Target: func(float64) Vec2 { return target }}
}

// FrictionForce decays momentum after release: a = -drag*v.
type FrictionForce struct {
	Drag float64
}

func (f FrictionForce) Accel(s PhysicsState, _ float64) Vec2 {
	return s.Vel.Scale(-f.Drag)
}

// FilterForce vetoes Inner and substitutes Then once When reports true.
// Used to blend "let momentum run" with "snap to center" after velocity
// drops below a threshold.
type FilterForce struct {
	Inner Force
	When  func(s PhysicsState, t float64) bool
	Then  Force
}

func (f FilterForce) Accel(s PhysicsState, t float64) Vec2 {
	if f.When(s, t) {
		return f.Then.Accel(s, t)
	}
	return f.Inner.Accel(s, t)
}

// ExitFunc reports whether the simulation reached its exit condition.
type ExitFunc func(s PhysicsState, accel Vec2) bool

// SettleExit is the default exit: velocity and acceleration both near zero.
func SettleExit(velEps, accEps float64) ExitFunc {
	return func(s PhysicsState, a Vec2) bool {
		return s.Vel.Len() < velEps && a.Len() < accEps
	}
}

// CrossingExit stops as soon as Pos.Y reaches target within tol, for the
// bounce-correction spring which must not oscillate past the boundary.
func CrossingExit(target, tol float64) ExitFunc {
	return func(s PhysicsState, _ Vec2) bool {
		d := s.Pos.Y - target
		if d < 0 {
			d = -d
		}
		return d < tol
	}
}

const (
	simMaxStep = 1.0 / 20
	simSubStep = 1.0 / 240
)

// Simulation integrates a PhysicsState under a set of forces. It is not
// re-entrant: it must be stepped from the same loop as the state machine.
type Simulation struct {
	State   PhysicsState
	forces  []Force
	exit    ExitFunc
	elapsed float64
	settled bool
}

func NewSimulation(state PhysicsState, exit ExitFunc, forces ...Force) *Simulation {
	if exit == nil {
		exit = SettleExit(1, 1)
	}
	return &Simulation{State: state, forces: forces, exit: exit}
}

func (s *Simulation) accel() Vec2 {
	var a Vec2
	for _, f := range s.forces {
		a = a.Add(f.Accel(s.State, s.elapsed))
	}
	return a
}

// Step advances the state by dt seconds (clamped, sub-stepped for
// stability) and reports whether the exit condition was reached.
func (s *Simulation) Step(dt float64) bool {
	if s.settled {
		return true
	}
	if dt > simMaxStep {
		dt = simMaxStep
	}
	for dt > 0 {
		h := simSubStep
		if h > dt {
			h = dt
		}
		a := s.accel()
		s.State.Vel = s.State.Vel.Add(a.Scale(h))
		s.State.Pos = s.State.Pos.Add(s.State.Vel.Scale(h))
		s.elapsed += h
		dt -= h
		if s.exit(s.State, a) {
			s.settled = true
			return true
		}
	}
	return false
}

func (s *Simulation) Settled() bool { return s.settled }

// AnchorSpring drives the anchor's screen location with a harmonica
// spring, one axis per component. Two tunings are used throughout: the
// slightly underdamped "quick" spring for activation pull-out, and the
// near-critically damped "very-quick" spring for stow and center snaps.
type AnchorSpring struct {
	spring harmonica.Spring
	Pos    Vec2
	Vel    Vec2
	Target Vec2
}

func newAnchorSpring(fps int, freq, damping float64, at Vec2) *AnchorSpring {
	return &AnchorSpring{
		spring: harmonica.NewSpring(harmonica.FPS(fps), freq, damping),
		Pos:    at,
		Target: at,
	}
}

// QuickSpring has a pleasing, slightly underdamped feel.
func QuickSpring(fps int, at Vec2) *AnchorSpring {
	return newAnchorSpring(fps, 7.5, 0.6, at)
}

// VeryQuickSpring snaps with almost no overshoot.
func VeryQuickSpring(fps int, at Vec2) *AnchorSpring {
	return newAnchorSpring(fps, 12.0, 0.92, at)
}

// Update advances one frame toward the target.
func (a *AnchorSpring) Update() Vec2 {
	a.Pos.X, a.Vel.X = a.spring.Update(a.Pos.X, a.Vel.X, a.Target.X)
	a.Pos.Y, a.Vel.Y = a.spring.Update(a.Pos.Y, a.Vel.Y, a.Target.Y)
	return a.Pos
}

// Settled reports that the spring is at rest on its target.
func (a *AnchorSpring) Settled() bool {
	return a.Pos.Sub(a.Target).Len() < 0.25 && a.Vel.Len() < 0.5
}
