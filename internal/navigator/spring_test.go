package navigator

import (
	"math"
	"testing"
)

func stepUntilSettled(t *testing.T, s *Simulation, maxSeconds float64) {
	t.Helper()
	for elapsed := 0.0; elapsed < maxSeconds; elapsed += 1.0 / 30 {
		if s.Step(1.0 / 30) {
			return
		}
	}
	t.Fatalf("simulation did not settle within %vs (pos=%v vel=%v)", maxSeconds, s.State.Pos, s.State.Vel)
}

func TestSpringSettlesOnTarget(t *testing.T) {
	s := NewSimulation(
		PhysicsState{Pos: Vec2{0, 0}},
		SettleExit(0.8, 2.0),
		StaticSpring(kQuick, cQuick, Vec2{0, 100}),
	)
	stepUntilSettled(t, s, 5)
	if math.Abs(s.State.Pos.Y-100) > 1 {
		t.Fatalf("settled at %v, want ~100", s.State.Pos.Y)
	}
}

func TestCrossingExitStopsAtBoundary(t *testing.T) {
	s := NewSimulation(
		PhysicsState{Pos: Vec2{0, 0}},
		CrossingExit(50, 0.5),
		StaticSpring(kVeryQuick, cVeryQuick, Vec2{0, 50}),
	)
	stepUntilSettled(t, s, 5)
	if math.Abs(s.State.Pos.Y-50) > 0.5 {
		t.Fatalf("stopped at %v, want within 0.5 of 50", s.State.Pos.Y)
	}
}

func TestFrictionDecaysMomentum(t *testing.T) {
	s := NewSimulation(
		PhysicsState{Vel: Vec2{0, 100}},
		func(PhysicsState, Vec2) bool { return false },
		FrictionForce{Drag: 4.2},
	)
	for elapsed := 0.0; elapsed < 1.0; elapsed += 1.0 / 30 {
		s.Step(1.0 / 30)
	}
	// v(t) = v0 * e^(-drag*t); after 1s that is ~1.5.
	if got := s.State.Vel.Y; got > 5 {
		t.Fatalf("velocity after 1s of friction = %v, want < 5", got)
	}
	if s.State.Pos.Y <= 0 {
		t.Fatal("friction should coast forward, not reverse")
	}
}

func TestFilterForceSwapsOnCondition(t *testing.T) {
	swapped := false
	f := FilterForce{
		Inner: FrictionForce{Drag: 4.2},
		When: func(s PhysicsState, _ float64) bool {
			if math.Abs(s.Vel.Y) < 30 {
				swapped = true
			}
			return swapped
		},
		Then: StaticSpring(kQuick, cQuick, Vec2{0, 0}),
	}
	s := NewSimulation(PhysicsState{Vel: Vec2{0, 200}}, SettleExit(0.8, 2.0), f)
	stepUntilSettled(t, s, 10)
	if !swapped {
		t.Fatal("filter never swapped to the snap spring")
	}
	if math.Abs(s.State.Pos.Y) > 1 {
		t.Fatalf("snap spring settled at %v, want ~0", s.State.Pos.Y)
	}
}

func TestAnchorSpringSettles(t *testing.T) {
	sp := QuickSpring(30, Vec2{72, 48})
	sp.Target = Vec2{36, 48}
	for i := 0; i < 300 && !sp.Settled(); i++ {
		sp.Update()
	}
	if !sp.Settled() {
		t.Fatalf("spring never settled (pos=%v)", sp.Pos)
	}
	if sp.Pos.Sub(sp.Target).Len() > 0.5 {
		t.Fatalf("settled at %v, want ~%v", sp.Pos, sp.Target)
	}
}

func TestVeryQuickSpringBarelyOvershoots(t *testing.T) {
	sp := VeryQuickSpring(30, Vec2{0, 0})
	sp.Target = Vec2{0, 100}
	max := 0.0
	for i := 0; i < 300 && !sp.Settled(); i++ {
		sp.Update()
		if sp.Pos.Y > max {
			max = sp.Pos.Y
		}
	}
	if max > 105 {
		t.Fatalf("near-critical spring overshot to %v, want < 105", max)
	}
}

func TestStepClampsLargeDt(t *testing.T) {
	s := NewSimulation(
		PhysicsState{Pos: Vec2{0, 0}},
		SettleExit(0.8, 2.0),
		StaticSpring(kQuick, cQuick, Vec2{0, 100}),
	)
	// A single huge dt (a stalled frame) must not blow up the integrator.
	s.Step(10)
	if !s.State.Pos.IsFinite() || !s.State.Vel.IsFinite() {
		t.Fatalf("state diverged: pos=%v vel=%v", s.State.Pos, s.State.Vel)
	}
	if s.State.Pos.Y > 200 {
		t.Fatalf("position %v overshot wildly on a clamped step", s.State.Pos.Y)
	}
}
