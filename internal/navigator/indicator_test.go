package navigator

import (
	"math"
	"testing"
)

func TestIndicatorFadesInWithVelocity(t *testing.T) {
	ind := NewIndicator(DefaultParams())
	for i := 0; i < 10; i++ {
		ind.Update(100, 1.0/30)
	}
	if ind.Alpha() != 1 {
		t.Fatalf("alpha = %v, want 1 after sustained motion", ind.Alpha())
	}
}

func TestIndicatorFadeInScalesWithSpeed(t *testing.T) {
	p := DefaultParams()
	slow := NewIndicator(p)
	fast := NewIndicator(p)
	slow.Update(p.HideVelocity+1, 1.0/30)
	fast.Update(p.ShowVelocity*2, 1.0/30)
	if slow.Alpha() >= fast.Alpha() {
		t.Fatalf("slow fade-in %v not below fast %v", slow.Alpha(), fast.Alpha())
	}
}

func TestIndicatorWaitsThroughQuiescence(t *testing.T) {
	p := DefaultParams()
	ind := NewIndicator(p)
	for i := 0; i < 10; i++ {
		ind.Update(100, 1.0/30)
	}
	// Quiet, but shorter than the fade-out delay: alpha holds.
	for elapsed := 0.0; elapsed < p.IndicatorFadeOut-0.1; elapsed += 1.0 / 30 {
		ind.Update(0, 1.0/30)
	}
	if ind.Alpha() != 1 {
		t.Fatalf("alpha = %v during quiescence delay, want 1", ind.Alpha())
	}
	// Past the delay it fades out completely.
	for elapsed := 0.0; elapsed < 1.0; elapsed += 1.0 / 30 {
		ind.Update(0, 1.0/30)
	}
	if ind.Alpha() != 0 {
		t.Fatalf("alpha = %v after fade-out, want 0", ind.Alpha())
	}
	if ind.Fading() {
		t.Fatal("Fading() true at zero alpha")
	}
}

func TestBarGeometry(t *testing.T) {
	ind := NewIndicator(DefaultParams())

	y, h := ind.Bar(0, 96, 1600, 96)
	if y != 0 {
		t.Fatalf("thumb at top: y = %v, want 0", y)
	}
	if math.Abs(h-6) > 1e-9 {
		t.Fatalf("thumb height = %v, want clamped minimum 6", h)
	}

	y, h = ind.Bar(1504, 1600, 1600, 96)
	if math.Abs((y+h)-96) > 1e-6 {
		t.Fatalf("thumb at bottom: y+h = %v, want 96", y+h)
	}

	// Shorter content gets a proportionally taller thumb.
	_, tall := ind.Bar(0, 96, 192, 96)
	if math.Abs(tall-48) > 1e-9 {
		t.Fatalf("half-visible thumb height = %v, want 48", tall)
	}

	y, h = ind.Bar(0, 96, 0, 96)
	if y != 0 || h != 96 {
		t.Fatalf("empty content thumb = (%v, %v), want full height", y, h)
	}
}
