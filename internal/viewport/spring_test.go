package viewport

import (
	"math"
	"testing"
)

// TestSpringNoOvershoot tests that the critically damped default never passes a held target
func TestSpringNoOvershoot(t *testing.T) {
	s := DefaultSpring()
	center := Vec{}
	velocity := Vec{}
	target := Vec{X: 1000}
	dt := 1.0 / 60

	prev := center.X
	for i := 0; i < 120; i++ {
		center, velocity = s.Step(center, velocity, target, dt)
		if center.X < prev-1e-9 {
			t.Fatalf("Step %d: center moved backwards from %f to %f", i, prev, center.X)
		}
		if center.X > target.X+1e-9 {
			t.Fatalf("Step %d: center overshot target: %f", i, center.X)
		}
		if center.Y != 0 {
			t.Fatalf("Step %d: unexpected motion on Y axis: %f", i, center.Y)
		}
		prev = center.X
	}

	if math.Abs(center.X-target.X) > 5 {
		t.Errorf("Expected center to settle near target after 2s, got %f", center.X)
	}
}

func TestSpringSpeedClamp(t *testing.T) {
	s := DefaultSpring()

	_, v := s.Step(Vec{}, Vec{}, Vec{X: 100000, Y: 50000}, 0.05)
	if got := v.Len(); math.Abs(got-DefaultMaxSpeed) > 1e-6 {
		t.Errorf("Expected speed clamped to %v, got %v", DefaultMaxSpeed, got)
	}

	// Direction is preserved by the clamp
	if math.Abs(v.X/v.Y-2) > 1e-9 {
		t.Errorf("Expected clamped velocity to keep direction 2:1, got %v", v)
	}

	_, v = s.Step(Vec{}, Vec{X: 9000}, Vec{}, 0.01)
	if got := v.Len(); math.Abs(got-DefaultMaxSpeed) > 1e-6 {
		t.Errorf("Expected incoming overspeed clamped to %v, got %v", DefaultMaxSpeed, got)
	}
}

func TestSpringDegenerateStep(t *testing.T) {
	s := DefaultSpring()
	center := Vec{X: 10, Y: 20}
	velocity := Vec{X: 300, Y: -40}
	target := Vec{X: 500, Y: 500}

	for _, dt := range []float64{0, -0.01, 0.2, MaxStep + 1e-9} {
		c, v := s.Step(center, velocity, target, dt)
		if c != center || v != velocity {
			t.Errorf("dt=%v: expected unchanged state, got center %v velocity %v", dt, c, v)
		}
	}

	if c, _ := s.Step(center, velocity, target, MaxStep); c == center {
		t.Error("Expected dt == MaxStep to be integrated")
	}
}
