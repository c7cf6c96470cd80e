package viewport

import "math"

// Spring defaults: critically damped, 10 rad/s, 6000 px/s top speed.
const (
	DefaultOmega    = 10.0
	DefaultZeta     = 1.0
	DefaultMaxSpeed = 6000.0

	// MaxStep is the largest dt integrated; longer gaps are frame stalls.
	MaxStep = 0.1
)

// Vec is a real-valued 2D vector in virtual desktop pixels.
type Vec struct {
	X float64
	Y float64
}

// Len returns the Euclidean length of v.
func (v Vec) Len() float64 {
	return math.Hypot(v.X, v.Y)
}

// Scale returns v multiplied by s.
func (v Vec) Scale(s float64) Vec {
	return Vec{X: v.X * s, Y: v.Y * s}
}

// Spring is a second-order damped follow model. Omega is the natural angular
// frequency in rad/s, Zeta the damping ratio and MaxSpeed a hard cap on the
// velocity magnitude in px/s.
type Spring struct {
	Omega    float64
	Zeta     float64
	MaxSpeed float64
}

// DefaultSpring returns the critically damped default model.
func DefaultSpring() Spring {
	return Spring{Omega: DefaultOmega, Zeta: DefaultZeta, MaxSpeed: DefaultMaxSpeed}
}

// Step advances center and velocity towards target by dt seconds.
//
// A dt outside (0, MaxStep] is not integrated: center and velocity are
// returned unchanged so a stalled or first frame cannot inject energy.
// Velocity is updated before position (semi-implicit Euler), which keeps the
// critically damped case free of overshoot at display refresh rates.
func (s Spring) Step(center, velocity, target Vec, dt float64) (Vec, Vec) {
	if dt <= 0 || dt > MaxStep {
		return center, velocity
	}

	ex := center.X - target.X
	ey := center.Y - target.Y
	k := s.Omega * s.Omega
	c := 2 * s.Zeta * s.Omega

	velocity.X += (-c*velocity.X - k*ex) * dt
	velocity.Y += (-c*velocity.Y - k*ey) * dt

	if s.MaxSpeed > 0 {
		if speed := velocity.Len(); speed > s.MaxSpeed {
			velocity = velocity.Scale(s.MaxSpeed / speed)
		}
	}

	center.X += velocity.X * dt
	center.Y += velocity.Y * dt
	return center, velocity
}
