package engine

import "math"

// StepPhysics integrates one tick of pedal input into the attempt's speed and
// position. Throttle alone accelerates, brake alone decelerates, and every
// other combination coasts under friction; holding both pedals is treated
// identically to holding neither. Returns true when the car has come to a dead
// stop, which is fatal unless the throttle is held (acceleration will lift the
// speed next tick).
func (a *AttemptState) StepPhysics(in TickInput, dt float64, p PhysicsParams) bool {
	prev := a.Speed

	switch {
	case in.Throttle && !in.Brake:
		a.Speed += p.Accel * dt
	case in.Brake && !in.Throttle:
		a.Speed -= p.Brake * dt
	default:
		a.Speed -= p.Friction * dt
	}
	a.Speed = clamp(a.Speed, 0, p.MaxSpeed)

	// Smoothness only counts deliberate speed changes. Friction-only ticks do
	// not accumulate, so coasting to a stop costs nothing.
	if in.Throttle || in.Brake {
		a.SpeedChange += math.Abs(a.Speed - prev)
	}
	a.PrevSpeed = prev

	a.Position += a.Speed * p.PixelsPerKMH * dt

	return a.Speed == 0 && !in.Throttle
}
