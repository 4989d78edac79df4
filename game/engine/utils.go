package engine

import "math"

// floorMod is a true modulo: the result is always in [0, m) even when x is
// negative, unlike math.Mod which keeps the sign of x.
func floorMod(x, m float64) float64 {
	r := math.Mod(x, m)
	if r < 0 {
		r += m
	}
	return r
}

// clamp bounds v to the [lo, hi] interval
func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// EarliestFinishTime returns the time a car needs to cross the finish line at
// constant full throttle, ignoring lights. Used by the analysis tooling to
// judge level difficulty.
func EarliestFinishTime(lvl *LevelConfig, p PhysicsParams) float64 {
	speed := lvl.StartSpeed
	pos := 0.0
	t := 0.0
	const dt = 0.01
	for pos <= lvl.FinishPosition {
		speed = clamp(speed+p.Accel*dt, 0, p.MaxSpeed)
		pos += speed * p.PixelsPerKMH * dt
		t += dt
		if t > 3600 {
			break
		}
	}
	return t
}
