package engine

// Stepper converts monotonic wall-clock timestamps into bounded simulation
// deltas. A delta above maxDelta (a dropped or backgrounded frame) is
// discarded entirely so the simulation never takes one large, unrealistic
// jump; the very next normal-sized delta resumes ticking.
type Stepper struct {
	lastTime float64
	started  bool
	maxDelta float64
}

// NewStepper creates a stepper with the given skip threshold in seconds. A
// non-positive threshold falls back to the default physics tuning.
func NewStepper(maxDelta float64) *Stepper {
	if maxDelta <= 0 {
		maxDelta = DefaultPhysicsParams().MaxFrameDelta
	}
	return &Stepper{maxDelta: maxDelta}
}

// Step records a new timestamp and returns the delta to simulate. ok is false
// when the tick must be skipped: the first frame, a non-monotonic timestamp,
// or an anomalously large delta.
func (s *Stepper) Step(now float64) (dt float64, ok bool) {
	if !s.started {
		s.started = true
		s.lastTime = now
		return 0, false
	}

	dt = now - s.lastTime
	s.lastTime = now

	if dt <= 0 || dt > s.maxDelta {
		return 0, false
	}
	return dt, true
}

// Reset forgets the previous timestamp, so the next Step only primes the
// stepper. Called whenever an attempt starts or restarts.
func (s *Stepper) Reset() {
	s.started = false
	s.lastTime = 0
}

// MaxDelta returns the skip threshold
func (s *Stepper) MaxDelta() float64 {
	return s.maxDelta
}
