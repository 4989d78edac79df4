package engine

import (
	"math"
	"testing"
)

func testAttempt(speed float64) *AttemptState {
	return &AttemptState{
		Speed:     speed,
		PrevSpeed: speed,
		Status:    StatusPlaying,
	}
}

func TestStepPhysics_Throttle(t *testing.T) {
	p := DefaultPhysicsParams()
	a := testAttempt(40)

	a.StepPhysics(TickInput{Throttle: true}, 0.1, p)

	expected := 40 + p.Accel*0.1
	if math.Abs(a.Speed-expected) > 1e-9 {
		t.Errorf("Expected speed %v after throttle, got %v", expected, a.Speed)
	}
	if a.Position <= 0 {
		t.Error("Expected position to advance")
	}
}

func TestStepPhysics_Brake(t *testing.T) {
	p := DefaultPhysicsParams()
	a := testAttempt(40)

	a.StepPhysics(TickInput{Brake: true}, 0.1, p)

	expected := 40 - p.Brake*0.1
	if math.Abs(a.Speed-expected) > 1e-9 {
		t.Errorf("Expected speed %v after braking, got %v", expected, a.Speed)
	}
}

func TestStepPhysics_Coast(t *testing.T) {
	p := DefaultPhysicsParams()
	a := testAttempt(40)

	a.StepPhysics(TickInput{}, 0.1, p)

	expected := 40 - p.Friction*0.1
	if math.Abs(a.Speed-expected) > 1e-9 {
		t.Errorf("Expected speed %v after coasting, got %v", expected, a.Speed)
	}
}

func TestStepPhysics_BothPedalsCoast(t *testing.T) {
	// Holding both pedals is deliberately treated the same as holding neither
	p := DefaultPhysicsParams()
	coast := testAttempt(40)
	both := testAttempt(40)

	coast.StepPhysics(TickInput{}, 0.1, p)
	both.StepPhysics(TickInput{Throttle: true, Brake: true}, 0.1, p)

	if both.Speed != coast.Speed {
		t.Errorf("Expected both-pedals speed %v to match coasting speed %v", both.Speed, coast.Speed)
	}
}

func TestStepPhysics_ClampUpper(t *testing.T) {
	p := DefaultPhysicsParams()
	a := testAttempt(p.MaxSpeed)

	for i := 0; i < 100; i++ {
		a.StepPhysics(TickInput{Throttle: true}, 1.0, p)
	}
	if a.Speed != p.MaxSpeed {
		t.Errorf("Expected speed clamped to %v, got %v", p.MaxSpeed, a.Speed)
	}
}

func TestStepPhysics_ClampLower(t *testing.T) {
	p := DefaultPhysicsParams()
	a := testAttempt(10)

	// One massive braking tick must not push the speed below zero
	stopped := a.StepPhysics(TickInput{Brake: true}, 10, p)
	if a.Speed != 0 {
		t.Errorf("Expected speed clamped to 0, got %v", a.Speed)
	}
	if !stopped {
		t.Error("Expected braking to a dead stop to signal stopped")
	}
}

func TestStepPhysics_StoppedSignal(t *testing.T) {
	p := DefaultPhysicsParams()

	// Coasting to zero is fatal
	a := testAttempt(0.1)
	if stopped := a.StepPhysics(TickInput{}, 1.0, p); !stopped {
		t.Error("Expected coasting to zero to signal stopped")
	}

	// Holding throttle at zero speed is not: acceleration lifts it this tick
	a = testAttempt(0)
	if stopped := a.StepPhysics(TickInput{Throttle: true}, 0.1, p); stopped {
		t.Error("Expected throttle at zero speed to not signal stopped")
	}
	if a.Speed <= 0 {
		t.Errorf("Expected throttle to lift speed above zero, got %v", a.Speed)
	}
}

func TestStepPhysics_SmoothnessAccumulation(t *testing.T) {
	p := DefaultPhysicsParams()
	a := testAttempt(40)

	a.StepPhysics(TickInput{Throttle: true}, 0.1, p)
	afterThrottle := a.SpeedChange
	if math.Abs(afterThrottle-p.Accel*0.1) > 1e-9 {
		t.Errorf("Expected speed change %v after throttle tick, got %v", p.Accel*0.1, afterThrottle)
	}

	a.StepPhysics(TickInput{Brake: true}, 0.1, p)
	afterBrake := a.SpeedChange
	if afterBrake <= afterThrottle {
		t.Error("Expected brake tick to increase accumulated speed change")
	}

	// Friction-only ticks never accumulate
	for i := 0; i < 50; i++ {
		a.StepPhysics(TickInput{}, 0.1, p)
	}
	if a.SpeedChange != afterBrake {
		t.Errorf("Expected coasting to leave speed change at %v, got %v", afterBrake, a.SpeedChange)
	}
}

func TestStepPhysics_PrevSpeedCapturedBeforeUpdate(t *testing.T) {
	p := DefaultPhysicsParams()
	a := testAttempt(40)

	a.StepPhysics(TickInput{Throttle: true}, 0.1, p)
	if a.PrevSpeed != 40 {
		t.Errorf("Expected prev speed 40, got %v", a.PrevSpeed)
	}

	// Updated unconditionally, also on friction-only ticks
	speedBefore := a.Speed
	a.StepPhysics(TickInput{}, 0.1, p)
	if a.PrevSpeed != speedBefore {
		t.Errorf("Expected prev speed %v after coast tick, got %v", speedBefore, a.PrevSpeed)
	}
}

func TestStepPhysics_PositionUsesConversionConstant(t *testing.T) {
	p := DefaultPhysicsParams()
	p.Friction = 0.0001 // negligible decay so the expected math stays simple
	a := testAttempt(100)

	a.StepPhysics(TickInput{}, 1.0, p)

	expected := a.Speed * p.PixelsPerKMH
	if math.Abs(a.Position-expected) > 1e-9 {
		t.Errorf("Expected position %v, got %v", expected, a.Position)
	}
}

func TestClamp(t *testing.T) {
	if got := clamp(5, 0, 10); got != 5 {
		t.Errorf("Expected 5, got %v", got)
	}
	if got := clamp(-1, 0, 10); got != 0 {
		t.Errorf("Expected 0, got %v", got)
	}
	if got := clamp(11, 0, 10); got != 10 {
		t.Errorf("Expected 10, got %v", got)
	}
}
