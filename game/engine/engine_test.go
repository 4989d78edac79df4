package engine

import (
	"errors"
	"testing"
)

func createTestLevel() *LevelConfig {
	lvl := &LevelConfig{
		Name:           "Test Level",
		Description:    "Level for engine integration tests",
		StartSpeed:     40,
		FinishPosition: 900,
		Lights: []LightConfig{
			{Position: 600, GreenDuration: 4, RedDuration: 2, PhaseOffset: 0},
		},
	}
	lvl.Messages.Welcome = "Catch the green wave!"
	lvl.Messages.Won = "Level complete!"
	lvl.Messages.Stopped = "You came to a stop!"
	lvl.Messages.RanRedLight = "You ran a red light!"
	return lvl
}

func createTestEngine(t *testing.T) *SimEngine {
	t.Helper()
	sim, err := NewEngine([]*LevelConfig{createTestLevel()}, DefaultPhysicsParams())
	if err != nil {
		t.Fatalf("Failed to create engine: %v", err)
	}
	return sim
}

func TestNewEngine(t *testing.T) {
	sim := createTestEngine(t)

	if sim.Status() != StatusPlaying {
		t.Errorf("Expected status playing, got %s", sim.Status())
	}
	if sim.LevelIndex() != 0 {
		t.Errorf("Expected level index 0, got %d", sim.LevelIndex())
	}
	snap := sim.Snapshot()
	if snap.Speed != 40 {
		t.Errorf("Expected start speed 40, got %v", snap.Speed)
	}
	if snap.Position != 0 {
		t.Errorf("Expected start position 0, got %v", snap.Position)
	}
	if snap.Message != "Catch the green wave!" {
		t.Errorf("Unexpected welcome message: %q", snap.Message)
	}
	if !sim.Run().Active {
		t.Error("Expected a fresh run to be active")
	}
}

func TestNewEngine_NoLevels(t *testing.T) {
	if _, err := NewEngine(nil, DefaultPhysicsParams()); err == nil {
		t.Error("Expected error for empty catalog")
	}
}

func TestNewEngine_InvalidLevel(t *testing.T) {
	lvl := createTestLevel()
	lvl.Lights = append(lvl.Lights, LightConfig{Position: 500, GreenDuration: 4, RedDuration: 2})

	if _, err := NewEngine([]*LevelConfig{lvl}, DefaultPhysicsParams()); err == nil {
		t.Error("Expected error for lights out of ascending order")
	}
}

func TestTick_AdvancesTimeAndPosition(t *testing.T) {
	sim := createTestEngine(t)

	res := sim.Tick(TickInput{}, 0.05)

	if res.Status != StatusPlaying {
		t.Errorf("Expected status playing, got %s", res.Status)
	}
	if res.Snapshot.ElapsedTime != 0.05 {
		t.Errorf("Expected elapsed 0.05, got %v", res.Snapshot.ElapsedTime)
	}
	if res.Snapshot.Position <= 0 {
		t.Error("Expected position to advance")
	}
}

func TestTick_TerminalStateIsSticky(t *testing.T) {
	sim := createTestEngine(t)

	// Coast to a dead stop
	for i := 0; i < 200 && sim.Status() == StatusPlaying; i++ {
		sim.Tick(TickInput{}, 0.1)
	}
	if sim.Status() != StatusLost {
		t.Fatalf("Expected lost after coasting to a stop, got %s", sim.Status())
	}

	snap := sim.Snapshot()
	res := sim.Tick(TickInput{Throttle: true}, 0.1)
	if res.Status != StatusLost {
		t.Errorf("Expected terminal state to stick, got %s", res.Status)
	}
	if res.Snapshot.ElapsedTime != snap.ElapsedTime {
		t.Error("Expected no time to pass in a terminal state")
	}
}

func TestTick_LostWhenStopped(t *testing.T) {
	sim := createTestEngine(t)

	for i := 0; i < 200 && sim.Status() == StatusPlaying; i++ {
		sim.Tick(TickInput{Brake: true}, 0.1)
	}

	if sim.Status() != StatusLost {
		t.Fatalf("Expected lost, got %s", sim.Status())
	}
	snap := sim.Snapshot()
	if snap.LossReason != LossStopped {
		t.Errorf("Expected loss reason %q, got %q", LossStopped, snap.LossReason)
	}
	if snap.Message != "You came to a stop!" {
		t.Errorf("Unexpected loss message: %q", snap.Message)
	}
}

func TestTick_RedLightCrossingLoses(t *testing.T) {
	// Light red for the first 20 seconds: the car reaches it long before green
	lvl := createTestLevel()
	lvl.Lights[0].RedDuration = 20
	sim, err := NewEngine([]*LevelConfig{lvl}, DefaultPhysicsParams())
	if err != nil {
		t.Fatalf("Failed to create engine: %v", err)
	}

	for i := 0; i < 400 && sim.Status() == StatusPlaying; i++ {
		sim.Tick(TickInput{Throttle: true}, 0.05)
	}

	if sim.Status() != StatusLost {
		t.Fatalf("Expected lost, got %s", sim.Status())
	}
	snap := sim.Snapshot()
	if snap.LossReason != LossRanRedLight {
		t.Errorf("Expected loss reason %q, got %q", LossRanRedLight, snap.LossReason)
	}
	if snap.LightsPassed != 0 {
		t.Errorf("Expected no lights passed, got %d", snap.LightsPassed)
	}
}

func TestTick_PassableCrossingSetsPassedOnce(t *testing.T) {
	sim := createTestEngine(t)

	crossings := 0
	for i := 0; i < 400 && sim.Status() == StatusPlaying; i++ {
		res := sim.Tick(TickInput{Throttle: true}, 0.05)
		crossings += res.CrossedLights
	}

	if sim.Status() != StatusWon {
		t.Fatalf("Expected won, got %s", sim.Status())
	}
	if crossings != 1 {
		t.Errorf("Expected the light to be crossed exactly once, got %d", crossings)
	}
	snap := sim.Snapshot()
	if snap.LightsPassed != 1 {
		t.Errorf("Expected 1 light passed, got %d", snap.LightsPassed)
	}
	if !snap.Lights[0].Passed {
		t.Error("Expected light marked passed")
	}
}

func TestTick_MultipleLightsCrossedInOneTick(t *testing.T) {
	// A large dt jumps the car over both lights in a single step. The nearer
	// light is red and must fail the attempt before the farther green one is
	// even considered.
	lvl := &LevelConfig{
		Name:           "Jump",
		StartSpeed:     100,
		FinishPosition: 2000,
		Lights: []LightConfig{
			{Position: 100, GreenDuration: 4, RedDuration: 2, PhaseOffset: 0}, // red at t=1
			{Position: 110, GreenDuration: 4, RedDuration: 2, PhaseOffset: 3}, // green at t=1
		},
	}
	sim, err := NewEngine([]*LevelConfig{lvl}, DefaultPhysicsParams())
	if err != nil {
		t.Fatalf("Failed to create engine: %v", err)
	}

	res := sim.Tick(TickInput{}, 1.0)

	if res.Status != StatusLost {
		t.Fatalf("Expected lost, got %s", res.Status)
	}
	if res.Snapshot.LossReason != LossRanRedLight {
		t.Errorf("Expected loss reason %q, got %q", LossRanRedLight, res.Snapshot.LossReason)
	}
	if res.Snapshot.LightsPassed != 0 {
		t.Errorf("Expected the farther light untouched, got %d passed", res.Snapshot.LightsPassed)
	}
	if res.Snapshot.Lights[1].Passed {
		t.Error("Expected the farther light to remain unpassed")
	}
}

func TestRestart_ResetsAttempt(t *testing.T) {
	sim := createTestEngine(t)

	// Accumulate some state, then lose
	for i := 0; i < 200 && sim.Status() == StatusPlaying; i++ {
		sim.Tick(TickInput{Brake: true}, 0.1)
	}
	if sim.Status() != StatusLost {
		t.Fatalf("Expected lost, got %s", sim.Status())
	}

	sim.Restart()

	snap := sim.Snapshot()
	if snap.Status != StatusPlaying {
		t.Errorf("Expected playing after restart, got %s", snap.Status)
	}
	if snap.Speed != 40 || snap.Position != 0 || snap.ElapsedTime != 0 {
		t.Errorf("Expected fully reset attempt, got speed=%v pos=%v elapsed=%v", snap.Speed, snap.Position, snap.ElapsedTime)
	}
	state := sim.GetState()
	if state.Attempt.SpeedChange != 0 {
		t.Errorf("Expected speed change reset to 0, got %v", state.Attempt.SpeedChange)
	}
	if state.Attempt.PrevSpeed != 40 {
		t.Errorf("Expected prev speed reset to start speed, got %v", state.Attempt.PrevSpeed)
	}
	for i, ls := range state.Attempt.Lights {
		if ls.Passed {
			t.Errorf("Expected light %d passed flag reset", i)
		}
	}
}

func TestStartLevel_BoundsChecked(t *testing.T) {
	sim := createTestEngine(t)

	if err := sim.StartLevel(5); !errors.Is(err, ErrLevelOutOfRange) {
		t.Errorf("Expected ErrLevelOutOfRange, got %v", err)
	}
	if err := sim.StartLevel(-1); !errors.Is(err, ErrLevelOutOfRange) {
		t.Errorf("Expected ErrLevelOutOfRange, got %v", err)
	}
	if err := sim.StartLevel(0); err != nil {
		t.Errorf("Expected StartLevel(0) to succeed, got %v", err)
	}
}

func TestStartLevelZero_ResetsRun(t *testing.T) {
	sim := createTestEngine(t)

	// Win the only level so the run has a result
	for i := 0; i < 400 && sim.Status() == StatusPlaying; i++ {
		sim.Tick(TickInput{Throttle: true}, 0.05)
	}
	if len(sim.Run().Completed) != 1 {
		t.Fatalf("Expected one completed level, got %d", len(sim.Run().Completed))
	}

	if err := sim.StartLevel(0); err != nil {
		t.Fatalf("StartLevel failed: %v", err)
	}
	if len(sim.Run().Completed) != 0 {
		t.Error("Expected starting level 0 to reset the run")
	}
	if !sim.Run().Active {
		t.Error("Expected a fresh active run")
	}
}

func TestNextLevel(t *testing.T) {
	first := createTestLevel()
	second := createTestLevel()
	second.Name = "Second"
	sim, err := NewEngine([]*LevelConfig{first, second}, DefaultPhysicsParams())
	if err != nil {
		t.Fatalf("Failed to create engine: %v", err)
	}

	if err := sim.NextLevel(); !errors.Is(err, ErrLevelNotWon) {
		t.Errorf("Expected ErrLevelNotWon before winning, got %v", err)
	}

	for i := 0; i < 400 && sim.Status() == StatusPlaying; i++ {
		sim.Tick(TickInput{Throttle: true}, 0.05)
	}
	if sim.Status() != StatusWon {
		t.Fatalf("Expected won, got %s", sim.Status())
	}

	if err := sim.NextLevel(); err != nil {
		t.Fatalf("NextLevel failed: %v", err)
	}
	if sim.LevelIndex() != 1 {
		t.Errorf("Expected level index 1, got %d", sim.LevelIndex())
	}
	if sim.Status() != StatusPlaying {
		t.Errorf("Expected playing on next level, got %s", sim.Status())
	}
	// The run carries over between levels
	if len(sim.Run().Completed) != 1 {
		t.Errorf("Expected the run to keep the first level's result, got %d", len(sim.Run().Completed))
	}

	// Win the final level: no more levels after that
	for i := 0; i < 400 && sim.Status() == StatusPlaying; i++ {
		sim.Tick(TickInput{Throttle: true}, 0.05)
	}
	if err := sim.NextLevel(); !errors.Is(err, ErrNoMoreLevels) {
		t.Errorf("Expected ErrNoMoreLevels, got %v", err)
	}
}

func TestGetSetState(t *testing.T) {
	sim := createTestEngine(t)
	sim.Tick(TickInput{Throttle: true}, 0.05)

	state := sim.GetState()

	restored := createTestEngine(t)
	if err := restored.SetState(state); err != nil {
		t.Fatalf("SetState failed: %v", err)
	}
	if restored.Snapshot().ElapsedTime != sim.Snapshot().ElapsedTime {
		t.Error("Expected restored engine to match original elapsed time")
	}

	if err := restored.SetState(nil); err == nil {
		t.Error("Expected error for nil state")
	}
	if err := restored.SetState(&EngineState{LevelIndex: 9, Attempt: state.Attempt}); err == nil {
		t.Error("Expected error for out-of-range level index")
	}
}

func TestSnapshot_LightView(t *testing.T) {
	sim := createTestEngine(t)
	snap := sim.Snapshot()

	if len(snap.Lights) != 1 {
		t.Fatalf("Expected 1 light in snapshot, got %d", len(snap.Lights))
	}
	light := snap.Lights[0]
	if light.Phase != PhaseRed {
		t.Errorf("Expected red at t=0, got %s", light.Phase)
	}
	if light.TimeUntilChange != 2 {
		t.Errorf("Expected 2s until change, got %v", light.TimeUntilChange)
	}
	if light.PhaseDuration != 2 {
		t.Errorf("Expected phase duration 2, got %v", light.PhaseDuration)
	}
}
