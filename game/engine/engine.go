package engine

import (
	"errors"
	"fmt"
)

var (
	ErrLevelOutOfRange = errors.New("level index out of range")
	ErrLevelNotWon     = errors.New("current level has not been won")
	ErrNoMoreLevels    = errors.New("no more levels")
)

// Engine provides the main interface for simulation operations
type Engine interface {
	// Per-frame simulation
	Tick(in TickInput, dt float64) *TickResult

	// Attempt lifecycle. These are the only transitions out of a terminal
	// Won/Lost state; the engine never restarts itself.
	StartLevel(index int) error
	Restart()
	NextLevel() error

	// State access
	Snapshot() *Snapshot
	Status() Status
	LevelIndex() int
	Level() *LevelConfig
	LevelCount() int
	Run() *RunState
	Params() PhysicsParams

	// Persistence
	GetState() *EngineState
	SetState(state *EngineState) error
}

// SimEngine implements the Engine interface. It owns all mutable simulation
// state and is driven by exactly one caller per tick; there is no internal
// locking because there is no concurrent writer.
type SimEngine struct {
	levels     []*LevelConfig
	params     PhysicsParams
	levelIndex int
	attempt    *AttemptState
	run        *RunState
}

// NewEngine creates a simulation engine for an ordered level catalog. Every
// level is validated up front so authoring defects fail at startup rather than
// mid-attempt.
func NewEngine(levels []*LevelConfig, params PhysicsParams) (*SimEngine, error) {
	if len(levels) == 0 {
		return nil, fmt.Errorf("at least one level is required")
	}
	if err := ValidatePhysicsParams(params); err != nil {
		return nil, err
	}
	for i, lvl := range levels {
		if err := ValidateLevelConfig(lvl, params); err != nil {
			return nil, fmt.Errorf("level %d (%s): %w", i, lvl.Name, err)
		}
	}

	e := &SimEngine{
		levels: levels,
		params: params,
	}
	e.startAttempt(0, true)
	return e, nil
}

// startAttempt resets all attempt state for the given level. When resetRun is
// true a fresh run begins as well.
func (e *SimEngine) startAttempt(index int, resetRun bool) {
	lvl := e.levels[index]
	lights := make([]LightState, len(lvl.Lights))
	for i, lc := range lvl.Lights {
		lights[i] = LightState{Config: lc}
	}

	e.levelIndex = index
	e.attempt = &AttemptState{
		Speed:     lvl.StartSpeed,
		PrevSpeed: lvl.StartSpeed,
		Lights:    lights,
		Status:    StatusPlaying,
		Message:   lvl.Messages.Welcome,
	}
	if resetRun {
		e.run = &RunState{Active: true}
	}
}

// StartLevel begins a fresh attempt at the given level index. Starting level 0
// also resets the run.
func (e *SimEngine) StartLevel(index int) error {
	if index < 0 || index >= len(e.levels) {
		return fmt.Errorf("%w: %d", ErrLevelOutOfRange, index)
	}
	e.startAttempt(index, index == 0)
	return nil
}

// Restart begins a fresh attempt at the current level, keeping the run
func (e *SimEngine) Restart() {
	e.startAttempt(e.levelIndex, false)
}

// NextLevel advances to the next level after a win
func (e *SimEngine) NextLevel() error {
	if e.attempt.Status != StatusWon {
		return ErrLevelNotWon
	}
	if e.levelIndex+1 >= len(e.levels) {
		return ErrNoMoreLevels
	}
	e.startAttempt(e.levelIndex+1, false)
	return nil
}

// Tick advances the simulation by dt seconds. While the attempt is terminal
// or dt is not positive it is a no-op apart from returning a fresh snapshot.
func (e *SimEngine) Tick(in TickInput, dt float64) *TickResult {
	res := &TickResult{}
	a := e.attempt

	if a.Status != StatusPlaying || dt <= 0 {
		res.Status = a.Status
		res.Snapshot = e.Snapshot()
		return res
	}

	lvl := e.levels[e.levelIndex]
	a.TickCount++
	a.ElapsedTime += dt

	if stopped := a.StepPhysics(in, dt, e.params); stopped {
		e.lose(LossStopped, lvl.Messages.Stopped)
		res.Status = a.Status
		res.Event = "lost"
		res.Snapshot = e.Snapshot()
		return res
	}

	// The crossing test uses the car's leading edge. Lights are checked in
	// ascending position order so that when a large dt jumps several lights in
	// one tick, the nearest red light fails the attempt before any later light
	// is considered. The check is position-based, so crossings are never
	// skipped no matter how large the step.
	carFront := a.Position + e.params.CarHalfLength
	for i := range a.Lights {
		ls := &a.Lights[i]
		if ls.Passed {
			continue
		}
		if carFront <= ls.Config.Position {
			break
		}
		if !PhaseAt(ls.Config, a.ElapsedTime).Passable() {
			e.lose(LossRanRedLight, lvl.Messages.RanRedLight)
			res.Status = a.Status
			res.Event = "lost"
			res.Snapshot = e.Snapshot()
			return res
		}
		ls.Passed = true
		a.LightsPassed++
		res.CrossedLights++
	}

	if a.Position > lvl.FinishPosition {
		e.win(res)
	}

	res.Status = a.Status
	res.Snapshot = e.Snapshot()
	return res
}

// lose moves the attempt into the terminal Lost state
func (e *SimEngine) lose(reason, message string) {
	a := e.attempt
	a.Status = StatusLost
	a.LossReason = reason
	if message == "" {
		message = fmt.Sprintf("You lost: %s", reason)
	}
	a.Message = message
}

// win moves the attempt into the terminal Won state, scores it, and records
// the result into the run. Best-time persistence and leaderboard submission
// belong to the caller; the engine only produces the values.
func (e *SimEngine) win(res *TickResult) {
	a := e.attempt
	lvl := e.levels[e.levelIndex]

	a.Status = StatusWon
	a.Message = lvl.Messages.Won
	if a.Message == "" {
		a.Message = fmt.Sprintf("Finished %s in %.2fs!", lvl.Name, a.ElapsedTime)
	}

	result := LevelResult{
		LevelIndex: e.levelIndex,
		LevelName:  lvl.Name,
		FinishTime: a.ElapsedTime,
		Stars:      StarsFor(a.SpeedChange, lvl.FinishPosition),
		Smoothness: a.SpeedChange,
	}
	e.run.Completed = append(e.run.Completed, result)

	res.Event = "won"
	res.Result = &result
	if e.levelIndex == len(e.levels)-1 {
		res.RunComplete = true
		e.run.Active = false
	}
}

// Snapshot builds the read-only presentation view of the current state
func (e *SimEngine) Snapshot() *Snapshot {
	a := e.attempt
	lvl := e.levels[e.levelIndex]

	lights := make([]LightSnapshot, len(a.Lights))
	for i, ls := range a.Lights {
		lights[i] = LightSnapshot{
			Position:        ls.Config.Position,
			Phase:           PhaseAt(ls.Config, a.ElapsedTime),
			Passed:          ls.Passed,
			TimeUntilChange: TimeUntilNextPhase(ls.Config, a.ElapsedTime),
			PhaseDuration:   CurrentPhaseDuration(ls.Config, a.ElapsedTime),
		}
	}

	return &Snapshot{
		LevelIndex:     e.levelIndex,
		LevelName:      lvl.Name,
		LevelCount:     len(e.levels),
		Speed:          a.Speed,
		Position:       a.Position,
		ElapsedTime:    a.ElapsedTime,
		LightsPassed:   a.LightsPassed,
		FinishPosition: lvl.FinishPosition,
		Status:         a.Status,
		LossReason:     a.LossReason,
		Message:        a.Message,
		Lights:         lights,
	}
}

// Status returns the current attempt status
func (e *SimEngine) Status() Status {
	return e.attempt.Status
}

// LevelIndex returns the index of the level currently being played
func (e *SimEngine) LevelIndex() int {
	return e.levelIndex
}

// Level returns the definition of the level currently being played
func (e *SimEngine) Level() *LevelConfig {
	return e.levels[e.levelIndex]
}

// LevelCount returns the number of levels in the catalog
func (e *SimEngine) LevelCount() int {
	return len(e.levels)
}

// Run returns the current run state
func (e *SimEngine) Run() *RunState {
	return e.run
}

// Params returns the physics tuning the engine was created with
func (e *SimEngine) Params() PhysicsParams {
	return e.params
}

// GetState returns the serializable engine state (used for persistence)
func (e *SimEngine) GetState() *EngineState {
	return &EngineState{
		LevelIndex: e.levelIndex,
		Attempt:    e.attempt,
		Run:        e.run,
	}
}

// SetState restores a previously persisted engine state
func (e *SimEngine) SetState(state *EngineState) error {
	if state == nil || state.Attempt == nil {
		return fmt.Errorf("state cannot be nil")
	}
	if state.LevelIndex < 0 || state.LevelIndex >= len(e.levels) {
		return fmt.Errorf("%w: %d", ErrLevelOutOfRange, state.LevelIndex)
	}
	e.levelIndex = state.LevelIndex
	e.attempt = state.Attempt
	e.run = state.Run
	if e.run == nil {
		e.run = &RunState{}
	}
	return nil
}
