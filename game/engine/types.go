package engine

// Phase represents the current state of a traffic light's cycle
type Phase string

const (
	PhaseRed            Phase = "red"
	PhaseYellowPreGreen Phase = "yellow_pre_green"
	PhaseGreen          Phase = "green"
	PhaseBlinkingYellow Phase = "blinking_yellow"
)

// Passable reports whether crossing a light in this phase is allowed.
// Only a red light fails the attempt.
func (p Phase) Passable() bool {
	return p != PhaseRed
}

// Status represents the state of the current attempt
type Status string

const (
	StatusPlaying Status = "playing"
	StatusWon     Status = "won"
	StatusLost    Status = "lost"
)

// Loss reasons reported when an attempt ends in StatusLost
const (
	LossStopped     = "stopped"
	LossRanRedLight = "ran red light"
)

// Fixed yellow-phase durations shared by every light, in seconds
const (
	YellowBeforeGreen = 1.0
	YellowAfterGreen  = 1.5
)

// PhysicsParams holds the tunable constants of the car model. Speeds are in
// km/h, accelerations in km/h per second, positions in world units.
type PhysicsParams struct {
	Accel         float64 `json:"accel"`
	Brake         float64 `json:"brake"`
	Friction      float64 `json:"friction"`
	MaxSpeed      float64 `json:"max_speed"`
	PixelsPerKMH  float64 `json:"pixels_per_kmh"`
	CarHalfLength float64 `json:"car_half_length"`
	MaxFrameDelta float64 `json:"max_frame_delta"`
}

// DefaultPhysicsParams returns the tuning used by the shipped levels.
// PixelsPerKMH is the unit-conversion constant bridging speed (km/h) to world
// distance per second; it is a tunable, not a physical law.
func DefaultPhysicsParams() PhysicsParams {
	return PhysicsParams{
		Accel:         20.0,
		Brake:         35.0,
		Friction:      6.0,
		MaxSpeed:      120.0,
		PixelsPerKMH:  3.0,
		CarHalfLength: 25.0,
		MaxFrameDelta: 0.1,
	}
}

// LightConfig is the authored configuration of a single traffic light
type LightConfig struct {
	Position      float64 `json:"position"`
	GreenDuration float64 `json:"green_duration"`
	RedDuration   float64 `json:"red_duration"`
	PhaseOffset   float64 `json:"phase_offset"`
}

// CycleDuration returns the total length of one full light cycle
func (c LightConfig) CycleDuration() float64 {
	return c.RedDuration + YellowBeforeGreen + c.GreenDuration + YellowAfterGreen
}

// LevelConfig is the authored definition of a level, loaded from JSON.
// Lights must be in strictly ascending position order and the finish line must
// lie beyond the last light.
type LevelConfig struct {
	Name           string        `json:"name"`
	Description    string        `json:"description"`
	StartSpeed     float64       `json:"start_speed"`
	Lights         []LightConfig `json:"lights"`
	FinishPosition float64       `json:"finish_position"`
	Messages       struct {
		Welcome     string `json:"welcome"`
		Won         string `json:"won"`
		Stopped     string `json:"stopped"`
		RanRedLight string `json:"ran_red_light"`
	} `json:"messages"`
}

// LightState wraps a light config with its per-attempt passed flag.
// Passed only ever goes false to true within one attempt.
type LightState struct {
	Config LightConfig `json:"config"`
	Passed bool        `json:"passed"`
}

// TickInput is the pedal state sampled once per tick
type TickInput struct {
	Throttle bool `json:"throttle"`
	Brake    bool `json:"brake"`
}

// AttemptState is the mutable state of one play-through of one level
type AttemptState struct {
	ElapsedTime  float64      `json:"elapsed_time"`
	Speed        float64      `json:"speed"`
	PrevSpeed    float64      `json:"prev_speed"`
	Position     float64      `json:"position"`
	SpeedChange  float64      `json:"speed_change"` // accumulated |delta speed| from pedal ticks
	LightsPassed int          `json:"lights_passed"`
	Lights       []LightState `json:"lights"`
	Status       Status       `json:"status"`
	LossReason   string       `json:"loss_reason,omitempty"`
	Message      string       `json:"message,omitempty"`
	TickCount    int          `json:"tick_count"`
}

// LevelResult records one completed level within a run
type LevelResult struct {
	LevelIndex int     `json:"level_index"`
	LevelName  string  `json:"level_name"`
	FinishTime float64 `json:"finish_time"`
	Stars      int     `json:"stars"`
	Smoothness float64 `json:"smoothness"`
}

// RunState tracks a full run across levels. It is created when level 0 begins
// and deactivated once the final level's win is processed.
type RunState struct {
	Active    bool          `json:"active"`
	Completed []LevelResult `json:"completed"`
}

// EngineState is the serializable state of a SimEngine, used for persistence
type EngineState struct {
	LevelIndex int           `json:"level_index"`
	Attempt    *AttemptState `json:"attempt"`
	Run        *RunState     `json:"run"`
}

// TickResult reports what happened during one simulation tick
type TickResult struct {
	Status        Status       `json:"status"`
	Event         string       `json:"event,omitempty"` // "won" or "lost"
	CrossedLights int          `json:"crossed_lights,omitempty"`
	Result        *LevelResult `json:"result,omitempty"`
	RunComplete   bool         `json:"run_complete,omitempty"`
	Snapshot      *Snapshot    `json:"snapshot"`
}

// LightSnapshot is the read-only per-light view emitted for rendering
type LightSnapshot struct {
	Position        float64 `json:"position"`
	Phase           Phase   `json:"phase"`
	Passed          bool    `json:"passed"`
	TimeUntilChange float64 `json:"time_until_change"`
	PhaseDuration   float64 `json:"phase_duration"`
}

// Snapshot is the read-only view of the simulation emitted each tick for the
// presentation layer. The core never receives drawing commands back.
type Snapshot struct {
	LevelIndex     int             `json:"level_index"`
	LevelName      string          `json:"level_name"`
	LevelCount     int             `json:"level_count"`
	Speed          float64         `json:"speed"`
	Position       float64         `json:"position"`
	ElapsedTime    float64         `json:"elapsed_time"`
	LightsPassed   int             `json:"lights_passed"`
	FinishPosition float64         `json:"finish_position"`
	Status         Status          `json:"status"`
	LossReason     string          `json:"loss_reason,omitempty"`
	Message        string          `json:"message,omitempty"`
	Lights         []LightSnapshot `json:"lights"`
}
