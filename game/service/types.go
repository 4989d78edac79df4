package service

import (
	"time"

	"github.com/greenwave-game/greenwave/game/engine"
)

// Session represents an active game session
type Session struct {
	ID             string
	PlayerName     string
	Engine         *engine.SimEngine
	Stepper        *engine.Stepper
	CreatedAt      time.Time
	LastAccessedAt time.Time
}

// SessionInfo provides information about a game session
type SessionInfo struct {
	ID             string           `json:"id"`
	PlayerName     string           `json:"player_name,omitempty"`
	CreatedAt      time.Time        `json:"created_at"`
	LastAccessedAt time.Time        `json:"last_accessed_at"`
	Snapshot       *engine.Snapshot `json:"snapshot"`
}

// LevelInfo provides catalog information about a level
type LevelInfo struct {
	Index          int     `json:"index"`
	Name           string  `json:"name"`
	Description    string  `json:"description"`
	StartSpeed     float64 `json:"start_speed"`
	LightCount     int     `json:"light_count"`
	FinishPosition float64 `json:"finish_position"`
	BestTime       float64 `json:"best_time,omitempty"`
}

// TickRequest carries one frame's worth of sampled input. Timestamp is a
// monotonic clock reading in seconds; the core derives the delta itself.
type TickRequest struct {
	Timestamp float64 `json:"timestamp"`
	Throttle  bool    `json:"throttle"`
	Brake     bool    `json:"brake"`
}

// TickOutcome contains the result of one simulation tick
type TickOutcome struct {
	// Skipped is true when the frame delta was anomalous (first frame,
	// non-monotonic, or above the skip threshold) and no simulation ran
	Skipped bool    `json:"skipped,omitempty"`
	DT      float64 `json:"dt,omitempty"`

	Status      engine.Status       `json:"status"`
	Event       string              `json:"event,omitempty"`
	Snapshot    *engine.Snapshot    `json:"snapshot"`
	Result      *engine.LevelResult `json:"result,omitempty"`
	BestTime    float64             `json:"best_time,omitempty"`
	NewBest     bool                `json:"new_best,omitempty"`
	RunComplete bool                `json:"run_complete,omitempty"`
	Summary     *engine.RunSummary  `json:"summary,omitempty"`
}

// SubmitOutcome contains the result of a leaderboard submission
type SubmitOutcome struct {
	Accepted bool               `json:"accepted"`
	Summary  *engine.RunSummary `json:"summary"`
}
