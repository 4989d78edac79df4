package service

import (
	"context"

	"github.com/greenwave-game/greenwave/game/engine"
)

// GameService defines all game-related operations
type GameService interface {
	// Session Management
	CreateSession(ctx context.Context, playerName string) (*SessionInfo, error)
	GetSession(ctx context.Context, sessionID string) (*SessionInfo, error)
	ListSessions(ctx context.Context) ([]*SessionInfo, error)
	DeleteSession(ctx context.Context, sessionID string) error

	// Simulation
	Tick(ctx context.Context, sessionID string, req TickRequest) (*TickOutcome, error)
	Restart(ctx context.Context, sessionID string) (*engine.Snapshot, error)
	StartLevel(ctx context.Context, sessionID string, levelIndex int) (*engine.Snapshot, error)
	NextLevel(ctx context.Context, sessionID string) (*engine.Snapshot, error)
	GetSnapshot(ctx context.Context, sessionID string) (*engine.Snapshot, error)

	// Catalog and scores
	ListLevels(ctx context.Context) ([]*LevelInfo, error)
	GetBestTimes(ctx context.Context) (map[string]float64, error)
	SubmitRun(ctx context.Context, sessionID, username string) (*SubmitOutcome, error)
}

// SessionManager defines session storage operations
type SessionManager interface {
	Create(id, playerName string) (*Session, error)
	Get(id string) (*Session, error)
	List() []*Session
	Delete(id string) error
	UpdateLastAccessed(id string) error
	Save(id string) error
}

// LevelCatalog provides the ordered, immutable level set
type LevelCatalog interface {
	Catalog() []*engine.LevelConfig
	Level(name string) (*engine.LevelConfig, error)
}
