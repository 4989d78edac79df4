package service

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/greenwave-game/greenwave/game/engine"
	"github.com/greenwave-game/greenwave/game/score"
)

// ErrRunNotComplete is returned when a leaderboard submission is attempted
// before every level of the run has been won.
var ErrRunNotComplete = errors.New("run not complete")

// gameServiceImpl implements the GameService interface
type gameServiceImpl struct {
	sessions  SessionManager
	catalog   LevelCatalog
	keeper    *score.Keeper
	submitter score.Submitter
	mu        sync.Mutex
}

// NewGameService creates a new game service instance. A nil keeper gets an
// in-memory fallback; a nil submitter declines all submissions.
func NewGameService(sessions SessionManager, catalog LevelCatalog, keeper *score.Keeper, submitter score.Submitter) GameService {
	if keeper == nil {
		keeper = score.NewKeeper(nil)
	}
	if submitter == nil {
		submitter = score.NoopSubmitter{}
	}
	return &gameServiceImpl{
		sessions:  sessions,
		catalog:   catalog,
		keeper:    keeper,
		submitter: submitter,
	}
}

// CreateSession creates a new game session
func (s *gameServiceImpl) CreateSession(ctx context.Context, playerName string) (*SessionInfo, error) {
	sess, err := s.sessions.Create("", playerName)
	if err != nil {
		return nil, fmt.Errorf("failed to create session: %w", err)
	}
	return s.sessionInfo(sess), nil
}

// GetSession retrieves information about an existing session
func (s *gameServiceImpl) GetSession(ctx context.Context, sessionID string) (*SessionInfo, error) {
	sess, err := s.sessions.Get(sessionID)
	if err != nil {
		return nil, err
	}
	s.sessions.UpdateLastAccessed(sessionID)
	return s.sessionInfo(sess), nil
}

// ListSessions returns information about all active sessions
func (s *gameServiceImpl) ListSessions(ctx context.Context) ([]*SessionInfo, error) {
	sessions := s.sessions.List()
	result := make([]*SessionInfo, 0, len(sessions))
	for _, sess := range sessions {
		result = append(result, s.sessionInfo(sess))
	}
	return result, nil
}

// DeleteSession removes a session
func (s *gameServiceImpl) DeleteSession(ctx context.Context, sessionID string) error {
	return s.sessions.Delete(sessionID)
}

// Tick advances a session's simulation by one frame. The frame delta is
// derived from the request timestamp; anomalous deltas skip the frame and
// report the unchanged state.
func (s *gameServiceImpl) Tick(ctx context.Context, sessionID string, req TickRequest) (*TickOutcome, error) {
	sess, err := s.sessions.Get(sessionID)
	if err != nil {
		return nil, err
	}
	s.sessions.UpdateLastAccessed(sessionID)

	s.mu.Lock()
	defer s.mu.Unlock()

	dt, ok := sess.Stepper.Step(req.Timestamp)
	if !ok {
		return &TickOutcome{
			Skipped:  true,
			Status:   sess.Engine.Status(),
			Snapshot: sess.Engine.Snapshot(),
		}, nil
	}

	res := sess.Engine.Tick(engine.TickInput{Throttle: req.Throttle, Brake: req.Brake}, dt)

	outcome := &TickOutcome{
		DT:          dt,
		Status:      res.Status,
		Event:       res.Event,
		Snapshot:    res.Snapshot,
		Result:      res.Result,
		RunComplete: res.RunComplete,
	}

	if res.Result != nil {
		best, improved := s.keeper.RecordTime(res.Result.LevelName, res.Result.FinishTime)
		outcome.BestTime = best
		outcome.NewBest = improved
	}
	if res.RunComplete {
		outcome.Summary = engine.SummarizeRun(sess.Engine.Run())
	}
	if res.Event != "" {
		s.sessions.Save(sessionID)
	}

	return outcome, nil
}

// Restart restarts the session's current level from its initial state
func (s *gameServiceImpl) Restart(ctx context.Context, sessionID string) (*engine.Snapshot, error) {
	sess, err := s.sessions.Get(sessionID)
	if err != nil {
		return nil, err
	}
	s.sessions.UpdateLastAccessed(sessionID)

	s.mu.Lock()
	defer s.mu.Unlock()

	sess.Engine.Restart()
	sess.Stepper.Reset()
	s.sessions.Save(sessionID)
	return sess.Engine.Snapshot(), nil
}

// StartLevel jumps the session to the given level index. Index 0 begins a
// fresh run.
func (s *gameServiceImpl) StartLevel(ctx context.Context, sessionID string, levelIndex int) (*engine.Snapshot, error) {
	sess, err := s.sessions.Get(sessionID)
	if err != nil {
		return nil, err
	}
	s.sessions.UpdateLastAccessed(sessionID)

	s.mu.Lock()
	defer s.mu.Unlock()

	if err := sess.Engine.StartLevel(levelIndex); err != nil {
		return nil, err
	}
	sess.Stepper.Reset()
	s.sessions.Save(sessionID)
	return sess.Engine.Snapshot(), nil
}

// NextLevel advances a won session to the next level
func (s *gameServiceImpl) NextLevel(ctx context.Context, sessionID string) (*engine.Snapshot, error) {
	sess, err := s.sessions.Get(sessionID)
	if err != nil {
		return nil, err
	}
	s.sessions.UpdateLastAccessed(sessionID)

	s.mu.Lock()
	defer s.mu.Unlock()

	if err := sess.Engine.NextLevel(); err != nil {
		return nil, err
	}
	sess.Stepper.Reset()
	s.sessions.Save(sessionID)
	return sess.Engine.Snapshot(), nil
}

// GetSnapshot returns the session's current presentation state
func (s *gameServiceImpl) GetSnapshot(ctx context.Context, sessionID string) (*engine.Snapshot, error) {
	sess, err := s.sessions.Get(sessionID)
	if err != nil {
		return nil, err
	}
	s.sessions.UpdateLastAccessed(sessionID)

	s.mu.Lock()
	defer s.mu.Unlock()
	return sess.Engine.Snapshot(), nil
}

// ListLevels returns catalog information for every level, including any
// recorded best time.
func (s *gameServiceImpl) ListLevels(ctx context.Context) ([]*LevelInfo, error) {
	catalog := s.catalog.Catalog()
	result := make([]*LevelInfo, 0, len(catalog))
	for i, lvl := range catalog {
		info := &LevelInfo{
			Index:          i,
			Name:           lvl.Name,
			Description:    lvl.Description,
			StartSpeed:     lvl.StartSpeed,
			LightCount:     len(lvl.Lights),
			FinishPosition: lvl.FinishPosition,
		}
		if best, ok := s.keeper.BestTime(lvl.Name); ok {
			info.BestTime = best
		}
		result = append(result, info)
	}
	return result, nil
}

// GetBestTimes returns all recorded best times keyed by level name
func (s *gameServiceImpl) GetBestTimes(ctx context.Context) (map[string]float64, error) {
	catalog := s.catalog.Catalog()
	names := make([]string, 0, len(catalog))
	for _, lvl := range catalog {
		names = append(names, lvl.Name)
	}
	return s.keeper.BestTimes(names), nil
}

// SubmitRun submits a session's completed run to the leaderboard
func (s *gameServiceImpl) SubmitRun(ctx context.Context, sessionID, username string) (*SubmitOutcome, error) {
	if err := score.ValidateUsername(username); err != nil {
		return nil, err
	}

	sess, err := s.sessions.Get(sessionID)
	if err != nil {
		return nil, err
	}
	s.sessions.UpdateLastAccessed(sessionID)

	s.mu.Lock()
	run := sess.Engine.Run()
	levelCount := sess.Engine.LevelCount()
	s.mu.Unlock()

	if run == nil || run.Active || len(run.Completed) != levelCount {
		return nil, ErrRunNotComplete
	}

	summary := engine.SummarizeRun(run)
	accepted := s.submitter.Submit(ctx, score.Entry{
		Username:     username,
		TotalTime:    summary.TotalTime,
		AverageStars: summary.AverageStars,
		Levels:       summary.Levels,
	})

	return &SubmitOutcome{Accepted: accepted, Summary: summary}, nil
}

func (s *gameServiceImpl) sessionInfo(sess *Session) *SessionInfo {
	s.mu.Lock()
	defer s.mu.Unlock()
	return &SessionInfo{
		ID:             sess.ID,
		PlayerName:     sess.PlayerName,
		CreatedAt:      sess.CreatedAt,
		LastAccessedAt: sess.LastAccessedAt,
		Snapshot:       sess.Engine.Snapshot(),
	}
}
