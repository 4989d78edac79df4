package session

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/greenwave-game/greenwave/game/engine"
	"github.com/greenwave-game/greenwave/game/service"
)

// FilePersistence implements SessionPersistence using one JSON file per
// session. Engines are rebuilt from the catalog on load and restored from
// their saved state.
type FilePersistence struct {
	sessionsDir string
	catalog     []*engine.LevelConfig
	params      engine.PhysicsParams
}

// NewFilePersistence creates a file-based persistence layer rooted at
// sessionsDir, creating the directory if needed.
func NewFilePersistence(sessionsDir string, catalog []*engine.LevelConfig, params engine.PhysicsParams) (*FilePersistence, error) {
	if err := os.MkdirAll(sessionsDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create sessions directory: %w", err)
	}
	return &FilePersistence{
		sessionsDir: sessionsDir,
		catalog:     catalog,
		params:      params,
	}, nil
}

// Save writes a session to its JSON file
func (fp *FilePersistence) Save(sess *service.Session) error {
	data := PersistedSessionData{
		ID:             sess.ID,
		PlayerName:     sess.PlayerName,
		CreatedAt:      sess.CreatedAt,
		LastAccessedAt: sess.LastAccessedAt,
		EngineState:    sess.Engine.GetState(),
	}

	jsonData, err := json.MarshalIndent(data, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal session data: %w", err)
	}

	if err := os.WriteFile(fp.sessionFilePath(sess.ID), jsonData, 0644); err != nil {
		return fmt.Errorf("failed to write session file: %w", err)
	}
	return nil
}

// Load reads a session from its JSON file and rebuilds the engine
func (fp *FilePersistence) Load(id string) (*service.Session, error) {
	jsonData, err := os.ReadFile(fp.sessionFilePath(id))
	if err != nil {
		return nil, fmt.Errorf("failed to read session file: %w", err)
	}

	var data PersistedSessionData
	if err := json.Unmarshal(jsonData, &data); err != nil {
		return nil, fmt.Errorf("failed to unmarshal session data: %w", err)
	}

	eng, err := engine.NewEngine(fp.catalog, fp.params)
	if err != nil {
		return nil, fmt.Errorf("failed to create engine: %w", err)
	}
	if data.EngineState != nil {
		if err := eng.SetState(data.EngineState); err != nil {
			return nil, fmt.Errorf("failed to restore engine state: %w", err)
		}
	}

	return &service.Session{
		ID:             data.ID,
		PlayerName:     data.PlayerName,
		Engine:         eng,
		Stepper:        engine.NewStepper(fp.params.MaxFrameDelta),
		CreatedAt:      data.CreatedAt,
		LastAccessedAt: data.LastAccessedAt,
	}, nil
}

// Delete removes a session file
func (fp *FilePersistence) Delete(id string) error {
	if err := os.Remove(fp.sessionFilePath(id)); err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("failed to delete session file: %w", err)
	}
	return nil
}

// ListAll returns the IDs of every persisted session
func (fp *FilePersistence) ListAll() ([]string, error) {
	entries, err := os.ReadDir(fp.sessionsDir)
	if err != nil {
		return nil, fmt.Errorf("failed to read sessions directory: %w", err)
	}

	var ids []string
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".json") {
			continue
		}
		ids = append(ids, strings.TrimSuffix(entry.Name(), ".json"))
	}
	return ids, nil
}

// Exists reports whether a session file exists
func (fp *FilePersistence) Exists(id string) bool {
	_, err := os.Stat(fp.sessionFilePath(id))
	return err == nil
}

func (fp *FilePersistence) sessionFilePath(id string) string {
	return filepath.Join(fp.sessionsDir, strings.ToLower(id)+".json")
}
