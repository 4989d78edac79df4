package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/greenwave-game/greenwave/game/engine"
)

var (
	ErrLevelNotFound = errors.New("level not found")
	ErrInvalidLevel  = errors.New("invalid level")
	ErrEmptyCatalog  = errors.New("catalog lists no levels")
)

// catalogFile mirrors catalog.json: the ordered list of level file names
// (without extension) making up the campaign.
type catalogFile struct {
	Levels []string `json:"levels"`
}

// Manager loads and caches the ordered level catalog from a directory of JSON
// files. Level order is authored in catalog.json; when that file is absent the
// built-in catalog is used instead.
type Manager struct {
	levelsDir string
	params    engine.PhysicsParams
	catalog   []*engine.LevelConfig
	byName    map[string]*engine.LevelConfig
	mu        sync.RWMutex
}

// NewManager creates a level catalog manager rooted at levelsDir
func NewManager(levelsDir string, params engine.PhysicsParams) (*Manager, error) {
	if _, err := os.Stat(levelsDir); os.IsNotExist(err) {
		return nil, fmt.Errorf("levels directory does not exist: %s", levelsDir)
	}

	m := &Manager{
		levelsDir: levelsDir,
		params:    params,
	}
	if err := m.load(); err != nil {
		return nil, fmt.Errorf("failed to load level catalog: %w", err)
	}
	return m, nil
}

// load reads catalog.json and every level it references, validating each
// against the physics tuning so authoring defects fail at startup.
func (m *Manager) load() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	data, err := os.ReadFile(filepath.Join(m.levelsDir, "catalog.json"))
	if err != nil {
		if os.IsNotExist(err) {
			m.catalog = BuiltinCatalog()
			m.index()
			return nil
		}
		return fmt.Errorf("failed to read catalog.json: %w", err)
	}

	var cat catalogFile
	if err := json.Unmarshal(data, &cat); err != nil {
		return fmt.Errorf("failed to parse catalog.json: %w", err)
	}
	if len(cat.Levels) == 0 {
		return ErrEmptyCatalog
	}

	levels := make([]*engine.LevelConfig, 0, len(cat.Levels))
	for _, name := range cat.Levels {
		filename := name
		if !strings.HasSuffix(filename, ".json") {
			filename += ".json"
		}
		lvl, err := engine.LoadLevelConfig(filepath.Join(m.levelsDir, filename))
		if err != nil {
			return fmt.Errorf("level %q: %w", name, err)
		}
		if err := engine.ValidateLevelConfig(lvl, m.params); err != nil {
			return fmt.Errorf("%w: %q: %v", ErrInvalidLevel, name, err)
		}
		levels = append(levels, lvl)
	}

	m.catalog = levels
	m.index()
	return nil
}

func (m *Manager) index() {
	m.byName = make(map[string]*engine.LevelConfig, len(m.catalog))
	for _, lvl := range m.catalog {
		m.byName[strings.ToLower(lvl.Name)] = lvl
	}
}

// Catalog returns the ordered level list
func (m *Manager) Catalog() []*engine.LevelConfig {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.catalog
}

// Level looks up a level by display name (case-insensitive)
func (m *Manager) Level(name string) (*engine.LevelConfig, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if lvl, ok := m.byName[strings.ToLower(name)]; ok {
		return lvl, nil
	}
	return nil, fmt.Errorf("%w: %s", ErrLevelNotFound, name)
}

// RefreshCache reloads the catalog from disk
func (m *Manager) RefreshCache() error {
	return m.load()
}

// BuiltinCatalog returns the fallback campaign compiled into the binary, used
// when no catalog.json is present in the levels directory.
func BuiltinCatalog() []*engine.LevelConfig {
	warmup := &engine.LevelConfig{
		Name:           "Warm-up",
		Description:    "A single generous light to learn the pedals",
		StartSpeed:     50,
		FinishPosition: 900,
		Lights: []engine.LightConfig{
			{Position: 600, GreenDuration: 10, RedDuration: 3, PhaseOffset: 2},
		},
	}
	warmup.Messages.Welcome = "Roll through the light while it isn't red."

	pair := &engine.LevelConfig{
		Name:           "Double Take",
		Description:    "Two lights timed for a steady cruise",
		StartSpeed:     50,
		FinishPosition: 2100,
		Lights: []engine.LightConfig{
			{Position: 700, GreenDuration: 8, RedDuration: 4, PhaseOffset: 3},
			{Position: 1500, GreenDuration: 8, RedDuration: 4, PhaseOffset: 9},
		},
	}
	pair.Messages.Welcome = "Hold your speed and both lights stay friendly."

	wave := &engine.LevelConfig{
		Name:           "Green Wave",
		Description:    "Three lights riding one coordinated wave",
		StartSpeed:     60,
		FinishPosition: 3400,
		Lights: []engine.LightConfig{
			{Position: 800, GreenDuration: 7, RedDuration: 5, PhaseOffset: 4},
			{Position: 1800, GreenDuration: 7, RedDuration: 5, PhaseOffset: 9},
			{Position: 2800, GreenDuration: 7, RedDuration: 5, PhaseOffset: 14},
		},
	}
	wave.Messages.Welcome = "Ride the wave. Don't chase it."

	return []*engine.LevelConfig{warmup, pair, wave}
}
