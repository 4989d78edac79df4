package session

import (
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"log"
	"strings"
	"sync"
	"time"

	"github.com/greenwave-game/greenwave/game/engine"
	"github.com/greenwave-game/greenwave/game/service"
)

var (
	ErrSessionNotFound      = errors.New("session not found")
	ErrSessionAlreadyExists = errors.New("session already exists")
)

// Manager handles game session lifecycle. Every session gets its own engine
// over the shared level catalog plus a stepper for frame-delta bounding.
type Manager struct {
	catalog     []*engine.LevelConfig
	params      engine.PhysicsParams
	sessions    map[string]*service.Session
	persistence SessionPersistence
	mu          sync.RWMutex
}

// NewManager creates a session manager over the given level catalog
func NewManager(catalog []*engine.LevelConfig, params engine.PhysicsParams) *Manager {
	return &Manager{
		catalog:  catalog,
		params:   params,
		sessions: make(map[string]*service.Session),
	}
}

// NewManagerWithPersistence creates a session manager that saves sessions
// through the given persistence layer.
func NewManagerWithPersistence(catalog []*engine.LevelConfig, params engine.PhysicsParams, persistence SessionPersistence) *Manager {
	m := NewManager(catalog, params)
	m.persistence = persistence
	return m
}

// Create creates a new session with the given ID. An empty ID gets a random
// 4-character one.
func (m *Manager) Create(id, playerName string) (*service.Session, error) {
	if id == "" {
		id = m.generateSessionID()
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	if _, exists := m.sessions[strings.ToLower(id)]; exists {
		return nil, ErrSessionAlreadyExists
	}

	eng, err := engine.NewEngine(m.catalog, m.params)
	if err != nil {
		return nil, fmt.Errorf("failed to create engine: %w", err)
	}

	sess := &service.Session{
		ID:             id,
		PlayerName:     playerName,
		Engine:         eng,
		Stepper:        engine.NewStepper(m.params.MaxFrameDelta),
		CreatedAt:      time.Now(),
		LastAccessedAt: time.Now(),
	}
	m.sessions[strings.ToLower(id)] = sess

	if m.persistence != nil {
		if err := m.persistence.Save(sess); err != nil {
			log.Printf("Warning: Failed to persist session %s: %v", id, err)
		}
	}

	return sess, nil
}

// Get retrieves a session by ID (case-insensitive), falling back to the
// persistence layer when it is not in memory.
func (m *Manager) Get(id string) (*service.Session, error) {
	m.mu.RLock()
	sess, exists := m.sessions[strings.ToLower(id)]
	m.mu.RUnlock()

	if exists {
		return sess, nil
	}

	if m.persistence != nil && m.persistence.Exists(id) {
		sess, err := m.persistence.Load(id)
		if err != nil {
			return nil, fmt.Errorf("failed to load persisted session: %w", err)
		}

		m.mu.Lock()
		m.sessions[strings.ToLower(id)] = sess
		m.mu.Unlock()

		return sess, nil
	}

	return nil, ErrSessionNotFound
}

// List returns all active sessions
func (m *Manager) List() []*service.Session {
	m.mu.RLock()
	defer m.mu.RUnlock()

	result := make([]*service.Session, 0, len(m.sessions))
	for _, sess := range m.sessions {
		result = append(result, sess)
	}
	return result
}

// Delete removes a session from memory and persistence
func (m *Manager) Delete(id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	lowerID := strings.ToLower(id)
	_, inMemory := m.sessions[lowerID]
	delete(m.sessions, lowerID)

	if m.persistence != nil && m.persistence.Exists(id) {
		if err := m.persistence.Delete(id); err != nil {
			return fmt.Errorf("failed to delete persisted session: %w", err)
		}
		return nil
	}

	if !inMemory {
		return ErrSessionNotFound
	}
	return nil
}

// DeleteFromMemory removes a session from memory only, leaving any persisted
// copy in place.
func (m *Manager) DeleteFromMemory(id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	lowerID := strings.ToLower(id)
	if _, exists := m.sessions[lowerID]; !exists {
		return ErrSessionNotFound
	}
	delete(m.sessions, lowerID)
	return nil
}

// UpdateLastAccessed updates the last accessed time for a session
func (m *Manager) UpdateLastAccessed(id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	sess, exists := m.sessions[strings.ToLower(id)]
	if !exists {
		return ErrSessionNotFound
	}
	sess.LastAccessedAt = time.Now()
	return nil
}

// Save saves a specific session to persistence
func (m *Manager) Save(id string) error {
	if m.persistence == nil {
		return nil
	}

	m.mu.RLock()
	sess, exists := m.sessions[strings.ToLower(id)]
	m.mu.RUnlock()

	if !exists {
		return ErrSessionNotFound
	}
	return m.persistence.Save(sess)
}

// CleanupExpiredSessions removes sessions that have not been accessed within
// the given duration and returns how many were removed.
func (m *Manager) CleanupExpiredSessions(maxAge time.Duration) int {
	m.mu.Lock()
	defer m.mu.Unlock()

	cutoff := time.Now().Add(-maxAge)
	removed := 0
	for id, sess := range m.sessions {
		if sess.LastAccessedAt.Before(cutoff) {
			delete(m.sessions, id)
			removed++
		}
	}
	return removed
}

// Count returns the number of active sessions
func (m *Manager) Count() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.sessions)
}

// LoadPersistedSessions loads all persisted sessions into memory
func (m *Manager) LoadPersistedSessions() error {
	if m.persistence == nil {
		return nil
	}

	sessionIDs, err := m.persistence.ListAll()
	if err != nil {
		return fmt.Errorf("failed to list persisted sessions: %w", err)
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	loaded := 0
	for _, id := range sessionIDs {
		if _, exists := m.sessions[strings.ToLower(id)]; exists {
			continue
		}
		sess, err := m.persistence.Load(id)
		if err != nil {
			log.Printf("Warning: Failed to load persisted session %s: %v", id, err)
			continue
		}
		m.sessions[strings.ToLower(id)] = sess
		loaded++
	}

	if loaded > 0 {
		log.Printf("Loaded %d persisted sessions from storage", loaded)
	}
	return nil
}

// SaveAllSessions saves all in-memory sessions to persistence
func (m *Manager) SaveAllSessions() error {
	if m.persistence == nil {
		return nil
	}

	m.mu.RLock()
	sessions := make([]*service.Session, 0, len(m.sessions))
	for _, sess := range m.sessions {
		sessions = append(sessions, sess)
	}
	m.mu.RUnlock()

	errorCount := 0
	for _, sess := range sessions {
		if err := m.persistence.Save(sess); err != nil {
			log.Printf("Warning: Failed to save session %s: %v", sess.ID, err)
			errorCount++
		}
	}
	if errorCount > 0 {
		return fmt.Errorf("failed to save %d sessions", errorCount)
	}
	return nil
}

// generateSessionID generates a random 4-character session ID
func (m *Manager) generateSessionID() string {
	bytes := make([]byte, 2)
	rand.Read(bytes)
	return hex.EncodeToString(bytes)
}
