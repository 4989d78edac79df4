package score

import (
	"encoding/json"
	"fmt"
	"os"
	"sync"
)

// Store persists best completion times keyed by level name. Implementations
// must degrade gracefully: a Read miss and a failed Write both leave gameplay
// untouched.
type Store interface {
	Read(levelID string) (float64, bool)
	Write(levelID string, t float64) error
}

// NoopStore is a Store that remembers nothing. The keeper must work against
// it without any behavioral difference beyond best times not surviving.
type NoopStore struct{}

func (NoopStore) Read(string) (float64, bool) { return 0, false }
func (NoopStore) Write(string, float64) error { return nil }

// FileStore keeps all best times in a single JSON object file mapping level
// name to time in seconds.
type FileStore struct {
	path string
	mu   sync.Mutex
}

// NewFileStore creates a file-backed store at the given path. The file is
// created lazily on first write.
func NewFileStore(path string) *FileStore {
	return &FileStore{path: path}
}

// Read returns the stored best time for a level. Any file or parse problem
// reads as "no best time yet".
func (fs *FileStore) Read(levelID string) (float64, bool) {
	fs.mu.Lock()
	defer fs.mu.Unlock()

	times := fs.load()
	t, ok := times[levelID]
	return t, ok
}

// Write stores a best time, replacing whatever was there
func (fs *FileStore) Write(levelID string, t float64) error {
	fs.mu.Lock()
	defer fs.mu.Unlock()

	times := fs.load()
	times[levelID] = t

	data, err := json.MarshalIndent(times, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal best times: %w", err)
	}
	if err := os.WriteFile(fs.path, data, 0644); err != nil {
		return fmt.Errorf("failed to write best times file: %w", err)
	}
	return nil
}

// All returns every stored best time
func (fs *FileStore) All() map[string]float64 {
	fs.mu.Lock()
	defer fs.mu.Unlock()
	return fs.load()
}

func (fs *FileStore) load() map[string]float64 {
	times := make(map[string]float64)
	data, err := os.ReadFile(fs.path)
	if err != nil {
		return times
	}
	// A corrupt file reads as empty; the next write repairs it
	json.Unmarshal(data, &times)
	return times
}
