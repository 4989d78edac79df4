package score

import (
	"log"
	"sync"
)

// Keeper tracks the best completion time per level on top of an injected
// Store. Store failures are logged and swallowed so a broken or absent store
// never reaches the simulation loop.
type Keeper struct {
	store Store
	mu    sync.Mutex
}

// NewKeeper creates a keeper over the given store. A nil store falls back to
// a NoopStore.
func NewKeeper(store Store) *Keeper {
	if store == nil {
		store = NoopStore{}
	}
	return &Keeper{store: store}
}

// RecordTime compares t against the stored best for a level and persists it
// when it is an improvement. Returns the best time after the update and
// whether this run improved it.
func (k *Keeper) RecordTime(levelID string, t float64) (best float64, improved bool) {
	k.mu.Lock()
	defer k.mu.Unlock()

	prev, ok := k.store.Read(levelID)
	if ok && prev <= t {
		return prev, false
	}
	if err := k.store.Write(levelID, t); err != nil {
		log.Printf("Warning: Failed to save best time for %s: %v", levelID, err)
	}
	return t, true
}

// BestTime returns the stored best time for a level
func (k *Keeper) BestTime(levelID string) (float64, bool) {
	k.mu.Lock()
	defer k.mu.Unlock()
	return k.store.Read(levelID)
}

// BestTimes returns the best times for the given level names, omitting levels
// without a recorded time.
func (k *Keeper) BestTimes(levelIDs []string) map[string]float64 {
	k.mu.Lock()
	defer k.mu.Unlock()

	result := make(map[string]float64)
	for _, id := range levelIDs {
		if t, ok := k.store.Read(id); ok {
			result[id] = t
		}
	}
	return result
}
