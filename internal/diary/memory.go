package diary

import (
	"context"
	"slices"
	"sync"

	"github.com/udisondev/hunters/internal/model"
)

// MemoryStore is an in-process Store used when no database is configured.
type MemoryStore struct {
	mu      sync.RWMutex
	entries map[string][]model.DiaryEntry // playerID → entries in insertion order
}

// NewMemoryStore creates an empty store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{entries: make(map[string][]model.DiaryEntry)}
}

// Add appends an entry.
func (m *MemoryStore) Add(_ context.Context, entry model.DiaryEntry) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.entries[entry.PlayerID] = append(m.entries[entry.PlayerID], entry)
	return nil
}

// Logs returns up to limit newest entries, newest first.
func (m *MemoryStore) Logs(_ context.Context, playerID string, limit int) ([]model.DiaryEntry, error) {
	m.mu.RLock()
	all := slices.Clone(m.entries[playerID])
	m.mu.RUnlock()

	slices.Reverse(all)
	if len(all) > limit {
		all = all[:limit]
	}
	return all, nil
}

// Stats counts hunt_start and monster_killed entries.
func (m *MemoryStore) Stats(_ context.Context, playerID string) (model.ProfileStats, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	var s model.ProfileStats
	for _, e := range m.entries[playerID] {
		switch e.Type {
		case model.DiaryHuntStart:
			s.Hunts++
		case model.DiaryMonsterKilled:
			s.Kills++
		}
	}
	return s, nil
}
