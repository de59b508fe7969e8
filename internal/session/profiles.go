package session

import (
	"context"
	"fmt"
	"sync"

	"github.com/udisondev/hunters/internal/model"
)

// MemoryProfileStore is an in-process ProfileStore used when no database is configured.
type MemoryProfileStore struct {
	mu       sync.Mutex
	profiles map[string]model.Profile
}

// NewMemoryProfileStore creates an empty store.
func NewMemoryProfileStore() *MemoryProfileStore {
	return &MemoryProfileStore{profiles: make(map[string]model.Profile)}
}

// Ensure returns the profile, creating it at full HP if needed.
func (m *MemoryProfileStore) Ensure(_ context.Context, playerID, name string, maxHP int32) (model.Profile, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	p, ok := m.profiles[playerID]
	if !ok {
		p = model.Profile{ID: playerID, HunterName: name, Level: 1, CurrentHP: maxHP, MaxHP: maxHP}
		m.profiles[playerID] = p
	}
	return p, nil
}

// UpdateHP stores HP clamped to [0, MaxHP].
func (m *MemoryProfileStore) UpdateHP(_ context.Context, playerID string, hp int32) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	p, ok := m.profiles[playerID]
	if !ok {
		return fmt.Errorf("profile %s: %w", playerID, model.ErrNotFound)
	}
	p.CurrentHP = min(max(hp, 0), p.MaxHP)
	m.profiles[playerID] = p
	return nil
}

// Get returns a stored profile.
func (m *MemoryProfileStore) Get(_ context.Context, playerID string) (model.Profile, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	p, ok := m.profiles[playerID]
	if !ok {
		return p, fmt.Errorf("profile %s: %w", playerID, model.ErrNotFound)
	}
	return p, nil
}
