package inventory

import (
	"context"
	"fmt"
	"sync"

	"github.com/google/uuid"

	"github.com/udisondev/hunters/internal/model"
)

// MemoryStore is an in-process Store used when no database is configured.
type MemoryStore struct {
	mu      sync.Mutex
	players map[string]map[string]*model.InventorySlot

	// starter is given to players seen for the first time.
	starter map[string]int32
}

// NewMemoryStore creates a store. starter may be nil.
func NewMemoryStore(starter map[string]int32) *MemoryStore {
	return &MemoryStore{
		players: make(map[string]map[string]*model.InventorySlot),
		starter: starter,
	}
}

func (m *MemoryStore) player(playerID string) map[string]*model.InventorySlot {
	p, ok := m.players[playerID]
	if !ok {
		p = make(map[string]*model.InventorySlot, len(m.starter))
		for key, qty := range m.starter {
			p[key] = &model.InventorySlot{ID: uuid.NewString(), ItemKey: key, Quantity: qty}
		}
		m.players[playerID] = p
	}
	return p
}

// Load returns the player's slots.
func (m *MemoryStore) Load(_ context.Context, playerID string) ([]model.InventorySlot, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	p := m.player(playerID)
	out := make([]model.InventorySlot, 0, len(p))
	for _, s := range p {
		out = append(out, *s)
	}
	return out, nil
}

// Add increases the stack, creating the row if needed.
func (m *MemoryStore) Add(_ context.Context, playerID, itemKey string, qty int32) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	p := m.player(playerID)
	s, ok := p[itemKey]
	if !ok {
		s = &model.InventorySlot{ID: uuid.NewString(), ItemKey: itemKey}
		p[itemKey] = s
	}
	s.Quantity += qty
	return nil
}

// Remove decreases the stack and deletes the row at zero.
func (m *MemoryStore) Remove(_ context.Context, playerID, itemKey string, qty int32) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	p := m.player(playerID)
	s, ok := p[itemKey]
	if !ok || s.Quantity < qty {
		return fmt.Errorf("%s: %w", itemKey, model.ErrInsufficientQuantity)
	}
	s.Quantity -= qty
	if s.Quantity == 0 {
		delete(p, itemKey)
	}
	return nil
}
