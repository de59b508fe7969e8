// Package inventory keeps a player's local inventory in sync with a persistent store.
package inventory

import (
	"cmp"
	"context"
	"fmt"
	"log/slog"
	"slices"
	"sync"

	"github.com/udisondev/hunters/internal/model"
	"github.com/udisondev/hunters/internal/persist"
)

// Store persists inventory rows. Implemented by *db.InventoryRepository and *MemoryStore.
type Store interface {
	Load(ctx context.Context, playerID string) ([]model.InventorySlot, error)
	Add(ctx context.Context, playerID, itemKey string, qty int32) error
	Remove(ctx context.Context, playerID, itemKey string, qty int32) error
}

// Inventory — локальное зеркало инвентаря игрока.
// Reads and removals are served locally and are final immediately;
// the store is updated asynchronously through the writer.
type Inventory struct {
	playerID string
	store    Store
	writer   *persist.Writer

	mu    sync.RWMutex
	slots map[string]*model.InventorySlot
}

// Load reads the player's inventory from store.
// writer may be nil, in which case store writes happen synchronously.
func Load(ctx context.Context, playerID string, store Store, writer *persist.Writer) (*Inventory, error) {
	rows, err := store.Load(ctx, playerID)
	if err != nil {
		return nil, fmt.Errorf("loading inventory for %s: %w", playerID, err)
	}

	inv := &Inventory{
		playerID: playerID,
		store:    store,
		writer:   writer,
		slots:    make(map[string]*model.InventorySlot, len(rows)),
	}
	for i := range rows {
		slot := rows[i]
		inv.slots[slot.ItemKey] = &slot
	}
	return inv, nil
}

// Quantity returns how many itemKey the player holds.
func (i *Inventory) Quantity(itemKey string) int32 {
	i.mu.RLock()
	defer i.mu.RUnlock()
	if s, ok := i.slots[itemKey]; ok {
		return s.Quantity
	}
	return 0
}

// Slots returns a snapshot ordered by item key.
func (i *Inventory) Slots() []model.InventorySlot {
	i.mu.RLock()
	out := make([]model.InventorySlot, 0, len(i.slots))
	for _, s := range i.slots {
		out = append(out, *s)
	}
	i.mu.RUnlock()

	slices.SortFunc(out, func(a, b model.InventorySlot) int { return cmp.Compare(a.ItemKey, b.ItemKey) })
	return out
}

// Remove takes qty of itemKey. Returns the remaining quantity or
// model.ErrInsufficientQuantity without changing anything.
func (i *Inventory) Remove(ctx context.Context, itemKey string, qty int32) (int32, error) {
	if qty <= 0 {
		return i.Quantity(itemKey), nil
	}

	i.mu.Lock()
	s, ok := i.slots[itemKey]
	if !ok || s.Quantity < qty {
		have := int32(0)
		if ok {
			have = s.Quantity
		}
		i.mu.Unlock()
		return have, fmt.Errorf("%s: have %d, need %d: %w", itemKey, have, qty, model.ErrInsufficientQuantity)
	}
	s.Quantity -= qty
	remaining := s.Quantity
	if remaining == 0 {
		delete(i.slots, itemKey)
	}
	i.mu.Unlock()

	i.persist(ctx, "remove", func(ctx context.Context) error {
		return i.store.Remove(ctx, i.playerID, itemKey, qty)
	})
	return remaining, nil
}

// Add gives qty of itemKey to the player.
func (i *Inventory) Add(ctx context.Context, itemKey string, qty int32) int32 {
	if qty <= 0 {
		return i.Quantity(itemKey)
	}

	i.mu.Lock()
	s, ok := i.slots[itemKey]
	if !ok {
		s = &model.InventorySlot{ItemKey: itemKey}
		i.slots[itemKey] = s
	}
	s.Quantity += qty
	total := s.Quantity
	i.mu.Unlock()

	i.persist(ctx, "add", func(ctx context.Context) error {
		return i.store.Add(ctx, i.playerID, itemKey, qty)
	})
	return total
}

func (i *Inventory) persist(ctx context.Context, op string, fn func(context.Context) error) {
	if i.writer != nil {
		i.writer.Enqueue(persist.Job{Store: "inventory", Op: op, Do: fn})
		return
	}
	if err := fn(ctx); err != nil {
		slog.Error("inventory write failed", "player", i.playerID, "op", op, "error", err)
	}
}
