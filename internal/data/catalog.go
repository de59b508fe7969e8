package data

import (
	"fmt"

	"github.com/udisondev/hunters/internal/model"
)

// Catalog — immutable registry of item and monster archetypes.
// Built once by LoadCatalog; safe for concurrent reads without locking.
type Catalog struct {
	items    map[string]*model.ItemTemplate
	monsters map[string]*model.MonsterTemplate

	itemOrder    []*model.ItemTemplate
	monsterOrder []*model.MonsterTemplate
	spawnable    []*model.MonsterTemplate
}

// Item возвращает шаблон предмета по ID.
func (c *Catalog) Item(id string) (*model.ItemTemplate, error) {
	t, ok := c.items[id]
	if !ok {
		return nil, fmt.Errorf("item %q: %w", id, model.ErrNotFound)
	}
	return t, nil
}

// Monster возвращает шаблон монстра по ID.
func (c *Catalog) Monster(id string) (*model.MonsterTemplate, error) {
	t, ok := c.monsters[id]
	if !ok {
		return nil, fmt.Errorf("monster %q: %w", id, model.ErrNotFound)
	}
	return t, nil
}

// Items returns all item archetypes in catalog order.
// The slice is shared; callers must not modify it.
func (c *Catalog) Items() []*model.ItemTemplate {
	return c.itemOrder
}

// Monsters returns all monster archetypes in catalog order.
func (c *Catalog) Monsters() []*model.MonsterTemplate {
	return c.monsterOrder
}

// Spawnable returns monsters with SpawnWeight > 0 in catalog order.
// SpawnWeight of each entry is its share of the selection distribution.
func (c *Catalog) Spawnable() []*model.MonsterTemplate {
	return c.spawnable
}

// TotalSpawnWeight sums SpawnWeight over Spawnable.
func (c *Catalog) TotalSpawnWeight() int64 {
	var total int64
	for _, m := range c.spawnable {
		total += int64(m.SpawnWeight)
	}
	return total
}
