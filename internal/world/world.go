package world

import (
	"cmp"
	"fmt"
	"log/slog"
	"slices"
	"sync"
	"sync/atomic"
	"time"

	"github.com/udisondev/hunters/internal/metrics"
	"github.com/udisondev/hunters/internal/model"
)

// MonsterSource resolves archetypes for Spawn. Implemented by *data.Catalog.
type MonsterSource interface {
	Monster(id string) (*model.MonsterTemplate, error)
}

// Registry tracks live encounters around one player.
// Membership is guarded by the map; each Encounter guards its own mutable state.
type Registry struct {
	monsters MonsterSource
	ids      *InstanceIDGenerator
	now      func() time.Time

	encounters sync.Map // map[uint32]*model.Encounter — instanceID → encounter
	count      atomic.Int32
}

// NewRegistry creates an empty registry. nil ids means the process-wide generator.
func NewRegistry(monsters MonsterSource, ids *InstanceIDGenerator) *Registry {
	if ids == nil {
		ids = IDGenerator()
	}
	return &Registry{
		monsters: monsters,
		ids:      ids,
		now:      time.Now,
	}
}

// Spawn creates an encounter of monsterID at pos with full HP.
func (r *Registry) Spawn(monsterID string, pos model.Position) (*model.Encounter, error) {
	tmpl, err := r.monsters.Monster(monsterID)
	if err != nil {
		return nil, fmt.Errorf("spawning encounter: %w", err)
	}

	enc := model.NewEncounter(r.ids.Next(), tmpl, pos, r.now())
	r.encounters.Store(enc.InstanceID(), enc)
	r.count.Add(1)
	metrics.EncountersActive.Inc()

	slog.Debug("encounter spawned",
		"instanceID", enc.InstanceID(),
		"monster", monsterID,
		"x", pos.X, "z", pos.Z)
	return enc, nil
}

// Get returns the encounter with instanceID.
func (r *Registry) Get(instanceID uint32) (*model.Encounter, error) {
	v, ok := r.encounters.Load(instanceID)
	if !ok {
		return nil, fmt.Errorf("encounter %d: %w", instanceID, model.ErrNotFound)
	}
	return v.(*model.Encounter), nil
}

// ApplyDamage subtracts amount from the encounter's HP and returns the new HP,
// clamped to [0, maxHP]. Negative amounts are treated as zero.
// The encounter stays registered at 0 HP until Remove.
func (r *Registry) ApplyDamage(instanceID uint32, amount int32) (int32, error) {
	amount = max(amount, 0)

	enc, err := r.Get(instanceID)
	if err != nil {
		return 0, err
	}
	return enc.ReduceHP(amount), nil
}

// Remove deletes the encounter. Removing an unknown or already removed ID is a no-op.
// Reports whether this call removed it, so concurrent defeat and despawn agree on one winner.
func (r *Registry) Remove(instanceID uint32) bool {
	if _, ok := r.encounters.LoadAndDelete(instanceID); !ok {
		return false
	}
	r.count.Add(-1)
	metrics.EncountersActive.Dec()
	slog.Debug("encounter removed", "instanceID", instanceID)
	return true
}

// ListActive returns live encounters ordered by instance ID (spawn order).
func (r *Registry) ListActive() []*model.Encounter {
	out := make([]*model.Encounter, 0, r.Count())
	r.encounters.Range(func(_, v any) bool {
		out = append(out, v.(*model.Encounter))
		return true
	})
	slices.SortFunc(out, func(a, b *model.Encounter) int {
		return cmp.Compare(a.InstanceID(), b.InstanceID())
	})
	return out
}

// Count returns the number of live encounters.
func (r *Registry) Count() int {
	return int(r.count.Load())
}

// Clear removes every encounter. Used when a player session is closed.
func (r *Registry) Clear() {
	r.encounters.Range(func(k, _ any) bool {
		r.Remove(k.(uint32))
		return true
	})
}
