package world

import (
	"fmt"
	"math"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/udisondev/hunters/internal/model"
)

// stubMonsters — MonsterSource для тестов.
type stubMonsters map[string]*model.MonsterTemplate

func (s stubMonsters) Monster(id string) (*model.MonsterTemplate, error) {
	t, ok := s[id]
	if !ok {
		return nil, fmt.Errorf("monster %q: %w", id, model.ErrNotFound)
	}
	return t, nil
}

func newTestRegistry() *Registry {
	return NewRegistry(stubMonsters{
		"werewolf": {ID: "werewolf", HP: 150, Damage: 35, SpawnWeight: 1},
		"ghost":    {ID: "ghost", HP: 80, Invisible: true, VisibleWith: "old_camera", SpawnWeight: 1},
	}, NewInstanceIDGenerator())
}

func TestRegistry_SpawnGet(t *testing.T) {
	t.Parallel()

	r := newTestRegistry()
	pos := model.NewPosition(1, 0, -5)

	enc, err := r.Spawn("werewolf", pos)
	require.NoError(t, err)
	assert.Equal(t, "werewolf", enc.MonsterID())
	assert.Equal(t, int32(150), enc.CurrentHP())
	assert.Equal(t, pos, enc.Position())
	assert.Equal(t, 1, r.Count())

	got, err := r.Get(enc.InstanceID())
	require.NoError(t, err)
	assert.Same(t, enc, got)

	_, err = r.Spawn("dragon", pos)
	assert.ErrorIs(t, err, model.ErrNotFound)
	assert.Equal(t, 1, r.Count())

	_, err = r.Get(12345)
	assert.ErrorIs(t, err, model.ErrNotFound)
}

func TestRegistry_ApplyDamageClamps(t *testing.T) {
	t.Parallel()

	r := newTestRegistry()
	enc, err := r.Spawn("werewolf", model.Position{})
	require.NoError(t, err)

	tests := []struct {
		name   string
		amount int32
		want   int32
	}{
		{"partial", 50, 100},
		{"negative is no-op", -500, 100},
		{"min int32 is no-op", math.MinInt32, 100},
		{"overkill clamps to zero", math.MaxInt32, 0},
		{"already dead stays zero", 10, 0},
	}
	for _, tt := range tests {
		hp, err := r.ApplyDamage(enc.InstanceID(), tt.amount)
		require.NoError(t, err, tt.name)
		assert.Equal(t, tt.want, hp, tt.name)
	}

	_, err = r.ApplyDamage(999, 1)
	assert.ErrorIs(t, err, model.ErrNotFound)
}

func TestRegistry_RemoveIdempotent(t *testing.T) {
	t.Parallel()

	r := newTestRegistry()
	enc, err := r.Spawn("ghost", model.Position{})
	require.NoError(t, err)

	assert.True(t, r.Remove(enc.InstanceID()))
	assert.False(t, r.Remove(enc.InstanceID()))
	assert.False(t, r.Remove(424242))
	assert.Equal(t, 0, r.Count())
	assert.Empty(t, r.ListActive())
}

func TestRegistry_IDsNeverReused(t *testing.T) {
	t.Parallel()

	r := newTestRegistry()
	seen := make(map[uint32]bool)
	for range 50 {
		enc, err := r.Spawn("werewolf", model.Position{})
		require.NoError(t, err)
		require.False(t, seen[enc.InstanceID()], "id %d reused", enc.InstanceID())
		seen[enc.InstanceID()] = true
		r.Remove(enc.InstanceID())
	}
}

func TestRegistry_ListActiveOrdered(t *testing.T) {
	t.Parallel()

	r := newTestRegistry()
	var ids []uint32
	for _, m := range []string{"ghost", "werewolf", "ghost"} {
		enc, err := r.Spawn(m, model.Position{})
		require.NoError(t, err)
		ids = append(ids, enc.InstanceID())
	}
	r.Remove(ids[1])

	active := r.ListActive()
	require.Len(t, active, 2)
	assert.Equal(t, ids[0], active[0].InstanceID())
	assert.Equal(t, ids[2], active[1].InstanceID())

	r.Clear()
	assert.Equal(t, 0, r.Count())
}

func TestRegistry_ConcurrentDefeatAndDespawn(t *testing.T) {
	t.Parallel()

	r := newTestRegistry()
	enc, err := r.Spawn("werewolf", model.Position{})
	require.NoError(t, err)

	var (
		wg      sync.WaitGroup
		mu      sync.Mutex
		winners int
	)
	for range 16 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, _ = r.ApplyDamage(enc.InstanceID(), 20)
			if r.Remove(enc.InstanceID()) {
				mu.Lock()
				winners++
				mu.Unlock()
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, 1, winners)
	assert.Equal(t, 0, r.Count())
}
