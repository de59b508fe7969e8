package inventory

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/udisondev/hunters/internal/model"
	"github.com/udisondev/hunters/internal/persist"
	"github.com/udisondev/hunters/internal/testutil"
)

// failingStore accepts Load and fails every write.
type failingStore struct {
	*MemoryStore
	mu     sync.Mutex
	writes int
}

func (f *failingStore) Remove(context.Context, string, string, int32) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.writes++
	return testutil.ErrSimulated
}

func (f *failingStore) count() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.writes
}

func TestInventory_RemoveSync(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	store := NewMemoryStore(map[string]int32{"silver_bullet": 2, "knife": 1})
	inv, err := Load(ctx, "p1", store, nil)
	require.NoError(t, err)

	left, err := inv.Remove(ctx, "silver_bullet", 1)
	require.NoError(t, err)
	assert.Equal(t, int32(1), left)

	_, err = inv.Remove(ctx, "silver_bullet", 2)
	assert.ErrorIs(t, err, model.ErrInsufficientQuantity)
	assert.Equal(t, int32(1), inv.Quantity("silver_bullet"), "failed remove changes nothing")

	left, err = inv.Remove(ctx, "silver_bullet", 1)
	require.NoError(t, err)
	assert.Zero(t, left)

	_, err = inv.Remove(ctx, "bible", 1)
	assert.ErrorIs(t, err, model.ErrInsufficientQuantity)

	rows, err := store.Load(ctx, "p1")
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, "knife", rows[0].ItemKey)
}

func TestInventory_AddAndSlots(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	inv, err := Load(ctx, "p1", NewMemoryStore(nil), nil)
	require.NoError(t, err)

	assert.Equal(t, int32(3), inv.Add(ctx, "salt_bag", 3))
	assert.Equal(t, int32(4), inv.Add(ctx, "salt_bag", 1))
	inv.Add(ctx, "bible", 1)
	inv.Add(ctx, "bible", 0)

	slots := inv.Slots()
	require.Len(t, slots, 2)
	assert.Equal(t, "bible", slots[0].ItemKey)
	assert.Equal(t, int32(4), slots[1].Quantity)
}

// Local state stays final when the store fails.
func TestInventory_AsyncFailureIsLogged(t *testing.T) {
	t.Parallel()

	ctx, _ := testutil.ContextWithCancel(t)

	store := &failingStore{MemoryStore: NewMemoryStore(map[string]int32{"devils_trap": 3})}
	w := persist.NewWriter(1, 8, time.Second)
	go func() { _ = w.Run(ctx) }()

	inv, err := Load(ctx, "p1", store, w)
	require.NoError(t, err)

	left, err := inv.Remove(ctx, "devils_trap", 1)
	require.NoError(t, err)
	assert.Equal(t, int32(2), left)

	require.Eventually(t, func() bool { return store.count() == 1 && w.Failed() == 1 },
		time.Second, 5*time.Millisecond)
	assert.Equal(t, int32(2), inv.Quantity("devils_trap"))
}
