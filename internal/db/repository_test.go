package db_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/udisondev/hunters/internal/db"
	"github.com/udisondev/hunters/internal/model"
	"github.com/udisondev/hunters/internal/testutil"
)

func TestInventoryRepository(t *testing.T) {
	pool := testutil.SetupTestDB(t)
	repo := db.NewInventoryRepository(pool)
	ctx := context.Background()

	seeded, err := repo.Seed(ctx, "p1", map[string]int32{"iron_bar": 1, "silver_bullet": 6})
	require.NoError(t, err)
	assert.True(t, seeded)

	seeded, err = repo.Seed(ctx, "p1", map[string]int32{"knife": 1})
	require.NoError(t, err)
	assert.False(t, seeded, "second seed must not add items")

	require.NoError(t, repo.Add(ctx, "p1", "silver_bullet", 2))
	require.NoError(t, repo.Add(ctx, "p1", "salt_bag", 1))

	slots, err := repo.Load(ctx, "p1")
	require.NoError(t, err)
	require.Len(t, slots, 3)
	assert.Equal(t, "iron_bar", slots[0].ItemKey)
	assert.NotEmpty(t, slots[0].ID)
	assert.Equal(t, int32(8), model.FindSlot(slots, "silver_bullet").Quantity)

	t.Run("remove partial", func(t *testing.T) {
		require.NoError(t, repo.Remove(ctx, "p1", "silver_bullet", 3))
		slots, err := repo.Load(ctx, "p1")
		require.NoError(t, err)
		assert.Equal(t, int32(5), model.FindSlot(slots, "silver_bullet").Quantity)
	})

	t.Run("remove to zero deletes row", func(t *testing.T) {
		require.NoError(t, repo.Remove(ctx, "p1", "salt_bag", 1))
		slots, err := repo.Load(ctx, "p1")
		require.NoError(t, err)
		assert.Nil(t, model.FindSlot(slots, "salt_bag"))
	})

	t.Run("insufficient", func(t *testing.T) {
		err := repo.Remove(ctx, "p1", "iron_bar", 2)
		assert.ErrorIs(t, err, model.ErrInsufficientQuantity)

		err = repo.Remove(ctx, "p1", "bones", 1)
		assert.ErrorIs(t, err, model.ErrInsufficientQuantity)

		slots, err := repo.Load(ctx, "p1")
		require.NoError(t, err)
		assert.Equal(t, int32(1), model.FindSlot(slots, "iron_bar").Quantity, "failed remove must not change the row")
	})

	t.Run("players are isolated", func(t *testing.T) {
		slots, err := repo.Load(ctx, "p2")
		require.NoError(t, err)
		assert.Empty(t, slots)
	})
}

func TestDiaryRepository(t *testing.T) {
	pool := testutil.SetupTestDB(t)
	repo := db.NewDiaryRepository(pool)
	ctx := context.Background()

	base := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	entries := []model.DiaryEntry{
		{Type: model.DiaryHuntStart, Description: "Hunt started", LocationName: "Praça da Sé"},
		{Type: model.DiaryMonsterKilled, Description: "Defeated a Ghost", MonsterID: "ghost"},
		{Type: model.DiaryMonsterKilled, Description: "Defeated a Werewolf", MonsterID: "werewolf"},
		{Type: model.DiaryPlayerDefeated, Description: "Defeated by a Wendigo", MonsterID: "wendigo"},
	}
	for i := range entries {
		entries[i].ID = uuid.New()
		entries[i].PlayerID = "p1"
		entries[i].CreatedAt = base.Add(time.Duration(i) * time.Minute)
		require.NoError(t, repo.Add(ctx, entries[i]))
	}

	logs, err := repo.Logs(ctx, "p1", 2)
	require.NoError(t, err)
	require.Len(t, logs, 2)
	assert.Equal(t, entries[3].ID, logs[0].ID, "newest first")
	assert.Equal(t, "werewolf", logs[1].MonsterID)

	logs, err = repo.Logs(ctx, "p1", 10)
	require.NoError(t, err)
	require.Len(t, logs, 4)
	assert.Equal(t, "Praça da Sé", logs[3].LocationName)
	assert.Empty(t, logs[3].MonsterID)

	stats, err := repo.Stats(ctx, "p1")
	require.NoError(t, err)
	assert.Equal(t, 1, stats.Hunts)
	assert.Equal(t, 2, stats.Kills)

	stats, err = repo.Stats(ctx, "nobody")
	require.NoError(t, err)
	assert.Zero(t, stats.Kills)
}

func TestProfileRepository(t *testing.T) {
	pool := testutil.SetupTestDB(t)
	repo := db.NewProfileRepository(pool)
	ctx := context.Background()

	p, err := repo.Ensure(ctx, "p1", "Dean", 100)
	require.NoError(t, err)
	assert.Equal(t, int32(100), p.CurrentHP)
	assert.Equal(t, int32(1), p.Level)

	require.NoError(t, repo.UpdateHP(ctx, "p1", 40))
	p, err = repo.Ensure(ctx, "p1", "ignored", 500)
	require.NoError(t, err)
	assert.Equal(t, int32(40), p.CurrentHP, "ensure must not reset an existing profile")
	assert.Equal(t, "Dean", p.HunterName)

	require.NoError(t, repo.UpdateHP(ctx, "p1", -15))
	p, err = repo.Get(ctx, "p1")
	require.NoError(t, err)
	assert.Equal(t, int32(0), p.CurrentHP)

	require.NoError(t, repo.UpdateHP(ctx, "p1", 1000))
	p, err = repo.Get(ctx, "p1")
	require.NoError(t, err)
	assert.Equal(t, int32(100), p.CurrentHP)

	_, err = repo.Get(ctx, "ghost-player")
	assert.ErrorIs(t, err, model.ErrNotFound)
	assert.ErrorIs(t, repo.UpdateHP(ctx, "ghost-player", 10), model.ErrNotFound)
}
