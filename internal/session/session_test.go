package session

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/udisondev/hunters/internal/data"
	"github.com/udisondev/hunters/internal/diary"
	"github.com/udisondev/hunters/internal/game/combat"
	"github.com/udisondev/hunters/internal/inventory"
	"github.com/udisondev/hunters/internal/model"
	"github.com/udisondev/hunters/internal/spawn"
)

type fixture struct {
	mgr      *Manager
	diary    *diary.MemoryStore
	profiles *MemoryProfileStore
}

func newFixture(t *testing.T, starter map[string]int32, mutate ...func(*Config)) *fixture {
	t.Helper()

	catalog, err := data.LoadCatalog()
	require.NoError(t, err)

	cfg := DefaultConfig()
	cfg.Spawn.Interval = time.Hour // ticks driven by the test
	for _, fn := range mutate {
		fn(&cfg)
	}

	f := &fixture{
		diary:    diary.NewMemoryStore(),
		profiles: NewMemoryProfileStore(),
	}
	f.mgr = NewManager(context.Background(), cfg, Deps{
		Catalog:   catalog,
		Inventory: inventory.NewMemoryStore(starter),
		Diary:     f.diary,
		Profiles:  f.profiles,
	})
	t.Cleanup(f.mgr.Shutdown)
	return f
}

func (f *fixture) open(t *testing.T) *Session {
	t.Helper()
	s, err := f.mgr.Create(context.Background(), "p1", "Sam")
	require.NoError(t, err)
	return s
}

func diaryTypes(t *testing.T, s *Session) []model.DiaryEventType {
	t.Helper()
	logs, err := s.Diary(context.Background(), 0)
	require.NoError(t, err)
	out := make([]model.DiaryEventType, 0, len(logs))
	for _, e := range logs {
		out = append(out, e.Type)
	}
	return out
}

func TestCreate_LoadsProfileAndInventory(t *testing.T) {
	f := newFixture(t, map[string]int32{"knife": 1, "first_aid": 2})
	_, err := f.profiles.Ensure(context.Background(), "p1", "Sam", 100)
	require.NoError(t, err)
	require.NoError(t, f.profiles.UpdateHP(context.Background(), "p1", 35))

	s := f.open(t)

	cur, maxHP := s.Vitals()
	assert.Equal(t, int32(35), cur)
	assert.Equal(t, int32(100), maxHP)
	assert.Len(t, s.Inventory(), 2)
	assert.Equal(t, 1, f.mgr.Len())
}

func TestSelect(t *testing.T) {
	f := newFixture(t, map[string]int32{"knife": 1})
	s := f.open(t)

	item, err := s.Select("knife")
	require.NoError(t, err)
	assert.Equal(t, "knife", item.ID)
	assert.Same(t, item, s.Selected())

	_, err = s.Select("angel_blade")
	assert.ErrorIs(t, err, model.ErrInsufficientQuantity)
	assert.Equal(t, "knife", s.Selected().ID, "failed select keeps the previous item")

	_, err = s.Select("chainsaw")
	assert.ErrorIs(t, err, model.ErrNotFound)

	_, err = s.Select("")
	require.NoError(t, err)
	assert.Nil(t, s.Selected())
}

func TestAttack_NoSelection(t *testing.T) {
	f := newFixture(t, nil)
	s := f.open(t)

	_, err := s.Attack(context.Background(), combat.NoTarget)
	assert.ErrorIs(t, err, model.ErrNoSelection)
}

func TestAttack_KillIsLogged(t *testing.T) {
	f := newFixture(t, map[string]int32{"silver_bullet": 6})
	s := f.open(t)
	ctx := context.Background()

	enc, err := s.registry.Spawn("werewolf", model.NewPosition(0, 0, -5))
	require.NoError(t, err)
	_, err = s.Select("silver_bullet")
	require.NoError(t, err)

	var last combat.Result
	for range 3 {
		last, err = s.Attack(ctx, enc.InstanceID())
		require.NoError(t, err)
	}
	assert.Equal(t, combat.OutcomeKill, last.Outcome)
	assert.Empty(t, s.Encounters())
	assert.Equal(t, []model.DiaryEventType{model.DiaryMonsterKilled}, diaryTypes(t, s))

	stats, err := s.Stats(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, stats.Kills)
	assert.Equal(t, 3, stats.Items)
}

func TestAttack_DepletionClearsSelection(t *testing.T) {
	f := newFixture(t, map[string]int32{"silver_bullet": 1})
	s := f.open(t)

	enc, err := s.registry.Spawn("werewolf", model.NewPosition(0, 0, -5))
	require.NoError(t, err)
	_, err = s.Select("silver_bullet")
	require.NoError(t, err)

	res, err := s.Attack(context.Background(), enc.InstanceID())
	require.NoError(t, err)
	assert.Equal(t, combat.OutcomeEffectiveHit, res.Outcome)
	assert.True(t, res.Depleted)
	assert.Nil(t, s.Selected())

	_, err = s.Attack(context.Background(), enc.InstanceID())
	assert.ErrorIs(t, err, model.ErrNoSelection)
}

func TestUseItem_HealAndDeplete(t *testing.T) {
	f := newFixture(t, map[string]int32{"first_aid": 1, "knife": 1})
	s := f.open(t)
	ctx := context.Background()

	enc, err := s.registry.Spawn("wendigo", model.NewPosition(0, 0, -4))
	require.NoError(t, err)
	_, err = s.Strike(ctx, enc.InstanceID())
	require.NoError(t, err)

	_, err = s.Select("first_aid")
	require.NoError(t, err)
	res, err := s.UseItem(ctx, "")
	require.NoError(t, err)
	assert.Equal(t, int32(45), res.Healed)
	assert.Equal(t, int32(100), res.PlayerHP)
	assert.True(t, res.Depleted)
	assert.Nil(t, s.Selected())

	_, err = s.UseItem(ctx, "first_aid")
	assert.ErrorIs(t, err, model.ErrInsufficientQuantity)

	_, err = s.UseItem(ctx, "knife")
	assert.ErrorIs(t, err, model.ErrInvalidAction)
}

func TestStrike_DefeatRespawnsAndLogs(t *testing.T) {
	f := newFixture(t, nil)
	s := f.open(t)
	ctx := context.Background()

	enc, err := s.registry.Spawn("wendigo", model.NewPosition(0, 0, -4))
	require.NoError(t, err)

	res, err := s.Strike(ctx, enc.InstanceID())
	require.NoError(t, err)
	assert.Equal(t, int32(55), res.PlayerHP)

	p, err := f.profiles.Get(ctx, "p1")
	require.NoError(t, err)
	assert.Equal(t, int32(55), p.CurrentHP, "hp change is persisted")

	for range 2 {
		res, err = s.Strike(ctx, enc.InstanceID())
		require.NoError(t, err)
	}
	assert.True(t, res.Defeated)
	assert.Equal(t, int32(100), res.PlayerHP)
	assert.Equal(t, []model.DiaryEventType{model.DiaryPlayerDefeated}, diaryTypes(t, s))

	p, err = f.profiles.Get(ctx, "p1")
	require.NoError(t, err)
	assert.Equal(t, int32(100), p.CurrentHP)
}

func TestARLifecycle(t *testing.T) {
	f := newFixture(t, nil, func(c *Config) { c.Spawn.MaxMonsters = 1 })
	s := f.open(t)
	ctx := context.Background()

	assert.False(t, s.ARActive())
	s.StartAR(ctx, "Praça da Sé")
	assert.True(t, s.ARActive())
	s.StartAR(ctx, "Praça da Sé")

	enc, err := s.scheduler.Tick(ctx)
	require.NoError(t, err)
	require.NotNil(t, enc)

	s.StopAR()
	assert.False(t, s.ARActive())
	assert.Len(t, s.Encounters(), 1, "stopping AR keeps encounters")
	assert.Equal(t, spawn.StateIdle, s.scheduler.State())

	assert.Equal(t, []model.DiaryEventType{model.DiaryHuntStart}, diaryTypes(t, s), "second start is a no-op")
}

func TestStartAR_AfterCloseIsNoop(t *testing.T) {
	f := newFixture(t, nil)
	s := f.open(t)

	s.Close()
	s.StartAR(context.Background(), "Praça da Sé")

	assert.False(t, s.ARActive())
	assert.Equal(t, spawn.StateIdle, s.scheduler.State())
	assert.Empty(t, diaryTypes(t, s))
}

func TestMaterialize_RevealsWhenHoldingCamera(t *testing.T) {
	tests := []struct {
		name    string
		starter map[string]int32
		want    bool
	}{
		{"holding camera", map[string]int32{"old_camera": 1}, true},
		{"empty handed", nil, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t, tt.starter)
			s := f.open(t)

			enc, err := s.registry.Spawn("ghost", model.NewPosition(0, 0, -3))
			require.NoError(t, err)
			require.NoError(t, s.Materialize(context.Background(), enc))
			assert.Equal(t, tt.want, enc.Revealed())
		})
	}
}

func TestManager_GetClose(t *testing.T) {
	f := newFixture(t, nil)
	s := f.open(t)
	_, err := s.registry.Spawn("demon", model.NewPosition(0, 0, -6))
	require.NoError(t, err)

	got, err := f.mgr.Get(s.ID())
	require.NoError(t, err)
	assert.Same(t, s, got)

	assert.True(t, f.mgr.Close(s.ID()))
	assert.False(t, f.mgr.Close(s.ID()))
	assert.Empty(t, s.Encounters(), "closing despawns everything")

	_, err = f.mgr.Get(s.ID())
	assert.ErrorIs(t, err, model.ErrNotFound)
	assert.Zero(t, f.mgr.Len())
}

func TestManager_IdleExpiry(t *testing.T) {
	f := newFixture(t, nil, func(c *Config) { c.IdleTimeout = 50 * time.Millisecond })
	s := f.open(t)

	assert.Eventually(t, func() bool {
		return f.mgr.Len() == 0 && s.isClosed()
	}, 2*time.Second, 10*time.Millisecond)

	_, err := f.mgr.Get(s.ID())
	assert.ErrorIs(t, err, model.ErrNotFound)
}
