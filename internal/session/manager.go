package session

import (
	"context"
	"fmt"
	"log/slog"
	"math/rand/v2"
	"time"

	"github.com/google/uuid"
	"github.com/hashicorp/golang-lru/v2/expirable"

	"github.com/udisondev/hunters/internal/data"
	"github.com/udisondev/hunters/internal/diary"
	"github.com/udisondev/hunters/internal/game/combat"
	"github.com/udisondev/hunters/internal/game/vitals"
	"github.com/udisondev/hunters/internal/inventory"
	"github.com/udisondev/hunters/internal/metrics"
	"github.com/udisondev/hunters/internal/model"
	"github.com/udisondev/hunters/internal/persist"
	"github.com/udisondev/hunters/internal/spatial"
	"github.com/udisondev/hunters/internal/spawn"
	"github.com/udisondev/hunters/internal/world"
)

// ProfileStore persists hunter profiles. Implemented by *db.ProfileRepository and *MemoryProfileStore.
type ProfileStore interface {
	Ensure(ctx context.Context, playerID, name string, maxHP int32) (model.Profile, error)
	UpdateHP(ctx context.Context, playerID string, hp int32) error
}

// inventorySeeder gives a starter kit to new players (Postgres store).
type inventorySeeder interface {
	Seed(ctx context.Context, playerID string, starter map[string]int32) (bool, error)
}

// Config — параметры сессий.
type Config struct {
	IdleTimeout  time.Duration
	MaxSessions  int
	MaxHP        int32
	StarterItems map[string]int32

	Spawn            spawn.Config
	Combat           combat.Config
	Crossroads       []spatial.GeoPoint
	CrossroadsRadius float64
}

// DefaultConfig returns session defaults.
func DefaultConfig() Config {
	return Config{
		IdleTimeout: 30 * time.Minute,
		MaxSessions: 10_000,
		MaxHP:       vitals.DefaultMaxHP,
		Spawn:       spawn.DefaultConfig(),
		Combat:      combat.DefaultConfig(),
	}
}

// Deps are the collaborators shared by all sessions.
type Deps struct {
	Catalog   *data.Catalog
	Inventory inventory.Store
	Diary     diary.Store
	Profiles  ProfileStore
	Writer    *persist.Writer // nil → synchronous writes
}

// Manager owns live sessions. Idle sessions expire and are closed.
type Manager struct {
	base  context.Context
	cfg   Config
	deps  Deps
	cache *expirable.LRU[string, *Session]
}

// NewManager creates a manager. Sessions' background work stops when ctx is cancelled.
func NewManager(ctx context.Context, cfg Config, deps Deps) *Manager {
	def := DefaultConfig()
	if cfg.IdleTimeout <= 0 {
		cfg.IdleTimeout = def.IdleTimeout
	}
	if cfg.MaxSessions <= 0 {
		cfg.MaxSessions = def.MaxSessions
	}
	if cfg.MaxHP <= 0 {
		cfg.MaxHP = def.MaxHP
	}

	m := &Manager{base: ctx, cfg: cfg, deps: deps}
	m.cache = expirable.NewLRU[string, *Session](cfg.MaxSessions, m.onEvict, cfg.IdleTimeout)
	return m
}

func (m *Manager) onEvict(id string, s *Session) {
	s.Close()
	metrics.SessionsActive.Dec()
	slog.Debug("session evicted", "session", id)
}

// Create opens a session for playerID: loads the profile, inventory and HP.
func (m *Manager) Create(ctx context.Context, playerID, hunterName string) (*Session, error) {
	profile, err := m.deps.Profiles.Ensure(ctx, playerID, hunterName, m.cfg.MaxHP)
	if err != nil {
		return nil, fmt.Errorf("opening profile: %w", err)
	}

	if seeder, ok := m.deps.Inventory.(inventorySeeder); ok && len(m.cfg.StarterItems) > 0 {
		if _, err := seeder.Seed(ctx, playerID, m.cfg.StarterItems); err != nil {
			return nil, fmt.Errorf("seeding inventory: %w", err)
		}
	}

	inv, err := inventory.Load(ctx, playerID, m.deps.Inventory, m.deps.Writer)
	if err != nil {
		return nil, err
	}

	base, cancel := context.WithCancel(m.base)
	s := &Session{
		id:        uuid.NewString(),
		playerID:  playerID,
		created:   time.Now(),
		base:      base,
		cancel:    cancel,
		catalog:   m.deps.Catalog,
		registry:  world.NewRegistry(m.deps.Catalog, nil),
		vitals:    vitals.New(m.cfg.MaxHP),
		inventory: inv,
		journal:   diary.NewJournal(playerID, m.deps.Diary, m.deps.Writer),
		tracker:   spatial.NewTracker(m.cfg.Crossroads, m.cfg.CrossroadsRadius),
	}
	s.vitals.Restore(profile.CurrentHP)
	s.vitals.SetChangeFunc(m.persistHP(playerID))
	s.resolver = combat.NewResolver(m.cfg.Combat, s.registry, s.inventory, s.vitals, s.journal)

	rng := rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	s.scheduler = spawn.NewScheduler(m.cfg.Spawn, m.deps.Catalog, s.registry, s.tracker, s, rng)

	m.cache.Add(s.id, s)
	metrics.SessionsActive.Inc()
	slog.Info("session opened", "session", s.id, "player", playerID, "hp", s.vitals.CurrentHP())
	return s, nil
}

func (m *Manager) persistHP(playerID string) func(currentHP, maxHP int32) {
	return func(hp, _ int32) {
		write := func(ctx context.Context) error {
			return m.deps.Profiles.UpdateHP(ctx, playerID, hp)
		}
		if m.deps.Writer != nil {
			m.deps.Writer.Enqueue(persist.Job{Store: "profile", Op: "update_hp", Do: write})
			return
		}
		if err := write(m.base); err != nil {
			slog.Error("profile hp write failed", "player", playerID, "error", err)
		}
	}
}

// Get returns a live session and refreshes its idle timer.
func (m *Manager) Get(id string) (*Session, error) {
	s, ok := m.cache.Get(id)
	if !ok || s.isClosed() {
		return nil, fmt.Errorf("session %s: %w", id, model.ErrNotFound)
	}
	m.cache.Add(id, s)
	return s, nil
}

// Close ends a session. Reports whether it existed.
func (m *Manager) Close(id string) bool {
	return m.cache.Remove(id)
}

// Len returns the number of live sessions.
func (m *Manager) Len() int {
	return m.cache.Len()
}

// Shutdown closes every session.
func (m *Manager) Shutdown() {
	m.cache.Purge()
}
