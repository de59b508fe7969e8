// Package session composes the per-player game core: encounter registry, spawn
// scheduler, combat resolver, vitals, inventory and diary.
package session

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/udisondev/hunters/internal/data"
	"github.com/udisondev/hunters/internal/diary"
	"github.com/udisondev/hunters/internal/game/combat"
	"github.com/udisondev/hunters/internal/game/vitals"
	"github.com/udisondev/hunters/internal/inventory"
	"github.com/udisondev/hunters/internal/model"
	"github.com/udisondev/hunters/internal/spatial"
	"github.com/udisondev/hunters/internal/spawn"
	"github.com/udisondev/hunters/internal/world"
)

// Session — игровая сессия одного охотника.
// Owns one registry: encounters are never shared between players.
type Session struct {
	id       string
	playerID string
	created  time.Time

	// base outlives HTTP requests; the spawn loop runs under it.
	base   context.Context
	cancel context.CancelFunc

	catalog   *data.Catalog
	registry  *world.Registry
	scheduler *spawn.Scheduler
	resolver  *combat.Resolver
	vitals    *vitals.Vitals
	inventory *inventory.Inventory
	journal   *diary.Journal
	tracker   *spatial.Tracker

	mu       sync.Mutex
	selected *model.ItemTemplate
	location string
	closed   bool
}

// ID returns the session ID.
func (s *Session) ID() string { return s.id }

// PlayerID returns the owning player.
func (s *Session) PlayerID() string { return s.playerID }

// CreatedAt returns when the session was opened.
func (s *Session) CreatedAt() time.Time { return s.created }

// Select makes itemID the active item. An empty itemID clears the selection.
// The player must hold at least one.
func (s *Session) Select(itemID string) (*model.ItemTemplate, error) {
	if itemID == "" {
		s.setSelected(nil)
		return nil, nil
	}

	item, err := s.catalog.Item(itemID)
	if err != nil {
		return nil, err
	}
	if s.inventory.Quantity(itemID) <= 0 {
		return nil, fmt.Errorf("%s: %w", itemID, model.ErrInsufficientQuantity)
	}

	s.setSelected(item)
	return item, nil
}

// Selected returns the active item or nil.
func (s *Session) Selected() *model.ItemTemplate {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.selected
}

func (s *Session) setSelected(item *model.ItemTemplate) {
	s.mu.Lock()
	s.selected = item
	s.mu.Unlock()
}

// clearSelectionIf drops the selection if it still points at itemID.
func (s *Session) clearSelectionIf(itemID string) {
	s.mu.Lock()
	if s.selected != nil && s.selected.ID == itemID {
		s.selected = nil
	}
	s.mu.Unlock()
}

// StartAR enters the AR hunt: logs hunt_start and starts spawning.
// No-op while already active or after Close.
func (s *Session) StartAR(ctx context.Context, location string) {
	// held until the loop starts so Close cannot slip in between
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed || s.scheduler.State() == spawn.StateActive {
		return
	}
	s.location = location

	s.journal.HuntStarted(ctx, location)
	s.scheduler.SessionStarted(s.base)
	slog.Info("AR hunt started", "session", s.id, "player", s.playerID, "location", location)
}

// StopAR leaves the AR hunt. Live encounters stay until the session closes.
func (s *Session) StopAR() {
	s.scheduler.SessionEnded()
	slog.Info("AR hunt stopped", "session", s.id, "player", s.playerID)
}

// ARActive reports whether spawning is running.
func (s *Session) ARActive() bool {
	return s.scheduler.State() == spawn.StateActive
}

// SetPose updates the player's AR pose.
func (s *Session) SetPose(p model.Pose) {
	s.tracker.SetPose(p)
}

// SetLocation updates the player's geolocation.
func (s *Session) SetLocation(p spatial.GeoPoint) {
	s.tracker.SetLocation(p)
}

// AtCrossroads reports whether crossroads-only monsters may spawn now.
func (s *Session) AtCrossroads() bool {
	return s.tracker.AtCrossroads()
}

// Attack uses the selected item on target (combat.NoTarget for a miss).
// The selection is cleared when the item runs out.
func (s *Session) Attack(ctx context.Context, target uint32) (combat.Result, error) {
	item := s.Selected()
	if item == nil {
		return combat.Result{}, model.ErrNoSelection
	}

	res, err := s.resolver.ResolveAttack(ctx, item, target)
	if err != nil {
		return res, err
	}
	if res.Depleted {
		s.clearSelectionIf(item.ID)
	}
	return res, nil
}

// Reveal uses the selected reveal item on target, or on everything with combat.NoTarget.
func (s *Session) Reveal(ctx context.Context, target uint32) (combat.RevealResult, error) {
	item := s.Selected()
	if item == nil {
		return combat.RevealResult{}, model.ErrNoSelection
	}
	return s.resolver.Reveal(ctx, item, target)
}

// UseItem applies a healing or protection item to the player.
// An empty itemID uses the selected item.
func (s *Session) UseItem(ctx context.Context, itemID string) (combat.SelfResult, error) {
	item := s.Selected()
	if itemID != "" {
		var err error
		if item, err = s.catalog.Item(itemID); err != nil {
			return combat.SelfResult{}, err
		}
	}
	if item == nil {
		return combat.SelfResult{}, model.ErrNoSelection
	}
	if s.inventory.Quantity(item.ID) <= 0 {
		return combat.SelfResult{}, fmt.Errorf("%s: %w", item.ID, model.ErrInsufficientQuantity)
	}

	res, err := s.resolver.UseOnSelf(ctx, item)
	if err != nil {
		return res, err
	}
	if res.Depleted {
		s.clearSelectionIf(item.ID)
	}
	return res, nil
}

// Strike lets the encounter hit the player. A defeat is recorded in the diary.
func (s *Session) Strike(ctx context.Context, instanceID uint32) (combat.StrikeResult, error) {
	res, err := s.resolver.MonsterStrike(ctx, instanceID)
	if err != nil {
		return res, err
	}
	if res.Defeated {
		s.journal.PlayerDefeated(ctx, res.MonsterID)
	}
	return res, nil
}

// Encounters returns live encounters in spawn order.
func (s *Session) Encounters() []*model.Encounter {
	return s.registry.ListActive()
}

// Vitals returns current and max HP.
func (s *Session) Vitals() (currentHP, maxHP int32) {
	return s.vitals.Snapshot()
}

// ProtectedUntil returns when the current protection circle expires.
func (s *Session) ProtectedUntil() time.Time {
	return s.resolver.ProtectedUntil()
}

// Inventory returns the player's slots.
func (s *Session) Inventory() []model.InventorySlot {
	return s.inventory.Slots()
}

// Diary returns the newest diary entries.
func (s *Session) Diary(ctx context.Context, limit int) ([]model.DiaryEntry, error) {
	return s.journal.Logs(ctx, limit)
}

// Stats returns profile counters: hunts and kills from the diary, items from the inventory.
func (s *Session) Stats(ctx context.Context) (model.ProfileStats, error) {
	stats, err := s.journal.Stats(ctx)
	if err != nil {
		return stats, err
	}
	for _, slot := range s.inventory.Slots() {
		stats.Items += int(slot.Quantity)
	}
	return stats, nil
}

// Close stops spawning and despawns every encounter. Safe to call more than once.
func (s *Session) Close() {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return
	}
	s.closed = true
	s.mu.Unlock()

	s.scheduler.SessionEnded()
	s.cancel()
	s.registry.Clear()
	slog.Info("session closed", "session", s.id, "player", s.playerID)
}

func (s *Session) isClosed() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.closed
}

// Materialize places a spawned encounter into the scene.
// Invisible encounters are revealed up front when the player holds the reveal item.
func (s *Session) Materialize(_ context.Context, enc *model.Encounter) error {
	revealed := s.resolver.RevealByPossession(enc)
	slog.Debug("encounter materialized",
		"session", s.id,
		"instanceID", enc.InstanceID(),
		"monster", enc.MonsterID(),
		"revealed", revealed)
	return nil
}
