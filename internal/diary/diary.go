// Package diary records the hunter's journal: hunts started, monsters killed, defeats.
package diary

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/udisondev/hunters/internal/game/combat"
	"github.com/udisondev/hunters/internal/model"
	"github.com/udisondev/hunters/internal/persist"
)

// DefaultLogLimit — сколько записей отдаёт Logs без явного лимита.
const DefaultLogLimit = 50

// MaxLogLimit caps a single Logs request.
const MaxLogLimit = 500

// Store persists diary entries. Implemented by *db.DiaryRepository and *MemoryStore.
type Store interface {
	Add(ctx context.Context, entry model.DiaryEntry) error
	Logs(ctx context.Context, playerID string, limit int) ([]model.DiaryEntry, error)
	Stats(ctx context.Context, playerID string) (model.ProfileStats, error)
}

// Journal writes one player's diary. Writes never block gameplay.
type Journal struct {
	playerID string
	store    Store
	writer   *persist.Writer
	now      func() time.Time
}

// NewJournal creates a journal. writer may be nil (synchronous writes).
func NewJournal(playerID string, store Store, writer *persist.Writer) *Journal {
	return &Journal{
		playerID: playerID,
		store:    store,
		writer:   writer,
		now:      time.Now,
	}
}

// AddLog records an entry for the player.
func (j *Journal) AddLog(ctx context.Context, typ model.DiaryEventType, description, monsterID, location string) model.DiaryEntry {
	return j.record(ctx, typ, description, monsterID, location, j.now())
}

func (j *Journal) record(ctx context.Context, typ model.DiaryEventType, description, monsterID, location string, at time.Time) model.DiaryEntry {
	entry := model.DiaryEntry{
		ID:           uuid.New(),
		PlayerID:     j.playerID,
		Type:         typ,
		Description:  description,
		MonsterID:    monsterID,
		LocationName: location,
		CreatedAt:    at,
	}

	write := func(ctx context.Context) error {
		return j.store.Add(ctx, entry)
	}
	if j.writer != nil {
		j.writer.Enqueue(persist.Job{Store: "diary", Op: string(typ), Do: write})
	} else if err := write(ctx); err != nil {
		slog.Error("diary write failed", "player", j.playerID, "type", typ, "error", err)
	}
	return entry
}

// MonsterKilled records a kill at the moment the resolver reported it.
func (j *Journal) MonsterKilled(ctx context.Context, ev combat.KillEvent) {
	at := ev.At
	if at.IsZero() {
		at = j.now()
	}
	j.record(ctx, model.DiaryMonsterKilled, fmt.Sprintf("Defeated a %s", ev.Monster.Name), ev.Monster.ID, "", at)
}

// HuntStarted records the start of an AR session.
func (j *Journal) HuntStarted(ctx context.Context, location string) {
	j.AddLog(ctx, model.DiaryHuntStart, "Started a hunt", "", location)
}

// PlayerDefeated records the player falling in battle.
func (j *Journal) PlayerDefeated(ctx context.Context, monsterID string) {
	j.AddLog(ctx, model.DiaryPlayerDefeated, "Fell in battle and got back up", monsterID, "")
}

// Logs returns the newest entries first. limit <= 0 means DefaultLogLimit.
func (j *Journal) Logs(ctx context.Context, limit int) ([]model.DiaryEntry, error) {
	if limit <= 0 {
		limit = DefaultLogLimit
	}
	limit = min(limit, MaxLogLimit)

	entries, err := j.store.Logs(ctx, j.playerID, limit)
	if err != nil {
		return nil, fmt.Errorf("loading diary for %s: %w", j.playerID, err)
	}
	return entries, nil
}

// Stats counts hunts and kills.
func (j *Journal) Stats(ctx context.Context) (model.ProfileStats, error) {
	stats, err := j.store.Stats(ctx, j.playerID)
	if err != nil {
		return model.ProfileStats{}, fmt.Errorf("loading stats for %s: %w", j.playerID, err)
	}
	return stats, nil
}
