package model

import (
	"time"

	"github.com/google/uuid"
)

// DiaryEventType classifies diary entries.
type DiaryEventType string

const (
	DiaryHuntStart      DiaryEventType = "hunt_start"
	DiaryMonsterKilled  DiaryEventType = "monster_killed"
	DiaryPlayerDefeated DiaryEventType = "player_defeated"
)

// DiaryEntry is one line of the hunter's journal.
type DiaryEntry struct {
	ID           uuid.UUID
	PlayerID     string
	Type         DiaryEventType
	Description  string
	MonsterID    string
	LocationName string
	CreatedAt    time.Time
}
