package db

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/udisondev/hunters/internal/model"
)

// DiaryRepository хранит дневник охотника.
type DiaryRepository struct {
	pool *pgxpool.Pool
}

// NewDiaryRepository создаёт новый DiaryRepository.
func NewDiaryRepository(pool *pgxpool.Pool) *DiaryRepository {
	return &DiaryRepository{pool: pool}
}

// Add inserts an entry.
func (r *DiaryRepository) Add(ctx context.Context, e model.DiaryEntry) error {
	_, err := r.pool.Exec(ctx,
		`INSERT INTO diary_logs (id, user_id, type, description, monster_id, location_name, created_at)
		 VALUES ($1, $2, $3, $4, NULLIF($5, ''), NULLIF($6, ''), $7)`,
		e.ID.String(), e.PlayerID, string(e.Type), e.Description, e.MonsterID, e.LocationName, e.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("inserting diary entry for %s: %w", e.PlayerID, err)
	}
	return nil
}

// Logs returns up to limit newest entries, newest first.
func (r *DiaryRepository) Logs(ctx context.Context, playerID string, limit int) ([]model.DiaryEntry, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT id::text, type, description, COALESCE(monster_id, ''), COALESCE(location_name, ''), created_at
		 FROM diary_logs WHERE user_id = $1
		 ORDER BY created_at DESC, id
		 LIMIT $2`, playerID, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("querying diary for %s: %w", playerID, err)
	}
	defer rows.Close()

	entries := make([]model.DiaryEntry, 0, limit)
	for rows.Next() {
		var (
			id  string
			typ string
			e   model.DiaryEntry
		)
		if err := rows.Scan(&id, &typ, &e.Description, &e.MonsterID, &e.LocationName, &e.CreatedAt); err != nil {
			return nil, fmt.Errorf("scanning diary row: %w", err)
		}
		e.ID, err = uuid.Parse(id)
		if err != nil {
			return nil, fmt.Errorf("parsing diary id %q: %w", id, err)
		}
		e.PlayerID = playerID
		e.Type = model.DiaryEventType(typ)
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating diary rows: %w", err)
	}
	return entries, nil
}

// Stats counts hunts and kills.
func (r *DiaryRepository) Stats(ctx context.Context, playerID string) (model.ProfileStats, error) {
	var s model.ProfileStats
	err := r.pool.QueryRow(ctx,
		`SELECT
		   count(*) FILTER (WHERE type = $2),
		   count(*) FILTER (WHERE type = $3)
		 FROM diary_logs WHERE user_id = $1`,
		playerID, string(model.DiaryHuntStart), string(model.DiaryMonsterKilled),
	).Scan(&s.Hunts, &s.Kills)
	if err != nil {
		return s, fmt.Errorf("counting diary stats for %s: %w", playerID, err)
	}
	return s, nil
}
