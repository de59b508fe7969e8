package db

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/udisondev/hunters/internal/model"
)

// ProfileRepository хранит профили охотников.
type ProfileRepository struct {
	pool *pgxpool.Pool
}

// NewProfileRepository создаёт новый ProfileRepository.
func NewProfileRepository(pool *pgxpool.Pool) *ProfileRepository {
	return &ProfileRepository{pool: pool}
}

// Ensure returns the profile, creating it at full HP if it doesn't exist.
// Thread-safe: INSERT ... ON CONFLICT DO NOTHING.
func (r *ProfileRepository) Ensure(ctx context.Context, playerID, name string, maxHP int32) (model.Profile, error) {
	_, err := r.pool.Exec(ctx,
		`INSERT INTO profiles (id, hunter_name, current_hp, max_hp) VALUES ($1, $2, $3, $3)
		 ON CONFLICT (id) DO NOTHING`,
		playerID, name, maxHP,
	)
	if err != nil {
		return model.Profile{}, fmt.Errorf("ensuring profile %s: %w", playerID, err)
	}
	return r.Get(ctx, playerID)
}

// Get returns the profile or model.ErrNotFound.
func (r *ProfileRepository) Get(ctx context.Context, playerID string) (model.Profile, error) {
	var p model.Profile
	err := r.pool.QueryRow(ctx,
		`SELECT id, hunter_name, level, current_hp, max_hp FROM profiles WHERE id = $1`, playerID,
	).Scan(&p.ID, &p.HunterName, &p.Level, &p.CurrentHP, &p.MaxHP)
	if errors.Is(err, pgx.ErrNoRows) {
		return p, fmt.Errorf("profile %s: %w", playerID, model.ErrNotFound)
	}
	if err != nil {
		return p, fmt.Errorf("querying profile %s: %w", playerID, err)
	}
	return p, nil
}

// UpdateHP stores the current HP, clamped to [0, max_hp].
func (r *ProfileRepository) UpdateHP(ctx context.Context, playerID string, hp int32) error {
	hp = max(hp, 0)
	tag, err := r.pool.Exec(ctx,
		`UPDATE profiles SET current_hp = LEAST($2, max_hp), updated_at = now() WHERE id = $1`,
		playerID, hp,
	)
	if err != nil {
		return fmt.Errorf("updating hp for %s: %w", playerID, err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("profile %s: %w", playerID, model.ErrNotFound)
	}
	return nil
}
