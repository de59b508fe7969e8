package db

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/udisondev/hunters/internal/model"
)

// InventoryRepository хранит инвентарь игроков в PostgreSQL.
type InventoryRepository struct {
	pool *pgxpool.Pool
}

// NewInventoryRepository создаёт новый InventoryRepository.
func NewInventoryRepository(pool *pgxpool.Pool) *InventoryRepository {
	return &InventoryRepository{pool: pool}
}

// Load returns all inventory rows of the player ordered by item key.
func (r *InventoryRepository) Load(ctx context.Context, playerID string) ([]model.InventorySlot, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT id::text, item_key, quantity, equipped
		 FROM inventory WHERE user_id = $1 ORDER BY item_key`, playerID,
	)
	if err != nil {
		return nil, fmt.Errorf("querying inventory for %s: %w", playerID, err)
	}
	defer rows.Close()

	slots := make([]model.InventorySlot, 0, 16)
	for rows.Next() {
		var s model.InventorySlot
		if err := rows.Scan(&s.ID, &s.ItemKey, &s.Quantity, &s.Equipped); err != nil {
			return nil, fmt.Errorf("scanning inventory row: %w", err)
		}
		slots = append(slots, s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating inventory rows: %w", err)
	}
	return slots, nil
}

// Add увеличивает стек (upsert).
func (r *InventoryRepository) Add(ctx context.Context, playerID, itemKey string, qty int32) error {
	_, err := r.pool.Exec(ctx,
		`INSERT INTO inventory (user_id, item_key, quantity) VALUES ($1, $2, $3)
		 ON CONFLICT (user_id, item_key) DO UPDATE SET quantity = inventory.quantity + EXCLUDED.quantity`,
		playerID, itemKey, qty,
	)
	if err != nil {
		return fmt.Errorf("adding %d %s for %s: %w", qty, itemKey, playerID, err)
	}
	return nil
}

// Remove decreases the stack in one transaction and deletes the row at zero.
// Returns model.ErrInsufficientQuantity when the player holds less than qty.
func (r *InventoryRepository) Remove(ctx context.Context, playerID, itemKey string, qty int32) error {
	err := pgx.BeginFunc(ctx, r.pool, func(tx pgx.Tx) error {
		var remaining int32
		err := tx.QueryRow(ctx,
			`SELECT quantity FROM inventory WHERE user_id = $1 AND item_key = $2 FOR UPDATE`,
			playerID, itemKey,
		).Scan(&remaining)
		if errors.Is(err, pgx.ErrNoRows) {
			return fmt.Errorf("%s: %w", itemKey, model.ErrInsufficientQuantity)
		}
		if err != nil {
			return fmt.Errorf("locking inventory row: %w", err)
		}
		if remaining < qty {
			return fmt.Errorf("%s: have %d, need %d: %w", itemKey, remaining, qty, model.ErrInsufficientQuantity)
		}

		if remaining == qty {
			_, err = tx.Exec(ctx, `DELETE FROM inventory WHERE user_id = $1 AND item_key = $2`, playerID, itemKey)
		} else {
			_, err = tx.Exec(ctx,
				`UPDATE inventory SET quantity = quantity - $3 WHERE user_id = $1 AND item_key = $2`,
				playerID, itemKey, qty,
			)
		}
		if err != nil {
			return fmt.Errorf("updating inventory row: %w", err)
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("removing %d %s for %s: %w", qty, itemKey, playerID, err)
	}
	return nil
}

// Seed gives the starter kit to a player with an empty inventory.
// Returns false if the player already had items.
func (r *InventoryRepository) Seed(ctx context.Context, playerID string, starter map[string]int32) (bool, error) {
	seeded := false
	err := pgx.BeginFunc(ctx, r.pool, func(tx pgx.Tx) error {
		var n int
		if err := tx.QueryRow(ctx, `SELECT count(*) FROM inventory WHERE user_id = $1`, playerID).Scan(&n); err != nil {
			return fmt.Errorf("counting inventory: %w", err)
		}
		if n > 0 {
			return nil
		}

		batch := &pgx.Batch{}
		for key, qty := range starter {
			batch.Queue(`INSERT INTO inventory (user_id, item_key, quantity) VALUES ($1, $2, $3)`, playerID, key, qty)
		}
		if err := tx.SendBatch(ctx, batch).Close(); err != nil {
			return fmt.Errorf("inserting starter kit: %w", err)
		}
		seeded = true
		return nil
	})
	if err != nil {
		return false, fmt.Errorf("seeding inventory for %s: %w", playerID, err)
	}
	return seeded, nil
}
