// Package db stores hunter progress in PostgreSQL: profiles, inventory and the diary.
package db

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/jackc/pgx/v5/pgxpool"
)

// DB wraps the pgx pool shared by the repositories.
type DB struct {
	pool *pgxpool.Pool
}

// Options tune the connection pool.
type Options struct {
	MaxConns int32 // 0 keeps the pgxpool default
}

// New connects to PostgreSQL and verifies the connection with a ping.
func New(ctx context.Context, dsn string, opts Options) (*DB, error) {
	poolCfg, err := pgxpool.ParseConfig(dsn)
	if err != nil {
		return nil, fmt.Errorf("parsing database dsn: %w", err)
	}
	if opts.MaxConns > 0 {
		poolCfg.MaxConns = opts.MaxConns
	}

	pool, err := pgxpool.NewWithConfig(ctx, poolCfg)
	if err != nil {
		return nil, fmt.Errorf("connecting to database: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("pinging database: %w", err)
	}

	slog.Debug("database pool ready",
		"host", poolCfg.ConnConfig.Host,
		"database", poolCfg.ConnConfig.Database,
		"maxConns", poolCfg.MaxConns)
	return &DB{pool: pool}, nil
}

// Close closes the pool.
func (d *DB) Close() {
	d.pool.Close()
}

// Pool returns the underlying pgx pool. It doubles as the readiness pinger.
func (d *DB) Pool() *pgxpool.Pool {
	return d.pool
}

// Repositories bundles the stores a session needs.
type Repositories struct {
	Inventory *InventoryRepository
	Diary     *DiaryRepository
	Profiles  *ProfileRepository
}

// Repositories builds every repository on the shared pool.
func (d *DB) Repositories() Repositories {
	return Repositories{
		Inventory: NewInventoryRepository(d.pool),
		Diary:     NewDiaryRepository(d.pool),
		Profiles:  NewProfileRepository(d.pool),
	}
}
