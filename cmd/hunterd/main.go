package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"golang.org/x/sync/errgroup"

	"github.com/udisondev/hunters/internal/api"
	"github.com/udisondev/hunters/internal/config"
	"github.com/udisondev/hunters/internal/data"
	"github.com/udisondev/hunters/internal/db"
	"github.com/udisondev/hunters/internal/diary"
	"github.com/udisondev/hunters/internal/game/combat"
	"github.com/udisondev/hunters/internal/inventory"
	"github.com/udisondev/hunters/internal/logger"
	"github.com/udisondev/hunters/internal/persist"
	"github.com/udisondev/hunters/internal/session"
	"github.com/udisondev/hunters/internal/spawn"
)

func main() {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		sig := <-sigCh
		slog.Info("shutting down", "signal", sig)
		cancel()
	}()

	if err := run(ctx); err != nil {
		slog.Error("fatal", "err", err)
		os.Exit(1)
	}
}

func run(ctx context.Context) error {
	// .env is optional
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		slog.Warn("loading .env", "err", err)
	}

	cfgPath := config.PathFromEnv()
	cfg, err := config.LoadHunterd(cfgPath)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	logger.Init(logger.Config{
		Level:       cfg.Log.Level,
		Format:      cfg.Log.Format,
		ServiceName: cfg.Log.Service,
		Version:     cfg.Log.Version,
		Environment: cfg.Log.Environment,
	})
	slog.Info("hunterd starting", "config", cfgPath, "addr", cfg.HTTP.Addr, "database", cfg.Database.Enabled)

	var catalog *data.Catalog
	if cfg.Catalog.Dir != "" {
		catalog, err = data.LoadCatalogDir(cfg.Catalog.Dir)
	} else {
		catalog, err = data.LoadCatalog()
	}
	if err != nil {
		return fmt.Errorf("loading catalog: %w", err)
	}

	deps := session.Deps{Catalog: catalog}
	var pinger api.Pinger

	if cfg.Database.Enabled {
		dsn := cfg.Database.ConnString()
		database, err := db.New(ctx, dsn, db.Options{MaxConns: cfg.Database.MaxConns})
		if err != nil {
			return fmt.Errorf("connecting to database: %w", err)
		}
		defer database.Close()
		slog.Info("database connected")

		if err := db.RunMigrations(ctx, dsn); err != nil {
			return fmt.Errorf("running migrations: %w", err)
		}
		slog.Info("database migrations applied")

		repos := database.Repositories()
		deps.Inventory = repos.Inventory
		deps.Diary = repos.Diary
		deps.Profiles = repos.Profiles
		pinger = database.Pool()
	} else {
		slog.Warn("database disabled, progress is kept in memory only")
		deps.Inventory = inventory.NewMemoryStore(cfg.Player.StarterItems)
		deps.Diary = diary.NewMemoryStore()
		deps.Profiles = session.NewMemoryProfileStore()
	}

	// The writer outlives the request context so queued writes drain after sessions close.
	writer := persist.NewWriter(cfg.Persist.Workers, cfg.Persist.QueueSize, cfg.Persist.WriteTimeout)
	deps.Writer = writer
	writerCtx, stopWriter := context.WithCancel(context.WithoutCancel(ctx))
	writerDone := make(chan error, 1)
	go func() { writerDone <- writer.Run(writerCtx) }()

	sessions := session.NewManager(ctx, sessionConfig(cfg), deps)

	srv := &http.Server{
		Addr:         cfg.HTTP.Addr,
		Handler:      api.NewRouter(api.NewHandler(sessions, catalog, pinger), cfg.HTTP.APIKeyHash),
		ReadTimeout:  cfg.HTTP.ReadTimeout,
		WriteTimeout: cfg.HTTP.WriteTimeout,
	}

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		slog.Info("starting http server", "addr", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("http server: %w", err)
		}
		return nil
	})

	g.Go(func() error {
		<-gctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(gctx), cfg.HTTP.ShutdownTimeout)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("http shutdown: %w", err)
		}
		return nil
	})

	runErr := g.Wait()

	sessions.Shutdown()
	stopWriter()
	if err := <-writerDone; err != nil {
		slog.Error("persist writer", "err", err)
	}
	slog.Info("hunterd stopped", "dropped_writes", writer.Dropped(), "failed_writes", writer.Failed())

	if runErr != nil {
		return fmt.Errorf("server error: %w", runErr)
	}
	return nil
}

func sessionConfig(cfg config.Hunterd) session.Config {
	return session.Config{
		IdleTimeout:  cfg.Session.IdleTimeout,
		MaxSessions:  cfg.Session.MaxSessions,
		MaxHP:        cfg.Player.MaxHP,
		StarterItems: cfg.Player.StarterItems,
		Spawn: spawn.Config{
			Interval:    cfg.Spawn.Interval,
			MaxMonsters: cfg.Spawn.MaxMonsters,
			Placement: spawn.Placement{
				MinRadius: cfg.Spawn.MinRadius,
				MaxRadius: cfg.Spawn.MaxRadius,
				Arc:       cfg.Spawn.ArcDegrees * math.Pi / 180,
			},
		},
		Combat: combat.Config{
			RevealOnPossession: cfg.Combat.RevealOnPossession,
			ProtectionDuration: cfg.Combat.ProtectionDuration,
		},
		Crossroads:       cfg.Spatial.Crossroads,
		CrossroadsRadius: cfg.Spatial.CrossroadsRadius,
	}
}
