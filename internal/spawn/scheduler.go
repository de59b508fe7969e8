package spawn

import (
	"context"
	"fmt"
	"log/slog"
	"math"
	"math/rand/v2"
	"sync"
	"sync/atomic"
	"time"

	"github.com/udisondev/hunters/internal/metrics"
	"github.com/udisondev/hunters/internal/model"
)

// SpawnSource lists spawnable archetypes. Implemented by *data.Catalog.
type SpawnSource interface {
	Spawnable() []*model.MonsterTemplate
}

// Registry is the part of the encounter registry the scheduler drives.
type Registry interface {
	Spawn(monsterID string, pos model.Position) (*model.Encounter, error)
	Remove(instanceID uint32) bool
	Count() int
}

// Spatial supplies the player's pose and location context.
type Spatial interface {
	Pose() model.Pose
	AtCrossroads() bool
}

// Materializer places a freshly spawned encounter into the player's scene.
// An error discards the encounter; the scheduler retries on the next tick.
type Materializer interface {
	Materialize(ctx context.Context, enc *model.Encounter) error
}

// Config — параметры планировщика спавна.
type Config struct {
	Interval    time.Duration
	MaxMonsters int
	Placement   Placement
}

// DefaultConfig returns the observed defaults: 5s tick, 3 monsters, 3–10 m band in front of the player.
func DefaultConfig() Config {
	return Config{
		Interval:    5 * time.Second,
		MaxMonsters: 3,
		Placement: Placement{
			MinRadius: 3,
			MaxRadius: 10,
			Arc:       math.Pi,
		},
	}
}

// State of the scheduler state machine.
type State int32

const (
	StateIdle State = iota
	StateActive
)

func (s State) String() string {
	if s == StateActive {
		return "active"
	}
	return "idle"
}

// Scheduler spawns encounters around one player while their AR session is active.
// Idle → Active on SessionStarted, Active → Idle on SessionEnded.
type Scheduler struct {
	cfg          Config
	source       SpawnSource
	registry     Registry
	spatial      Spatial
	materializer Materializer

	state atomic.Int32

	tickMu sync.Mutex // serializes Tick; guards rng
	rng    *rand.Rand

	mu     sync.Mutex
	cancel context.CancelFunc
	done   chan struct{}
}

// NewScheduler creates an idle scheduler.
// spatial, materializer and rng may be nil.
func NewScheduler(cfg Config, source SpawnSource, registry Registry, spatial Spatial, materializer Materializer, rng *rand.Rand) *Scheduler {
	if rng == nil {
		rng = rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	}
	if cfg.Interval <= 0 {
		cfg.Interval = DefaultConfig().Interval
	}
	return &Scheduler{
		cfg:          cfg,
		source:       source,
		registry:     registry,
		spatial:      spatial,
		materializer: materializer,
		rng:          rng,
	}
}

// State returns the current state.
func (s *Scheduler) State() State {
	return State(s.state.Load())
}

// SessionStarted moves the scheduler to Active and starts the tick loop.
// Calling it while already Active is a no-op.
func (s *Scheduler) SessionStarted(ctx context.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.cancel != nil {
		return
	}

	loopCtx, cancel := context.WithCancel(ctx)
	done := make(chan struct{})
	s.cancel = cancel
	s.done = done
	s.state.Store(int32(StateActive))

	go func() {
		defer close(done)
		s.run(loopCtx)
	}()
}

// SessionEnded moves the scheduler to Idle and waits for the tick loop to exit.
// Live encounters stay in the registry.
func (s *Scheduler) SessionEnded() {
	s.mu.Lock()
	cancel, done := s.cancel, s.done
	s.cancel, s.done = nil, nil
	s.state.Store(int32(StateIdle))
	s.mu.Unlock()

	if cancel == nil {
		return
	}
	cancel()
	<-done
}

func (s *Scheduler) run(ctx context.Context) {
	ticker := time.NewTicker(s.cfg.Interval)
	defer ticker.Stop()

	slog.Debug("spawn scheduler started", "interval", s.cfg.Interval, "maxMonsters", s.cfg.MaxMonsters)

	for {
		select {
		case <-ctx.Done():
			slog.Debug("spawn scheduler stopped")
			return

		case <-ticker.C:
			if _, err := s.Tick(ctx); err != nil {
				slog.Warn("spawn tick failed", "error", err)
			}
		}
	}
}

// Tick performs one spawn attempt. Returns (nil, nil) when Idle, at the cap,
// or when nothing is eligible. A materialization failure returns
// model.ErrMaterialization after the encounter has been removed.
func (s *Scheduler) Tick(ctx context.Context) (*model.Encounter, error) {
	s.tickMu.Lock()
	defer s.tickMu.Unlock()

	if s.State() != StateActive {
		return nil, nil
	}

	if count := s.registry.Count(); count >= s.cfg.MaxMonsters {
		slog.Debug("spawn skipped (cap reached)", "count", count, "maxMonsters", s.cfg.MaxMonsters)
		return nil, nil
	}

	tmpl := SelectMonster(s.eligible(), s.rng)
	if tmpl == nil {
		return nil, nil
	}

	pos := s.cfg.Placement.Position(s.pose(), s.rng)
	enc, err := s.registry.Spawn(tmpl.ID, pos)
	if err != nil {
		return nil, fmt.Errorf("spawning %s: %w", tmpl.ID, err)
	}

	if s.materializer != nil {
		if err := s.materializer.Materialize(ctx, enc); err != nil {
			s.registry.Remove(enc.InstanceID())
			metrics.SpawnFailures.Inc()
			return nil, fmt.Errorf("%w: %s: %w", model.ErrMaterialization, tmpl.ID, err)
		}
	}

	metrics.EncountersSpawned.WithLabelValues(tmpl.ID).Inc()
	slog.Info("encounter spawned",
		"instanceID", enc.InstanceID(),
		"monster", tmpl.ID,
		"x", pos.X,
		"z", pos.Z)
	return enc, nil
}

// eligible filters spawnable archetypes by the player's location.
func (s *Scheduler) eligible() []*model.MonsterTemplate {
	all := s.source.Spawnable()
	atCrossroads := s.spatial != nil && s.spatial.AtCrossroads()

	out := make([]*model.MonsterTemplate, 0, len(all))
	for _, m := range all {
		if m.SpawnLocation == model.SpawnCrossroads && !atCrossroads {
			continue
		}
		out = append(out, m)
	}
	return out
}

func (s *Scheduler) pose() model.Pose {
	if s.spatial == nil {
		return model.Pose{}
	}
	return s.spatial.Pose()
}
