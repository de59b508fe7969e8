package combat

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/udisondev/hunters/internal/game/vitals"
	"github.com/udisondev/hunters/internal/metrics"
	"github.com/udisondev/hunters/internal/model"
)

// NoTarget means the attack hit nothing.
const NoTarget uint32 = 0

// Registry is the part of the encounter registry the resolver mutates.
type Registry interface {
	Get(instanceID uint32) (*model.Encounter, error)
	ApplyDamage(instanceID uint32, amount int32) (int32, error)
	Remove(instanceID uint32) bool
	ListActive() []*model.Encounter
}

// Inventory is the player's local inventory view.
// Remove updates local state synchronously; persistence is the implementation's concern.
type Inventory interface {
	Quantity(itemKey string) int32
	Remove(ctx context.Context, itemKey string, qty int32) (remaining int32, err error)
}

// Vitals is the player's HP.
type Vitals interface {
	ApplyDamage(amount int32) vitals.DamageResult
	Heal(amount int32) int32
	CurrentHP() int32
}

// Diary records kills. Must not block.
type Diary interface {
	MonsterKilled(ctx context.Context, ev KillEvent)
}

// Config — параметры боевой системы.
type Config struct {
	// RevealOnPossession reveals invisible encounters as they spawn when the
	// player holds their visibleWith item.
	RevealOnPossession bool
	// ProtectionDuration is how long a protection circle blocks monster strikes.
	ProtectionDuration time.Duration
}

// DefaultConfig returns the combat defaults.
func DefaultConfig() Config {
	return Config{
		RevealOnPossession: true,
		ProtectionDuration: 30 * time.Second,
	}
}

// Resolver applies player actions to encounters of one session.
// All operations are serialized: one encounter-mutating action completes before the next starts.
type Resolver struct {
	cfg       Config
	registry  Registry
	inventory Inventory
	vitals    Vitals
	diary     Diary

	// resultObserver — callback для наблюдения за результатами (UI feedback, тесты).
	resultObserver func(Result)

	now func() time.Time

	mu             sync.Mutex
	protectedUntil time.Time
}

// NewResolver creates a resolver. diary may be nil.
func NewResolver(cfg Config, registry Registry, inventory Inventory, v Vitals, diary Diary) *Resolver {
	return &Resolver{
		cfg:       cfg,
		registry:  registry,
		inventory: inventory,
		vitals:    v,
		diary:     diary,
		now:       time.Now,
	}
}

// SetResultObserver sets a callback receiving every resolved attack.
func (r *Resolver) SetResultObserver(fn func(Result)) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.resultObserver = fn
}

// ResolveAttack resolves one use of item against target (NoTarget for a miss).
//
// Workflow:
//  1. Validate requirements (ammo, companion item); reject without state change
//  2. No target or a vanished target → miss
//  3. Invisible and unrevealed → obscured, zero damage, whatever the item
//  4. Judge effectiveness, apply item effect, advance defeat sequence
//  5. Damage through the registry (clamped; held at 1 HP while a sequence is incomplete)
//  6. Consume consumables and ammo
//  7. HP zero → remove encounter, emit kill
func (r *Resolver) ResolveAttack(ctx context.Context, item *model.ItemTemplate, target uint32) (Result, error) {
	r.mu.Lock()
	res, err := r.resolveAttack(ctx, item, target)
	observer := r.resultObserver
	r.mu.Unlock()

	if err != nil {
		return Result{}, err
	}

	metrics.AttacksResolved.WithLabelValues(res.Outcome.String()).Inc()
	if observer != nil {
		observer(res)
	}
	return res, nil
}

func (r *Resolver) resolveAttack(ctx context.Context, item *model.ItemTemplate, target uint32) (Result, error) {
	if err := ValidateRequirements(item, r.inventory); err != nil {
		return Result{}, err
	}

	if target == NoTarget {
		return Result{Outcome: OutcomeMiss, Message: "Missed"}, nil
	}

	enc, err := r.registry.Get(target)
	if err != nil {
		slog.Warn("attack on unknown encounter", "instanceID", target, "item", item.ID, "error", err)
		return Result{Outcome: OutcomeMiss, InstanceID: target, Message: "Missed"}, nil
	}
	tmpl := enc.Template()

	res := Result{
		InstanceID: target,
		MonsterID:  tmpl.ID,
	}

	if !enc.Revealed() {
		res.Outcome = OutcomeObscured
		res.RemainingHP = enc.CurrentHP()
		res.Message = fmt.Sprintf("%s is invisible! Use %s.", tmpl.Name, tmpl.VisibleWith)
		return res, nil
	}

	j := judge(item, enc)
	r.applyEffect(item, enc)
	if j.advances {
		enc.AdvanceSequence(item.ID)
	}

	damage := CalcDamage(item, j.effective)
	if !enc.SequenceComplete() {
		// the monster cannot fall before its sequence is finished
		damage = min(damage, max(enc.CurrentHP()-1, 0))
	}

	hp, err := r.registry.ApplyDamage(target, damage)
	if err != nil {
		// removed concurrently (despawn)
		slog.Warn("encounter vanished during attack", "instanceID", target, "error", err)
		return Result{Outcome: OutcomeMiss, InstanceID: target, MonsterID: tmpl.ID, Message: "Missed"}, nil
	}

	res.Damage = damage
	res.Effective = j.effective
	res.RemainingHP = hp
	res.DefeatProgress = enc.DefeatProgress()
	res.Consumed, res.Depleted = r.consume(ctx, item)

	switch {
	case hp == 0 && r.registry.Remove(target):
		res.Outcome = OutcomeKill
		res.Kill = &KillEvent{
			InstanceID: target,
			Monster:    tmpl,
			Position:   enc.Position(),
			At:         r.now(),
		}
		res.Message = fmt.Sprintf("%s eliminated!", tmpl.Name)
		metrics.MonstersKilled.WithLabelValues(tmpl.ID).Inc()
		if r.diary != nil {
			r.diary.MonsterKilled(ctx, *res.Kill)
		}
		slog.Info("monster killed", "instanceID", target, "monster", tmpl.ID, "item", item.ID)
	case j.effective:
		res.Outcome = OutcomeEffectiveHit
		res.Message = fmt.Sprintf("Effective! -%d HP", damage)
	default:
		res.Outcome = OutcomeIneffectiveHit
		res.Message = fmt.Sprintf("Ineffective! -%d HP", damage)
	}

	return res, nil
}

// RevealByPossession reveals enc when the player holds its visibleWith item.
// Called for freshly spawned encounters; no-op unless Config.RevealOnPossession.
func (r *Resolver) RevealByPossession(enc *model.Encounter) bool {
	if !r.cfg.RevealOnPossession || enc.Revealed() {
		return false
	}
	with := enc.Template().VisibleWith
	if with == "" || r.inventory.Quantity(with) <= 0 {
		return false
	}
	enc.SetRevealed(true)
	return true
}

// applyEffect applies the item's effect tag to the encounter.
// Reveal goes through Reveal; sequence-driven effects live in the defeat progress.
func (r *Resolver) applyEffect(item *model.ItemTemplate, enc *model.Encounter) {
	switch item.Effect {
	case model.EffectNone:
	case model.EffectImmobilize:
		enc.SetImmobilized(true)
	case model.EffectProtectionCircle:
		r.raiseProtection()
	case model.EffectWeakenWitch:
		if enc.Template().RequiresPreparation != "" {
			enc.MarkPrepared()
		}
	case model.EffectRevealInvisible, model.EffectExorcism, model.EffectSummon, model.EffectIgnite, model.EffectDestroyGhost:
	}
}

// consume spends one unit of a consumable item and one round of ammo.
// Persistence failures are logged by the inventory; local state is final.
func (r *Resolver) consume(ctx context.Context, item *model.ItemTemplate) (consumed []string, depleted bool) {
	if item.Consumable {
		remaining, err := r.inventory.Remove(ctx, item.ID, 1)
		if err != nil {
			slog.Warn("consuming item", "item", item.ID, "error", err)
		} else {
			consumed = append(consumed, item.ID)
			depleted = remaining == 0
		}
	}
	if item.RequiresAmmo != "" {
		if _, err := r.inventory.Remove(ctx, item.RequiresAmmo, 1); err != nil {
			slog.Warn("consuming ammo", "item", item.ID, "ammo", item.RequiresAmmo, "error", err)
		} else {
			consumed = append(consumed, item.RequiresAmmo)
		}
	}
	return consumed, depleted
}

// Reveal uses a reveal_invisible item on target, or on every encounter it can reveal
// when target is NoTarget.
func (r *Resolver) Reveal(ctx context.Context, item *model.ItemTemplate, target uint32) (RevealResult, error) {
	if item == nil {
		return RevealResult{}, model.ErrNoSelection
	}
	if item.Effect != model.EffectRevealInvisible {
		return RevealResult{}, fmt.Errorf("%s cannot reveal: %w", item.ID, model.ErrInvalidAction)
	}
	if err := ValidateRequirements(item, r.inventory); err != nil {
		return RevealResult{}, err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	var targets []*model.Encounter
	if target == NoTarget {
		targets = r.registry.ListActive()
	} else {
		enc, err := r.registry.Get(target)
		if err != nil {
			return RevealResult{}, err
		}
		targets = []*model.Encounter{enc}
	}

	var res RevealResult
	for _, enc := range targets {
		if enc.Revealed() || !item.CanReveal(enc.MonsterID()) {
			continue
		}
		enc.SetRevealed(true)
		res.Revealed = append(res.Revealed, enc.InstanceID())
		slog.Debug("encounter revealed", "instanceID", enc.InstanceID(), "monster", enc.MonsterID(), "item", item.ID)
	}

	if item.Consumable {
		if _, err := r.inventory.Remove(ctx, item.ID, 1); err != nil {
			slog.Warn("consuming reveal item", "item", item.ID, "error", err)
		}
	}

	if len(res.Revealed) == 0 {
		res.Message = "Nothing revealed"
	} else {
		res.Message = fmt.Sprintf("Revealed %d creature(s)", len(res.Revealed))
	}
	return res, nil
}

// MonsterStrike applies the encounter's damage to the player unless the encounter
// is immobilized or the player stands in a protection circle.
func (r *Resolver) MonsterStrike(_ context.Context, instanceID uint32) (StrikeResult, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	enc, err := r.registry.Get(instanceID)
	if err != nil {
		return StrikeResult{}, err
	}
	tmpl := enc.Template()

	res := StrikeResult{InstanceID: instanceID, MonsterID: tmpl.ID}
	switch {
	case enc.Immobilized():
		res.Blocked, res.Reason = true, "immobilized"
	case r.now().Before(r.protectedUntil):
		res.Blocked, res.Reason = true, "protected"
	}
	if res.Blocked {
		res.PlayerHP = r.vitals.CurrentHP()
		return res, nil
	}

	dr := r.vitals.ApplyDamage(tmpl.Damage)
	res.Damage = dr.Damage
	res.PlayerHP = dr.HP
	res.Defeated = dr.Defeated

	slog.Debug("monster strike",
		"instanceID", instanceID,
		"monster", tmpl.ID,
		"damage", dr.Damage,
		"playerHP", dr.HP,
		"defeated", dr.Defeated)
	return res, nil
}

// UseOnSelf applies a healing or protection item to the player and consumes it.
func (r *Resolver) UseOnSelf(ctx context.Context, item *model.ItemTemplate) (SelfResult, error) {
	if item == nil {
		return SelfResult{}, model.ErrNoSelection
	}
	if item.HealAmount <= 0 && item.Effect != model.EffectProtectionCircle {
		return SelfResult{}, fmt.Errorf("%s cannot be used on yourself: %w", item.ID, model.ErrInvalidAction)
	}
	if err := ValidateRequirements(item, r.inventory); err != nil {
		return SelfResult{}, err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	res := SelfResult{ItemID: item.ID}
	if item.HealAmount > 0 {
		before := r.vitals.CurrentHP()
		res.PlayerHP = r.vitals.Heal(item.HealAmount)
		res.Healed = res.PlayerHP - before
		res.Message = fmt.Sprintf("+%d HP", res.Healed)
	} else {
		res.PlayerHP = r.vitals.CurrentHP()
	}
	if item.Effect == model.EffectProtectionCircle {
		res.ProtectedUntil = r.raiseProtection()
		res.Message = "Protection circle raised"
	}

	if item.Consumable {
		remaining, err := r.inventory.Remove(ctx, item.ID, 1)
		if err != nil {
			slog.Warn("consuming item", "item", item.ID, "error", err)
		} else {
			res.Depleted = remaining == 0
		}
	}
	return res, nil
}

// ProtectedUntil returns when the current protection circle expires.
func (r *Resolver) ProtectedUntil() time.Time {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.protectedUntil
}

// raiseProtection must be called with r.mu held.
func (r *Resolver) raiseProtection() time.Time {
	r.protectedUntil = r.now().Add(r.cfg.ProtectionDuration)
	return r.protectedUntil
}
