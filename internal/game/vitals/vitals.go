// Package vitals tracks the player's hit points.
package vitals

import (
	"log/slog"
	"sync"

	"github.com/udisondev/hunters/internal/metrics"
)

// DefaultMaxHP — стартовое HP охотника.
const DefaultMaxHP int32 = 100

// DamageResult describes the outcome of ApplyDamage.
type DamageResult struct {
	Damage   int32 // amount actually applied after clamping
	HP       int32 // HP after the call; MaxHP again when Defeated
	Defeated bool
}

// Vitals — HP игрока. Инвариант: 0 <= currentHP <= maxHP.
//
// Reaching zero HP is a defeat: the defeat callback fires and HP is restored to
// maxHP in the same call (immediate respawn).
type Vitals struct {
	mu        sync.RWMutex
	currentHP int32
	maxHP     int32

	defeatFunc func(damage int32)
	changeFunc func(currentHP, maxHP int32)
}

// New creates vitals at full HP. maxHP < 1 is raised to 1.
func New(maxHP int32) *Vitals {
	maxHP = max(maxHP, 1)
	return &Vitals{currentHP: maxHP, maxHP: maxHP}
}

// SetDefeatFunc sets the callback invoked when HP reaches zero.
// Called outside the lock, after HP has been restored.
func (v *Vitals) SetDefeatFunc(fn func(damage int32)) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.defeatFunc = fn
}

// SetChangeFunc sets the callback invoked after every HP change.
func (v *Vitals) SetChangeFunc(fn func(currentHP, maxHP int32)) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.changeFunc = fn
}

// CurrentHP возвращает текущее HP.
func (v *Vitals) CurrentHP() int32 {
	v.mu.RLock()
	defer v.mu.RUnlock()
	return v.currentHP
}

// MaxHP возвращает максимальное HP.
func (v *Vitals) MaxHP() int32 {
	v.mu.RLock()
	defer v.mu.RUnlock()
	return v.maxHP
}

// Snapshot returns current and max HP read together.
func (v *Vitals) Snapshot() (currentHP, maxHP int32) {
	v.mu.RLock()
	defer v.mu.RUnlock()
	return v.currentHP, v.maxHP
}

// Restore sets HP from persisted state (clamp 0..maxHP). Zero restores to full.
func (v *Vitals) Restore(hp int32) {
	v.mu.Lock()
	if hp <= 0 || hp > v.maxHP {
		hp = v.maxHP
	}
	v.currentHP = hp
	v.mu.Unlock()
}

// ApplyDamage reduces HP by amount. Negative amounts are treated as zero.
func (v *Vitals) ApplyDamage(amount int32) DamageResult {
	amount = max(amount, 0)

	v.mu.Lock()
	applied := min(amount, v.currentHP)
	v.currentHP -= applied
	defeated := v.currentHP == 0
	if defeated {
		v.currentHP = v.maxHP
	}
	hp, maxHP := v.currentHP, v.maxHP
	defeatFn, changeFn := v.defeatFunc, v.changeFunc
	v.mu.Unlock()

	if defeated {
		metrics.PlayerDefeats.Inc()
		slog.Info("player defeated, respawning at full HP", "damage", amount, "maxHP", maxHP)
		if defeatFn != nil {
			defeatFn(amount)
		}
	}
	if changeFn != nil && (applied > 0 || defeated) {
		changeFn(hp, maxHP)
	}

	return DamageResult{Damage: applied, HP: hp, Defeated: defeated}
}

// Heal restores up to amount HP, clamped at maxHP. Returns HP after healing.
func (v *Vitals) Heal(amount int32) int32 {
	amount = max(amount, 0)

	v.mu.Lock()
	before := v.currentHP
	v.currentHP += min(amount, v.maxHP-v.currentHP)
	hp, maxHP := v.currentHP, v.maxHP
	changeFn := v.changeFunc
	v.mu.Unlock()

	if changeFn != nil && hp != before {
		changeFn(hp, maxHP)
	}
	return hp
}
