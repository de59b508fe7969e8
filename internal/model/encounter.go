package model

import (
	"slices"
	"sync"
	"time"
)

// Encounter — живой экземпляр монстра рядом с игроком.
// Создаётся spawn-планировщиком, мутирует только combat, удаляется при смерти или despawn.
type Encounter struct {
	instanceID uint32
	template   *MonsterTemplate
	position   Position
	spawnedAt  time.Time

	mu          sync.RWMutex
	currentHP   int32
	revealed    bool
	prepared    bool
	immobilized bool
	progress    []string
}

// NewEncounter creates an encounter at full HP.
func NewEncounter(instanceID uint32, template *MonsterTemplate, pos Position, now time.Time) *Encounter {
	return &Encounter{
		instanceID: instanceID,
		template:   template,
		position:   pos,
		spawnedAt:  now,
		currentHP:  template.HP,
		progress:   make([]string, 0, len(template.DefeatSequence)),
	}
}

// InstanceID returns the registry-unique ID (never reused).
func (e *Encounter) InstanceID() uint32 {
	return e.instanceID
}

// MonsterID returns the archetype ID.
func (e *Encounter) MonsterID() string {
	return e.template.ID
}

// Template returns the archetype.
func (e *Encounter) Template() *MonsterTemplate {
	return e.template
}

// Position returns the spawn position relative to the player.
func (e *Encounter) Position() Position {
	return e.position
}

// SpawnedAt returns when the encounter was created.
func (e *Encounter) SpawnedAt() time.Time {
	return e.spawnedAt
}

// MaxHP returns the archetype HP.
func (e *Encounter) MaxHP() int32 {
	return e.template.HP
}

// CurrentHP возвращает текущее HP.
func (e *Encounter) CurrentHP() int32 {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.currentHP
}

// SetCurrentHP устанавливает текущее HP с валидацией (clamp 0..maxHP).
func (e *Encounter) SetCurrentHP(hp int32) int32 {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.currentHP = clampHP(hp, e.template.HP)
	return e.currentHP
}

// ReduceHP subtracts amount and returns the new HP, never below zero.
// Negative amounts are treated as zero.
func (e *Encounter) ReduceHP(amount int32) int32 {
	amount = max(amount, 0)

	e.mu.Lock()
	defer e.mu.Unlock()
	e.currentHP -= min(amount, e.currentHP)
	return e.currentHP
}

// IsDead reports whether HP reached zero.
func (e *Encounter) IsDead() bool {
	return e.CurrentHP() <= 0
}

// Revealed reports whether an invisible encounter can currently be targeted.
// Visible archetypes are always revealed.
func (e *Encounter) Revealed() bool {
	if !e.template.Invisible {
		return true
	}
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.revealed
}

// SetRevealed toggles the reveal state.
func (e *Encounter) SetRevealed(revealed bool) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.revealed = revealed
}

// Prepared reports whether the archetype's preparation item has been applied.
func (e *Encounter) Prepared() bool {
	if e.template.RequiresPreparation == "" {
		return true
	}
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.prepared
}

// MarkPrepared records that the preparation item was applied.
func (e *Encounter) MarkPrepared() {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.prepared = true
}

// Immobilized reports whether the encounter is held by an immobilize effect.
func (e *Encounter) Immobilized() bool {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.immobilized
}

// SetImmobilized sets the immobilize flag.
func (e *Encounter) SetImmobilized(v bool) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.immobilized = v
}

// DefeatProgress returns a copy of the sequence items applied so far.
func (e *Encounter) DefeatProgress() []string {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return slices.Clone(e.progress)
}

// NextInSequence returns the next expected defeat-sequence item.
// ok is false when the archetype has no sequence or it is complete.
func (e *Encounter) NextInSequence() (itemID string, ok bool) {
	e.mu.RLock()
	defer e.mu.RUnlock()
	seq := e.template.DefeatSequence
	if len(e.progress) >= len(seq) {
		return "", false
	}
	return seq[len(e.progress)], true
}

// SequenceComplete reports whether the defeat sequence is done.
// Archetypes without a sequence are always complete.
func (e *Encounter) SequenceComplete() bool {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return len(e.progress) >= len(e.template.DefeatSequence)
}

// AdvanceSequence appends itemID if it is the next expected element.
// Progress is monotonic: a wrong item is ignored, never resets.
func (e *Encounter) AdvanceSequence(itemID string) bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	seq := e.template.DefeatSequence
	if len(e.progress) >= len(seq) || seq[len(e.progress)] != itemID {
		return false
	}
	e.progress = append(e.progress, itemID)
	return true
}

func clampHP(hp, maxHP int32) int32 {
	if hp < 0 {
		return 0
	}
	if hp > maxHP {
		return maxHP
	}
	return hp
}
