package combat

import (
	"fmt"
	"time"

	"github.com/udisondev/hunters/internal/model"
)

// Outcome — результат разрешения атаки.
type Outcome int32

const (
	OutcomeMiss Outcome = iota
	OutcomeObscured
	OutcomeIneffectiveHit
	OutcomeEffectiveHit
	OutcomeKill
)

var outcomeNames = [...]string{
	OutcomeMiss:           "miss",
	OutcomeObscured:       "obscured",
	OutcomeIneffectiveHit: "ineffective-hit",
	OutcomeEffectiveHit:   "effective-hit",
	OutcomeKill:           "kill",
}

func (o Outcome) String() string {
	if o < 0 || int(o) >= len(outcomeNames) {
		return fmt.Sprintf("outcome(%d)", int32(o))
	}
	return outcomeNames[o]
}

// MarshalText encodes the outcome by name.
func (o Outcome) MarshalText() ([]byte, error) {
	return []byte(o.String()), nil
}

// KillEvent is emitted when an encounter's HP reaches zero and it is removed.
type KillEvent struct {
	InstanceID uint32
	Monster    *model.MonsterTemplate
	Position   model.Position
	At         time.Time
}

// Result describes one resolved attack.
type Result struct {
	Outcome     Outcome
	Damage      int32
	Effective   bool
	InstanceID  uint32
	MonsterID   string
	RemainingHP int32

	DefeatProgress []string // sequence items applied so far
	Consumed       []string // item keys consumed by this action
	Depleted       bool     // the attacking item's stack reached zero

	Kill    *KillEvent
	Message string
}

// StrikeResult describes a monster's strike against the player.
type StrikeResult struct {
	InstanceID uint32
	MonsterID  string
	Blocked    bool
	Reason     string // "immobilized" or "protected" when Blocked
	Damage     int32
	PlayerHP   int32
	Defeated   bool
}

// RevealResult describes a reveal action.
type RevealResult struct {
	Revealed []uint32 // instance IDs newly revealed
	Message  string
}

// SelfResult describes an item used on the player (healing, protection).
type SelfResult struct {
	ItemID         string
	Healed         int32
	PlayerHP       int32
	ProtectedUntil time.Time
	Depleted       bool
	Message        string
}
