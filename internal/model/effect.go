package model

// Effect is the symbolic capability an item grants.
// The set is closed: combat handles every value in an exhaustive switch.
type Effect int32

const (
	EffectNone Effect = iota
	EffectRevealInvisible
	EffectImmobilize
	EffectExorcism
	EffectProtectionCircle
	EffectSummon
	EffectIgnite
	EffectWeakenWitch
	EffectDestroyGhost
)

var effectNames = [...]string{
	EffectNone:             "",
	EffectRevealInvisible:  "reveal_invisible",
	EffectImmobilize:       "immobilize",
	EffectExorcism:         "exorcism",
	EffectProtectionCircle: "protection_circle",
	EffectSummon:           "summon",
	EffectIgnite:           "ignite",
	EffectWeakenWitch:      "weaken_witch",
	EffectDestroyGhost:     "destroy_ghost",
}

// String returns the catalog tag of the effect ("" for EffectNone).
func (e Effect) String() string {
	if e < 0 || int(e) >= len(effectNames) {
		return "unknown"
	}
	return effectNames[e]
}

// ParseEffect converts a catalog tag to Effect. Empty tag is EffectNone.
func ParseEffect(tag string) (Effect, bool) {
	for i, name := range effectNames {
		if name == tag {
			return Effect(i), true
		}
	}
	return EffectNone, false
}
