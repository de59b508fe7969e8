package model

// ItemTemplate — шаблон предмета из каталога.
// Immutable после загрузки: Catalog отдаёт один и тот же *ItemTemplate всем сессиям.
type ItemTemplate struct {
	ID          string
	Name        string
	Description string
	Type        ItemType

	Damage     int32 // full damage on an effective hit
	HealAmount int32 // HP restored when used as healing

	EffectiveAgainst []string // monster IDs this item hits at full effect
	Reveals          []string // monster IDs made visible by a reveal_invisible item

	Consumable bool
	Stackable  bool
	MaxStack   int32 // > 0 iff Stackable

	RequiresAmmo string // item that must be held (and is spent) to use this one
	RequiresItem string // item that must be held to use this one

	Effect    Effect
	Finisher  bool // only valid as the terminal step of a defeat sequence
	DroppedBy string
}

// IsEffectiveAgainst reports whether the item lists monsterID in EffectiveAgainst.
func (t *ItemTemplate) IsEffectiveAgainst(monsterID string) bool {
	for _, id := range t.EffectiveAgainst {
		if id == monsterID {
			return true
		}
	}
	return false
}

// CanReveal reports whether the item reveals monsterID.
// A reveal_invisible item with an empty Reveals list reveals everything.
func (t *ItemTemplate) CanReveal(monsterID string) bool {
	if t.Effect != EffectRevealInvisible {
		return false
	}
	if len(t.Reveals) == 0 {
		return true
	}
	for _, id := range t.Reveals {
		if id == monsterID {
			return true
		}
	}
	return false
}

// ItemType определяет категорию предмета.
type ItemType int32

const (
	ItemTypeWeapon ItemType = iota
	ItemTypeAmmo
	ItemTypeSupport
	ItemTypeHealing
	ItemTypeSpecial
)

// String returns the catalog spelling of the item type.
func (it ItemType) String() string {
	switch it {
	case ItemTypeWeapon:
		return "weapon"
	case ItemTypeAmmo:
		return "ammo"
	case ItemTypeSupport:
		return "support"
	case ItemTypeHealing:
		return "healing"
	case ItemTypeSpecial:
		return "special"
	default:
		return "unknown"
	}
}

// ParseItemType converts catalog spelling to ItemType.
func ParseItemType(s string) (ItemType, bool) {
	switch s {
	case "weapon":
		return ItemTypeWeapon, true
	case "ammo":
		return ItemTypeAmmo, true
	case "support":
		return ItemTypeSupport, true
	case "healing":
		return ItemTypeHealing, true
	case "special":
		return ItemTypeSpecial, true
	default:
		return 0, false
	}
}
