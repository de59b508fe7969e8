package model

// MonsterTemplate — архетип монстра из каталога (bestiary entry).
type MonsterTemplate struct {
	ID     string
	Name   string
	NamePt string // localized display name
	Model  string // glTF asset name, used by the renderer only
	Scale  float64

	HP     int32
	Damage int32 // damage dealt to the player per strike

	Weakness       []string // item IDs effective against this monster
	DefeatSequence []string // items that must land in order before the kill

	Invisible   bool
	VisibleWith string // reveal item, set iff Invisible

	RequiresPreparation string // item that must be applied before weapons bite (witch ← hex_bag)
	Protection          string // protection the player can raise against this monster
	SpawnLocation       SpawnLocation

	SpawnWeight int32
	Lore        string
	Hint        string
}

// HasWeakness reports whether itemID is listed in Weakness.
func (t *MonsterTemplate) HasWeakness(itemID string) bool {
	for _, id := range t.Weakness {
		if id == itemID {
			return true
		}
	}
	return false
}

// HasDefeatSequence reports whether the monster must be finished through a sequence.
func (t *MonsterTemplate) HasDefeatSequence() bool {
	return len(t.DefeatSequence) > 0
}

// InDefeatSequence reports whether itemID appears anywhere in DefeatSequence.
func (t *MonsterTemplate) InDefeatSequence(itemID string) bool {
	for _, id := range t.DefeatSequence {
		if id == itemID {
			return true
		}
	}
	return false
}

// SpawnLocation restricts where an archetype may appear.
type SpawnLocation int32

const (
	SpawnAnywhere SpawnLocation = iota
	SpawnCrossroads
)

// String returns the catalog spelling.
func (l SpawnLocation) String() string {
	switch l {
	case SpawnAnywhere:
		return ""
	case SpawnCrossroads:
		return "crossroads"
	default:
		return "unknown"
	}
}

// ParseSpawnLocation converts catalog spelling to SpawnLocation.
func ParseSpawnLocation(s string) (SpawnLocation, bool) {
	switch s {
	case "":
		return SpawnAnywhere, true
	case "crossroads":
		return SpawnCrossroads, true
	default:
		return SpawnAnywhere, false
	}
}
