package api

import (
	"time"

	"github.com/udisondev/hunters/internal/game/combat"
	"github.com/udisondev/hunters/internal/model"
	"github.com/udisondev/hunters/internal/session"
)

type positionView struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
	Z float64 `json:"z"`
}

type sessionView struct {
	ID       string `json:"id"`
	PlayerID string `json:"player_id"`
	ARActive bool   `json:"ar_active"`
	HP       int32  `json:"hp"`
	MaxHP    int32  `json:"max_hp"`
	Selected string `json:"selected,omitempty"`
}

func newSessionView(s *session.Session) sessionView {
	hp, maxHP := s.Vitals()
	v := sessionView{
		ID:       s.ID(),
		PlayerID: s.PlayerID(),
		ARActive: s.ARActive(),
		HP:       hp,
		MaxHP:    maxHP,
	}
	if item := s.Selected(); item != nil {
		v.Selected = item.ID
	}
	return v
}

type encounterView struct {
	InstanceID     uint32       `json:"instance_id"`
	MonsterID      string       `json:"monster_id"`
	Name           string       `json:"name"`
	NamePt         string       `json:"name_pt"`
	Model          string       `json:"model"`
	Scale          float64      `json:"scale"`
	Position       positionView `json:"position"`
	HP             int32        `json:"hp"`
	MaxHP          int32        `json:"max_hp"`
	Revealed       bool         `json:"revealed"`
	Immobilized    bool         `json:"immobilized"`
	DefeatProgress []string     `json:"defeat_progress"`
	Hint           string       `json:"hint,omitempty"`
}

func newEncounterView(e *model.Encounter) encounterView {
	t := e.Template()
	p := e.Position()
	return encounterView{
		InstanceID:     e.InstanceID(),
		MonsterID:      t.ID,
		Name:           t.Name,
		NamePt:         t.NamePt,
		Model:          t.Model,
		Scale:          t.Scale,
		Position:       positionView{X: p.X, Y: p.Y, Z: p.Z},
		HP:             e.CurrentHP(),
		MaxHP:          e.MaxHP(),
		Revealed:       e.Revealed(),
		Immobilized:    e.Immobilized(),
		DefeatProgress: e.DefeatProgress(),
		Hint:           t.Hint,
	}
}

type attackView struct {
	Outcome        combat.Outcome `json:"outcome"`
	Damage         int32          `json:"damage"`
	Effective      bool           `json:"effective"`
	InstanceID     uint32         `json:"instance_id,omitempty"`
	MonsterID      string         `json:"monster_id,omitempty"`
	RemainingHP    int32          `json:"remaining_hp"`
	DefeatProgress []string       `json:"defeat_progress,omitempty"`
	Consumed       []string       `json:"consumed,omitempty"`
	Depleted       bool           `json:"depleted"`
	Killed         bool           `json:"killed"`
	Message        string         `json:"message"`
}

func newAttackView(r combat.Result) attackView {
	return attackView{
		Outcome:        r.Outcome,
		Damage:         r.Damage,
		Effective:      r.Effective,
		InstanceID:     r.InstanceID,
		MonsterID:      r.MonsterID,
		RemainingHP:    r.RemainingHP,
		DefeatProgress: r.DefeatProgress,
		Consumed:       r.Consumed,
		Depleted:       r.Depleted,
		Killed:         r.Kill != nil,
		Message:        r.Message,
	}
}

type strikeView struct {
	InstanceID uint32 `json:"instance_id"`
	MonsterID  string `json:"monster_id"`
	Blocked    bool   `json:"blocked"`
	Reason     string `json:"reason,omitempty"`
	Damage     int32  `json:"damage"`
	PlayerHP   int32  `json:"player_hp"`
	Defeated   bool   `json:"defeated"`
}

type revealView struct {
	Revealed []uint32 `json:"revealed"`
	Message  string   `json:"message"`
}

type selfView struct {
	ItemID         string     `json:"item_id"`
	Healed         int32      `json:"healed"`
	PlayerHP       int32      `json:"player_hp"`
	ProtectedUntil *time.Time `json:"protected_until,omitempty"`
	Depleted       bool       `json:"depleted"`
	Message        string     `json:"message"`
}

func newSelfView(r combat.SelfResult) selfView {
	v := selfView{
		ItemID:   r.ItemID,
		Healed:   r.Healed,
		PlayerHP: r.PlayerHP,
		Depleted: r.Depleted,
		Message:  r.Message,
	}
	if !r.ProtectedUntil.IsZero() {
		v.ProtectedUntil = &r.ProtectedUntil
	}
	return v
}

type vitalsView struct {
	HP             int32      `json:"hp"`
	MaxHP          int32      `json:"max_hp"`
	ProtectedUntil *time.Time `json:"protected_until,omitempty"`
}

type slotView struct {
	ItemID   string `json:"item_id"`
	Quantity int32  `json:"quantity"`
}

type diaryEntryView struct {
	ID          string    `json:"id"`
	Type        string    `json:"type"`
	Description string    `json:"description"`
	MonsterID   string    `json:"monster_id,omitempty"`
	Location    string    `json:"location,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
}

type statsView struct {
	Hunts int `json:"hunts"`
	Kills int `json:"kills"`
	Items int `json:"items"`
}

type monsterView struct {
	ID             string   `json:"id"`
	Name           string   `json:"name"`
	NamePt         string   `json:"name_pt"`
	HP             int32    `json:"hp"`
	Damage         int32    `json:"damage"`
	Weakness       []string `json:"weakness,omitempty"`
	DefeatSequence []string `json:"defeat_sequence,omitempty"`
	Invisible      bool     `json:"invisible"`
	VisibleWith    string   `json:"visible_with,omitempty"`
	Protection     string   `json:"protection,omitempty"`
	SpawnLocation  string   `json:"spawn_location,omitempty"`
	Lore           string   `json:"lore,omitempty"`
	Hint           string   `json:"hint,omitempty"`
}

func newMonsterView(t *model.MonsterTemplate) monsterView {
	return monsterView{
		ID:             t.ID,
		Name:           t.Name,
		NamePt:         t.NamePt,
		HP:             t.HP,
		Damage:         t.Damage,
		Weakness:       t.Weakness,
		DefeatSequence: t.DefeatSequence,
		Invisible:      t.Invisible,
		VisibleWith:    t.VisibleWith,
		Protection:     t.Protection,
		SpawnLocation:  t.SpawnLocation.String(),
		Lore:           t.Lore,
		Hint:           t.Hint,
	}
}

type itemView struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Type        string `json:"type"`
	Damage      int32  `json:"damage,omitempty"`
	HealAmount  int32  `json:"heal_amount,omitempty"`
	Effect      string `json:"effect,omitempty"`
}

func newItemView(t *model.ItemTemplate) itemView {
	v := itemView{
		ID:          t.ID,
		Name:        t.Name,
		Description: t.Description,
		Type:        t.Type.String(),
		Damage:      t.Damage,
		HealAmount:  t.HealAmount,
	}
	if t.Effect != model.EffectNone {
		v.Effect = t.Effect.String()
	}
	return v
}
