package data

import (
	"embed"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"

	"github.com/udisondev/hunters/internal/model"
)

//go:embed catalog/*.yaml
var catalogFS embed.FS

const (
	itemsFile    = "items.yaml"
	monstersFile = "monsters.yaml"
)

type itemsDoc struct {
	Version string    `yaml:"version"`
	Items   []itemDef `yaml:"items" validate:"required,min=1,dive"`
}

type monstersDoc struct {
	Version  string       `yaml:"version"`
	Monsters []monsterDef `yaml:"monsters" validate:"required,min=1,dive"`
}

type itemDef struct {
	ID               string   `yaml:"id" validate:"required"`
	Name             string   `yaml:"name" validate:"required"`
	Description      string   `yaml:"description"`
	Type             string   `yaml:"type" validate:"required,oneof=weapon ammo support healing special"`
	Damage           int32    `yaml:"damage" validate:"gte=0"`
	HealAmount       int32    `yaml:"heal_amount" validate:"gte=0"`
	EffectiveAgainst []string `yaml:"effective_against"`
	Reveals          []string `yaml:"reveals"`
	Consumable       bool     `yaml:"consumable"`
	Stackable        bool     `yaml:"stackable"`
	MaxStack         int32    `yaml:"max_stack" validate:"gte=0"`
	RequiresAmmo     string   `yaml:"requires_ammo"`
	RequiresItem     string   `yaml:"requires_item"`
	Effect           string   `yaml:"effect"`
	Finisher         bool     `yaml:"finisher"`
	DroppedBy        string   `yaml:"dropped_by"`
}

type monsterDef struct {
	ID                  string   `yaml:"id" validate:"required"`
	Name                string   `yaml:"name" validate:"required"`
	NamePt              string   `yaml:"name_pt"`
	Model               string   `yaml:"model"`
	Scale               float64  `yaml:"scale" validate:"gte=0"`
	HP                  int32    `yaml:"hp" validate:"gt=0"`
	Damage              int32    `yaml:"damage" validate:"gte=0"`
	Weakness            []string `yaml:"weakness"`
	DefeatSequence      []string `yaml:"defeat_sequence"`
	Invisible           bool     `yaml:"invisible"`
	VisibleWith         string   `yaml:"visible_with"`
	RequiresPreparation string   `yaml:"requires_preparation"`
	Protection          string   `yaml:"protection"`
	SpawnLocation       string   `yaml:"spawn_location" validate:"omitempty,oneof=crossroads"`
	SpawnWeight         int32    `yaml:"spawn_weight" validate:"gte=0"`
	Lore                string   `yaml:"lore"`
	Hint                string   `yaml:"hint"`
}

// LoadCatalog parses the catalog embedded in the binary.
func LoadCatalog() (*Catalog, error) {
	items, err := catalogFS.ReadFile("catalog/" + itemsFile)
	if err != nil {
		return nil, fmt.Errorf("reading embedded items: %w", err)
	}
	monsters, err := catalogFS.ReadFile("catalog/" + monstersFile)
	if err != nil {
		return nil, fmt.Errorf("reading embedded monsters: %w", err)
	}
	return ParseCatalog(items, monsters)
}

// LoadCatalogDir parses items.yaml and monsters.yaml from dir.
// Empty dir means the embedded catalog.
func LoadCatalogDir(dir string) (*Catalog, error) {
	if dir == "" {
		return LoadCatalog()
	}
	items, err := os.ReadFile(filepath.Join(dir, itemsFile))
	if err != nil {
		return nil, fmt.Errorf("reading items catalog: %w", err)
	}
	monsters, err := os.ReadFile(filepath.Join(dir, monstersFile))
	if err != nil {
		return nil, fmt.Errorf("reading monsters catalog: %w", err)
	}
	return ParseCatalog(items, monsters)
}

// ParseCatalog builds a Catalog from raw YAML documents and validates cross references.
// Every validation failure wraps model.ErrInvalidCatalog.
func ParseCatalog(itemsYAML, monstersYAML []byte) (*Catalog, error) {
	var idoc itemsDoc
	if err := yaml.Unmarshal(itemsYAML, &idoc); err != nil {
		return nil, fmt.Errorf("%w: parsing items: %w", model.ErrInvalidCatalog, err)
	}
	var mdoc monstersDoc
	if err := yaml.Unmarshal(monstersYAML, &mdoc); err != nil {
		return nil, fmt.Errorf("%w: parsing monsters: %w", model.ErrInvalidCatalog, err)
	}

	v := validator.New(validator.WithRequiredStructEnabled())
	if err := v.Struct(&idoc); err != nil {
		return nil, fmt.Errorf("%w: items: %s", model.ErrInvalidCatalog, describeValidation(err))
	}
	if err := v.Struct(&mdoc); err != nil {
		return nil, fmt.Errorf("%w: monsters: %s", model.ErrInvalidCatalog, describeValidation(err))
	}

	c := &Catalog{
		items:    make(map[string]*model.ItemTemplate, len(idoc.Items)),
		monsters: make(map[string]*model.MonsterTemplate, len(mdoc.Monsters)),
	}

	for i := range idoc.Items {
		t, err := idoc.Items[i].toTemplate()
		if err != nil {
			return nil, err
		}
		if _, dup := c.items[t.ID]; dup {
			return nil, fmt.Errorf("%w: duplicate item id %q", model.ErrInvalidCatalog, t.ID)
		}
		c.items[t.ID] = t
		c.itemOrder = append(c.itemOrder, t)
	}

	for i := range mdoc.Monsters {
		t, err := mdoc.Monsters[i].toTemplate()
		if err != nil {
			return nil, err
		}
		if _, dup := c.monsters[t.ID]; dup {
			return nil, fmt.Errorf("%w: duplicate monster id %q", model.ErrInvalidCatalog, t.ID)
		}
		c.monsters[t.ID] = t
		c.monsterOrder = append(c.monsterOrder, t)
		if t.SpawnWeight > 0 {
			c.spawnable = append(c.spawnable, t)
		}
	}

	if err := c.checkReferences(); err != nil {
		return nil, err
	}

	slog.Info("loaded catalog",
		"items", len(c.items),
		"monsters", len(c.monsters),
		"spawnable", len(c.spawnable))
	return c, nil
}

func (d *itemDef) toTemplate() (*model.ItemTemplate, error) {
	typ, ok := model.ParseItemType(d.Type)
	if !ok {
		return nil, fmt.Errorf("%w: item %q: unknown type %q", model.ErrInvalidCatalog, d.ID, d.Type)
	}
	eff, ok := model.ParseEffect(d.Effect)
	if !ok {
		return nil, fmt.Errorf("%w: item %q: unknown effect %q", model.ErrInvalidCatalog, d.ID, d.Effect)
	}
	if d.Stackable != (d.MaxStack > 0) {
		return nil, fmt.Errorf("%w: item %q: max_stack must be set iff stackable", model.ErrInvalidCatalog, d.ID)
	}
	return &model.ItemTemplate{
		ID:               d.ID,
		Name:             d.Name,
		Description:      d.Description,
		Type:             typ,
		Damage:           d.Damage,
		HealAmount:       d.HealAmount,
		EffectiveAgainst: d.EffectiveAgainst,
		Reveals:          d.Reveals,
		Consumable:       d.Consumable,
		Stackable:        d.Stackable,
		MaxStack:         d.MaxStack,
		RequiresAmmo:     d.RequiresAmmo,
		RequiresItem:     d.RequiresItem,
		Effect:           eff,
		Finisher:         d.Finisher,
		DroppedBy:        d.DroppedBy,
	}, nil
}

func (d *monsterDef) toTemplate() (*model.MonsterTemplate, error) {
	loc, ok := model.ParseSpawnLocation(d.SpawnLocation)
	if !ok {
		return nil, fmt.Errorf("%w: monster %q: unknown spawn_location %q", model.ErrInvalidCatalog, d.ID, d.SpawnLocation)
	}
	if d.Invisible != (d.VisibleWith != "") {
		return nil, fmt.Errorf("%w: monster %q: visible_with must be set iff invisible", model.ErrInvalidCatalog, d.ID)
	}
	scale := d.Scale
	if scale == 0 {
		scale = 1
	}
	return &model.MonsterTemplate{
		ID:                  d.ID,
		Name:                d.Name,
		NamePt:              d.NamePt,
		Model:               d.Model,
		Scale:               scale,
		HP:                  d.HP,
		Damage:              d.Damage,
		Weakness:            d.Weakness,
		DefeatSequence:      d.DefeatSequence,
		Invisible:           d.Invisible,
		VisibleWith:         d.VisibleWith,
		RequiresPreparation: d.RequiresPreparation,
		Protection:          d.Protection,
		SpawnLocation:       loc,
		SpawnWeight:         d.SpawnWeight,
		Lore:                d.Lore,
		Hint:                d.Hint,
	}, nil
}

// checkReferences verifies that every ID mentioned by an archetype exists.
func (c *Catalog) checkReferences() error {
	var errs []error
	item := func(owner, field, id string) {
		if id == "" {
			return
		}
		if _, ok := c.items[id]; !ok {
			errs = append(errs, fmt.Errorf("%s.%s: unknown item %q", owner, field, id))
		}
	}
	monster := func(owner, field, id string) {
		if _, ok := c.monsters[id]; !ok {
			errs = append(errs, fmt.Errorf("%s.%s: unknown monster %q", owner, field, id))
		}
	}

	for _, t := range c.itemOrder {
		item(t.ID, "requires_ammo", t.RequiresAmmo)
		item(t.ID, "requires_item", t.RequiresItem)
		for _, id := range t.EffectiveAgainst {
			monster(t.ID, "effective_against", id)
		}
		for _, id := range t.Reveals {
			monster(t.ID, "reveals", id)
		}
		if t.DroppedBy != "" {
			monster(t.ID, "dropped_by", t.DroppedBy)
		}
	}

	for _, t := range c.monsterOrder {
		for _, id := range t.Weakness {
			item(t.ID, "weakness", id)
		}
		for _, id := range t.DefeatSequence {
			item(t.ID, "defeat_sequence", id)
		}
		item(t.ID, "visible_with", t.VisibleWith)
		item(t.ID, "requires_preparation", t.RequiresPreparation)
		item(t.ID, "protection", t.Protection)

		if t.VisibleWith != "" {
			if rev, ok := c.items[t.VisibleWith]; ok && !rev.CanReveal(t.ID) {
				errs = append(errs, fmt.Errorf("%s.visible_with: item %q cannot reveal it", t.ID, t.VisibleWith))
			}
		}
	}

	if len(c.spawnable) == 0 {
		errs = append(errs, errors.New("no spawnable monsters"))
	}

	if len(errs) > 0 {
		return fmt.Errorf("%w: %w", model.ErrInvalidCatalog, errors.Join(errs...))
	}
	return nil
}

func describeValidation(err error) string {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err.Error()
	}
	msg := ""
	for i, fe := range verrs {
		if i > 0 {
			msg += "; "
		}
		msg += fmt.Sprintf("%s failed %q", fe.Namespace(), fe.Tag())
		if fe.Param() != "" {
			msg += " (" + fe.Param() + ")"
		}
	}
	return msg
}
