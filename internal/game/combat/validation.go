package combat

import (
	"fmt"

	"github.com/udisondev/hunters/internal/model"
)

// ValidateRequirements checks that the player holds what item needs to be used.
// Returns model.ErrRequirementMissing naming the missing item.
//
// Checks:
//   - RequiresAmmo held (one round is spent per use)
//   - RequiresItem held (not spent)
func ValidateRequirements(item *model.ItemTemplate, inv Inventory) error {
	if item == nil {
		return model.ErrNoSelection
	}
	if item.RequiresAmmo != "" && inv.Quantity(item.RequiresAmmo) <= 0 {
		return fmt.Errorf("%s needs ammo %s: %w", item.ID, item.RequiresAmmo, model.ErrRequirementMissing)
	}
	if item.RequiresItem != "" && inv.Quantity(item.RequiresItem) <= 0 {
		return fmt.Errorf("%s needs %s: %w", item.ID, item.RequiresItem, model.ErrRequirementMissing)
	}
	if inv.Quantity(item.ID) <= 0 {
		return fmt.Errorf("item %s: %w", item.ID, model.ErrInsufficientQuantity)
	}
	return nil
}
