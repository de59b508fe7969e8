package model

import "errors"

// Common domain errors.
// Wrap with fmt.Errorf("%w: ...", model.ErrXxx) for context; match with errors.Is.
var (
	// ErrNotFound — unknown item/monster/encounter ID.
	ErrNotFound = errors.New("not found")

	// ErrInsufficientQuantity — inventory holds less than requested.
	ErrInsufficientQuantity = errors.New("insufficient quantity")

	// ErrRequirementMissing — the item needs ammo or a companion item the player lacks.
	ErrRequirementMissing = errors.New("required item missing")

	// ErrMaterialization — renderer failed to place a spawned encounter.
	ErrMaterialization = errors.New("encounter materialization failed")

	// ErrInvalidCatalog — catalog data violates an invariant.
	ErrInvalidCatalog = errors.New("invalid catalog")

	// ErrNoSelection — the player has not selected an item to act with.
	ErrNoSelection = errors.New("no item selected")

	// ErrInvalidAction — the item cannot be used this way (e.g. revealing with a knife).
	ErrInvalidAction = errors.New("invalid action")
)
