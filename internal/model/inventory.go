package model

// InventorySlot — строка инвентаря игрока. Хранилище внешнее, ядро только читает и списывает.
type InventorySlot struct {
	ID       string
	ItemKey  string
	Quantity int32
	Equipped bool
}

// FindSlot returns the slot holding itemKey, or nil.
func FindSlot(slots []InventorySlot, itemKey string) *InventorySlot {
	for i := range slots {
		if slots[i].ItemKey == itemKey {
			return &slots[i]
		}
	}
	return nil
}

// Holds reports whether slots contain at least one itemKey.
func Holds(slots []InventorySlot, itemKey string) bool {
	slot := FindSlot(slots, itemKey)
	return slot != nil && slot.Quantity > 0
}
