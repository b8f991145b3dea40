package models

// InventoryCategory groups kitchen stock items.
type InventoryCategory string

// All recognised inventory categories.
const (
	CategoryGrains     InventoryCategory = "Grains"
	CategoryVegetables InventoryCategory = "Vegetables"
	CategoryDairy      InventoryCategory = "Dairy"
	CategorySpices     InventoryCategory = "Spices"
	CategoryGeneral    InventoryCategory = "General"
)

// InventoryCategories lists every valid category, in form display order.
func InventoryCategories() []InventoryCategory {
	return []InventoryCategory{
		CategoryGrains,
		CategoryVegetables,
		CategoryDairy,
		CategorySpices,
		CategoryGeneral,
	}
}

// Valid reports whether c is one of the recognised categories.
func (c InventoryCategory) Valid() bool {
	switch c {
	case CategoryGrains, CategoryVegetables, CategoryDairy, CategorySpices, CategoryGeneral:
		return true
	}

	return false
}

// InventoryItem represents one kitchen stock line.
type InventoryItem struct {
	ID           string            `json:"id"`
	Name         string            `json:"name"`
	Category     InventoryCategory `json:"category"`
	Quantity     float64           `json:"quantity"`
	Unit         string            `json:"unit"`
	MinThreshold float64           `json:"minThreshold"`
}

// LowStock reports whether the item is at or below its minimum threshold.
// The flag is always derived, never stored.
func (i InventoryItem) LowStock() bool {
	return i.Quantity <= i.MinThreshold
}
