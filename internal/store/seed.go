package store

import (
	"github.com/iskcon-portal/iskcon-portal/internal/store/models"
)

// SeedInventory is the pantry served while no inventory collection exists
// yet. The IDs are fixed so that quantity adjustments against the seed
// resolve consistently.
func SeedInventory() []models.InventoryItem {
	return []models.InventoryItem{
		{ID: "1", Name: "Basmati Rice", Category: models.CategoryGrains, Quantity: 50, Unit: "kg", MinThreshold: 20},
		{ID: "2", Name: "Desi Ghee", Category: models.CategoryDairy, Quantity: 5, Unit: "liters", MinThreshold: 10},
		{ID: "3", Name: "Toor Dal", Category: models.CategoryGrains, Quantity: 30, Unit: "kg", MinThreshold: 15},
	}
}
