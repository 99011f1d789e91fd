package testutil

import (
	"time"

	"github.com/google/uuid"
	"github.com/larder/larder/internal/models"
)

// FixtureEntry creates an inventory entry with two units and no expiry.
func FixtureEntry(overrides ...func(*models.InventoryEntry)) *models.InventoryEntry {
	now := time.Now().UTC()

	entry := &models.InventoryEntry{
		ID:   uuid.New().String(),
		Name: "Milk",
		Type: models.ListInventory,
		Units: []models.Unit{
			{Quantity: 2, Measure: "l"},
			{Quantity: 1, Measure: "l"},
		},
		CreatedAt: now,
		UpdatedAt: now,
	}

	for _, override := range overrides {
		override(entry)
	}

	return entry
}

// FixtureShoppingEntry creates a shopping list entry.
func FixtureShoppingEntry(overrides ...func(*models.InventoryEntry)) *models.InventoryEntry {
	return FixtureEntry(append([]func(*models.InventoryEntry){
		func(e *models.InventoryEntry) {
			e.Type = models.ListShopping
			e.Name = "Eggs"
			e.Units = []models.Unit{{Quantity: 12, Measure: "pcs"}}
		},
	}, overrides...)...)
}

// FixtureScalarEntry creates an entry that carries a single Amount.
func FixtureScalarEntry(overrides ...func(*models.InventoryEntry)) *models.InventoryEntry {
	return FixtureEntry(append([]func(*models.InventoryEntry){
		func(e *models.InventoryEntry) {
			e.Name = "Salt"
			e.Units = nil
			e.Amount = 1
		},
	}, overrides...)...)
}

// FixtureExpiringEntry creates an inventory entry whose first unit expired
// yesterday and whose second unit expires in a week.
func FixtureExpiringEntry(now time.Time, overrides ...func(*models.InventoryEntry)) *models.InventoryEntry {
	return FixtureEntry(append([]func(*models.InventoryEntry){
		func(e *models.InventoryEntry) {
			e.Name = "Yoghurt"
			e.Units = []models.Unit{
				{Quantity: 2, Measure: "pcs", Expiry: now.AddDate(0, 0, -1).Format("2006-01-02")},
				{Quantity: 4, Measure: "pcs", Expiry: now.AddDate(0, 0, 7).Format("2006-01-02")},
			}
		},
	}, overrides...)...)
}

// FixtureDraft creates a two row draft.
func FixtureDraft(overrides ...func(*models.DraftRow)) models.DraftRow {
	d := models.DraftRow{
		EntryID:      uuid.New().String(),
		Name:         "Eggs",
		QuantityText: []string{"1", "2"},
		Quantity:     []int{1, 2},
		Unit:         []string{"g", "ml"},
		Expiries:     []string{"2025-01-01", ""},
		Expected:     2,
	}

	for _, override := range overrides {
		override(&d)
	}

	return d
}

// Ptr returns a pointer to v.
func Ptr[T any](v T) *T {
	return &v
}
