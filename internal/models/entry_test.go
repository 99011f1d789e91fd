package models

import (
	"testing"
)

func TestListType_Valid(t *testing.T) {
	tests := []struct {
		value ListType
		want  bool
	}{
		{ListInventory, true},
		{ListShopping, true},
		{"pantry", false},
		{"", false},
	}

	for _, tt := range tests {
		t.Run(string(tt.value), func(t *testing.T) {
			if got := tt.value.Valid(); got != tt.want {
				t.Errorf("Valid() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestParseListType(t *testing.T) {
	if lt, err := ParseListType("shopping"); err != nil || lt != ListShopping {
		t.Errorf("ParseListType(shopping) = %v, %v", lt, err)
	}
	if _, err := ParseListType("fridge"); err == nil {
		t.Error("expected error for unknown list type")
	}
}

func TestInventoryEntry_Total(t *testing.T) {
	tests := []struct {
		name  string
		entry InventoryEntry
		want  int
	}{
		{"scalar", InventoryEntry{Amount: 4}, 4},
		{"units", InventoryEntry{Units: []Unit{{Quantity: 3}, {Quantity: 2}}}, 5},
		{"empty units", InventoryEntry{Units: []Unit{}}, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.entry.Total(); got != tt.want {
				t.Errorf("Total() = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestInventoryEntry_DisplayQuantity(t *testing.T) {
	e := InventoryEntry{Units: []Unit{{Quantity: 3}}}
	if e.DisplayQuantity() != 3 {
		t.Errorf("DisplayQuantity() = %d, want 3", e.DisplayQuantity())
	}

	shown := 10
	e.QuantityDisplay = &shown
	if e.DisplayQuantity() != 10 {
		t.Errorf("DisplayQuantity() = %d, want 10", e.DisplayQuantity())
	}
}

func TestInventoryEntry_Validate(t *testing.T) {
	valid := func() InventoryEntry {
		return InventoryEntry{
			ID:           "e1",
			Name:         "Milk",
			Type:         ListInventory,
			Units:        []Unit{{Quantity: 2}, {Quantity: 1}},
			CheckedCount: 3,
		}
	}

	tests := []struct {
		name    string
		modify  func(*InventoryEntry)
		wantErr bool
	}{
		{"valid", func(e *InventoryEntry) {}, false},
		{"missing id", func(e *InventoryEntry) { e.ID = "" }, true},
		{"missing name", func(e *InventoryEntry) { e.Name = "" }, true},
		{"bad type", func(e *InventoryEntry) { e.Type = "fridge" }, true},
		{"negative unit", func(e *InventoryEntry) { e.Units[0].Quantity = -1 }, true},
		{"checked above total", func(e *InventoryEntry) { e.CheckedCount = 4 }, true},
		{"negative checked", func(e *InventoryEntry) { e.CheckedCount = -1 }, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := valid()
			tt.modify(&e)
			err := e.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestInventoryEntry_Clone(t *testing.T) {
	shown := 3
	e := InventoryEntry{
		Units:           []Unit{{Quantity: 3, Expiry: "2030-01-01"}},
		QuantityDisplay: &shown,
	}

	c := e.Clone()
	c.Units[0].Quantity = 9
	*c.QuantityDisplay = 9

	if e.Units[0].Quantity != 3 {
		t.Error("Clone shares units with the original")
	}
	if *e.QuantityDisplay != 3 {
		t.Error("Clone shares quantity display with the original")
	}
}
