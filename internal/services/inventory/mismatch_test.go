package inventory

import (
	"testing"

	"github.com/larder/larder/internal/models"
)

func TestHasExpiryMismatch(t *testing.T) {
	tests := []struct {
		name     string
		expiries []string
		expected int
		want     bool
	}{
		{"extra slot with partial fill", []string{"2025-01-01", "2025-02-01", ""}, 2, true},
		{"fully filled", []string{"2025-01-01", "2025-02-01"}, 2, false},
		{"all empty", []string{"", ""}, 2, false},
		{"all empty wrong length", []string{"", "", ""}, 2, false},
		{"nil", nil, 3, false},
		{"partly filled", []string{"2025-01-01", ""}, 2, true},
		{"whitespace counts as empty", []string{"2025-01-01", "  "}, 2, true},
		{"filled but too short", []string{"2025-01-01"}, 2, true},
		{"filled and too long", []string{"2025-01-01", "2025-01-02", "2025-01-03"}, 2, true},
		{"expected zero", []string{"2025-01-01"}, 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := HasExpiryMismatch(tt.expiries, tt.expected); got != tt.want {
				t.Errorf("HasExpiryMismatch(%q, %d) = %v, want %v", tt.expiries, tt.expected, got, tt.want)
			}
		})
	}
}

func TestHasQuantityMismatch(t *testing.T) {
	tests := []struct {
		name         string
		quantityText []string
		unit         []string
		expected     int
		want         bool
	}{
		{"one of two rows filled", []string{"1", ""}, []string{"g", ""}, 2, true},
		{"nothing filled", []string{"", ""}, []string{"", ""}, 2, false},
		{"all rows filled", []string{"1", "2"}, []string{"g", "ml"}, 2, false},
		{"quantity without unit", []string{"1", "2"}, []string{"g", ""}, 2, true},
		{"unit without quantity", []string{"1", ""}, []string{"g", "ml"}, 2, true},
		{"whitespace counts as empty", []string{"1", " "}, []string{"g", " "}, 2, true},
		{"unit column shorter", []string{"1", "2"}, []string{"g"}, 2, true},
		{"more rows than expected", []string{"1", "2", "3"}, []string{"g", "g", "g"}, 2, false},
		{"nil columns", nil, nil, 2, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := HasQuantityMismatch(tt.quantityText, tt.unit, tt.expected)
			if got != tt.want {
				t.Errorf("HasQuantityMismatch(%q, %q, %d) = %v, want %v",
					tt.quantityText, tt.unit, tt.expected, got, tt.want)
			}
		})
	}
}

func TestCheckDraft(t *testing.T) {
	d := models.DraftRow{
		QuantityText: []string{"1", "2"},
		Quantity:     []int{1, 2},
		Unit:         []string{"g", "ml"},
		Expiries:     []string{"2025-01-01", ""},
	}

	m := CheckDraft(d)
	if !m.Expiry || m.Quantity || !m.Any() {
		t.Errorf("CheckDraft() = %+v, want expiry mismatch only", m)
	}

	d = d.Apply(models.SetExpiry(1, "2025-02-01"))
	if CheckDraft(d).Any() {
		t.Errorf("CheckDraft() = %+v, want no mismatch", CheckDraft(d))
	}

	d = d.Apply(models.InsertBlankRow(1)...)
	if m := CheckDraft(d); !m.Expiry || !m.Quantity {
		t.Errorf("blank row should fail both checks, got %+v", m)
	}
}

func TestCheckDraft_ComparesAgainstSourceLots(t *testing.T) {
	entry := &models.InventoryEntry{
		ID:   "eggs",
		Name: "Eggs",
		Type: models.ListShopping,
		Units: []models.Unit{
			{Quantity: 6, Measure: "pcs"},
			{Quantity: 6, Measure: "pcs"},
		},
	}
	d := models.NewDraftFromEntry(entry).Apply(models.InsertBlankRow(1)...)

	var edits []models.Edit
	for i, q := range []string{"4", "4", "4"} {
		edits = append(edits, models.QuantityTextEdits(i, q)...)
		edits = append(edits, models.SetUnit(i, "pcs"), models.SetExpiry(i, "2025-07-0"+q))
	}
	d = d.Apply(edits...)

	if d.Rows() != 3 || d.ExpectedRows() != 2 {
		t.Fatalf("Rows() = %d, ExpectedRows() = %d", d.Rows(), d.ExpectedRows())
	}
	if !HasExpiryMismatch(d.Expiries, 2) {
		t.Fatal("three dates for two lots should mismatch")
	}
	if m := CheckDraft(d); !m.Expiry || m.Quantity {
		t.Errorf("CheckDraft() = %+v, want expiry mismatch only", m)
	}

	// Without dates the extra row just splits a lot.
	for i := range 3 {
		d = d.Apply(models.SetExpiry(i, ""))
	}
	if m := CheckDraft(d); m.Any() {
		t.Errorf("CheckDraft() = %+v, want no mismatch", m)
	}
}
