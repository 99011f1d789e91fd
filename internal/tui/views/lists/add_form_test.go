package lists

import (
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/larder/larder/internal/models"
	"github.com/larder/larder/internal/services/inventory"
	"github.com/larder/larder/internal/tui/components"
)

func typeInto(f *AddForm, s string) {
	for _, r := range s {
		f.HandleKey(string(r))
	}
}

func TestAddForm_GetData(t *testing.T) {
	f := NewAddForm(models.ListShopping, components.GardenPalette)

	typeInto(f, " Oat milk ")
	f.HandleKey("tab") // list
	f.HandleKey("tab") // quantity
	f.HandleKey("backspace")
	typeInto(f, "2")
	f.HandleKey("tab")
	typeInto(f, "l")
	f.HandleKey("tab")
	typeInto(f, "2025-07-01")
	f.HandleKey("ctrl+s")

	if !f.IsSubmitted() {
		t.Fatal("ctrl+s should submit")
	}

	got, err := f.GetData()
	if err != nil {
		t.Fatalf("GetData() error = %v", err)
	}
	want := inventory.CreateEntryInput{
		Name:  "Oat milk",
		Type:  models.ListShopping,
		Units: []models.Unit{{Quantity: 2, Measure: "l", Expiry: "2025-07-01"}},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("GetData() mismatch (-want +got):\n%s", diff)
	}
}

func TestAddForm_PickOtherList(t *testing.T) {
	f := NewAddForm(models.ListInventory, components.GardenPalette)
	typeInto(f, "Rice")
	f.HandleKey("tab")
	f.HandleKey("right")

	got, err := f.GetData()
	if err != nil {
		t.Fatalf("GetData() error = %v", err)
	}
	if got.Type != models.ListShopping {
		t.Errorf("Type = %v, want shopping", got.Type)
	}
	if got.Units[0].Quantity != 1 {
		t.Errorf("default quantity = %d, want 1", got.Units[0].Quantity)
	}
}

func TestAddForm_Validation(t *testing.T) {
	f := NewAddForm(models.ListInventory, components.GardenPalette)
	f.HandleKey("tab")
	f.HandleKey("tab")
	f.HandleKey("backspace")
	typeInto(f, "x")
	f.HandleKey("tab")
	f.HandleKey("tab")
	typeInto(f, "next week")

	_, err := f.GetData()
	if err == nil {
		t.Fatal("expected validation error")
	}
	for _, want := range []string{"name is required", "positive whole number", "unrecognised expiry"} {
		if !strings.Contains(err.Error(), want) {
			t.Errorf("error %q missing %q", err, want)
		}
	}

	f.HandleKey("ctrl+s")
	f.Reject(err)
	if f.IsSubmitted() {
		t.Error("Reject should keep the form open")
	}
	if !strings.Contains(f.Render(), "name is required") {
		t.Error("expected rejection in render")
	}
}
