package inventory

import (
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/larder/larder/internal/models"
)

var splitNow = time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC)

func entry(id string, tab models.ListType, checked int, units ...models.Unit) models.InventoryEntry {
	return models.InventoryEntry{
		ID:           id,
		Name:         id,
		Type:         tab,
		Units:        units,
		CheckedCount: checked,
	}
}

func unit(q int, expiry string) models.Unit {
	return models.Unit{Quantity: q, Expiry: expiry}
}

func quantities(records []models.InventoryEntry) [][]int {
	var out [][]int
	for _, r := range records {
		out = append(out, r.Quantities())
	}
	return out
}

func TestSplit_FIFOByArrayOrder(t *testing.T) {
	items := []models.InventoryEntry{
		entry("milk", models.ListInventory, 4, unit(3, "2099-12-01"), unit(2, "2099-12-02")),
	}

	p := Split(items, models.ListInventory, splitNow)

	if diff := cmp.Diff([][]int{{3, 1}}, quantities(p.Checked)); diff != "" {
		t.Errorf("checked mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([][]int{{1}}, quantities(p.Unchecked)); diff != "" {
		t.Errorf("unchecked mismatch (-want +got):\n%s", diff)
	}
	if len(p.Expired) != 0 {
		t.Errorf("expected no expired records, got %d", len(p.Expired))
	}

	used := p.Checked[0]
	if !used.Checked || used.CheckedCount != 4 || *used.QuantityDisplay != 4 {
		t.Errorf("unexpected used record: checked=%v count=%d display=%d",
			used.Checked, used.CheckedCount, *used.QuantityDisplay)
	}
	if diff := cmp.Diff([]string{"2099-12-01", "2099-12-02"}, used.Expiries()); diff != "" {
		t.Errorf("split changed expiries (-want +got):\n%s", diff)
	}

	rest := p.Unchecked[0]
	if rest.Checked || rest.CheckedCount != 0 || *rest.QuantityDisplay != 1 {
		t.Errorf("unexpected remaining record: checked=%v count=%d display=%d",
			rest.Checked, rest.CheckedCount, *rest.QuantityDisplay)
	}
	if rest.Units[0].Expiry != "2099-12-02" {
		t.Errorf("remainder should keep its expiry, got %q", rest.Units[0].Expiry)
	}
}

func TestSplit_Cases(t *testing.T) {
	tests := []struct {
		name          string
		items         []models.InventoryEntry
		tab           models.ListType
		wantChecked   [][]int
		wantUnchecked [][]int
		wantExpired   [][]int
	}{
		{
			name:          "nothing checked",
			items:         []models.InventoryEntry{entry("a", models.ListInventory, 0, unit(1, ""), unit(2, ""))},
			tab:           models.ListInventory,
			wantUnchecked: [][]int{{1, 2}},
		},
		{
			name:        "everything checked",
			items:       []models.InventoryEntry{entry("a", models.ListInventory, 3, unit(1, ""), unit(2, ""))},
			tab:         models.ListInventory,
			wantChecked: [][]int{{1, 2}},
		},
		{
			name: "expired units are pulled out before the budget is spent",
			items: []models.InventoryEntry{
				entry("a", models.ListInventory, 3, unit(2, "2025-06-14"), unit(4, "2025-06-22")),
			},
			tab:           models.ListInventory,
			wantChecked:   [][]int{{3}},
			wantUnchecked: [][]int{{1}},
			wantExpired:   [][]int{{2}},
		},
		{
			name: "expiry is ignored on the shopping list",
			items: []models.InventoryEntry{
				entry("a", models.ListShopping, 0, unit(2, "2001-01-01")),
			},
			tab:           models.ListShopping,
			wantUnchecked: [][]int{{2}},
		},
		{
			name: "malformed date is never expired",
			items: []models.InventoryEntry{
				entry("a", models.ListInventory, 0, unit(2, "not-a-date"), unit(1, "2025-13-45")),
			},
			tab:           models.ListInventory,
			wantUnchecked: [][]int{{2, 1}},
		},
		{
			name: "expiry later today is not expired",
			items: []models.InventoryEntry{
				entry("a", models.ListInventory, 0, unit(1, "2025-06-15T18:00:00Z")),
			},
			tab:           models.ListInventory,
			wantUnchecked: [][]int{{1}},
		},
		{
			name: "other list is filtered out",
			items: []models.InventoryEntry{
				entry("a", models.ListInventory, 0, unit(1, "")),
				entry("b", models.ListShopping, 1, unit(1, "")),
			},
			tab:         models.ListShopping,
			wantChecked: [][]int{{1}},
		},
		{
			name: "records keep entry then split order",
			items: []models.InventoryEntry{
				entry("a", models.ListInventory, 1, unit(2, "")),
				entry("b", models.ListInventory, 1, unit(1, "2020-01-01"), unit(3, "")),
			},
			tab:           models.ListInventory,
			wantChecked:   [][]int{{1}, {1}},
			wantUnchecked: [][]int{{1}, {2}},
			wantExpired:   [][]int{{1}},
		},
		{
			name:  "empty input",
			items: nil,
			tab:   models.ListInventory,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := Split(tt.items, tt.tab, splitNow)

			if diff := cmp.Diff(tt.wantChecked, quantities(p.Checked)); diff != "" {
				t.Errorf("checked mismatch (-want +got):\n%s", diff)
			}
			if diff := cmp.Diff(tt.wantUnchecked, quantities(p.Unchecked)); diff != "" {
				t.Errorf("unchecked mismatch (-want +got):\n%s", diff)
			}
			if diff := cmp.Diff(tt.wantExpired, quantities(p.Expired)); diff != "" {
				t.Errorf("expired mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestSplit_ScalarEntriesPassThrough(t *testing.T) {
	salt := models.InventoryEntry{ID: "salt", Name: "Salt", Type: models.ListInventory, Amount: 1}
	pepper := models.InventoryEntry{ID: "pepper", Name: "Pepper", Type: models.ListInventory, Amount: 2, Checked: true}

	p := Split([]models.InventoryEntry{salt, pepper}, models.ListInventory, splitNow)

	if diff := cmp.Diff([]models.InventoryEntry{salt}, p.Unchecked); diff != "" {
		t.Errorf("unchecked mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]models.InventoryEntry{pepper}, p.Checked); diff != "" {
		t.Errorf("checked mismatch (-want +got):\n%s", diff)
	}
}

func TestSplit_PreservesQuantityDisplay(t *testing.T) {
	shown := 12
	e := entry("eggs", models.ListInventory, 1, unit(6, ""), unit(6, ""))
	e.QuantityDisplay = &shown

	p := Split([]models.InventoryEntry{e}, models.ListInventory, splitNow)

	for _, rec := range append(p.Checked, p.Unchecked...) {
		if rec.QuantityDisplay == nil || *rec.QuantityDisplay != 12 {
			t.Errorf("expected display 12, got %v", rec.QuantityDisplay)
		}
	}
}

func TestSplit_DoesNotModifyInput(t *testing.T) {
	items := []models.InventoryEntry{
		entry("a", models.ListInventory, 2, unit(3, ""), unit(1, "2020-01-01")),
	}
	before := []models.InventoryEntry{items[0].Clone()}

	Split(items, models.ListInventory, splitNow)

	if diff := cmp.Diff(before, items); diff != "" {
		t.Errorf("input modified (-want +got):\n%s", diff)
	}
}

func TestSplit_SumPreservation(t *testing.T) {
	items := []models.InventoryEntry{
		entry("a", models.ListInventory, 4, unit(3, "2099-12-01"), unit(2, "2099-12-02")),
		entry("b", models.ListInventory, 5, unit(1, "2020-01-01"), unit(4, ""), unit(2, "bad")),
		entry("c", models.ListInventory, 0, unit(7, "")),
		entry("d", models.ListInventory, 1, unit(0, ""), unit(2, "")),
	}

	p := Split(items, models.ListInventory, splitNow)

	totals := make(map[string]int)
	for _, records := range [][]models.InventoryEntry{p.Checked, p.Unchecked, p.Expired} {
		for _, r := range records {
			totals[r.ID] += r.Total()
		}
	}
	for _, e := range items {
		if totals[e.ID] != e.Total() {
			t.Errorf("%s: split totals %d, want %d", e.ID, totals[e.ID], e.Total())
		}
	}
}

func TestSplit_IdempotentOnUsedBucket(t *testing.T) {
	items := []models.InventoryEntry{
		entry("a", models.ListInventory, 4, unit(3, "2099-12-01"), unit(2, "2099-12-02")),
	}
	first := Split(items, models.ListInventory, splitNow)

	again := Split(first.Checked, models.ListInventory, splitNow)

	if diff := cmp.Diff(first.Checked, again.Checked); diff != "" {
		t.Errorf("re-split changed used bucket (-want +got):\n%s", diff)
	}
	if again.Len() != len(first.Checked) {
		t.Errorf("re-split produced extra records: %d", again.Len())
	}
}
