package lists

import (
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/larder/larder/internal/models"
	"github.com/larder/larder/internal/services/inventory"
)

func TestExpiringView(t *testing.T) {
	v := NewExpiringView(3)
	if !strings.Contains(v.Render(100, 30), "Loading...") {
		t.Error("expected loading state")
	}

	v.SetUnits(nil)
	if !strings.Contains(v.Render(100, 30), "Nothing expires soon.") {
		t.Error("expected empty state")
	}

	v.SetUnits([]inventory.ExpiringUnit{
		{EntryID: "yog", Name: "Yoghurt", Unit: models.Unit{Quantity: 2, Measure: "pcs"}, Expiry: time.Date(2025, 6, 15, 0, 0, 0, 0, time.UTC), DaysLeft: 0},
		{EntryID: "ham", Name: "Ham", Unit: models.Unit{Quantity: 200, Measure: "g"}, Expiry: time.Date(2025, 6, 17, 0, 0, 0, 0, time.UTC), DaysLeft: 2},
	})

	out := v.Render(100, 30)
	for _, want := range []string{"EXPIRING SOON", "Within 3 days", "Yoghurt", "today", "200 g", "2025-06-17"} {
		if !strings.Contains(out, want) {
			t.Errorf("render missing %q:\n%s", want, out)
		}
	}

	v.MoveDown()
	if u, ok := v.Selected(); !ok || u.EntryID != "ham" {
		t.Errorf("Selected() = %v, %v", u, ok)
	}
	v.MoveUp()
	if u, _ := v.Selected(); u.EntryID != "yog" {
		t.Errorf("Selected() = %v", u)
	}

	v.SetError(errors.New("database is locked"))
	if !strings.Contains(v.Render(100, 30), "database is locked") {
		t.Error("expected error in render")
	}
}
