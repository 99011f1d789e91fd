package inventory

import (
	"time"

	"github.com/larder/larder/internal/models"
	"github.com/larder/larder/internal/util"
)

// Partition is the result of splitting a list into the three sections the
// list view shows.
type Partition struct {
	Checked   []models.InventoryEntry
	Unchecked []models.InventoryEntry
	Expired   []models.InventoryEntry
}

// Len returns the number of records across all sections.
func (p Partition) Len() int {
	return len(p.Checked) + len(p.Unchecked) + len(p.Expired)
}

// Split filters items to the given list and partitions each entry's units
// into expired, remaining and used records.
//
// Units are consumed in array order: the checked count is spent on the first
// unit first, then the next, splitting the unit where the budget runs out.
// On the inventory list a unit whose expiry is before now is pulled out as
// expired before any of the budget is spent on it. Expiry is never checked
// on the shopping list.
//
// Each entry yields at most one record per section. Empty sections are left
// out. The input is not modified.
func Split(items []models.InventoryEntry, tab models.ListType, now time.Time) Partition {
	var p Partition
	for i := range items {
		item := &items[i]
		if item.Type != tab {
			continue
		}

		if item.IsScalar() {
			rec := item.Clone()
			if rec.Checked {
				p.Checked = append(p.Checked, rec)
			} else {
				p.Unchecked = append(p.Unchecked, rec)
			}
			continue
		}

		parts := partitionUnits(item, tab, now)

		if rec, ok := bucket(item, parts.expired, false); ok {
			p.Expired = append(p.Expired, rec)
		}
		if rec, ok := bucket(item, parts.remaining, false); ok {
			p.Unchecked = append(p.Unchecked, rec)
		}
		if rec, ok := bucket(item, parts.used, true); ok {
			p.Checked = append(p.Checked, rec)
		}
	}
	return p
}

// unitParts is one entry's units sorted into sections. kept holds every
// unit that was not used, in the entry's original order.
type unitParts struct {
	expired, remaining, used, kept []models.Unit
}

func partitionUnits(item *models.InventoryEntry, tab models.ListType, now time.Time) unitParts {
	var p unitParts
	budget := item.CheckedCount
	for _, u := range item.Units {
		if tab != models.ListShopping && util.IsExpired(u.Expiry, now) {
			p.expired = append(p.expired, u)
			p.kept = append(p.kept, u)
			continue
		}
		if budget <= 0 {
			p.remaining = append(p.remaining, u)
			p.kept = append(p.kept, u)
			continue
		}
		if u.Quantity > budget {
			usedPart, rest := u, u
			usedPart.Quantity = budget
			rest.Quantity = u.Quantity - budget
			p.used = append(p.used, usedPart)
			p.remaining = append(p.remaining, rest)
			p.kept = append(p.kept, rest)
			budget = 0
			continue
		}
		p.used = append(p.used, u)
		budget -= u.Quantity
	}
	return p
}

// bucket builds the record for one section of a split entry.
func bucket(parent *models.InventoryEntry, units []models.Unit, checked bool) (models.InventoryEntry, bool) {
	if len(units) == 0 {
		return models.InventoryEntry{}, false
	}
	rec := parent.Clone()
	rec.Units = units
	rec.Checked = checked
	rec.CheckedCount = 0
	if checked {
		rec.CheckedCount = rec.Total()
	}
	if rec.QuantityDisplay == nil {
		total := rec.Total()
		rec.QuantityDisplay = &total
	}
	return rec, true
}
