package inventory

import (
	"strings"

	"github.com/larder/larder/internal/models"
)

// HasExpiryMismatch reports whether a partly filled expiry column disagrees
// with the number of units it should describe. Expiry is optional, so a
// column with nothing filled in is always fine.
func HasExpiryMismatch(expiries []string, expected int) bool {
	filled := 0
	for _, e := range expiries {
		if isFilled(e) {
			filled++
		}
	}
	if filled == 0 {
		return false
	}
	return filled < expected || len(expiries) != expected
}

// HasQuantityMismatch reports whether the quantity and unit columns are
// inconsistent: some rows filled but fewer than expected, or a row with only
// one of quantity and unit.
func HasQuantityMismatch(quantityText, unit []string, expected int) bool {
	n := max(len(quantityText), len(unit))
	touched := 0
	for i := 0; i < n; i++ {
		q := i < len(quantityText) && isFilled(quantityText[i])
		u := i < len(unit) && isFilled(unit[i])
		if !q && !u {
			continue
		}
		if q != u {
			return true
		}
		touched++
	}
	return touched > 0 && touched < expected
}

// Mismatch holds both checks for a draft.
type Mismatch struct {
	Expiry   bool
	Quantity bool
}

// Any reports whether either check failed.
func (m Mismatch) Any() bool {
	return m.Expiry || m.Quantity
}

// CheckDraft runs both checks against the number of lots the draft was
// opened with.
func CheckDraft(d models.DraftRow) Mismatch {
	rows := d.ExpectedRows()
	return Mismatch{
		Expiry:   HasExpiryMismatch(d.Expiries, rows),
		Quantity: HasQuantityMismatch(d.QuantityText, d.Unit, rows),
	}
}

func isFilled(s string) bool {
	return strings.TrimSpace(s) != ""
}
