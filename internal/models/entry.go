// Package models defines the list entries and drafts that Larder persists.
package models

import (
	"fmt"
	"time"
)

// ListType identifies which list an entry belongs to.
type ListType string

const (
	ListInventory ListType = "inventory"
	ListShopping  ListType = "shopping"
)

func (l ListType) String() string {
	return string(l)
}

// Valid reports whether l is one of the known list types.
func (l ListType) Valid() bool {
	return l == ListInventory || l == ListShopping
}

// ParseListType converts a stored or configured value to a ListType.
func ParseListType(s string) (ListType, error) {
	l := ListType(s)
	if !l.Valid() {
		return "", fmt.Errorf("unknown list type %q", s)
	}
	return l, nil
}

// Unit is one physical lot of an entry, e.g. a carton of milk bought on a
// given day. Expiry is a date string; empty means the unit does not expire.
type Unit struct {
	Quantity int
	Expiry   string
	Measure  string // "g", "ml", "pcs"
}

// InventoryEntry is a named item on either the inventory or the shopping list.
type InventoryEntry struct {
	ID   string
	Name string
	Type ListType

	// Units holds the per-lot quantities in the order they were added.
	// Entries created before lots existed carry a scalar Amount instead and
	// leave Units nil.
	Units  []Unit
	Amount int

	CheckedCount    int
	QuantityDisplay *int // Precomputed total shown in the list, if any
	Checked         bool

	CreatedAt time.Time
	UpdatedAt time.Time
}

// IsScalar reports whether the entry uses the legacy single Amount.
func (e *InventoryEntry) IsScalar() bool {
	return e.Units == nil
}

// Total returns the sum of all unit quantities.
func (e *InventoryEntry) Total() int {
	if e.IsScalar() {
		return e.Amount
	}
	total := 0
	for _, u := range e.Units {
		total += u.Quantity
	}
	return total
}

// Quantities returns the per-unit quantities as a parallel slice.
func (e *InventoryEntry) Quantities() []int {
	out := make([]int, len(e.Units))
	for i, u := range e.Units {
		out[i] = u.Quantity
	}
	return out
}

// Expiries returns the per-unit expiry strings as a parallel slice.
func (e *InventoryEntry) Expiries() []string {
	out := make([]string, len(e.Units))
	for i, u := range e.Units {
		out[i] = u.Expiry
	}
	return out
}

// DisplayQuantity is the number shown next to the entry name.
func (e *InventoryEntry) DisplayQuantity() int {
	if e.QuantityDisplay != nil {
		return *e.QuantityDisplay
	}
	return e.Total()
}

// Measure returns the measure of the first unit that has one.
func (e *InventoryEntry) Measure() string {
	for _, u := range e.Units {
		if u.Measure != "" {
			return u.Measure
		}
	}
	return ""
}

// Validate checks the entry before it is written.
func (e *InventoryEntry) Validate() error {
	if e.ID == "" {
		return fmt.Errorf("entry id is required")
	}
	if e.Name == "" {
		return fmt.Errorf("entry name is required")
	}
	if !e.Type.Valid() {
		return fmt.Errorf("invalid list type %q", e.Type)
	}
	for i, u := range e.Units {
		if u.Quantity < 0 {
			return fmt.Errorf("unit %d: negative quantity %d", i, u.Quantity)
		}
	}
	if e.CheckedCount < 0 || e.CheckedCount > e.Total() {
		return fmt.Errorf("checked count %d outside 0..%d", e.CheckedCount, e.Total())
	}
	return nil
}

// Clone returns a deep copy of the entry.
func (e InventoryEntry) Clone() InventoryEntry {
	if e.Units != nil {
		e.Units = append([]Unit{}, e.Units...)
	}
	if e.QuantityDisplay != nil {
		v := *e.QuantityDisplay
		e.QuantityDisplay = &v
	}
	return e
}

// EntryFilter restricts which entries a listing returns.
type EntryFilter struct {
	Type ListType
	Name string // Case-insensitive substring
}
