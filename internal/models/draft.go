package models

import (
	"fmt"
	"strconv"
	"strings"
)

// DraftRow is the editable form of a shopping entry while it is being moved
// into the inventory. The four slices are parallel: index i across all of
// them describes one logical row.
type DraftRow struct {
	EntryID string
	Name    string

	// Expected is how many lots the source entry had. Zero means the draft
	// describes whatever rows it holds.
	Expected int

	QuantityText []string
	Quantity     []int
	Unit         []string
	Expiries     []string
}

// Field names one of the four parallel slices of a DraftRow.
type Field int

const (
	FieldQuantityText Field = iota + 1
	FieldQuantity
	FieldUnit
	FieldExpiries
)

func (f Field) String() string {
	switch f {
	case FieldQuantityText:
		return "quantityText"
	case FieldQuantity:
		return "quantity"
	case FieldUnit:
		return "unit"
	case FieldExpiries:
		return "expiries"
	default:
		return fmt.Sprintf("Field(%d)", int(f))
	}
}

// Edit is a positional change to one field of a DraftRow. Edits are built
// with the Set* constructors so the value always matches the field's type.
type Edit struct {
	field       Field
	index       int
	text        string
	number      int
	insertAfter bool
}

// SetQuantityText replaces or inserts a quantity text cell.
func SetQuantityText(index int, v string) Edit {
	return Edit{field: FieldQuantityText, index: index, text: v}
}

// SetQuantity replaces or inserts a numeric quantity cell.
func SetQuantity(index int, v int) Edit {
	return Edit{field: FieldQuantity, index: index, number: v}
}

// SetUnit replaces or inserts a unit cell.
func SetUnit(index int, v string) Edit {
	return Edit{field: FieldUnit, index: index, text: v}
}

// SetExpiry replaces or inserts an expiry cell.
func SetExpiry(index int, v string) Edit {
	return Edit{field: FieldExpiries, index: index, text: v}
}

// InsertAfter turns the edit into an insertion right after its index.
func (e Edit) InsertAfter() Edit {
	e.insertAfter = true
	return e
}

// Field returns the field the edit targets.
func (e Edit) Field() Field { return e.field }

// Index returns the position the edit targets.
func (e Edit) Index() int { return e.index }

// IsInsert reports whether the edit inserts rather than replaces.
func (e Edit) IsInsert() bool { return e.insertAfter }

// QuantityTextEdits sets the text cell and its derived numeric cell together.
func QuantityTextEdits(index int, text string) []Edit {
	return []Edit{
		SetQuantityText(index, text),
		SetQuantity(index, ParseQuantity(text)),
	}
}

// InsertBlankRow returns the batch that adds an empty row after index in all
// four fields at once.
func InsertBlankRow(index int) []Edit {
	return []Edit{
		SetQuantityText(index, "").InsertAfter(),
		SetQuantity(index, 0).InsertAfter(),
		SetUnit(index, "").InsertAfter(),
		SetExpiry(index, "").InsertAfter(),
	}
}

// ParseQuantity derives the numeric quantity from user text. Anything that is
// not a non-negative integer counts as zero.
func ParseQuantity(text string) int {
	n, err := strconv.Atoi(strings.TrimSpace(text))
	if err != nil || n < 0 {
		return 0
	}
	return n
}

// Rows returns the number of logical rows, taken from the quantity text.
func (d DraftRow) Rows() int {
	return len(d.QuantityText)
}

// ExpectedRows returns the number of rows the mismatch checks compare
// against.
func (d DraftRow) ExpectedRows() int {
	if d.Expected > 0 {
		return d.Expected
	}
	return d.Rows()
}

// Aligned reports whether all four slices have the same length.
func (d DraftRow) Aligned() bool {
	n := len(d.QuantityText)
	return len(d.Quantity) == n && len(d.Unit) == n && len(d.Expiries) == n
}

// Clone returns a copy that shares no backing arrays with d.
func (d DraftRow) Clone() DraftRow {
	d.QuantityText = append([]string{}, d.QuantityText...)
	d.Quantity = append([]int{}, d.Quantity...)
	d.Unit = append([]string{}, d.Unit...)
	d.Expiries = append([]string{}, d.Expiries...)
	return d
}

// Apply returns a new DraftRow with the edits applied in order. The receiver
// is left untouched.
func (d DraftRow) Apply(edits ...Edit) DraftRow {
	out := d.Clone()
	for _, e := range edits {
		switch e.field {
		case FieldQuantityText:
			out.QuantityText = applyEdit(out.QuantityText, e, e.text)
		case FieldQuantity:
			out.Quantity = applyEdit(out.Quantity, e, e.number)
		case FieldUnit:
			out.Unit = applyEdit(out.Unit, e, e.text)
		case FieldExpiries:
			out.Expiries = applyEdit(out.Expiries, e, e.text)
		default:
			// Only a zero Edit gets here.
			panic(fmt.Sprintf("draft edit on unknown field %v", e.field))
		}
	}
	return out
}

func applyEdit[T any](s []T, e Edit, v T) []T {
	if !e.insertAfter {
		if e.index < 0 || e.index >= len(s) {
			return s
		}
		s[e.index] = v
		return s
	}

	pos := e.index + 1
	if pos < 0 {
		pos = 0
	}
	if pos > len(s) {
		pos = len(s)
	}
	s = append(s, v)
	copy(s[pos+1:], s[pos:])
	s[pos] = v
	return s
}

// ApplyDraftEdits applies edits to the draft in the given slot and returns a
// new slice of drafts. Other slots are shared with the input, the edited slot
// is a fresh value. An out-of-range slot returns drafts unchanged.
func ApplyDraftEdits(drafts []DraftRow, slot int, edits ...Edit) []DraftRow {
	if slot < 0 || slot >= len(drafts) {
		return drafts
	}
	out := make([]DraftRow, len(drafts))
	copy(out, drafts)
	out[slot] = drafts[slot].Apply(edits...)
	return out
}

// NewDraftFromEntry builds a draft with one row per unit of the entry. Scalar
// entries become a single row.
func NewDraftFromEntry(e *InventoryEntry) DraftRow {
	d := DraftRow{EntryID: e.ID, Name: e.Name, Expected: max(len(e.Units), 1)}
	if e.IsScalar() {
		d.QuantityText = []string{strconv.Itoa(e.Amount)}
		d.Quantity = []int{e.Amount}
		d.Unit = []string{""}
		d.Expiries = []string{""}
		return d
	}
	for _, u := range e.Units {
		d.QuantityText = append(d.QuantityText, strconv.Itoa(u.Quantity))
		d.Quantity = append(d.Quantity, u.Quantity)
		d.Unit = append(d.Unit, u.Measure)
		d.Expiries = append(d.Expiries, u.Expiry)
	}
	return d
}

// ToUnits converts the draft rows into inventory units. Rows with a zero
// quantity are skipped.
func (d DraftRow) ToUnits() []Unit {
	units := make([]Unit, 0, d.Rows())
	for i := 0; i < d.Rows(); i++ {
		q := at(d.Quantity, i)
		if q <= 0 {
			continue
		}
		units = append(units, Unit{
			Quantity: q,
			Measure:  strings.TrimSpace(at(d.Unit, i)),
			Expiry:   strings.TrimSpace(at(d.Expiries, i)),
		})
	}
	return units
}

func at[T any](s []T, i int) T {
	var zero T
	if i < 0 || i >= len(s) {
		return zero
	}
	return s[i]
}
