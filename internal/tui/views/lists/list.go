// Package lists provides the TUI views for the inventory and shopping lists.
package lists

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/larder/larder/internal/models"
	"github.com/larder/larder/internal/services/inventory"
	"github.com/larder/larder/internal/tui/components"
	"github.com/larder/larder/internal/util"
)

// Section is one block of a list view.
type Section int

const (
	SectionExpired Section = iota
	SectionOpen
	SectionChecked
)

// Title returns the heading for the section on the given list.
func (s Section) Title(tab models.ListType) string {
	switch s {
	case SectionExpired:
		return "Expired"
	case SectionOpen:
		if tab == models.ListShopping {
			return "To buy"
		}
		return "To use"
	default:
		return "Checked"
	}
}

// row is one record of the flattened list, in display order.
type row struct {
	section Section
	entry   models.InventoryEntry
}

// DisplayOptions controls how expiry dates are shown.
type DisplayOptions struct {
	DateFormat string
	Relative   bool
}

// ListView shows one list split into expired, open and checked sections
// with a single cursor running through all of them.
type ListView struct {
	tab     models.ListType
	part    inventory.Partition
	rows    []row
	cursor  int
	now     time.Time
	opts    DisplayOptions
	palette components.Palette
	tables  [3]*components.Table
	loaded  bool
	err     error
}

// NewListView creates a view for the given list.
func NewListView(tab models.ListType) *ListView {
	v := &ListView{
		tab:     tab,
		opts:    DisplayOptions{DateFormat: util.DateFormat, Relative: true},
		palette: components.GardenPalette,
	}
	for i := range v.tables {
		v.tables[i] = components.NewTable([]components.Column{
			{Title: "Item", Width: 24},
			{Title: "Qty", Width: 8, Align: lipgloss.Right},
			{Title: "Lots", Width: 4, Align: lipgloss.Right},
			{Title: "Expires", Width: 14},
		})
	}
	return v
}

// Tab returns the list this view shows.
func (v *ListView) Tab() models.ListType {
	return v.tab
}

// SetPalette restyles the view.
func (v *ListView) SetPalette(p components.Palette) {
	v.palette = p
	for _, t := range v.tables {
		t.SetPalette(p)
	}
}

// SetDisplay sets the expiry display options.
func (v *ListView) SetDisplay(opts DisplayOptions) {
	if opts.DateFormat == "" {
		opts.DateFormat = util.DateFormat
	}
	v.opts = opts
	v.refreshRows()
}

// SetNow sets the time relative expiry labels are computed from.
func (v *ListView) SetNow(now time.Time) {
	v.now = now
	v.refreshRows()
}

// SetError shows a load error in place of the list.
func (v *ListView) SetError(err error) {
	v.err = err
}

// SetPartition replaces the shown records. The cursor stays on the same
// entry and section when it still exists.
func (v *ListView) SetPartition(p inventory.Partition) {
	prev, hadPrev := v.current()

	v.part = p
	v.loaded = true
	v.err = nil
	v.rows = v.rows[:0]
	for _, s := range v.sections() {
		for _, e := range v.records(s) {
			v.rows = append(v.rows, row{section: s, entry: e})
		}
	}

	v.cursor = min(v.cursor, max(len(v.rows)-1, 0))
	if hadPrev {
		for i, r := range v.rows {
			if r.entry.ID == prev.entry.ID && r.section == prev.section {
				v.cursor = i
				break
			}
		}
	}
	v.refreshRows()
}

// Partition returns the records currently shown.
func (v *ListView) Partition() inventory.Partition {
	return v.part
}

func (v *ListView) sections() []Section {
	if v.tab == models.ListShopping {
		return []Section{SectionOpen, SectionChecked}
	}
	return []Section{SectionExpired, SectionOpen, SectionChecked}
}

func (v *ListView) records(s Section) []models.InventoryEntry {
	switch s {
	case SectionExpired:
		return v.part.Expired
	case SectionOpen:
		return v.part.Unchecked
	default:
		return v.part.Checked
	}
}

func (v *ListView) current() (row, bool) {
	if v.cursor < 0 || v.cursor >= len(v.rows) {
		return row{}, false
	}
	return v.rows[v.cursor], true
}

// Selected returns the record under the cursor, or nil for an empty list.
func (v *ListView) Selected() *models.InventoryEntry {
	r, ok := v.current()
	if !ok {
		return nil
	}
	e := r.entry
	return &e
}

// SelectedSection returns the section the cursor is in.
func (v *ListView) SelectedSection() (Section, bool) {
	r, ok := v.current()
	return r.section, ok
}

// CheckedCount returns how much of the entry is currently checked, as shown
// in the checked section.
func (v *ListView) CheckedCount(id string) int {
	for _, e := range v.part.Checked {
		if e.ID != id {
			continue
		}
		if e.IsScalar() {
			return 1
		}
		return e.CheckedCount
	}
	return 0
}

// Len returns the number of records shown.
func (v *ListView) Len() int {
	return len(v.rows)
}

// MoveUp moves the cursor up.
func (v *ListView) MoveUp() {
	if v.cursor > 0 {
		v.cursor--
		v.refreshRows()
	}
}

// MoveDown moves the cursor down.
func (v *ListView) MoveDown() {
	if v.cursor < len(v.rows)-1 {
		v.cursor++
		v.refreshRows()
	}
}

func (v *ListView) refreshRows() {
	cur, ok := v.current()
	offset := 0
	for _, s := range v.sections() {
		recs := v.records(s)
		cells := make([][]string, len(recs))
		for i := range recs {
			cells[i] = v.cells(&recs[i])
		}
		t := v.tables[s]
		t.SetRows(cells)
		focused := ok && cur.section == s
		t.Focus(focused)
		if focused {
			t.Select(v.cursor - offset)
		}
		offset += len(recs)
	}
}

func (v *ListView) cells(e *models.InventoryEntry) []string {
	qty := fmt.Sprintf("%d", e.DisplayQuantity())
	if m := e.Measure(); m != "" {
		qty += " " + m
	}
	lots := "-"
	if !e.IsScalar() {
		lots = fmt.Sprintf("%d", len(e.Units))
	}
	return []string{e.Name, qty, lots, v.expiry(e)}
}

// expiry renders the soonest expiry among the record's units.
func (v *ListView) expiry(e *models.InventoryEntry) string {
	var soonest time.Time
	raw := ""
	for _, u := range e.Units {
		t, err := util.ParseExpiry(u.Expiry)
		if err != nil {
			continue
		}
		if raw == "" || t.Before(soonest) {
			soonest, raw = t, u.Expiry
		}
	}
	switch {
	case raw == "":
		return "-"
	case v.opts.Relative && !v.now.IsZero():
		return util.ExpiryLabel(raw, v.now)
	default:
		return soonest.Format(v.opts.DateFormat)
	}
}

// Render renders the list view.
func (v *ListView) Render(width, height int) string {
	p := v.palette
	titleStyle := lipgloss.NewStyle().Foreground(p.Accent).Bold(true)
	labelStyle := lipgloss.NewStyle().Foreground(p.Secondary)
	errStyle := lipgloss.NewStyle().Foreground(p.Error)

	var b strings.Builder
	b.WriteString(titleStyle.Render(fmt.Sprintf("=== %s ===", strings.ToUpper(v.tab.String()))))
	b.WriteString("\n\n")

	if v.err != nil {
		b.WriteString(errStyle.Render("Error: " + v.err.Error()))
		b.WriteString("\n")
		return b.String()
	}
	if !v.loaded {
		b.WriteString(labelStyle.Render("Loading..."))
		b.WriteString("\n")
		return b.String()
	}
	if len(v.rows) == 0 {
		b.WriteString(labelStyle.Render("Nothing on this list."))
		b.WriteString("\n")
		return b.String()
	}

	// Each shown section costs a heading, table header, rule and gap.
	shown := 0
	for _, s := range v.sections() {
		if len(v.records(s)) > 0 {
			shown++
		}
	}
	perSection := max((height-2)/max(shown, 1)-4, 1)

	for _, s := range v.sections() {
		recs := v.records(s)
		if len(recs) == 0 {
			continue
		}
		heading := fmt.Sprintf("%s (%d)", s.Title(v.tab), len(recs))
		style := labelStyle.Bold(true)
		if s == SectionExpired {
			style = errStyle.Bold(true)
		}
		b.WriteString(style.Render(heading))
		b.WriteString("\n")
		t := v.tables[s]
		t.SetVisibleRows(perSection)
		t.Select(t.Selected())
		b.WriteString(t.Render())
		b.WriteString("\n")
	}

	return b.String()
}
