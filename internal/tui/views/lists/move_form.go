package lists

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/larder/larder/internal/models"
	"github.com/larder/larder/internal/services/inventory"
	"github.com/larder/larder/internal/tui/components"
	"github.com/larder/larder/internal/util"
)

// MoveAction is what the user chose to do with a move draft.
type MoveAction int

const (
	MoveEditing MoveAction = iota
	MoveSave               // Submit the draft
	MoveKeep               // Close the form, keep the draft for later
	MoveDiscard            // Drop the draft
)

const (
	colQuantity = iota
	colMeasure
	colExpiry
	numCols
)

var moveColumns = [numCols]struct {
	title string
	width int
}{
	{"Qty", 8},
	{"Measure", 10},
	{"Expiry", 12},
}

// MoveForm edits a draft row by row before it is moved into the inventory.
// Every change becomes a draft edit; the collected edits are handed back to
// the caller to store.
type MoveForm struct {
	slot    int
	draft   models.DraftRow
	pending []models.Edit

	row, col int
	cell     *components.Input

	action  MoveAction
	warning string
	palette components.Palette
}

// NewMoveForm opens a form over the draft stored in slot.
func NewMoveForm(slot int, draft models.DraftRow) *MoveForm {
	f := &MoveForm{
		slot:    slot,
		draft:   draft.Clone(),
		palette: components.GardenPalette,
	}
	if f.draft.Rows() == 0 {
		f.edit(models.InsertBlankRow(-1)...)
	}
	f.loadCell()
	return f
}

// SetPalette restyles the form.
func (f *MoveForm) SetPalette(p components.Palette) {
	f.palette = p
	f.cell.SetPalette(p)
}

// Slot returns the draft slot the form edits.
func (f *MoveForm) Slot() int {
	return f.slot
}

// Draft returns the draft with every edit so far applied.
func (f *MoveForm) Draft() models.DraftRow {
	return f.draft
}

// Edits returns the edits made since the form opened, in order.
func (f *MoveForm) Edits() []models.Edit {
	return f.pending
}

// Action returns what the user chose. It stays MoveEditing while the form
// is open.
func (f *MoveForm) Action() MoveAction {
	return f.action
}

// Resume reopens the form after the caller refused to act on it, showing
// msg.
func (f *MoveForm) Resume(msg string) {
	f.action = MoveEditing
	f.warning = msg
}

// Cursor returns the focused row and column.
func (f *MoveForm) Cursor() (row, col int) {
	return f.row, f.col
}

func (f *MoveForm) edit(edits ...models.Edit) {
	f.draft = f.draft.Apply(edits...)
	f.pending = append(f.pending, edits...)
}

func (f *MoveForm) cellValue(row, col int) string {
	var s []string
	switch col {
	case colQuantity:
		s = f.draft.QuantityText
	case colMeasure:
		s = f.draft.Unit
	default:
		s = f.draft.Expiries
	}
	if row < 0 || row >= len(s) {
		return ""
	}
	return s[row]
}

func (f *MoveForm) loadCell() {
	w := moveColumns[f.col].width
	f.cell = components.NewInput(moveColumns[f.col].title).
		SetWidth(w).
		SetMaxLength(w + 8).
		SetPalette(f.palette).
		SetValue(f.cellValue(f.row, f.col))
	if f.col == colExpiry {
		f.cell.SetPlaceholder(util.DateFormat)
	}
	f.cell.Focus(true)
}

// cellEdits returns the edits that store the focused cell's text, or nil
// if it has not changed.
func (f *MoveForm) cellEdits() []models.Edit {
	v := f.cell.Value()
	if v == f.cellValue(f.row, f.col) {
		return nil
	}
	switch f.col {
	case colQuantity:
		return models.QuantityTextEdits(f.row, v)
	case colMeasure:
		return []models.Edit{models.SetUnit(f.row, v)}
	default:
		return []models.Edit{models.SetExpiry(f.row, v)}
	}
}

func (f *MoveForm) commitCell() {
	if edits := f.cellEdits(); len(edits) > 0 {
		f.edit(edits...)
	}
}

func (f *MoveForm) moveTo(row, col int) {
	f.commitCell()
	f.row = min(max(row, 0), f.draft.Rows()-1)
	f.col = col
	f.loadCell()
}

// HandleKey handles a key press.
func (f *MoveForm) HandleKey(key string) {
	switch key {
	case "tab":
		if f.col < numCols-1 {
			f.moveTo(f.row, f.col+1)
		} else if f.row < f.draft.Rows()-1 {
			f.moveTo(f.row+1, 0)
		}
	case "shift+tab":
		if f.col > 0 {
			f.moveTo(f.row, f.col-1)
		} else if f.row > 0 {
			f.moveTo(f.row-1, numCols-1)
		}
	case "up":
		f.moveTo(f.row-1, f.col)
	case "down", "enter":
		f.moveTo(f.row+1, f.col)
	case "ctrl+n":
		f.commitCell()
		f.edit(models.InsertBlankRow(f.row)...)
		f.moveTo(f.row+1, colQuantity)
	case "ctrl+s":
		f.commitCell()
		if m := inventory.CheckDraft(f.draft); m.Any() {
			f.warning = "Fix the warnings above before moving."
			return
		}
		if len(f.draft.ToUnits()) == 0 {
			f.warning = "Enter a quantity for at least one row."
			return
		}
		f.warning = ""
		f.action = MoveSave
	case "esc":
		f.commitCell()
		f.action = MoveKeep
	case "ctrl+x":
		f.action = MoveDiscard
	default:
		f.cell.HandleKey(key)
	}
}

// Warnings returns the problems with the current draft, one line each. The
// quantity and expiry mismatches block saving; an unreadable date does not.
func (f *MoveForm) Warnings() []string {
	d := f.draft.Apply(f.cellEdits()...)

	var out []string
	m := inventory.CheckDraft(d)
	if m.Quantity {
		out = append(out, "Fill in quantity and measure on every row, or on none.")
	}
	if m.Expiry {
		out = append(out, expiryWarning(d.ExpectedRows()))
	}
	for i, e := range d.Expiries {
		if strings.TrimSpace(e) == "" {
			continue
		}
		if _, err := util.ParseExpiry(e); err != nil {
			out = append(out, fmt.Sprintf("Row %d: %q is not a date and will never expire.", i+1, e))
		}
	}
	return out
}

func expiryWarning(lots int) string {
	if lots == 1 {
		return "Dates need exactly 1 row; clear them to split the lot."
	}
	return fmt.Sprintf("Dates need exactly %d rows, one per lot, or none at all.", lots)
}

// Render renders the form.
func (f *MoveForm) Render(width int) string {
	p := f.palette
	titleStyle := lipgloss.NewStyle().Foreground(p.Accent).Bold(true)
	labelStyle := lipgloss.NewStyle().Foreground(p.Secondary)
	valueStyle := lipgloss.NewStyle().Foreground(p.Primary)
	warnStyle := lipgloss.NewStyle().Foreground(p.Warning)
	errStyle := lipgloss.NewStyle().Foreground(p.Error)

	var b strings.Builder
	b.WriteString(titleStyle.Render(fmt.Sprintf("=== MOVE TO INVENTORY: %s ===", f.draft.Name)))
	b.WriteString("\n\n")

	b.WriteString(labelStyle.Render("    "))
	for _, c := range moveColumns {
		b.WriteString(labelStyle.Bold(true).Render(pad(c.title, c.width)))
		b.WriteString("  ")
	}
	b.WriteString("\n")

	for r := 0; r < f.draft.Rows(); r++ {
		b.WriteString(labelStyle.Render(fmt.Sprintf("%2d  ", r+1)))
		for c := 0; c < numCols; c++ {
			if r == f.row && c == f.col {
				b.WriteString(f.cell.View())
			} else {
				b.WriteString(valueStyle.Render(pad(f.cellValue(r, c), moveColumns[c].width)))
			}
			b.WriteString("  ")
		}
		b.WriteString("\n")
	}

	if warnings := f.Warnings(); len(warnings) > 0 {
		b.WriteString("\n")
		for _, w := range warnings {
			b.WriteString(warnStyle.Render("! " + w))
			b.WriteString("\n")
		}
	}
	if f.warning != "" {
		b.WriteString("\n")
		b.WriteString(errStyle.Render(f.warning))
		b.WriteString("\n")
	}

	help := "Tab:Next cell  Ctrl+N:New row  Ctrl+S:Move  Esc:Keep draft  Ctrl+X:Discard"
	if width < 80 {
		help = "Tab  ^N:Row  ^S:Move  Esc:Keep  ^X:Drop"
	}
	b.WriteString("\n")
	b.WriteString(labelStyle.Render(help))
	return b.String()
}

func pad(s string, w int) string {
	r := []rune(s)
	if len(r) > w {
		return string(r[:w-1]) + "…"
	}
	return s + strings.Repeat(" ", w-len(r))
}
