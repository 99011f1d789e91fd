package lists

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/larder/larder/internal/services/inventory"
	"github.com/larder/larder/internal/tui/components"
	"github.com/larder/larder/internal/util"
)

// ExpiringView lists inventory units that expire within the configured
// window.
type ExpiringView struct {
	days    int
	units   []inventory.ExpiringUnit
	table   *components.Table
	palette components.Palette
	loaded  bool
	err     error
}

// NewExpiringView creates the view for a window of days.
func NewExpiringView(days int) *ExpiringView {
	table := components.NewTable([]components.Column{
		{Title: "Item", Width: 24},
		{Title: "Qty", Width: 8, Align: lipgloss.Right},
		{Title: "Expires", Width: 10},
		{Title: "Days", Width: 5, Align: lipgloss.Right},
	})
	table.Focus(true)
	return &ExpiringView{days: days, table: table, palette: components.GardenPalette}
}

// SetPalette restyles the view.
func (v *ExpiringView) SetPalette(p components.Palette) {
	v.palette = p
	v.table.SetPalette(p)
}

// Days returns the window in days.
func (v *ExpiringView) Days() int {
	return v.days
}

// SetUnits replaces the listed units.
func (v *ExpiringView) SetUnits(units []inventory.ExpiringUnit) {
	v.units = units
	v.loaded = true
	v.err = nil

	rows := make([][]string, len(units))
	for i, u := range units {
		qty := fmt.Sprintf("%d", u.Unit.Quantity)
		if u.Unit.Measure != "" {
			qty += " " + u.Unit.Measure
		}
		days := fmt.Sprintf("%d", u.DaysLeft)
		if u.DaysLeft == 0 {
			days = "today"
		}
		rows[i] = []string{u.Name, qty, util.FormatDate(u.Expiry), days}
	}
	v.table.SetRows(rows)
}

// SetError shows a load error.
func (v *ExpiringView) SetError(err error) {
	v.err = err
}

// Selected returns the unit under the cursor.
func (v *ExpiringView) Selected() (inventory.ExpiringUnit, bool) {
	i := v.table.Selected()
	if i < 0 || i >= len(v.units) {
		return inventory.ExpiringUnit{}, false
	}
	return v.units[i], true
}

// MoveUp moves the selection up.
func (v *ExpiringView) MoveUp() {
	v.table.MoveUp()
}

// MoveDown moves the selection down.
func (v *ExpiringView) MoveDown() {
	v.table.MoveDown()
}

// Render renders the view.
func (v *ExpiringView) Render(width, height int) string {
	p := v.palette
	titleStyle := lipgloss.NewStyle().Foreground(p.Accent).Bold(true)
	labelStyle := lipgloss.NewStyle().Foreground(p.Secondary)
	errStyle := lipgloss.NewStyle().Foreground(p.Error)

	var b strings.Builder
	b.WriteString(titleStyle.Render("=== EXPIRING SOON ==="))
	b.WriteString("\n")
	b.WriteString(labelStyle.Render(fmt.Sprintf("Within %d days", v.days)))
	b.WriteString("\n\n")

	switch {
	case v.err != nil:
		b.WriteString(errStyle.Render("Error: " + v.err.Error()))
	case !v.loaded:
		b.WriteString(labelStyle.Render("Loading..."))
	case v.table.Empty():
		b.WriteString(labelStyle.Render("Nothing expires soon."))
	default:
		v.table.SetVisibleRows(max(height-6, 1))
		v.table.Select(v.table.Selected())
		b.WriteString(v.table.Render())
	}
	b.WriteString("\n")
	return b.String()
}
