package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Breakpoint is a terminal width threshold.
type Breakpoint int

const (
	// BreakpointNarrow is for terminals under 60 columns.
	BreakpointNarrow Breakpoint = 60
	// BreakpointMedium is for terminals between 60 and 100 columns.
	BreakpointMedium Breakpoint = 100
	// BreakpointWide is for anything wider.
	BreakpointWide Breakpoint = 140
)

// GetBreakpoint returns the layout breakpoint for the given width.
func GetBreakpoint(width int) Breakpoint {
	switch {
	case width < int(BreakpointNarrow):
		return BreakpointNarrow
	case width < int(BreakpointMedium):
		return BreakpointMedium
	default:
		return BreakpointWide
	}
}

// Panel renders content in a rounded box with the title set into the top
// border.
func (t *Theme) Panel(title, content string, width int) string {
	width = max(width, 8)
	if title == "" {
		return t.Box.Width(width - 2).Render(content)
	}

	body := t.Box.BorderTop(false).Width(width - 2).Render(content)
	border := lipgloss.NewStyle().Foreground(t.Palette.Secondary)

	label := Truncate(" "+title+" ", width-4)
	fill := width - 3 - lipgloss.Width(label)
	top := border.Render("╭─") + t.Accent.Bold(true).Render(label) +
		border.Render(strings.Repeat("─", fill)+"╮")
	return top + "\n" + body
}

// Truncate shortens s to maxWidth cells, ending in an ellipsis when cut.
func Truncate(s string, maxWidth int) string {
	if maxWidth <= 0 {
		return ""
	}
	if lipgloss.Width(s) <= maxWidth {
		return s
	}
	runes := []rune(s)
	if maxWidth == 1 {
		return string(runes[:1])
	}
	return string(runes[:min(len(runes), maxWidth-1)]) + "…"
}

// PadRight pads s with spaces to width.
func PadRight(s string, width int) string {
	w := lipgloss.Width(s)
	if w >= width {
		return s
	}
	return s + strings.Repeat(" ", width-w)
}

// ContentWidth clamps the terminal width between minWidth and maxWidth.
// A maxWidth of zero means unbounded.
func ContentWidth(termWidth, minWidth, maxWidth int) int {
	w := max(termWidth, minWidth)
	if maxWidth > 0 {
		w = min(w, maxWidth)
	}
	return w
}

// ContentHeight returns the rows left after chromeLines of header, footer
// and alerts, never less than five.
func ContentHeight(termHeight, chromeLines int) int {
	return max(termHeight-chromeLines, 5)
}
