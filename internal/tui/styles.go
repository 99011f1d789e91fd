// Package tui provides the terminal user interface for Larder.
package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/larder/larder/internal/config"
	"github.com/larder/larder/internal/tui/components"
)

// Theme contains all style definitions for the TUI.
type Theme struct {
	Palette components.Palette

	Base    lipgloss.Style
	Primary lipgloss.Style
	Accent  lipgloss.Style
	Error   lipgloss.Style
	Warning lipgloss.Style
	Success lipgloss.Style
	Muted   lipgloss.Style

	Header    lipgloss.Style
	Footer    lipgloss.Style
	Title     lipgloss.Style
	Subtitle  lipgloss.Style
	Label     lipgloss.Style
	Value     lipgloss.Style
	Box       lipgloss.Style
	Alert     lipgloss.Style
	AlertWarn lipgloss.Style

	StatusDivider lipgloss.Style
}

// NewTheme creates a theme for the configured color scheme.
func NewTheme(scheme config.ColorScheme) *Theme {
	switch scheme {
	case config.ColorSchemeAmber:
		return buildTheme(components.Palette{
			Primary: "#F2B84B", Secondary: "#B7862F", Accent: "#FFD98A",
			Background: "#1A1206", Muted: "#6B5220",
			Error: "#E8574A", Warning: "#FFE066", Success: "#C9D96B",
		})
	case config.ColorSchemeMono:
		return buildTheme(components.Palette{
			Primary: "#E6E6E6", Secondary: "#A0A0A0", Accent: "#FFFFFF",
			Background: "#000000", Muted: "#5C5C5C",
			Error: "#FF6B6B", Warning: "#FFC857", Success: "#9BE39B",
		})
	default:
		return buildTheme(components.GardenPalette)
	}
}

func buildTheme(p components.Palette) *Theme {
	t := &Theme{Palette: p}

	t.Base = lipgloss.NewStyle().Foreground(p.Primary)
	t.Primary = lipgloss.NewStyle().Foreground(p.Primary)
	t.Accent = lipgloss.NewStyle().Foreground(p.Accent)
	t.Error = lipgloss.NewStyle().Foreground(p.Error)
	t.Warning = lipgloss.NewStyle().Foreground(p.Warning)
	t.Success = lipgloss.NewStyle().Foreground(p.Success)
	t.Muted = lipgloss.NewStyle().Foreground(p.Muted)

	t.Header = lipgloss.NewStyle().
		Foreground(p.Primary).
		Bold(true).
		Padding(0, 1)

	t.Footer = lipgloss.NewStyle().
		Foreground(p.Secondary).
		Padding(0, 1)

	t.Title = lipgloss.NewStyle().
		Foreground(p.Accent).
		Bold(true).
		Padding(0, 1)

	t.Subtitle = lipgloss.NewStyle().
		Foreground(p.Primary).
		Padding(0, 1)

	t.Label = lipgloss.NewStyle().Foreground(p.Secondary)
	t.Value = lipgloss.NewStyle().Foreground(p.Primary)

	t.Box = lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(p.Secondary).
		Padding(0, 1)

	t.Alert = lipgloss.NewStyle().
		Foreground(p.Primary).
		Bold(true)

	t.AlertWarn = lipgloss.NewStyle().
		Foreground(p.Warning).
		Bold(true)

	t.StatusDivider = lipgloss.NewStyle().
		Foreground(p.Muted).
		SetString(" │ ")

	return t
}

// DrawHorizontalLine draws a horizontal line.
func (t *Theme) DrawHorizontalLine(width int) string {
	return t.Label.Render(strings.Repeat("─", max(width, 0)))
}

// DrawDoubleLine draws a double horizontal line.
func (t *Theme) DrawDoubleLine(width int) string {
	return t.Primary.Render(strings.Repeat("═", max(width, 0)))
}
