package components

import "github.com/charmbracelet/lipgloss"

// Palette is the set of colors a theme hands to components.
type Palette struct {
	Primary    lipgloss.Color
	Secondary  lipgloss.Color
	Accent     lipgloss.Color
	Background lipgloss.Color
	Muted      lipgloss.Color
	Error      lipgloss.Color
	Warning    lipgloss.Color
	Success    lipgloss.Color
}

// GardenPalette is the default green palette.
var GardenPalette = Palette{
	Primary:    "#A8D672",
	Secondary:  "#6E9A4A",
	Accent:     "#D4F2A6",
	Background: "#0F1A0A",
	Muted:      "#3F5A2C",
	Error:      "#E8574A",
	Warning:    "#F2C94C",
	Success:    "#7BD88F",
}

func (p Palette) style(c lipgloss.Color) lipgloss.Style {
	return lipgloss.NewStyle().Foreground(c)
}
