package tui

import (
	"strings"
	"testing"

	"github.com/charmbracelet/lipgloss"

	"github.com/larder/larder/internal/config"
)

func TestGetBreakpoint(t *testing.T) {
	tests := []struct {
		width int
		want  Breakpoint
	}{
		{40, BreakpointNarrow},
		{59, BreakpointNarrow},
		{60, BreakpointMedium},
		{99, BreakpointMedium},
		{100, BreakpointWide},
		{200, BreakpointWide},
	}

	for _, tt := range tests {
		if got := GetBreakpoint(tt.width); got != tt.want {
			t.Errorf("GetBreakpoint(%d) = %d, want %d", tt.width, got, tt.want)
		}
	}
}

func TestTruncate(t *testing.T) {
	tests := []struct {
		in    string
		width int
		want  string
	}{
		{"milk", 10, "milk"},
		{"milk", 4, "milk"},
		{"oat milk", 5, "oat …"},
		{"crème fraîche", 6, "crème…"},
		{"eggs", 1, "e"},
		{"eggs", 0, ""},
	}

	for _, tt := range tests {
		if got := Truncate(tt.in, tt.width); got != tt.want {
			t.Errorf("Truncate(%q, %d) = %q, want %q", tt.in, tt.width, got, tt.want)
		}
	}
}

func TestPadRight(t *testing.T) {
	if got := PadRight("rice", 7); got != "rice   " {
		t.Errorf("PadRight = %q", got)
	}
	if got := PadRight("flour", 3); got != "flour" {
		t.Errorf("PadRight should not cut, got %q", got)
	}
}

func TestContentWidth(t *testing.T) {
	tests := []struct {
		term, lo, hi, want int
	}{
		{120, 40, 100, 100},
		{30, 40, 100, 40},
		{80, 40, 100, 80},
		{300, 40, 0, 300},
	}

	for _, tt := range tests {
		if got := ContentWidth(tt.term, tt.lo, tt.hi); got != tt.want {
			t.Errorf("ContentWidth(%d, %d, %d) = %d, want %d", tt.term, tt.lo, tt.hi, got, tt.want)
		}
	}
}

func TestContentHeight(t *testing.T) {
	if got := ContentHeight(40, 6); got != 34 {
		t.Errorf("ContentHeight(40, 6) = %d, want 34", got)
	}
	if got := ContentHeight(8, 6); got != 5 {
		t.Errorf("ContentHeight(8, 6) = %d, want floor of 5", got)
	}
}

func TestPanel(t *testing.T) {
	theme := NewTheme(config.ColorSchemeGarden)

	out := theme.Panel("Keys", "F2 inventory", 40)
	if !strings.Contains(out, "Keys") {
		t.Error("expected title in top border")
	}
	if !strings.Contains(out, "F2 inventory") {
		t.Error("expected body")
	}
	if w := lipgloss.Width(strings.Split(out, "\n")[0]); w != 40 {
		t.Errorf("panel width = %d, want 40", w)
	}
}
