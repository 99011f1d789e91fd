package tui

import (
	"bytes"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/x/exp/teatest"

	"github.com/larder/larder/internal/services/inventory"
)

// newE2EApp creates an App for end-to-end testing via teatest, seeded with
// the given entries. Unlike newTestApp it is not sized; teatest sends the
// WindowSizeMsg.
func newE2EApp(t *testing.T, entries ...inventory.CreateEntryInput) *App {
	t.Helper()

	app, _ := newApp(t)
	for _, e := range entries {
		seed(t, app, e)
	}
	return app
}

func startE2E(t *testing.T, entries ...inventory.CreateEntryInput) *teatest.TestModel {
	t.Helper()

	tm := teatest.NewTestModel(t, newE2EApp(t, entries...),
		teatest.WithInitialTermSize(120, 40))
	t.Cleanup(func() { tm.Quit() })
	return tm
}

// waitFor is a convenience wrapper around teatest.WaitFor with a standard timeout.
func waitFor(t *testing.T, tm *teatest.TestModel, text string) {
	t.Helper()
	teatest.WaitFor(t, tm.Output(), func(bts []byte) bool {
		return bytes.Contains(bts, []byte(text))
	}, teatest.WithDuration(5*time.Second))
}

// --- End-to-end tests ---
// These launch the real Bubble Tea program in a headless virtual terminal,
// send actual keystrokes, and assert on the rendered screen output.

func TestE2E_InventoryOnStartup(t *testing.T) {
	tm := startE2E(t, milk())

	waitFor(t, tm, "To use (1)")
}

func TestE2E_ShoppingList(t *testing.T) {
	tm := startE2E(t, milk(), apples())
	waitFor(t, tm, "=== INVENTORY ===")

	tm.Send(tea.KeyMsg{Type: tea.KeyF3})
	waitFor(t, tm, "To buy (1)")
}

func TestE2E_HelpScreenAndBack(t *testing.T) {
	tm := startE2E(t)
	waitFor(t, tm, "=== INVENTORY ===")

	tm.Send(tea.KeyMsg{Type: tea.KeyF1})
	waitFor(t, tm, "Moving to the inventory")

	tm.Send(tea.KeyMsg{Type: tea.KeyEscape})
	waitFor(t, tm, "=== INVENTORY ===")
}

func TestE2E_CheckAndConsume(t *testing.T) {
	tm := startE2E(t, milk())
	waitFor(t, tm, "To use (1)")

	tm.Type(" ")
	waitFor(t, tm, "Checked (1)")

	tm.Type("c")
	waitFor(t, tm, "Used 3 from 1 entries")
}

func TestE2E_MoveToInventory(t *testing.T) {
	tm := startE2E(t, apples())
	waitFor(t, tm, "=== INVENTORY ===")

	tm.Send(tea.KeyMsg{Type: tea.KeyF3})
	waitFor(t, tm, "To buy (1)")

	tm.Type("m")
	waitFor(t, tm, "MOVE TO INVENTORY: Apples")

	tm.Send(tea.KeyMsg{Type: tea.KeyTab})
	tm.Send(tea.KeyMsg{Type: tea.KeyTab})
	tm.Type("2025-07-01")
	tm.Send(tea.KeyMsg{Type: tea.KeyCtrlS})
	waitFor(t, tm, "Moved Apples to the inventory")
}

func TestE2E_QuitFlow(t *testing.T) {
	tm := teatest.NewTestModel(t, newE2EApp(t),
		teatest.WithInitialTermSize(120, 40))

	waitFor(t, tm, "=== INVENTORY ===")

	tm.Type("q")
	waitFor(t, tm, "CONFIRM EXIT")

	tm.Type("y")

	m := tm.FinalModel(t, teatest.WithFinalTimeout(5*time.Second))
	app, ok := m.(*App)
	if !ok {
		t.Fatalf("final model is %T", m)
	}
	if !app.quitting {
		t.Error("expected app to be quitting")
	}
}

func TestE2E_QuitCancel(t *testing.T) {
	tm := startE2E(t)
	waitFor(t, tm, "=== INVENTORY ===")

	tm.Send(tea.KeyMsg{Type: tea.KeyF10})
	waitFor(t, tm, "CONFIRM EXIT")

	tm.Type("n")
	waitFor(t, tm, "=== INVENTORY ===")
}
