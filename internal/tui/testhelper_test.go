package tui

import (
	"context"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/larder/larder/internal/config"
	"github.com/larder/larder/internal/database"
	"github.com/larder/larder/internal/models"
	"github.com/larder/larder/internal/services/inventory"
	"github.com/larder/larder/internal/util"
)

var testNow = time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC)

// newApp builds an App over a migrated in-memory database with the clock
// pinned to testNow. The window is not sized.
func newApp(t *testing.T) (*App, *util.FixedClock) {
	t.Helper()

	db, err := database.NewInMemory()
	if err != nil {
		t.Fatalf("creating test database: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	if _, err := db.Migrate(context.Background()); err != nil {
		t.Fatalf("migrating test database: %v", err)
	}

	clock := util.NewFixedClock(testNow)
	return New(db, config.Default(), clock), clock
}

// newTestApp creates an App that is ready at 120x40.
func newTestApp(t *testing.T) *App {
	t.Helper()

	app, _ := newApp(t)
	app.width = 120
	app.height = 40
	app.ready = true
	return app
}

// seed adds an entry straight through the service.
func seed(t *testing.T, app *App, input inventory.CreateEntryInput) *models.InventoryEntry {
	t.Helper()

	e, err := app.svc.CreateEntry(context.Background(), input)
	if err != nil {
		t.Fatalf("seeding %s: %v", input.Name, err)
	}
	return e
}

// drain runs cmd and feeds every resulting message back into the app until
// nothing is left. It never runs Init, so no tick command can reach it.
func drain(t *testing.T, app *App, cmd tea.Cmd) {
	t.Helper()

	queue := []tea.Cmd{cmd}
	for steps := 0; len(queue) > 0; steps++ {
		if steps > 100 {
			t.Fatal("command chain did not settle")
		}
		next := queue[0]
		queue = queue[1:]
		if next == nil {
			continue
		}

		switch msg := next().(type) {
		case nil:
		case tea.BatchMsg:
			queue = append(queue, msg...)
		case tea.QuitMsg:
			return
		default:
			_, follow := app.Update(msg)
			queue = append(queue, follow)
		}
	}
}

// press sends keys one at a time and settles the commands each produces.
func press(t *testing.T, app *App, keys ...tea.KeyMsg) {
	t.Helper()

	for _, k := range keys {
		_, cmd := app.Update(k)
		drain(t, app, cmd)
	}
}

// typeText presses one key per rune of s.
func typeText(t *testing.T, app *App, s string) {
	t.Helper()

	for _, r := range s {
		press(t, app, keyMsg(string(r)))
	}
}

// keyMsg creates a tea.KeyMsg for a regular character key.
func keyMsg(key string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(key)}
}

// specialKeyMsg creates a tea.KeyMsg for a special key type.
func specialKeyMsg(keyType tea.KeyType) tea.KeyMsg {
	return tea.KeyMsg{Type: keyType}
}
