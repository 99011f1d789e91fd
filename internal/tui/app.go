package tui

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/larder/larder/internal/config"
	"github.com/larder/larder/internal/database"
	"github.com/larder/larder/internal/models"
	"github.com/larder/larder/internal/services/inventory"
	"github.com/larder/larder/internal/state"
	listviews "github.com/larder/larder/internal/tui/views/lists"
	"github.com/larder/larder/internal/util"
)

// Version information (set at build time)
var (
	Version   = "dev"
	BuildTime = "unknown"
)

// MaxContentWidth is the maximum width for content display
const MaxContentWidth = 120

// chromeLines is the height taken by the header, alert bar and footer.
const chromeLines = 6

const expiringKey = "expiring"

// Module represents a view module in the application.
type Module string

const (
	ModuleInventory Module = "inventory"
	ModuleShopping  Module = "shopping"
	ModuleExpiring  Module = "expiring"
	ModuleHelp      Module = "help"
)

// listFor returns the list a module shows, if any.
func (m Module) listFor() (models.ListType, bool) {
	switch m {
	case ModuleInventory:
		return models.ListInventory, true
	case ModuleShopping:
		return models.ListShopping, true
	default:
		return "", false
	}
}

func moduleFor(tab models.ListType) Module {
	if tab == models.ListShopping {
		return ModuleShopping
	}
	return ModuleInventory
}

// App is the main Bubble Tea application model.
type App struct {
	// Dependencies
	ctx    context.Context
	db     *database.DB
	config *config.Config
	clock  util.Clock
	svc    *inventory.Service

	st state.State

	// Views
	lists    map[models.ListType]*listviews.ListView
	expiring *listviews.ExpiringView
	addForm  *listviews.AddForm
	moveForm *listviews.MoveForm

	// UI state
	theme       *Theme
	keys        KeyMap
	width       int
	height      int
	ready       bool
	quitting    bool
	showConfirm bool

	currentModule  Module
	previousModule Module

	alerts []Alert
	counts map[models.ListType]int
}

// Alert is a message shown in the alert bar.
type Alert struct {
	Level   AlertLevel
	Message string
	Time    time.Time
}

// AlertLevel indicates the severity of an alert.
type AlertLevel int

const (
	AlertInfo AlertLevel = iota
	AlertWarning
)

type tickMsg time.Time

type listLoadedMsg struct {
	tab  models.ListType
	part inventory.Partition
	err  error
}

type expiringLoadedMsg struct {
	units []inventory.ExpiringUnit
	err   error
}

type countsMsg struct {
	counts map[models.ListType]int
	err    error
}

// mutationMsg reports a finished change to one or more lists.
type mutationMsg struct {
	tabs    []models.ListType
	message string
	err     error
}

type draftOpenedMsg struct {
	slot  int
	draft models.DraftRow
	err   error
}

type draftSubmittedMsg struct {
	slot  int
	entry *models.InventoryEntry
	// stored is the draft as saved before the submit was refused.
	stored *models.DraftRow
	err    error
}

type draftClosedMsg struct {
	kept bool
	err  error
}

// New creates a new App instance.
func New(db *database.DB, cfg *config.Config, clock util.Clock) *App {
	if clock == nil {
		clock = util.SystemClock{}
	}
	theme := NewTheme(cfg.Display.ColorScheme)
	now := clock.Now()

	display := listviews.DisplayOptions{
		DateFormat: cfg.Display.DateFormat,
		Relative:   cfg.Display.RelativeExp,
	}
	lists := make(map[models.ListType]*listviews.ListView, 2)
	for _, tab := range []models.ListType{models.ListInventory, models.ListShopping} {
		v := listviews.NewListView(tab)
		v.SetPalette(theme.Palette)
		v.SetDisplay(display)
		v.SetNow(now)
		lists[tab] = v
	}

	expiring := listviews.NewExpiringView(cfg.Lists.ExpiringSoonDays)
	expiring.SetPalette(theme.Palette)

	tab := cfg.Lists.DefaultListType()
	st := state.New(tab, cfg.Lists.CacheTTLDuration())
	st = state.Reduce(st, state.StartSession{
		Household: cfg.Household.Name,
		Owner:     cfg.Household.Owner,
	})

	return &App{
		ctx:           context.Background(),
		db:            db,
		config:        cfg,
		clock:         clock,
		svc:           inventory.NewService(db.DB, clock),
		st:            st,
		lists:         lists,
		expiring:      expiring,
		theme:         theme,
		keys:          DefaultKeyMap(),
		currentModule: moduleFor(tab),
		counts:        map[models.ListType]int{},
	}
}

// Init implements tea.Model.
func (a *App) Init() tea.Cmd {
	return tea.Batch(
		tickCmd(),
		a.refreshList(a.st.ActiveTab, false),
		a.loadCounts(),
	)
}

func tickCmd() tea.Cmd {
	return tea.Tick(time.Minute, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

func (a *App) dispatch(actions ...state.Action) {
	for _, act := range actions {
		a.st = state.Reduce(a.st, act)
	}
}

// refreshList shows the cached partition for tab if it is fresh, otherwise
// loads it. force skips the cache.
func (a *App) refreshList(tab models.ListType, force bool) tea.Cmd {
	if !force {
		if v, ok := a.st.Cached(state.ListKey(tab), a.clock.Now()); ok {
			if part, ok := v.(inventory.Partition); ok {
				a.lists[tab].SetPartition(part)
				return nil
			}
		}
	}

	a.dispatch(state.BeginLoading{})
	ctx, svc := a.ctx, a.svc
	return func() tea.Msg {
		part, err := svc.View(ctx, tab)
		return listLoadedMsg{tab: tab, part: part, err: err}
	}
}

func (a *App) refreshExpiring(force bool) tea.Cmd {
	if !force {
		if v, ok := a.st.Cached(expiringKey, a.clock.Now()); ok {
			if units, ok := v.([]inventory.ExpiringUnit); ok {
				a.expiring.SetUnits(units)
				return nil
			}
		}
	}

	a.dispatch(state.BeginLoading{})
	ctx, svc, days := a.ctx, a.svc, a.expiring.Days()
	return func() tea.Msg {
		units, err := svc.ExpiringSoon(ctx, days)
		return expiringLoadedMsg{units: units, err: err}
	}
}

func (a *App) loadCounts() tea.Cmd {
	ctx, svc := a.ctx, a.svc
	return func() tea.Msg {
		counts, err := svc.Counts(ctx)
		return countsMsg{counts: counts, err: err}
	}
}

// reloadAfter drops the cached views a change to tabs made stale and loads
// the visible ones again.
func (a *App) reloadAfter(tabs ...models.ListType) tea.Cmd {
	cmds := []tea.Cmd{a.loadCounts()}
	a.dispatch(state.Invalidate{Key: expiringKey})
	for _, tab := range tabs {
		a.dispatch(state.Invalidate{Key: state.ListKey(tab)})
		if cur, ok := a.currentModule.listFor(); ok && cur == tab {
			cmds = append(cmds, a.refreshList(tab, true))
		}
	}
	if a.currentModule == ModuleExpiring {
		cmds = append(cmds, a.refreshExpiring(true))
	}
	return tea.Batch(cmds...)
}

// Update implements tea.Model.
func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return a.handleKeyPress(msg)

	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		a.ready = true
		return a, nil

	case tickMsg:
		now := a.clock.Now()
		a.dispatch(state.Prune{Now: now})
		for _, v := range a.lists {
			v.SetNow(now)
		}
		return a, tickCmd()

	case listLoadedMsg:
		a.dispatch(state.EndLoading{})
		v := a.lists[msg.tab]
		if msg.err != nil {
			slog.Error("loading list", "list", msg.tab, "error", msg.err)
			v.SetError(msg.err)
			a.AddAlert(AlertWarning, fmt.Sprintf("Failed to load %s: %v", msg.tab, msg.err))
			return a, nil
		}
		now := a.clock.Now()
		a.dispatch(state.Store{Key: state.ListKey(msg.tab), Value: msg.part, At: now})
		v.SetNow(now)
		v.SetPartition(msg.part)
		return a, nil

	case expiringLoadedMsg:
		a.dispatch(state.EndLoading{})
		if msg.err != nil {
			slog.Error("loading expiring units", "error", msg.err)
			a.expiring.SetError(msg.err)
			return a, nil
		}
		a.dispatch(state.Store{Key: expiringKey, Value: msg.units, At: a.clock.Now()})
		a.expiring.SetUnits(msg.units)
		return a, nil

	case countsMsg:
		if msg.err != nil {
			slog.Warn("counting entries", "error", msg.err)
			return a, nil
		}
		a.counts = msg.counts
		return a, nil

	case mutationMsg:
		if msg.err != nil {
			slog.Error("updating list", "error", msg.err)
			a.AddAlert(AlertWarning, msg.err.Error())
		} else if msg.message != "" {
			a.AddAlert(AlertInfo, msg.message)
		}
		return a, a.reloadAfter(msg.tabs...)

	case draftOpenedMsg:
		if msg.err != nil {
			slog.Error("opening move draft", "error", msg.err)
			a.AddAlert(AlertWarning, msg.err.Error())
			return a, nil
		}
		a.moveForm = listviews.NewMoveForm(msg.slot, msg.draft)
		a.moveForm.SetPalette(a.theme.Palette)
		return a, nil

	case draftSubmittedMsg:
		if msg.err != nil {
			slog.Warn("moving draft", "slot", msg.slot, "error", msg.err)
			if msg.stored != nil {
				a.moveForm = listviews.NewMoveForm(msg.slot, *msg.stored)
				a.moveForm.SetPalette(a.theme.Palette)
			}
			if a.moveForm != nil {
				a.moveForm.Resume(draftErrorText(msg.err))
			}
			return a, nil
		}
		a.moveForm = nil
		a.AddAlert(AlertInfo, fmt.Sprintf("Moved %s to the inventory", msg.entry.Name))
		return a, a.reloadAfter(models.ListShopping, models.ListInventory)

	case draftClosedMsg:
		if msg.err != nil {
			slog.Error("closing move draft", "error", msg.err)
			if a.moveForm != nil {
				a.moveForm.Resume(msg.err.Error())
			}
			return a, nil
		}
		a.moveForm = nil
		if msg.kept {
			a.AddAlert(AlertInfo, "Draft kept for later")
		} else {
			a.AddAlert(AlertInfo, "Draft discarded")
		}
		return a, nil
	}

	return a, nil
}

func draftErrorText(err error) string {
	switch {
	case errors.Is(err, inventory.ErrDraftMismatch):
		return "Rows do not line up. Fix the warnings above."
	case errors.Is(err, inventory.ErrEmptyDraft):
		return "Enter a quantity for at least one row."
	case errors.Is(err, inventory.ErrNotFound):
		return "The shopping entry is gone. Discard the draft with Ctrl+X."
	default:
		return err.Error()
	}
}

// handleKeyPress processes key press events.
func (a *App) handleKeyPress(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	// The quit dialog is modal.
	if a.showConfirm {
		switch msg.String() {
		case "y", "Y", "enter":
			a.quitting = true
			a.dispatch(state.EndSession{})
			return a, tea.Quit
		case "n", "N", "esc":
			a.showConfirm = false
		}
		return a, nil
	}

	// Forms take every key.
	if a.moveForm != nil {
		return a.handleMoveKeys(msg)
	}
	if a.addForm != nil {
		return a.handleAddKeys(msg)
	}

	if a.keys.IsQuit(msg) {
		a.showConfirm = true
		return a, nil
	}

	if module := a.keys.ModuleFor(msg); module != "" {
		return a, a.switchModule(module)
	}

	if a.keys.Back.Matches(msg) {
		if a.currentModule == ModuleHelp && a.previousModule != "" {
			a.currentModule = a.previousModule
			a.previousModule = ""
		}
		return a, nil
	}

	switch a.currentModule {
	case ModuleInventory, ModuleShopping:
		return a.handleListKeys(msg)
	case ModuleExpiring:
		return a.handleExpiringKeys(msg)
	}
	return a, nil
}

func (a *App) switchModule(module Module) tea.Cmd {
	if module == ModuleHelp {
		if a.currentModule != ModuleHelp {
			a.previousModule = a.currentModule
		}
		a.currentModule = ModuleHelp
		return nil
	}

	a.currentModule = module
	a.previousModule = ""
	if tab, ok := module.listFor(); ok {
		a.dispatch(state.SelectTab{Tab: tab})
		return a.refreshList(tab, false)
	}
	return a.refreshExpiring(false)
}

func (a *App) handleExpiringKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case a.keys.Up.Matches(msg):
		a.expiring.MoveUp()
	case a.keys.Down.Matches(msg):
		a.expiring.MoveDown()
	case a.keys.Refresh.Matches(msg):
		return a, a.refreshExpiring(true)
	}
	return a, nil
}

func (a *App) handleListKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	tab, _ := a.currentModule.listFor()
	view := a.lists[tab]
	sel := view.Selected()

	switch {
	case a.keys.Up.Matches(msg):
		view.MoveUp()
	case a.keys.Down.Matches(msg):
		view.MoveDown()
	case a.keys.Refresh.Matches(msg):
		return a, a.refreshList(tab, true)
	case a.keys.Add.Matches(msg):
		a.addForm = listviews.NewAddForm(tab, a.theme.Palette)
	case a.keys.Consume.Matches(msg):
		return a, a.consumeChecked(tab)
	case a.keys.Discard.Matches(msg) && tab == models.ListInventory:
		return a, a.discardExpired()
	case sel == nil:
		return a, nil
	case a.keys.Toggle.Matches(msg):
		return a, a.toggle(tab, sel)
	case a.keys.Increment.Matches(msg):
		return a, a.setChecked(tab, sel, view.CheckedCount(sel.ID)+1)
	case a.keys.Decrement.Matches(msg):
		return a, a.setChecked(tab, sel, view.CheckedCount(sel.ID)-1)
	case a.keys.Delete.Matches(msg):
		return a, a.deleteEntry(tab, sel)
	case a.keys.Move.Matches(msg) && tab == models.ListShopping:
		return a, a.openMoveDraft(sel)
	}
	return a, nil
}

func (a *App) toggle(tab models.ListType, e *models.InventoryEntry) tea.Cmd {
	ctx, svc, id := a.ctx, a.svc, e.ID
	return func() tea.Msg {
		_, err := svc.ToggleChecked(ctx, id)
		return mutationMsg{tabs: []models.ListType{tab}, err: err}
	}
}

func (a *App) setChecked(tab models.ListType, e *models.InventoryEntry, n int) tea.Cmd {
	if n < 0 {
		return nil
	}
	ctx, svc, id := a.ctx, a.svc, e.ID
	return func() tea.Msg {
		_, err := svc.SetCheckedCount(ctx, id, n)
		return mutationMsg{tabs: []models.ListType{tab}, err: err}
	}
}

func (a *App) consumeChecked(tab models.ListType) tea.Cmd {
	ctx, svc := a.ctx, a.svc
	return func() tea.Msg {
		res, err := svc.ConsumeChecked(ctx, tab)
		if err != nil {
			return mutationMsg{tabs: []models.ListType{tab}, err: err}
		}
		text := fmt.Sprintf("Used %d from %d entries", res.Units, res.Entries)
		if tab == models.ListShopping {
			text = fmt.Sprintf("Cleared %d bought entries", res.Entries)
		}
		if res.Entries == 0 {
			text = "Nothing is checked"
		}
		return mutationMsg{tabs: []models.ListType{tab}, message: text}
	}
}

func (a *App) discardExpired() tea.Cmd {
	ctx, svc := a.ctx, a.svc
	return func() tea.Msg {
		res, err := svc.DiscardExpired(ctx)
		if err != nil {
			return mutationMsg{tabs: []models.ListType{models.ListInventory}, err: err}
		}
		text := fmt.Sprintf("Discarded %d expired from %d entries", res.Units, res.Entries)
		if res.Entries == 0 {
			text = "Nothing has expired"
		}
		return mutationMsg{tabs: []models.ListType{models.ListInventory}, message: text}
	}
}

func (a *App) deleteEntry(tab models.ListType, e *models.InventoryEntry) tea.Cmd {
	ctx, svc, id, name := a.ctx, a.svc, e.ID, e.Name
	return func() tea.Msg {
		if err := svc.DeleteEntry(ctx, id); err != nil {
			return mutationMsg{tabs: []models.ListType{tab}, err: err}
		}
		return mutationMsg{tabs: []models.ListType{tab}, message: "Deleted " + name}
	}
}

// openMoveDraft reopens the draft already kept for the entry, or starts one
// in the first free slot.
func (a *App) openMoveDraft(e *models.InventoryEntry) tea.Cmd {
	ctx, svc, id := a.ctx, a.svc, e.ID
	slots := max(a.config.Lists.DraftSlots, 1)
	return func() tea.Msg {
		free := -1
		for slot := 0; slot < slots; slot++ {
			d, err := svc.GetDraft(ctx, slot)
			switch {
			case err == nil && d.EntryID == id:
				return draftOpenedMsg{slot: slot, draft: d}
			case errors.Is(err, inventory.ErrNotFound):
				if free < 0 {
					free = slot
				}
			case err != nil:
				return draftOpenedMsg{err: fmt.Errorf("reading draft slot %d: %w", slot, err)}
			}
		}
		if free < 0 {
			return draftOpenedMsg{err: fmt.Errorf("all %d draft slots are in use", slots)}
		}
		d, err := svc.OpenMoveDraft(ctx, free, id)
		return draftOpenedMsg{slot: free, draft: d, err: err}
	}
}

func (a *App) handleAddKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	a.addForm.HandleKey(msg.String())

	if a.addForm.IsCancelled() {
		a.addForm = nil
		return a, nil
	}
	if !a.addForm.IsSubmitted() {
		return a, nil
	}

	input, err := a.addForm.GetData()
	if err != nil {
		a.addForm.Reject(err)
		return a, nil
	}
	a.addForm = nil

	ctx, svc := a.ctx, a.svc
	return a, func() tea.Msg {
		e, err := svc.CreateEntry(ctx, input)
		if err != nil {
			return mutationMsg{tabs: []models.ListType{input.Type}, err: err}
		}
		return mutationMsg{
			tabs:    []models.ListType{input.Type},
			message: fmt.Sprintf("Added %s to %s", e.Name, e.Type),
		}
	}
}

func (a *App) handleMoveKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	f := a.moveForm
	if f.Action() != listviews.MoveEditing {
		// Waiting for the stored draft; its edits are already on their way.
		return a, nil
	}
	f.HandleKey(msg.String())

	ctx, svc, slot, edits := a.ctx, a.svc, f.Slot(), f.Edits()
	switch f.Action() {
	case listviews.MoveSave:
		return a, func() tea.Msg {
			var stored *models.DraftRow
			if len(edits) > 0 {
				d, err := svc.EditDraft(ctx, slot, edits...)
				if err != nil {
					return draftSubmittedMsg{slot: slot, err: err}
				}
				stored = &d
			}
			e, err := svc.SubmitDraft(ctx, slot)
			if err != nil {
				return draftSubmittedMsg{slot: slot, stored: stored, err: err}
			}
			return draftSubmittedMsg{slot: slot, entry: e}
		}
	case listviews.MoveKeep:
		return a, func() tea.Msg {
			if len(edits) == 0 {
				return draftClosedMsg{kept: true}
			}
			_, err := svc.EditDraft(ctx, slot, edits...)
			return draftClosedMsg{kept: true, err: err}
		}
	case listviews.MoveDiscard:
		return a, func() tea.Msg {
			return draftClosedMsg{err: svc.DiscardDraft(ctx, slot)}
		}
	}
	return a, nil
}

// View implements tea.Model.
func (a *App) View() string {
	if !a.ready {
		return "Initializing..."
	}

	if a.quitting {
		return a.theme.Title.Render("Closing the larder...")
	}

	var b strings.Builder

	b.WriteString(a.renderHeader())
	b.WriteString("\n")
	b.WriteString(a.renderAlertBar())
	b.WriteString("\n")

	height := ContentHeight(a.height, chromeLines)
	if a.showConfirm {
		b.WriteString(a.renderConfirmDialog(height))
	} else {
		b.WriteString(a.renderContent(height))
	}

	b.WriteString("\n")
	b.WriteString(a.renderFooter())

	return b.String()
}

func (a *App) renderHeader() string {
	title := fmt.Sprintf("LARDER v%s", Version)

	info := fmt.Sprintf("INV: %d | SHOP: %d",
		a.counts[models.ListInventory],
		a.counts[models.ListShopping],
	)
	if GetBreakpoint(a.width) != BreakpointNarrow {
		info = a.st.Session.Household + " | " + info
	}

	spacing := max(a.width-lipgloss.Width(title)-lipgloss.Width(info)-4, 1)
	header := a.theme.Header.Render(title) +
		strings.Repeat(" ", spacing) +
		a.theme.Header.Render(info)

	return header + "\n" + a.theme.DrawDoubleLine(a.width)
}

func (a *App) renderAlertBar() string {
	timeDisplay := a.theme.Value.Render(a.clock.Now().Format(util.DateTimeFormat))
	divider := a.theme.StatusDivider.Render()

	var text string
	switch {
	case len(a.alerts) > 0 && a.alerts[0].Level == AlertWarning:
		text = a.theme.AlertWarn.Render("WARNING: " + a.alerts[0].Message)
	case len(a.alerts) > 0:
		text = a.theme.Alert.Render(a.alerts[0].Message)
	case a.st.IsLoading():
		text = a.theme.Muted.Render("Loading...")
	default:
		if n := len(a.lists[models.ListInventory].Partition().Expired); n > 0 {
			text = a.theme.AlertWarn.Render(fmt.Sprintf("%d entries have expired lots (x to discard)", n))
		} else {
			text = a.theme.Muted.Render("Nothing needs attention")
		}
	}

	return timeDisplay + divider + text
}

func (a *App) renderContent(height int) string {
	width := ContentWidth(a.width, 40, MaxContentWidth)

	style := lipgloss.NewStyle().
		Width(a.width).
		Height(height).
		Align(lipgloss.Center, lipgloss.Top)

	return style.Render(lipgloss.NewStyle().Width(width).Render(a.moduleContent(width, height)))
}

func (a *App) moduleContent(width, height int) string {
	switch {
	case a.moveForm != nil:
		return a.moveForm.Render(width)
	case a.addForm != nil:
		return a.addForm.Render()
	}

	switch a.currentModule {
	case ModuleInventory, ModuleShopping:
		tab, _ := a.currentModule.listFor()
		return a.lists[tab].Render(width, height-2) + "\n" +
			a.theme.Label.Render(a.keys.ListHelp(tab == models.ListShopping))
	case ModuleExpiring:
		return a.expiring.Render(width, height-2) + "\n" +
			a.theme.Label.Render("Up/Down:Select  r:Refresh")
	default:
		return a.renderHelp(width)
	}
}

func (a *App) renderHelp(width int) string {
	row := func(key, text string) string {
		return a.theme.Primary.Render(fmt.Sprintf("%-8s  %s", key, text))
	}

	nav := strings.Join([]string{
		row("F1", "Help"),
		row("F2", "Inventory"),
		row("F3", "Shopping list"),
		row("F4", "Expiring soon"),
		row("F10", "Quit"),
	}, "\n")

	lists := strings.Join([]string{
		row("Space", "Check or uncheck the whole entry"),
		row("+ / -", "Check one more or one less"),
		row("c", "Use up what is checked"),
		row("x", "Discard expired lots (inventory)"),
		row("m", "Move to inventory (shopping)"),
		row("a", "Add an entry"),
		row("d", "Delete the entry"),
		row("r", "Reload from disk"),
	}, "\n")

	move := strings.Join([]string{
		row("Tab", "Next cell"),
		row("Ctrl+N", "Insert a row below"),
		row("Ctrl+S", "Move into the inventory"),
		row("Esc", "Close and keep the draft"),
		row("Ctrl+X", "Discard the draft"),
	}, "\n")

	var b strings.Builder
	b.WriteString(a.theme.Title.Render("=== HELP ==="))
	b.WriteString("\n\n")
	b.WriteString(a.theme.Panel("Screens", nav, width))
	b.WriteString("\n")
	b.WriteString(a.theme.Panel("Lists", lists, width))
	b.WriteString("\n")
	b.WriteString(a.theme.Panel("Moving to the inventory", move, width))
	b.WriteString("\n\n")
	b.WriteString(a.theme.Muted.Render("Press Esc to return"))
	return b.String()
}

func (a *App) renderConfirmDialog(height int) string {
	dialog := a.theme.Box.Render(
		a.theme.Title.Render("CONFIRM EXIT") + "\n\n" +
			a.theme.Base.Render("Close the larder?") + "\n\n" +
			a.theme.Label.Render("[Y]es  [N]o"),
	)

	style := lipgloss.NewStyle().
		Width(a.width).
		Height(height).
		Align(lipgloss.Center, lipgloss.Center)

	return style.Render(dialog)
}

func (a *App) renderFooter() string {
	return a.theme.DrawHorizontalLine(a.width) + "\n" + a.theme.Footer.Render(a.keys.StatusBarHelp())
}

// AddAlert adds a new alert to the display.
func (a *App) AddAlert(level AlertLevel, message string) {
	a.alerts = append([]Alert{{
		Level:   level,
		Message: message,
		Time:    a.clock.Now(),
	}}, a.alerts...)

	if len(a.alerts) > 10 {
		a.alerts = a.alerts[:10]
	}
}

// ClearAlerts removes all alerts.
func (a *App) ClearAlerts() {
	a.alerts = nil
}

// Run starts the TUI and blocks until the user quits or ctx is cancelled.
func Run(ctx context.Context, db *database.DB, cfg *config.Config, clock util.Clock) error {
	app := New(db, cfg, clock)
	app.ctx = ctx

	p := tea.NewProgram(app, tea.WithAltScreen())

	go func() {
		<-ctx.Done()
		p.Quit()
	}()

	_, err := p.Run()
	return err
}
