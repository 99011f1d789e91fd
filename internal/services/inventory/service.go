// Package inventory implements the inventory and shopping list operations:
// partitioning entries into checked, remaining and expired sections, checking
// move drafts for consistency, and the storage backed operations built on
// top of those.
package inventory

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"sort"
	"strings"

	"github.com/larder/larder/internal/models"
	"github.com/larder/larder/internal/repository"
	"github.com/larder/larder/internal/util"
)

// Service provides list operations over the store.
type Service struct {
	db          *sql.DB
	entries     *repository.ListRepository
	drafts      *repository.DraftRepository
	clock       util.Clock
	idGenerator *util.IDGenerator
}

// NewService creates a new inventory service. A nil clock uses the wall clock.
func NewService(db *sql.DB, clock util.Clock) *Service {
	if clock == nil {
		clock = util.SystemClock{}
	}
	return &Service{
		db:          db,
		entries:     repository.NewListRepository(db),
		drafts:      repository.NewDraftRepository(db),
		clock:       clock,
		idGenerator: util.NewIDGenerator(),
	}
}

// ============================================================================
// ENTRIES
// ============================================================================

// CreateEntry adds a new entry to a list.
func (s *Service) CreateEntry(ctx context.Context, input CreateEntryInput) (*models.InventoryEntry, error) {
	if input.Amount == nil && len(input.Units) == 0 {
		return nil, fmt.Errorf("creating %q: %w", input.Name, ErrNoQuantity)
	}

	entry := &models.InventoryEntry{
		ID:   s.idGenerator.NewID(),
		Name: strings.TrimSpace(input.Name),
		Type: input.Type,
	}
	if input.Amount != nil {
		entry.Amount = *input.Amount
	} else {
		entry.Units = append([]models.Unit{}, input.Units...)
	}

	if err := s.entries.Create(ctx, nil, entry); err != nil {
		return nil, fmt.Errorf("creating entry: %w", err)
	}
	return entry, nil
}

// GetEntry retrieves an entry by ID.
func (s *Service) GetEntry(ctx context.Context, id string) (*models.InventoryEntry, error) {
	return s.entries.GetByID(ctx, id)
}

// ListEntries returns the entries on one list in insertion order.
func (s *Service) ListEntries(ctx context.Context, tab models.ListType) ([]models.InventoryEntry, error) {
	found, err := s.entries.List(ctx, models.EntryFilter{Type: tab})
	if err != nil {
		return nil, fmt.Errorf("listing entries: %w", err)
	}
	out := make([]models.InventoryEntry, len(found))
	for i, e := range found {
		out[i] = *e
	}
	return out, nil
}

// View lists one list and splits it into sections as of the service clock.
func (s *Service) View(ctx context.Context, tab models.ListType) (Partition, error) {
	items, err := s.ListEntries(ctx, tab)
	if err != nil {
		return Partition{}, err
	}
	return Split(items, tab, s.clock.Now()), nil
}

// DeleteEntry removes an entry from its list.
func (s *Service) DeleteEntry(ctx context.Context, id string) error {
	if err := s.entries.Delete(ctx, nil, id); err != nil {
		return fmt.Errorf("deleting entry: %w", err)
	}
	return nil
}

// Counts returns the number of entries on each list.
func (s *Service) Counts(ctx context.Context) (map[models.ListType]int, error) {
	return s.entries.CountByType(ctx)
}

// ============================================================================
// CHECKING
// ============================================================================

// SetCheckedCount sets how many units of an entry are checked, clamped to
// the entry's total. Scalar entries are checked when n is positive.
func (s *Service) SetCheckedCount(ctx context.Context, id string, n int) (*models.InventoryEntry, error) {
	entry, err := s.entries.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("getting entry: %w", err)
	}

	if entry.IsScalar() {
		entry.Checked = n > 0
	} else {
		entry.CheckedCount = min(max(n, 0), entry.Total())
		entry.Checked = entry.CheckedCount > 0 && entry.CheckedCount == entry.Total()
	}

	if err := s.entries.Update(ctx, nil, entry); err != nil {
		return nil, fmt.Errorf("updating entry: %w", err)
	}
	return entry, nil
}

// ToggleChecked checks every unit of an entry, or clears them all if the
// entry is already fully checked.
func (s *Service) ToggleChecked(ctx context.Context, id string) (*models.InventoryEntry, error) {
	entry, err := s.entries.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("getting entry: %w", err)
	}

	if entry.IsScalar() {
		if entry.Checked {
			return s.SetCheckedCount(ctx, id, 0)
		}
		return s.SetCheckedCount(ctx, id, 1)
	}
	if entry.CheckedCount > 0 && entry.CheckedCount == entry.Total() {
		return s.SetCheckedCount(ctx, id, 0)
	}
	return s.SetCheckedCount(ctx, id, entry.Total())
}

// ConsumeChecked takes the checked units off a list. Units are taken in the
// same order the list view shows them as used, so what was shown as checked
// is what goes. Entries with nothing left are deleted.
func (s *Service) ConsumeChecked(ctx context.Context, tab models.ListType) (ConsumeResult, error) {
	var res ConsumeResult

	items, err := s.entries.List(ctx, models.EntryFilter{Type: tab})
	if err != nil {
		return res, fmt.Errorf("listing entries: %w", err)
	}
	now := s.clock.Now()

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return res, fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	for _, e := range items {
		if e.IsScalar() {
			if !e.Checked {
				continue
			}
			if err := s.entries.Delete(ctx, tx, e.ID); err != nil {
				return res, fmt.Errorf("removing %s: %w", e.Name, err)
			}
			res.Entries++
			res.Removed++
			res.Units += e.Amount
			continue
		}
		if e.CheckedCount == 0 {
			continue
		}

		parts := partitionUnits(e, tab, now)
		for _, u := range parts.used {
			res.Units += u.Quantity
		}
		res.Entries++

		if len(parts.kept) == 0 {
			if err := s.entries.Delete(ctx, tx, e.ID); err != nil {
				return res, fmt.Errorf("removing %s: %w", e.Name, err)
			}
			res.Removed++
			continue
		}
		e.Units = parts.kept
		e.CheckedCount = 0
		e.Checked = false
		if err := s.entries.Update(ctx, tx, e); err != nil {
			return res, fmt.Errorf("updating %s: %w", e.Name, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return res, fmt.Errorf("committing consume: %w", err)
	}

	slog.Info("consumed checked units", "list", tab, "entries", res.Entries, "removed", res.Removed, "units", res.Units)
	return res, nil
}

// ============================================================================
// EXPIRY
// ============================================================================

// DiscardExpired drops expired units from the inventory. Checked counts are
// clamped to what is left and entries with nothing left are deleted.
func (s *Service) DiscardExpired(ctx context.Context) (ConsumeResult, error) {
	var res ConsumeResult

	items, err := s.entries.List(ctx, models.EntryFilter{Type: models.ListInventory})
	if err != nil {
		return res, fmt.Errorf("listing entries: %w", err)
	}
	now := s.clock.Now()

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return res, fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	for _, e := range items {
		kept := make([]models.Unit, 0, len(e.Units))
		dropped := 0
		for _, u := range e.Units {
			if util.IsExpired(u.Expiry, now) {
				dropped += u.Quantity
				continue
			}
			kept = append(kept, u)
		}
		if dropped == 0 && len(kept) == len(e.Units) {
			continue
		}

		res.Entries++
		res.Units += dropped
		if len(kept) == 0 {
			if err := s.entries.Delete(ctx, tx, e.ID); err != nil {
				return res, fmt.Errorf("removing %s: %w", e.Name, err)
			}
			res.Removed++
			continue
		}
		e.Units = kept
		e.CheckedCount = min(e.CheckedCount, e.Total())
		if err := s.entries.Update(ctx, tx, e); err != nil {
			return res, fmt.Errorf("updating %s: %w", e.Name, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return res, fmt.Errorf("committing discard: %w", err)
	}

	if res.Entries > 0 {
		slog.Info("discarded expired units", "entries", res.Entries, "removed", res.Removed, "units", res.Units)
	}
	return res, nil
}

// ExpiringSoon lists inventory units that have not expired yet but will
// within the given number of days, soonest first.
func (s *Service) ExpiringSoon(ctx context.Context, withinDays int) ([]ExpiringUnit, error) {
	items, err := s.entries.List(ctx, models.EntryFilter{Type: models.ListInventory})
	if err != nil {
		return nil, fmt.Errorf("listing entries: %w", err)
	}
	now := s.clock.Now()

	var out []ExpiringUnit
	for _, e := range items {
		for _, u := range e.Units {
			if !util.ExpiresWithin(u.Expiry, now, withinDays) {
				continue
			}
			expiry, _ := util.ParseExpiry(u.Expiry)
			out = append(out, ExpiringUnit{
				EntryID:  e.ID,
				Name:     e.Name,
				Unit:     u,
				Expiry:   expiry,
				DaysLeft: util.DaysUntil(now, expiry),
			})
		}
	}

	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Expiry.Before(out[j].Expiry)
	})
	return out, nil
}

// ============================================================================
// MOVE TO INVENTORY
// ============================================================================

// OpenMoveDraft starts moving a shopping entry into the inventory by writing
// a draft for it into slot.
func (s *Service) OpenMoveDraft(ctx context.Context, slot int, entryID string) (models.DraftRow, error) {
	entry, err := s.entries.GetByID(ctx, entryID)
	if err != nil {
		return models.DraftRow{}, fmt.Errorf("getting entry: %w", err)
	}
	if entry.Type != models.ListShopping {
		return models.DraftRow{}, fmt.Errorf("moving %s: %w", entry.Name, ErrWrongList)
	}

	draft := models.NewDraftFromEntry(entry)
	if err := s.drafts.Save(ctx, nil, slot, draft); err != nil {
		return models.DraftRow{}, fmt.Errorf("saving draft: %w", err)
	}
	return draft, nil
}

// GetDraft returns the draft in slot.
func (s *Service) GetDraft(ctx context.Context, slot int) (models.DraftRow, error) {
	return s.drafts.Get(ctx, slot)
}

// Drafts returns every open draft ordered by slot.
func (s *Service) Drafts(ctx context.Context) ([]models.DraftRow, error) {
	return s.drafts.List(ctx)
}

// EditDraft applies edits to the draft in slot and stores the result.
func (s *Service) EditDraft(ctx context.Context, slot int, edits ...models.Edit) (models.DraftRow, error) {
	draft, err := s.drafts.Get(ctx, slot)
	if err != nil {
		return models.DraftRow{}, fmt.Errorf("getting draft: %w", err)
	}

	draft = draft.Apply(edits...)
	if err := s.drafts.Save(ctx, nil, slot, draft); err != nil {
		return models.DraftRow{}, fmt.Errorf("saving draft: %w", err)
	}
	return draft, nil
}

// SubmitDraft moves the drafted shopping entry into the inventory. The draft
// must pass CheckDraft. The new inventory entry gets one unit per filled row
// and the shopping entry and draft are removed.
func (s *Service) SubmitDraft(ctx context.Context, slot int) (*models.InventoryEntry, error) {
	draft, err := s.drafts.Get(ctx, slot)
	if err != nil {
		return nil, fmt.Errorf("getting draft: %w", err)
	}
	if m := CheckDraft(draft); m.Any() {
		return nil, fmt.Errorf("submitting %s (expiry=%t quantity=%t): %w", draft.Name, m.Expiry, m.Quantity, ErrDraftMismatch)
	}
	units := draft.ToUnits()
	if len(units) == 0 {
		return nil, fmt.Errorf("submitting %s: %w", draft.Name, ErrEmptyDraft)
	}

	entry := &models.InventoryEntry{
		ID:    s.idGenerator.NewID(),
		Name:  draft.Name,
		Type:  models.ListInventory,
		Units: units,
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	if err := s.entries.Create(ctx, tx, entry); err != nil {
		return nil, fmt.Errorf("creating inventory entry: %w", err)
	}
	if err := s.drafts.Delete(ctx, tx, slot); err != nil {
		return nil, err
	}
	if err := s.entries.Delete(ctx, tx, draft.EntryID); err != nil {
		return nil, fmt.Errorf("removing shopping entry: %w", err)
	}
	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("committing move: %w", err)
	}

	slog.Info("moved entry to inventory", "name", entry.Name, "units", len(entry.Units), "total", entry.Total())
	return entry, nil
}

// DiscardDraft drops the draft in slot without moving anything.
func (s *Service) DiscardDraft(ctx context.Context, slot int) error {
	return s.drafts.Delete(ctx, nil, slot)
}
