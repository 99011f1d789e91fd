package inventory

import (
	"errors"
	"time"

	"github.com/larder/larder/internal/models"
	"github.com/larder/larder/internal/repository"
)

var (
	// ErrNotFound is returned when an entry or draft does not exist.
	ErrNotFound = repository.ErrNotFound

	// ErrDraftMismatch is returned when a draft is submitted while its
	// quantity or expiry columns disagree with its row count.
	ErrDraftMismatch = errors.New("draft has mismatched rows")

	// ErrEmptyDraft is returned when a draft has no row with a quantity.
	ErrEmptyDraft = errors.New("draft has no quantities")

	// ErrNoQuantity is returned when an entry is created with neither an
	// amount nor any units.
	ErrNoQuantity = errors.New("entry needs an amount or at least one unit")

	// ErrWrongList is returned when an operation is applied to an entry on
	// the other list.
	ErrWrongList = errors.New("entry is on the wrong list")
)

// CreateEntryInput contains data for adding an entry to a list.
type CreateEntryInput struct {
	Name  string
	Type  models.ListType
	Units []models.Unit

	// Amount is used instead of Units for entries that only track a count.
	Amount *int
}

// ExpiringUnit is one unit of an inventory entry that expires soon.
type ExpiringUnit struct {
	EntryID  string
	Name     string
	Unit     models.Unit
	Expiry   time.Time
	DaysLeft int
}

// ConsumeResult summarises a consume or discard run.
type ConsumeResult struct {
	Entries int // Entries changed
	Removed int // Entries deleted because nothing was left
	Units   int // Quantity taken off the list
}
