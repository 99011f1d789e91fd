package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/larder/larder/internal/models"
)

// DraftRepository keeps move-to-inventory drafts keyed by slot.
type DraftRepository struct {
	db *sql.DB
}

// NewDraftRepository creates a new draft repository.
func NewDraftRepository(db *sql.DB) *DraftRepository {
	return &DraftRepository{db: db}
}

// draftRows is the stored form of the four parallel draft columns.
type draftRows struct {
	QuantityText []string `json:"quantityText"`
	Quantity     []int    `json:"quantity"`
	Unit         []string `json:"unit"`
	Expiries     []string `json:"expiries"`
	Expected     int      `json:"expected,omitempty"`
}

// Save writes the draft into slot, replacing whatever was there.
func (r *DraftRepository) Save(ctx context.Context, tx *sql.Tx, slot int, d models.DraftRow) error {
	if !d.Aligned() {
		return fmt.Errorf("draft for %s has misaligned rows", d.EntryID)
	}

	payload, err := json.Marshal(draftRows{
		QuantityText: d.QuantityText,
		Quantity:     d.Quantity,
		Unit:         d.Unit,
		Expiries:     d.Expiries,
		Expected:     d.Expected,
	})
	if err != nil {
		return fmt.Errorf("encoding draft: %w", err)
	}

	query := `
		INSERT INTO drafts (slot, entry_id, name, rows_json, updated_at)
		VALUES (?, ?, ?, ?, ?)
		ON CONFLICT(slot) DO UPDATE SET
			entry_id = excluded.entry_id,
			name = excluded.name,
			rows_json = excluded.rows_json,
			updated_at = excluded.updated_at`

	_, err = r.getExecer(tx).ExecContext(ctx, query,
		slot,
		d.EntryID,
		d.Name,
		string(payload),
		time.Now().UTC().Format(timestampFormat),
	)
	if err != nil {
		return fmt.Errorf("saving draft: %w", err)
	}
	return nil
}

// Get returns the draft in slot.
func (r *DraftRepository) Get(ctx context.Context, slot int) (models.DraftRow, error) {
	query := `SELECT entry_id, name, rows_json FROM drafts WHERE slot = ?`
	return scanDraft(r.db.QueryRowContext(ctx, query, slot))
}

// List returns all drafts ordered by slot.
func (r *DraftRepository) List(ctx context.Context) ([]models.DraftRow, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT entry_id, name, rows_json FROM drafts ORDER BY slot`)
	if err != nil {
		return nil, fmt.Errorf("querying drafts: %w", err)
	}
	defer rows.Close()

	var drafts []models.DraftRow
	for rows.Next() {
		d, err := scanDraft(rows)
		if err != nil {
			return nil, err
		}
		drafts = append(drafts, d)
	}
	return drafts, rows.Err()
}

// Delete removes the draft in slot. Deleting an empty slot is not an error.
func (r *DraftRepository) Delete(ctx context.Context, tx *sql.Tx, slot int) error {
	if _, err := r.getExecer(tx).ExecContext(ctx, `DELETE FROM drafts WHERE slot = ?`, slot); err != nil {
		return fmt.Errorf("deleting draft: %w", err)
	}
	return nil
}

func (r *DraftRepository) getExecer(tx *sql.Tx) interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
} {
	if tx != nil {
		return tx
	}
	return r.db
}

func scanDraft(row rowScanner) (models.DraftRow, error) {
	var d models.DraftRow
	var payload string

	err := row.Scan(&d.EntryID, &d.Name, &payload)
	if errors.Is(err, sql.ErrNoRows) {
		return d, fmt.Errorf("draft: %w", ErrNotFound)
	}
	if err != nil {
		return d, fmt.Errorf("scanning draft: %w", err)
	}

	var stored draftRows
	if err := json.Unmarshal([]byte(payload), &stored); err != nil {
		return d, fmt.Errorf("decoding draft: %w", err)
	}
	d.QuantityText = stored.QuantityText
	d.Quantity = stored.Quantity
	d.Unit = stored.Unit
	d.Expiries = stored.Expiries
	d.Expected = stored.Expected
	return d, nil
}
