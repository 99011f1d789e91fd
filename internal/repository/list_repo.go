// Package repository implements SQLite access for list entries and drafts.
package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/larder/larder/internal/models"
)

// ErrNotFound is returned when a lookup matches no row.
var ErrNotFound = errors.New("not found")

// ListRepository handles inventory and shopping list entries.
type ListRepository struct {
	db *sql.DB
}

// NewListRepository creates a new list repository.
func NewListRepository(db *sql.DB) *ListRepository {
	return &ListRepository{db: db}
}

// timestampFormat is fixed width so that text ordering matches time ordering.
const timestampFormat = "2006-01-02T15:04:05.000000000Z07:00"

const entryColumns = `id, name, list_type, amount, checked_count, quantity_display,
			checked, created_at, updated_at`

// Create inserts an entry and its units.
func (r *ListRepository) Create(ctx context.Context, tx *sql.Tx, e *models.InventoryEntry) error {
	if err := e.Validate(); err != nil {
		return fmt.Errorf("validation failed: %w", err)
	}

	query := `
		INSERT INTO list_entries (
			id, name, list_type, amount, checked_count, quantity_display,
			checked, created_at, updated_at
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`

	now := time.Now().UTC()
	if e.CreatedAt.IsZero() {
		e.CreatedAt = now
	}
	e.UpdatedAt = now

	return r.inTx(ctx, tx, func(tx *sql.Tx) error {
		_, err := tx.ExecContext(ctx, query,
			e.ID,
			e.Name,
			string(e.Type),
			scalarAmount(e),
			e.CheckedCount,
			nullableInt(e.QuantityDisplay),
			boolToInt(e.Checked),
			e.CreatedAt.Format(timestampFormat),
			e.UpdatedAt.Format(timestampFormat),
		)
		if err != nil {
			return fmt.Errorf("inserting entry: %w", err)
		}
		return r.writeUnits(ctx, tx, e)
	})
}

// GetByID retrieves an entry with its units.
func (r *ListRepository) GetByID(ctx context.Context, id string) (*models.InventoryEntry, error) {
	query := `SELECT ` + entryColumns + ` FROM list_entries WHERE id = ?`

	e, err := scanEntry(r.db.QueryRowContext(ctx, query, id))
	if err != nil {
		return nil, err
	}
	if e.IsScalar() {
		return e, nil
	}

	units, err := r.loadUnits(ctx, []string{id})
	if err != nil {
		return nil, err
	}
	e.Units = append(e.Units, units[id]...)
	return e, nil
}

// List returns entries matching the filter in insertion order.
func (r *ListRepository) List(ctx context.Context, filter models.EntryFilter) ([]*models.InventoryEntry, error) {
	var conditions []string
	var args []any

	if filter.Type != "" {
		conditions = append(conditions, "list_type = ?")
		args = append(args, string(filter.Type))
	}
	if filter.Name != "" {
		conditions = append(conditions, "name LIKE ?")
		args = append(args, "%"+filter.Name+"%")
	}

	whereClause := ""
	if len(conditions) > 0 {
		whereClause = "WHERE " + strings.Join(conditions, " AND ")
	}

	query := fmt.Sprintf(`SELECT %s FROM list_entries %s ORDER BY created_at, id`, entryColumns, whereClause)

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("querying entries: %w", err)
	}
	defer rows.Close()

	var entries []*models.InventoryEntry
	var ids []string
	for rows.Next() {
		e, err := scanEntry(rows)
		if err != nil {
			return nil, err
		}
		entries = append(entries, e)
		if !e.IsScalar() {
			ids = append(ids, e.ID)
		}
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating entries: %w", err)
	}

	if len(ids) == 0 {
		return entries, nil
	}
	units, err := r.loadUnits(ctx, ids)
	if err != nil {
		return nil, err
	}
	for _, e := range entries {
		if !e.IsScalar() {
			e.Units = append(e.Units, units[e.ID]...)
		}
	}
	return entries, nil
}

// Update rewrites an entry and replaces its units.
func (r *ListRepository) Update(ctx context.Context, tx *sql.Tx, e *models.InventoryEntry) error {
	if err := e.Validate(); err != nil {
		return fmt.Errorf("validation failed: %w", err)
	}

	query := `
		UPDATE list_entries SET
			name = ?, list_type = ?, amount = ?, checked_count = ?,
			quantity_display = ?, checked = ?, updated_at = ?
		WHERE id = ?`

	e.UpdatedAt = time.Now().UTC()

	return r.inTx(ctx, tx, func(tx *sql.Tx) error {
		result, err := tx.ExecContext(ctx, query,
			e.Name,
			string(e.Type),
			scalarAmount(e),
			e.CheckedCount,
			nullableInt(e.QuantityDisplay),
			boolToInt(e.Checked),
			e.UpdatedAt.Format(timestampFormat),
			e.ID,
		)
		if err != nil {
			return fmt.Errorf("updating entry: %w", err)
		}
		if n, _ := result.RowsAffected(); n == 0 {
			return fmt.Errorf("entry %s: %w", e.ID, ErrNotFound)
		}

		if _, err := tx.ExecContext(ctx, `DELETE FROM entry_units WHERE entry_id = ?`, e.ID); err != nil {
			return fmt.Errorf("clearing units: %w", err)
		}
		return r.writeUnits(ctx, tx, e)
	})
}

// Delete removes an entry. Units and drafts go with it.
func (r *ListRepository) Delete(ctx context.Context, tx *sql.Tx, id string) error {
	result, err := r.getExecer(tx).ExecContext(ctx, `DELETE FROM list_entries WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("deleting entry: %w", err)
	}
	if n, _ := result.RowsAffected(); n == 0 {
		return fmt.Errorf("entry %s: %w", id, ErrNotFound)
	}
	return nil
}

// CountByType returns the number of entries on each list.
func (r *ListRepository) CountByType(ctx context.Context) (map[models.ListType]int, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT list_type, COUNT(*) FROM list_entries GROUP BY list_type`)
	if err != nil {
		return nil, fmt.Errorf("counting entries: %w", err)
	}
	defer rows.Close()

	counts := make(map[models.ListType]int)
	for rows.Next() {
		var lt string
		var n int
		if err := rows.Scan(&lt, &n); err != nil {
			return nil, fmt.Errorf("scanning count: %w", err)
		}
		counts[models.ListType(lt)] = n
	}
	return counts, rows.Err()
}

// ============================================================================
// HELPERS
// ============================================================================

func (r *ListRepository) writeUnits(ctx context.Context, tx *sql.Tx, e *models.InventoryEntry) error {
	if len(e.Units) == 0 {
		return nil
	}
	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO entry_units (entry_id, position, quantity, measure, expiry)
		VALUES (?, ?, ?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("preparing unit insert: %w", err)
	}
	defer stmt.Close()

	for i, u := range e.Units {
		if _, err := stmt.ExecContext(ctx, e.ID, i, u.Quantity, u.Measure, u.Expiry); err != nil {
			return fmt.Errorf("inserting unit %d: %w", i, err)
		}
	}
	return nil
}

func (r *ListRepository) loadUnits(ctx context.Context, ids []string) (map[string][]models.Unit, error) {
	placeholders := strings.TrimSuffix(strings.Repeat("?,", len(ids)), ",")
	query := fmt.Sprintf(`
		SELECT entry_id, quantity, measure, expiry
		FROM entry_units
		WHERE entry_id IN (%s)
		ORDER BY entry_id, position`, placeholders)

	args := make([]any, len(ids))
	for i, id := range ids {
		args[i] = id
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("querying units: %w", err)
	}
	defer rows.Close()

	units := make(map[string][]models.Unit, len(ids))
	for rows.Next() {
		var entryID string
		var u models.Unit
		if err := rows.Scan(&entryID, &u.Quantity, &u.Measure, &u.Expiry); err != nil {
			return nil, fmt.Errorf("scanning unit: %w", err)
		}
		units[entryID] = append(units[entryID], u)
	}
	return units, rows.Err()
}

// inTx runs fn in tx, or in a transaction of its own when tx is nil.
func (r *ListRepository) inTx(ctx context.Context, tx *sql.Tx, fn func(*sql.Tx) error) error {
	if tx != nil {
		return fn(tx)
	}
	own, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer own.Rollback()

	if err := fn(own); err != nil {
		return err
	}
	return own.Commit()
}

func (r *ListRepository) getExecer(tx *sql.Tx) interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
} {
	if tx != nil {
		return tx
	}
	return r.db
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanEntry(row rowScanner) (*models.InventoryEntry, error) {
	var e models.InventoryEntry
	var listType, createdStr, updatedStr string
	var amount, display sql.NullInt64
	var checked int

	err := row.Scan(
		&e.ID,
		&e.Name,
		&listType,
		&amount,
		&e.CheckedCount,
		&display,
		&checked,
		&createdStr,
		&updatedStr,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("entry: %w", ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("scanning entry: %w", err)
	}

	e.Type = models.ListType(listType)
	if amount.Valid {
		e.Amount = int(amount.Int64)
	} else {
		e.Units = []models.Unit{}
	}
	if display.Valid {
		v := int(display.Int64)
		e.QuantityDisplay = &v
	}
	e.Checked = checked == 1
	e.CreatedAt, _ = time.Parse(timestampFormat, createdStr)
	e.UpdatedAt, _ = time.Parse(timestampFormat, updatedStr)

	return &e, nil
}

// scalarAmount stores Amount only for entries without units, so a NULL
// amount marks a unit based entry on the way back.
func scalarAmount(e *models.InventoryEntry) sql.NullInt64 {
	if !e.IsScalar() {
		return sql.NullInt64{}
	}
	return sql.NullInt64{Int64: int64(e.Amount), Valid: true}
}

func nullableInt(v *int) sql.NullInt64 {
	if v == nil {
		return sql.NullInt64{}
	}
	return sql.NullInt64{Int64: int64(*v), Valid: true}
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
