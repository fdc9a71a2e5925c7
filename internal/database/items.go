package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"grocery/internal/domain"
	"grocery/internal/models"
)

const selectItem = `SELECT id, name, quantity, category, purchased FROM items`

type rowScanner interface {
	Scan(dest ...any) error
}

func scanItem(row rowScanner) (*models.Item, error) {
	var item models.Item
	if err := row.Scan(&item.ID, &item.Name, &item.Quantity, &item.Category, &item.Purchased); err != nil {
		return nil, err
	}
	return &item, nil
}

// CreateItem inserts a row, filling omitted fields with defaults, and
// returns the stored row.
func (db *DB) CreateItem(ctx context.Context, in models.ItemCreate) (*models.Item, error) {
	quantity := int64(models.DefaultQuantity)
	if v, ok := in.Quantity.Get(); ok {
		quantity = v
	}
	category, _ := in.Category.Get()
	purchased, _ := in.Purchased.Get()

	result, err := db.ExecContext(ctx,
		`INSERT INTO items (name, quantity, category, purchased) VALUES (?, ?, ?, ?)`,
		in.Name, quantity, category, purchased,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create item: %w", classify(err))
	}

	id, err := result.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("failed to get last insert id: %w", err)
	}

	return db.GetItem(ctx, id)
}

// ListItems returns items ordered by id. A nil filter returns every item.
func (db *DB) ListItems(ctx context.Context, purchased *bool) ([]models.Item, error) {
	var (
		rows *sql.Rows
		err  error
	)
	if purchased == nil {
		rows, err = db.QueryContext(ctx, selectItem+` ORDER BY id`)
	} else {
		rows, err = db.QueryContext(ctx, selectItem+` WHERE purchased = ? ORDER BY id`, *purchased)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to list items: %w", err)
	}
	defer rows.Close()

	items := make([]models.Item, 0)
	for rows.Next() {
		item, err := scanItem(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan item: %w", err)
		}
		items = append(items, *item)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to list items: %w", err)
	}
	return items, nil
}

func (db *DB) GetItem(ctx context.Context, id int64) (*models.Item, error) {
	item, err := scanItem(db.QueryRowContext(ctx, selectItem+` WHERE id = ?`, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrItemNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get item: %w", err)
	}
	return item, nil
}

// patchAssignments builds the SET clause from the fixed column list.
// Column names never come from the caller.
func patchAssignments(patch models.ItemPatch) ([]string, []any) {
	var (
		sets []string
		args []any
	)
	if v, ok := patch.Name.Get(); ok {
		sets = append(sets, "name = ?")
		args = append(args, v)
	}
	if v, ok := patch.Quantity.Get(); ok {
		sets = append(sets, "quantity = ?")
		args = append(args, v)
	}
	if v, ok := patch.Category.Get(); ok {
		sets = append(sets, "category = ?")
		args = append(args, v)
	}
	if v, ok := patch.Purchased.Get(); ok {
		sets = append(sets, "purchased = ?")
		args = append(args, v)
	}
	return sets, args
}

// UpdateItem writes the present fields of patch. An empty patch is a no-op
// that returns the current row.
func (db *DB) UpdateItem(ctx context.Context, id int64, patch models.ItemPatch) (*models.Item, error) {
	sets, args := patchAssignments(patch)
	if len(sets) == 0 {
		return db.GetItem(ctx, id)
	}

	query := `UPDATE items SET ` + strings.Join(sets, ", ") + ` WHERE id = ?`
	args = append(args, id)

	result, err := db.ExecContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to update item: %w", classify(err))
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return nil, fmt.Errorf("failed to get rows affected: %w", err)
	}
	if affected == 0 {
		return nil, domain.ErrItemNotFound
	}

	return db.GetItem(ctx, id)
}

// ToggleItem flips purchased inside one immediate transaction so concurrent
// toggles of the same id serialize.
func (db *DB) ToggleItem(ctx context.Context, id int64) (*models.Item, error) {
	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	var purchased bool
	err = tx.QueryRowContext(ctx, `SELECT purchased FROM items WHERE id = ?`, id).Scan(&purchased)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrItemNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read item in tx: %w", err)
	}

	if _, err := tx.ExecContext(ctx, `UPDATE items SET purchased = ? WHERE id = ?`, !purchased, id); err != nil {
		return nil, fmt.Errorf("failed to toggle item in tx: %w", err)
	}

	item, err := scanItem(tx.QueryRowContext(ctx, selectItem+` WHERE id = ?`, id))
	if err != nil {
		return nil, fmt.Errorf("failed to reload item in tx: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit toggle: %w", err)
	}
	return item, nil
}

// DeleteItem removes the row and reports whether one existed.
func (db *DB) DeleteItem(ctx context.Context, id int64) (bool, error) {
	result, err := db.ExecContext(ctx, `DELETE FROM items WHERE id = ?`, id)
	if err != nil {
		return false, fmt.Errorf("failed to delete item: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("failed to get rows affected: %w", err)
	}
	return affected > 0, nil
}
