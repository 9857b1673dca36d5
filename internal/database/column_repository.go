package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/thenoetrevino/kanboard/internal/models"
	"github.com/thenoetrevino/kanboard/internal/types"
)

// ErrMultipleTails is returned when appending to a board whose chain already
// has more than one tail.
var ErrMultipleTails = errors.New("board has more than one tail column")

// ColumnRepo handles all column-related database operations.
// Columns form a singly linked list per board through next_column_id.
type ColumnRepo struct {
	db *sql.DB
}

const columnFields = `id, board_id, name, next_column_id`

func scanColumn(row interface{ Scan(...any) error }) (*models.Column, error) {
	col := &models.Column{}
	var next sql.NullString
	if err := row.Scan(&col.ID, &col.BoardID, &col.Name, &next); err != nil {
		return nil, err
	}
	col.NextColumnID = columnIDFromNull(next)
	return col, nil
}

// CreateColumn appends a column to the end of the board's chain.
// The new column becomes the tail and the previous tail is relinked to it.
// The returned operations are [insert new] or [insert new, update previous tail].
func (r *ColumnRepo) CreateColumn(ctx context.Context, boardID types.BoardID, name string) (*models.Column, []models.ColumnOperation, error) {
	col := &models.Column{
		ID:      types.ColumnID(newID()),
		BoardID: boardID,
		Name:    name,
	}
	var ops []models.ColumnOperation

	err := withTx(ctx, r.db, func(tx *sql.Tx) error {
		tails, err := tailIDs(ctx, tx, boardID)
		if err != nil {
			return err
		}
		if len(tails) > 1 {
			return fmt.Errorf("board %s: %w", boardID, ErrMultipleTails)
		}

		if _, err := tx.ExecContext(ctx,
			`INSERT INTO boards_columns (id, board_id, name, next_column_id) VALUES (?, ?, ?, NULL)`,
			col.ID, col.BoardID, col.Name,
		); err != nil {
			return fmt.Errorf("inserting column: %w", err)
		}
		ops = append(ops, models.InsertColumnOp(*col))

		if len(tails) == 1 {
			if _, err := tx.ExecContext(ctx,
				`UPDATE boards_columns SET next_column_id = ? WHERE id = ?`, col.ID, tails[0],
			); err != nil {
				return fmt.Errorf("relinking tail %s: %w", tails[0], err)
			}
			ops = append(ops, models.UpdateColumnOp(models.ColumnPatch{
				ID:           tails[0],
				NextColumnID: models.ColumnIDPtr(col.ID),
			}))
		}
		return nil
	})
	if err != nil {
		return nil, nil, err
	}
	return col, ops, nil
}

func tailIDs(ctx context.Context, q querier, boardID types.BoardID) ([]types.ColumnID, error) {
	rows, err := q.QueryContext(ctx,
		`SELECT id FROM boards_columns WHERE board_id = ? AND next_column_id IS NULL`, boardID)
	if err != nil {
		return nil, fmt.Errorf("querying tail column: %w", err)
	}
	defer rows.Close()

	var ids []types.ColumnID
	for rows.Next() {
		var id types.ColumnID
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}

// GetColumnsByBoard returns the board's column rows in storage order.
// Chain order is reconstructed by the caller.
func (r *ColumnRepo) GetColumnsByBoard(ctx context.Context, boardID types.BoardID) ([]*models.Column, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT `+columnFields+` FROM boards_columns WHERE board_id = ? ORDER BY created_at, id`, boardID)
	if err != nil {
		return nil, fmt.Errorf("querying columns for board: %w", err)
	}
	defer rows.Close()

	columns := []*models.Column{}
	for rows.Next() {
		col, err := scanColumn(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning column row: %w", err)
		}
		columns = append(columns, col)
	}
	return columns, rows.Err()
}

// GetColumnByID returns a column or models.ErrColumnNotFound
func (r *ColumnRepo) GetColumnByID(ctx context.Context, id types.ColumnID) (*models.Column, error) {
	return getColumn(ctx, r.db, id)
}

func getColumn(ctx context.Context, q querier, id types.ColumnID) (*models.Column, error) {
	col, err := scanColumn(q.QueryRowContext(ctx,
		`SELECT `+columnFields+` FROM boards_columns WHERE id = ?`, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("column %s: %w", id, models.ErrColumnNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("querying column %s: %w", id, err)
	}
	return col, nil
}

// RenameColumn changes a column's name and returns the matching update operation
func (r *ColumnRepo) RenameColumn(ctx context.Context, id types.ColumnID, name string) ([]models.ColumnOperation, error) {
	result, err := r.db.ExecContext(ctx, `UPDATE boards_columns SET name = ? WHERE id = ?`, name, id)
	if err != nil {
		return nil, fmt.Errorf("renaming column %s: %w", id, err)
	}
	if err := requireAffected(result, fmt.Errorf("column %s: %w", id, models.ErrColumnNotFound)); err != nil {
		return nil, err
	}
	return []models.ColumnOperation{
		models.UpdateColumnOp(models.ColumnPatch{ID: id, Name: models.StringPtr(name)}),
	}, nil
}

// DeleteColumn unlinks a column from its chain and deletes it.
// The predecessor, if any, is pointed at the deleted column's successor.
// Tasks still in the column fall back to the Unassigned bucket.
// The returned operations are [delete] or [delete, update predecessor].
func (r *ColumnRepo) DeleteColumn(ctx context.Context, id types.ColumnID) ([]models.ColumnOperation, error) {
	var ops []models.ColumnOperation

	err := withTx(ctx, r.db, func(tx *sql.Tx) error {
		col, err := getColumn(ctx, tx, id)
		if err != nil {
			return err
		}

		var predecessor types.ColumnID
		err = tx.QueryRowContext(ctx,
			`SELECT id FROM boards_columns WHERE board_id = ? AND next_column_id = ?`, col.BoardID, id,
		).Scan(&predecessor)
		if err != nil && !errors.Is(err, sql.ErrNoRows) {
			return fmt.Errorf("querying predecessor of %s: %w", id, err)
		}

		if !predecessor.IsNull() {
			if _, err := tx.ExecContext(ctx,
				`UPDATE boards_columns SET next_column_id = ? WHERE id = ?`,
				nullColumnID(col.NextColumnID), predecessor,
			); err != nil {
				return fmt.Errorf("relinking predecessor %s: %w", predecessor, err)
			}
		}

		if _, err := tx.ExecContext(ctx, `DELETE FROM boards_columns WHERE id = ?`, id); err != nil {
			return fmt.Errorf("deleting column %s: %w", id, err)
		}

		ops = append(ops, models.DeleteColumnOp(id))
		if !predecessor.IsNull() {
			ops = append(ops, models.UpdateColumnOp(models.ColumnPatch{
				ID:           predecessor,
				NextColumnID: models.ColumnIDPtr(col.NextColumnID),
			}))
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return ops, nil
}

// RelinkColumns writes a column move diff in one transaction
func (r *ColumnRepo) RelinkColumns(ctx context.Context, links []models.ColumnLink) error {
	if len(links) == 0 {
		return nil
	}
	return withTx(ctx, r.db, func(tx *sql.Tx) error {
		for _, link := range links {
			result, err := tx.ExecContext(ctx,
				`UPDATE boards_columns SET next_column_id = ? WHERE id = ?`,
				nullColumnID(link.NextColumnID), link.ID,
			)
			if err != nil {
				return fmt.Errorf("relinking column %s: %w", link.ID, err)
			}
			if err := requireAffected(result, fmt.Errorf("column %s: %w", link.ID, models.ErrColumnNotFound)); err != nil {
				return err
			}
		}
		return nil
	})
}

// CountTasksInColumn returns how many tasks a column holds
func (r *ColumnRepo) CountTasksInColumn(ctx context.Context, id types.ColumnID) (int, error) {
	var count int
	if err := r.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM tasks WHERE column_id = ?`, id,
	).Scan(&count); err != nil {
		return 0, fmt.Errorf("counting tasks in column %s: %w", id, err)
	}
	return count, nil
}
