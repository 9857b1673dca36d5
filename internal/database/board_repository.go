package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/thenoetrevino/kanboard/internal/models"
	"github.com/thenoetrevino/kanboard/internal/types"
)

// BoardRepo handles all board-related database operations.
type BoardRepo struct {
	db *sql.DB
}

// CreateBoard creates a board and seeds it with the default column chain
func (r *BoardRepo) CreateBoard(ctx context.Context, name, description string) (*models.Board, error) {
	board := &models.Board{
		ID:          types.BoardID(newID()),
		Name:        name,
		Description: description,
		CreatedAt:   now(),
	}

	err := withTx(ctx, r.db, func(tx *sql.Tx) error {
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO boards (id, name, description, created_at) VALUES (?, ?, ?, ?)`,
			board.ID, board.Name, board.Description, board.CreatedAt,
		); err != nil {
			return fmt.Errorf("inserting board: %w", err)
		}
		return seedColumns(ctx, tx, board.ID, models.DefaultBoardColumns)
	})
	if err != nil {
		return nil, err
	}
	return board, nil
}

// seedColumns inserts names as a chain, head first
func seedColumns(ctx context.Context, tx *sql.Tx, boardID types.BoardID, names []string) error {
	ids := make([]types.ColumnID, len(names))
	for i := range names {
		ids[i] = types.ColumnID(newID())
	}

	for i, name := range names {
		next := types.UnassignedColumnID
		if i < len(ids)-1 {
			next = ids[i+1]
		}
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO boards_columns (id, board_id, name, next_column_id) VALUES (?, ?, ?, ?)`,
			ids[i], boardID, name, nullColumnID(next),
		); err != nil {
			return fmt.Errorf("seeding column %q: %w", name, err)
		}
	}
	return nil
}

// GetAllBoards returns every board, oldest first
func (r *BoardRepo) GetAllBoards(ctx context.Context) ([]*models.Board, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, name, description, created_at FROM boards ORDER BY created_at, name`)
	if err != nil {
		return nil, fmt.Errorf("querying boards: %w", err)
	}
	defer rows.Close()

	boards := []*models.Board{}
	for rows.Next() {
		b := &models.Board{}
		if err := rows.Scan(&b.ID, &b.Name, &b.Description, &b.CreatedAt); err != nil {
			return nil, fmt.Errorf("scanning board row: %w", err)
		}
		boards = append(boards, b)
	}
	return boards, rows.Err()
}

// GetBoardByID returns a board or models.ErrBoardNotFound
func (r *BoardRepo) GetBoardByID(ctx context.Context, id types.BoardID) (*models.Board, error) {
	b := &models.Board{}
	err := r.db.QueryRowContext(ctx,
		`SELECT id, name, description, created_at FROM boards WHERE id = ?`, id,
	).Scan(&b.ID, &b.Name, &b.Description, &b.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("board %s: %w", id, models.ErrBoardNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("querying board %s: %w", id, err)
	}
	return b, nil
}

// UpdateBoard changes a board's name and description
func (r *BoardRepo) UpdateBoard(ctx context.Context, id types.BoardID, name, description string) error {
	result, err := r.db.ExecContext(ctx,
		`UPDATE boards SET name = ?, description = ? WHERE id = ?`, name, description, id)
	if err != nil {
		return fmt.Errorf("updating board %s: %w", id, err)
	}
	return requireAffected(result, fmt.Errorf("board %s: %w", id, models.ErrBoardNotFound))
}

// DeleteBoard removes a board; columns, tasks and tags cascade
func (r *BoardRepo) DeleteBoard(ctx context.Context, id types.BoardID) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM boards WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("deleting board %s: %w", id, err)
	}
	return requireAffected(result, fmt.Errorf("board %s: %w", id, models.ErrBoardNotFound))
}
