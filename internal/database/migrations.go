package database

import (
	"context"
	"database/sql"
	"fmt"
)

// schema is idempotent; every statement uses IF NOT EXISTS.
// next_column_id carries no foreign key: the chain is rebuilt with several
// updates inside one transaction and its shape is validated when a board is
// loaded.
var schema = []string{
	`CREATE TABLE IF NOT EXISTS boards (
		id TEXT PRIMARY KEY,
		name TEXT NOT NULL,
		description TEXT NOT NULL DEFAULT '',
		created_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
	)`,
	`CREATE TABLE IF NOT EXISTS boards_columns (
		id TEXT PRIMARY KEY,
		board_id TEXT NOT NULL,
		name TEXT NOT NULL,
		next_column_id TEXT,
		created_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP,
		FOREIGN KEY (board_id) REFERENCES boards(id) ON DELETE CASCADE
	)`,
	`CREATE INDEX IF NOT EXISTS idx_boards_columns_board ON boards_columns(board_id)`,
	`CREATE TABLE IF NOT EXISTS tasks (
		id TEXT PRIMARY KEY,
		board_id TEXT NOT NULL,
		column_id TEXT,
		name TEXT NOT NULL,
		body TEXT NOT NULL DEFAULT '',
		position INTEGER NOT NULL DEFAULT 0,
		assignee_id TEXT,
		due_date TIMESTAMP,
		created_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP,
		updated_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP,
		FOREIGN KEY (board_id) REFERENCES boards(id) ON DELETE CASCADE,
		FOREIGN KEY (column_id) REFERENCES boards_columns(id) ON DELETE SET NULL
	)`,
	`CREATE INDEX IF NOT EXISTS idx_tasks_column ON tasks(board_id, column_id, position)`,
	`CREATE TABLE IF NOT EXISTS tags (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		board_id TEXT NOT NULL,
		name TEXT NOT NULL,
		color TEXT NOT NULL DEFAULT 'transparent',
		UNIQUE(board_id, name),
		FOREIGN KEY (board_id) REFERENCES boards(id) ON DELETE CASCADE
	)`,
	`CREATE TABLE IF NOT EXISTS tasks_tags (
		task_id TEXT NOT NULL,
		tag_id INTEGER NOT NULL,
		PRIMARY KEY (task_id, tag_id),
		FOREIGN KEY (task_id) REFERENCES tasks(id) ON DELETE CASCADE,
		FOREIGN KEY (tag_id) REFERENCES tags(id) ON DELETE CASCADE
	)`,
}

// runMigrations creates the database schema
func runMigrations(ctx context.Context, db *sql.DB) error {
	for i, stmt := range schema {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("migration %d: %w", i, err)
		}
	}
	return nil
}
