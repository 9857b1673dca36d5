// Package database handles the initialization and connection to the SQLite db
package database

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	_ "modernc.org/sqlite"
)

// MemoryPath opens a private in-memory database
const MemoryPath = ":memory:"

// InitDB opens the database at path, creating its directory if needed,
// configures the connection and runs migrations.
func InitDB(ctx context.Context, path string) (*sql.DB, error) {
	if path != MemoryPath {
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			return nil, fmt.Errorf("failed to create directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	closeOnErr := func(err error) (*sql.DB, error) {
		if closeErr := db.Close(); closeErr != nil {
			slog.Error("error closing db", "error", closeErr)
		}
		return nil, err
	}

	pragmas := []string{
		// required for CASCADE deletions
		"PRAGMA foreign_keys = ON",
		"PRAGMA journal_mode = WAL",
		// sqlite retries for this long before returning SQLITE_BUSY
		"PRAGMA busy_timeout = 5000",
	}
	for _, pragma := range pragmas {
		if _, err := db.ExecContext(ctx, pragma); err != nil {
			slog.Error("failed to apply pragma", "pragma", pragma, "error", err)
			return closeOnErr(fmt.Errorf("%s: %w", pragma, err))
		}
	}

	if err := db.PingContext(ctx); err != nil {
		return closeOnErr(fmt.Errorf("database ping failed: %w", err))
	}

	// single writer connection; also keeps an in-memory database alive
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)

	if err := runMigrations(ctx, db); err != nil {
		return closeOnErr(fmt.Errorf("failed to run migrations: %w", err))
	}

	return db, nil
}
