package testutil

import (
	"context"
	"testing"

	"github.com/thenoetrevino/kanboard/internal/database"
	"github.com/thenoetrevino/kanboard/internal/models"
	"github.com/thenoetrevino/kanboard/internal/types"
)

// SetupTestRepo opens a migrated in-memory database wrapped in a Repository.
// The connection is closed by t.Cleanup.
func SetupTestRepo(t *testing.T) *database.Repository {
	t.Helper()

	db, err := database.InitDB(context.Background(), database.MemoryPath)
	if err != nil {
		t.Fatalf("Failed to create test database: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })

	return database.NewRepository(db)
}

// CreateTestBoard creates a board seeded with the default columns
func CreateTestBoard(t *testing.T, repo database.DataStore, name string) *models.Board {
	t.Helper()

	board, err := repo.CreateBoard(context.Background(), name, "")
	if err != nil {
		t.Fatalf("Failed to create board %q: %v", name, err)
	}
	return board
}

// ColumnIDByName returns the id of the board column called name
func ColumnIDByName(t *testing.T, repo database.DataStore, boardID types.BoardID, name string) types.ColumnID {
	t.Helper()

	columns, err := repo.GetColumnsByBoard(context.Background(), boardID)
	if err != nil {
		t.Fatalf("Failed to list columns: %v", err)
	}
	for _, c := range columns {
		if c.Name == name {
			return c.ID
		}
	}
	t.Fatalf("No column named %q on board %s", name, boardID)
	return ""
}

// CreateTestTask appends a task to a column
func CreateTestTask(t *testing.T, repo database.DataStore, boardID types.BoardID, columnID types.ColumnID, name string) *models.Task {
	t.Helper()

	task, err := repo.CreateTask(context.Background(), database.CreateTaskParams{
		BoardID:  boardID,
		ColumnID: columnID,
		Name:     name,
	})
	if err != nil {
		t.Fatalf("Failed to create task %q: %v", name, err)
	}
	return task
}
