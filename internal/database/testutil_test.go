package database

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/thenoetrevino/kanboard/internal/kanban"
	"github.com/thenoetrevino/kanboard/internal/models"
	"github.com/thenoetrevino/kanboard/internal/types"
)

// ============================================================================
// DATABASE SETUP HELPERS
// ============================================================================

// setupTestDB creates an in-memory database with the full schema
func setupTestDB(t *testing.T) *Repository {
	t.Helper()
	db, err := InitDB(context.Background(), MemoryPath)
	require.NoError(t, err, "Failed to create test database")
	t.Cleanup(func() { _ = db.Close() })
	return NewRepository(db)
}

// createTestBoard creates a board with the default Todo, In Progress, Done chain
func createTestBoard(t *testing.T, repo *Repository) (*models.Board, []*models.Column) {
	t.Helper()
	ctx := context.Background()

	board, err := repo.CreateBoard(ctx, "Test Board", "")
	require.NoError(t, err)

	return board, orderedColumns(t, repo, board.ID)
}

// orderedColumns loads a board's columns in chain order
func orderedColumns(t *testing.T, repo *Repository, boardID types.BoardID) []*models.Column {
	t.Helper()
	columns, err := repo.GetColumnsByBoard(context.Background(), boardID)
	require.NoError(t, err)
	sorted, err := kanban.SortColumns(columns)
	require.NoError(t, err)
	return sorted
}

func columnNames(columns []*models.Column) []string {
	names := make([]string, len(columns))
	for i, c := range columns {
		names[i] = c.Name
	}
	return names
}

func createTestTask(t *testing.T, repo *Repository, boardID types.BoardID, columnID types.ColumnID, name string) *models.Task {
	t.Helper()
	task, err := repo.CreateTask(context.Background(), CreateTaskParams{
		BoardID:  boardID,
		ColumnID: columnID,
		Name:     name,
	})
	require.NoError(t, err)
	return task
}

// positionsByName returns name -> position for a column
func positionsByName(t *testing.T, repo *Repository, boardID types.BoardID, columnID types.ColumnID) map[string]int {
	t.Helper()
	tasks, err := repo.GetTasksByColumn(context.Background(), boardID, columnID)
	require.NoError(t, err)
	out := make(map[string]int, len(tasks))
	for _, task := range tasks {
		out[task.Name] = task.Position
	}
	return out
}
