package kanban

import (
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/thenoetrevino/kanboard/internal/models"
	"github.com/thenoetrevino/kanboard/internal/types"
)

// ============================================================================
// TEST HELPERS
// ============================================================================

// chain builds columns linked in the given order, tail last
func chain(ids ...types.ColumnID) []*models.Column {
	columns := make([]*models.Column, len(ids))
	for i, id := range ids {
		next := types.UnassignedColumnID
		if i < len(ids)-1 {
			next = ids[i+1]
		}
		columns[i] = &models.Column{ID: id, Name: "Column " + string(id), NextColumnID: next}
	}
	return columns
}

// tasksIn builds tasks for one column with positions 0..n-1
func tasksIn(column types.ColumnID, ids ...types.TaskID) []*models.Task {
	tasks := make([]*models.Task, len(ids))
	for i, id := range ids {
		tasks[i] = &models.Task{ID: id, Name: "Task " + string(id), ColumnID: column, Position: i}
	}
	return tasks
}

func quietLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func mountedStore(t *testing.T, columns []*models.Column, tasks []*models.Task) *Store {
	t.Helper()
	s := NewStore(WithLogger(quietLogger()))
	require.NoError(t, s.Mount(columns, tasks))
	return s
}

func columnIDs(view []*ColumnState) []types.ColumnID {
	ids := make([]types.ColumnID, len(view))
	for i, col := range view {
		ids[i] = col.ID
	}
	return ids
}

func taskIDs(col *ColumnState) []types.TaskID {
	ids := make([]types.TaskID, len(col.Tasks))
	for i, t := range col.Tasks {
		ids[i] = t.ID
	}
	return ids
}

func positions(col *ColumnState) []int {
	out := make([]int, len(col.Tasks))
	for i, t := range col.Tasks {
		out[i] = t.Position
	}
	return out
}

func moveIDs(moves []models.TaskMove) []types.TaskID {
	ids := make([]types.TaskID, len(moves))
	for i, m := range moves {
		ids[i] = m.ID
	}
	return ids
}

func mustColumn(t *testing.T, s *Store, id types.ColumnID) *ColumnState {
	t.Helper()
	col, ok := s.GetColumn(id)
	require.True(t, ok, "column %q should exist", id)
	return col
}
