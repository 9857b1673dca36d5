package kanban

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/thenoetrevino/kanboard/internal/models"
	"github.com/thenoetrevino/kanboard/internal/types"
)

func TestMoveColumn_SwapsAndRelinks(t *testing.T) {
	s := mountedStore(t, chain("A", "B", "C"), nil)

	// view: [Unassigned, A, B, C]; A swaps with C
	changes, ok := s.MoveColumn("A", 3, nil)
	require.True(t, ok)

	assert.Equal(t, []types.ColumnID{"", "C", "B", "A"}, columnIDs(s.Columns()))
	assert.Equal(t, []models.ColumnLink{
		{ID: "C", NextColumnID: "B"},
		{ID: "B", NextColumnID: "A"},
		{ID: "A", NextColumnID: ""},
	}, changes)
	assert.NoError(t, s.Check())
}

func TestMoveColumn_AdjacentSwap(t *testing.T) {
	s := mountedStore(t, chain("A", "B", "C"), nil)

	changes, ok := s.MoveColumn("B", 3, nil)
	require.True(t, ok)

	assert.Equal(t, []types.ColumnID{"", "A", "C", "B"}, columnIDs(s.Columns()))
	assert.Equal(t, []models.ColumnLink{
		{ID: "A", NextColumnID: "C"},
		{ID: "C", NextColumnID: "B"},
		{ID: "B", NextColumnID: ""},
	}, changes)
}

func TestMoveColumn_OntoItself(t *testing.T) {
	s := mountedStore(t, chain("A", "B"), nil)

	var got []models.ColumnLink
	changes, ok := s.MoveColumn("A", 1, func(diff []models.ColumnLink) { got = diff })
	require.True(t, ok)

	assert.Empty(t, changes)
	assert.NotNil(t, got)
	assert.Equal(t, []types.ColumnID{"", "A", "B"}, columnIDs(s.Columns()))
}

func TestMoveColumn_KeepsTasks(t *testing.T) {
	s := mountedStore(t, chain("A", "B"), tasksIn("A", "t1"))

	_, ok := s.MoveColumn("A", 2, nil)
	require.True(t, ok)

	assert.Equal(t, []types.TaskID{"t1"}, taskIDs(mustColumn(t, s, "A")))
}

func TestMoveColumn_Aborts(t *testing.T) {
	tests := []struct {
		name   string
		column types.ColumnID
		index  int
	}{
		{name: "onto unassigned", column: "A", index: 0},
		{name: "index past end", column: "A", index: 3},
		{name: "negative index", column: "A", index: -1},
		{name: "unassigned source", column: types.UnassignedColumnID, index: 1},
		{name: "missing source", column: "missing", index: 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := mountedStore(t, chain("A", "B"), nil)
			before := s.Columns()

			called := false
			changes, ok := s.MoveColumn(tt.column, tt.index, func([]models.ColumnLink) { called = true })

			assert.False(t, ok)
			assert.Nil(t, changes)
			assert.False(t, called)
			assert.Equal(t, before, s.Columns())
		})
	}
}
