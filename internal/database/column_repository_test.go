package database

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/thenoetrevino/kanboard/internal/models"
	"github.com/thenoetrevino/kanboard/internal/types"
)

func TestCreateColumn_AppendsToTail(t *testing.T) {
	repo := setupTestDB(t)
	ctx := context.Background()
	board, columns := createTestBoard(t, repo)
	done := columns[2]

	col, ops, err := repo.CreateColumn(ctx, board.ID, "Archive")
	require.NoError(t, err)

	require.Len(t, ops, 2)
	assert.Equal(t, models.InsertColumnOp(*col), ops[0])
	assert.Equal(t, models.UpdateColumnOp(models.ColumnPatch{
		ID:           done.ID,
		NextColumnID: models.ColumnIDPtr(col.ID),
	}), ops[1])

	ordered := orderedColumns(t, repo, board.ID)
	assert.Equal(t, []string{"Todo", "In Progress", "Done", "Archive"}, columnNames(ordered))
}

func TestCreateColumn_FirstColumn(t *testing.T) {
	repo := setupTestDB(t)
	ctx := context.Background()
	board, columns := createTestBoard(t, repo)
	for _, col := range columns {
		_, err := repo.DeleteColumn(ctx, col.ID)
		require.NoError(t, err)
	}

	col, ops, err := repo.CreateColumn(ctx, board.ID, "Only")
	require.NoError(t, err)

	assert.Equal(t, []models.ColumnOperation{models.InsertColumnOp(*col)}, ops)
	assert.True(t, col.IsTail())
}

func TestDeleteColumn_Middle(t *testing.T) {
	repo := setupTestDB(t)
	ctx := context.Background()
	board, columns := createTestBoard(t, repo)
	a, b, c := columns[0], columns[1], columns[2]

	ops, err := repo.DeleteColumn(ctx, b.ID)
	require.NoError(t, err)

	assert.Equal(t, []models.ColumnOperation{
		models.DeleteColumnOp(b.ID),
		models.UpdateColumnOp(models.ColumnPatch{ID: a.ID, NextColumnID: models.ColumnIDPtr(c.ID)}),
	}, ops)

	ordered := orderedColumns(t, repo, board.ID)
	assert.Equal(t, []string{"Todo", "Done"}, columnNames(ordered))
}

func TestDeleteColumn_Head(t *testing.T) {
	repo := setupTestDB(t)
	ctx := context.Background()
	board, columns := createTestBoard(t, repo)

	ops, err := repo.DeleteColumn(ctx, columns[0].ID)
	require.NoError(t, err)

	assert.Equal(t, []models.ColumnOperation{models.DeleteColumnOp(columns[0].ID)}, ops)
	assert.Equal(t, []string{"In Progress", "Done"}, columnNames(orderedColumns(t, repo, board.ID)))
}

func TestDeleteColumn_Tail(t *testing.T) {
	repo := setupTestDB(t)
	ctx := context.Background()
	board, columns := createTestBoard(t, repo)

	ops, err := repo.DeleteColumn(ctx, columns[2].ID)
	require.NoError(t, err)

	assert.Equal(t, []models.ColumnOperation{
		models.DeleteColumnOp(columns[2].ID),
		models.UpdateColumnOp(models.ColumnPatch{
			ID:           columns[1].ID,
			NextColumnID: models.ColumnIDPtr(types.UnassignedColumnID),
		}),
	}, ops)

	ordered := orderedColumns(t, repo, board.ID)
	assert.Equal(t, []string{"Todo", "In Progress"}, columnNames(ordered))
	assert.True(t, ordered[1].IsTail())
}

func TestDeleteColumn_TasksBecomeUnassigned(t *testing.T) {
	repo := setupTestDB(t)
	ctx := context.Background()
	board, columns := createTestBoard(t, repo)
	task := createTestTask(t, repo, board.ID, columns[0].ID, "orphan")

	_, err := repo.DeleteColumn(ctx, columns[0].ID)
	require.NoError(t, err)

	got, err := repo.GetTaskByID(ctx, task.ID)
	require.NoError(t, err)
	assert.True(t, got.ColumnID.IsNull())
}

func TestDeleteColumn_NotFound(t *testing.T) {
	repo := setupTestDB(t)

	_, err := repo.DeleteColumn(context.Background(), "missing")
	assert.ErrorIs(t, err, models.ErrColumnNotFound)
}

func TestRenameColumn(t *testing.T) {
	repo := setupTestDB(t)
	ctx := context.Background()
	_, columns := createTestBoard(t, repo)

	ops, err := repo.RenameColumn(ctx, columns[0].ID, "Backlog")
	require.NoError(t, err)
	assert.Equal(t, []models.ColumnOperation{
		models.UpdateColumnOp(models.ColumnPatch{ID: columns[0].ID, Name: models.StringPtr("Backlog")}),
	}, ops)

	got, err := repo.GetColumnByID(ctx, columns[0].ID)
	require.NoError(t, err)
	assert.Equal(t, "Backlog", got.Name)

	_, err = repo.RenameColumn(ctx, "missing", "x")
	assert.ErrorIs(t, err, models.ErrColumnNotFound)
}

func TestRelinkColumns(t *testing.T) {
	repo := setupTestDB(t)
	ctx := context.Background()
	board, columns := createTestBoard(t, repo)
	a, b, c := columns[0], columns[1], columns[2]

	// swap Todo and Done: Done -> In Progress -> Todo
	err := repo.RelinkColumns(ctx, []models.ColumnLink{
		{ID: c.ID, NextColumnID: b.ID},
		{ID: b.ID, NextColumnID: a.ID},
		{ID: a.ID, NextColumnID: types.UnassignedColumnID},
	})
	require.NoError(t, err)

	assert.Equal(t, []string{"Done", "In Progress", "Todo"}, columnNames(orderedColumns(t, repo, board.ID)))
}

func TestRelinkColumns_RollsBackOnMissingColumn(t *testing.T) {
	repo := setupTestDB(t)
	ctx := context.Background()
	board, columns := createTestBoard(t, repo)

	err := repo.RelinkColumns(ctx, []models.ColumnLink{
		{ID: columns[0].ID, NextColumnID: columns[2].ID},
		{ID: "missing", NextColumnID: types.UnassignedColumnID},
	})
	require.ErrorIs(t, err, models.ErrColumnNotFound)

	assert.Equal(t, models.DefaultBoardColumns, columnNames(orderedColumns(t, repo, board.ID)))
}

func TestCountTasksInColumn(t *testing.T) {
	repo := setupTestDB(t)
	ctx := context.Background()
	board, columns := createTestBoard(t, repo)
	createTestTask(t, repo, board.ID, columns[1].ID, "one")
	createTestTask(t, repo, board.ID, columns[1].ID, "two")

	count, err := repo.CountTasksInColumn(ctx, columns[1].ID)
	require.NoError(t, err)
	assert.Equal(t, 2, count)
}
