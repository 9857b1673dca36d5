package kanban

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/thenoetrevino/kanboard/internal/models"
	"github.com/thenoetrevino/kanboard/internal/types"
)

// ============================================================================
// Lifecycle
// ============================================================================

func TestStore_MountUnmount(t *testing.T) {
	s := NewStore(WithLogger(quietLogger()))
	assert.False(t, s.Mounted())
	assert.Empty(t, s.Columns())

	require.NoError(t, s.Mount(chain("A", "B"), tasksIn("A", "t1")))
	assert.True(t, s.Mounted())
	assert.Equal(t, []types.ColumnID{"", "A", "B"}, columnIDs(s.Columns()))

	s.Unmount()
	assert.False(t, s.Mounted())
	assert.Empty(t, s.Columns())
}

func TestStore_MountBrokenChainKeepsState(t *testing.T) {
	s := mountedStore(t, chain("A"), nil)

	err := s.Mount([]*models.Column{{ID: "X"}, {ID: "Y"}}, nil)
	require.ErrorIs(t, err, ErrBrokenChain)
	assert.Equal(t, []types.ColumnID{"", "A"}, columnIDs(s.Columns()))
}

func TestStore_AccessorsReturnCopies(t *testing.T) {
	s := mountedStore(t, chain("A"), tasksIn("A", "t1"))

	view := s.Columns()
	view[1].Tasks[0].Name = "changed"
	view[1].Name = "changed"

	task, ok := s.GetTaskByID("t1")
	require.True(t, ok)
	assert.Equal(t, "Task t1", task.Name)
	assert.Equal(t, "Column A", mustColumn(t, s, "A").Name)
}

func TestStore_Snapshot(t *testing.T) {
	columns := chain("A", "B")
	tasks := append(tasksIn("A", "t1", "t2"), tasksIn("", "u1")...)
	s := mountedStore(t, columns, tasks)

	gotColumns, gotTasks := s.Snapshot()
	assert.Len(t, gotColumns, 2)
	assert.Len(t, gotTasks, 3)

	again := mountedStore(t, gotColumns, gotTasks)
	assert.Equal(t, s.Columns(), again.Columns())
}

// ============================================================================
// Column mutations
// ============================================================================

func TestStore_ApplyColumnOperations_Insert(t *testing.T) {
	s := mountedStore(t, chain("A", "B"), nil)

	s.ApplyColumnOperations([]models.ColumnOperation{
		models.InsertColumnOp(models.Column{ID: "C", Name: "Column C"}),
		models.UpdateColumnOp(models.ColumnPatch{ID: "B", NextColumnID: models.ColumnIDPtr("C")}),
	})

	assert.Equal(t, []types.ColumnID{"", "A", "B", "C"}, columnIDs(s.Columns()))
	assert.NoError(t, s.Check())
}

func TestStore_ApplyColumnOperations_DeleteMiddle(t *testing.T) {
	s := mountedStore(t, chain("A", "B", "C"), nil)

	s.ApplyColumnOperations([]models.ColumnOperation{
		models.DeleteColumnOp("B"),
		models.UpdateColumnOp(models.ColumnPatch{ID: "A", NextColumnID: models.ColumnIDPtr("C")}),
	})

	assert.Equal(t, []types.ColumnID{"", "A", "C"}, columnIDs(s.Columns()))
	assert.Equal(t, types.ColumnID("C"), mustColumn(t, s, "A").NextColumnID)
	assert.NoError(t, s.Check())
}

func TestStore_AddColumn_Duplicate(t *testing.T) {
	s := mountedStore(t, chain("A"), nil)

	s.AddColumn(models.Column{ID: "A", Name: "again"})
	s.AddColumn(models.Column{ID: "", Name: "no id"})

	assert.Equal(t, []types.ColumnID{"", "A"}, columnIDs(s.Columns()))
	assert.Equal(t, "Column A", mustColumn(t, s, "A").Name)
}

func TestStore_UpdateColumn_Rename(t *testing.T) {
	s := mountedStore(t, chain("A"), nil)

	s.UpdateColumn(models.ColumnPatch{ID: "A", Name: models.StringPtr("Doing")})
	assert.Equal(t, "Doing", mustColumn(t, s, "A").Name)
}

func TestStore_ColumnMissesAreNoOps(t *testing.T) {
	s := mountedStore(t, chain("A"), tasksIn("A", "t1"))
	before := s.Columns()

	s.UpdateColumn(models.ColumnPatch{ID: "missing", Name: models.StringPtr("x")})
	s.UpdateColumn(models.ColumnPatch{ID: types.UnassignedColumnID, Name: models.StringPtr("x")})
	s.DeleteColumn("missing")
	s.DeleteColumn(types.UnassignedColumnID)

	assert.Equal(t, before, s.Columns())
}

// ============================================================================
// Task mutations
// ============================================================================

func TestStore_AddTask(t *testing.T) {
	s := mountedStore(t, chain("A"), tasksIn("A", "t1"))

	s.AddTask(models.Task{ID: "t2", ColumnID: "A", Position: 1})
	s.AddTask(models.Task{ID: "u1", ColumnID: types.UnassignedColumnID, Position: 0})

	assert.Equal(t, []types.TaskID{"t1", "t2"}, taskIDs(mustColumn(t, s, "A")))
	assert.Equal(t, []types.TaskID{"u1"}, taskIDs(mustColumn(t, s, types.UnassignedColumnID)))
	assert.NoError(t, s.Check())
}

func TestStore_AddTask_Misses(t *testing.T) {
	s := mountedStore(t, chain("A"), tasksIn("A", "t1"))
	before := s.Columns()

	s.AddTask(models.Task{ID: "t2", ColumnID: "missing"})
	s.AddTask(models.Task{ID: "t1", ColumnID: "A", Position: 1})

	assert.Equal(t, before, s.Columns())
}

func TestStore_UpdateTask(t *testing.T) {
	s := mountedStore(t, chain("A"), tasksIn("A", "t1"))

	s.UpdateTask(models.TaskPatch{ID: "t1", Name: models.StringPtr("renamed")})

	task, ok := s.GetTaskByID("t1")
	require.True(t, ok)
	assert.Equal(t, "renamed", task.Name)
}

func TestStore_UpdateTask_PositionResorts(t *testing.T) {
	s := mountedStore(t, chain("A"), tasksIn("A", "t1", "t2"))

	s.UpdateTask(models.TaskPatch{ID: "t1", Position: models.IntPtr(1)})
	s.UpdateTask(models.TaskPatch{ID: "t2", Position: models.IntPtr(0)})

	col := mustColumn(t, s, "A")
	assert.Equal(t, []types.TaskID{"t2", "t1"}, taskIDs(col))
	assert.Equal(t, []int{0, 1}, positions(col))
}

func TestStore_UpdateTaskTags(t *testing.T) {
	s := mountedStore(t, chain("A"), tasksIn("A", "t1"))
	tags := []*models.Tag{{ID: 1, Name: "bug"}}

	s.UpdateTaskTags("t1", tags)
	tags[0].Name = "changed"

	task, _ := s.GetTaskByID("t1")
	require.Len(t, task.Tags, 1)
	assert.Equal(t, "bug", task.Tags[0].Name)
}

func TestStore_UpdateTaskTags_SkipsNil(t *testing.T) {
	s := mountedStore(t, chain("A"), tasksIn("A", "t1"))

	s.UpdateTaskTags("t1", []*models.Tag{nil, {ID: 2, Name: "ui"}})

	task, _ := s.GetTaskByID("t1")
	require.Len(t, task.Tags, 1)
	assert.Equal(t, "ui", task.Tags[0].Name)
}

func TestStore_DeleteTask_Renumbers(t *testing.T) {
	s := mountedStore(t, chain("A"), tasksIn("A", "t1", "t2", "t3"))

	changed := s.DeleteTask("t1")

	col := mustColumn(t, s, "A")
	assert.Equal(t, []types.TaskID{"t2", "t3"}, taskIDs(col))
	assert.Equal(t, []int{0, 1}, positions(col))
	assert.Equal(t, []models.TaskMove{
		{ID: "t2", Position: 0, ColumnID: "A"},
		{ID: "t3", Position: 1, ColumnID: "A"},
	}, changed)
}

func TestStore_DeleteTask_Last(t *testing.T) {
	s := mountedStore(t, chain("A"), tasksIn("A", "t1", "t2"))

	assert.Empty(t, s.DeleteTask("t2"))
	assert.Nil(t, s.DeleteTask("missing"))
	assert.Equal(t, []types.TaskID{"t1"}, taskIDs(mustColumn(t, s, "A")))
}

func TestStore_ApplyTaskDeletion(t *testing.T) {
	s := mountedStore(t, chain("A"), tasksIn("A", "t1", "t2", "t3"))

	s.ApplyTaskDeletion(models.TaskDeletion{
		Updates: []models.TaskPositionUpdate{{ID: "t2", Position: 0}, {ID: "t3", Position: 1}},
		Deletes: []types.TaskID{"t1"},
	})

	col := mustColumn(t, s, "A")
	assert.Equal(t, []types.TaskID{"t2", "t3"}, taskIDs(col))
	assert.NoError(t, s.Check())

	// already deleted locally: applying the echo again changes nothing
	s.ApplyTaskDeletion(models.TaskDeletion{Deletes: []types.TaskID{"t1"}})
	assert.Equal(t, []types.TaskID{"t2", "t3"}, taskIDs(mustColumn(t, s, "A")))
}

// ============================================================================
// Placeholder lifecycle
// ============================================================================

func TestStore_UpdateTempTask(t *testing.T) {
	s := mountedStore(t, chain("A"), tasksIn("A", "t1", "t2"))

	count := len(mustColumn(t, s, "A").Tasks)
	s.AddTask(models.Task{ID: types.TempTaskID, Name: "draft", ColumnID: "A", Position: count})

	ok := s.UpdateTempTask(models.Task{ID: "42", Name: "draft", ColumnID: "A", Position: 99})
	require.True(t, ok)

	col := mustColumn(t, s, "A")
	assert.Equal(t, []types.TaskID{"t1", "t2", "42"}, taskIDs(col))
	assert.Equal(t, 2, col.Tasks[2].Position)
	_, stillTemp := s.GetTaskByID(types.TempTaskID)
	assert.False(t, stillTemp)
}

func TestStore_UpdateTempTask_KeepsPositionAfterMove(t *testing.T) {
	s := mountedStore(t, chain("A"), tasksIn("A", "t1"))
	s.AddTask(models.Task{ID: types.TempTaskID, ColumnID: "A", Position: 1})

	_, ok := s.MoveTask(types.TempTaskID, "A", 0, nil)
	require.True(t, ok)

	require.True(t, s.UpdateTempTask(models.Task{ID: "42", ColumnID: "A", Position: 1}))
	assert.Equal(t, []types.TaskID{"42", "t1"}, taskIDs(mustColumn(t, s, "A")))
	assert.NoError(t, s.Check())
}

func TestStore_UpdateTempTask_Misses(t *testing.T) {
	s := mountedStore(t, chain("A"), tasksIn("A", "t1"))

	assert.False(t, s.UpdateTempTask(models.Task{ID: "42", ColumnID: "A"}))
	assert.False(t, s.UpdateTempTask(models.Task{ID: "42", ColumnID: "missing"}))
	assert.Equal(t, []types.TaskID{"t1"}, taskIDs(mustColumn(t, s, "A")))
}

func TestStore_EvictTempTask(t *testing.T) {
	s := mountedStore(t, chain("A"), tasksIn("A", "t1"))
	s.AddTask(models.Task{ID: types.TempTaskID, ColumnID: "A", Position: 1})
	_, ok := s.MoveTask(types.TempTaskID, "A", 0, nil)
	require.True(t, ok)

	assert.True(t, s.EvictTempTask("A"))
	assert.False(t, s.EvictTempTask("A"))

	col := mustColumn(t, s, "A")
	assert.Equal(t, []types.TaskID{"t1"}, taskIDs(col))
	assert.Equal(t, []int{0}, positions(col))
}

func TestStore_TaskLookups(t *testing.T) {
	s := mountedStore(t, chain("A", "B"), tasksIn("B", "t1", "t2"))

	col, ok := s.GetTaskColumn("t2")
	require.True(t, ok)
	assert.Equal(t, types.ColumnID("B"), col.ID)

	_, ok = s.GetTaskColumn("missing")
	assert.False(t, ok)

	tasks := s.GetColumnTasks("B")
	assert.Len(t, tasks, 2)
	assert.Empty(t, s.GetColumnTasks("A"))
	assert.Nil(t, s.GetColumnTasks("missing"))
}
