package kanban

import (
	"cmp"
	"log/slog"
	"slices"

	"github.com/thenoetrevino/kanboard/internal/models"
	"github.com/thenoetrevino/kanboard/internal/types"
)

// Store mirrors the mounted board in memory.
//
// The first entry of the column list is always the Unassigned bucket once
// mounted. Lookup misses are logged as warnings and leave the state
// untouched; they are never returned as errors because a miss usually means
// the row vanished in a concurrent session.
//
// Store is not safe for concurrent use. Callers serialize access to it,
// typically by owning it from a single goroutine.
type Store struct {
	columns []*ColumnState
	mounted bool
	logger  *slog.Logger
}

// Option configures a Store
type Option func(*Store)

// WithLogger sets the logger that receives lookup warnings
func WithLogger(logger *slog.Logger) Option {
	return func(s *Store) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// NewStore creates an empty, unmounted store
func NewStore(opts ...Option) *Store {
	s := &Store{logger: slog.Default()}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Mount replaces the state with the board built from raw rows.
// A broken column chain is returned and the previous state is kept.
func (s *Store) Mount(columns []*models.Column, tasks []*models.Task) error {
	view, err := BuildBoard(columns, tasks)
	if err != nil {
		return err
	}
	s.columns = view
	s.mounted = true
	return nil
}

// Unmount clears the state
func (s *Store) Unmount() {
	s.columns = nil
	s.mounted = false
}

// Mounted reports whether a board is loaded
func (s *Store) Mounted() bool {
	return s.mounted
}

// Columns returns a deep copy of the view, Unassigned first
func (s *Store) Columns() []*ColumnState {
	out := make([]*ColumnState, len(s.columns))
	for i, col := range s.columns {
		out[i] = col.clone()
	}
	return out
}

// GetColumn returns a copy of one column and its tasks
func (s *Store) GetColumn(id types.ColumnID) (*ColumnState, bool) {
	col := s.column(id)
	if col == nil {
		return nil, false
	}
	return col.clone(), true
}

// GetTaskByID returns a copy of one task
func (s *Store) GetTaskByID(id types.TaskID) (*models.Task, bool) {
	col, idx := s.taskLocation(id)
	if col == nil {
		return nil, false
	}
	return col.Tasks[idx].Clone(), true
}

// GetColumnTasks returns copies of a column's tasks in position order
func (s *Store) GetColumnTasks(id types.ColumnID) []*models.Task {
	col := s.column(id)
	if col == nil {
		return nil
	}
	return col.clone().Tasks
}

// GetTaskColumn returns a copy of the column currently holding a task
func (s *Store) GetTaskColumn(id types.TaskID) (*ColumnState, bool) {
	col, _ := s.taskLocation(id)
	if col == nil {
		return nil, false
	}
	return col.clone(), true
}

// ColumnCount returns the number of view entries, Unassigned included
func (s *Store) ColumnCount() int {
	return len(s.columns)
}

// Snapshot flattens the view back into rows: the real columns in chain
// order and every task. Mounting a snapshot reproduces the view.
func (s *Store) Snapshot() ([]*models.Column, []*models.Task) {
	var columns []*models.Column
	var tasks []*models.Task
	for _, col := range s.columns {
		if !col.IsUnassigned() {
			c := col.Column
			columns = append(columns, &c)
		}
		for _, t := range col.Tasks {
			tasks = append(tasks, t.Clone())
		}
	}
	return columns, tasks
}

// ============================================================================
// Column mutations
// ============================================================================

// AddColumn appends a column to the view. Its chain link is not touched;
// the predecessor is relinked by the update operation that accompanies an
// insert.
func (s *Store) AddColumn(col models.Column) {
	if col.ID.IsNull() {
		s.logger.Warn("column has no id, adding column aborted", "name", col.Name)
		return
	}
	if s.column(col.ID) != nil {
		s.logger.Warn("column already exists, adding column aborted", "column_id", col.ID)
		return
	}
	s.columns = append(s.columns, &ColumnState{Column: col, Tasks: []*models.Task{}})
}

// UpdateColumn merges a patch into a column
func (s *Store) UpdateColumn(patch models.ColumnPatch) {
	col := s.column(patch.ID)
	if col == nil || col.IsUnassigned() {
		s.logger.Warn("column not found, updating column aborted", "column_id", patch.ID)
		return
	}
	patch.Apply(&col.Column)
}

// DeleteColumn removes a column and any tasks it still holds
func (s *Store) DeleteColumn(id types.ColumnID) {
	idx := s.columnIndex(id)
	if idx < 0 || id.IsNull() {
		s.logger.Warn("column not found, deleting column aborted", "column_id", id)
		return
	}
	s.columns = slices.Delete(s.columns, idx, idx+1)
}

// ApplyColumnOperations applies server-computed column changes in order
func (s *Store) ApplyColumnOperations(ops []models.ColumnOperation) {
	for _, op := range ops {
		switch op.Type {
		case models.OperationInsert:
			if op.Column == nil {
				s.logger.Warn("insert operation without column", "column_id", op.ID)
				continue
			}
			s.AddColumn(*op.Column)
		case models.OperationUpdate:
			if op.Patch == nil {
				s.logger.Warn("update operation without patch", "column_id", op.ID)
				continue
			}
			s.UpdateColumn(*op.Patch)
		case models.OperationDelete:
			s.DeleteColumn(op.ID)
		default:
			s.logger.Warn("unknown column operation", "type", op.Type, "column_id", op.ID)
		}
	}
}

// ============================================================================
// Task mutations
// ============================================================================

// AddTask appends a task to the column named by task.ColumnID
func (s *Store) AddTask(task models.Task) {
	col := s.column(task.ColumnID)
	if col == nil {
		s.logger.Warn("column not found, adding task aborted",
			"column_id", task.ColumnID, "task_id", task.ID)
		return
	}
	if existing, _ := s.taskLocation(task.ID); existing != nil {
		s.logger.Warn("task already exists, adding task aborted", "task_id", task.ID)
		return
	}
	col.Tasks = append(col.Tasks, task.Clone())
}

// UpdateTask merges a patch into a task. Patching the position re-sorts the
// column so the view stays in position order.
func (s *Store) UpdateTask(patch models.TaskPatch) {
	col, idx := s.taskLocation(patch.ID)
	if col == nil {
		s.logger.Warn("task not found, updating task aborted", "task_id", patch.ID)
		return
	}
	patch.Apply(col.Tasks[idx])
	if patch.Position != nil {
		sortByPosition(col.Tasks)
	}
}

// UpdateTaskTags replaces a task's tag set
func (s *Store) UpdateTaskTags(id types.TaskID, tags []*models.Tag) {
	col, idx := s.taskLocation(id)
	if col == nil {
		s.logger.Warn("task not found, updating tags aborted", "task_id", id)
		return
	}
	cloned := make([]*models.Tag, 0, len(tags))
	for _, tag := range tags {
		if tag == nil {
			s.logger.Warn("nil tag skipped", "task_id", id)
			continue
		}
		t := *tag
		cloned = append(cloned, &t)
	}
	col.Tasks[idx].Tags = cloned
}

// UpdateTempTask replaces the optimistic placeholder in confirmed.ColumnID
// with the row storage returned. The placeholder's position is kept because
// moves may have happened while the insert was in flight.
func (s *Store) UpdateTempTask(confirmed models.Task) bool {
	col := s.column(confirmed.ColumnID)
	if col == nil {
		s.logger.Warn("column not found, confirming task aborted", "column_id", confirmed.ColumnID)
		return false
	}
	idx := col.taskIndex(types.TempTaskID)
	if idx < 0 {
		s.logger.Warn("placeholder task not found, confirming task aborted", "column_id", confirmed.ColumnID)
		return false
	}

	placeholder := col.Tasks[idx]
	merged := confirmed.Clone()
	merged.Position = placeholder.Position
	if merged.Tags == nil {
		merged.Tags = placeholder.Tags
	}
	col.Tasks[idx] = merged
	return true
}

// EvictTempTask drops the placeholder from a column and closes the gap it
// leaves. It returns false when there is nothing to evict.
func (s *Store) EvictTempTask(columnID types.ColumnID) bool {
	col := s.column(columnID)
	if col == nil {
		return false
	}
	idx := col.taskIndex(types.TempTaskID)
	if idx < 0 {
		return false
	}
	col.Tasks = slices.Delete(col.Tasks, idx, idx+1)
	renumber(col.Tasks)
	return true
}

// DeleteTask removes a task and renumbers the survivors of its column.
// It returns the survivors whose position changed.
func (s *Store) DeleteTask(id types.TaskID) []models.TaskMove {
	col, idx := s.taskLocation(id)
	if col == nil {
		s.logger.Warn("task not found, deleting task aborted", "task_id", id)
		return nil
	}
	col.Tasks = slices.Delete(col.Tasks, idx, idx+1)
	return renumber(col.Tasks)
}

// ApplyTaskDeletion applies a server-side deletion result. Deleted tasks
// are removed first, then the server positions are written back.
func (s *Store) ApplyTaskDeletion(result models.TaskDeletion) {
	for _, id := range result.Deletes {
		if col, _ := s.taskLocation(id); col != nil {
			s.DeleteTask(id)
		}
	}
	for _, u := range result.Updates {
		s.UpdateTask(models.TaskPatch{ID: u.ID, Position: models.IntPtr(u.Position)})
	}
}

// ============================================================================
// Lookups
// ============================================================================

func (s *Store) columnIndex(id types.ColumnID) int {
	return slices.IndexFunc(s.columns, func(c *ColumnState) bool { return c.ID == id })
}

func (s *Store) column(id types.ColumnID) *ColumnState {
	if idx := s.columnIndex(id); idx >= 0 {
		return s.columns[idx]
	}
	return nil
}

// taskLocation finds the column currently holding a task
func (s *Store) taskLocation(id types.TaskID) (*ColumnState, int) {
	for _, col := range s.columns {
		if idx := col.taskIndex(id); idx >= 0 {
			return col, idx
		}
	}
	return nil, -1
}

// renumber writes array indices into positions and reports what changed
func renumber(tasks []*models.Task) []models.TaskMove {
	var changed []models.TaskMove
	for i, t := range tasks {
		if t.Position != i {
			t.Position = i
			changed = append(changed, models.TaskMove{ID: t.ID, Position: i, ColumnID: t.ColumnID})
		}
	}
	return changed
}

func sortByPosition(tasks []*models.Task) {
	slices.SortStableFunc(tasks, func(a, b *models.Task) int {
		return cmp.Compare(a.Position, b.Position)
	})
}
