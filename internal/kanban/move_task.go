package kanban

import (
	"slices"

	"github.com/thenoetrevino/kanboard/internal/models"
	"github.com/thenoetrevino/kanboard/internal/types"
)

// MoveTask moves a task to index within dest, renumbers the source and
// destination columns, and returns every task whose position changed plus
// the moved task itself. An index past the end of dest appends.
//
// onComputed, when set, is called synchronously with the same diff after the
// in-memory state has been updated and before MoveTask returns; callers use
// it to start persistence. ok is false when the move was aborted, in which
// case the state is untouched and onComputed is not called.
func (s *Store) MoveTask(
	taskID types.TaskID,
	dest types.ColumnID,
	index int,
	onComputed func([]models.TaskMove),
) (changes []models.TaskMove, ok bool) {
	from, fromIdx := s.taskLocation(taskID)
	if from == nil {
		s.logger.Warn("task not found, moving task aborted", "task_id", taskID)
		return nil, false
	}
	to := s.column(dest)
	if to == nil {
		s.logger.Warn("column not found, moving task aborted", "column_id", dest, "task_id", taskID)
		return nil, false
	}
	if index < 0 {
		s.logger.Warn("negative index, moving task aborted", "task_id", taskID, "index", index)
		return nil, false
	}

	changes = moveTask(from, to, fromIdx, index)
	if onComputed != nil {
		onComputed(changes)
	}
	return changes, true
}

func moveTask(from, to *ColumnState, fromIdx, toIdx int) []models.TaskMove {
	// measured before removal so a same-column move to len(tasks) appends
	isAppend := toIdx > len(to.Tasks)

	task := from.Tasks[fromIdx]
	from.Tasks = slices.Delete(from.Tasks, fromIdx, fromIdx+1)
	task.ColumnID = to.ID

	if isAppend || toIdx >= len(to.Tasks) {
		to.Tasks = append(to.Tasks, task)
	} else {
		to.Tasks = slices.Insert(to.Tasks, toIdx, task)
	}

	var affected []models.TaskMove
	seen := make(map[types.TaskID]bool)

	for _, col := range []*ColumnState{from, to} {
		for i, t := range col.Tasks {
			previous := t.Position
			t.Position = i
			if (previous != i || t.ID == task.ID) && !seen[t.ID] {
				seen[t.ID] = true
				affected = append(affected, models.TaskMove{ID: t.ID, Position: i, ColumnID: t.ColumnID})
			}
		}
	}

	return affected
}
