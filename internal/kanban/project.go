package kanban

import (
	"cmp"
	"slices"
	"strings"

	"github.com/thenoetrevino/kanboard/internal/models"
	"github.com/thenoetrevino/kanboard/internal/types"
)

// ColumnState is a column of the mounted board together with its tasks,
// ordered by position.
type ColumnState struct {
	models.Column
	Tasks []*models.Task `json:"tasks"`
}

// IsUnassigned reports whether this is the synthetic bucket
func (c *ColumnState) IsUnassigned() bool {
	return c.ID == types.UnassignedColumnID
}

func (c *ColumnState) clone() *ColumnState {
	out := &ColumnState{Column: c.Column, Tasks: make([]*models.Task, len(c.Tasks))}
	for i, t := range c.Tasks {
		out.Tasks[i] = t.Clone()
	}
	return out
}

func (c *ColumnState) taskIndex(id types.TaskID) int {
	return slices.IndexFunc(c.Tasks, func(t *models.Task) bool { return t.ID == id })
}

// newUnassignedColumn returns the synthetic bucket that always leads the view
func newUnassignedColumn() *ColumnState {
	return &ColumnState{
		Column: models.Column{
			ID:   types.UnassignedColumnID,
			Name: types.UnassignedColumnName,
		},
		Tasks: []*models.Task{},
	}
}

// Project builds the board view from columns already in chain order and a
// flat task list. The Unassigned bucket is prepended, every column receives
// its tasks sorted by position (ties by id), and tasks pointing at a column
// that is not on the board are left out. Inputs are not modified.
func Project(ordered []*models.Column, tasks []*models.Task) []*ColumnState {
	view := make([]*ColumnState, 0, len(ordered)+1)
	view = append(view, newUnassignedColumn())
	for _, col := range ordered {
		if col == nil {
			continue
		}
		view = append(view, &ColumnState{Column: *col, Tasks: []*models.Task{}})
	}

	byID := make(map[types.ColumnID]*ColumnState, len(view))
	for _, col := range view {
		byID[col.ID] = col
	}

	sorted := make([]*models.Task, 0, len(tasks))
	for _, t := range tasks {
		if t != nil {
			sorted = append(sorted, t)
		}
	}
	slices.SortStableFunc(sorted, func(a, b *models.Task) int {
		if c := cmp.Compare(a.Position, b.Position); c != 0 {
			return c
		}
		return strings.Compare(string(a.ID), string(b.ID))
	})

	for _, t := range sorted {
		if col, ok := byID[t.ColumnID]; ok {
			col.Tasks = append(col.Tasks, t.Clone())
		}
	}

	return view
}

// BuildBoard sorts the column chain and projects the tasks onto it
func BuildBoard(columns []*models.Column, tasks []*models.Task) ([]*ColumnState, error) {
	ordered, err := SortColumns(columns)
	if err != nil {
		return nil, err
	}
	return Project(ordered, tasks), nil
}
