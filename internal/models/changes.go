package models

import "github.com/thenoetrevino/kanboard/internal/types"

// TaskMove is one entry of a task move diff: the persisted fields of a task
// whose position or column changed.
type TaskMove struct {
	ID       types.TaskID   `json:"id"`
	Position int            `json:"position"`
	ColumnID types.ColumnID `json:"column_id"`
}

// ColumnLink is one entry of a column move diff
type ColumnLink struct {
	ID           types.ColumnID `json:"id"`
	NextColumnID types.ColumnID `json:"next_column_id"`
}

// OperationType describes how a ColumnOperation changes the column list
type OperationType string

const (
	OperationInsert OperationType = "insert"
	OperationUpdate OperationType = "update"
	OperationDelete OperationType = "delete"
)

// ColumnOperation is a server-computed change to apply to a mounted board.
// Insert carries the full column, update carries a patch, delete only the id.
type ColumnOperation struct {
	Type   OperationType  `json:"type"`
	ID     types.ColumnID `json:"id"`
	Column *Column        `json:"column,omitempty"`
	Patch  *ColumnPatch   `json:"patch,omitempty"`
}

// InsertColumnOp builds an insert operation
func InsertColumnOp(c Column) ColumnOperation {
	return ColumnOperation{Type: OperationInsert, ID: c.ID, Column: &c}
}

// UpdateColumnOp builds an update operation
func UpdateColumnOp(p ColumnPatch) ColumnOperation {
	return ColumnOperation{Type: OperationUpdate, ID: p.ID, Patch: &p}
}

// DeleteColumnOp builds a delete operation
func DeleteColumnOp(id types.ColumnID) ColumnOperation {
	return ColumnOperation{Type: OperationDelete, ID: id}
}

// TaskPositionUpdate is a server-side renumbering of a surviving task
type TaskPositionUpdate struct {
	ID       types.TaskID `json:"id"`
	Position int          `json:"position"`
}

// TaskDeletion is the result of deleting a task: the tasks renumbered in
// the same column plus the deleted ids.
type TaskDeletion struct {
	Updates []TaskPositionUpdate `json:"updates"`
	Deletes []types.TaskID       `json:"deletes"`
}
