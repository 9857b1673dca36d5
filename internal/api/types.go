package api

import (
	"time"

	"github.com/thenoetrevino/kanboard/internal/kanban"
	"github.com/thenoetrevino/kanboard/internal/models"
	"github.com/thenoetrevino/kanboard/internal/types"
)

// ErrorResponse is the body of every failed request
type ErrorResponse struct {
	// Error is the error message.
	Error string `json:"error"`

	// Code is a stable machine-readable error code.
	Code string `json:"code"`
}

// HealthResponse is returned by GET /health
type HealthResponse struct {
	Status string `json:"status"`
}

// BoardResponse is a loaded board: the column chain is resolved and every
// column carries its tasks in position order, Unassigned first.
type BoardResponse struct {
	Board   *models.Board         `json:"board"`
	Columns []*kanban.ColumnState `json:"columns"`
	Tags    []*models.Tag         `json:"tags"`
}

// CreateBoardBody is the body of POST /boards
type CreateBoardBody struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

// CreateTaskBody is the body of POST /boards/:board/tasks. Position is
// accepted for symmetry with the client view but storage always appends.
type CreateTaskBody struct {
	ColumnID   types.ColumnID `json:"column_id"`
	Name       string         `json:"name"`
	Body       string         `json:"body"`
	AssigneeID types.UserID   `json:"assignee_id"`
	DueDate    *time.Time     `json:"due_date"`
	TagIDs     []types.TagID  `json:"tag_ids"`
	Position   *int           `json:"position,omitempty"`
}

// UpdateTaskBody is the body of PATCH /tasks/:task
type UpdateTaskBody struct {
	Name       *string       `json:"name"`
	Body       *string       `json:"body"`
	AssigneeID *types.UserID `json:"assignee_id"`
	DueDate    *time.Time    `json:"due_date"`
	ClearDue   bool          `json:"clear_due"`
}

// MoveTasksBody carries a task move diff
type MoveTasksBody struct {
	Moves []models.TaskMove `json:"moves"`
}

// MoveColumnsBody carries a column relink diff
type MoveColumnsBody struct {
	Links []models.ColumnLink `json:"links"`
}

// AssignTagsBody is the body of POST /tasks/:task/tags
type AssignTagsBody struct {
	Added   []types.TagID `json:"added"`
	Removed []types.TagID `json:"removed"`
}

// ColumnNameBody is the body of column create and rename
type ColumnNameBody struct {
	Name string `json:"name"`
}

// ColumnOperationsResponse lists the changes a mounted board applies
type ColumnOperationsResponse struct {
	Column     *models.Column           `json:"column,omitempty"`
	Operations []models.ColumnOperation `json:"operations"`
}

// CreateTagsBody is the body of POST /boards/:board/tags
type CreateTagsBody struct {
	Names []string `json:"names"`
	Color string   `json:"color"`
}
