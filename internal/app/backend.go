package app

import (
	"context"

	"github.com/thenoetrevino/kanboard/internal/models"
	columnservice "github.com/thenoetrevino/kanboard/internal/services/column"
	taskservice "github.com/thenoetrevino/kanboard/internal/services/task"
	"github.com/thenoetrevino/kanboard/internal/session"
	"github.com/thenoetrevino/kanboard/internal/types"
)

// backend adapts the services to the session's persistence contract
type backend struct {
	app *App
}

var _ session.Backend = backend{}

// Backend returns the services as a session backend
func (a *App) Backend() session.Backend {
	return backend{app: a}
}

func (b backend) LoadBoard(ctx context.Context, boardID types.BoardID, tagFilter []string) (*models.BoardSnapshot, error) {
	return b.app.BoardService.LoadBoard(ctx, boardID, tagFilter)
}

func (b backend) CreateTask(ctx context.Context, draft models.Task, tagIDs []types.TagID) (*models.Task, error) {
	return b.app.TaskService.CreateTask(ctx, taskservice.CreateTaskRequest{
		BoardID:    draft.BoardID,
		ColumnID:   draft.ColumnID,
		Name:       draft.Name,
		Body:       draft.Body,
		AssigneeID: draft.AssigneeID,
		DueDate:    draft.DueDate,
		TagIDs:     tagIDs,
	})
}

func (b backend) UpdateTask(ctx context.Context, patch models.TaskPatch) (*models.Task, error) {
	return b.app.TaskService.UpdateTask(ctx, taskservice.UpdateTaskRequest{
		ID:         patch.ID,
		Name:       patch.Name,
		Body:       patch.Body,
		AssigneeID: patch.AssigneeID,
		DueDate:    patch.DueDate,
		ClearDue:   patch.ClearDue,
	})
}

func (b backend) DeleteTask(ctx context.Context, id types.TaskID) (models.TaskDeletion, error) {
	return b.app.TaskService.DeleteTask(ctx, id)
}

func (b backend) MoveTasks(ctx context.Context, boardID types.BoardID, moves []models.TaskMove) error {
	return b.app.TaskService.MoveTasks(ctx, boardID, moves)
}

func (b backend) AssignTags(ctx context.Context, taskID types.TaskID, added, removed []types.TagID) ([]*models.Tag, error) {
	return b.app.TaskService.AssignTags(ctx, taskservice.AssignTagsRequest{
		TaskID:  taskID,
		Added:   added,
		Removed: removed,
	})
}

func (b backend) CreateColumn(ctx context.Context, boardID types.BoardID, name string) ([]models.ColumnOperation, error) {
	_, ops, err := b.app.ColumnService.CreateColumn(ctx, columnservice.CreateColumnRequest{
		BoardID: boardID,
		Name:    name,
	})
	return ops, err
}

func (b backend) RenameColumn(ctx context.Context, id types.ColumnID, name string) ([]models.ColumnOperation, error) {
	return b.app.ColumnService.RenameColumn(ctx, columnservice.RenameColumnRequest{ID: id, Name: name})
}

func (b backend) DeleteColumn(ctx context.Context, id types.ColumnID) ([]models.ColumnOperation, error) {
	return b.app.ColumnService.DeleteColumn(ctx, id)
}

func (b backend) MoveColumns(ctx context.Context, boardID types.BoardID, links []models.ColumnLink) error {
	return b.app.ColumnService.MoveColumns(ctx, boardID, links)
}
