package session

import (
	"context"

	"github.com/thenoetrevino/kanboard/internal/models"
	"github.com/thenoetrevino/kanboard/internal/types"
)

// Backend persists the changes a session computes. Every method is one of
// the server-side board actions; the app container implements it on top of
// the services.
type Backend interface {
	LoadBoard(ctx context.Context, boardID types.BoardID, tagFilter []string) (*models.BoardSnapshot, error)

	// CreateTask stores draft at the end of its column and returns the row
	// with its real id
	CreateTask(ctx context.Context, draft models.Task, tagIDs []types.TagID) (*models.Task, error)
	UpdateTask(ctx context.Context, patch models.TaskPatch) (*models.Task, error)
	DeleteTask(ctx context.Context, id types.TaskID) (models.TaskDeletion, error)
	MoveTasks(ctx context.Context, boardID types.BoardID, moves []models.TaskMove) error
	AssignTags(ctx context.Context, taskID types.TaskID, added, removed []types.TagID) ([]*models.Tag, error)

	CreateColumn(ctx context.Context, boardID types.BoardID, name string) ([]models.ColumnOperation, error)
	RenameColumn(ctx context.Context, id types.ColumnID, name string) ([]models.ColumnOperation, error)
	DeleteColumn(ctx context.Context, id types.ColumnID) ([]models.ColumnOperation, error)
	MoveColumns(ctx context.Context, boardID types.BoardID, links []models.ColumnLink) error
}
