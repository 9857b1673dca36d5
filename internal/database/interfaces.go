// Package database defines repository interfaces for data access
package database

import (
	"context"

	"github.com/thenoetrevino/kanboard/internal/models"
	"github.com/thenoetrevino/kanboard/internal/types"
)

// BoardRepository defines board operations.
type BoardRepository interface {
	CreateBoard(ctx context.Context, name, description string) (*models.Board, error)
	GetAllBoards(ctx context.Context) ([]*models.Board, error)
	GetBoardByID(ctx context.Context, id types.BoardID) (*models.Board, error)
	UpdateBoard(ctx context.Context, id types.BoardID, name, description string) error
	DeleteBoard(ctx context.Context, id types.BoardID) error
}

// ColumnReader defines read operations for columns.
type ColumnReader interface {
	GetColumnsByBoard(ctx context.Context, boardID types.BoardID) ([]*models.Column, error)
	GetColumnByID(ctx context.Context, id types.ColumnID) (*models.Column, error)
	CountTasksInColumn(ctx context.Context, id types.ColumnID) (int, error)
}

// ColumnWriter defines write operations for columns.
// Writes that reshape the chain return the operations a mounted board
// applies to mirror them.
type ColumnWriter interface {
	CreateColumn(ctx context.Context, boardID types.BoardID, name string) (*models.Column, []models.ColumnOperation, error)
	RenameColumn(ctx context.Context, id types.ColumnID, name string) ([]models.ColumnOperation, error)
	DeleteColumn(ctx context.Context, id types.ColumnID) ([]models.ColumnOperation, error)
	RelinkColumns(ctx context.Context, links []models.ColumnLink) error
}

// ColumnRepository combines all column-related operations.
type ColumnRepository interface {
	ColumnReader
	ColumnWriter
}

// TaskReader defines read operations for tasks.
type TaskReader interface {
	GetTaskByID(ctx context.Context, id types.TaskID) (*models.Task, error)
	GetTasksByBoard(ctx context.Context, boardID types.BoardID, tagFilter []string) ([]*models.Task, error)
	GetTasksByColumn(ctx context.Context, boardID types.BoardID, columnID types.ColumnID) ([]*models.Task, error)
}

// TaskWriter defines write operations for tasks.
type TaskWriter interface {
	CreateTask(ctx context.Context, params CreateTaskParams) (*models.Task, error)
	UpdateTask(ctx context.Context, patch models.TaskPatch) (*models.Task, error)
	MoveTasks(ctx context.Context, moves []models.TaskMove) error
	DeleteTask(ctx context.Context, id types.TaskID) (models.TaskDeletion, error)
}

// TaskRepository combines all task-related operations.
type TaskRepository interface {
	TaskReader
	TaskWriter
}

// TagRepository defines tag operations.
type TagRepository interface {
	CreateTags(ctx context.Context, boardID types.BoardID, names []string, color string) ([]*models.Tag, error)
	GetTagsByBoard(ctx context.Context, boardID types.BoardID) ([]*models.Tag, error)
	GetTagByID(ctx context.Context, id types.TagID) (*models.Tag, error)
	GetTagsForTask(ctx context.Context, taskID types.TaskID) ([]*models.Tag, error)
	GetTagsForBoardTasks(ctx context.Context, boardID types.BoardID) (map[types.TaskID][]*models.Tag, error)
	AssignTaskTags(ctx context.Context, taskID types.TaskID, added, removed []types.TagID) ([]*models.Tag, error)
	UpdateTag(ctx context.Context, id types.TagID, name, color string) error
	DeleteTag(ctx context.Context, id types.TagID) error
}

// DataStore defines the unified interface for all data operations.
// Consumers can depend on the smaller interfaces for clearer dependencies.
type DataStore interface {
	BoardRepository
	ColumnRepository
	TaskRepository
	TagRepository
	LoadBoard(ctx context.Context, boardID types.BoardID, tagFilter []string) (*models.BoardSnapshot, error)
}
