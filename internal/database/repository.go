package database

import (
	"context"
	"database/sql"

	"github.com/thenoetrevino/kanboard/internal/models"
	"github.com/thenoetrevino/kanboard/internal/types"
)

// Repository provides a unified interface to all data operations.
// It composes domain-specific repositories using struct embedding.
type Repository struct {
	*BoardRepo
	*ColumnRepo
	*TaskRepo
	*TagRepo
}

var _ DataStore = (*Repository)(nil)

// NewRepository creates a new Repository instance wrapping the given database connection.
func NewRepository(db *sql.DB) *Repository {
	return &Repository{
		BoardRepo:  &BoardRepo{db: db},
		ColumnRepo: &ColumnRepo{db: db},
		TaskRepo:   &TaskRepo{db: db},
		TagRepo:    &TagRepo{db: db},
	}
}

// LoadBoard returns everything a board view needs: the board, its raw
// column rows, its tasks with tags attached, and the board's tag list.
// Column rows come back unordered; the chain is resolved by the caller.
func (r *Repository) LoadBoard(ctx context.Context, boardID types.BoardID, tagFilter []string) (*models.BoardSnapshot, error) {
	board, err := r.GetBoardByID(ctx, boardID)
	if err != nil {
		return nil, err
	}

	columns, err := r.GetColumnsByBoard(ctx, boardID)
	if err != nil {
		return nil, err
	}

	tasks, err := r.GetTasksByBoard(ctx, boardID, tagFilter)
	if err != nil {
		return nil, err
	}

	taskTags, err := r.GetTagsForBoardTasks(ctx, boardID)
	if err != nil {
		return nil, err
	}
	for _, task := range tasks {
		if tags, ok := taskTags[task.ID]; ok {
			task.Tags = tags
		}
	}

	tags, err := r.GetTagsByBoard(ctx, boardID)
	if err != nil {
		return nil, err
	}

	return &models.BoardSnapshot{
		Board:   board,
		Columns: columns,
		Tasks:   tasks,
		Tags:    tags,
	}, nil
}
