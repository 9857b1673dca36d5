package task

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/thenoetrevino/kanboard/internal/database"
	"github.com/thenoetrevino/kanboard/internal/events"
	"github.com/thenoetrevino/kanboard/internal/models"
	"github.com/thenoetrevino/kanboard/internal/services/validation"
	"github.com/thenoetrevino/kanboard/internal/types"
)

// Service defines all task-related business operations
type Service interface {
	// Read operations
	GetTaskDetail(ctx context.Context, id types.TaskID) (*models.Task, error)
	GetTasksByBoard(ctx context.Context, boardID types.BoardID, tagFilter []string) ([]*models.Task, error)

	// Write operations
	CreateTask(ctx context.Context, req CreateTaskRequest) (*models.Task, error)
	UpdateTask(ctx context.Context, req UpdateTaskRequest) (*models.Task, error)
	DeleteTask(ctx context.Context, id types.TaskID) (models.TaskDeletion, error)

	// MoveTasks persists a task move diff computed by the board store
	MoveTasks(ctx context.Context, boardID types.BoardID, moves []models.TaskMove) error

	// AssignTags adds and removes tags and returns the task's resulting tags
	AssignTags(ctx context.Context, req AssignTagsRequest) ([]*models.Tag, error)
}

// CreateTaskRequest encapsulates all data needed to create a task.
// The task is appended to the end of ColumnID; an empty ColumnID files it
// under Unassigned.
type CreateTaskRequest struct {
	BoardID    types.BoardID  `json:"board_id" validate:"required"`
	ColumnID   types.ColumnID `json:"column_id"`
	Name       string         `json:"name" validate:"notblank,max=255"`
	Body       string         `json:"body"`
	AssigneeID types.UserID   `json:"assignee_id"`
	DueDate    *time.Time     `json:"due_date"`
	TagIDs     []types.TagID  `json:"tag_ids" validate:"dive,gt=0"`
}

// UpdateTaskRequest encapsulates all data needed to update a task.
// Fields with pointers are optional - nil means don't update.
type UpdateTaskRequest struct {
	ID         types.TaskID  `json:"id" validate:"required"`
	Name       *string       `json:"name" validate:"omitnil,notblank,max=255"`
	Body       *string       `json:"body"`
	AssigneeID *types.UserID `json:"assignee_id"`
	DueDate    *time.Time    `json:"due_date"`
	ClearDue   bool          `json:"clear_due"`
}

// AssignTagsRequest lists the tags to attach to and detach from a task
type AssignTagsRequest struct {
	TaskID  types.TaskID  `json:"task_id" validate:"required"`
	Added   []types.TagID `json:"added" validate:"dive,gt=0"`
	Removed []types.TagID `json:"removed" validate:"dive,gt=0"`
}

var fieldErrors = map[string]error{
	"board_id": ErrInvalidBoardID,
	"id":       ErrInvalidTaskID,
	"task_id":  ErrInvalidTaskID,
	"name":     ErrEmptyName,
	"name.max": ErrNameTooLong,
	"tag_ids":  ErrInvalidTagID,
	"added":    ErrInvalidTagID,
	"removed":  ErrInvalidTagID,
}

// repository is the data access the task service needs
type repository interface {
	database.TaskRepository
	GetColumnByID(ctx context.Context, id types.ColumnID) (*models.Column, error)
	GetTagByID(ctx context.Context, id types.TagID) (*models.Tag, error)
	AssignTaskTags(ctx context.Context, taskID types.TaskID, added, removed []types.TagID) ([]*models.Tag, error)
}

type service struct {
	repo        repository
	eventClient events.EventPublisher
}

// NewService creates a new task service
func NewService(repo repository, eventClient events.EventPublisher) Service {
	return &service{
		repo:        repo,
		eventClient: eventClient,
	}
}

// GetTaskDetail retrieves a task with its tags
func (s *service) GetTaskDetail(ctx context.Context, id types.TaskID) (*models.Task, error) {
	if err := validateTaskID(id); err != nil {
		return nil, err
	}
	return s.repo.GetTaskByID(ctx, id)
}

// GetTasksByBoard lists a board's tasks, optionally filtered by tag names
func (s *service) GetTasksByBoard(ctx context.Context, boardID types.BoardID, tagFilter []string) ([]*models.Task, error) {
	if err := validation.Var(boardID, "required", ErrInvalidBoardID); err != nil {
		return nil, err
	}
	return s.repo.GetTasksByBoard(ctx, boardID, tagFilter)
}

// CreateTask appends a task to its column and attaches the requested tags
func (s *service) CreateTask(ctx context.Context, req CreateTaskRequest) (*models.Task, error) {
	if err := validation.Struct(req, fieldErrors); err != nil {
		return nil, err
	}
	if err := s.checkTags(ctx, req.BoardID, req.TagIDs); err != nil {
		return nil, err
	}

	task, err := s.repo.CreateTask(ctx, database.CreateTaskParams{
		BoardID:    req.BoardID,
		ColumnID:   req.ColumnID,
		Name:       strings.TrimSpace(req.Name),
		Body:       req.Body,
		AssigneeID: req.AssigneeID,
		DueDate:    req.DueDate,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create task: %w", err)
	}

	if len(req.TagIDs) > 0 {
		tags, err := s.repo.AssignTaskTags(ctx, task.ID, req.TagIDs, nil)
		if err != nil {
			return nil, fmt.Errorf("failed to attach tags: %w", err)
		}
		task.Tags = tags
	}

	s.publishTaskEvent(task.BoardID)
	return task, nil
}

// UpdateTask applies the non-nil fields of req
func (s *service) UpdateTask(ctx context.Context, req UpdateTaskRequest) (*models.Task, error) {
	if err := validation.Struct(req, fieldErrors); err != nil {
		return nil, err
	}
	if err := validateTaskID(req.ID); err != nil {
		return nil, err
	}

	patch := models.TaskPatch{
		ID:         req.ID,
		Body:       req.Body,
		AssigneeID: req.AssigneeID,
		DueDate:    req.DueDate,
		ClearDue:   req.ClearDue,
	}
	if req.Name != nil {
		patch.Name = models.StringPtr(strings.TrimSpace(*req.Name))
	}

	task, err := s.repo.UpdateTask(ctx, patch)
	if err != nil {
		return nil, fmt.Errorf("failed to update task: %w", err)
	}

	s.publishTaskEvent(task.BoardID)
	return task, nil
}

// DeleteTask deletes a task and returns the renumbering of its column
func (s *service) DeleteTask(ctx context.Context, id types.TaskID) (models.TaskDeletion, error) {
	if err := validateTaskID(id); err != nil {
		return models.TaskDeletion{}, err
	}

	existing, err := s.repo.GetTaskByID(ctx, id)
	if err != nil {
		return models.TaskDeletion{}, err
	}

	deletion, err := s.repo.DeleteTask(ctx, id)
	if err != nil {
		return models.TaskDeletion{}, fmt.Errorf("failed to delete task: %w", err)
	}

	s.publishTaskEvent(existing.BoardID)
	return deletion, nil
}

// MoveTasks checks that every moved task and target column belongs to
// boardID, then writes the diff in one transaction
func (s *service) MoveTasks(ctx context.Context, boardID types.BoardID, moves []models.TaskMove) error {
	if err := validation.Var(boardID, "required", ErrInvalidBoardID); err != nil {
		return err
	}
	if len(moves) == 0 {
		return nil
	}

	columns := make(map[types.ColumnID]bool)
	for _, m := range moves {
		if err := validateTaskID(m.ID); err != nil {
			return err
		}
		if m.Position < 0 {
			return fmt.Errorf("task %s: %w", m.ID, ErrInvalidPosition)
		}

		task, err := s.repo.GetTaskByID(ctx, m.ID)
		if err != nil {
			return err
		}
		if task.BoardID != boardID {
			return fmt.Errorf("task %s: %w", m.ID, ErrForeignTask)
		}

		if m.ColumnID.IsNull() || columns[m.ColumnID] {
			continue
		}
		column, err := s.repo.GetColumnByID(ctx, m.ColumnID)
		if err != nil {
			return err
		}
		if column.BoardID != boardID {
			return fmt.Errorf("column %s: %w", m.ColumnID, ErrForeignColumn)
		}
		columns[m.ColumnID] = true
	}

	if err := s.repo.MoveTasks(ctx, moves); err != nil {
		return fmt.Errorf("failed to move tasks: %w", err)
	}

	s.publishTaskEvent(boardID)
	return nil
}

// AssignTags attaches added and detaches removed in one step
func (s *service) AssignTags(ctx context.Context, req AssignTagsRequest) ([]*models.Tag, error) {
	if err := validation.Struct(req, fieldErrors); err != nil {
		return nil, err
	}
	if err := validateTaskID(req.TaskID); err != nil {
		return nil, err
	}

	task, err := s.repo.GetTaskByID(ctx, req.TaskID)
	if err != nil {
		return nil, err
	}
	if len(req.Added) == 0 && len(req.Removed) == 0 {
		return task.Tags, nil
	}
	if err := s.checkTags(ctx, task.BoardID, req.Added); err != nil {
		return nil, err
	}

	tags, err := s.repo.AssignTaskTags(ctx, req.TaskID, req.Added, req.Removed)
	if err != nil {
		return nil, fmt.Errorf("failed to assign tags: %w", err)
	}

	s.publishTaskEvent(task.BoardID)
	return tags, nil
}

// checkTags verifies every tag exists on boardID
func (s *service) checkTags(ctx context.Context, boardID types.BoardID, ids []types.TagID) error {
	for _, id := range ids {
		tag, err := s.repo.GetTagByID(ctx, id)
		if err != nil {
			return err
		}
		if tag.BoardID != boardID {
			return fmt.Errorf("tag %d: %w", id, ErrForeignTag)
		}
	}
	return nil
}

func validateTaskID(id types.TaskID) error {
	if id.IsTemp() {
		return ErrTempTaskID
	}
	return validation.Var(id, "required", ErrInvalidTaskID)
}

func (s *service) publishTaskEvent(boardID types.BoardID) {
	_ = events.BoardChanged(s.eventClient, boardID)
}
