package column

import (
	"context"
	"fmt"
	"strings"

	"github.com/thenoetrevino/kanboard/internal/database"
	"github.com/thenoetrevino/kanboard/internal/events"
	"github.com/thenoetrevino/kanboard/internal/models"
	"github.com/thenoetrevino/kanboard/internal/services/validation"
	"github.com/thenoetrevino/kanboard/internal/types"
)

// Service defines all column-related business operations.
// Writes that reshape the board return the operations a mounted board
// applies to mirror them.
type Service interface {
	// Read operations
	GetColumnsByBoard(ctx context.Context, boardID types.BoardID) ([]*models.Column, error)
	GetColumnByID(ctx context.Context, id types.ColumnID) (*models.Column, error)

	// Write operations
	CreateColumn(ctx context.Context, req CreateColumnRequest) (*models.Column, []models.ColumnOperation, error)
	RenameColumn(ctx context.Context, req RenameColumnRequest) ([]models.ColumnOperation, error)
	DeleteColumn(ctx context.Context, id types.ColumnID) ([]models.ColumnOperation, error)
	MoveColumns(ctx context.Context, boardID types.BoardID, links []models.ColumnLink) error
}

// CreateColumnRequest encapsulates data for creating a column.
// New columns are appended after the current tail.
type CreateColumnRequest struct {
	BoardID types.BoardID `json:"board_id" validate:"required"`
	Name    string        `json:"name" validate:"max=255"`
}

// RenameColumnRequest encapsulates data for renaming a column
type RenameColumnRequest struct {
	ID   types.ColumnID `json:"id" validate:"required"`
	Name string         `json:"name" validate:"notblank,max=255"`
}

var fieldErrors = map[string]error{
	"board_id": ErrInvalidBoardID,
	"id":       ErrInvalidColumnID,
	"name":     ErrEmptyName,
	"name.max": ErrNameTooLong,
}

type service struct {
	repo        database.ColumnRepository
	eventClient events.EventPublisher
}

// NewService creates a new column service
func NewService(repo database.ColumnRepository, eventClient events.EventPublisher) Service {
	return &service{
		repo:        repo,
		eventClient: eventClient,
	}
}

// GetColumnsByBoard retrieves a board's columns in storage order
func (s *service) GetColumnsByBoard(ctx context.Context, boardID types.BoardID) ([]*models.Column, error) {
	if err := validation.Var(boardID, "required", ErrInvalidBoardID); err != nil {
		return nil, err
	}
	return s.repo.GetColumnsByBoard(ctx, boardID)
}

// GetColumnByID retrieves a specific column
func (s *service) GetColumnByID(ctx context.Context, id types.ColumnID) (*models.Column, error) {
	if err := validation.Var(id, "required", ErrInvalidColumnID); err != nil {
		return nil, err
	}
	return s.repo.GetColumnByID(ctx, id)
}

// CreateColumn appends a column to the board. A blank name falls back to
// models.DefaultColumnName.
func (s *service) CreateColumn(ctx context.Context, req CreateColumnRequest) (*models.Column, []models.ColumnOperation, error) {
	if err := validation.Struct(req, fieldErrors); err != nil {
		return nil, nil, err
	}

	name := strings.TrimSpace(req.Name)
	if name == "" {
		name = models.DefaultColumnName
	}

	column, ops, err := s.repo.CreateColumn(ctx, req.BoardID, name)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to create column: %w", err)
	}

	s.publishColumnEvent(column.BoardID)
	return column, ops, nil
}

// RenameColumn updates a column's name
func (s *service) RenameColumn(ctx context.Context, req RenameColumnRequest) ([]models.ColumnOperation, error) {
	if err := validation.Struct(req, fieldErrors); err != nil {
		return nil, err
	}

	column, err := s.repo.GetColumnByID(ctx, req.ID)
	if err != nil {
		return nil, err
	}

	ops, err := s.repo.RenameColumn(ctx, req.ID, strings.TrimSpace(req.Name))
	if err != nil {
		return nil, fmt.Errorf("failed to rename column: %w", err)
	}

	s.publishColumnEvent(column.BoardID)
	return ops, nil
}

// DeleteColumn unlinks and deletes a column (business rule: must not have tasks)
func (s *service) DeleteColumn(ctx context.Context, id types.ColumnID) ([]models.ColumnOperation, error) {
	if err := validation.Var(id, "required", ErrInvalidColumnID); err != nil {
		return nil, err
	}

	column, err := s.repo.GetColumnByID(ctx, id)
	if err != nil {
		return nil, err
	}

	count, err := s.repo.CountTasksInColumn(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to check column tasks: %w", err)
	}
	if count > 0 {
		return nil, ErrColumnHasTasks
	}

	ops, err := s.repo.DeleteColumn(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to delete column: %w", err)
	}

	s.publishColumnEvent(column.BoardID)
	return ops, nil
}

// MoveColumns persists a column move diff. Every linked column and every
// non-null successor must belong to boardID.
func (s *service) MoveColumns(ctx context.Context, boardID types.BoardID, links []models.ColumnLink) error {
	if err := validation.Var(boardID, "required", ErrInvalidBoardID); err != nil {
		return err
	}
	if len(links) == 0 {
		return nil
	}

	for _, link := range links {
		if err := validation.Var(link.ID, "required", ErrInvalidColumnID); err != nil {
			return err
		}
		if err := s.checkOnBoard(ctx, boardID, link.ID); err != nil {
			return err
		}
		if link.NextColumnID.IsNull() {
			continue
		}
		if err := s.checkOnBoard(ctx, boardID, link.NextColumnID); err != nil {
			return err
		}
	}

	if err := s.repo.RelinkColumns(ctx, links); err != nil {
		return fmt.Errorf("failed to move columns: %w", err)
	}

	s.publishColumnEvent(boardID)
	return nil
}

func (s *service) checkOnBoard(ctx context.Context, boardID types.BoardID, id types.ColumnID) error {
	column, err := s.repo.GetColumnByID(ctx, id)
	if err != nil {
		return err
	}
	if column.BoardID != boardID {
		return fmt.Errorf("column %s: %w", id, ErrForeignColumn)
	}
	return nil
}

func (s *service) publishColumnEvent(boardID types.BoardID) {
	_ = events.BoardChanged(s.eventClient, boardID)
}
