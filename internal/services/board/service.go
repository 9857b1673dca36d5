package board

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

// Service defines all board-related business operations
type Service interface {
	// Read operations
	GetAllBoards(ctx context.Context) ([]*models.Board, error)
	GetBoardByID(ctx context.Context, id types.BoardID) (*models.Board, error)
	LoadBoard(ctx context.Context, id types.BoardID, tagFilter []string) (*models.BoardSnapshot, error)

	// Write operations
	CreateBoard(ctx context.Context, req CreateBoardRequest) (*models.Board, error)
	UpdateBoard(ctx context.Context, req UpdateBoardRequest) error
	DeleteBoard(ctx context.Context, id types.BoardID) error
}

// CreateBoardRequest encapsulates data for creating a board
type CreateBoardRequest struct {
	Name        string `json:"name" validate:"notblank,max=255"`
	Description string `json:"description"`
}

// UpdateBoardRequest encapsulates data for updating a board.
// Nil fields are left unchanged.
type UpdateBoardRequest struct {
	ID          types.BoardID `json:"id" validate:"required"`
	Name        *string       `json:"name" validate:"omitnil,notblank,max=255"`
	Description *string       `json:"description"`
}

var fieldErrors = map[string]error{
	"name":     ErrEmptyName,
	"name.max": ErrNameTooLong,
	"id":       ErrInvalidBoardID,
}

// repository is the data access the board service needs
type repository interface {
	database.BoardRepository
	LoadBoard(ctx context.Context, boardID types.BoardID, tagFilter []string) (*models.BoardSnapshot, error)
}

type service struct {
	repo        repository
	eventClient events.EventPublisher
}

// NewService creates a new board service
func NewService(repo repository, eventClient events.EventPublisher) Service {
	return &service{
		repo:        repo,
		eventClient: eventClient,
	}
}

// GetAllBoards lists boards by creation time
func (s *service) GetAllBoards(ctx context.Context) ([]*models.Board, error) {
	return s.repo.GetAllBoards(ctx)
}

// GetBoardByID retrieves a board
func (s *service) GetBoardByID(ctx context.Context, id types.BoardID) (*models.Board, error) {
	if err := validation.Var(id, "required", ErrInvalidBoardID); err != nil {
		return nil, err
	}
	return s.repo.GetBoardByID(ctx, id)
}

// LoadBoard returns everything needed to mount the board.
// A non-empty tagFilter keeps only tasks carrying at least one of the tags.
func (s *service) LoadBoard(ctx context.Context, id types.BoardID, tagFilter []string) (*models.BoardSnapshot, error) {
	if err := validation.Var(id, "required", ErrInvalidBoardID); err != nil {
		return nil, err
	}
	return s.repo.LoadBoard(ctx, id, tagFilter)
}

// CreateBoard creates a board seeded with the default columns
func (s *service) CreateBoard(ctx context.Context, req CreateBoardRequest) (*models.Board, error) {
	if err := validation.Struct(req, fieldErrors); err != nil {
		return nil, err
	}

	board, err := s.repo.CreateBoard(ctx, strings.TrimSpace(req.Name), req.Description)
	if err != nil {
		return nil, fmt.Errorf("failed to create board: %w", err)
	}

	s.publishBoardEvent(board.ID)
	return board, nil
}

// UpdateBoard changes a board's name or description
func (s *service) UpdateBoard(ctx context.Context, req UpdateBoardRequest) error {
	if err := validation.Struct(req, fieldErrors); err != nil {
		return err
	}

	existing, err := s.repo.GetBoardByID(ctx, req.ID)
	if err != nil {
		return err
	}

	name, description := existing.Name, existing.Description
	if req.Name != nil {
		name = strings.TrimSpace(*req.Name)
	}
	if req.Description != nil {
		description = *req.Description
	}

	if err := s.repo.UpdateBoard(ctx, req.ID, name, description); err != nil {
		return fmt.Errorf("failed to update board: %w", err)
	}

	s.publishBoardEvent(req.ID)
	return nil
}

// DeleteBoard removes a board with its columns, tasks and tags
func (s *service) DeleteBoard(ctx context.Context, id types.BoardID) error {
	if err := validation.Var(id, "required", ErrInvalidBoardID); err != nil {
		return err
	}

	if err := s.repo.DeleteBoard(ctx, id); err != nil {
		return fmt.Errorf("failed to delete board: %w", err)
	}

	s.publishBoardEvent(id)
	return nil
}

func (s *service) publishBoardEvent(boardID types.BoardID) {
	_ = events.BoardChanged(s.eventClient, boardID)
}
