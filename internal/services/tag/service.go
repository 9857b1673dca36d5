package tag

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

// Service defines all tag-related business operations
type Service interface {
	// Read operations
	GetTagsByBoard(ctx context.Context, boardID types.BoardID) ([]*models.Tag, error)

	// Write operations
	CreateTags(ctx context.Context, req CreateTagsRequest) ([]*models.Tag, error)
	UpdateTag(ctx context.Context, req UpdateTagRequest) error
	DeleteTag(ctx context.Context, id types.TagID) error
}

// CreateTagsRequest encapsulates data for creating tags.
// Names that already exist on the board are returned as they are.
type CreateTagsRequest struct {
	BoardID types.BoardID `json:"board_id" validate:"required"`
	Names   []string      `json:"names" validate:"min=1,dive,notblank,max=255"`
	Color   string        `json:"color" validate:"omitempty,hexcolor|eq=transparent"`
}

// UpdateTagRequest encapsulates data for updating a tag
type UpdateTagRequest struct {
	ID    types.TagID `json:"id" validate:"gt=0"`
	Name  *string     `json:"name" validate:"omitnil,notblank,max=255"`
	Color *string     `json:"color" validate:"omitnil,hexcolor|eq=transparent"`
}

var fieldErrors = map[string]error{
	"board_id":  ErrInvalidBoardID,
	"id":        ErrInvalidTagID,
	"names":     ErrEmptyName,
	"names.max": ErrNameTooLong,
	"name":      ErrEmptyName,
	"name.max":  ErrNameTooLong,
	"color":     ErrInvalidColor,
}

type service struct {
	repo        database.TagRepository
	eventClient events.EventPublisher
}

// NewService creates a new tag service
func NewService(repo database.TagRepository, eventClient events.EventPublisher) Service {
	return &service{
		repo:        repo,
		eventClient: eventClient,
	}
}

// GetTagsByBoard retrieves all tags for a board
func (s *service) GetTagsByBoard(ctx context.Context, boardID types.BoardID) ([]*models.Tag, error) {
	if err := validation.Var(boardID, "required", ErrInvalidBoardID); err != nil {
		return nil, err
	}
	return s.repo.GetTagsByBoard(ctx, boardID)
}

// CreateTags creates the named tags with validation
func (s *service) CreateTags(ctx context.Context, req CreateTagsRequest) ([]*models.Tag, error) {
	if err := validation.Struct(req, fieldErrors); err != nil {
		return nil, err
	}

	tags, err := s.repo.CreateTags(ctx, req.BoardID, req.Names, req.Color)
	if err != nil {
		return nil, fmt.Errorf("failed to create tags: %w", err)
	}

	s.publishTagEvent(req.BoardID)
	return tags, nil
}

// UpdateTag updates an existing tag
func (s *service) UpdateTag(ctx context.Context, req UpdateTagRequest) error {
	if err := validation.Struct(req, fieldErrors); err != nil {
		return err
	}

	existing, err := s.repo.GetTagByID(ctx, req.ID)
	if err != nil {
		return err
	}

	name, color := existing.Name, existing.Color
	if req.Name != nil {
		name = strings.TrimSpace(*req.Name)
	}
	if req.Color != nil {
		color = *req.Color
	}

	if err := s.repo.UpdateTag(ctx, req.ID, name, color); err != nil {
		return fmt.Errorf("failed to update tag: %w", err)
	}

	s.publishTagEvent(existing.BoardID)
	return nil
}

// DeleteTag deletes a tag and detaches it from every task
func (s *service) DeleteTag(ctx context.Context, id types.TagID) error {
	if err := validation.Var(id, "gt=0", ErrInvalidTagID); err != nil {
		return err
	}

	existing, err := s.repo.GetTagByID(ctx, id)
	if err != nil {
		return err
	}

	if err := s.repo.DeleteTag(ctx, id); err != nil {
		return fmt.Errorf("failed to delete tag: %w", err)
	}

	s.publishTagEvent(existing.BoardID)
	return nil
}

func (s *service) publishTagEvent(boardID types.BoardID) {
	_ = events.BoardChanged(s.eventClient, boardID)
}
