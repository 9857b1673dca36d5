package task

import (
	"errors"

	"github.com/thenoetrevino/kanboard/internal/models"
)

// Task-related errors
var (
	// Validation errors
	ErrEmptyName       = errors.New("task name cannot be empty")
	ErrNameTooLong     = errors.New("task name cannot exceed 255 characters")
	ErrInvalidTaskID   = errors.New("invalid task ID")
	ErrInvalidBoardID  = errors.New("invalid board ID")
	ErrInvalidTagID    = errors.New("invalid tag ID")
	ErrInvalidPosition = errors.New("invalid position: must be >= 0")

	// Business logic errors
	ErrTaskNotFound   = models.ErrTaskNotFound
	ErrForeignTask    = errors.New("task belongs to another board")
	ErrForeignColumn  = errors.New("column belongs to another board")
	ErrForeignTag     = errors.New("tag belongs to another board")
	ErrTempTaskID     = errors.New("placeholder task ids cannot be persisted")
)
