package board

import (
	"errors"

	"github.com/thenoetrevino/kanboard/internal/models"
)

// Domain errors for board service
var (
	// Validation errors
	ErrEmptyName      = errors.New("board name cannot be empty")
	ErrNameTooLong    = errors.New("board name cannot exceed 255 characters")
	ErrInvalidBoardID = errors.New("invalid board ID")

	// Business logic errors
	ErrBoardNotFound = models.ErrBoardNotFound
)
