package tag

import (
	"errors"

	"github.com/thenoetrevino/kanboard/internal/models"
)

// Tag-related errors
var (
	// Validation errors
	ErrEmptyName      = errors.New("name cannot be empty")
	ErrNameTooLong    = errors.New("name cannot exceed 255 characters")
	ErrInvalidColor   = errors.New("invalid color format (must be hex color like #FFFFFF or transparent)")
	ErrInvalidTagID   = errors.New("invalid tag ID")
	ErrInvalidBoardID = errors.New("invalid board ID")

	// Business logic errors
	ErrTagNotFound = models.ErrTagNotFound
)
