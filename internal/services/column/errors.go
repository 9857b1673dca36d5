package column

import (
	"errors"

	"github.com/thenoetrevino/kanboard/internal/models"
)

// Column-related errors
var (
	// Validation errors
	ErrEmptyName       = errors.New("name cannot be empty")
	ErrNameTooLong     = errors.New("name cannot exceed 255 characters")
	ErrInvalidColumnID = errors.New("invalid column ID")
	ErrInvalidBoardID  = errors.New("invalid board ID")

	// Business logic errors
	ErrColumnNotFound = models.ErrColumnNotFound
	ErrColumnHasTasks = errors.New("cannot delete column with tasks")
	ErrForeignColumn  = errors.New("column belongs to another board")
)
