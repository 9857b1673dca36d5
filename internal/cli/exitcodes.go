package cli

import (
	"errors"
	"fmt"

	"github.com/thenoetrevino/kanboard/internal/kanban"
	"github.com/thenoetrevino/kanboard/internal/models"
	"github.com/thenoetrevino/kanboard/internal/services/validation"
)

// Exit codes for CLI commands.
// These codes follow Unix conventions and provide consistent error reporting
// across all CLI commands.
const (
	// ExitSuccess indicates the command completed successfully.
	ExitSuccess = 0

	// ExitError indicates a general error occurred.
	// Use for: Database errors, unexpected failures, or any error that
	// doesn't fit the specific categories below.
	ExitError = 1

	// ExitUsage indicates incorrect command usage.
	// Use for: Missing required flags, invalid flag combinations,
	// or when the user needs to provide different arguments.
	ExitUsage = 2

	// ExitNotFound indicates a requested resource was not found.
	// Use for: Board, column, task or tag ids and names that don't exist.
	ExitNotFound = 3

	// ExitDataErr indicates invalid or malformed data.
	// Use for: A broken column chain or task positions with gaps.
	ExitDataErr = 4

	// ExitValidation indicates a validation error.
	// Use for: Empty names, bad colors, or any input that fails the
	// service validation rules.
	ExitValidation = 5
)

// ErrUsage marks errors caused by how the command was invoked
var ErrUsage = errors.New("usage error")

// ExitCodeError carries the process exit code for a failed command
type ExitCodeError struct {
	Code int
	Err  error
}

func (e *ExitCodeError) Error() string {
	return e.Err.Error()
}

func (e *ExitCodeError) Unwrap() error {
	return e.Err
}

// Usagef builds a usage error
func Usagef(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrUsage, fmt.Sprintf(format, args...))
}

// ExitCodeFor maps an error onto an exit code
func ExitCodeFor(err error) int {
	var exitErr *ExitCodeError
	switch {
	case err == nil:
		return ExitSuccess
	case errors.As(err, &exitErr):
		return exitErr.Code
	case errors.Is(err, ErrUsage):
		return ExitUsage
	case errors.Is(err, validation.ErrInvalid):
		return ExitValidation
	case errors.Is(err, models.ErrBoardNotFound),
		errors.Is(err, models.ErrColumnNotFound),
		errors.Is(err, models.ErrTaskNotFound),
		errors.Is(err, models.ErrTagNotFound):
		return ExitNotFound
	case errors.Is(err, kanban.ErrBrokenChain), errors.Is(err, kanban.ErrNotDense):
		return ExitDataErr
	default:
		return ExitError
	}
}
