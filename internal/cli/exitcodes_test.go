package cli

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/thenoetrevino/kanboard/internal/kanban"
	"github.com/thenoetrevino/kanboard/internal/models"
	"github.com/thenoetrevino/kanboard/internal/services/validation"
	"github.com/thenoetrevino/kanboard/internal/session"
)

func TestExitCodeFor(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"nil", nil, ExitSuccess},
		{"usage", Usagef("--board is required"), ExitUsage},
		{"board not found", fmt.Errorf("board %q: %w", "x", models.ErrBoardNotFound), ExitNotFound},
		{"column not found", models.ErrColumnNotFound, ExitNotFound},
		{"task not found", models.ErrTaskNotFound, ExitNotFound},
		{"tag not found", models.ErrTagNotFound, ExitNotFound},
		{"broken chain", fmt.Errorf("loading: %w", kanban.ErrBrokenChain), ExitDataErr},
		{"gaps", kanban.ErrNotDense, ExitDataErr},
		{"validation", fmt.Errorf("name: %w", validation.ErrInvalid), ExitValidation},
		{"validation behind persist", fmt.Errorf("%w: %w", session.ErrPersist, validation.ErrInvalid), ExitValidation},
		{"explicit", &ExitCodeError{Code: 42, Err: errors.New("x")}, 42},
		{"other", errors.New("disk full"), ExitError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ExitCodeFor(tt.err))
		})
	}
}

func TestExitCodeError_Unwrap(t *testing.T) {
	err := &ExitCodeError{Code: ExitNotFound, Err: fmt.Errorf("wrapped: %w", models.ErrTaskNotFound)}

	assert.ErrorIs(t, err, models.ErrTaskNotFound)
	assert.Equal(t, "wrapped: task not found", err.Error())
}
