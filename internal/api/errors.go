package api

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/thenoetrevino/kanboard/internal/models"
	columnservice "github.com/thenoetrevino/kanboard/internal/services/column"
	tagservice "github.com/thenoetrevino/kanboard/internal/services/tag"
	taskservice "github.com/thenoetrevino/kanboard/internal/services/task"
	"github.com/thenoetrevino/kanboard/internal/services/validation"
)

// Error codes returned in ErrorResponse.Code
const (
	CodeInvalidRequest = "INVALID_REQUEST"
	CodeNotFound       = "NOT_FOUND"
	CodeConflict       = "CONFLICT"
	CodeInternal       = "INTERNAL"
)

// statusFor maps service errors onto HTTP status codes
func statusFor(err error) (int, string) {
	switch {
	case errors.Is(err, validation.ErrInvalid),
		errors.Is(err, taskservice.ErrTempTaskID),
		errors.Is(err, taskservice.ErrInvalidPosition),
		errors.Is(err, taskservice.ErrForeignTask),
		errors.Is(err, taskservice.ErrForeignColumn),
		errors.Is(err, taskservice.ErrForeignTag),
		errors.Is(err, columnservice.ErrForeignColumn),
		errors.Is(err, tagservice.ErrInvalidTagID):
		return http.StatusBadRequest, CodeInvalidRequest
	case errors.Is(err, models.ErrBoardNotFound),
		errors.Is(err, models.ErrColumnNotFound),
		errors.Is(err, models.ErrTaskNotFound),
		errors.Is(err, models.ErrTagNotFound):
		return http.StatusNotFound, CodeNotFound
	case errors.Is(err, columnservice.ErrColumnHasTasks):
		return http.StatusConflict, CodeConflict
	default:
		return http.StatusInternalServerError, CodeInternal
	}
}

func writeError(c *gin.Context, logger *slog.Logger, err error) {
	status, code := statusFor(err)
	if status >= http.StatusInternalServerError {
		logger.Error("request failed", "path", c.FullPath(), "error", err)
	} else {
		logger.Debug("request rejected", "path", c.FullPath(), "status", status, "error", err)
	}
	c.AbortWithStatusJSON(status, ErrorResponse{Error: err.Error(), Code: code})
}

func writeBadBody(c *gin.Context, logger *slog.Logger, err error) {
	logger.Debug("invalid request body", "path", c.FullPath(), "error", err)
	c.AbortWithStatusJSON(http.StatusBadRequest, ErrorResponse{
		Error: "invalid request body",
		Code:  CodeInvalidRequest,
	})
}
