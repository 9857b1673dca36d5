// Package api exposes the board actions over HTTP with gin.
package api

import (
	"log/slog"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/thenoetrevino/kanboard/internal/kanban"
	boardservice "github.com/thenoetrevino/kanboard/internal/services/board"
	columnservice "github.com/thenoetrevino/kanboard/internal/services/column"
	tagservice "github.com/thenoetrevino/kanboard/internal/services/tag"
	taskservice "github.com/thenoetrevino/kanboard/internal/services/task"
	"github.com/thenoetrevino/kanboard/internal/types"
)

// Handlers serves the board actions on top of the services
type Handlers struct {
	boards  boardservice.Service
	columns columnservice.Service
	tasks   taskservice.Service
	tags    tagservice.Service
	logger  *slog.Logger
}

// NewHandlers creates the handlers. A nil logger uses slog.Default.
func NewHandlers(
	boards boardservice.Service,
	columns columnservice.Service,
	tasks taskservice.Service,
	tags tagservice.Service,
	logger *slog.Logger,
) *Handlers {
	if logger == nil {
		logger = slog.Default()
	}
	return &Handlers{boards: boards, columns: columns, tasks: tasks, tags: tags, logger: logger}
}

// HandleHealth handles GET /health
func (h *Handlers) HandleHealth(c *gin.Context) {
	c.JSON(http.StatusOK, HealthResponse{Status: "ok"})
}

// ============================================================================
// Boards
// ============================================================================

// HandleListBoards handles GET /boards
func (h *Handlers) HandleListBoards(c *gin.Context) {
	boards, err := h.boards.GetAllBoards(c.Request.Context())
	if err != nil {
		writeError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, boards)
}

// HandleCreateBoard handles POST /boards
func (h *Handlers) HandleCreateBoard(c *gin.Context) {
	var body CreateBoardBody
	if err := c.ShouldBindJSON(&body); err != nil {
		writeBadBody(c, h.logger, err)
		return
	}

	board, err := h.boards.CreateBoard(c.Request.Context(), boardservice.CreateBoardRequest{
		Name:        body.Name,
		Description: body.Description,
	})
	if err != nil {
		writeError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusCreated, board)
}

// HandleLoadBoard handles GET /boards/:board.
// Repeated ?tag= parameters restrict the tasks to those carrying a tag.
func (h *Handlers) HandleLoadBoard(c *gin.Context) {
	snapshot, err := h.boards.LoadBoard(c.Request.Context(), boardParam(c), c.QueryArray("tag"))
	if err != nil {
		writeError(c, h.logger, err)
		return
	}

	view, err := kanban.BuildBoard(snapshot.Columns, snapshot.Tasks)
	if err != nil {
		writeError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, BoardResponse{Board: snapshot.Board, Columns: view, Tags: snapshot.Tags})
}

// HandleDeleteBoard handles DELETE /boards/:board
func (h *Handlers) HandleDeleteBoard(c *gin.Context) {
	if err := h.boards.DeleteBoard(c.Request.Context(), boardParam(c)); err != nil {
		writeError(c, h.logger, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// ============================================================================
// Tasks
// ============================================================================

// HandleCreateTask handles POST /boards/:board/tasks
func (h *Handlers) HandleCreateTask(c *gin.Context) {
	var body CreateTaskBody
	if err := c.ShouldBindJSON(&body); err != nil {
		writeBadBody(c, h.logger, err)
		return
	}

	task, err := h.tasks.CreateTask(c.Request.Context(), taskservice.CreateTaskRequest{
		BoardID:    boardParam(c),
		ColumnID:   body.ColumnID,
		Name:       body.Name,
		Body:       body.Body,
		AssigneeID: body.AssigneeID,
		DueDate:    body.DueDate,
		TagIDs:     body.TagIDs,
	})
	if err != nil {
		writeError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusCreated, task)
}

// HandleGetTask handles GET /tasks/:task
func (h *Handlers) HandleGetTask(c *gin.Context) {
	task, err := h.tasks.GetTaskDetail(c.Request.Context(), taskParam(c))
	if err != nil {
		writeError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, task)
}

// HandleUpdateTask handles PATCH /tasks/:task
func (h *Handlers) HandleUpdateTask(c *gin.Context) {
	var body UpdateTaskBody
	if err := c.ShouldBindJSON(&body); err != nil {
		writeBadBody(c, h.logger, err)
		return
	}

	task, err := h.tasks.UpdateTask(c.Request.Context(), taskservice.UpdateTaskRequest{
		ID:         taskParam(c),
		Name:       body.Name,
		Body:       body.Body,
		AssigneeID: body.AssigneeID,
		DueDate:    body.DueDate,
		ClearDue:   body.ClearDue,
	})
	if err != nil {
		writeError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, task)
}

// HandleDeleteTask handles DELETE /tasks/:task. The response lists the
// deleted id and the renumbered survivors of its column.
func (h *Handlers) HandleDeleteTask(c *gin.Context) {
	deletion, err := h.tasks.DeleteTask(c.Request.Context(), taskParam(c))
	if err != nil {
		writeError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, deletion)
}

// HandleMoveTasks handles POST /boards/:board/tasks/move
func (h *Handlers) HandleMoveTasks(c *gin.Context) {
	var body MoveTasksBody
	if err := c.ShouldBindJSON(&body); err != nil {
		writeBadBody(c, h.logger, err)
		return
	}

	if err := h.tasks.MoveTasks(c.Request.Context(), boardParam(c), body.Moves); err != nil {
		writeError(c, h.logger, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// HandleAssignTags handles POST /tasks/:task/tags
func (h *Handlers) HandleAssignTags(c *gin.Context) {
	var body AssignTagsBody
	if err := c.ShouldBindJSON(&body); err != nil {
		writeBadBody(c, h.logger, err)
		return
	}

	tags, err := h.tasks.AssignTags(c.Request.Context(), taskservice.AssignTagsRequest{
		TaskID:  taskParam(c),
		Added:   body.Added,
		Removed: body.Removed,
	})
	if err != nil {
		writeError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, tags)
}

// ============================================================================
// Columns
// ============================================================================

// HandleCreateColumn handles POST /boards/:board/columns
func (h *Handlers) HandleCreateColumn(c *gin.Context) {
	var body ColumnNameBody
	if err := c.ShouldBindJSON(&body); err != nil {
		writeBadBody(c, h.logger, err)
		return
	}

	column, ops, err := h.columns.CreateColumn(c.Request.Context(), columnservice.CreateColumnRequest{
		BoardID: boardParam(c),
		Name:    body.Name,
	})
	if err != nil {
		writeError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusCreated, ColumnOperationsResponse{Column: column, Operations: ops})
}

// HandleRenameColumn handles PATCH /columns/:column
func (h *Handlers) HandleRenameColumn(c *gin.Context) {
	var body ColumnNameBody
	if err := c.ShouldBindJSON(&body); err != nil {
		writeBadBody(c, h.logger, err)
		return
	}

	ops, err := h.columns.RenameColumn(c.Request.Context(), columnservice.RenameColumnRequest{
		ID:   columnParam(c),
		Name: body.Name,
	})
	if err != nil {
		writeError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, ColumnOperationsResponse{Operations: ops})
}

// HandleDeleteColumn handles DELETE /columns/:column
func (h *Handlers) HandleDeleteColumn(c *gin.Context) {
	ops, err := h.columns.DeleteColumn(c.Request.Context(), columnParam(c))
	if err != nil {
		writeError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, ColumnOperationsResponse{Operations: ops})
}

// HandleMoveColumns handles POST /boards/:board/columns/move
func (h *Handlers) HandleMoveColumns(c *gin.Context) {
	var body MoveColumnsBody
	if err := c.ShouldBindJSON(&body); err != nil {
		writeBadBody(c, h.logger, err)
		return
	}

	if err := h.columns.MoveColumns(c.Request.Context(), boardParam(c), body.Links); err != nil {
		writeError(c, h.logger, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// ============================================================================
// Tags
// ============================================================================

// HandleListTags handles GET /boards/:board/tags
func (h *Handlers) HandleListTags(c *gin.Context) {
	tags, err := h.tags.GetTagsByBoard(c.Request.Context(), boardParam(c))
	if err != nil {
		writeError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, tags)
}

// HandleCreateTags handles POST /boards/:board/tags
func (h *Handlers) HandleCreateTags(c *gin.Context) {
	var body CreateTagsBody
	if err := c.ShouldBindJSON(&body); err != nil {
		writeBadBody(c, h.logger, err)
		return
	}

	tags, err := h.tags.CreateTags(c.Request.Context(), tagservice.CreateTagsRequest{
		BoardID: boardParam(c),
		Names:   body.Names,
		Color:   body.Color,
	})
	if err != nil {
		writeError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusCreated, tags)
}

// HandleDeleteTag handles DELETE /tags/:tag
func (h *Handlers) HandleDeleteTag(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("tag"))
	if err != nil {
		writeError(c, h.logger, tagservice.ErrInvalidTagID)
		return
	}
	if err := h.tags.DeleteTag(c.Request.Context(), types.TagIDFromInt(id)); err != nil {
		writeError(c, h.logger, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func boardParam(c *gin.Context) types.BoardID {
	return types.BoardID(c.Param("board"))
}

func columnParam(c *gin.Context) types.ColumnID {
	return types.ColumnID(c.Param("column"))
}

func taskParam(c *gin.Context) types.TaskID {
	return types.TaskID(c.Param("task"))
}

