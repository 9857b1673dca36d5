package api

import (
	"log/slog"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// RequestIDHeader carries the request id in both directions
const RequestIDHeader = "X-Request-ID"

// RegisterRoutes registers the board actions on rg.
//
//	GET    /health
//	GET    /boards                      list boards
//	POST   /boards                      create a board
//	GET    /boards/:board               load a board (?tag= filters tasks)
//	DELETE /boards/:board               delete a board
//	POST   /boards/:board/tasks         create a task at the end of its column
//	POST   /boards/:board/tasks/move    persist a task move diff
//	POST   /boards/:board/columns       create a column at the tail
//	POST   /boards/:board/columns/move  persist a column relink diff
//	GET    /boards/:board/tags          list tags
//	POST   /boards/:board/tags          create tags
//	GET    /tasks/:task                 task detail
//	PATCH  /tasks/:task                 update task fields
//	DELETE /tasks/:task                 delete a task
//	POST   /tasks/:task/tags            assign and unassign tags
//	PATCH  /columns/:column             rename a column
//	DELETE /columns/:column             delete an empty column
//	DELETE /tags/:tag                   delete a tag
func RegisterRoutes(rg *gin.RouterGroup, h *Handlers) {
	rg.GET("/health", h.HandleHealth)

	boards := rg.Group("/boards")
	boards.GET("", h.HandleListBoards)
	boards.POST("", h.HandleCreateBoard)
	boards.GET("/:board", h.HandleLoadBoard)
	boards.DELETE("/:board", h.HandleDeleteBoard)
	boards.POST("/:board/tasks", h.HandleCreateTask)
	boards.POST("/:board/tasks/move", h.HandleMoveTasks)
	boards.POST("/:board/columns", h.HandleCreateColumn)
	boards.POST("/:board/columns/move", h.HandleMoveColumns)
	boards.GET("/:board/tags", h.HandleListTags)
	boards.POST("/:board/tags", h.HandleCreateTags)

	tasks := rg.Group("/tasks")
	tasks.GET("/:task", h.HandleGetTask)
	tasks.PATCH("/:task", h.HandleUpdateTask)
	tasks.DELETE("/:task", h.HandleDeleteTask)
	tasks.POST("/:task/tags", h.HandleAssignTags)

	columns := rg.Group("/columns")
	columns.PATCH("/:column", h.HandleRenameColumn)
	columns.DELETE("/:column", h.HandleDeleteColumn)

	rg.DELETE("/tags/:tag", h.HandleDeleteTag)
}

// RouterOption adds middleware or routes to the engine before the API
// routes are registered
type RouterOption func(*gin.Engine)

// NewRouter builds an engine serving the routes under /api/v1
func NewRouter(h *Handlers, opts ...RouterOption) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery(), requestLogger(h.logger))
	for _, opt := range opts {
		opt(router)
	}
	RegisterRoutes(router.Group("/api/v1"), h)
	return router
}

// requestLogger tags every request with an id and logs its outcome
func requestLogger(logger *slog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		requestID := c.GetHeader(RequestIDHeader)
		if requestID == "" {
			requestID = uuid.NewString()
		}
		c.Header(RequestIDHeader, requestID)

		start := time.Now()
		c.Next()

		logger.Info("request",
			"request_id", requestID,
			"method", c.Request.Method,
			"path", c.FullPath(),
			"status", c.Writer.Status(),
			"duration", time.Since(start))
	}
}
