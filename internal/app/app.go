package app

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"os"

	"github.com/thenoetrevino/kanboard/internal/config"
	"github.com/thenoetrevino/kanboard/internal/database"
	"github.com/thenoetrevino/kanboard/internal/events"
	boardservice "github.com/thenoetrevino/kanboard/internal/services/board"
	columnservice "github.com/thenoetrevino/kanboard/internal/services/column"
	tagservice "github.com/thenoetrevino/kanboard/internal/services/tag"
	taskservice "github.com/thenoetrevino/kanboard/internal/services/task"
	"github.com/thenoetrevino/kanboard/internal/session"
)

// App holds all application services and provides dependency injection.
// This is the main application container that manages service lifecycles.
type App struct {
	// Repository layer (direct database access)
	repo *database.Repository
	db   *sql.DB

	// Event system for live updates; nil when no daemon is running
	eventClient events.EventPublisher

	logger *slog.Logger
	evict  bool

	// Service layer (business logic)
	BoardService  boardservice.Service
	ColumnService columnservice.Service
	TaskService   taskservice.Service
	TagService    tagservice.Service
}

// New creates a new App with all services initialized.
// This is the single entry point for creating the application container.
func New(repo *database.Repository, opts ...Option) *App {
	cfg := &appConfig{logger: slog.Default(), evict: true}
	for _, opt := range opts {
		opt(cfg)
	}

	publisher := cfg.publisher
	return &App{
		repo:          repo,
		db:            cfg.db,
		eventClient:   publisher,
		logger:        cfg.logger,
		evict:         cfg.evict,
		BoardService:  boardservice.NewService(repo, publisher),
		ColumnService: columnservice.NewService(repo, publisher),
		TaskService:   taskservice.NewService(repo, publisher),
		TagService:    tagservice.NewService(repo, publisher),
	}
}

// Open builds the container from configuration: it opens the database and,
// when a daemon socket exists, connects the live-update client.
func Open(ctx context.Context, cfg *config.Config) (*App, error) {
	db, err := database.InitDB(ctx, cfg.DBPath)
	if err != nil {
		return nil, err
	}

	opts := []Option{
		WithDB(db),
		WithLogger(slog.Default()),
		WithEvictPlaceholders(cfg.ShouldEvictPlaceholders()),
	}
	// only a live client is passed on: a typed nil *events.Client would
	// make every publish go through the retry loop
	if client := connectDaemon(ctx, cfg); client != nil {
		opts = append(opts, WithEventPublisher(client))
	}

	return New(database.NewRepository(db), opts...), nil
}

// connectDaemon returns a connected client, or nil when the daemon is not
// running. Live updates are optional so failures are only logged.
func connectDaemon(ctx context.Context, cfg *config.Config) *events.Client {
	if _, err := os.Stat(cfg.SocketPath); err != nil {
		return nil
	}

	client, err := events.NewClient(cfg.SocketPath, events.WithDebounce(cfg.Debounce))
	if err != nil {
		slog.Warn("failed to create event client", "error", err)
		return nil
	}
	if err := client.Connect(ctx); err != nil {
		daemonErr := events.ClassifyDaemonError(err, cfg.SocketPath)
		slog.Info("live updates disabled", "message", daemonErr.Message(), "hint", daemonErr.Hint(), "error", err)
		_ = client.Close()
		return nil
	}
	return client
}

// Repo returns the underlying repository for direct database access.
func (a *App) Repo() *database.Repository {
	return a.repo
}

// Events returns the live-update client, nil when no daemon is connected
func (a *App) Events() events.EventPublisher {
	return a.eventClient
}

// NewSession creates a board session persisting through this container
func (a *App) NewSession(opts ...session.Option) *session.Session {
	base := []session.Option{
		session.WithLogger(a.logger),
		session.WithEvictPlaceholders(a.evict),
	}
	return session.New(a.Backend(), append(base, opts...)...)
}

// Close releases the event client and the database
func (a *App) Close() error {
	var errs []error
	if a.eventClient != nil {
		if err := a.eventClient.Close(); err != nil {
			errs = append(errs, fmt.Errorf("closing event client: %w", err))
		}
	}
	if a.db != nil {
		if err := a.db.Close(); err != nil {
			errs = append(errs, fmt.Errorf("closing database: %w", err))
		}
	}
	return errors.Join(errs...)
}
