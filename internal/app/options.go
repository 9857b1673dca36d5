package app

import (
	"database/sql"
	"log/slog"

	"github.com/thenoetrevino/kanboard/internal/events"
)

// Option is a functional option for configuring App initialization
type Option func(*appConfig)

// appConfig holds the configuration for App initialization
type appConfig struct {
	db        *sql.DB
	publisher events.EventPublisher
	logger    *slog.Logger
	evict     bool
}

// WithEventPublisher sets the event publisher for the application
func WithEventPublisher(ec events.EventPublisher) Option {
	return func(cfg *appConfig) {
		cfg.publisher = ec
	}
}

// WithLogger sets the logger for the application
func WithLogger(logger *slog.Logger) Option {
	return func(cfg *appConfig) {
		if logger != nil {
			cfg.logger = logger
		}
	}
}

// WithDB hands ownership of the connection to the App; Close closes it
func WithDB(db *sql.DB) Option {
	return func(cfg *appConfig) {
		cfg.db = db
	}
}

// WithEvictPlaceholders sets what sessions do with the placeholder of a
// failed task creation
func WithEvictPlaceholders(evict bool) Option {
	return func(cfg *appConfig) {
		cfg.evict = evict
	}
}
