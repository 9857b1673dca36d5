package cli

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/thenoetrevino/kanboard/internal/app"
	"github.com/thenoetrevino/kanboard/internal/config"
	"github.com/thenoetrevino/kanboard/internal/session"
	"github.com/thenoetrevino/kanboard/internal/types"
)

// CLI represents the CLI application context
type CLI struct {
	App    *app.App // Application container with services
	Config *config.Config

	owned bool // App was opened here and is closed by Close
}

type appKey struct{}

// WithApp stores an already built container in ctx. Commands run with such
// a context use it instead of opening the configured database; tests rely
// on this to run commands against an in-memory store.
func WithApp(ctx context.Context, a *app.App) context.Context {
	return context.WithValue(ctx, appKey{}, a)
}

// NewCLI loads the configuration and opens the application container.
// The daemon connection is optional; without it changes are not broadcast.
func NewCLI(ctx context.Context) (*CLI, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	if a, ok := ctx.Value(appKey{}).(*app.App); ok && a != nil {
		return &CLI{App: a, Config: cfg}, nil
	}

	application, err := app.Open(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize database: %w", err)
	}

	return &CLI{App: application, Config: cfg, owned: true}, nil
}

// Close cleans up CLI resources
func (c *CLI) Close() {
	if !c.owned {
		return
	}
	if err := c.App.Close(); err != nil {
		slog.Warn("error closing app", "error", err)
	}
}

// OpenSession mounts boardID in a fresh session
func (c *CLI) OpenSession(ctx context.Context, boardID types.BoardID) (*session.Session, error) {
	sess := c.App.NewSession()
	if err := sess.Open(ctx, boardID); err != nil {
		return nil, err
	}
	return sess, nil
}
