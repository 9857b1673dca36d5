package launcher

import (
	"context"
	"fmt"
	"log/slog"

	tea "charm.land/bubbletea/v2"

	"github.com/thenoetrevino/kanboard/internal/app"
	"github.com/thenoetrevino/kanboard/internal/config"
	"github.com/thenoetrevino/kanboard/internal/events"
	"github.com/thenoetrevino/kanboard/internal/tui"
	"github.com/thenoetrevino/kanboard/internal/tui/components"
	"github.com/thenoetrevino/kanboard/internal/tui/theme"
	"github.com/thenoetrevino/kanboard/internal/types"
)

// Launch opens boardID and runs the board view until the user quits or
// ctx is cancelled. Live updates are used when the app has a daemon
// connection.
func Launch(ctx context.Context, a *app.App, cfg *config.Config, boardID types.BoardID) error {
	theme.Init(cfg.ColorScheme)
	components.InitStyles()

	sess := a.NewSession()
	if err := sess.Open(ctx, boardID); err != nil {
		return fmt.Errorf("opening board: %w", err)
	}
	defer sess.Close()

	opts := []tui.Option{tui.WithKeys(cfg.KeyMappings)}
	if ch := listen(ctx, a.Events(), cfg.SocketPath, boardID); ch != nil {
		opts = append(opts, tui.WithEvents(ch))
	} else if ch, err := events.WatchDatabase(ctx, cfg.DBPath, cfg.Debounce); err == nil {
		slog.Info("no daemon, watching the database file for changes", "path", cfg.DBPath)
		opts = append(opts, tui.WithEvents(ch))
	} else {
		slog.Info("continuing without live updates", "error", err)
	}

	p := tea.NewProgram(tui.New(ctx, sess, opts...), tea.WithContext(ctx))
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("running board view: %w", err)
	}
	return nil
}

// listen subscribes to boardID and returns the event stream, nil when no
// daemon is connected or the subscription fails
func listen(ctx context.Context, pub events.EventPublisher, socketPath string, boardID types.BoardID) <-chan events.Event {
	if pub == nil {
		return nil
	}
	if err := pub.Subscribe(boardID); err != nil {
		daemonErr := events.ClassifyDaemonError(err, socketPath)
		slog.Warn("failed to subscribe to board", "message", daemonErr.Message(), "hint", daemonErr.Hint())
		return nil
	}
	ch, err := pub.Listen(ctx)
	if err != nil {
		daemonErr := events.ClassifyDaemonError(err, socketPath)
		slog.Warn("failed to listen for events", "message", daemonErr.Message(), "hint", daemonErr.Hint())
		return nil
	}
	return ch
}
