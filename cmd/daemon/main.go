package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"golang.org/x/sync/errgroup"

	"github.com/thenoetrevino/kanboard/internal/config"
	"github.com/thenoetrevino/kanboard/internal/daemon"
	"github.com/thenoetrevino/kanboard/internal/logging"
)

func main() {
	ctx, cancel := signal.NotifyContext(
		context.Background(),
		os.Interrupt,
		syscall.SIGTERM,
		syscall.SIGQUIT,
	)
	defer cancel()

	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	if closer, err := logging.Init(cfg.LogLevel, cfg.LogDir()); err != nil {
		slog.Warn("logging to stderr", "error", err)
	} else {
		defer func() { _ = closer.Close() }()
	}

	opts := daemon.DefaultOptions()
	opts.Logger = slog.Default()

	server, err := daemon.NewServer(cfg.SocketPath, opts)
	if err != nil {
		slog.Error("failed to create daemon", "error", err)
		os.Exit(1)
	}

	slog.Info("kanboard daemon starting", "socket_path", cfg.SocketPath, "pid", os.Getpid())

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error { return server.Start(gctx) })
	g.Go(func() error { return server.Metrics().ServeMetrics(gctx, cfg.MetricsAddr) })

	if err := g.Wait(); err != nil {
		slog.Error("daemon error", "error", err)
		os.Exit(1)
	}

	slog.Info("kanboard daemon shut down gracefully")
}
