package serve

import (
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/spf13/cobra"

	"github.com/thenoetrevino/kanboard/internal/api"
	"github.com/thenoetrevino/kanboard/internal/cli"
	"github.com/thenoetrevino/kanboard/internal/config"
	"github.com/thenoetrevino/kanboard/internal/logging"
)

// ServeCmd returns the serve command
func ServeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the board API over HTTP",
		Long: `Serve the JSON API under /api/v1 and Prometheus metrics at /metrics.

Changes made through the API are broadcast to open boards when the
kanboard daemon is running.

Examples:
  kanboard serve
  kanboard serve --addr=:9000
`,
		RunE: runServe,
	}

	cmd.Flags().String("addr", "", "Listen address (defaults to api_addr from the config)")

	return cmd
}

func runServe(cmd *cobra.Command, args []string) error {
	ctx, cancel := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	cfg, err := config.Load()
	if err != nil {
		return err
	}
	if closer, err := logging.Init(cfg.LogLevel, cfg.LogDir()); err != nil {
		slog.Warn("logging to stderr", "error", err)
	} else {
		defer func() { _ = closer.Close() }()
	}

	cliInstance, err := cli.NewCLI(ctx)
	if err != nil {
		return err
	}
	defer cliInstance.Close()

	addr, _ := cmd.Flags().GetString("addr")
	if addr == "" {
		addr = cliInstance.Config.APIAddr
	}

	gin.SetMode(gin.ReleaseMode)
	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))

	a := cliInstance.App
	handlers := api.NewHandlers(a.BoardService, a.ColumnService, a.TaskService, a.TagService, slog.Default())
	router := api.NewRouter(handlers, api.WithMetrics(reg))

	if err := api.Serve(ctx, addr, router); err != nil {
		return err
	}
	slog.Info("api shut down gracefully")
	return nil
}
