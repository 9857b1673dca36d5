package cmd

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/thenoetrevino/kanboard/internal/cli"
	"github.com/thenoetrevino/kanboard/internal/config"
	"github.com/thenoetrevino/kanboard/internal/launcher"
	"github.com/thenoetrevino/kanboard/internal/logging"
)

func tuiCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "tui [board]",
		Short: "Open a board in the interactive board view",
		Long: `Open a board in the interactive board view.

The board is taken from the argument, --board, or $KANBOARD_BOARD, by ID or name.
Press ? inside the view for the key bindings.`,
		Args: cobra.MaximumNArgs(1),
		RunE: runTUI,
	}
	cli.AddBoardFlag(cmd)
	return cmd
}

func runTUI(cmd *cobra.Command, args []string) error {
	ctx, cancel := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	ref := ""
	if len(args) == 1 {
		ref = args[0]
	} else {
		var err error
		if ref, err = cli.BoardRef(cmd); err != nil {
			return err
		}
	}

	// the view owns the terminal, so logs go to the file only and must be
	// set up before the app captures the default logger
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	closer, err := logging.Init(cfg.LogLevel, cfg.LogDir())
	if err != nil {
		return fmt.Errorf("initializing logging: %w", err)
	}
	defer func() { _ = closer.Close() }()

	cliInstance, err := cli.NewCLI(ctx)
	if err != nil {
		return err
	}
	defer cliInstance.Close()

	board, err := cliInstance.ResolveBoard(ctx, ref)
	if err != nil {
		return err
	}

	return launcher.Launch(ctx, cliInstance.App, cliInstance.Config, board.ID)
}
