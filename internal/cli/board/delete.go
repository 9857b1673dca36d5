package board

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/thenoetrevino/kanboard/internal/cli"
)

// DeleteCmd returns the board delete subcommand
func DeleteCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "delete <board>",
		Short: "Delete a board with its columns, tasks and tags",
		Args:  cobra.ExactArgs(1),
		RunE:  runDelete,
	}

	cmd.Flags().Bool("force", false, "Skip the confirmation prompt")
	cli.AddOutputFlags(cmd)

	return cmd
}

func runDelete(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	formatter := cli.NewFormatter(cmd)
	force, _ := cmd.Flags().GetBool("force")

	cliInstance, err := cli.NewCLI(ctx)
	if err != nil {
		return formatter.Fail(err)
	}
	defer cliInstance.Close()

	board, err := cliInstance.ResolveBoard(ctx, args[0])
	if err != nil {
		return formatter.Fail(err)
	}

	if !force && !formatter.JSON && !formatter.Quiet {
		confirmed, err := cli.Confirm(fmt.Sprintf("Delete board %q and everything on it?", board.Name))
		if err != nil {
			return formatter.Fail(err)
		}
		if !confirmed {
			_, err := fmt.Fprintln(formatter.Out, "Cancelled")
			return err
		}
	}

	if err := cliInstance.App.BoardService.DeleteBoard(ctx, board.ID); err != nil {
		return formatter.Fail(err)
	}

	return formatter.Success(map[string]any{"id": board.ID}, string(board.ID), func(w io.Writer) error {
		_, err := fmt.Fprintf(w, "Deleted board %q\n", board.Name)
		return err
	})
}
