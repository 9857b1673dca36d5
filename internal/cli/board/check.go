package board

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/thenoetrevino/kanboard/internal/cli"
)

// CheckCmd returns the board check subcommand
func CheckCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "check [board]",
		Short: "Verify the column chain and task positions of a board",
		Long: `Load a board and verify that its columns form a single chain and that
every column's tasks hold the positions 0..n-1.

Exits with code 4 when the stored board is inconsistent.
`,
		Args: cobra.MaximumNArgs(1),
		RunE: runCheck,
	}

	cli.AddBoardFlag(cmd)
	cli.AddOutputFlags(cmd)

	return cmd
}

func runCheck(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	formatter := cli.NewFormatter(cmd)

	ref, err := boardArg(cmd, args)
	if err != nil {
		return formatter.Fail(err)
	}

	cliInstance, err := cli.NewCLI(ctx)
	if err != nil {
		return formatter.Fail(err)
	}
	defer cliInstance.Close()

	board, err := cliInstance.ResolveBoard(ctx, ref)
	if err != nil {
		return formatter.Fail(err)
	}

	// Open fails with ErrBrokenChain when the columns cannot be ordered
	sess, err := cliInstance.OpenSession(ctx, board.ID)
	if err != nil {
		return formatter.Fail(err)
	}
	defer sess.Close()

	if err := sess.Check(); err != nil {
		return formatter.Fail(err)
	}

	result := map[string]any{"board_id": board.ID, "ok": true}
	return formatter.Success(result, string(board.ID), func(w io.Writer) error {
		_, err := fmt.Fprintf(w, "Board %q is consistent\n", board.Name)
		return err
	})
}
