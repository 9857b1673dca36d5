package column

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/thenoetrevino/kanboard/internal/cli"
	"github.com/thenoetrevino/kanboard/internal/kanban"
	"github.com/thenoetrevino/kanboard/internal/models"
)

// moveResult is the --json shape of column move
type moveResult struct {
	Links   []models.ColumnLink   `json:"links"`
	Columns []*kanban.ColumnState `json:"columns"`
}

// MoveCmd returns the column move subcommand
func MoveCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "move <column>",
		Short: "Swap a column with the one at a position",
		Long: `Swap a column with the column currently at --position and relink the chain.
Positions count from 1, the first real column; Unassigned always stays in front.
Only the columns whose next pointer changed are written.

Examples:
  kanboard column move Done --board=Roadmap --position=1
`,
		Args: cobra.ExactArgs(1),
		RunE: runMove,
	}

	cli.AddBoardFlag(cmd)
	cmd.Flags().Int("position", 0, "Destination position, 1 for the first column (required)")
	_ = cmd.MarkFlagRequired("position")
	cli.AddOutputFlags(cmd)

	return cmd
}

func runMove(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	formatter := cli.NewFormatter(cmd)
	position, _ := cmd.Flags().GetInt("position")

	cliInstance, err := cli.NewCLI(ctx)
	if err != nil {
		return formatter.Fail(err)
	}
	defer cliInstance.Close()

	sess, err := boardSession(ctx, cmd, cliInstance)
	if err != nil {
		return formatter.Fail(err)
	}
	defer sess.Close()

	view := sess.Columns()
	if position < 1 || position >= len(view) {
		return formatter.Fail(cli.Usagef("--position must be between 1 and %d", len(view)-1))
	}

	id, err := realColumn(view, args[0])
	if err != nil {
		return formatter.Fail(err)
	}

	links, err := sess.MoveColumn(ctx, id, position)
	if err != nil {
		return formatter.Fail(err)
	}

	view = sess.Columns()
	return formatter.Success(moveResult{Links: links, Columns: view}, string(id), func(w io.Writer) error {
		if _, err := fmt.Fprintf(w, "Moved column %s (%d links rewritten)\n", args[0], len(links)); err != nil {
			return err
		}
		return printChain(w, view)
	})
}
