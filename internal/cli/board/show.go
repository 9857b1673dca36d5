package board

import (
	"io"

	"github.com/spf13/cobra"

	"github.com/thenoetrevino/kanboard/internal/cli"
	"github.com/thenoetrevino/kanboard/internal/kanban"
	"github.com/thenoetrevino/kanboard/internal/models"
)

// boardView is the --json shape of board show
type boardView struct {
	Board   *models.Board         `json:"board"`
	Columns []*kanban.ColumnState `json:"columns"`
	Tags    []*models.Tag         `json:"tags"`
}

// ShowCmd returns the board show subcommand
func ShowCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "show [board]",
		Short: "Render a board with its columns and tasks",
		Long: `Render a board with its columns and tasks.

The board is taken from the argument, --board, or $KANBOARD_BOARD, by ID or name.

Examples:
  kanboard board show Roadmap
  kanboard board show --board=Roadmap --tag=bug --json
`,
		Args: cobra.MaximumNArgs(1),
		RunE: runShow,
	}

	cli.AddBoardFlag(cmd)
	cmd.Flags().StringSlice("tag", nil, "Only show tasks carrying one of these tags")
	cli.AddOutputFlags(cmd)

	return cmd
}

func runShow(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	formatter := cli.NewFormatter(cmd)

	ref, err := boardArg(cmd, args)
	if err != nil {
		return formatter.Fail(err)
	}
	tagFilter, _ := cmd.Flags().GetStringSlice("tag")

	cliInstance, err := cli.NewCLI(ctx)
	if err != nil {
		return formatter.Fail(err)
	}
	defer cliInstance.Close()

	board, err := cliInstance.ResolveBoard(ctx, ref)
	if err != nil {
		return formatter.Fail(err)
	}

	snapshot, err := cliInstance.App.BoardService.LoadBoard(ctx, board.ID, tagFilter)
	if err != nil {
		return formatter.Fail(err)
	}
	view, err := kanban.BuildBoard(snapshot.Columns, snapshot.Tasks)
	if err != nil {
		return formatter.Fail(err)
	}

	data := boardView{Board: snapshot.Board, Columns: view, Tags: snapshot.Tags}
	return formatter.Success(data, string(board.ID), func(w io.Writer) error {
		return cli.RenderBoard(w, snapshot.Board, view)
	})
}

// boardArg prefers the positional argument over --board
func boardArg(cmd *cobra.Command, args []string) (string, error) {
	if len(args) == 1 {
		return args[0], nil
	}
	return cli.BoardRef(cmd)
}
