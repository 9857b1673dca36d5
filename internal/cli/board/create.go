package board

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/thenoetrevino/kanboard/internal/cli"
	"github.com/thenoetrevino/kanboard/internal/models"
	boardservice "github.com/thenoetrevino/kanboard/internal/services/board"
)

// CreateCmd returns the board create subcommand
func CreateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create a new board",
		Long: `Create a board seeded with the Todo, In Progress and Done columns.

Examples:
  kanboard board create --name="Roadmap"

  # Quiet mode for bash capture
  BOARD=$(kanboard board create --name="Roadmap" --quiet)
`,
		RunE: runCreate,
	}

	cmd.Flags().String("name", "", "Board name (required)")
	_ = cmd.MarkFlagRequired("name")
	cmd.Flags().String("description", "", "Board description")
	cli.AddOutputFlags(cmd)

	return cmd
}

func runCreate(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	formatter := cli.NewFormatter(cmd)

	name, _ := cmd.Flags().GetString("name")
	description, _ := cmd.Flags().GetString("description")

	cliInstance, err := cli.NewCLI(ctx)
	if err != nil {
		return formatter.Fail(err)
	}
	defer cliInstance.Close()

	board, err := cliInstance.App.BoardService.CreateBoard(ctx, boardservice.CreateBoardRequest{
		Name:        name,
		Description: description,
	})
	if err != nil {
		return formatter.Fail(err)
	}

	return formatter.Success(board, string(board.ID), func(w io.Writer) error {
		return printCreated(w, board)
	})
}

func printCreated(w io.Writer, board *models.Board) error {
	_, err := fmt.Fprintf(w, "Created board %q (%s)\n", board.Name, board.ID)
	return err
}
