package column

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/thenoetrevino/kanboard/internal/cli"
	"github.com/thenoetrevino/kanboard/internal/kanban"
	"github.com/thenoetrevino/kanboard/internal/models"
	"github.com/thenoetrevino/kanboard/internal/session"
	"github.com/thenoetrevino/kanboard/internal/types"
)

// ColumnCmd returns the column parent command
func ColumnCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "column",
		Short: "Manage columns",
	}

	cmd.AddCommand(CreateCmd())
	cmd.AddCommand(RenameCmd())
	cmd.AddCommand(DeleteCmd())
	cmd.AddCommand(MoveCmd())

	return cmd
}

// boardSession opens the session of the --board board
func boardSession(ctx context.Context, cmd *cobra.Command, c *cli.CLI) (*session.Session, error) {
	ref, err := cli.BoardRef(cmd)
	if err != nil {
		return nil, err
	}
	board, err := c.ResolveBoard(ctx, ref)
	if err != nil {
		return nil, err
	}
	return c.OpenSession(ctx, board.ID)
}

// realColumn resolves ref to a stored column; the Unassigned bucket is refused
func realColumn(view []*kanban.ColumnState, ref string) (types.ColumnID, error) {
	id, err := cli.ResolveColumn(view, ref)
	if err != nil {
		return "", err
	}
	if id.IsNull() {
		return "", cli.Usagef("the %s bucket cannot be changed", types.UnassignedColumnName)
	}
	return id, nil
}

// printChain writes the board's column order
func printChain(w io.Writer, view []*kanban.ColumnState) error {
	names := make([]string, 0, len(view))
	for _, col := range view {
		names = append(names, col.Name)
	}
	_, err := fmt.Fprintln(w, "Columns:", strings.Join(names, " → "))
	return err
}

// opsResult is the --json shape of create, rename and delete
type opsResult struct {
	Operations []models.ColumnOperation `json:"operations"`
	Columns    []*kanban.ColumnState    `json:"columns"`
}
