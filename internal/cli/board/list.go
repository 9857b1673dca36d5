package board

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/thenoetrevino/kanboard/internal/cli"
	"github.com/thenoetrevino/kanboard/internal/cli/styles"
)

// ListCmd returns the board list subcommand
func ListCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List all boards",
		RunE:  runList,
	}
	cli.AddOutputFlags(cmd)
	return cmd
}

func runList(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	formatter := cli.NewFormatter(cmd)

	cliInstance, err := cli.NewCLI(ctx)
	if err != nil {
		return formatter.Fail(err)
	}
	defer cliInstance.Close()

	boards, err := cliInstance.App.BoardService.GetAllBoards(ctx)
	if err != nil {
		return formatter.Fail(err)
	}

	if formatter.Quiet {
		for _, b := range boards {
			if _, err := fmt.Fprintln(formatter.Out, b.ID); err != nil {
				return err
			}
		}
		return nil
	}

	return formatter.Success(boards, "", func(w io.Writer) error {
		if len(boards) == 0 {
			_, err := fmt.Fprintln(w, "No boards found")
			return err
		}
		rows := make([][]string, 0, len(boards))
		for _, b := range boards {
			rows = append(rows, []string{string(b.ID), b.Name, b.Description})
		}
		_, err := fmt.Fprintln(w, styles.RenderTable([]string{"ID", "NAME", "DESCRIPTION"}, rows))
		return err
	})
}
