package tag

import (
	"fmt"
	"io"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/thenoetrevino/kanboard/internal/cli"
	"github.com/thenoetrevino/kanboard/internal/cli/styles"
)

// ListCmd returns the tag list subcommand
func ListCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List a board's tags",
		RunE:  runList,
	}
	cli.AddBoardFlag(cmd)
	cli.AddOutputFlags(cmd)
	return cmd
}

func runList(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	formatter := cli.NewFormatter(cmd)

	ref, err := cli.BoardRef(cmd)
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

	tags, err := cliInstance.App.TagService.GetTagsByBoard(ctx, board.ID)
	if err != nil {
		return formatter.Fail(err)
	}

	if formatter.Quiet {
		for _, tag := range tags {
			if _, err := fmt.Fprintln(formatter.Out, tag.ID.ToInt()); err != nil {
				return err
			}
		}
		return nil
	}

	return formatter.Success(tags, "", func(w io.Writer) error {
		if len(tags) == 0 {
			_, err := fmt.Fprintf(w, "No tags on %q\n", board.Name)
			return err
		}
		rows := make([][]string, 0, len(tags))
		for _, tag := range tags {
			rows = append(rows, []string{strconv.Itoa(tag.ID.ToInt()), styles.RenderTagChip(tag), tag.Color})
		}
		_, err := fmt.Fprintln(w, styles.RenderTable([]string{"ID", "TAG", "COLOR"}, rows))
		return err
	})
}
