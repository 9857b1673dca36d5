package tag

import (
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/thenoetrevino/kanboard/internal/cli"
	"github.com/thenoetrevino/kanboard/internal/cli/styles"
	tagservice "github.com/thenoetrevino/kanboard/internal/services/tag"
)

// CreateCmd returns the tag create subcommand
func CreateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "create <name>...",
		Short: "Create tags on a board",
		Long: `Create one or more tags. Names that already exist on the board are
returned unchanged.

Examples:
  kanboard tag create bug ui --board=Roadmap --color="#FF5733"
`,
		Args: cobra.MinimumNArgs(1),
		RunE: runCreate,
	}

	cli.AddBoardFlag(cmd)
	cmd.Flags().String("color", "", "Hex color such as #FF5733 (defaults to transparent)")
	cli.AddOutputFlags(cmd)

	return cmd
}

func runCreate(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	formatter := cli.NewFormatter(cmd)
	color, _ := cmd.Flags().GetString("color")

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

	tags, err := cliInstance.App.TagService.CreateTags(ctx, tagservice.CreateTagsRequest{
		BoardID: board.ID,
		Names:   args,
		Color:   color,
	})
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
		chips := make([]string, 0, len(tags))
		for _, tag := range tags {
			chips = append(chips, styles.RenderTagChip(tag))
		}
		_, err := fmt.Fprintf(w, "Tags on %q: %s\n", board.Name, strings.Join(chips, " "))
		return err
	})
}
