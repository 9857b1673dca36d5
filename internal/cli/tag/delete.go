package tag

import (
	"fmt"
	"io"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/thenoetrevino/kanboard/internal/cli"
	"github.com/thenoetrevino/kanboard/internal/types"
)

// DeleteCmd returns the tag delete subcommand
func DeleteCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "delete <tag-id>",
		Short: "Delete a tag and detach it from every task",
		Args:  cobra.ExactArgs(1),
		RunE:  runDelete,
	}
	cli.AddOutputFlags(cmd)
	return cmd
}

func runDelete(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	formatter := cli.NewFormatter(cmd)

	n, err := strconv.Atoi(args[0])
	if err != nil || n <= 0 {
		return formatter.Fail(cli.Usagef("invalid tag id %q", args[0]))
	}
	id := types.TagIDFromInt(n)

	cliInstance, err := cli.NewCLI(ctx)
	if err != nil {
		return formatter.Fail(err)
	}
	defer cliInstance.Close()

	if err := cliInstance.App.TagService.DeleteTag(ctx, id); err != nil {
		return formatter.Fail(err)
	}

	return formatter.Success(map[string]any{"id": n}, args[0], func(w io.Writer) error {
		_, err := fmt.Fprintf(w, "Deleted tag %d\n", n)
		return err
	})
}
