package task

import (
	"fmt"
	"io"
	"slices"
	"strings"

	"github.com/spf13/cobra"

	"github.com/thenoetrevino/kanboard/internal/cli"
	"github.com/thenoetrevino/kanboard/internal/cli/styles"
	"github.com/thenoetrevino/kanboard/internal/types"
)

// TagCmd returns the task tag subcommand
func TagCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "tag <task-id>",
		Short: "Attach or detach tags",
		Long: `Attach tags to a task and detach others. Tags are given by name and must
already exist on the task's board.

Examples:
  kanboard task tag 3f6c... --add=bug --add=ui
  kanboard task tag 3f6c... --remove=ui --json
`,
		Args: cobra.ExactArgs(1),
		RunE: runTag,
	}

	cmd.Flags().StringSlice("add", nil, "Tag names to attach")
	cmd.Flags().StringSlice("remove", nil, "Tag names to detach")
	cli.AddOutputFlags(cmd)

	return cmd
}

func runTag(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	formatter := cli.NewFormatter(cmd)
	add, _ := cmd.Flags().GetStringSlice("add")
	remove, _ := cmd.Flags().GetStringSlice("remove")
	if len(add) == 0 && len(remove) == 0 {
		return formatter.Fail(cli.Usagef("pass --add or --remove"))
	}

	cliInstance, err := cli.NewCLI(ctx)
	if err != nil {
		return formatter.Fail(err)
	}
	defer cliInstance.Close()

	current, err := cliInstance.App.TaskService.GetTaskDetail(ctx, types.TaskID(args[0]))
	if err != nil {
		return formatter.Fail(err)
	}

	sess, err := cliInstance.OpenSession(ctx, current.BoardID)
	if err != nil {
		return formatter.Fail(err)
	}
	defer sess.Close()

	added, err := cli.ResolveTags(sess.Tags(), add)
	if err != nil {
		return formatter.Fail(err)
	}
	removed, err := cli.ResolveTags(sess.Tags(), remove)
	if err != nil {
		return formatter.Fail(err)
	}

	want := slices.DeleteFunc(append(current.TagIDs(), added...), func(id types.TagID) bool {
		return slices.Contains(removed, id)
	})

	tags, err := sess.AssignTags(ctx, current.ID, want)
	if err != nil {
		return formatter.Fail(err)
	}

	return formatter.Success(tags, string(current.ID), func(w io.Writer) error {
		if len(tags) == 0 {
			_, err := fmt.Fprintf(w, "Task %q has no tags\n", current.Name)
			return err
		}
		chips := make([]string, 0, len(tags))
		for _, tag := range tags {
			chips = append(chips, styles.RenderTagChip(tag))
		}
		_, err := fmt.Fprintf(w, "Task %q tags: %s\n", current.Name, strings.Join(chips, " "))
		return err
	})
}
