package task

import (
	"io"

	"github.com/spf13/cobra"

	"github.com/thenoetrevino/kanboard/internal/cli"
)

// ShowCmd returns the task show subcommand
func ShowCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "show <task-id>",
		Short: "Show a task with its rendered description",
		Args:  cobra.ExactArgs(1),
		RunE:  runShow,
	}
	cli.AddOutputFlags(cmd)
	return cmd
}

func runShow(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	formatter := cli.NewFormatter(cmd)

	cliInstance, err := cli.NewCLI(ctx)
	if err != nil {
		return formatter.Fail(err)
	}
	defer cliInstance.Close()

	task, view, err := loadTask(ctx, cliInstance, args[0])
	if err != nil {
		return formatter.Fail(err)
	}

	return formatter.Success(task, string(task.ID), func(w io.Writer) error {
		return cli.RenderTask(w, task, columnName(view, task.ColumnID))
	})
}
