package task

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/thenoetrevino/kanboard/internal/cli"
	"github.com/thenoetrevino/kanboard/internal/types"
)

// DeleteCmd returns the task delete subcommand
func DeleteCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "delete <task-id>",
		Short: "Delete a task",
		Long: `Delete a task. The tasks after it in its column move up one position.

Examples:
  kanboard task delete 3f6c... --force
`,
		Args: cobra.ExactArgs(1),
		RunE: runDelete,
	}

	cmd.Flags().Bool("force", false, "Skip the confirmation prompt")
	cli.AddOutputFlags(cmd)

	return cmd
}

func runDelete(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	formatter := cli.NewFormatter(cmd)
	force, _ := cmd.Flags().GetBool("force")

	cliInstance, err := cli.NewCLI(ctx)
	if err != nil {
		return formatter.Fail(err)
	}
	defer cliInstance.Close()

	task, err := cliInstance.App.TaskService.GetTaskDetail(ctx, types.TaskID(args[0]))
	if err != nil {
		return formatter.Fail(err)
	}

	if !force && !formatter.JSON && !formatter.Quiet {
		confirmed, err := cli.Confirm(fmt.Sprintf("Delete task %q?", task.Name))
		if err != nil {
			return formatter.Fail(err)
		}
		if !confirmed {
			_, err := fmt.Fprintln(formatter.Out, "Cancelled")
			return err
		}
	}

	result, err := cliInstance.App.TaskService.DeleteTask(ctx, task.ID)
	if err != nil {
		return formatter.Fail(err)
	}

	return formatter.Success(result, string(task.ID), func(w io.Writer) error {
		_, err := fmt.Fprintf(w, "Deleted task %q (%d tasks renumbered)\n", task.Name, len(result.Updates))
		return err
	})
}
