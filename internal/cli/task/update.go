package task

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/thenoetrevino/kanboard/internal/cli"
	taskservice "github.com/thenoetrevino/kanboard/internal/services/task"
	"github.com/thenoetrevino/kanboard/internal/types"
	"github.com/thenoetrevino/kanboard/internal/user"
)

// UpdateCmd returns the task update subcommand
func UpdateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "update <task-id>",
		Short: "Update a task's fields",
		Long: `Update a task's name, description, assignee or due date.
Only the flags given are changed. Use 'task move' to change its column.

Examples:
  kanboard task update 3f6c... --name="Fix login bug" --due=2026-11-01
  kanboard task update 3f6c... --clear-due
`,
		Args: cobra.ExactArgs(1),
		RunE: runUpdate,
	}

	cmd.Flags().String("name", "", "New task name")
	cmd.Flags().String("body", "", "New description in markdown")
	cmd.Flags().String("assignee", "", "New assignee user ID (@me for yourself)")
	cmd.Flags().String("due", "", "New due date (YYYY-MM-DD)")
	cmd.Flags().Bool("clear-due", false, "Remove the due date")
	cmd.MarkFlagsMutuallyExclusive("due", "clear-due")
	cli.AddOutputFlags(cmd)

	return cmd
}

func runUpdate(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	formatter := cli.NewFormatter(cmd)
	flags := cmd.Flags()

	req := taskservice.UpdateTaskRequest{ID: types.TaskID(args[0])}
	if flags.Changed("name") {
		name, _ := flags.GetString("name")
		req.Name = &name
	}
	if flags.Changed("body") {
		body, _ := flags.GetString("body")
		req.Body = &body
	}
	if flags.Changed("assignee") {
		assignee, _ := flags.GetString("assignee")
		id := user.Resolve(assignee)
		req.AssigneeID = &id
	}
	if flags.Changed("due") {
		dueFlag, _ := flags.GetString("due")
		due, err := cli.ParseDueDate(dueFlag)
		if err != nil {
			return formatter.Fail(err)
		}
		req.DueDate = due
	}
	req.ClearDue, _ = flags.GetBool("clear-due")

	if req.Name == nil && req.Body == nil && req.AssigneeID == nil && req.DueDate == nil && !req.ClearDue {
		return formatter.Fail(cli.Usagef("nothing to update"))
	}

	cliInstance, err := cli.NewCLI(ctx)
	if err != nil {
		return formatter.Fail(err)
	}
	defer cliInstance.Close()

	task, err := cliInstance.App.TaskService.UpdateTask(ctx, req)
	if err != nil {
		return formatter.Fail(err)
	}

	return formatter.Success(task, string(task.ID), func(w io.Writer) error {
		_, err := fmt.Fprintf(w, "Updated task %q (%s)\n", task.Name, task.ID)
		return err
	})
}
