package task

import (
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/thenoetrevino/kanboard/internal/cli"
	"github.com/thenoetrevino/kanboard/internal/session"
	"github.com/thenoetrevino/kanboard/internal/types"
	"github.com/thenoetrevino/kanboard/internal/user"
)

// CreateCmd returns the task create subcommand
func CreateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create a new task",
		Long: `Create a task at the end of a column.

Examples:
  # Simple task (human-readable output)
  kanboard task create --board=Roadmap --name="Fix bug" --column=Todo

  # JSON output for agents
  kanboard task create --board=Roadmap --name="Fix bug" --json

  # Quiet mode for bash capture
  TASK_ID=$(kanboard task create --board=Roadmap --name="Fix bug" --quiet)

  # Description from stdin, with tags and a due date
  echo "## Steps" | kanboard task create --board=Roadmap --name="Crash" \
    --body=- --tag=bug --tag=ui --due=2026-11-01

  # Prompt for everything
  kanboard task create --board=Roadmap --interactive
`,
		RunE: runCreate,
	}

	cli.AddBoardFlag(cmd)
	cmd.Flags().String("name", "", "Task name (required unless --interactive)")
	cmd.Flags().String("body", "", "Task description in markdown (use - for stdin)")
	cmd.Flags().String("column", "", "Column ID or name (defaults to Unassigned)")
	cmd.Flags().StringSlice("tag", nil, "Tag names to attach")
	cmd.Flags().String("assignee", "", "Assignee user ID (@me for yourself)")
	cmd.Flags().String("due", "", "Due date (YYYY-MM-DD)")
	cmd.Flags().BoolP("interactive", "i", false, "Prompt for the task fields")
	cli.AddOutputFlags(cmd)

	return cmd
}

func runCreate(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	formatter := cli.NewFormatter(cmd)

	ref, err := cli.BoardRef(cmd)
	if err != nil {
		return formatter.Fail(err)
	}
	interactive, _ := cmd.Flags().GetBool("interactive")
	form := cli.TaskForm{}
	form.Name, _ = cmd.Flags().GetString("name")
	form.Body, _ = cmd.Flags().GetString("body")
	form.ColumnID, _ = cmd.Flags().GetString("column")
	form.TagNames, _ = cmd.Flags().GetStringSlice("tag")
	assignee, _ := cmd.Flags().GetString("assignee")
	dueFlag, _ := cmd.Flags().GetString("due")

	if form.Name == "" && !interactive {
		return formatter.Fail(cli.Usagef("--name is required"))
	}
	if form.Body == "-" {
		data, err := io.ReadAll(cmd.InOrStdin())
		if err != nil {
			return formatter.Fail(fmt.Errorf("reading description from stdin: %w", err))
		}
		form.Body = strings.TrimRight(string(data), "\n")
	}
	due, err := cli.ParseDueDate(dueFlag)
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

	sess, err := cliInstance.OpenSession(ctx, board.ID)
	if err != nil {
		return formatter.Fail(err)
	}
	defer sess.Close()

	columnID, err := cli.ResolveColumn(sess.Columns(), form.ColumnID)
	if err != nil {
		return formatter.Fail(err)
	}

	if interactive {
		form.ColumnID = string(columnID)
		if err := cli.PromptTask(&form, sess.Columns(), sess.Tags()); err != nil {
			return formatter.Fail(err)
		}
		columnID = types.ColumnID(form.ColumnID)
	}

	tagIDs, err := cli.ResolveTags(sess.Tags(), form.TagNames)
	if err != nil {
		return formatter.Fail(err)
	}

	task, err := sess.CreateTask(ctx, session.NewTask{
		ColumnID:   columnID,
		Name:       form.Name,
		Body:       form.Body,
		AssigneeID: user.Resolve(assignee),
		DueDate:    due,
		TagIDs:     tagIDs,
	})
	if err != nil {
		return formatter.Fail(err)
	}

	return formatter.Success(task, string(task.ID), func(w io.Writer) error {
		_, err := fmt.Fprintf(w, "Created task %q in %s at position %d (%s)\n",
			task.Name, columnName(sess.Columns(), task.ColumnID), task.Position, task.ID)
		return err
	})
}

