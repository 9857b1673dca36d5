package task

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/thenoetrevino/kanboard/internal/cli"
	"github.com/thenoetrevino/kanboard/internal/kanban"
	"github.com/thenoetrevino/kanboard/internal/models"
	"github.com/thenoetrevino/kanboard/internal/types"
)

// moveResult is the --json shape of task move
type moveResult struct {
	Task    *models.Task      `json:"task"`
	Changes []models.TaskMove `json:"changes"`
}

// MoveCmd returns the task move subcommand
func MoveCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "move <task-id>",
		Short: "Move a task to a column and position",
		Long: `Move a task within its column or to another column.

Positions are zero-based. Without --position the task goes to the end of
the destination column. Only the tasks whose position or column changed
are written.

Examples:
  kanboard task move 3f6c... --column="In Progress"
  kanboard task move 3f6c... --position=0
  kanboard task move 3f6c... --column=Unassigned --json
`,
		Args: cobra.ExactArgs(1),
		RunE: runMove,
	}

	cmd.Flags().String("column", "", "Destination column ID or name (defaults to the current column)")
	cmd.Flags().Int("position", -1, "Destination position (defaults to the end)")
	cli.AddOutputFlags(cmd)

	return cmd
}

func runMove(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	formatter := cli.NewFormatter(cmd)
	position, _ := cmd.Flags().GetInt("position")

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

	dest := current.ColumnID
	if cmd.Flags().Changed("column") {
		ref, _ := cmd.Flags().GetString("column")
		if dest, err = cli.ResolveColumn(sess.Columns(), ref); err != nil {
			return formatter.Fail(err)
		}
	}

	if position < 0 {
		position = endPosition(sess.Columns(), current, dest)
	}

	changes, err := sess.MoveTask(ctx, current.ID, dest, position)
	if err != nil {
		return formatter.Fail(err)
	}

	moved, _ := sess.Task(current.ID)
	result := moveResult{Task: moved, Changes: changes}
	return formatter.Success(result, string(current.ID), func(w io.Writer) error {
		_, err := fmt.Fprintf(w, "Moved %q to %s at position %d (%d tasks written)\n",
			moved.Name, columnName(sess.Columns(), moved.ColumnID), moved.Position, len(changes))
		return err
	})
}

// endPosition is the last slot of dest once the task is placed there
func endPosition(view []*kanban.ColumnState, task *models.Task, dest types.ColumnID) int {
	for _, col := range view {
		if col.ID != dest {
			continue
		}
		if dest == task.ColumnID {
			return max(len(col.Tasks)-1, 0)
		}
		return len(col.Tasks)
	}
	return 0
}
