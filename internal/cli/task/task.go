package task

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/thenoetrevino/kanboard/internal/cli"
	"github.com/thenoetrevino/kanboard/internal/kanban"
	"github.com/thenoetrevino/kanboard/internal/models"
	"github.com/thenoetrevino/kanboard/internal/types"
)

// TaskCmd returns the task parent command
func TaskCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "task",
		Short: "Manage tasks",
	}

	cmd.AddCommand(CreateCmd())
	cmd.AddCommand(ShowCmd())
	cmd.AddCommand(UpdateCmd())
	cmd.AddCommand(MoveCmd())
	cmd.AddCommand(DeleteCmd())
	cmd.AddCommand(TagCmd())

	return cmd
}

// columnName names the column holding task in view
func columnName(view []*kanban.ColumnState, id types.ColumnID) string {
	for _, col := range view {
		if col.ID == id {
			return col.Name
		}
	}
	return types.UnassignedColumnName
}

// loadTask fetches a task together with its board's columns
func loadTask(ctx context.Context, c *cli.CLI, id string) (*models.Task, []*kanban.ColumnState, error) {
	task, err := c.App.TaskService.GetTaskDetail(ctx, types.TaskID(id))
	if err != nil {
		return nil, nil, err
	}
	columns, err := c.App.ColumnService.GetColumnsByBoard(ctx, task.BoardID)
	if err != nil {
		return nil, nil, err
	}
	view, err := kanban.BuildBoard(columns, nil)
	if err != nil {
		return nil, nil, err
	}
	return task, view, nil
}
