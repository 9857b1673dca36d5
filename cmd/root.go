package cmd

import (
	"github.com/spf13/cobra"

	"github.com/thenoetrevino/kanboard/internal/cli/board"
	"github.com/thenoetrevino/kanboard/internal/cli/column"
	"github.com/thenoetrevino/kanboard/internal/cli/serve"
	"github.com/thenoetrevino/kanboard/internal/cli/tag"
	"github.com/thenoetrevino/kanboard/internal/cli/task"
)

// NewRootCmd builds the kanboard command tree
func NewRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "kanboard",
		Short: "Kanboard - a kanban board for the terminal",
		Long: `Kanboard keeps boards of ordered columns and tasks in a local database.

Use the board view (kanboard tui) to move things around with the keyboard,
the subcommands to script it, or kanboard serve to expose it over HTTP.
Run kanboard-daemon to see changes from other clients live.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.AddCommand(board.BoardCmd())
	rootCmd.AddCommand(column.ColumnCmd())
	rootCmd.AddCommand(task.TaskCmd())
	rootCmd.AddCommand(tag.TagCmd())
	rootCmd.AddCommand(serve.ServeCmd())
	rootCmd.AddCommand(tuiCmd())

	return rootCmd
}

// Execute runs the command tree
func Execute() error {
	return NewRootCmd().Execute()
}
