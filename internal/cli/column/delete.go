package column

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/thenoetrevino/kanboard/internal/cli"
)

// DeleteCmd returns the column delete subcommand
func DeleteCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "delete <column>",
		Short: "Delete an empty column",
		Long: `Delete a column, given by ID or name. The column must hold no tasks;
its predecessor is relinked to its successor.

Examples:
  kanboard column delete Review --board=Roadmap --force
`,
		Args: cobra.ExactArgs(1),
		RunE: runDelete,
	}

	cmd.Flags().Bool("force", false, "Skip the confirmation prompt")
	cli.AddBoardFlag(cmd)
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

	sess, err := boardSession(ctx, cmd, cliInstance)
	if err != nil {
		return formatter.Fail(err)
	}
	defer sess.Close()

	id, err := realColumn(sess.Columns(), args[0])
	if err != nil {
		return formatter.Fail(err)
	}

	if !force && !formatter.JSON && !formatter.Quiet {
		confirmed, err := cli.Confirm(fmt.Sprintf("Delete column %q?", args[0]))
		if err != nil {
			return formatter.Fail(err)
		}
		if !confirmed {
			_, err := fmt.Fprintln(formatter.Out, "Cancelled")
			return err
		}
	}

	ops, err := sess.DeleteColumn(ctx, id)
	if err != nil {
		return formatter.Fail(err)
	}

	view := sess.Columns()
	return formatter.Success(opsResult{Operations: ops, Columns: view}, string(id), func(w io.Writer) error {
		if _, err := fmt.Fprintf(w, "Deleted column %s\n", args[0]); err != nil {
			return err
		}
		return printChain(w, view)
	})
}
