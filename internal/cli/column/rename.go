package column

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/thenoetrevino/kanboard/internal/cli"
)

// RenameCmd returns the column rename subcommand
func RenameCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "rename <column>",
		Short: "Rename a column",
		Long: `Rename a column, given by ID or name.

Examples:
  kanboard column rename "In Progress" --board=Roadmap --name="Doing"
`,
		Args: cobra.ExactArgs(1),
		RunE: runRename,
	}

	cli.AddBoardFlag(cmd)
	cmd.Flags().String("name", "", "New column name (required)")
	_ = cmd.MarkFlagRequired("name")
	cli.AddOutputFlags(cmd)

	return cmd
}

func runRename(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	formatter := cli.NewFormatter(cmd)
	name, _ := cmd.Flags().GetString("name")

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

	ops, err := sess.RenameColumn(ctx, id, name)
	if err != nil {
		return formatter.Fail(err)
	}

	view := sess.Columns()
	return formatter.Success(opsResult{Operations: ops, Columns: view}, string(id), func(w io.Writer) error {
		if _, err := fmt.Fprintf(w, "Renamed column %s to %q\n", args[0], name); err != nil {
			return err
		}
		return printChain(w, view)
	})
}
