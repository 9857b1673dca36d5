package column

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/thenoetrevino/kanboard/internal/cli"
	"github.com/thenoetrevino/kanboard/internal/models"
)

// CreateCmd returns the column create subcommand
func CreateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "create",
		Short: "Append a column to a board",
		Long: `Append a column after the board's last column.

Examples:
  kanboard column create --board=Roadmap --name="Review"
  COL=$(kanboard column create --board=Roadmap --name="Review" --quiet)
`,
		RunE: runCreate,
	}

	cli.AddBoardFlag(cmd)
	cmd.Flags().String("name", "", "Column name (required)")
	_ = cmd.MarkFlagRequired("name")
	cli.AddOutputFlags(cmd)

	return cmd
}

func runCreate(cmd *cobra.Command, args []string) error {
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

	ops, err := sess.CreateColumn(ctx, name)
	if err != nil {
		return formatter.Fail(err)
	}

	var id string
	for _, op := range ops {
		if op.Type == models.OperationInsert {
			id = string(op.ID)
		}
	}

	view := sess.Columns()
	return formatter.Success(opsResult{Operations: ops, Columns: view}, id, func(w io.Writer) error {
		if _, err := fmt.Fprintf(w, "Created column %q (%s)\n", name, id); err != nil {
			return err
		}
		return printChain(w, view)
	})
}
