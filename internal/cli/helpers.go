package cli

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	"github.com/thenoetrevino/kanboard/internal/kanban"
	"github.com/thenoetrevino/kanboard/internal/models"
	"github.com/thenoetrevino/kanboard/internal/types"
)

// BoardEnv names the variable that supplies a default for --board
const BoardEnv = "KANBOARD_BOARD"

// DateLayout is the accepted --due format
const DateLayout = "2006-01-02"

// AddBoardFlag registers --board on cmd
func AddBoardFlag(cmd *cobra.Command) {
	cmd.Flags().String("board", "", "Board ID or name (defaults to $"+BoardEnv+")")
}

// BoardRef returns the --board value, falling back to $KANBOARD_BOARD
func BoardRef(cmd *cobra.Command) (string, error) {
	ref, _ := cmd.Flags().GetString("board")
	if ref == "" {
		ref = os.Getenv(BoardEnv)
	}
	if ref == "" {
		return "", Usagef("--board is required (or set %s)", BoardEnv)
	}
	return ref, nil
}

// ResolveBoard finds a board by id, then by case-insensitive name
func (c *CLI) ResolveBoard(ctx context.Context, ref string) (*models.Board, error) {
	boards, err := c.App.BoardService.GetAllBoards(ctx)
	if err != nil {
		return nil, err
	}
	for _, b := range boards {
		if string(b.ID) == ref {
			return b, nil
		}
	}
	for _, b := range boards {
		if strings.EqualFold(b.Name, ref) {
			return b, nil
		}
	}
	return nil, fmt.Errorf("board %q: %w", ref, models.ErrBoardNotFound)
}

// ResolveColumn finds a column of the view by id or case-insensitive name.
// "unassigned" and the empty string resolve to the Unassigned bucket.
func ResolveColumn(view []*kanban.ColumnState, ref string) (types.ColumnID, error) {
	if ref == "" || strings.EqualFold(ref, types.UnassignedColumnName) {
		return types.UnassignedColumnID, nil
	}
	for _, col := range view {
		if string(col.ID) == ref {
			return col.ID, nil
		}
	}
	for _, col := range view {
		if strings.EqualFold(col.Name, ref) {
			return col.ID, nil
		}
	}
	return "", fmt.Errorf("column %q: %w", ref, models.ErrColumnNotFound)
}

// ResolveTags maps tag names onto ids of the board's tags
func ResolveTags(tags []*models.Tag, names []string) ([]types.TagID, error) {
	ids := make([]types.TagID, 0, len(names))
	for _, name := range names {
		found := false
		for _, tag := range tags {
			if strings.EqualFold(tag.Name, name) {
				ids = append(ids, tag.ID)
				found = true
				break
			}
		}
		if !found {
			return nil, fmt.Errorf("tag %q: %w", name, models.ErrTagNotFound)
		}
	}
	return ids, nil
}

// ParseDueDate parses a YYYY-MM-DD date; an empty string means no date
func ParseDueDate(s string) (*time.Time, error) {
	if s == "" {
		return nil, nil
	}
	due, err := time.ParseInLocation(DateLayout, s, time.Local)
	if err != nil {
		return nil, Usagef("invalid --due %q, expected %s", s, DateLayout)
	}
	return &due, nil
}

// IsTerminal reports whether stdout is attached to a terminal
func IsTerminal() bool {
	fd := os.Stdout.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}
