// Package kanban holds the in-memory board engine: the column chain sorter,
// the board projector and the Store that mirrors one mounted board.
package kanban

import (
	"errors"
	"fmt"
	"slices"

	"github.com/thenoetrevino/kanboard/internal/models"
	"github.com/thenoetrevino/kanboard/internal/types"
)

// ErrBrokenChain reports column rows that do not form a single linked list.
// It indicates corrupted storage and is never recovered from silently.
var ErrBrokenChain = errors.New("broken column chain")

// SortColumns orders columns head to tail by following NextColumnID.
// The head is the only column no other column points to. Nil entries are
// ignored.
func SortColumns(columns []*models.Column) ([]*models.Column, error) {
	columns = slices.DeleteFunc(slices.Clone(columns), func(col *models.Column) bool {
		return col == nil
	})
	if len(columns) == 0 {
		return []*models.Column{}, nil
	}

	byID := make(map[types.ColumnID]*models.Column, len(columns))
	referenced := make(map[types.ColumnID]bool, len(columns))

	for _, col := range columns {
		if col.ID.IsNull() {
			return nil, fmt.Errorf("%w: column %q has no id", ErrBrokenChain, col.Name)
		}
		if _, dup := byID[col.ID]; dup {
			return nil, fmt.Errorf("%w: duplicate column %s", ErrBrokenChain, col.ID)
		}
		byID[col.ID] = col
		if !col.NextColumnID.IsNull() {
			referenced[col.NextColumnID] = true
		}
	}

	var heads []*models.Column
	for _, col := range columns {
		if !referenced[col.ID] {
			heads = append(heads, col)
		}
	}

	switch len(heads) {
	case 1:
	case 0:
		return nil, fmt.Errorf("%w: no head column (cycle)", ErrBrokenChain)
	default:
		return nil, fmt.Errorf("%w: %d head columns", ErrBrokenChain, len(heads))
	}

	sorted := make([]*models.Column, 0, len(columns))
	visited := make(map[types.ColumnID]bool, len(columns))

	for current := heads[0]; ; {
		if visited[current.ID] {
			return nil, fmt.Errorf("%w: cycle at column %s", ErrBrokenChain, current.ID)
		}
		visited[current.ID] = true
		sorted = append(sorted, current)

		if current.IsTail() {
			break
		}

		next, ok := byID[current.NextColumnID]
		if !ok {
			return nil, fmt.Errorf("%w: column %s points to missing column %s",
				ErrBrokenChain, current.ID, current.NextColumnID)
		}
		current = next
	}

	if len(sorted) != len(columns) {
		return nil, fmt.Errorf("%w: %d of %d columns unreachable from head %s",
			ErrBrokenChain, len(columns)-len(sorted), len(columns), heads[0].ID)
	}

	return sorted, nil
}
