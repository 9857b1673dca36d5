package kanban

import (
	"errors"
	"fmt"

	"github.com/thenoetrevino/kanboard/internal/models"
)

// ErrNotDense reports a column whose positions are not 0..n-1 in order
var ErrNotDense = errors.New("task positions not dense")

// CheckDensity verifies every column of a view holds positions 0..n-1 in
// array order.
func CheckDensity(view []*ColumnState) error {
	for _, col := range view {
		for i, t := range col.Tasks {
			if t.Position != i {
				return fmt.Errorf("%w: column %q task %s at index %d has position %d",
					ErrNotDense, col.Name, t.ID, i, t.Position)
			}
		}
	}
	return nil
}

// CheckChain verifies the real columns of a view form one chain whose order
// matches the array order.
func CheckChain(view []*ColumnState) error {
	var columns []*models.Column
	for _, col := range view {
		if !col.IsUnassigned() {
			c := col.Column
			columns = append(columns, &c)
		}
	}

	sorted, err := SortColumns(columns)
	if err != nil {
		return err
	}
	for i := range sorted {
		if sorted[i].ID != columns[i].ID {
			return fmt.Errorf("%w: view order differs from chain at %d (%s vs %s)",
				ErrBrokenChain, i, columns[i].ID, sorted[i].ID)
		}
	}
	return nil
}

// Check runs both structural checks against the store's current state
func (s *Store) Check() error {
	if err := CheckChain(s.columns); err != nil {
		return err
	}
	return CheckDensity(s.columns)
}
