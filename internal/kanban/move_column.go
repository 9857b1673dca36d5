package kanban

import (
	"github.com/thenoetrevino/kanboard/internal/models"
	"github.com/thenoetrevino/kanboard/internal/types"
)

// MoveColumn swaps a column with the one currently at destIndex in the view,
// rebuilds the chain from the new order and returns the links that changed.
// Index 0 is the Unassigned bucket and is never a valid destination.
//
// onComputed behaves as in MoveTask. A column moved onto itself yields an
// empty diff with ok set.
func (s *Store) MoveColumn(
	columnID types.ColumnID,
	destIndex int,
	onComputed func([]models.ColumnLink),
) (changes []models.ColumnLink, ok bool) {
	if destIndex <= 0 || destIndex >= len(s.columns) {
		s.logger.Warn("destination column not found, moving column aborted",
			"column_id", columnID, "index", destIndex)
		return nil, false
	}
	if columnID.IsNull() {
		s.logger.Warn("unassigned column cannot move, moving column aborted")
		return nil, false
	}
	src := s.columnIndex(columnID)
	if src < 0 {
		s.logger.Warn("column not found, moving column aborted", "column_id", columnID)
		return nil, false
	}

	changes = moveColumn(s.columns, src, destIndex)
	if onComputed != nil {
		onComputed(changes)
	}
	return changes, true
}

func moveColumn(columns []*ColumnState, src, dst int) []models.ColumnLink {
	previous := make(map[types.ColumnID]types.ColumnID, len(columns))
	for _, col := range columns {
		previous[col.ID] = col.NextColumnID
	}

	columns[src], columns[dst] = columns[dst], columns[src]

	changes := []models.ColumnLink{}
	for i, col := range columns {
		if col.IsUnassigned() {
			continue
		}
		next := types.UnassignedColumnID
		if i < len(columns)-1 {
			next = columns[i+1].ID
		}
		col.NextColumnID = next
		if previous[col.ID] != next {
			changes = append(changes, models.ColumnLink{ID: col.ID, NextColumnID: next})
		}
	}
	return changes
}
