package models

import "github.com/thenoetrevino/kanboard/internal/types"

// Column represents a kanban board column (e.g., "Todo", "In Progress", "Done")
// Columns are organized as a singly-linked list: each column points at its
// successor through NextColumnID and the tail points nowhere.
type Column struct {
	ID           types.ColumnID `json:"id"`
	BoardID      types.BoardID  `json:"board_id,omitempty"`
	Name         string         `json:"name"`
	NextColumnID types.ColumnID `json:"next_column_id"` // "" for the tail
}

// IsTail reports whether the column ends the chain
func (c Column) IsTail() bool {
	return c.NextColumnID.IsNull()
}
