package models

import (
	"time"

	"github.com/thenoetrevino/kanboard/internal/types"
)

// Board is the top-level container for columns, tasks and tags
type Board struct {
	ID          types.BoardID `json:"id"`
	Name        string        `json:"name"`
	Description string        `json:"description"`
	CreatedAt   time.Time     `json:"created_at"`
}

// BoardSnapshot is everything needed to mount a board view.
// Columns come in storage order; the chain is resolved by the store.
type BoardSnapshot struct {
	Board   *Board    `json:"board"`
	Columns []*Column `json:"columns"`
	Tasks   []*Task   `json:"tasks"`
	Tags    []*Tag    `json:"tags"`
}
