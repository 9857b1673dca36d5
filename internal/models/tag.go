package models

import "github.com/thenoetrevino/kanboard/internal/types"

// DefaultTagColor is used when a tag is created without a color
const DefaultTagColor = "transparent"

// Tag represents a label that can be applied to tasks
// Tag names are unique per board
type Tag struct {
	ID      types.TagID   `json:"id"`
	BoardID types.BoardID `json:"board_id,omitempty"`
	Name    string        `json:"name"`
	Color   string        `json:"color"`
}
