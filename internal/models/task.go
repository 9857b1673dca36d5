package models

import (
	"time"

	"github.com/thenoetrevino/kanboard/internal/types"
)

// Task represents a single card on the board
type Task struct {
	ID         types.TaskID   `json:"id"`
	BoardID    types.BoardID  `json:"board_id,omitempty"`
	Name       string         `json:"name"`
	Body       string         `json:"body,omitempty"`
	ColumnID   types.ColumnID `json:"column_id"` // "" when unassigned
	Position   int            `json:"position"`
	Tags       []*Tag         `json:"tags"`
	AssigneeID types.UserID   `json:"assignee_id,omitempty"`
	DueDate    *time.Time     `json:"due_date,omitempty"`
	CreatedAt  time.Time      `json:"created_at"`
	UpdatedAt  time.Time      `json:"updated_at"`
}

// Clone returns a deep copy of the task, tags included
func (t *Task) Clone() *Task {
	if t == nil {
		return nil
	}
	c := *t
	if t.Tags != nil {
		c.Tags = make([]*Tag, 0, len(t.Tags))
		for _, tag := range t.Tags {
			if tag == nil {
				continue
			}
			tagCopy := *tag
			c.Tags = append(c.Tags, &tagCopy)
		}
	}
	if t.DueDate != nil {
		due := *t.DueDate
		c.DueDate = &due
	}
	return &c
}

// TagIDs returns the ids of the task's tags in their current order
func (t *Task) TagIDs() []types.TagID {
	ids := make([]types.TagID, 0, len(t.Tags))
	for _, tag := range t.Tags {
		ids = append(ids, tag.ID)
	}
	return ids
}
