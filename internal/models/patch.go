package models

import (
	"time"

	"github.com/thenoetrevino/kanboard/internal/types"
)

// TaskPatch is a partial task update. Nil fields are left unchanged.
type TaskPatch struct {
	ID         types.TaskID
	Name       *string
	Body       *string
	Position   *int
	AssigneeID *types.UserID
	DueDate    *time.Time
	ClearDue   bool
}

// Apply merges the patch into t
func (p TaskPatch) Apply(t *Task) {
	if p.Name != nil {
		t.Name = *p.Name
	}
	if p.Body != nil {
		t.Body = *p.Body
	}
	if p.Position != nil {
		t.Position = *p.Position
	}
	if p.AssigneeID != nil {
		t.AssigneeID = *p.AssigneeID
	}
	if p.DueDate != nil {
		due := *p.DueDate
		t.DueDate = &due
	}
	if p.ClearDue {
		t.DueDate = nil
	}
}

// ColumnPatch is a partial column update. Nil fields are left unchanged.
type ColumnPatch struct {
	ID           types.ColumnID  `json:"id"`
	Name         *string         `json:"name,omitempty"`
	NextColumnID *types.ColumnID `json:"next_column_id,omitempty"`
}

// Apply merges the patch into c
func (p ColumnPatch) Apply(c *Column) {
	if p.Name != nil {
		c.Name = *p.Name
	}
	if p.NextColumnID != nil {
		c.NextColumnID = *p.NextColumnID
	}
}

// StringPtr is a convenience for building patches
func StringPtr(s string) *string {
	return &s
}

// IntPtr is a convenience for building patches
func IntPtr(i int) *int {
	return &i
}

// ColumnIDPtr is a convenience for building patches
func ColumnIDPtr(id types.ColumnID) *types.ColumnID {
	return &id
}
