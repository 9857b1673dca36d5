package types

// ID types give semantic meaning to the identifiers flowing between the
// store, the services and the storage layer. Board, column, task and user
// identifiers are UUID strings assigned by storage; tags use integer ids.

// BoardID identifies a board
type BoardID string

// ColumnID identifies a column within a board.
// The zero value is the null reference: it names the synthetic Unassigned
// bucket when used as a task's column and the end of the chain when used
// as a column's next pointer.
type ColumnID string

// TaskID identifies a task within a board
type TaskID string

// UserID identifies the user a task is assigned to
type UserID string

// TagID identifies a tag within a board
type TagID int

const (
	// UnassignedColumnID names the synthetic bucket holding tasks without a column.
	// It is never persisted.
	UnassignedColumnID ColumnID = ""

	// UnassignedColumnName is the display label of the synthetic bucket
	UnassignedColumnName = "Unassigned"

	// TempTaskID is the placeholder id of a task inserted optimistically
	// before storage has assigned its real id.
	TempTaskID TaskID = "__temp__"
)

// IsNull reports whether the reference points nowhere
func (id ColumnID) IsNull() bool {
	return id == ""
}

func (id ColumnID) String() string {
	return string(id)
}

func (id TaskID) String() string {
	return string(id)
}

func (id BoardID) String() string {
	return string(id)
}

// IsTemp reports whether the id is the optimistic placeholder
func (id TaskID) IsTemp() bool {
	return id == TempTaskID
}

// ToInt converts the tag id back to int for SQL parameters
func (id TagID) ToInt() int {
	return int(id)
}

// TagIDFromInt creates a TagID from a plain int
func TagIDFromInt(i int) TagID {
	return TagID(i)
}
