package models

// DefaultColumnName is used when a column is created without a name
const DefaultColumnName = "Unnamed Column"

// DefaultBoardColumns are seeded, in chain order, into every new board
var DefaultBoardColumns = []string{"Todo", "In Progress", "Done"}

// MaxNameLength bounds board, column, task and tag names
const MaxNameLength = 255
