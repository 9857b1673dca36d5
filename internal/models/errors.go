package models

import "errors"

// Domain-wide lookup errors shared by storage and services
var (
	// ErrBoardNotFound indicates the board does not exist
	ErrBoardNotFound = errors.New("board not found")

	// ErrColumnNotFound indicates the column does not exist
	ErrColumnNotFound = errors.New("column not found")

	// ErrTaskNotFound indicates the task does not exist
	ErrTaskNotFound = errors.New("task not found")

	// ErrTagNotFound indicates the tag does not exist
	ErrTagNotFound = errors.New("tag not found")
)
