package session

import "errors"

var (
	// ErrNotOpen is returned by mutations before a board has been opened
	ErrNotOpen = errors.New("no board is open")

	// ErrVanished means the store refused the change because the task or
	// column is no longer on the mounted board. Callers should Refresh.
	ErrVanished = errors.New("item is no longer on the board")

	// ErrPersist wraps a storage failure that happened after the in-memory
	// board was already updated. The local state is not rolled back.
	ErrPersist = errors.New("failed to save change")

	// ErrCreationPending is returned while a task creation is in flight
	ErrCreationPending = errors.New("a task is still being created")
)
