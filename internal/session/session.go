// Package session drives one kanban.Store for a mounted board view.
//
// Moves are applied to the store first and persisted second. A failed
// write leaves the optimistic state in place and is reported as ErrPersist;
// the caller decides whether to Refresh. Structural column changes and task
// deletions are computed by storage and applied from the returned operations.
package session

import (
	"context"
	"fmt"
	"log/slog"
	"slices"
	"sync"
	"time"

	"github.com/thenoetrevino/kanboard/internal/events"
	"github.com/thenoetrevino/kanboard/internal/kanban"
	"github.com/thenoetrevino/kanboard/internal/models"
	"github.com/thenoetrevino/kanboard/internal/types"
)

// Session owns the store of one board view. It is safe for concurrent use:
// store access is serialized, backend calls run without the lock held.
type Session struct {
	mu sync.Mutex

	backend Backend
	store   *kanban.Store
	logger  *slog.Logger

	boardID types.BoardID
	board   *models.Board
	tags    []*models.Tag

	evictPlaceholders bool
	pending           bool // a placeholder task is in the store
	stale             bool // a refresh arrived while pending
}

// Option configures a Session
type Option func(*Session)

// WithLogger sets the logger for the session and its store
func WithLogger(logger *slog.Logger) Option {
	return func(s *Session) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// WithEvictPlaceholders controls whether a failed creation removes its
// placeholder task. It defaults to true.
func WithEvictPlaceholders(evict bool) Option {
	return func(s *Session) {
		s.evictPlaceholders = evict
	}
}

// New creates a session with no board open
func New(backend Backend, opts ...Option) *Session {
	s := &Session{
		backend:           backend,
		logger:            slog.Default(),
		evictPlaceholders: true,
	}
	for _, opt := range opts {
		opt(s)
	}
	s.store = kanban.NewStore(kanban.WithLogger(s.logger))
	return s
}

// ============================================================================
// Lifecycle
// ============================================================================

// Open loads a board and mounts it, replacing any board already open.
// The whole board is loaded: move diffs renumber every task of a column.
func (s *Session) Open(ctx context.Context, boardID types.BoardID) error {
	snapshot, err := s.backend.LoadBoard(ctx, boardID, nil)
	if err != nil {
		return fmt.Errorf("loading board %s: %w", boardID, err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.mountLocked(snapshot); err != nil {
		return err
	}
	s.boardID = boardID
	s.pending = false
	s.stale = false
	return nil
}

// Refresh reloads the open board from storage and remounts it
func (s *Session) Refresh(ctx context.Context) error {
	s.mu.Lock()
	boardID, mounted := s.boardID, s.store.Mounted()
	s.mu.Unlock()
	if !mounted {
		return ErrNotOpen
	}

	snapshot, err := s.backend.LoadBoard(ctx, boardID, nil)
	if err != nil {
		return fmt.Errorf("reloading board %s: %w", boardID, err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.boardID != boardID || !s.store.Mounted() {
		return nil // closed or switched while loading
	}
	if s.pending {
		s.stale = true
		return nil
	}
	return s.mountLocked(snapshot)
}

func (s *Session) mountLocked(snapshot *models.BoardSnapshot) error {
	if err := s.store.Mount(snapshot.Columns, snapshot.Tasks); err != nil {
		return fmt.Errorf("mounting board: %w", err)
	}
	s.board = snapshot.Board
	s.tags = snapshot.Tags
	return nil
}

// Close unmounts the board
func (s *Session) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.store.Unmount()
	s.boardID = ""
	s.board = nil
	s.tags = nil
	s.pending = false
	s.stale = false
}

// HandleEvent remounts the board when ev reports a change to it.
// It reports whether a refresh was attempted.
func (s *Session) HandleEvent(ctx context.Context, ev events.Event) (bool, error) {
	if ev.Type != events.EventBoardChanged {
		return false, nil
	}
	s.mu.Lock()
	boardID, mounted := s.boardID, s.store.Mounted()
	s.mu.Unlock()
	if !mounted || !ev.Matches(boardID) {
		return false, nil
	}
	return true, s.Refresh(ctx)
}

// ============================================================================
// Reads
// ============================================================================

// BoardID returns the open board's id, empty when closed
func (s *Session) BoardID() types.BoardID {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.boardID
}

// Board returns a copy of the open board's metadata
func (s *Session) Board() *models.Board {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.board == nil {
		return nil
	}
	b := *s.board
	return &b
}

// Tags returns the tags defined on the open board
func (s *Session) Tags() []*models.Tag {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]*models.Tag, len(s.tags))
	for i, tag := range s.tags {
		t := *tag
		out[i] = &t
	}
	return out
}

// Columns returns a copy of the board view, Unassigned first
func (s *Session) Columns() []*kanban.ColumnState {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.store.Columns()
}

// Task looks a task up in the mounted board
func (s *Session) Task(id types.TaskID) (*models.Task, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.store.GetTaskByID(id)
}

// Check validates the density and chain of the mounted board
func (s *Session) Check() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.store.Check()
}

// ============================================================================
// Tasks
// ============================================================================

// NewTask describes a task to create
type NewTask struct {
	ColumnID   types.ColumnID
	Name       string
	Body       string
	AssigneeID types.UserID
	DueDate    *time.Time
	TagIDs     []types.TagID
}

// CreateTask inserts a placeholder at the end of the column, stores the
// task and swaps the placeholder for the stored row.
func (s *Session) CreateTask(ctx context.Context, req NewTask) (*models.Task, error) {
	s.mu.Lock()
	if !s.store.Mounted() {
		s.mu.Unlock()
		return nil, ErrNotOpen
	}
	if s.pending {
		s.mu.Unlock()
		return nil, ErrCreationPending
	}
	col, ok := s.store.GetColumn(req.ColumnID)
	if !ok {
		s.mu.Unlock()
		return nil, fmt.Errorf("column %q: %w", req.ColumnID, ErrVanished)
	}

	draft := models.Task{
		ID:         types.TempTaskID,
		BoardID:    s.boardID,
		ColumnID:   req.ColumnID,
		Name:       req.Name,
		Body:       req.Body,
		Position:   len(col.Tasks),
		AssigneeID: req.AssigneeID,
		DueDate:    req.DueDate,
		Tags:       s.tagsByIDLocked(req.TagIDs),
	}
	s.store.AddTask(draft)
	s.pending = true
	s.mu.Unlock()

	created, err := s.backend.CreateTask(ctx, draft, req.TagIDs)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.pending = false

	if err != nil {
		if s.evictPlaceholders {
			s.store.EvictTempTask(req.ColumnID)
		}
		s.refreshIfStaleLocked(ctx)
		return nil, fmt.Errorf("%w: %w", ErrPersist, err)
	}

	if !s.store.UpdateTempTask(*created) {
		if _, found := s.store.GetTaskByID(created.ID); !found {
			return created, fmt.Errorf("placeholder for task %s: %w", created.ID, ErrVanished)
		}
	}

	// moves made while the create was in flight renumbered the placeholder
	// in the view only
	if confirmed, ok := s.store.GetTaskByID(created.ID); ok && confirmed.Position != created.Position {
		fix := []models.TaskMove{{ID: confirmed.ID, ColumnID: confirmed.ColumnID, Position: confirmed.Position}}
		if err := s.backend.MoveTasks(ctx, s.boardID, fix); err != nil {
			return confirmed, fmt.Errorf("%w: %w", ErrPersist, err)
		}
		created = confirmed
	}
	s.refreshIfStaleLocked(ctx)
	return created, nil
}

// refreshIfStaleLocked remounts with the lock held when a change event was
// deferred by a pending creation. Errors are logged; the view stays usable.
func (s *Session) refreshIfStaleLocked(ctx context.Context) {
	if !s.stale {
		return
	}
	s.stale = false
	snapshot, err := s.backend.LoadBoard(ctx, s.boardID, nil)
	if err == nil {
		err = s.mountLocked(snapshot)
	}
	if err != nil {
		s.logger.Warn("deferred refresh failed", "board_id", s.boardID, "error", err)
	}
}

func (s *Session) tagsByIDLocked(ids []types.TagID) []*models.Tag {
	out := []*models.Tag{}
	for _, tag := range s.tags {
		if slices.Contains(ids, tag.ID) {
			t := *tag
			out = append(out, &t)
		}
	}
	return out
}

// UpdateTask stores the patch and merges the stored row into the view.
// Positions are owned by MoveTask and are ignored here.
func (s *Session) UpdateTask(ctx context.Context, patch models.TaskPatch) (*models.Task, error) {
	if err := s.checkTask(patch.ID); err != nil {
		return nil, err
	}
	patch.Position = nil

	updated, err := s.backend.UpdateTask(ctx, patch)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrPersist, err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.store.UpdateTask(models.TaskPatch{
		ID:         updated.ID,
		Name:       &updated.Name,
		Body:       &updated.Body,
		AssigneeID: &updated.AssigneeID,
		DueDate:    updated.DueDate,
		ClearDue:   updated.DueDate == nil,
	})
	return updated, nil
}

// DeleteTask deletes a task and applies the renumbering storage returns
func (s *Session) DeleteTask(ctx context.Context, id types.TaskID) (models.TaskDeletion, error) {
	if err := s.checkTask(id); err != nil {
		return models.TaskDeletion{}, err
	}

	deletion, err := s.backend.DeleteTask(ctx, id)
	if err != nil {
		return models.TaskDeletion{}, fmt.Errorf("%w: %w", ErrPersist, err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.store.ApplyTaskDeletion(deletion)
	return deletion, nil
}

// MoveTask moves a task within the view and persists the computed diff.
// An index past the end of dest appends.
func (s *Session) MoveTask(ctx context.Context, id types.TaskID, dest types.ColumnID, index int) ([]models.TaskMove, error) {
	changes, err := s.ApplyMove(id, dest, index)
	if err != nil {
		return nil, err
	}
	return changes, s.PersistMoves(ctx, changes)
}

// ApplyMove moves a task in the view without touching storage and returns
// the diff to hand to PersistMoves. The placeholder of a pending creation is
// left out of the diff; CreateTask writes its final position.
func (s *Session) ApplyMove(id types.TaskID, dest types.ColumnID, index int) ([]models.TaskMove, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.store.Mounted() {
		return nil, ErrNotOpen
	}
	if id.IsTemp() {
		return nil, ErrCreationPending
	}
	changes, ok := s.store.MoveTask(id, dest, index, nil)
	if !ok {
		return nil, fmt.Errorf("moving task %s: %w", id, ErrVanished)
	}
	return slices.DeleteFunc(changes, func(m models.TaskMove) bool {
		return m.ID.IsTemp()
	}), nil
}

// PersistMoves writes a diff returned by ApplyMove
func (s *Session) PersistMoves(ctx context.Context, changes []models.TaskMove) error {
	s.mu.Lock()
	boardID := s.boardID
	s.mu.Unlock()
	if boardID == "" {
		return ErrNotOpen
	}
	if len(changes) == 0 {
		return nil
	}
	if err := s.backend.MoveTasks(ctx, boardID, changes); err != nil {
		return fmt.Errorf("%w: %w", ErrPersist, err)
	}
	return nil
}

// AssignTags makes want the task's tag set, sending only the difference
func (s *Session) AssignTags(ctx context.Context, id types.TaskID, want []types.TagID) ([]*models.Tag, error) {
	if err := s.checkTask(id); err != nil {
		return nil, err
	}
	current, ok := s.Task(id)
	if !ok {
		return nil, fmt.Errorf("task %s: %w", id, ErrVanished)
	}
	have := current.TagIDs()

	var added, removed []types.TagID
	for _, tagID := range want {
		if !slices.Contains(have, tagID) && !slices.Contains(added, tagID) {
			added = append(added, tagID)
		}
	}
	for _, tagID := range have {
		if !slices.Contains(want, tagID) {
			removed = append(removed, tagID)
		}
	}
	if len(added) == 0 && len(removed) == 0 {
		return current.Tags, nil
	}

	tags, err := s.backend.AssignTags(ctx, id, added, removed)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrPersist, err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.store.UpdateTaskTags(id, tags)
	return tags, nil
}

func (s *Session) checkTask(id types.TaskID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.store.Mounted() {
		return ErrNotOpen
	}
	if id.IsTemp() {
		return ErrCreationPending
	}
	if _, ok := s.store.GetTaskByID(id); !ok {
		return fmt.Errorf("task %s: %w", id, ErrVanished)
	}
	return nil
}

// ============================================================================
// Columns
// ============================================================================

// CreateColumn appends a column to the chain
func (s *Session) CreateColumn(ctx context.Context, name string) ([]models.ColumnOperation, error) {
	s.mu.Lock()
	boardID, mounted := s.boardID, s.store.Mounted()
	s.mu.Unlock()
	if !mounted {
		return nil, ErrNotOpen
	}

	ops, err := s.backend.CreateColumn(ctx, boardID, name)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrPersist, err)
	}
	s.apply(ops)
	return ops, nil
}

// RenameColumn renames a column
func (s *Session) RenameColumn(ctx context.Context, id types.ColumnID, name string) ([]models.ColumnOperation, error) {
	if err := s.checkColumn(id); err != nil {
		return nil, err
	}

	ops, err := s.backend.RenameColumn(ctx, id, name)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrPersist, err)
	}
	s.apply(ops)
	return ops, nil
}

// DeleteColumn removes a column and relinks its predecessor
func (s *Session) DeleteColumn(ctx context.Context, id types.ColumnID) ([]models.ColumnOperation, error) {
	if err := s.checkColumn(id); err != nil {
		return nil, err
	}

	ops, err := s.backend.DeleteColumn(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrPersist, err)
	}
	s.apply(ops)
	return ops, nil
}

// MoveColumn swaps a column with the one at index in the view and
// persists the relinked chain. Index 0 is the Unassigned bucket.
func (s *Session) MoveColumn(ctx context.Context, id types.ColumnID, index int) ([]models.ColumnLink, error) {
	s.mu.Lock()
	if !s.store.Mounted() {
		s.mu.Unlock()
		return nil, ErrNotOpen
	}
	boardID := s.boardID
	links, ok := s.store.MoveColumn(id, index, nil)
	s.mu.Unlock()

	if !ok {
		return nil, fmt.Errorf("moving column %s: %w", id, ErrVanished)
	}
	if len(links) == 0 {
		return links, nil
	}
	if err := s.backend.MoveColumns(ctx, boardID, links); err != nil {
		return links, fmt.Errorf("%w: %w", ErrPersist, err)
	}
	return links, nil
}

func (s *Session) checkColumn(id types.ColumnID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.store.Mounted() {
		return ErrNotOpen
	}
	if col, ok := s.store.GetColumn(id); !ok || col.IsUnassigned() {
		return fmt.Errorf("column %q: %w", id, ErrVanished)
	}
	return nil
}

func (s *Session) apply(ops []models.ColumnOperation) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.store.ApplyColumnOperations(ops)
}
