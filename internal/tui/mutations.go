package tui

import (
	"context"
	"errors"
	"fmt"
	"time"

	tea "charm.land/bubbletea/v2"

	"github.com/thenoetrevino/kanboard/internal/session"
	"github.com/thenoetrevino/kanboard/internal/tui/state"
	"github.com/thenoetrevino/kanboard/internal/types"
)

// opTimeout bounds each storage round trip started from the board
const opTimeout = 10 * time.Second

// keep is the MutationMsg cursor value meaning "leave the cursor alone"
const keep = -1

// run executes op against the session off the update loop and reports the
// outcome. The cursor moves to (column, task) only when op succeeds.
func (m Model) run(notice string, column, task int, op func(ctx context.Context, s *session.Session) error) tea.Cmd {
	parent, sess := m.ctx, m.session
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(parent, opTimeout)
		defer cancel()

		if err := op(ctx, sess); err != nil {
			return MutationMsg{Err: err, Column: keep, Task: keep}
		}
		return MutationMsg{Notice: notice, Column: column, Task: task}
	}
}

func (m Model) createTask(columnID types.ColumnID, name string, column, task int) tea.Cmd {
	return m.run(fmt.Sprintf("Created %q", name), column, task, func(ctx context.Context, s *session.Session) error {
		_, err := s.CreateTask(ctx, session.NewTask{ColumnID: columnID, Name: name})
		return err
	})
}

func (m Model) deleteTask(id types.TaskID, column, task int) tea.Cmd {
	return m.run("Task deleted", column, task, func(ctx context.Context, s *session.Session) error {
		_, err := s.DeleteTask(ctx, id)
		return err
	})
}

// moveTask redraws the board with the move applied and persists it from the
// returned command
func (m *Model) moveTask(id types.TaskID, dest types.ColumnID, index, column int) tea.Cmd {
	changes, err := m.session.ApplyMove(id, dest, index)
	if err != nil {
		m.notifications.Notify(state.Error, describe(err))
		return nil
	}
	m.notifications.Clear()
	m.ui.Select(column, index)
	m.reload()

	return m.run("", keep, keep, func(ctx context.Context, s *session.Session) error {
		return s.PersistMoves(ctx, changes)
	})
}

func (m Model) createColumn(name string, column int) tea.Cmd {
	return m.run(fmt.Sprintf("Created column %q", name), column, 0, func(ctx context.Context, s *session.Session) error {
		_, err := s.CreateColumn(ctx, name)
		return err
	})
}

func (m Model) renameColumn(id types.ColumnID, name string) tea.Cmd {
	return m.run("Column renamed", keep, keep, func(ctx context.Context, s *session.Session) error {
		_, err := s.RenameColumn(ctx, id, name)
		return err
	})
}

func (m Model) deleteColumn(id types.ColumnID, column int) tea.Cmd {
	return m.run("Column deleted", column, 0, func(ctx context.Context, s *session.Session) error {
		_, err := s.DeleteColumn(ctx, id)
		return err
	})
}

func (m Model) moveColumn(id types.ColumnID, index, task int) tea.Cmd {
	return m.run("", index, task, func(ctx context.Context, s *session.Session) error {
		_, err := s.MoveColumn(ctx, id, index)
		return err
	})
}

func (m Model) refresh() tea.Cmd {
	return m.run("Reloaded", keep, keep, func(ctx context.Context, s *session.Session) error {
		return s.Refresh(ctx)
	})
}

// describe turns session errors into status bar text
func describe(err error) string {
	switch {
	case errors.Is(err, session.ErrCreationPending):
		return "A new task is still being saved"
	case errors.Is(err, session.ErrVanished):
		return "The board changed underneath, reloading may help"
	default:
		return err.Error()
	}
}
