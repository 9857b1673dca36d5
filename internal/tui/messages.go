package tui

import (
	tea "charm.land/bubbletea/v2"

	"github.com/thenoetrevino/kanboard/internal/events"
)

// RefreshMsg carries a change event for the open board
type RefreshMsg struct {
	Event events.Event
}

// MutationMsg reports the outcome of a session operation.
// Column and Task, when not negative, move the cursor after the reload.
type MutationMsg struct {
	Err    error
	Notice string
	Column int
	Task   int
}

// subscribe returns a command that waits for the next change event.
// Returns nil when no event channel is configured.
func (m Model) subscribe() tea.Cmd {
	if m.eventChan == nil {
		return nil
	}
	ch, ctx := m.eventChan, m.ctx

	return func() tea.Msg {
		select {
		case event, ok := <-ch:
			if !ok {
				// channel closed, connection lost
				return nil
			}
			return RefreshMsg{Event: event}
		case <-ctx.Done():
			return nil
		}
	}
}
