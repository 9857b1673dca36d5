package tui

import (
	"context"

	"charm.land/bubbles/v2/textinput"
	tea "charm.land/bubbletea/v2"

	"github.com/thenoetrevino/kanboard/internal/config"
	"github.com/thenoetrevino/kanboard/internal/events"
	"github.com/thenoetrevino/kanboard/internal/kanban"
	"github.com/thenoetrevino/kanboard/internal/session"
	"github.com/thenoetrevino/kanboard/internal/tui/components"
	"github.com/thenoetrevino/kanboard/internal/tui/state"
)

// Model is the bubbletea model of one open board
type Model struct {
	ctx     context.Context
	session *session.Session
	keys    config.KeyMappings

	// eventChan delivers change events; nil without live updates
	eventChan <-chan events.Event

	ui            *state.UIState
	notifications state.NotificationState
	input         textinput.Model

	// columns is the view last read from the session
	columns []*kanban.ColumnState
}

// Option configures a Model
type Option func(*Model)

// WithEvents subscribes the model to board change events
func WithEvents(ch <-chan events.Event) Option {
	return func(m *Model) {
		m.eventChan = ch
	}
}

// WithKeys overrides the default key mappings
func WithKeys(keys config.KeyMappings) Option {
	return func(m *Model) {
		m.keys = keys
	}
}

// New creates the model for an opened session
func New(ctx context.Context, sess *session.Session, opts ...Option) Model {
	input := textinput.New()
	input.CharLimit = 255
	input.SetWidth(components.ColumnWidth * 2)

	m := Model{
		ctx:     ctx,
		session: sess,
		keys:    config.DefaultKeyMappings(),
		ui:      state.NewUIState(components.ColumnWidth),
		input:   input,
	}
	for _, opt := range opts {
		opt(&m)
	}
	m.reload()
	return m
}

// Init starts listening for change events
func (m Model) Init() tea.Cmd {
	return m.subscribe()
}

// reload re-reads the view from the session and keeps the cursor on the board
func (m *Model) reload() {
	m.columns = m.session.Columns()
	counts := make([]int, len(m.columns))
	for i, col := range m.columns {
		counts[i] = len(col.Tasks)
	}
	m.ui.Clamp(counts)
}

// selectedColumn returns the column under the cursor
func (m *Model) selectedColumn() (*kanban.ColumnState, bool) {
	i := m.ui.SelectedColumn()
	if i < 0 || i >= len(m.columns) {
		return nil, false
	}
	return m.columns[i], true
}

// selectedTask returns the column and index of the task under the cursor
func (m *Model) selectedTask() (*kanban.ColumnState, int, bool) {
	col, ok := m.selectedColumn()
	if !ok {
		return nil, 0, false
	}
	i := m.ui.SelectedTask()
	if i < 0 || i >= len(col.Tasks) {
		return nil, 0, false
	}
	return col, i, true
}
