package tui

import (
	"strings"

	tea "charm.land/bubbletea/v2"

	"github.com/thenoetrevino/kanboard/internal/tui/state"
)

// Update handles a message and returns the next model
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.ui.Resize(msg.Width, msg.Height)
		return m, nil

	case RefreshMsg:
		if _, err := m.session.HandleEvent(m.ctx, msg.Event); err != nil {
			m.notifications.Notify(state.Error, describe(err))
		}
		m.reload()
		return m, m.subscribe()

	case MutationMsg:
		switch {
		case msg.Err != nil:
			m.notifications.Notify(state.Error, describe(msg.Err))
		case msg.Notice != "":
			m.notifications.Notify(state.Info, msg.Notice)
		default:
			m.notifications.Clear()
		}
		if msg.Column != keep {
			m.ui.Select(msg.Column, msg.Task)
		}
		m.reload()
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)
	}

	if m.ui.Mode().IsInput() {
		var cmd tea.Cmd
		m.input, cmd = m.input.Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() == "ctrl+c" {
		return m, tea.Quit
	}

	mode := m.ui.Mode()
	switch {
	case mode == state.HelpMode:
		m.ui.SetMode(state.NormalMode)
		return m, nil
	case mode.IsInput():
		return m.handleInputKey(msg)
	case mode.IsConfirm():
		return m.handleConfirmKey(msg)
	default:
		return m.handleNormalKey(msg)
	}
}

func (m Model) handleNormalKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	col, row := m.ui.SelectedColumn(), m.ui.SelectedTask()
	k := m.keys

	switch msg.String() {
	case k.Quit:
		return m, tea.Quit
	case k.ShowHelp:
		m.ui.SetMode(state.HelpMode)
	case k.Refresh:
		return m, m.refresh()

	// Navigation
	case k.PrevColumn, "left":
		if col > 0 {
			m.ui.Select(col-1, row)
			m.reload()
		}
	case k.NextColumn, "right":
		if col < len(m.columns)-1 {
			m.ui.Select(col+1, row)
			m.reload()
		}
	case k.PrevTask, "up":
		if row > 0 {
			m.ui.Select(col, row-1)
		}
	case k.NextTask, "down":
		if current, ok := m.selectedColumn(); ok && row < len(current.Tasks)-1 {
			m.ui.Select(col, row+1)
		}

	// Tasks
	case k.AddTask:
		m.startInput(state.AddTaskMode, "New task", "")
	case k.DeleteTask:
		if _, _, ok := m.selectedTask(); ok {
			m.ui.SetMode(state.DeleteConfirmMode)
		}
	case k.MoveTaskLeft:
		cmd := m.moveTaskAcross(col - 1)
		return m, cmd
	case k.MoveTaskRight:
		cmd := m.moveTaskAcross(col + 1)
		return m, cmd
	case k.MoveTaskUp:
		cmd := m.moveTaskWithin(row - 1)
		return m, cmd
	case k.MoveTaskDown:
		cmd := m.moveTaskWithin(row + 1)
		return m, cmd

	// Columns
	case k.CreateColumn:
		m.startInput(state.AddColumnMode, "New column", "")
	case k.RenameColumn:
		if current, ok := m.selectedColumn(); ok && !current.IsUnassigned() {
			m.startInput(state.RenameColumnMode, "Rename column", current.Name)
		}
	case k.DeleteColumn:
		if current, ok := m.selectedColumn(); ok && !current.IsUnassigned() {
			m.ui.SetMode(state.DeleteColumnConfirmMode)
		}
	case k.MoveColumnLeft:
		return m, m.moveColumnTo(col - 1)
	case k.MoveColumnRight:
		return m, m.moveColumnTo(col + 1)
	}

	return m, nil
}

// moveTaskAcross moves the selected task into column dest, keeping its row
// where the destination is long enough
func (m *Model) moveTaskAcross(dest int) tea.Cmd {
	_, row, ok := m.selectedTask()
	if !ok || dest < 0 || dest >= len(m.columns) {
		return nil
	}
	task := m.columns[m.ui.SelectedColumn()].Tasks[row]
	target := m.columns[dest]
	index := min(row, len(target.Tasks))
	return m.moveTask(task.ID, target.ID, index, dest)
}

// moveTaskWithin moves the selected task to row index of its column
func (m *Model) moveTaskWithin(index int) tea.Cmd {
	col, row, ok := m.selectedTask()
	if !ok || index < 0 || index >= len(col.Tasks) || index == row {
		return nil
	}
	return m.moveTask(col.Tasks[row].ID, col.ID, index, m.ui.SelectedColumn())
}

// moveColumnTo swaps the selected column with the one at index.
// Neither may be the Unassigned bucket.
func (m Model) moveColumnTo(index int) tea.Cmd {
	current, ok := m.selectedColumn()
	if !ok || current.IsUnassigned() || index < 1 || index >= len(m.columns) {
		return nil
	}
	return m.moveColumn(current.ID, index, m.ui.SelectedTask())
}

func (m *Model) startInput(mode state.Mode, prompt, value string) {
	m.ui.SetMode(mode)
	m.input.Prompt = prompt + ": "
	m.input.SetValue(value)
	m.input.CursorEnd()
	m.input.Focus()
}

func (m *Model) stopInput() {
	m.input.Blur()
	m.input.Reset()
	m.ui.SetMode(state.NormalMode)
}

func (m Model) handleInputKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.stopInput()
		return m, nil
	case "enter":
		return m.submitInput()
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m Model) submitInput() (tea.Model, tea.Cmd) {
	value := strings.TrimSpace(m.input.Value())
	mode := m.ui.Mode()
	if value == "" {
		m.notifications.Notify(state.Error, "Name cannot be empty")
		return m, nil
	}
	m.stopInput()

	current, ok := m.selectedColumn()
	if !ok && mode != state.AddColumnMode {
		return m, nil
	}

	switch mode {
	case state.AddTaskMode:
		return m, m.createTask(current.ID, value, m.ui.SelectedColumn(), len(current.Tasks))
	case state.AddColumnMode:
		return m, m.createColumn(value, len(m.columns))
	case state.RenameColumnMode:
		return m, m.renameColumn(current.ID, value)
	}
	return m, nil
}

func (m Model) handleConfirmKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	mode := m.ui.Mode()
	m.ui.SetMode(state.NormalMode)

	if msg.String() != "y" {
		return m, nil
	}

	switch mode {
	case state.DeleteConfirmMode:
		col, row, ok := m.selectedTask()
		if !ok {
			return m, nil
		}
		return m, m.deleteTask(col.Tasks[row].ID, m.ui.SelectedColumn(), row)
	case state.DeleteColumnConfirmMode:
		current, ok := m.selectedColumn()
		if !ok || current.IsUnassigned() {
			return m, nil
		}
		return m, m.deleteColumn(current.ID, m.ui.SelectedColumn()-1)
	}
	return m, nil
}
