package tui

import (
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/thenoetrevino/kanboard/internal/tui/components"
	"github.com/thenoetrevino/kanboard/internal/tui/state"
)

// View renders the board full screen
func (m Model) View() tea.View {
	var view tea.View
	view.AltScreen = true
	view.Content = m.content()
	return view
}

// content renders the board, the prompt line and the status bar
func (m Model) content() string {
	if m.ui.Width() == 0 {
		return "Loading..."
	}
	if m.ui.Mode() == state.HelpMode {
		return m.helpView()
	}

	// prompt and status bar
	boardHeight := max(m.ui.Height()-2, 0)
	board := components.RenderBoard(
		m.columns,
		m.ui.ViewportOffset(),
		m.ui.ViewportSize(),
		m.ui.SelectedColumn(),
		m.ui.SelectedTask(),
		boardHeight,
	)

	statusBar := components.RenderStatusBar(components.StatusBarProps{
		Width:        m.ui.Width(),
		BoardName:    m.boardName(),
		Live:         m.eventChan != nil,
		Notification: m.notifications.Current(),
		HelpKey:      m.keys.ShowHelp,
	})

	return lipgloss.JoinVertical(lipgloss.Left, board, m.promptLine(), statusBar)
}

func (m Model) boardName() string {
	if b := m.session.Board(); b != nil {
		return b.Name
	}
	return ""
}

func (m Model) promptLine() string {
	switch m.ui.Mode() {
	case state.AddTaskMode, state.AddColumnMode, state.RenameColumnMode:
		return m.input.View()
	case state.DeleteConfirmMode:
		if col, row, ok := m.selectedTask(); ok {
			return components.ErrorStyle.Render(fmt.Sprintf("Delete %q? (y/n)", col.Tasks[row].Name))
		}
	case state.DeleteColumnConfirmMode:
		if col, ok := m.selectedColumn(); ok {
			return components.ErrorStyle.Render(fmt.Sprintf("Delete column %q? (y/n)", col.Name))
		}
	}
	return ""
}

func (m Model) helpView() string {
	k := m.keys
	rows := [][2]string{
		{k.PrevColumn + " / " + k.NextColumn, "previous / next column"},
		{k.PrevTask + " / " + k.NextTask, "previous / next task"},
		{k.AddTask, "add task"},
		{k.DeleteTask, "delete task"},
		{k.MoveTaskLeft + " / " + k.MoveTaskRight, "move task to previous / next column"},
		{k.MoveTaskUp + " / " + k.MoveTaskDown, "move task up / down"},
		{k.CreateColumn, "create column"},
		{k.RenameColumn, "rename column"},
		{k.DeleteColumn, "delete column"},
		{k.MoveColumnLeft + " / " + k.MoveColumnRight, "swap column left / right"},
		{k.Refresh, "reload board"},
		{k.Quit, "quit"},
	}

	var b strings.Builder
	b.WriteString(components.TitleStyle.Render("Keys") + "\n\n")
	for _, row := range rows {
		b.WriteString(fmt.Sprintf("  %-10s %s\n", row[0], components.SubtleStyle.Render(row[1])))
	}
	b.WriteString("\n" + components.SubtleStyle.Render("press any key to return"))
	return b.String()
}
