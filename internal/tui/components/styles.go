// Package components provides the board's render functions and styles.
// InitStyles must run after theme.Init for theme changes to take effect.
package components

import (
	"charm.land/lipgloss/v2"

	"github.com/thenoetrevino/kanboard/internal/tui/theme"
)

// ColumnWidth is the outer width of a rendered column
const ColumnWidth = 30

var (
	// ColumnStyle defines the appearance of kanban board columns
	ColumnStyle lipgloss.Style

	// SelectedColumnStyle highlights the column under the cursor
	SelectedColumnStyle lipgloss.Style

	// TaskStyle defines the appearance of individual tasks as cards
	TaskStyle lipgloss.Style

	// SelectedTaskStyle highlights the task under the cursor
	SelectedTaskStyle lipgloss.Style

	// PlaceholderTaskStyle marks a task still being saved
	PlaceholderTaskStyle lipgloss.Style

	TitleStyle  lipgloss.Style
	SubtleStyle lipgloss.Style
	InfoStyle   lipgloss.Style
	ErrorStyle  lipgloss.Style
)

func init() {
	InitStyles()
}

// InitStyles rebuilds the styles from the current theme colors
func InitStyles() {
	ColumnStyle = lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color(theme.ColumnBorder)).
		Padding(0, 1).
		Width(ColumnWidth - 2)

	SelectedColumnStyle = ColumnStyle.
		BorderForeground(lipgloss.Color(theme.Highlight))

	TaskStyle = lipgloss.NewStyle().
		Border(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color(theme.TaskBorder)).
		Foreground(lipgloss.Color(theme.Normal)).
		Width(ColumnWidth - 6)

	SelectedTaskStyle = TaskStyle.
		BorderForeground(lipgloss.Color(theme.SelectedBorder)).
		Bold(true)

	PlaceholderTaskStyle = TaskStyle.
		Foreground(lipgloss.Color(theme.Subtle)).
		Italic(true)

	TitleStyle = lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color(theme.Title))

	SubtleStyle = lipgloss.NewStyle().
		Foreground(lipgloss.Color(theme.Subtle))

	InfoStyle = lipgloss.NewStyle().
		Foreground(lipgloss.Color(theme.InfoFg))

	ErrorStyle = lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color(theme.ErrorFg))
}
