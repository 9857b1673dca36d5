package components

import (
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/thenoetrevino/kanboard/internal/tui/state"
)

// StatusBarProps configures RenderStatusBar
type StatusBarProps struct {
	Width        int
	BoardName    string
	Live         bool
	Notification *state.Notification
	HelpKey      string
}

// RenderStatusBar renders the board name and the latest notification on the
// left and the help hint on the right
func RenderStatusBar(props StatusBarProps) string {
	left := SubtleStyle.Render(props.BoardName)
	if props.Live {
		left += SubtleStyle.Render(" · live")
	}
	if n := props.Notification; n != nil {
		style := InfoStyle
		if n.Level == state.Error {
			style = ErrorStyle
		}
		left += "  " + style.Render(n.Message)
	}
	right := SubtleStyle.Render("press " + props.HelpKey + " for help")

	gapWidth := max(props.Width-lipgloss.Width(left)-lipgloss.Width(right), 1)
	return lipgloss.JoinHorizontal(lipgloss.Top, left, strings.Repeat(" ", gapWidth), right)
}
