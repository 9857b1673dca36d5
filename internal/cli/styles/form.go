package styles

import (
	"charm.land/huh/v2"
	"charm.land/lipgloss/v2"

	"github.com/thenoetrevino/kanboard/internal/config"
)

// scheme is the color scheme of the last Init
var scheme = config.DefaultColorScheme()

// FormTheme styles the interactive prompts with the current color scheme
func FormTheme() huh.Theme {
	colors := scheme
	return huh.ThemeFunc(func(isDark bool) *huh.Styles {
		t := huh.ThemeBase(isDark)

		accent := lipgloss.Color(colors.Accent)
		subtle := lipgloss.Color(colors.Subtle)
		normal := lipgloss.Color(colors.Normal)
		title := lipgloss.Color(colors.Title)
		errorColor := lipgloss.Color(colors.ErrorFg)

		t.Focused.Base = t.Focused.Base.BorderForeground(accent)
		t.Focused.Title = t.Focused.Title.Foreground(title).Bold(true)
		t.Focused.Description = t.Focused.Description.Foreground(subtle)
		t.Focused.ErrorIndicator = t.Focused.ErrorIndicator.Foreground(errorColor)
		t.Focused.ErrorMessage = t.Focused.ErrorMessage.Foreground(errorColor)
		t.Focused.SelectSelector = t.Focused.SelectSelector.Foreground(accent)
		t.Focused.MultiSelectSelector = t.Focused.MultiSelectSelector.Foreground(accent)
		t.Focused.SelectedOption = t.Focused.SelectedOption.Foreground(accent)
		t.Focused.UnselectedOption = t.Focused.UnselectedOption.Foreground(normal)
		t.Focused.FocusedButton = t.Focused.FocusedButton.Background(accent).Bold(true)
		t.Focused.BlurredButton = t.Focused.BlurredButton.Foreground(normal).Background(subtle)
		t.Focused.TextInput.Cursor = t.Focused.TextInput.Cursor.Foreground(accent)
		t.Focused.TextInput.Prompt = t.Focused.TextInput.Prompt.Foreground(accent)

		t.Blurred = t.Focused
		t.Blurred.Base = t.Blurred.Base.BorderStyle(lipgloss.HiddenBorder())
		t.Blurred.Title = t.Blurred.Title.Foreground(subtle)
		return t
	})
}
