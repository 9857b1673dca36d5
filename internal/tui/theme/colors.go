package theme

import "github.com/thenoetrevino/kanboard/internal/config"

// Colors holds the current theme colors, initialized by Init
var (
	Highlight      string
	ColumnBorder   string
	TaskBorder     string
	SelectedBorder string
	Title          string
	Subtle         string
	Normal         string
	InfoFg         string
	ErrorFg        string
)

func init() {
	Init(config.DefaultColorScheme())
}

// Init initializes the theme colors from the given color scheme
func Init(colors config.ColorScheme) {
	Highlight = colors.Accent
	ColumnBorder = colors.ColumnBorder
	TaskBorder = colors.TaskBorder
	SelectedBorder = colors.SelectedBorder
	Title = colors.Title
	Subtle = colors.Subtle
	Normal = colors.Normal
	InfoFg = colors.InfoFg
	ErrorFg = colors.ErrorFg
}
