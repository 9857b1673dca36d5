package components

import (
	"strings"

	"charm.land/lipgloss/v2"
	"github.com/muesli/reflow/wordwrap"

	"github.com/thenoetrevino/kanboard/internal/models"
)

// RenderTask renders a task card: the wrapped name followed by its tags.
// A placeholder still being saved is dimmed.
func RenderTask(task *models.Task, selected bool) string {
	style := TaskStyle
	switch {
	case task.ID.IsTemp():
		style = PlaceholderTaskStyle
	case selected:
		style = SelectedTaskStyle
	}

	content := wordwrap.String(task.Name, ColumnWidth-8)
	if len(task.Tags) > 0 {
		chips := make([]string, 0, len(task.Tags))
		for _, tag := range task.Tags {
			chips = append(chips, renderTagChip(tag))
		}
		content += "\n" + strings.Join(chips, " ")
	}
	return style.Render(content)
}

func renderTagChip(tag *models.Tag) string {
	style := lipgloss.NewStyle()
	if tag.Color != "" && tag.Color != models.DefaultTagColor {
		style = style.Foreground(lipgloss.Color(tag.Color))
	}
	return style.Render("#" + tag.Name)
}
