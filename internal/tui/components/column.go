package components

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"
	"github.com/muesli/reflow/truncate"

	"github.com/thenoetrevino/kanboard/internal/kanban"
)

// RenderColumn renders a column with its title and tasks
//
// Layout:
//
//	{Column Name} ({count})
//	▲ (if scrolled down)
//	{Task 1}
//	{Task 2}
//	...
//	▼ (if more tasks below)
//
// selectedTask is the cursor row in this column, -1 when the cursor is
// elsewhere. height bounds the rendered lines; 0 renders every task.
func RenderColumn(col *kanban.ColumnState, selected bool, selectedTask int, height int) string {
	header := truncate.StringWithTail(col.Name, uint(ColumnWidth-10), "…")
	lines := []string{
		TitleStyle.Render(header) + SubtleStyle.Render(fmt.Sprintf(" (%d)", len(col.Tasks))),
	}

	if len(col.Tasks) == 0 {
		lines = append(lines, SubtleStyle.Italic(true).Render("No tasks"))
	} else {
		first, last := visibleRange(col, selectedTask, height)
		if first > 0 {
			lines = append(lines, SubtleStyle.Render("▲ more above"))
		}
		for i := first; i < last; i++ {
			lines = append(lines, RenderTask(col.Tasks[i], selected && i == selectedTask))
		}
		if last < len(col.Tasks) {
			lines = append(lines, SubtleStyle.Render("▼ more below"))
		}
	}

	style := ColumnStyle
	if selected {
		style = SelectedColumnStyle
	}
	return style.Render(strings.Join(lines, "\n"))
}

// taskCardHeight is the height of a one-line card with its border
const taskCardHeight = 3

// visibleRange picks the window of tasks that fits height and keeps the
// selected task in view
func visibleRange(col *kanban.ColumnState, selectedTask, height int) (int, int) {
	if height <= 0 {
		return 0, len(col.Tasks)
	}
	// border, header and the two scroll indicators
	const overhead = 5
	fit := max((height-overhead)/taskCardHeight, 1)

	first := 0
	if selectedTask >= fit {
		first = selectedTask - fit + 1
	}
	return first, min(first+fit, len(col.Tasks))
}

// RenderBoard joins the visible columns side by side
func RenderBoard(view []*kanban.ColumnState, offset, size, selectedColumn, selectedTask, height int) string {
	end := min(offset+size, len(view))
	blocks := make([]string, 0, end-offset)
	for i := offset; i < end; i++ {
		row := -1
		if i == selectedColumn {
			row = selectedTask
		}
		blocks = append(blocks, RenderColumn(view[i], i == selectedColumn, row, height))
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, blocks...)
}
