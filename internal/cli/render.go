package cli

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/glamour"
	"charm.land/lipgloss/v2"
	"github.com/muesli/reflow/truncate"
	"github.com/muesli/reflow/wordwrap"

	"github.com/thenoetrevino/kanboard/internal/cli/styles"
	"github.com/thenoetrevino/kanboard/internal/kanban"
	"github.com/thenoetrevino/kanboard/internal/models"
)

// RenderBoard draws the board's columns side by side
func RenderBoard(w io.Writer, board *models.Board, view []*kanban.ColumnState) error {
	inner := styles.ColumnWidth - 4

	blocks := make([]string, 0, len(view))
	for _, col := range view {
		header := styles.TitleStyle.Render(truncate.StringWithTail(col.Name, uint(inner), "…"))
		header += styles.SubtitleStyle.Render(fmt.Sprintf(" (%d)", len(col.Tasks)))

		lines := []string{header}
		for _, task := range col.Tasks {
			lines = append(lines, styles.TaskStyle.Render(taskCardText(task, inner-2)))
		}
		blocks = append(blocks, styles.ColumnStyle.Render(strings.Join(lines, "\n")))
	}

	title := styles.TitleStyle.Render(board.Name)
	if board.Description != "" {
		title += "  " + styles.SubtitleStyle.Render(board.Description)
	}
	_, err := fmt.Fprintln(w, lipgloss.JoinVertical(lipgloss.Left,
		title,
		lipgloss.JoinHorizontal(lipgloss.Top, blocks...),
	))
	return err
}

func taskCardText(task *models.Task, width int) string {
	text := wordwrap.String(task.Name, width)
	if len(task.Tags) > 0 {
		chips := make([]string, 0, len(task.Tags))
		for _, tag := range task.Tags {
			chips = append(chips, styles.RenderTagChip(tag))
		}
		text += "\n" + strings.Join(chips, " ")
	}
	return text
}

// RenderTask draws a task card with its markdown body
func RenderTask(w io.Writer, task *models.Task, columnName string) error {
	var b strings.Builder

	b.WriteString(styles.TitleStyle.Render(wordwrap.String(task.Name, styles.CardWidth-6)))
	b.WriteString("\n\n")
	field := func(label, value string) {
		b.WriteString(styles.LabelStyle.Render(label+":") + " " + styles.ValueStyle.Render(value) + "\n")
	}
	field("ID", string(task.ID))
	field("Column", columnName)
	field("Position", fmt.Sprintf("%d", task.Position))
	if task.AssigneeID != "" {
		field("Assignee", string(task.AssigneeID))
	}
	if task.DueDate != nil {
		field("Due", task.DueDate.Format(DateLayout))
	}

	if len(task.Tags) > 0 {
		chips := make([]string, 0, len(task.Tags))
		for _, tag := range task.Tags {
			chips = append(chips, styles.RenderTagChip(tag))
		}
		b.WriteString(styles.SectionStyle.Render("Tags") + "\n")
		b.WriteString(strings.Join(chips, " ") + "\n")
	}

	if strings.TrimSpace(task.Body) != "" {
		body, err := renderMarkdown(task.Body, styles.CardWidth-6)
		if err != nil {
			return err
		}
		b.WriteString(styles.SectionStyle.Render("Description") + "\n")
		b.WriteString(strings.TrimRight(body, "\n"))
	}

	_, err := fmt.Fprintln(w, styles.RenderCard(strings.TrimRight(b.String(), "\n")))
	return err
}

func renderMarkdown(src string, width int) (string, error) {
	style := glamour.WithStandardStyle("notty")
	if IsTerminal() {
		style = glamour.WithAutoStyle()
	}
	r, err := glamour.NewTermRenderer(style, glamour.WithWordWrap(width))
	if err != nil {
		return "", fmt.Errorf("creating markdown renderer: %w", err)
	}
	return r.Render(src)
}
