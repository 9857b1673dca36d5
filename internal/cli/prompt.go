package cli

import (
	"errors"
	"strings"

	"charm.land/huh/v2"

	"github.com/thenoetrevino/kanboard/internal/cli/styles"
	"github.com/thenoetrevino/kanboard/internal/kanban"
	"github.com/thenoetrevino/kanboard/internal/models"
)

// Confirm asks a yes/no question. Without a terminal it fails so scripts
// have to pass --force.
func Confirm(question string) (bool, error) {
	if !IsTerminal() {
		return false, Usagef("refusing to prompt without a terminal, pass --force")
	}
	var ok bool
	confirm := huh.NewConfirm().
		Title(question).
		Affirmative("Yes").
		Negative("No").
		Value(&ok)
	err := huh.NewForm(huh.NewGroup(confirm)).WithTheme(styles.FormTheme()).Run()
	return ok, err
}

// TaskForm holds the answers of the interactive task prompt
type TaskForm struct {
	Name     string
	Body     string
	ColumnID string
	TagNames []string
}

// PromptTask fills form interactively. Fields already set are used as the
// initial answers.
func PromptTask(form *TaskForm, view []*kanban.ColumnState, tags []*models.Tag) error {
	if !IsTerminal() {
		return Usagef("--interactive needs a terminal")
	}

	columnOpts := make([]huh.Option[string], 0, len(view))
	for _, col := range view {
		columnOpts = append(columnOpts, huh.NewOption(col.Name, string(col.ID)))
	}

	fields := []huh.Field{
		huh.NewInput().
			Title("Name").
			Value(&form.Name).
			Validate(func(s string) error {
				if strings.TrimSpace(s) == "" {
					return errors.New("name is required")
				}
				return nil
			}),
		huh.NewText().
			Title("Description").
			Description("Markdown is rendered by 'task show'").
			Value(&form.Body),
		huh.NewSelect[string]().
			Title("Column").
			Options(columnOpts...).
			Value(&form.ColumnID),
	}

	if len(tags) > 0 {
		tagOpts := make([]huh.Option[string], 0, len(tags))
		for _, tag := range tags {
			tagOpts = append(tagOpts, huh.NewOption(tag.Name, tag.Name))
		}
		fields = append(fields, huh.NewMultiSelect[string]().
			Title("Tags").
			Options(tagOpts...).
			Value(&form.TagNames))
	}

	return huh.NewForm(huh.NewGroup(fields...)).WithTheme(styles.FormTheme()).Run()
}

