package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/thenoetrevino/kanboard/internal/models"
	"github.com/thenoetrevino/kanboard/internal/types"
)

// TagRepo handles all tag-related database operations.
type TagRepo struct {
	db *sql.DB
}

const tagFields = `id, board_id, name, color`

func scanTags(rows *sql.Rows) ([]*models.Tag, error) {
	defer rows.Close()

	tags := []*models.Tag{}
	for rows.Next() {
		tag := &models.Tag{}
		if err := rows.Scan(&tag.ID, &tag.BoardID, &tag.Name, &tag.Color); err != nil {
			return nil, fmt.Errorf("scanning tag row: %w", err)
		}
		tags = append(tags, tag)
	}
	return tags, rows.Err()
}

// CreateTags inserts the named tags on a board. Names that already exist are
// returned unchanged. An empty color falls back to models.DefaultTagColor.
func (r *TagRepo) CreateTags(ctx context.Context, boardID types.BoardID, names []string, color string) ([]*models.Tag, error) {
	if color == "" {
		color = models.DefaultTagColor
	}
	clean := make([]string, 0, len(names))
	for _, name := range names {
		if name = strings.TrimSpace(name); name != "" {
			clean = append(clean, name)
		}
	}
	if len(clean) == 0 {
		return []*models.Tag{}, nil
	}

	var tags []*models.Tag
	err := withTx(ctx, r.db, func(tx *sql.Tx) error {
		for _, name := range clean {
			if _, err := tx.ExecContext(ctx,
				`INSERT INTO tags (board_id, name, color) VALUES (?, ?, ?)
				 ON CONFLICT(board_id, name) DO NOTHING`,
				boardID, name, color,
			); err != nil {
				return fmt.Errorf("inserting tag %q: %w", name, err)
			}
		}

		args := []any{boardID}
		for _, name := range clean {
			args = append(args, name)
		}
		rows, err := tx.QueryContext(ctx,
			`SELECT `+tagFields+` FROM tags WHERE board_id = ? AND name IN (`+placeholders(len(clean))+`) ORDER BY name`,
			args...,
		)
		if err != nil {
			return fmt.Errorf("querying created tags: %w", err)
		}
		tags, err = scanTags(rows)
		return err
	})
	if err != nil {
		return nil, err
	}
	return tags, nil
}

// GetTagsByBoard returns a board's tags ordered by name
func (r *TagRepo) GetTagsByBoard(ctx context.Context, boardID types.BoardID) ([]*models.Tag, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT `+tagFields+` FROM tags WHERE board_id = ? ORDER BY name`, boardID)
	if err != nil {
		return nil, fmt.Errorf("querying tags for board: %w", err)
	}
	return scanTags(rows)
}

// GetTagByID returns a tag or models.ErrTagNotFound
func (r *TagRepo) GetTagByID(ctx context.Context, id types.TagID) (*models.Tag, error) {
	tag := &models.Tag{}
	err := r.db.QueryRowContext(ctx, `SELECT `+tagFields+` FROM tags WHERE id = ?`, id).
		Scan(&tag.ID, &tag.BoardID, &tag.Name, &tag.Color)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("tag %d: %w", id, models.ErrTagNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("querying tag %d: %w", id, err)
	}
	return tag, nil
}

// GetTagsForTask returns the tags attached to a task
func (r *TagRepo) GetTagsForTask(ctx context.Context, taskID types.TaskID) ([]*models.Tag, error) {
	return tagsForTask(ctx, r.db, taskID)
}

func tagsForTask(ctx context.Context, q querier, taskID types.TaskID) ([]*models.Tag, error) {
	rows, err := q.QueryContext(ctx,
		`SELECT g.id, g.board_id, g.name, g.color
		 FROM tags g JOIN tasks_tags tt ON tt.tag_id = g.id
		 WHERE tt.task_id = ? ORDER BY g.name`, taskID)
	if err != nil {
		return nil, fmt.Errorf("querying tags for task %s: %w", taskID, err)
	}
	return scanTags(rows)
}

// GetTagsForBoardTasks maps every tagged task of a board to its tags
func (r *TagRepo) GetTagsForBoardTasks(ctx context.Context, boardID types.BoardID) (map[types.TaskID][]*models.Tag, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT tt.task_id, g.id, g.board_id, g.name, g.color
		 FROM tasks_tags tt
		 JOIN tags g ON g.id = tt.tag_id
		 JOIN tasks t ON t.id = tt.task_id
		 WHERE t.board_id = ? ORDER BY g.name`, boardID)
	if err != nil {
		return nil, fmt.Errorf("querying task tags for board: %w", err)
	}
	defer rows.Close()

	byTask := make(map[types.TaskID][]*models.Tag)
	for rows.Next() {
		var taskID types.TaskID
		tag := &models.Tag{}
		if err := rows.Scan(&taskID, &tag.ID, &tag.BoardID, &tag.Name, &tag.Color); err != nil {
			return nil, fmt.Errorf("scanning task tag row: %w", err)
		}
		byTask[taskID] = append(byTask[taskID], tag)
	}
	return byTask, rows.Err()
}

// AssignTaskTags detaches removed and attaches added tags in one transaction
// and returns the task's resulting tag set.
func (r *TagRepo) AssignTaskTags(ctx context.Context, taskID types.TaskID, added, removed []types.TagID) ([]*models.Tag, error) {
	var tags []*models.Tag
	err := withTx(ctx, r.db, func(tx *sql.Tx) error {
		if _, err := getTask(ctx, tx, taskID); err != nil {
			return err
		}

		for _, id := range removed {
			if _, err := tx.ExecContext(ctx,
				`DELETE FROM tasks_tags WHERE task_id = ? AND tag_id = ?`, taskID, id,
			); err != nil {
				return fmt.Errorf("removing tag %d from task %s: %w", id, taskID, err)
			}
		}
		for _, id := range added {
			if _, err := tx.ExecContext(ctx,
				`INSERT INTO tasks_tags (task_id, tag_id) VALUES (?, ?) ON CONFLICT DO NOTHING`, taskID, id,
			); err != nil {
				return fmt.Errorf("adding tag %d to task %s: %w", id, taskID, err)
			}
		}

		var err error
		tags, err = tagsForTask(ctx, tx, taskID)
		return err
	})
	if err != nil {
		return nil, err
	}
	return tags, nil
}

// UpdateTag changes a tag's name and color
func (r *TagRepo) UpdateTag(ctx context.Context, id types.TagID, name, color string) error {
	result, err := r.db.ExecContext(ctx, `UPDATE tags SET name = ?, color = ? WHERE id = ?`, name, color, id)
	if err != nil {
		return fmt.Errorf("updating tag %d: %w", id, err)
	}
	return requireAffected(result, fmt.Errorf("tag %d: %w", id, models.ErrTagNotFound))
}

// DeleteTag removes a tag from the board and from every task
func (r *TagRepo) DeleteTag(ctx context.Context, id types.TagID) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM tags WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("deleting tag %d: %w", id, err)
	}
	return requireAffected(result, fmt.Errorf("tag %d: %w", id, models.ErrTagNotFound))
}
