package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/thenoetrevino/kanboard/internal/models"
	"github.com/thenoetrevino/kanboard/internal/types"
)

// TaskRepo handles all task-related database operations.
type TaskRepo struct {
	db *sql.DB
}

// CreateTaskParams holds the fields of a new task.
// Position is always assigned by storage.
type CreateTaskParams struct {
	BoardID    types.BoardID
	ColumnID   types.ColumnID
	Name       string
	Body       string
	AssigneeID types.UserID
	DueDate    *time.Time
}

const taskFields = `id, board_id, column_id, name, body, position, assignee_id, due_date, created_at, updated_at`

func scanTask(row interface{ Scan(...any) error }) (*models.Task, error) {
	task := &models.Task{Tags: []*models.Tag{}}
	var column, assignee sql.NullString
	var due sql.NullTime
	if err := row.Scan(
		&task.ID, &task.BoardID, &column, &task.Name, &task.Body, &task.Position,
		&assignee, &due, &task.CreatedAt, &task.UpdatedAt,
	); err != nil {
		return nil, err
	}
	task.ColumnID = columnIDFromNull(column)
	task.AssigneeID = types.UserID(NullStringToString(assignee))
	task.DueDate = nullTimeToPtr(due)
	return task, nil
}

func scanTasks(rows *sql.Rows) ([]*models.Task, error) {
	defer rows.Close()

	tasks := []*models.Task{}
	for rows.Next() {
		task, err := scanTask(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning task row: %w", err)
		}
		tasks = append(tasks, task)
	}
	return tasks, rows.Err()
}

// CreateTask inserts a task at the end of its column
func (r *TaskRepo) CreateTask(ctx context.Context, params CreateTaskParams) (*models.Task, error) {
	ts := now()
	task := &models.Task{
		ID:         types.TaskID(newID()),
		BoardID:    params.BoardID,
		ColumnID:   params.ColumnID,
		Name:       params.Name,
		Body:       params.Body,
		AssigneeID: params.AssigneeID,
		DueDate:    params.DueDate,
		Tags:       []*models.Tag{},
		CreatedAt:  ts,
		UpdatedAt:  ts,
	}

	err := withTx(ctx, r.db, func(tx *sql.Tx) error {
		if !params.ColumnID.IsNull() {
			col, err := getColumn(ctx, tx, params.ColumnID)
			if err != nil {
				return err
			}
			if col.BoardID != params.BoardID {
				return fmt.Errorf("column %s is not on board %s: %w", col.ID, params.BoardID, models.ErrColumnNotFound)
			}
		}

		count, err := countInColumn(ctx, tx, params.BoardID, params.ColumnID)
		if err != nil {
			return err
		}
		task.Position = count

		_, err = tx.ExecContext(ctx,
			`INSERT INTO tasks (`+taskFields+`) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
			task.ID, task.BoardID, nullColumnID(task.ColumnID), task.Name, task.Body, task.Position,
			sql.NullString{String: string(task.AssigneeID), Valid: task.AssigneeID != ""},
			timeToNull(task.DueDate), task.CreatedAt, task.UpdatedAt,
		)
		if err != nil {
			return fmt.Errorf("inserting task: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return task, nil
}

// countInColumn counts the tasks of one column; the null column counts the
// board's unassigned tasks
func countInColumn(ctx context.Context, q querier, boardID types.BoardID, columnID types.ColumnID) (int, error) {
	var count int
	err := q.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM tasks WHERE board_id = ? AND column_id IS ?`,
		boardID, nullColumnID(columnID),
	).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("counting tasks: %w", err)
	}
	return count, nil
}

// GetTaskByID returns a task with its tags or models.ErrTaskNotFound
func (r *TaskRepo) GetTaskByID(ctx context.Context, id types.TaskID) (*models.Task, error) {
	task, err := getTask(ctx, r.db, id)
	if err != nil {
		return nil, err
	}
	tags, err := tagsForTask(ctx, r.db, id)
	if err != nil {
		return nil, err
	}
	task.Tags = tags
	return task, nil
}

func getTask(ctx context.Context, q querier, id types.TaskID) (*models.Task, error) {
	task, err := scanTask(q.QueryRowContext(ctx, `SELECT `+taskFields+` FROM tasks WHERE id = ?`, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("task %s: %w", id, models.ErrTaskNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("querying task %s: %w", id, err)
	}
	return task, nil
}

// GetTasksByBoard returns the board's tasks without tags. With a non-empty
// tag filter only tasks carrying at least one of the named tags are returned,
// which leaves gaps in the positions of the filtered view.
func (r *TaskRepo) GetTasksByBoard(ctx context.Context, boardID types.BoardID, tagFilter []string) ([]*models.Task, error) {
	query := `SELECT ` + taskFields + ` FROM tasks t WHERE t.board_id = ?`
	args := []any{boardID}

	if len(tagFilter) > 0 {
		query += ` AND EXISTS (
			SELECT 1 FROM tasks_tags tt JOIN tags g ON g.id = tt.tag_id
			WHERE tt.task_id = t.id AND g.name IN (` + placeholders(len(tagFilter)) + `))`
		for _, name := range tagFilter {
			args = append(args, name)
		}
	}
	query += ` ORDER BY t.column_id, t.position, t.id`

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("querying tasks for board: %w", err)
	}
	return scanTasks(rows)
}

// GetTasksByColumn returns a column's tasks in position order
func (r *TaskRepo) GetTasksByColumn(ctx context.Context, boardID types.BoardID, columnID types.ColumnID) ([]*models.Task, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT `+taskFields+` FROM tasks WHERE board_id = ? AND column_id IS ? ORDER BY position, id`,
		boardID, nullColumnID(columnID),
	)
	if err != nil {
		return nil, fmt.Errorf("querying tasks for column: %w", err)
	}
	return scanTasks(rows)
}

// UpdateTask applies a patch to a stored task and returns the result
func (r *TaskRepo) UpdateTask(ctx context.Context, patch models.TaskPatch) (*models.Task, error) {
	var task *models.Task
	err := withTx(ctx, r.db, func(tx *sql.Tx) error {
		var err error
		task, err = getTask(ctx, tx, patch.ID)
		if err != nil {
			return err
		}
		patch.Apply(task)
		task.UpdatedAt = now()

		_, err = tx.ExecContext(ctx,
			`UPDATE tasks SET name = ?, body = ?, position = ?, assignee_id = ?, due_date = ?, updated_at = ?
			 WHERE id = ?`,
			task.Name, task.Body, task.Position,
			sql.NullString{String: string(task.AssigneeID), Valid: task.AssigneeID != ""},
			timeToNull(task.DueDate), task.UpdatedAt, task.ID,
		)
		if err != nil {
			return fmt.Errorf("updating task %s: %w", task.ID, err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	tags, err := tagsForTask(ctx, r.db, task.ID)
	if err != nil {
		return nil, err
	}
	task.Tags = tags
	return task, nil
}

// MoveTasks writes a task move diff in one transaction
func (r *TaskRepo) MoveTasks(ctx context.Context, moves []models.TaskMove) error {
	if len(moves) == 0 {
		return nil
	}
	ts := now()
	return withTx(ctx, r.db, func(tx *sql.Tx) error {
		for _, m := range moves {
			result, err := tx.ExecContext(ctx,
				`UPDATE tasks SET column_id = ?, position = ?, updated_at = ? WHERE id = ?`,
				nullColumnID(m.ColumnID), m.Position, ts, m.ID,
			)
			if err != nil {
				return fmt.Errorf("moving task %s: %w", m.ID, err)
			}
			if err := requireAffected(result, fmt.Errorf("task %s: %w", m.ID, models.ErrTaskNotFound)); err != nil {
				return err
			}
		}
		return nil
	})
}

// DeleteTask deletes a task and renumbers the rest of its column.
// It returns the renumbered survivors and the deleted id.
func (r *TaskRepo) DeleteTask(ctx context.Context, id types.TaskID) (models.TaskDeletion, error) {
	result := models.TaskDeletion{Updates: []models.TaskPositionUpdate{}}

	err := withTx(ctx, r.db, func(tx *sql.Tx) error {
		task, err := getTask(ctx, tx, id)
		if err != nil {
			return err
		}

		if _, err := tx.ExecContext(ctx, `DELETE FROM tasks WHERE id = ?`, id); err != nil {
			return fmt.Errorf("deleting task %s: %w", id, err)
		}
		result.Deletes = []types.TaskID{id}

		rows, err := tx.QueryContext(ctx,
			`SELECT id, position FROM tasks WHERE board_id = ? AND column_id IS ? ORDER BY position, id`,
			task.BoardID, nullColumnID(task.ColumnID),
		)
		if err != nil {
			return fmt.Errorf("querying column survivors: %w", err)
		}
		var survivors []models.TaskPositionUpdate
		for rows.Next() {
			var s models.TaskPositionUpdate
			if err := rows.Scan(&s.ID, &s.Position); err != nil {
				rows.Close()
				return fmt.Errorf("scanning survivor: %w", err)
			}
			survivors = append(survivors, s)
		}
		rows.Close()
		if err := rows.Err(); err != nil {
			return err
		}

		for i, s := range survivors {
			if s.Position == i {
				continue
			}
			if _, err := tx.ExecContext(ctx,
				`UPDATE tasks SET position = ? WHERE id = ?`, i, s.ID,
			); err != nil {
				return fmt.Errorf("renumbering task %s: %w", s.ID, err)
			}
			result.Updates = append(result.Updates, models.TaskPositionUpdate{ID: s.ID, Position: i})
		}
		return nil
	})
	if err != nil {
		return models.TaskDeletion{}, err
	}
	return result, nil
}
