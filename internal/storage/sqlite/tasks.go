package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"projecthub/internal/models"
)

const taskColumns = `id, project_id, title, description, status, priority, due_date, assignee_id, creator_id, created_at, updated_at`

// CreateTask inserts a new task, defaulting status and priority.
func (s *Store) CreateTask(ctx context.Context, t models.Task) (models.Task, error) {
	if strings.TrimSpace(t.Title) == "" {
		return models.Task{}, fmt.Errorf("%w: task title must not be empty", models.ErrInvalidInput)
	}
	if t.Status == "" {
		t.Status = models.StatusTodo
	}
	if t.Priority == "" {
		t.Priority = models.PriorityMedium
	}

	res, err := s.db.ExecContext(ctx,
		`INSERT INTO tasks(project_id, title, description, status, priority, due_date, assignee_id, creator_id)
         VALUES(?, ?, ?, ?, ?, ?, ?, ?)`,
		t.ProjectID, strings.TrimSpace(t.Title), strings.TrimSpace(t.Description),
		string(t.Status), string(t.Priority), dateArg(t.DueDate), t.AssigneeID, t.CreatorID)
	if err != nil {
		return models.Task{}, fmt.Errorf("insert task: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return models.Task{}, fmt.Errorf("task id: %w", err)
	}
	return s.GetTask(ctx, id)
}

// GetTask retrieves a task by id.
func (s *Store) GetTask(ctx context.Context, id int64) (models.Task, error) {
	row := s.db.QueryRowContext(ctx, `SELECT `+taskColumns+` FROM tasks WHERE id = ?`, id)
	t, err := scanTask(row.Scan)
	if errors.Is(err, sql.ErrNoRows) {
		return models.Task{}, models.ErrTaskNotFound
	}
	if err != nil {
		return models.Task{}, fmt.Errorf("get task: %w", err)
	}
	return t, nil
}

// ListTasksByProject returns the project's tasks ordered by id.
func (s *Store) ListTasksByProject(ctx context.Context, projectID int64) ([]models.Task, error) {
	return s.queryTasks(ctx, `SELECT `+taskColumns+` FROM tasks WHERE project_id = ? ORDER BY id`, projectID)
}

// ListTasksByCreator returns tasks created by the user, newest first.
func (s *Store) ListTasksByCreator(ctx context.Context, userID int64) ([]models.Task, error) {
	return s.queryTasks(ctx, `SELECT `+taskColumns+` FROM tasks WHERE creator_id = ? ORDER BY created_at DESC, id DESC`, userID)
}

// TaskUpdate carries optional field changes for UpdateTask.
type TaskUpdate struct {
	Title         *string
	Description   *string
	Status        *models.TaskStatus
	Priority      *models.Priority
	DueDate       *models.Date
	ClearDue      bool
	AssigneeID    *int64
	ClearAssignee bool
}

// UpdateTask applies the non-nil fields of upd to a task.
func (s *Store) UpdateTask(ctx context.Context, id int64, upd TaskUpdate) (models.Task, error) {
	current, err := s.GetTask(ctx, id)
	if err != nil {
		return models.Task{}, err
	}

	if upd.Title != nil && strings.TrimSpace(*upd.Title) != "" {
		current.Title = strings.TrimSpace(*upd.Title)
	}
	if upd.Description != nil {
		current.Description = strings.TrimSpace(*upd.Description)
	}
	if upd.Status != nil {
		current.Status = *upd.Status
	}
	if upd.Priority != nil {
		current.Priority = *upd.Priority
	}
	if upd.ClearDue {
		current.DueDate = nil
	} else if upd.DueDate != nil {
		current.DueDate = upd.DueDate
	}
	if upd.ClearAssignee {
		current.AssigneeID = nil
	} else if upd.AssigneeID != nil {
		current.AssigneeID = upd.AssigneeID
	}

	_, err = s.db.ExecContext(ctx,
		`UPDATE tasks SET title = ?, description = ?, status = ?, priority = ?, due_date = ?, assignee_id = ? WHERE id = ?`,
		current.Title, current.Description, string(current.Status), string(current.Priority),
		dateArg(current.DueDate), current.AssigneeID, id)
	if err != nil {
		return models.Task{}, fmt.Errorf("update task: %w", err)
	}
	return s.GetTask(ctx, id)
}

// DeleteTask removes a task by id.
func (s *Store) DeleteTask(ctx context.Context, id int64) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM tasks WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("delete task: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return models.ErrTaskNotFound
	}
	return nil
}

// TaskStatistics aggregates the user's created tasks by status.
type TaskStatistics struct {
	Total      int64 `json:"total"`
	Pending    int64 `json:"pending"`
	Todo       int64 `json:"todo"`
	InProgress int64 `json:"in_progress"`
	Review     int64 `json:"review"`
	Done       int64 `json:"done"`
}

// TaskStatisticsByCreator counts the user's tasks per status.
func (s *Store) TaskStatisticsByCreator(ctx context.Context, userID int64) (TaskStatistics, error) {
	var st TaskStatistics
	row := s.db.QueryRowContext(ctx,
		`SELECT COUNT(*),
                COALESCE(SUM(status != 'DONE'), 0),
                COALESCE(SUM(status = 'TODO'), 0),
                COALESCE(SUM(status = 'IN_PROGRESS'), 0),
                COALESCE(SUM(status = 'REVIEW'), 0),
                COALESCE(SUM(status = 'DONE'), 0)
         FROM tasks WHERE creator_id = ?`, userID)
	if err := row.Scan(&st.Total, &st.Pending, &st.Todo, &st.InProgress, &st.Review, &st.Done); err != nil {
		return TaskStatistics{}, fmt.Errorf("task statistics: %w", err)
	}
	return st, nil
}

func (s *Store) queryTasks(ctx context.Context, query string, args ...any) ([]models.Task, error) {
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list tasks: %w", err)
	}
	defer rows.Close()

	var tasks []models.Task
	for rows.Next() {
		t, err := scanTask(rows.Scan)
		if err != nil {
			return nil, fmt.Errorf("scan task: %w", err)
		}
		tasks = append(tasks, t)
	}
	return tasks, rows.Err()
}

func scanTask(scan func(...any) error) (models.Task, error) {
	var t models.Task
	var due sql.NullString
	if err := scan(&t.ID, &t.ProjectID, &t.Title, &t.Description, &t.Status, &t.Priority,
		&due, &t.AssigneeID, &t.CreatorID, &t.CreatedAt, &t.UpdatedAt); err != nil {
		return models.Task{}, err
	}
	d, err := nullDate(due)
	if err != nil {
		return models.Task{}, err
	}
	t.DueDate = d
	return t, nil
}
