package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"projecthub/internal/models"
)

// AddTaskComment appends a comment to a task.
func (s *Store) AddTaskComment(ctx context.Context, c models.TaskComment) (models.TaskComment, error) {
	if strings.TrimSpace(c.Content) == "" {
		return models.TaskComment{}, fmt.Errorf("%w: comment must not be empty", models.ErrInvalidInput)
	}

	res, err := s.db.ExecContext(ctx,
		`INSERT INTO task_comments(task_id, author_id, content) VALUES(?, ?, ?)`,
		c.TaskID, c.AuthorID, strings.TrimSpace(c.Content))
	if err != nil {
		return models.TaskComment{}, fmt.Errorf("insert comment: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return models.TaskComment{}, fmt.Errorf("comment id: %w", err)
	}

	var out models.TaskComment
	err = s.db.QueryRowContext(ctx,
		`SELECT id, task_id, author_id, content, created_at FROM task_comments WHERE id = ?`, id).
		Scan(&out.ID, &out.TaskID, &out.AuthorID, &out.Content, &out.CreatedAt)
	if err != nil {
		return models.TaskComment{}, fmt.Errorf("get comment: %w", err)
	}
	return out, nil
}

// ListTaskComments returns a task's comments oldest first.
func (s *Store) ListTaskComments(ctx context.Context, taskID int64) ([]models.TaskComment, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, task_id, author_id, content, created_at FROM task_comments WHERE task_id = ? ORDER BY id`, taskID)
	if err != nil {
		return nil, fmt.Errorf("list comments: %w", err)
	}
	defer rows.Close()

	var comments []models.TaskComment
	for rows.Next() {
		var c models.TaskComment
		if err := rows.Scan(&c.ID, &c.TaskID, &c.AuthorID, &c.Content, &c.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan comment: %w", err)
		}
		comments = append(comments, c)
	}
	return comments, rows.Err()
}

// AddTaskAttachment records an uploaded file's metadata.
func (s *Store) AddTaskAttachment(ctx context.Context, a models.TaskAttachment) (models.TaskAttachment, error) {
	res, err := s.db.ExecContext(ctx,
		`INSERT INTO task_attachments(task_id, file_name, original_name, content_type, size, path, uploaded_by)
         VALUES(?, ?, ?, ?, ?, ?, ?)`,
		a.TaskID, a.FileName, a.OriginalName, a.ContentType, a.Size, a.Path, a.UploadedByID)
	if err != nil {
		return models.TaskAttachment{}, fmt.Errorf("insert attachment: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return models.TaskAttachment{}, fmt.Errorf("attachment id: %w", err)
	}
	return s.GetTaskAttachment(ctx, id)
}

// GetTaskAttachment fetches attachment metadata by id.
func (s *Store) GetTaskAttachment(ctx context.Context, id int64) (models.TaskAttachment, error) {
	var a models.TaskAttachment
	err := s.db.QueryRowContext(ctx,
		`SELECT id, task_id, file_name, original_name, content_type, size, path, uploaded_by, uploaded_at
         FROM task_attachments WHERE id = ?`, id).
		Scan(&a.ID, &a.TaskID, &a.FileName, &a.OriginalName, &a.ContentType, &a.Size, &a.Path, &a.UploadedByID, &a.UploadedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return models.TaskAttachment{}, models.ErrAttachmentNotFound
	}
	if err != nil {
		return models.TaskAttachment{}, fmt.Errorf("get attachment: %w", err)
	}
	return a, nil
}

// ListTaskAttachments returns a task's attachments oldest first.
func (s *Store) ListTaskAttachments(ctx context.Context, taskID int64) ([]models.TaskAttachment, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, task_id, file_name, original_name, content_type, size, path, uploaded_by, uploaded_at
         FROM task_attachments WHERE task_id = ? ORDER BY id`, taskID)
	if err != nil {
		return nil, fmt.Errorf("list attachments: %w", err)
	}
	defer rows.Close()

	var attachments []models.TaskAttachment
	for rows.Next() {
		var a models.TaskAttachment
		if err := rows.Scan(&a.ID, &a.TaskID, &a.FileName, &a.OriginalName, &a.ContentType,
			&a.Size, &a.Path, &a.UploadedByID, &a.UploadedAt); err != nil {
			return nil, fmt.Errorf("scan attachment: %w", err)
		}
		attachments = append(attachments, a)
	}
	return attachments, rows.Err()
}

// DeleteTaskAttachment removes attachment metadata and returns the stored
// record so the caller can unlink the file on disk.
func (s *Store) DeleteTaskAttachment(ctx context.Context, id int64) (models.TaskAttachment, error) {
	a, err := s.GetTaskAttachment(ctx, id)
	if err != nil {
		return models.TaskAttachment{}, err
	}
	if _, err := s.db.ExecContext(ctx, `DELETE FROM task_attachments WHERE id = ?`, id); err != nil {
		return models.TaskAttachment{}, fmt.Errorf("delete attachment: %w", err)
	}
	return a, nil
}
