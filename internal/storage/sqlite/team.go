package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"projecthub/internal/models"
)

// AddProjectMember links a user into a project team.
func (s *Store) AddProjectMember(ctx context.Context, m models.ProjectMember) (models.ProjectMember, error) {
	if m.Role == "" {
		m.Role = models.RoleMember
	}

	var n int
	if err := s.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM project_members WHERE project_id = ? AND user_id = ?`,
		m.ProjectID, m.UserID).Scan(&n); err != nil {
		return models.ProjectMember{}, fmt.Errorf("check membership: %w", err)
	}
	if n > 0 {
		return models.ProjectMember{}, fmt.Errorf("%w: user is already a member of this project", models.ErrAlreadyExists)
	}

	res, err := s.db.ExecContext(ctx,
		`INSERT INTO project_members(project_id, user_id, role) VALUES(?, ?, ?)`,
		m.ProjectID, m.UserID, string(m.Role))
	if err != nil {
		return models.ProjectMember{}, fmt.Errorf("insert member: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return models.ProjectMember{}, fmt.Errorf("member id: %w", err)
	}

	var out models.ProjectMember
	err = s.db.QueryRowContext(ctx,
		`SELECT id, project_id, user_id, role, joined_at FROM project_members WHERE id = ?`, id).
		Scan(&out.ID, &out.ProjectID, &out.UserID, &out.Role, &out.JoinedAt)
	if err != nil {
		return models.ProjectMember{}, fmt.Errorf("get member: %w", err)
	}
	return out, nil
}

// ListProjectMembers returns the team of a project in join order.
func (s *Store) ListProjectMembers(ctx context.Context, projectID int64) ([]models.ProjectMember, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, project_id, user_id, role, joined_at FROM project_members WHERE project_id = ? ORDER BY id`, projectID)
	if err != nil {
		return nil, fmt.Errorf("list members: %w", err)
	}
	defer rows.Close()

	var members []models.ProjectMember
	for rows.Next() {
		var m models.ProjectMember
		if err := rows.Scan(&m.ID, &m.ProjectID, &m.UserID, &m.Role, &m.JoinedAt); err != nil {
			return nil, fmt.Errorf("scan member: %w", err)
		}
		members = append(members, m)
	}
	return members, rows.Err()
}

// RemoveProjectMember deletes a user's membership in a project.
func (s *Store) RemoveProjectMember(ctx context.Context, projectID, userID int64) error {
	res, err := s.db.ExecContext(ctx,
		`DELETE FROM project_members WHERE project_id = ? AND user_id = ?`, projectID, userID)
	if err != nil {
		return fmt.Errorf("remove member: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return models.ErrMemberNotFound
	}
	return nil
}

// LogActivity appends a row to the project activity feed.
func (s *Store) LogActivity(ctx context.Context, a models.ActivityLog) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO activity_log(project_id, user_id, type, description, entity_type, entity_id)
         VALUES(?, ?, ?, ?, ?, ?)`,
		a.ProjectID, a.UserID, string(a.Type), a.Description, a.EntityType, a.EntityID)
	if err != nil {
		return fmt.Errorf("log activity: %w", err)
	}
	return nil
}

// ListProjectActivity returns the full feed, newest first. limit <= 0 means all.
func (s *Store) ListProjectActivity(ctx context.Context, projectID int64, limit int) ([]models.ActivityLog, error) {
	query := `SELECT id, project_id, user_id, type, description, entity_type, entity_id, created_at
              FROM activity_log WHERE project_id = ? ORDER BY created_at DESC, id DESC`
	args := []any{projectID}
	if limit > 0 {
		query += ` LIMIT ?`
		args = append(args, limit)
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list activity: %w", err)
	}
	defer rows.Close()

	var feed []models.ActivityLog
	for rows.Next() {
		var a models.ActivityLog
		if err := rows.Scan(&a.ID, &a.ProjectID, &a.UserID, &a.Type, &a.Description,
			&a.EntityType, &a.EntityID, &a.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan activity: %w", err)
		}
		feed = append(feed, a)
	}
	return feed, rows.Err()
}

// UpsertProjectNote creates or replaces the single note of a project.
func (s *Store) UpsertProjectNote(ctx context.Context, projectID int64, content string, updatedBy int64) (models.ProjectNote, error) {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO project_notes(project_id, content, last_updated_by)
         VALUES(?, ?, ?)
         ON CONFLICT(project_id) DO UPDATE SET content = excluded.content,
             last_updated_by = excluded.last_updated_by, updated_at = CURRENT_TIMESTAMP`,
		projectID, strings.TrimSpace(content), updatedBy)
	if err != nil {
		return models.ProjectNote{}, fmt.Errorf("upsert note: %w", err)
	}
	note, err := s.GetProjectNote(ctx, projectID)
	if err != nil {
		return models.ProjectNote{}, err
	}
	return note, nil
}

// GetProjectNote fetches the project note; missing notes return ErrNotFound.
func (s *Store) GetProjectNote(ctx context.Context, projectID int64) (models.ProjectNote, error) {
	var n models.ProjectNote
	err := s.db.QueryRowContext(ctx,
		`SELECT id, project_id, content, last_updated_by, created_at, updated_at FROM project_notes WHERE project_id = ?`,
		projectID).Scan(&n.ID, &n.ProjectID, &n.Content, &n.LastUpdatedByID, &n.CreatedAt, &n.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return models.ProjectNote{}, fmt.Errorf("project note %w", models.ErrNotFound)
	}
	if err != nil {
		return models.ProjectNote{}, fmt.Errorf("get note: %w", err)
	}
	return n, nil
}
