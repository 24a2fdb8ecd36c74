package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"projecthub/internal/models"
)

const projectColumns = `id, name, description, start_date, end_date, priority, template, status, owner_id, created_at, updated_at`

// CreateProject persists a new project owned by p.OwnerID.
func (s *Store) CreateProject(ctx context.Context, p models.Project) (models.Project, error) {
	if strings.TrimSpace(p.Name) == "" {
		return models.Project{}, fmt.Errorf("%w: project name must not be empty", models.ErrInvalidInput)
	}
	if err := validateProjectDates(p.StartDate, p.EndDate); err != nil {
		return models.Project{}, err
	}
	if p.Priority == "" {
		p.Priority = models.PriorityMedium
	}
	if p.Template == "" {
		p.Template = models.TemplateNone
	}
	if p.Status == "" {
		p.Status = models.ProjectActive
	}

	res, err := s.db.ExecContext(ctx,
		`INSERT INTO projects(name, description, start_date, end_date, priority, template, status, owner_id)
         VALUES(?, ?, ?, ?, ?, ?, ?, ?)`,
		strings.TrimSpace(p.Name), p.Description, dateArg(p.StartDate), dateArg(p.EndDate),
		string(p.Priority), string(p.Template), string(p.Status), p.OwnerID)
	if err != nil {
		return models.Project{}, fmt.Errorf("insert project: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return models.Project{}, fmt.Errorf("project id: %w", err)
	}
	return s.GetProject(ctx, id)
}

// GetProject fetches a single project by id.
func (s *Store) GetProject(ctx context.Context, id int64) (models.Project, error) {
	return s.scanProject(s.db.QueryRowContext(ctx, `SELECT `+projectColumns+` FROM projects WHERE id = ?`, id))
}

// ListProjectsByOwner returns the user's projects, newest created first.
func (s *Store) ListProjectsByOwner(ctx context.Context, ownerID int64) ([]models.Project, error) {
	return s.queryProjects(ctx,
		`SELECT `+projectColumns+` FROM projects WHERE owner_id = ? ORDER BY created_at DESC, id DESC`, ownerID)
}

// ListProjectsByOwnerAndStatus filters the owner's projects by lifecycle state.
func (s *Store) ListProjectsByOwnerAndStatus(ctx context.Context, ownerID int64, status models.ProjectStatus) ([]models.Project, error) {
	return s.queryProjects(ctx,
		`SELECT `+projectColumns+` FROM projects WHERE owner_id = ? AND status = ? ORDER BY created_at DESC, id DESC`,
		ownerID, string(status))
}

// ListProjectsByOwnerAndPriority filters the owner's projects by priority.
func (s *Store) ListProjectsByOwnerAndPriority(ctx context.Context, ownerID int64, priority models.Priority) ([]models.Project, error) {
	return s.queryProjects(ctx,
		`SELECT `+projectColumns+` FROM projects WHERE owner_id = ? AND priority = ? ORDER BY created_at DESC, id DESC`,
		ownerID, string(priority))
}

// SearchProjects matches the owner's projects by name or description keyword.
func (s *Store) SearchProjects(ctx context.Context, ownerID int64, keyword string) ([]models.Project, error) {
	like := "%" + keyword + "%"
	return s.queryProjects(ctx,
		`SELECT `+projectColumns+` FROM projects
         WHERE owner_id = ? AND (name LIKE ? OR description LIKE ?)
         ORDER BY created_at DESC, id DESC`, ownerID, like, like)
}

// MemberProjects returns projects where the user is a member but not the owner.
func (s *Store) MemberProjects(ctx context.Context, userID int64) ([]models.Project, error) {
	return s.queryProjects(ctx,
		`SELECT p.id, p.name, p.description, p.start_date, p.end_date, p.priority, p.template, p.status, p.owner_id, p.created_at, p.updated_at
         FROM projects p JOIN project_members m ON m.project_id = p.id
         WHERE m.user_id = ? AND p.owner_id != ?
         ORDER BY p.created_at DESC, p.id DESC`, userID, userID)
}

// UpdateProject replaces the mutable fields of a project.
func (s *Store) UpdateProject(ctx context.Context, p models.Project) (models.Project, error) {
	if strings.TrimSpace(p.Name) == "" {
		return models.Project{}, fmt.Errorf("%w: project name must not be empty", models.ErrInvalidInput)
	}
	if err := validateProjectDates(p.StartDate, p.EndDate); err != nil {
		return models.Project{}, err
	}

	res, err := s.db.ExecContext(ctx,
		`UPDATE projects SET name = ?, description = ?, start_date = ?, end_date = ?, priority = ?, template = ?, status = ?
         WHERE id = ?`,
		strings.TrimSpace(p.Name), p.Description, dateArg(p.StartDate), dateArg(p.EndDate),
		string(p.Priority), string(p.Template), string(p.Status), p.ID)
	if err != nil {
		return models.Project{}, fmt.Errorf("update project: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return models.Project{}, err
	}
	if affected == 0 {
		return models.Project{}, models.ErrProjectNotFound
	}
	return s.GetProject(ctx, p.ID)
}

// DeleteProject removes a project along with its tasks and collaboration data.
func (s *Store) DeleteProject(ctx context.Context, id int64) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM projects WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("delete project: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return models.ErrProjectNotFound
	}
	return nil
}

// CountProjectsByOwner returns total and per-state counts for the dashboard.
func (s *Store) CountProjectsByOwner(ctx context.Context, ownerID int64) (total, active, completed, urgent int64, err error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT COUNT(*),
                COALESCE(SUM(status = 'ACTIVE'), 0),
                COALESCE(SUM(status = 'COMPLETED'), 0),
                COALESCE(SUM(priority = 'URGENT'), 0)
         FROM projects WHERE owner_id = ?`, ownerID)
	if err = row.Scan(&total, &active, &completed, &urgent); err != nil {
		return 0, 0, 0, 0, fmt.Errorf("count projects: %w", err)
	}
	return total, active, completed, urgent, nil
}

func (s *Store) queryProjects(ctx context.Context, query string, args ...any) ([]models.Project, error) {
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list projects: %w", err)
	}
	defer rows.Close()

	var projects []models.Project
	for rows.Next() {
		var p models.Project
		var start, end sql.NullString
		if err := rows.Scan(&p.ID, &p.Name, &p.Description, &start, &end,
			&p.Priority, &p.Template, &p.Status, &p.OwnerID, &p.CreatedAt, &p.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan project: %w", err)
		}
		if p.StartDate, err = nullDate(start); err != nil {
			return nil, err
		}
		if p.EndDate, err = nullDate(end); err != nil {
			return nil, err
		}
		projects = append(projects, p)
	}
	return projects, rows.Err()
}

func (s *Store) scanProject(row *sql.Row) (models.Project, error) {
	var p models.Project
	var start, end sql.NullString
	err := row.Scan(&p.ID, &p.Name, &p.Description, &start, &end,
		&p.Priority, &p.Template, &p.Status, &p.OwnerID, &p.CreatedAt, &p.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return models.Project{}, models.ErrProjectNotFound
	}
	if err != nil {
		return models.Project{}, fmt.Errorf("get project: %w", err)
	}
	if p.StartDate, err = nullDate(start); err != nil {
		return models.Project{}, err
	}
	if p.EndDate, err = nullDate(end); err != nil {
		return models.Project{}, err
	}
	return p, nil
}

func validateProjectDates(start, end *models.Date) error {
	if start != nil && end != nil && start.After(*end) {
		return fmt.Errorf("%w: start date cannot be after end date", models.ErrInvalidInput)
	}
	return nil
}

func dateArg(d *models.Date) any {
	if d == nil {
		return nil
	}
	return d.String()
}

func nullDate(v sql.NullString) (*models.Date, error) {
	if !v.Valid || v.String == "" {
		return nil, nil
	}
	d, err := models.ParseDate(v.String)
	if err != nil {
		return nil, fmt.Errorf("scan date: %w", err)
	}
	return &d, nil
}
