package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"projecthub/internal/models"
)

const timeEntryColumns = `id, task_id, user_id, entry_date, start_time, end_time, duration_minutes, description, billable, status, created_at`

// CreateTimeEntry records time spent on a task. New entries start as DRAFT.
func (s *Store) CreateTimeEntry(ctx context.Context, e models.TimeEntry) (models.TimeEntry, error) {
	if e.EntryDate.IsZero() {
		return models.TimeEntry{}, fmt.Errorf("%w: entry date is required", models.ErrInvalidInput)
	}
	if e.DurationMinutes <= 0 {
		return models.TimeEntry{}, fmt.Errorf("%w: duration must be positive", models.ErrInvalidInput)
	}
	if e.Status == "" {
		e.Status = models.TimeEntryDraft
	}

	res, err := s.db.ExecContext(ctx,
		`INSERT INTO time_entries(task_id, user_id, entry_date, start_time, end_time, duration_minutes, description, billable, status)
         VALUES(?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		e.TaskID, e.UserID, e.EntryDate.String(), e.StartTime, e.EndTime,
		e.DurationMinutes, e.Description, e.Billable, string(e.Status))
	if err != nil {
		return models.TimeEntry{}, fmt.Errorf("insert time entry: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return models.TimeEntry{}, fmt.Errorf("time entry id: %w", err)
	}
	return s.GetTimeEntry(ctx, id)
}

// GetTimeEntry fetches one entry by id.
func (s *Store) GetTimeEntry(ctx context.Context, id int64) (models.TimeEntry, error) {
	row := s.db.QueryRowContext(ctx, `SELECT `+timeEntryColumns+` FROM time_entries WHERE id = ?`, id)
	e, err := scanTimeEntry(row.Scan)
	if errors.Is(err, sql.ErrNoRows) {
		return models.TimeEntry{}, models.ErrTimeEntryNotFound
	}
	if err != nil {
		return models.TimeEntry{}, fmt.Errorf("get time entry: %w", err)
	}
	return e, nil
}

// ListTimeEntriesByUser returns the user's entries, newest entry date first.
func (s *Store) ListTimeEntriesByUser(ctx context.Context, userID int64) ([]models.TimeEntry, error) {
	return s.queryTimeEntries(ctx,
		`SELECT `+timeEntryColumns+` FROM time_entries WHERE user_id = ? ORDER BY entry_date DESC, id DESC`, userID)
}

// ListTimeEntriesByUserRange filters the user's entries to [from, to] inclusive.
func (s *Store) ListTimeEntriesByUserRange(ctx context.Context, userID int64, from, to models.Date) ([]models.TimeEntry, error) {
	return s.queryTimeEntries(ctx,
		`SELECT `+timeEntryColumns+` FROM time_entries
         WHERE user_id = ? AND entry_date >= ? AND entry_date <= ?
         ORDER BY entry_date DESC, id DESC`, userID, from.String(), to.String())
}

// ListTimeEntriesByProject returns entries for all tasks in a project.
func (s *Store) ListTimeEntriesByProject(ctx context.Context, projectID int64) ([]models.TimeEntry, error) {
	return s.queryTimeEntries(ctx,
		`SELECT e.id, e.task_id, e.user_id, e.entry_date, e.start_time, e.end_time, e.duration_minutes, e.description, e.billable, e.status, e.created_at
         FROM time_entries e JOIN tasks t ON t.id = e.task_id
         WHERE t.project_id = ? ORDER BY e.entry_date DESC, e.id DESC`, projectID)
}

// ListTimeEntriesByProjectRange filters project entries to [from, to] inclusive.
func (s *Store) ListTimeEntriesByProjectRange(ctx context.Context, projectID int64, from, to models.Date) ([]models.TimeEntry, error) {
	return s.queryTimeEntries(ctx,
		`SELECT e.id, e.task_id, e.user_id, e.entry_date, e.start_time, e.end_time, e.duration_minutes, e.description, e.billable, e.status, e.created_at
         FROM time_entries e JOIN tasks t ON t.id = e.task_id
         WHERE t.project_id = ? AND e.entry_date >= ? AND e.entry_date <= ?
         ORDER BY e.entry_date DESC, e.id DESC`, projectID, from.String(), to.String())
}

// ListTimeEntriesByStatus returns entries in a given approval state.
func (s *Store) ListTimeEntriesByStatus(ctx context.Context, status models.TimeEntryStatus) ([]models.TimeEntry, error) {
	return s.queryTimeEntries(ctx,
		`SELECT `+timeEntryColumns+` FROM time_entries WHERE status = ? ORDER BY entry_date DESC, id DESC`, string(status))
}

// ListTimeEntriesByUserAndStatus narrows a status query to one user.
func (s *Store) ListTimeEntriesByUserAndStatus(ctx context.Context, userID int64, status models.TimeEntryStatus) ([]models.TimeEntry, error) {
	return s.queryTimeEntries(ctx,
		`SELECT `+timeEntryColumns+` FROM time_entries WHERE user_id = ? AND status = ? ORDER BY entry_date DESC, id DESC`,
		userID, string(status))
}

// UpdateTimeEntryStatus moves an entry through the approval flow.
func (s *Store) UpdateTimeEntryStatus(ctx context.Context, id int64, status models.TimeEntryStatus) (models.TimeEntry, error) {
	res, err := s.db.ExecContext(ctx, `UPDATE time_entries SET status = ? WHERE id = ?`, string(status), id)
	if err != nil {
		return models.TimeEntry{}, fmt.Errorf("update time entry: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return models.TimeEntry{}, err
	}
	if affected == 0 {
		return models.TimeEntry{}, models.ErrTimeEntryNotFound
	}
	return s.GetTimeEntry(ctx, id)
}

// SubmitTimeEntries marks the user's listed entries SUBMITTED. Entries that
// belong to another user fail the whole batch.
func (s *Store) SubmitTimeEntries(ctx context.Context, userID int64, ids []int64) ([]models.TimeEntry, error) {
	if len(ids) == 0 {
		return nil, nil
	}

	submitted := make([]models.TimeEntry, 0, len(ids))
	for _, id := range ids {
		entry, err := s.GetTimeEntry(ctx, id)
		if err != nil {
			return nil, err
		}
		if entry.UserID != userID {
			return nil, fmt.Errorf("%w: time entry %d", models.ErrAccessDenied, id)
		}
		updated, err := s.UpdateTimeEntryStatus(ctx, id, models.TimeEntrySubmitted)
		if err != nil {
			return nil, err
		}
		submitted = append(submitted, updated)
	}
	return submitted, nil
}

// DeleteTimeEntry removes an entry owned by the user.
func (s *Store) DeleteTimeEntry(ctx context.Context, id, userID int64) error {
	entry, err := s.GetTimeEntry(ctx, id)
	if err != nil {
		return err
	}
	if entry.UserID != userID {
		return fmt.Errorf("%w: time entry %d", models.ErrAccessDenied, id)
	}
	_, err = s.db.ExecContext(ctx, `DELETE FROM time_entries WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("delete time entry: %w", err)
	}
	return nil
}

func (s *Store) queryTimeEntries(ctx context.Context, query string, args ...any) ([]models.TimeEntry, error) {
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list time entries: %w", err)
	}
	defer rows.Close()

	var entries []models.TimeEntry
	for rows.Next() {
		e, err := scanTimeEntry(rows.Scan)
		if err != nil {
			return nil, fmt.Errorf("scan time entry: %w", err)
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

func scanTimeEntry(scan func(...any) error) (models.TimeEntry, error) {
	var e models.TimeEntry
	var date string
	if err := scan(&e.ID, &e.TaskID, &e.UserID, &date, &e.StartTime, &e.EndTime,
		&e.DurationMinutes, &e.Description, &e.Billable, &e.Status, &e.CreatedAt); err != nil {
		return models.TimeEntry{}, err
	}
	parsed, err := models.ParseDate(strings.TrimSpace(date))
	if err != nil {
		return models.TimeEntry{}, err
	}
	e.EntryDate = parsed
	return e, nil
}
