package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"projecthub/internal/models"
)

const userColumns = `id, username, email, password_hash, first_name, last_name, created_at`

// CreateUser inserts a new account. Username and email must be unique.
func (s *Store) CreateUser(ctx context.Context, u models.User) (models.User, error) {
	if strings.TrimSpace(u.Username) == "" || strings.TrimSpace(u.Email) == "" {
		return models.User{}, fmt.Errorf("%w: username and email are required", models.ErrInvalidInput)
	}

	if taken, err := s.usernameOrEmailTaken(ctx, u.Username, u.Email); err != nil {
		return models.User{}, err
	} else if taken != "" {
		return models.User{}, fmt.Errorf("%w: %s is already in use", models.ErrAlreadyExists, taken)
	}

	res, err := s.db.ExecContext(ctx,
		`INSERT INTO users(username, email, password_hash, first_name, last_name) VALUES(?, ?, ?, ?, ?)`,
		strings.TrimSpace(u.Username), strings.TrimSpace(u.Email), u.PasswordHash, u.FirstName, u.LastName)
	if err != nil {
		return models.User{}, fmt.Errorf("insert user: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return models.User{}, fmt.Errorf("user id: %w", err)
	}
	return s.GetUser(ctx, id)
}

func (s *Store) usernameOrEmailTaken(ctx context.Context, username, email string) (string, error) {
	var n int
	if err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM users WHERE username = ?`, username).Scan(&n); err != nil {
		return "", fmt.Errorf("check username: %w", err)
	}
	if n > 0 {
		return "username", nil
	}
	if err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM users WHERE email = ?`, email).Scan(&n); err != nil {
		return "", fmt.Errorf("check email: %w", err)
	}
	if n > 0 {
		return "email", nil
	}
	return "", nil
}

// GetUser fetches an account by id.
func (s *Store) GetUser(ctx context.Context, id int64) (models.User, error) {
	return s.scanUser(s.db.QueryRowContext(ctx, `SELECT `+userColumns+` FROM users WHERE id = ?`, id))
}

// GetUserByUsername resolves an account by its unique username.
func (s *Store) GetUserByUsername(ctx context.Context, username string) (models.User, error) {
	return s.scanUser(s.db.QueryRowContext(ctx, `SELECT `+userColumns+` FROM users WHERE username = ?`, username))
}

// GetUserByLogin resolves an account by username or email, used at signin.
func (s *Store) GetUserByLogin(ctx context.Context, usernameOrEmail string) (models.User, error) {
	return s.scanUser(s.db.QueryRowContext(ctx,
		`SELECT `+userColumns+` FROM users WHERE username = ? OR email = ?`, usernameOrEmail, usernameOrEmail))
}

// ListUsers returns all accounts ordered by username, for assignee pickers.
func (s *Store) ListUsers(ctx context.Context) ([]models.User, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT `+userColumns+` FROM users ORDER BY username`)
	if err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}
	defer rows.Close()

	var users []models.User
	for rows.Next() {
		var u models.User
		if err := rows.Scan(&u.ID, &u.Username, &u.Email, &u.PasswordHash, &u.FirstName, &u.LastName, &u.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan user: %w", err)
		}
		users = append(users, u)
	}
	return users, rows.Err()
}

func (s *Store) scanUser(row *sql.Row) (models.User, error) {
	var u models.User
	err := row.Scan(&u.ID, &u.Username, &u.Email, &u.PasswordHash, &u.FirstName, &u.LastName, &u.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return models.User{}, models.ErrUserNotFound
	}
	if err != nil {
		return models.User{}, fmt.Errorf("get user: %w", err)
	}
	return u, nil
}
