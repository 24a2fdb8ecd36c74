package models

import (
	"strings"
	"time"
)

// User is an account that can own projects and be assigned tasks.
type User struct {
	ID           int64     `json:"id"`
	Username     string    `json:"username"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	FirstName    string    `json:"first_name"`
	LastName     string    `json:"last_name"`
	CreatedAt    time.Time `json:"created_at"`
}

// FullName joins the name parts, falling back to the username.
func (u User) FullName() string {
	name := strings.TrimSpace(u.FirstName + " " + u.LastName)
	if name == "" {
		return u.Username
	}
	return name
}

// Project groups tasks under a single owner with an optional schedule.
// When both dates are set the store guarantees StartDate <= EndDate.
type Project struct {
	ID          int64           `json:"id"`
	Name        string          `json:"name"`
	Description string          `json:"description"`
	StartDate   *Date           `json:"start_date"`
	EndDate     *Date           `json:"end_date"`
	Priority    Priority        `json:"priority"`
	Template    ProjectTemplate `json:"template"`
	Status      ProjectStatus   `json:"status"`
	OwnerID     int64           `json:"owner_id"`
	CreatedAt   time.Time       `json:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at"`
}

// Task is a unit of work inside a project.
type Task struct {
	ID          int64      `json:"id"`
	ProjectID   *int64     `json:"project_id"`
	Title       string     `json:"title"`
	Description string     `json:"description"`
	Status      TaskStatus `json:"status"`
	Priority    Priority   `json:"priority"`
	DueDate     *Date      `json:"due_date"`
	AssigneeID  *int64     `json:"assignee_id"`
	CreatorID   int64      `json:"creator_id"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}

// TimeEntry records time spent on a task by a user.
type TimeEntry struct {
	ID              int64           `json:"id"`
	TaskID          int64           `json:"task_id"`
	UserID          int64           `json:"user_id"`
	EntryDate       Date            `json:"entry_date"`
	StartTime       string          `json:"start_time"`
	EndTime         string          `json:"end_time"`
	DurationMinutes int             `json:"duration_minutes"`
	Description     string          `json:"description"`
	Billable        bool            `json:"billable"`
	Status          TimeEntryStatus `json:"status"`
	CreatedAt       time.Time       `json:"created_at"`
}

// ProjectMember links a user to a project with a collaboration role.
type ProjectMember struct {
	ID        int64      `json:"id"`
	ProjectID int64      `json:"project_id"`
	UserID    int64      `json:"user_id"`
	Role      MemberRole `json:"role"`
	JoinedAt  time.Time  `json:"joined_at"`
}

// ActivityLog is one row of the project activity feed.
type ActivityLog struct {
	ID          int64        `json:"id"`
	ProjectID   int64        `json:"project_id"`
	UserID      int64        `json:"user_id"`
	Type        ActivityType `json:"type"`
	Description string       `json:"description"`
	EntityType  string       `json:"entity_type,omitempty"`
	EntityID    *int64       `json:"entity_id,omitempty"`
	CreatedAt   time.Time    `json:"created_at"`
}

// ProjectNote is the single shared note attached to a project.
type ProjectNote struct {
	ID              int64     `json:"id"`
	ProjectID       int64     `json:"project_id"`
	Content         string    `json:"content"`
	LastUpdatedByID int64     `json:"last_updated_by_id"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}

// TaskComment is a discussion entry on a task.
type TaskComment struct {
	ID        int64     `json:"id"`
	TaskID    int64     `json:"task_id"`
	AuthorID  int64     `json:"author_id"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"created_at"`
}

// TaskAttachment describes a file uploaded against a task. FileName is the
// randomized on-disk name, OriginalName what the client sent.
type TaskAttachment struct {
	ID           int64     `json:"id"`
	TaskID       int64     `json:"task_id"`
	FileName     string    `json:"file_name"`
	OriginalName string    `json:"original_name"`
	ContentType  string    `json:"content_type"`
	Size         int64     `json:"size"`
	Path         string    `json:"path"`
	UploadedByID int64     `json:"uploaded_by_id"`
	UploadedAt   time.Time `json:"uploaded_at"`
}
