// Package progress derives project analytics from current task state:
// completion and health, team leaderboards, burndown series and the
// synthetic milestone/subtask/activity sections of a progress report.
// Nothing here is persisted; every report is recomputed per request.
package progress

import (
	"context"
	"errors"
	"time"

	"projecthub/internal/models"
)

// ProjectSource provides project lookups.
type ProjectSource interface {
	GetProject(ctx context.Context, id int64) (models.Project, error)
	ListProjectsByOwner(ctx context.Context, ownerID int64) ([]models.Project, error)
}

// TaskSource provides task listings per project.
type TaskSource interface {
	ListTasksByProject(ctx context.Context, projectID int64) ([]models.Task, error)
}

// UserSource resolves accounts for access checks and display names.
type UserSource interface {
	GetUser(ctx context.Context, id int64) (models.User, error)
	GetUserByUsername(ctx context.Context, username string) (models.User, error)
}

// Service assembles progress reports. Now is the clock used for health
// grading; tests override it to pin the calendar day.
type Service struct {
	projects ProjectSource
	tasks    TaskSource
	users    UserSource

	Now func() time.Time
}

// NewService wires a report service over the given sources.
func NewService(projects ProjectSource, tasks TaskSource, users UserSource) *Service {
	return &Service{projects: projects, tasks: tasks, users: users, Now: time.Now}
}

// Summary holds the headline figures for one project.
type Summary struct {
	ProjectID            int64        `json:"project_id"`
	ProjectName          string       `json:"project_name"`
	TotalTasks           int          `json:"total_tasks"`
	CompletedTasks       int          `json:"completed_tasks"`
	CompletionPercentage float64      `json:"completion_percentage"`
	Health               Health       `json:"project_health"`
	StartDate            *models.Date `json:"start_date"`
	EndDate              *models.Date `json:"end_date"`
}

// TaskProgress is the per-task section of a full report.
type TaskProgress struct {
	TaskID             int64             `json:"task_id"`
	Title              string            `json:"title"`
	Status             models.TaskStatus `json:"status"`
	ProgressPercentage float64           `json:"progress_percentage"`
	DueDate            *models.Date      `json:"due_date"`
	AssigneeName       string            `json:"assignee_name"`
	Subtasks           []Subtask         `json:"subtasks"`
}

// Report is the full progress payload for one project.
type Report struct {
	Summary
	StatusBreakdown map[string]int       `json:"task_status_breakdown"`
	Milestones      []Milestone          `json:"milestones"`
	Tasks           []TaskProgress       `json:"task_progress"`
	Team            []TeamMemberProgress `json:"team_progress"`
	Burndown        []BurndownPoint      `json:"burndown_data"`
	Activity        []ActivityItem       `json:"activity_feed"`
}

// ProjectProgress assembles the full report for one project. Only the
// project owner may read it.
func (s *Service) ProjectProgress(ctx context.Context, projectID int64, username string, mode BurndownMode) (Report, error) {
	project, tasks, err := s.ownedProject(ctx, projectID, username)
	if err != nil {
		return Report{}, err
	}

	users, err := s.assigneeIndex(ctx, tasks)
	if err != nil {
		return Report{}, err
	}

	report := Report{
		Summary:         s.summarize(project, tasks),
		StatusBreakdown: StatusBreakdown(tasks),
		Milestones:      Milestones(project),
		Tasks:           s.taskProgress(tasks, users),
		Team:            Leaderboard(tasks, users),
		Burndown:        Burndown(project, tasks, mode),
		Activity:        ActivityFeed(project, tasks, users),
	}
	return report, nil
}

// AllProjectsProgress returns headline summaries for every project the user
// owns, newest created first. A user with no projects gets an empty list.
func (s *Service) AllProjectsProgress(ctx context.Context, username string) ([]Summary, error) {
	user, err := s.users.GetUserByUsername(ctx, username)
	if err != nil {
		return nil, err
	}

	projects, err := s.projects.ListProjectsByOwner(ctx, user.ID)
	if err != nil {
		return nil, err
	}

	summaries := make([]Summary, 0, len(projects))
	for _, project := range projects {
		tasks, err := s.tasks.ListTasksByProject(ctx, project.ID)
		if err != nil {
			return nil, err
		}
		summaries = append(summaries, s.summarize(project, tasks))
	}
	return summaries, nil
}

// TeamLeaderboard ranks a project's assignees by completion rate. Only the
// project owner may read it.
func (s *Service) TeamLeaderboard(ctx context.Context, projectID int64, username string) ([]TeamMemberProgress, error) {
	_, tasks, err := s.ownedProject(ctx, projectID, username)
	if err != nil {
		return nil, err
	}

	users, err := s.assigneeIndex(ctx, tasks)
	if err != nil {
		return nil, err
	}
	return Leaderboard(tasks, users), nil
}

// ownedProject resolves the caller, the project and its tasks, enforcing
// that the caller owns the project.
func (s *Service) ownedProject(ctx context.Context, projectID int64, username string) (models.Project, []models.Task, error) {
	user, err := s.users.GetUserByUsername(ctx, username)
	if err != nil {
		return models.Project{}, nil, err
	}

	project, err := s.projects.GetProject(ctx, projectID)
	if err != nil {
		return models.Project{}, nil, err
	}
	if project.OwnerID != user.ID {
		return models.Project{}, nil, models.ErrAccessDenied
	}

	tasks, err := s.tasks.ListTasksByProject(ctx, project.ID)
	if err != nil {
		return models.Project{}, nil, err
	}
	return project, tasks, nil
}

func (s *Service) summarize(project models.Project, tasks []models.Task) Summary {
	total := len(tasks)
	done := 0
	for _, t := range tasks {
		if t.Status == models.StatusDone {
			done++
		}
	}
	completion := CompletionPercent(total, done)

	return Summary{
		ProjectID:            project.ID,
		ProjectName:          project.Name,
		TotalTasks:           total,
		CompletedTasks:       done,
		CompletionPercentage: completion,
		Health:               HealthFor(project, completion, models.DateOf(s.Now())),
		StartDate:            project.StartDate,
		EndDate:              project.EndDate,
	}
}

func (s *Service) taskProgress(tasks []models.Task, users map[int64]models.User) []TaskProgress {
	out := make([]TaskProgress, 0, len(tasks))
	for _, t := range tasks {
		assignee := "Unassigned"
		if t.AssigneeID != nil {
			if u, ok := users[*t.AssigneeID]; ok {
				assignee = u.FullName()
			}
		}
		out = append(out, TaskProgress{
			TaskID:             t.ID,
			Title:              t.Title,
			Status:             t.Status,
			ProgressPercentage: TaskProgressPercent(t.Status),
			DueDate:            t.DueDate,
			AssigneeName:       assignee,
			Subtasks:           Subtasks(t.Status),
		})
	}
	return out
}

// assigneeIndex loads every distinct assignee referenced by tasks. Assignees
// that no longer resolve are simply absent from the index.
func (s *Service) assigneeIndex(ctx context.Context, tasks []models.Task) (map[int64]models.User, error) {
	users := make(map[int64]models.User)
	for _, t := range tasks {
		if t.AssigneeID == nil {
			continue
		}
		id := *t.AssigneeID
		if _, ok := users[id]; ok {
			continue
		}
		u, err := s.users.GetUser(ctx, id)
		if err != nil {
			if errors.Is(err, models.ErrNotFound) {
				continue
			}
			return nil, err
		}
		users[id] = u
	}
	return users, nil
}
