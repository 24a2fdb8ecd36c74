package progress

import (
	"context"
	"errors"
	"testing"
	"time"

	"projecthub/internal/models"
)

type fakeSource struct {
	projects map[int64]models.Project
	tasks    map[int64][]models.Task
	users    map[int64]models.User
}

func (f *fakeSource) GetProject(_ context.Context, id int64) (models.Project, error) {
	p, ok := f.projects[id]
	if !ok {
		return models.Project{}, models.ErrProjectNotFound
	}
	return p, nil
}

func (f *fakeSource) ListProjectsByOwner(_ context.Context, ownerID int64) ([]models.Project, error) {
	var out []models.Project
	for _, p := range f.projects {
		if p.OwnerID == ownerID {
			out = append(out, p)
		}
	}
	return out, nil
}

func (f *fakeSource) ListTasksByProject(_ context.Context, projectID int64) ([]models.Task, error) {
	return f.tasks[projectID], nil
}

func (f *fakeSource) GetUser(_ context.Context, id int64) (models.User, error) {
	u, ok := f.users[id]
	if !ok {
		return models.User{}, models.ErrUserNotFound
	}
	return u, nil
}

func (f *fakeSource) GetUserByUsername(_ context.Context, username string) (models.User, error) {
	for _, u := range f.users {
		if u.Username == username {
			return u, nil
		}
	}
	return models.User{}, models.ErrUserNotFound
}

func newTestService(t *testing.T) (*Service, *fakeSource) {
	t.Helper()

	assignee := int64(2)
	src := &fakeSource{
		projects: map[int64]models.Project{
			1: {
				ID: 1, Name: "Apollo", OwnerID: 1,
				StartDate: datePtr(2024, time.January, 1),
				EndDate:   datePtr(2024, time.January, 11),
			},
		},
		tasks: map[int64][]models.Task{
			1: {
				{ID: 1, Title: "design", Status: models.StatusDone, AssigneeID: &assignee,
					UpdatedAt: time.Date(2024, time.January, 3, 12, 0, 0, 0, time.UTC)},
				{ID: 2, Title: "build", Status: models.StatusInProgress, AssigneeID: &assignee},
				{ID: 3, Title: "ship", Status: models.StatusTodo},
			},
		},
		users: map[int64]models.User{
			1: {ID: 1, Username: "owner", FirstName: "Olive", LastName: "Owner"},
			2: {ID: 2, Username: "dev", FirstName: "Devin", LastName: "Dev"},
		},
	}

	svc := NewService(src, src, src)
	svc.Now = func() time.Time {
		return time.Date(2024, time.January, 6, 9, 0, 0, 0, time.UTC)
	}
	return svc, src
}

func TestProjectProgress(t *testing.T) {
	svc, _ := newTestService(t)

	report, err := svc.ProjectProgress(context.Background(), 1, "owner", BurndownSnapshot)
	if err != nil {
		t.Fatalf("ProjectProgress: %v", err)
	}

	if report.ProjectName != "Apollo" || report.TotalTasks != 3 || report.CompletedTasks != 1 {
		t.Fatalf("summary = %+v", report.Summary)
	}
	wantPct := 100.0 / 3
	if diff := report.CompletionPercentage - wantPct; diff > 0.001 || diff < -0.001 {
		t.Fatalf("completion = %v, want about %v", report.CompletionPercentage, wantPct)
	}
	// 33% complete against an expected 50% falls below the tolerance band.
	if report.Health != HealthBehind {
		t.Fatalf("health = %q, want %q", report.Health, HealthBehind)
	}

	if len(report.Milestones) != 4 {
		t.Fatalf("milestones = %d, want 4", len(report.Milestones))
	}
	if len(report.Burndown) != 11 {
		t.Fatalf("burndown points = %d, want 11", len(report.Burndown))
	}
	if len(report.Tasks) != 3 {
		t.Fatalf("task progress rows = %d, want 3", len(report.Tasks))
	}
	if report.Tasks[2].AssigneeName != "Unassigned" {
		t.Fatalf("unassigned task name = %q", report.Tasks[2].AssigneeName)
	}
	if report.Tasks[1].ProgressPercentage != 50 {
		t.Fatalf("in-progress task pct = %v, want 50", report.Tasks[1].ProgressPercentage)
	}
	if got := report.StatusBreakdown["DONE"]; got != 1 {
		t.Fatalf("breakdown DONE = %d, want 1", got)
	}
	if len(report.Team) != 1 || report.Team[0].Username != "dev" {
		t.Fatalf("team = %+v", report.Team)
	}
	if len(report.Activity) != 1 || report.Activity[0].Actor != "Devin Dev" {
		t.Fatalf("activity = %+v", report.Activity)
	}
}

func TestProjectProgressAccessDenied(t *testing.T) {
	svc, _ := newTestService(t)

	_, err := svc.ProjectProgress(context.Background(), 1, "dev", BurndownSnapshot)
	if !errors.Is(err, models.ErrAccessDenied) {
		t.Fatalf("non-owner error = %v, want access denied", err)
	}
}

func TestProjectProgressNotFound(t *testing.T) {
	svc, _ := newTestService(t)

	_, err := svc.ProjectProgress(context.Background(), 42, "owner", BurndownSnapshot)
	if !errors.Is(err, models.ErrNotFound) {
		t.Fatalf("missing project error = %v, want not found", err)
	}

	_, err = svc.ProjectProgress(context.Background(), 1, "ghost", BurndownSnapshot)
	if !errors.Is(err, models.ErrNotFound) {
		t.Fatalf("missing user error = %v, want not found", err)
	}
}

func TestAllProjectsProgress(t *testing.T) {
	svc, _ := newTestService(t)

	summaries, err := svc.AllProjectsProgress(context.Background(), "owner")
	if err != nil {
		t.Fatalf("AllProjectsProgress: %v", err)
	}
	if len(summaries) != 1 || summaries[0].ProjectID != 1 {
		t.Fatalf("summaries = %+v", summaries)
	}

	// Users without projects get an empty, non-nil list.
	summaries, err = svc.AllProjectsProgress(context.Background(), "dev")
	if err != nil {
		t.Fatalf("AllProjectsProgress for dev: %v", err)
	}
	if summaries == nil || len(summaries) != 0 {
		t.Fatalf("summaries for dev = %#v, want empty list", summaries)
	}
}

func TestTeamLeaderboardOwnerOnly(t *testing.T) {
	svc, _ := newTestService(t)

	board, err := svc.TeamLeaderboard(context.Background(), 1, "owner")
	if err != nil {
		t.Fatalf("TeamLeaderboard: %v", err)
	}
	if len(board) != 1 || board[0].Rank != 1 || board[0].CompletedTasks != 1 {
		t.Fatalf("board = %+v", board)
	}

	if _, err := svc.TeamLeaderboard(context.Background(), 1, "dev"); !errors.Is(err, models.ErrAccessDenied) {
		t.Fatalf("non-owner error = %v, want access denied", err)
	}
}

func TestProjectProgressDanglingAssignee(t *testing.T) {
	svc, src := newTestService(t)
	ghost := int64(77)
	src.tasks[1] = append(src.tasks[1], models.Task{
		ID: 4, Title: "orphan", Status: models.StatusTodo, AssigneeID: &ghost,
	})

	report, err := svc.ProjectProgress(context.Background(), 1, "owner", BurndownSnapshot)
	if err != nil {
		t.Fatalf("ProjectProgress: %v", err)
	}
	if report.Tasks[3].AssigneeName != "Unassigned" {
		t.Fatalf("dangling assignee name = %q, want Unassigned", report.Tasks[3].AssigneeName)
	}
}
