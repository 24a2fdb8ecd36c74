package progress

import (
	"testing"
	"time"

	"projecthub/internal/models"
)

func TestMilestones(t *testing.T) {
	p := spanProject(datePtr(2024, time.January, 1), datePtr(2024, time.January, 31))

	milestones := Milestones(p)
	if len(milestones) != 4 {
		t.Fatalf("milestone count = %d, want 4", len(milestones))
	}

	kickoff := milestones[0]
	if !kickoff.Completed || kickoff.Status != "COMPLETED" {
		t.Fatalf("kickoff = %+v, want completed", kickoff)
	}
	if !kickoff.Date.Equal(*p.StartDate) {
		t.Fatalf("kickoff date = %s, want project start", kickoff.Date)
	}

	if milestones[1].Status != "IN_PROGRESS" {
		t.Fatalf("development status = %q", milestones[1].Status)
	}
	if !milestones[1].Date.Equal(models.NewDate(2024, time.January, 11)) {
		t.Fatalf("development date = %s, want 2024-01-11", milestones[1].Date)
	}
	if !milestones[2].Date.Equal(models.NewDate(2024, time.January, 21)) {
		t.Fatalf("testing date = %s, want 2024-01-21", milestones[2].Date)
	}

	completion := milestones[3]
	if completion.Completed || completion.Status != "PENDING" {
		t.Fatalf("completion = %+v, want pending", completion)
	}
	if !completion.Date.Equal(*p.EndDate) {
		t.Fatalf("completion date = %s, want project end", completion.Date)
	}
}

func TestMilestonesWithoutDates(t *testing.T) {
	if got := Milestones(spanProject(nil, nil)); got != nil {
		t.Fatalf("milestones without dates = %d, want none", len(got))
	}
}

func TestSubtasksStagedUnlock(t *testing.T) {
	wantCompleted := map[models.TaskStatus]int{
		models.StatusTodo:       1,
		models.StatusInProgress: 3,
		models.StatusReview:     4,
		models.StatusDone:       5,
	}

	for status, want := range wantCompleted {
		subtasks := Subtasks(status)
		if len(subtasks) != 5 {
			t.Fatalf("%s: checklist length = %d, want 5", status, len(subtasks))
		}
		completed := 0
		for _, st := range subtasks {
			if st.Completed {
				completed++
			}
		}
		if completed != want {
			t.Fatalf("%s: completed = %d, want %d", status, completed, want)
		}
	}

	// REVIEW leaves only documentation open.
	review := Subtasks(models.StatusReview)
	if review[4].Title != "Documentation" || review[4].Completed {
		t.Fatalf("review documentation item = %+v, want open", review[4])
	}
	if !review[3].Completed {
		t.Fatalf("review testing item should be complete")
	}
}

func TestTaskProgressPercent(t *testing.T) {
	cases := map[models.TaskStatus]float64{
		models.StatusTodo:       0,
		models.StatusInProgress: 50,
		models.StatusReview:     80,
		models.StatusDone:       100,
	}
	for status, want := range cases {
		if got := TaskProgressPercent(status); got != want {
			t.Fatalf("%s = %v, want %v", status, got, want)
		}
	}
}

func TestStatusBreakdown(t *testing.T) {
	tasks := []models.Task{
		taskWithStatus(1, models.StatusDone),
		taskWithStatus(2, models.StatusDone),
		taskWithStatus(3, models.StatusTodo),
	}

	breakdown := StatusBreakdown(tasks)
	if len(breakdown) != 4 {
		t.Fatalf("breakdown keys = %d, want all 4 statuses", len(breakdown))
	}
	if breakdown["DONE"] != 2 || breakdown["TODO"] != 1 {
		t.Fatalf("breakdown = %v", breakdown)
	}
	if breakdown["IN_PROGRESS"] != 0 || breakdown["REVIEW"] != 0 {
		t.Fatalf("unused statuses should be zero, got %v", breakdown)
	}
}

func TestActivityFeed(t *testing.T) {
	p := models.Project{ID: 1, Name: "Apollo"}
	assignee := int64(1)

	older := models.Task{
		ID: 1, Title: "first", Status: models.StatusDone, AssigneeID: &assignee,
		UpdatedAt: time.Date(2024, time.January, 2, 10, 0, 0, 0, time.UTC),
	}
	newer := models.Task{
		ID: 2, Title: "second", Status: models.StatusDone,
		UpdatedAt: time.Date(2024, time.January, 5, 10, 0, 0, 0, time.UTC),
	}
	open := models.Task{ID: 3, Title: "open", Status: models.StatusInProgress}

	feed := ActivityFeed(p, []models.Task{older, open, newer}, testUsers())
	if len(feed) != 2 {
		t.Fatalf("feed length = %d, want 2", len(feed))
	}
	if feed[0].TaskTitle != "second" || feed[1].TaskTitle != "first" {
		t.Fatalf("feed order = [%s %s], want newest first", feed[0].TaskTitle, feed[1].TaskTitle)
	}
	if feed[0].Actor != "Unknown" {
		t.Fatalf("unassigned actor = %q, want Unknown", feed[0].Actor)
	}
	if feed[1].Actor != "Alice Smith" {
		t.Fatalf("assigned actor = %q", feed[1].Actor)
	}
	if feed[0].ProjectName != "Apollo" {
		t.Fatalf("project name = %q", feed[0].ProjectName)
	}
}
