package progress

import (
	"sort"
	"time"

	"projecthub/internal/models"
)

// Milestone is a derived checkpoint on the project timeline. Milestones are
// not persisted; they are computed from the project's date span.
type Milestone struct {
	ID          int64       `json:"id"`
	Name        string      `json:"name"`
	Description string      `json:"description"`
	Date        models.Date `json:"date"`
	Completed   bool        `json:"completed"`
	Status      string      `json:"status"`
}

// Milestones places four fixed checkpoints at 0%, 1/3, 2/3 and 100% of the
// project span. Only the kickoff is marked completed. Projects without both
// dates have no timeline to pin milestones to.
func Milestones(p models.Project) []Milestone {
	if p.StartDate == nil || p.EndDate == nil {
		return nil
	}

	start := *p.StartDate
	totalDays := start.DaysUntil(*p.EndDate)

	return []Milestone{
		{ID: 1, Name: "Project Kickoff", Description: "Project initiation and planning",
			Date: start, Completed: true, Status: "COMPLETED"},
		{ID: 2, Name: "Development Phase", Description: "Core development work",
			Date: start.AddDays(totalDays / 3), Status: "IN_PROGRESS"},
		{ID: 3, Name: "Testing Phase", Description: "Quality assurance and testing",
			Date: start.AddDays(2 * totalDays / 3), Status: "PENDING"},
		{ID: 4, Name: "Project Completion", Description: "Final delivery and handover",
			Date: *p.EndDate, Status: "PENDING"},
	}
}

// Subtask is a derived checklist item under a task.
type Subtask struct {
	ID        int64  `json:"id"`
	Title     string `json:"title"`
	Completed bool   `json:"completed"`
}

// Subtasks derives the fixed five-item checklist for a task. Items unlock in
// stages as the task moves through the board: TODO completes only the first,
// IN_PROGRESS adds design and implementation, REVIEW adds testing, and DONE
// completes the documentation item.
func Subtasks(status models.TaskStatus) []Subtask {
	started := status != models.StatusTodo
	implemented := status == models.StatusInProgress || status == models.StatusReview || status == models.StatusDone
	tested := status == models.StatusReview || status == models.StatusDone
	done := status == models.StatusDone

	return []Subtask{
		{ID: 1, Title: "Define requirements", Completed: true},
		{ID: 2, Title: "Create design", Completed: started},
		{ID: 3, Title: "Implement functionality", Completed: implemented},
		{ID: 4, Title: "Testing", Completed: tested},
		{ID: 5, Title: "Documentation", Completed: done},
	}
}

// TaskProgressPercent maps a status to its nominal completion percentage.
func TaskProgressPercent(status models.TaskStatus) float64 {
	switch status {
	case models.StatusInProgress:
		return 50
	case models.StatusReview:
		return 80
	case models.StatusDone:
		return 100
	default:
		return 0
	}
}

// StatusBreakdown counts tasks per status. All four statuses are always
// present in the result, zero-valued when unused.
func StatusBreakdown(tasks []models.Task) map[string]int {
	breakdown := make(map[string]int, len(models.TaskStatuses))
	for _, status := range models.TaskStatuses {
		breakdown[string(status)] = 0
	}
	for _, t := range tasks {
		breakdown[string(t.Status)]++
	}
	return breakdown
}

// ActivityItem is one entry of the derived project activity feed.
type ActivityItem struct {
	ID          int64     `json:"id"`
	Type        string    `json:"type"`
	Message     string    `json:"message"`
	Actor       string    `json:"actor"`
	Timestamp   time.Time `json:"timestamp"`
	ProjectName string    `json:"project_name"`
	TaskTitle   string    `json:"task_title"`
}

// ActivityFeed derives a feed from completed tasks, newest first. The actor
// is the assignee's display name when known.
func ActivityFeed(p models.Project, tasks []models.Task, users map[int64]models.User) []ActivityItem {
	var feed []ActivityItem
	for _, t := range tasks {
		if t.Status != models.StatusDone {
			continue
		}
		actor := "Unknown"
		if t.AssigneeID != nil {
			if u, ok := users[*t.AssigneeID]; ok {
				actor = u.FullName()
			}
		}
		feed = append(feed, ActivityItem{
			ID:          t.ID,
			Type:        string(models.ActivityTaskCompleted),
			Message:     "Task completed",
			Actor:       actor,
			Timestamp:   t.UpdatedAt,
			ProjectName: p.Name,
			TaskTitle:   t.Title,
		})
	}

	sort.Slice(feed, func(i, j int) bool {
		return feed[i].Timestamp.After(feed[j].Timestamp)
	})
	return feed
}
