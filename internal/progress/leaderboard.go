package progress

import (
	"sort"

	"projecthub/internal/models"
)

// TeamMemberProgress is one leaderboard row for a project assignee.
type TeamMemberProgress struct {
	UserID         int64   `json:"user_id"`
	Username       string  `json:"username"`
	FullName       string  `json:"full_name"`
	TotalTasks     int     `json:"total_tasks"`
	CompletedTasks int     `json:"completed_tasks"`
	CompletionRate float64 `json:"completion_rate"`
	Rank           int     `json:"rank"`
}

// Leaderboard groups a project's tasks by assignee and ranks assignees by
// completion rate, highest first. Ties break on user id ascending so the
// ordering is deterministic. Tasks without an assignee are ignored; the
// result is empty when nothing is assigned. users resolves display names.
func Leaderboard(tasks []models.Task, users map[int64]models.User) []TeamMemberProgress {
	type tally struct {
		total int
		done  int
	}
	byAssignee := make(map[int64]*tally)
	for _, t := range tasks {
		if t.AssigneeID == nil {
			continue
		}
		counts := byAssignee[*t.AssigneeID]
		if counts == nil {
			counts = &tally{}
			byAssignee[*t.AssigneeID] = counts
		}
		counts.total++
		if t.Status == models.StatusDone {
			counts.done++
		}
	}

	board := make([]TeamMemberProgress, 0, len(byAssignee))
	for id, counts := range byAssignee {
		row := TeamMemberProgress{
			UserID:         id,
			TotalTasks:     counts.total,
			CompletedTasks: counts.done,
			CompletionRate: CompletionPercent(counts.total, counts.done),
		}
		if u, ok := users[id]; ok {
			row.Username = u.Username
			row.FullName = u.FullName()
		}
		board = append(board, row)
	}

	sort.Slice(board, func(i, j int) bool {
		if board[i].CompletionRate != board[j].CompletionRate {
			return board[i].CompletionRate > board[j].CompletionRate
		}
		return board[i].UserID < board[j].UserID
	})
	for i := range board {
		board[i].Rank = i + 1
	}
	return board
}
