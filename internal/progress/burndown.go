package progress

import "projecthub/internal/models"

// BurndownMode selects how per-day remaining counts are computed.
type BurndownMode string

const (
	// BurndownSnapshot reports today's remaining count on every day of the
	// span. This mirrors the legacy behavior and is the default.
	BurndownSnapshot BurndownMode = "snapshot"
	// BurndownHistorical reconstructs remaining per day from DONE task
	// update timestamps.
	BurndownHistorical BurndownMode = "historical"
)

// ParseBurndownMode accepts the mode query parameter; empty means snapshot.
func ParseBurndownMode(s string) (BurndownMode, error) {
	switch BurndownMode(s) {
	case "", BurndownSnapshot:
		return BurndownSnapshot, nil
	case BurndownHistorical:
		return BurndownHistorical, nil
	}
	return "", models.ErrInvalidInput
}

// BurndownPoint is a (date, remaining, ideal-remaining) triple.
type BurndownPoint struct {
	Date           models.Date `json:"date"`
	Remaining      int         `json:"remaining_tasks"`
	IdealRemaining int         `json:"ideal_remaining_tasks"`
}

// Burndown produces one point per calendar day from project start through
// end, inclusive. The ideal line decays linearly from the total task count
// to zero across the span. Projects missing either date get an empty series.
func Burndown(p models.Project, tasks []models.Task, mode BurndownMode) []BurndownPoint {
	if p.StartDate == nil || p.EndDate == nil {
		return nil
	}

	start := *p.StartDate
	end := *p.EndDate
	if end.Before(start) {
		return nil
	}

	total := len(tasks)
	done := 0
	for _, t := range tasks {
		if t.Status == models.StatusDone {
			done++
		}
	}

	totalDays := start.DaysUntil(end)
	series := make([]BurndownPoint, 0, totalDays+1)
	for day := start; !day.After(end); day = day.AddDays(1) {
		remaining := total - done
		if mode == BurndownHistorical {
			remaining = total - completedBy(tasks, day)
		}
		series = append(series, BurndownPoint{
			Date:           day,
			Remaining:      remaining,
			IdealRemaining: idealRemaining(total, totalDays, start.DaysUntil(day)),
		})
	}
	return series
}

// completedBy counts DONE tasks whose last update falls on or before day.
// The update timestamp is the closest record of when a task was finished.
func completedBy(tasks []models.Task, day models.Date) int {
	n := 0
	for _, t := range tasks {
		if t.Status == models.StatusDone && !models.DateOf(t.UpdatedAt).After(day) {
			n++
		}
	}
	return n
}

func idealRemaining(total, totalDays, daysElapsed int) int {
	if totalDays <= 0 {
		return 0
	}
	ratio := float64(daysElapsed) / float64(totalDays)
	remaining := total - int(float64(total)*ratio)
	if remaining < 0 {
		return 0
	}
	return remaining
}
