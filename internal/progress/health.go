package progress

import "projecthub/internal/models"

// Health is the qualitative schedule-risk indicator of a project.
type Health string

const (
	HealthOnTrack Health = "On Track"
	HealthAtRisk  Health = "At Risk"
	HealthBehind  Health = "Behind Schedule"
)

// HealthFor grades a project against a linear schedule. Projects without an
// end date cannot be judged and default to At Risk. Past the deadline only
// full completion counts as on track. Otherwise completion is compared to
// the time-proportional expectation with a 10 point tolerance band either way.
func HealthFor(p models.Project, completionPct float64, today models.Date) Health {
	if p.EndDate == nil {
		return HealthAtRisk
	}

	end := *p.EndDate
	if today.DaysUntil(end) < 0 {
		if completionPct < 100 {
			return HealthBehind
		}
		return HealthOnTrack
	}

	expected := expectedProgress(p, today)
	switch {
	case completionPct >= expected+10:
		return HealthOnTrack
	case completionPct >= expected-10:
		return HealthAtRisk
	default:
		return HealthBehind
	}
}

// expectedProgress is the percentage a project should have reached by today
// if work burned down linearly from start to end date.
func expectedProgress(p models.Project, today models.Date) float64 {
	if p.StartDate == nil || p.EndDate == nil {
		return 0
	}
	totalDays := p.StartDate.DaysUntil(*p.EndDate)
	if totalDays <= 0 {
		return 0
	}
	daysElapsed := p.StartDate.DaysUntil(today)
	return float64(daysElapsed) / float64(totalDays) * 100
}

// CompletionPercent returns done/total as a 0-100 percentage, 0 for no tasks.
func CompletionPercent(total, done int) float64 {
	if total <= 0 {
		return 0
	}
	return float64(done) / float64(total) * 100
}
