package progress

import (
	"testing"
	"time"

	"projecthub/internal/models"
)

func datePtr(year int, month time.Month, day int) *models.Date {
	d := models.NewDate(year, month, day)
	return &d
}

func spanProject(start, end *models.Date) models.Project {
	return models.Project{ID: 1, Name: "Apollo", StartDate: start, EndDate: end}
}

func TestHealthForMidProject(t *testing.T) {
	// Ten day span, halfway through: expected progress is 50%.
	p := spanProject(datePtr(2024, time.January, 1), datePtr(2024, time.January, 11))
	today := models.NewDate(2024, time.January, 6)

	cases := []struct {
		name       string
		completion float64
		want       Health
	}{
		{"well ahead", 75, HealthOnTrack},
		{"exactly at upper band", 60, HealthOnTrack},
		{"within band above", 55, HealthAtRisk},
		{"exactly expected", 50, HealthAtRisk},
		{"within band below", 41, HealthAtRisk},
		{"exactly at lower band", 40, HealthAtRisk},
		{"below band", 39.9, HealthBehind},
		{"far behind", 10, HealthBehind},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := HealthFor(p, tc.completion, today); got != tc.want {
				t.Fatalf("HealthFor(%v%%) = %q, want %q", tc.completion, got, tc.want)
			}
		})
	}
}

func TestHealthForFourOfTen(t *testing.T) {
	// 4 of 10 tasks done halfway through a 10 day span: 40% against an
	// expected 50% sits on the edge of the tolerance band.
	p := spanProject(datePtr(2024, time.January, 1), datePtr(2024, time.January, 11))
	today := models.NewDate(2024, time.January, 6)

	completion := CompletionPercent(10, 4)
	if got := HealthFor(p, completion, today); got != HealthAtRisk {
		t.Fatalf("HealthFor = %q, want %q", got, HealthAtRisk)
	}
}

func TestHealthForPastDeadline(t *testing.T) {
	p := spanProject(datePtr(2024, time.January, 1), datePtr(2024, time.January, 31))
	today := models.NewDate(2024, time.February, 15)

	if got := HealthFor(p, 100, today); got != HealthOnTrack {
		t.Fatalf("completed project past deadline = %q, want %q", got, HealthOnTrack)
	}
	if got := HealthFor(p, 99.9, today); got != HealthBehind {
		t.Fatalf("incomplete project past deadline = %q, want %q", got, HealthBehind)
	}
}

func TestHealthForDeadlineDay(t *testing.T) {
	// The end date itself is not past deadline; the band still applies.
	p := spanProject(datePtr(2024, time.January, 1), datePtr(2024, time.January, 31))
	today := models.NewDate(2024, time.January, 31)

	if got := HealthFor(p, 95, today); got != HealthAtRisk {
		t.Fatalf("95%% on deadline day = %q, want %q", got, HealthAtRisk)
	}
	if got := HealthFor(p, 80, today); got != HealthBehind {
		t.Fatalf("80%% on deadline day = %q, want %q", got, HealthBehind)
	}
}

func TestHealthForMissingEndDate(t *testing.T) {
	p := spanProject(datePtr(2024, time.January, 1), nil)
	today := models.NewDate(2024, time.January, 15)

	if got := HealthFor(p, 100, today); got != HealthAtRisk {
		t.Fatalf("project without end date = %q, want %q", got, HealthAtRisk)
	}
}

func TestHealthForZeroLengthSpan(t *testing.T) {
	// Start equals end: expected progress collapses to zero, so any real
	// completion grades on track.
	day := datePtr(2024, time.March, 1)
	p := spanProject(day, day)
	today := models.NewDate(2024, time.March, 1)

	if got := HealthFor(p, 50, today); got != HealthOnTrack {
		t.Fatalf("HealthFor = %q, want %q", got, HealthOnTrack)
	}
}

func TestCompletionPercent(t *testing.T) {
	if got := CompletionPercent(0, 0); got != 0 {
		t.Fatalf("no tasks should be 0%%, got %v", got)
	}
	if got := CompletionPercent(10, 4); got != 40 {
		t.Fatalf("4 of 10 = %v, want 40", got)
	}
	if got := CompletionPercent(3, 3); got != 100 {
		t.Fatalf("all done = %v, want 100", got)
	}
}
