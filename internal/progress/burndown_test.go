package progress

import (
	"testing"
	"time"

	"projecthub/internal/models"
)

func taskWithStatus(id int64, status models.TaskStatus) models.Task {
	return models.Task{ID: id, Title: "task", Status: status}
}

func TestBurndownSnapshot(t *testing.T) {
	p := spanProject(datePtr(2024, time.January, 1), datePtr(2024, time.January, 11))
	tasks := []models.Task{
		taskWithStatus(1, models.StatusDone),
		taskWithStatus(2, models.StatusDone),
		taskWithStatus(3, models.StatusInProgress),
		taskWithStatus(4, models.StatusTodo),
		taskWithStatus(5, models.StatusTodo),
	}

	series := Burndown(p, tasks, BurndownSnapshot)
	if len(series) != 11 {
		t.Fatalf("series length = %d, want 11", len(series))
	}

	if !series[0].Date.Equal(models.NewDate(2024, time.January, 1)) {
		t.Fatalf("first point date = %s, want 2024-01-01", series[0].Date)
	}
	if !series[10].Date.Equal(models.NewDate(2024, time.January, 11)) {
		t.Fatalf("last point date = %s, want 2024-01-11", series[10].Date)
	}

	// Snapshot mode repeats today's remaining count on every point.
	for i, pt := range series {
		if pt.Remaining != 3 {
			t.Fatalf("point %d remaining = %d, want 3", i, pt.Remaining)
		}
	}

	if series[0].IdealRemaining != 5 {
		t.Fatalf("ideal at start = %d, want 5", series[0].IdealRemaining)
	}
	if series[10].IdealRemaining != 0 {
		t.Fatalf("ideal at end = %d, want 0", series[10].IdealRemaining)
	}
	for i := 1; i < len(series); i++ {
		if series[i].IdealRemaining > series[i-1].IdealRemaining {
			t.Fatalf("ideal line rises between points %d and %d", i-1, i)
		}
	}
}

func TestBurndownHistorical(t *testing.T) {
	p := spanProject(datePtr(2024, time.January, 1), datePtr(2024, time.January, 5))

	finished := func(id int64, day int) models.Task {
		task := taskWithStatus(id, models.StatusDone)
		task.UpdatedAt = time.Date(2024, time.January, day, 15, 0, 0, 0, time.UTC)
		return task
	}
	tasks := []models.Task{
		finished(1, 2),
		finished(2, 4),
		taskWithStatus(3, models.StatusTodo),
	}

	series := Burndown(p, tasks, BurndownHistorical)
	if len(series) != 5 {
		t.Fatalf("series length = %d, want 5", len(series))
	}

	want := []int{3, 2, 2, 1, 1}
	for i, pt := range series {
		if pt.Remaining != want[i] {
			t.Fatalf("day %d remaining = %d, want %d", i, pt.Remaining, want[i])
		}
	}
}

func TestBurndownMissingDates(t *testing.T) {
	tasks := []models.Task{taskWithStatus(1, models.StatusTodo)}

	if got := Burndown(spanProject(nil, datePtr(2024, time.January, 5)), tasks, BurndownSnapshot); got != nil {
		t.Fatalf("missing start date should yield no series, got %d points", len(got))
	}
	if got := Burndown(spanProject(datePtr(2024, time.January, 5), nil), tasks, BurndownSnapshot); got != nil {
		t.Fatalf("missing end date should yield no series, got %d points", len(got))
	}
	if got := Burndown(spanProject(datePtr(2024, time.January, 5), datePtr(2024, time.January, 1)), tasks, BurndownSnapshot); got != nil {
		t.Fatalf("inverted span should yield no series, got %d points", len(got))
	}
}

func TestBurndownSingleDay(t *testing.T) {
	day := datePtr(2024, time.June, 1)
	series := Burndown(spanProject(day, day), []models.Task{taskWithStatus(1, models.StatusTodo)}, BurndownSnapshot)
	if len(series) != 1 {
		t.Fatalf("series length = %d, want 1", len(series))
	}
	if series[0].IdealRemaining != 0 {
		t.Fatalf("zero length span ideal = %d, want 0", series[0].IdealRemaining)
	}
}

func TestParseBurndownMode(t *testing.T) {
	if mode, err := ParseBurndownMode(""); err != nil || mode != BurndownSnapshot {
		t.Fatalf("empty mode = %q, %v; want snapshot", mode, err)
	}
	if mode, err := ParseBurndownMode("historical"); err != nil || mode != BurndownHistorical {
		t.Fatalf("historical mode = %q, %v", mode, err)
	}
	if _, err := ParseBurndownMode("weekly"); err == nil {
		t.Fatal("unknown mode should error")
	}
}
