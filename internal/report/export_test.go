package report

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/xuri/excelize/v2"

	"projecthub/internal/models"
	"projecthub/internal/progress"
)

func sampleReport() progress.Report {
	start := models.NewDate(2024, time.January, 1)
	end := models.NewDate(2024, time.January, 3)

	return progress.Report{
		Summary: progress.Summary{
			ProjectID:            1,
			ProjectName:          "Apollo",
			TotalTasks:           4,
			CompletedTasks:       2,
			CompletionPercentage: 50,
			Health:               progress.HealthAtRisk,
			StartDate:            &start,
			EndDate:              &end,
		},
		Burndown: []progress.BurndownPoint{
			{Date: start, Remaining: 2, IdealRemaining: 4},
			{Date: start.AddDays(1), Remaining: 2, IdealRemaining: 2},
			{Date: end, Remaining: 2, IdealRemaining: 0},
		},
		Team: []progress.TeamMemberProgress{
			{UserID: 1, Username: "alice", FullName: "Alice Smith",
				TotalTasks: 4, CompletedTasks: 2, CompletionRate: 50, Rank: 1},
		},
		StatusBreakdown: map[string]int{"TODO": 2, "IN_PROGRESS": 0, "REVIEW": 0, "DONE": 2},
	}
}

func TestCSVExport(t *testing.T) {
	var buf bytes.Buffer
	if err := NewCSVExporter().Write(&buf, sampleReport()); err != nil {
		t.Fatalf("Write: %v", err)
	}

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 4 {
		t.Fatalf("line count = %d, want header + 3 rows", len(lines))
	}
	if lines[0] != "date,remaining_tasks,ideal_remaining_tasks" {
		t.Fatalf("header = %q", lines[0])
	}
	if lines[1] != "2024-01-01,2,4" {
		t.Fatalf("first row = %q", lines[1])
	}
	if lines[3] != "2024-01-03,2,0" {
		t.Fatalf("last row = %q", lines[3])
	}
}

func TestExcelExport(t *testing.T) {
	var buf bytes.Buffer
	if err := NewExcelExporter().Write(&buf, sampleReport()); err != nil {
		t.Fatalf("Write: %v", err)
	}

	f, err := excelize.OpenReader(&buf)
	if err != nil {
		t.Fatalf("reopen workbook: %v", err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	want := map[string]bool{"Summary": false, "Burndown": false, "Team": false}
	for _, name := range sheets {
		if _, ok := want[name]; ok {
			want[name] = true
		}
	}
	for name, found := range want {
		if !found {
			t.Fatalf("sheet %q missing, got %v", name, sheets)
		}
	}

	name, err := f.GetCellValue("Summary", "B1")
	if err != nil {
		t.Fatalf("read summary cell: %v", err)
	}
	if name != "Apollo" {
		t.Fatalf("project cell = %q", name)
	}

	rows, err := f.GetRows("Burndown")
	if err != nil {
		t.Fatalf("read burndown rows: %v", err)
	}
	if len(rows) != 4 {
		t.Fatalf("burndown rows = %d, want header + 3", len(rows))
	}
}

func TestExcelExportEmptyReport(t *testing.T) {
	var buf bytes.Buffer
	if err := NewExcelExporter().Write(&buf, progress.Report{}); err != nil {
		t.Fatalf("Write empty report: %v", err)
	}
	if buf.Len() == 0 {
		t.Fatal("empty report produced no bytes")
	}
}
