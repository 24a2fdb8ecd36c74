// Package report renders progress reports as downloadable files.
package report

import (
	"fmt"
	"io"

	"github.com/xuri/excelize/v2"

	"projecthub/internal/progress"
)

// ExcelExporter writes a progress report as an .xlsx workbook with summary,
// burndown and team sheets.
type ExcelExporter struct{}

func NewExcelExporter() *ExcelExporter { return &ExcelExporter{} }

// Write renders r into w.
func (e *ExcelExporter) Write(w io.Writer, r progress.Report) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := e.writeSummarySheet(f, r); err != nil {
		return fmt.Errorf("summary sheet: %w", err)
	}
	if err := e.writeBurndownSheet(f, r); err != nil {
		return fmt.Errorf("burndown sheet: %w", err)
	}
	if err := e.writeTeamSheet(f, r); err != nil {
		return fmt.Errorf("team sheet: %w", err)
	}

	if err := f.DeleteSheet("Sheet1"); err != nil {
		return fmt.Errorf("drop default sheet: %w", err)
	}

	if err := f.Write(w); err != nil {
		return fmt.Errorf("write workbook: %w", err)
	}
	return nil
}

func (e *ExcelExporter) writeSummarySheet(f *excelize.File, r progress.Report) error {
	const sheet = "Summary"
	index, err := f.NewSheet(sheet)
	if err != nil {
		return err
	}
	f.SetActiveSheet(index)

	headerStyle, _ := f.NewStyle(&excelize.Style{
		Fill: excelize.Fill{Type: "pattern", Color: []string{"#4472C4"}, Pattern: 1},
		Font: &excelize.Font{Bold: true, Color: "#FFFFFF"},
	})

	rows := [][2]any{
		{"Project", r.ProjectName},
		{"Total Tasks", r.TotalTasks},
		{"Completed Tasks", r.CompletedTasks},
		{"Completion %", r.CompletionPercentage},
		{"Health", string(r.Health)},
	}
	if r.StartDate != nil {
		rows = append(rows, [2]any{"Start Date", r.StartDate.String()})
	}
	if r.EndDate != nil {
		rows = append(rows, [2]any{"End Date", r.EndDate.String()})
	}

	row := 1
	for _, pair := range rows {
		f.SetCellValue(sheet, cellName(1, row), pair[0])
		f.SetCellStyle(sheet, cellName(1, row), cellName(1, row), headerStyle)
		f.SetCellValue(sheet, cellName(2, row), pair[1])
		row++
	}

	row++
	f.SetCellValue(sheet, cellName(1, row), "Status")
	f.SetCellValue(sheet, cellName(2, row), "Tasks")
	f.SetCellStyle(sheet, cellName(1, row), cellName(2, row), headerStyle)
	row++
	for _, status := range statusOrder {
		f.SetCellValue(sheet, cellName(1, row), status)
		f.SetCellValue(sheet, cellName(2, row), r.StatusBreakdown[status])
		row++
	}
	return nil
}

func (e *ExcelExporter) writeBurndownSheet(f *excelize.File, r progress.Report) error {
	const sheet = "Burndown"
	if _, err := f.NewSheet(sheet); err != nil {
		return err
	}

	f.SetCellValue(sheet, "A1", "Date")
	f.SetCellValue(sheet, "B1", "Remaining")
	f.SetCellValue(sheet, "C1", "Ideal Remaining")

	for i, point := range r.Burndown {
		row := i + 2
		f.SetCellValue(sheet, cellName(1, row), point.Date.String())
		f.SetCellValue(sheet, cellName(2, row), point.Remaining)
		f.SetCellValue(sheet, cellName(3, row), point.IdealRemaining)
	}
	return nil
}

func (e *ExcelExporter) writeTeamSheet(f *excelize.File, r progress.Report) error {
	const sheet = "Team"
	if _, err := f.NewSheet(sheet); err != nil {
		return err
	}

	headers := []string{"Rank", "Member", "Total Tasks", "Completed", "Completion Rate"}
	for i, h := range headers {
		f.SetCellValue(sheet, cellName(i+1, 1), h)
	}

	for i, member := range r.Team {
		row := i + 2
		name := member.FullName
		if name == "" {
			name = member.Username
		}
		f.SetCellValue(sheet, cellName(1, row), member.Rank)
		f.SetCellValue(sheet, cellName(2, row), name)
		f.SetCellValue(sheet, cellName(3, row), member.TotalTasks)
		f.SetCellValue(sheet, cellName(4, row), member.CompletedTasks)
		f.SetCellValue(sheet, cellName(5, row), member.CompletionRate)
	}
	return nil
}

var statusOrder = []string{"TODO", "IN_PROGRESS", "REVIEW", "DONE"}

func cellName(col, row int) string {
	name, _ := excelize.CoordinatesToCellName(col, row)
	return name
}
