package report

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"

	"projecthub/internal/progress"
)

// CSVExporter writes the burndown series of a report as CSV rows.
type CSVExporter struct{}

func NewCSVExporter() *CSVExporter { return &CSVExporter{} }

// Write renders the burndown series of r into w.
func (e *CSVExporter) Write(w io.Writer, r progress.Report) error {
	writer := csv.NewWriter(w)
	defer writer.Flush()

	if err := writer.Write([]string{"date", "remaining_tasks", "ideal_remaining_tasks"}); err != nil {
		return fmt.Errorf("write header: %w", err)
	}

	for _, point := range r.Burndown {
		record := []string{
			point.Date.String(),
			strconv.Itoa(point.Remaining),
			strconv.Itoa(point.IdealRemaining),
		}
		if err := writer.Write(record); err != nil {
			return fmt.Errorf("write row: %w", err)
		}
	}
	return writer.Error()
}
