// Package report renders an approved day as an XLSX workbook for the
// export layer. It only ever reads a finalized day.
package report

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/sitehub-ops/checklist-api/internal/models"
	"github.com/xuri/excelize/v2"
)

const (
	sheetChecklist = "Checklist"
	sheetLog       = "Activity Log"
)

// ErrDayNotApproved is returned when a report is requested for a day
// that has not been locked yet.
var ErrDayNotApproved = errors.New("day is not approved")

// BuildWorkbook renders an approved day: a checklist sheet with one row
// per task and a second sheet with the full activity log.
func BuildWorkbook(day models.Day) (*excelize.File, error) {
	if !day.Approved || day.ApprovedBy == nil {
		return nil, ErrDayNotApproved
	}

	f := excelize.NewFile()
	f.SetSheetName(f.GetSheetName(0), sheetChecklist)

	rows := [][]interface{}{
		{"Site", day.Site},
		{"Date", day.Date},
		{"Approved by", day.ApprovedBy.Name},
		{"Approved at", formatTime(day.ApprovedAt)},
		{},
		{"Category", "Task", "Signed by", "First completed"},
	}
	for _, t := range day.Tasks {
		rows = append(rows, []interface{}{
			strings.ToUpper(string(t.Category)),
			t.Text,
			signerNames(t),
			firstCompletion(t),
		})
	}
	if err := writeRows(f, sheetChecklist, rows); err != nil {
		return nil, err
	}

	if _, err := f.NewSheet(sheetLog); err != nil {
		return nil, fmt.Errorf("failed to add log sheet: %w", err)
	}
	logRows := [][]interface{}{{"Time", "Entry"}}
	for _, e := range day.Log {
		logRows = append(logRows, []interface{}{e.Timestamp.Format(time.RFC3339), e.Text})
	}
	if err := writeRows(f, sheetLog, logRows); err != nil {
		return nil, err
	}

	return f, nil
}

func writeRows(f *excelize.File, sheet string, rows [][]interface{}) error {
	for i, row := range rows {
		if len(row) == 0 {
			continue
		}
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			return err
		}
		if err := f.SetSheetRow(sheet, cell, &row); err != nil {
			return fmt.Errorf("failed to write row %d on %s: %w", i+1, sheet, err)
		}
	}
	return nil
}

func signerNames(t models.Task) string {
	names := make([]string, len(t.Completions))
	for i, c := range t.Completions {
		names[i] = c.IdentityName
	}
	return strings.Join(names, ", ")
}

func firstCompletion(t models.Task) string {
	if len(t.Completions) == 0 {
		return ""
	}
	return t.Completions[0].Timestamp.Format("15:04")
}

func formatTime(ts *time.Time) string {
	if ts == nil {
		return ""
	}
	return ts.Format(time.RFC3339)
}
