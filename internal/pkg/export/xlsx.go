package export

import (
	"bytes"
	"fmt"

	"github.com/xuri/excelize/v2"

	"github.com/Neha-Elizabeth-Thomas/HackNet/internal/app/models"
)

const sheetName = "Syllabus"

var workbookHeader = []interface{}{"#", "Module", "Topic", "Lecture Hours", "Target Date", "Completed"}

// Workbook renders the topic plan as a single-sheet spreadsheet.
func Workbook(course *models.Course) (*bytes.Buffer, error) {
	if course.Syllabus == nil {
		return nil, fmt.Errorf("course %d has no syllabus", course.ID)
	}

	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", sheetName); err != nil {
		return nil, fmt.Errorf("renaming sheet: %w", err)
	}

	header := workbookHeader
	if err := f.SetSheetRow(sheetName, "A1", &header); err != nil {
		return nil, fmt.Errorf("writing header: %w", err)
	}
	bold, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return nil, fmt.Errorf("creating header style: %w", err)
	}
	if err := f.SetCellStyle(sheetName, "A1", "F1", bold); err != nil {
		return nil, fmt.Errorf("styling header: %w", err)
	}

	for i, topic := range course.Syllabus.Topics {
		completed := "No"
		if topic.IsCompleted {
			completed = "Yes"
		}
		row := []interface{}{i + 1, topic.Module, topic.Title, topic.LectureHours, topic.TargetDate.String(), completed}
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return nil, err
		}
		if err := f.SetSheetRow(sheetName, cell, &row); err != nil {
			return nil, fmt.Errorf("writing row %d: %w", i+1, err)
		}
	}

	if err := f.SetColWidth(sheetName, "B", "C", 40); err != nil {
		return nil, fmt.Errorf("sizing columns: %w", err)
	}
	if err := f.SetColWidth(sheetName, "D", "F", 14); err != nil {
		return nil, fmt.Errorf("sizing columns: %w", err)
	}

	return f.WriteToBuffer()
}
