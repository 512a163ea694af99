package export

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/Neha-Elizabeth-Thomas/HackNet/internal/app/models"
)

func testCourse() *models.Course {
	return &models.Course{
		ID:   3,
		Name: "Data Structures",
		Code: "CS201",
		Syllabus: &models.Syllabus{Topics: []models.Topic{
			{TopicID: "t-1", Module: "Module 1", Title: "Arrays", Description: "Arrays", LectureHours: 2, TargetDate: models.NewDate(2024, 1, 15)},
			{TopicID: "t-2", Module: "Module 1", Title: "Linked lists", Description: "Linked lists", LectureHours: 3, TargetDate: models.NewDate(2024, 1, 17), IsCompleted: true},
		}},
	}
}

func TestCalendar(t *testing.T) {
	out, err := Calendar(testCourse(), time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC))
	require.NoError(t, err)

	assert.Contains(t, out, "BEGIN:VCALENDAR")
	assert.Equal(t, 2, strings.Count(out, "BEGIN:VEVENT"))
	assert.Contains(t, out, "UID:t-1@syllabus-tracker")
	assert.Contains(t, out, "SUMMARY:CS201: Arrays")
	assert.Contains(t, out, "SUMMARY:[done] CS201: Linked lists")
	assert.Contains(t, out, "20240115")
	assert.Contains(t, out, "Lecture hours: 3")

	_, err = Calendar(&models.Course{ID: 9}, time.Now())
	assert.Error(t, err)
}

func TestWorkbook(t *testing.T) {
	buf, err := Workbook(testCourse())
	require.NoError(t, err)

	f, err := excelize.OpenReader(buf)
	require.NoError(t, err)
	defer f.Close()

	rows, err := f.GetRows(sheetName)
	require.NoError(t, err)
	require.Len(t, rows, 3)
	assert.Equal(t, "Topic", rows[0][2])
	assert.Equal(t, "Arrays", rows[1][2])
	assert.Equal(t, "2024-01-17", rows[2][4])
	assert.Equal(t, "Yes", rows[2][5])

	_, err = Workbook(&models.Course{ID: 9})
	assert.Error(t, err)
}
