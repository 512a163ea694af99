package models

import (
	"fmt"
	"time"
)

// MaxDailyHours bounds a single weekday entry of a weekly schedule.
const MaxDailyHours = 24

// WeeklySchedule is the number of lecture hours held on each weekday.
type WeeklySchedule struct {
	Monday    int `json:"monday"`
	Tuesday   int `json:"tuesday"`
	Wednesday int `json:"wednesday"`
	Thursday  int `json:"thursday"`
	Friday    int `json:"friday"`
}

// WeekdayHours pairs a weekday with its lecture hours.
type WeekdayHours struct {
	Day   time.Weekday
	Hours int
}

// Days returns the schedule in Monday..Friday order.
func (w WeeklySchedule) Days() []WeekdayHours {
	return []WeekdayHours{
		{time.Monday, w.Monday},
		{time.Tuesday, w.Tuesday},
		{time.Wednesday, w.Wednesday},
		{time.Thursday, w.Thursday},
		{time.Friday, w.Friday},
	}
}

// TotalHours is the number of lecture hours per week.
func (w WeeklySchedule) TotalHours() int {
	total := 0
	for _, d := range w.Days() {
		total += d.Hours
	}
	return total
}

// Validate checks every entry is within 0..MaxDailyHours.
func (w WeeklySchedule) Validate() error {
	for _, d := range w.Days() {
		if d.Hours < 0 || d.Hours > MaxDailyHours {
			return fmt.Errorf("%s hours must be between 0 and %d", d.Day, MaxDailyHours)
		}
	}
	return nil
}

// Course is a taught course owned by one faculty member.
type Course struct {
	ID             int64          `json:"id"`
	Name           string         `json:"courseName"`
	Code           string         `json:"courseCode"`
	FacultyID      int64          `json:"facultyId"`
	WeeklySchedule WeeklySchedule `json:"weeklySchedule"`
	SyllabusID     *int64         `json:"syllabusId,omitempty"`
	Syllabus       *Syllabus      `json:"syllabus,omitempty"`
	Timestamps
}

// OwnedBy reports whether userID is the course's faculty.
func (c *Course) OwnedBy(userID int64) bool {
	return c != nil && c.FacultyID == userID
}
