package dto

import (
	"time"

	"github.com/Neha-Elizabeth-Thomas/HackNet/internal/app/models"
)

// CourseSummary is a course in list responses.
type CourseSummary struct {
	ID              int64                 `json:"id" example:"12"`
	CourseName      string                `json:"courseName" example:"Data Structures"`
	CourseCode      string                `json:"courseCode" example:"CS201"`
	WeeklySchedule  models.WeeklySchedule `json:"weeklySchedule"`
	SyllabusID      *int64                `json:"syllabusId,omitempty" example:"4"`
	TopicsTotal     int                   `json:"topicsTotal" example:"18"`
	TopicsCompleted int                   `json:"topicsCompleted" example:"5"`
	CreatedAt       time.Time             `json:"createdAt"`
}

// CourseResponse is a course with its embedded syllabus.
type CourseResponse struct {
	ID             int64                 `json:"id" example:"12"`
	CourseName     string                `json:"courseName" example:"Data Structures"`
	CourseCode     string                `json:"courseCode" example:"CS201"`
	FacultyID      int64                 `json:"facultyId" example:"1"`
	WeeklySchedule models.WeeklySchedule `json:"weeklySchedule"`
	Syllabus       *SyllabusResponse     `json:"syllabus,omitempty"`
	CreatedAt      time.Time             `json:"createdAt"`
	UpdatedAt      time.Time             `json:"updatedAt"`
}

// NewCourseSummary converts a course model. Topics are counted when the syllabus is loaded.
func NewCourseSummary(c *models.Course) CourseSummary {
	s := CourseSummary{
		ID:             c.ID,
		CourseName:     c.Name,
		CourseCode:     c.Code,
		WeeklySchedule: c.WeeklySchedule,
		SyllabusID:     c.SyllabusID,
		CreatedAt:      c.CreatedAt,
	}
	if c.Syllabus != nil {
		s.TopicsCompleted, s.TopicsTotal = c.Syllabus.Progress()
	}
	return s
}

// NewCourseResponse converts a course model with its syllabus.
func NewCourseResponse(c *models.Course) CourseResponse {
	r := CourseResponse{
		ID:             c.ID,
		CourseName:     c.Name,
		CourseCode:     c.Code,
		FacultyID:      c.FacultyID,
		WeeklySchedule: c.WeeklySchedule,
		CreatedAt:      c.CreatedAt,
		UpdatedAt:      c.UpdatedAt,
	}
	if c.Syllabus != nil {
		s := NewSyllabusResponse(c.Syllabus)
		r.Syllabus = &s
	}
	return r
}
