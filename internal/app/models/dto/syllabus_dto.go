package dto

import (
	"time"

	"github.com/Neha-Elizabeth-Thomas/HackNet/internal/app/models"
)

// UploadSyllabusForm is the multipart form of a syllabus upload. The file itself
// is read separately from the "syllabusFile" part.
type UploadSyllabusForm struct {
	CourseName     string `form:"courseName" binding:"required,max=200"`
	CourseCode     string `form:"courseCode" binding:"required,max=50"`
	StartDate      string `form:"startDate" binding:"required,isodate"`
	WeeklySchedule string `form:"weeklySchedule" binding:"required"`
}

// UpdateTopicStatusRequest toggles completion of one topic.
type UpdateTopicStatusRequest struct {
	IsCompleted *bool `json:"isCompleted" binding:"required"`
}

// TopicResponse is a topic as returned to clients.
type TopicResponse struct {
	TopicID      string `json:"topicId" example:"3f1c2a4e-8a0b-4d55-9c1e-2b7e5f0f9a11"`
	Module       string `json:"module" example:"Module 1: Foundations"`
	Title        string `json:"title" example:"Asymptotic notation"`
	Description  string `json:"description" example:"Asymptotic notation"`
	LectureHours int    `json:"lectureHours" example:"2"`
	TargetDate   string `json:"targetDate" example:"2024-01-17"`
	IsCompleted  bool   `json:"isCompleted" example:"false"`
}

// SyllabusResponse is a syllabus with its ordered topics.
type SyllabusResponse struct {
	ID        int64           `json:"id" example:"4"`
	CourseID  int64           `json:"courseId" example:"12"`
	Topics    []TopicResponse `json:"topics"`
	CreatedAt time.Time       `json:"createdAt"`
	UpdatedAt time.Time       `json:"updatedAt"`
}

// NewSyllabusResponse converts a syllabus model.
func NewSyllabusResponse(s *models.Syllabus) SyllabusResponse {
	topics := make([]TopicResponse, 0, len(s.Topics))
	for _, t := range s.Topics {
		topics = append(topics, TopicResponse{
			TopicID:      t.TopicID,
			Module:       t.Module,
			Title:        t.Title,
			Description:  t.Description,
			LectureHours: t.LectureHours,
			TargetDate:   t.TargetDate.String(),
			IsCompleted:  t.IsCompleted,
		})
	}
	return SyllabusResponse{
		ID:        s.ID,
		CourseID:  s.CourseID,
		Topics:    topics,
		CreatedAt: s.CreatedAt,
		UpdatedAt: s.UpdatedAt,
	}
}
