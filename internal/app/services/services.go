// Package services holds the business logic between controllers and repositories.
//
// Services defined in this package:
//   - AuthService: faculty registration, login and profile
//   - CourseService: listing, reading and deleting owned courses
//   - SyllabusService: syllabus upload and topic completion
//   - ExportService: calendar and spreadsheet exports of a course
//   - DeadlineService: the daily overdue/upcoming reminder sweep
package services

import (
	"context"

	"github.com/Neha-Elizabeth-Thomas/HackNet/internal/app/models"
	"github.com/Neha-Elizabeth-Thomas/HackNet/internal/pkg/deadline"
	"github.com/Neha-Elizabeth-Thomas/HackNet/internal/pkg/email"
	"github.com/Neha-Elizabeth-Thomas/HackNet/internal/pkg/extraction"
)

// UserStore is the user persistence used by services.
type UserStore interface {
	Create(ctx context.Context, user *models.User) error
	GetByID(ctx context.Context, id int64) (*models.User, error)
	GetByEmail(ctx context.Context, email string) (*models.User, error)
}

// CourseStore is the course persistence used by services.
type CourseStore interface {
	ListByFaculty(ctx context.Context, facultyID int64) ([]*models.Course, error)
	GetByID(ctx context.Context, id int64) (*models.Course, error)
	CreateWithSyllabus(ctx context.Context, course *models.Course, syllabus *models.Syllabus) error
	Delete(ctx context.Context, id int64) (string, error)
}

// SyllabusStore is the syllabus persistence used by services.
type SyllabusStore interface {
	GetByID(ctx context.Context, id int64) (*models.Syllabus, error)
	GetByCourseID(ctx context.Context, courseID int64) (*models.Syllabus, error)
	ListOpenIDs(ctx context.Context) ([]int64, error)
	SetTopicCompletion(ctx context.Context, syllabusID int64, topicID string, completed bool) error
}

// TopicExtractor turns a syllabus document into dated topics.
type TopicExtractor interface {
	Extract(ctx context.Context, req extraction.Request) ([]models.Topic, error)
}

// ReminderNotifier sends one reminder email.
type ReminderNotifier interface {
	Notify(ctx context.Context, to email.Address, course *models.Course, topics []models.Topic, kind deadline.Status) error
}
