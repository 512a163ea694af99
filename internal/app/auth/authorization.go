// Package auth holds ownership checks shared by the course and syllabus services.
package auth

import (
	"context"
	"errors"

	"github.com/Neha-Elizabeth-Thomas/HackNet/internal/app/models"
	"github.com/Neha-Elizabeth-Thomas/HackNet/internal/pkg/apperrors"
	"github.com/Neha-Elizabeth-Thomas/HackNet/internal/pkg/logger"
)

// CourseReader loads a course by id.
type CourseReader interface {
	GetByID(ctx context.Context, id int64) (*models.Course, error)
}

// SyllabusReader loads a syllabus by id.
type SyllabusReader interface {
	GetByID(ctx context.Context, id int64) (*models.Syllabus, error)
}

// Forbidden errors returned by the checks below
var (
	ErrNotCourseOwner   = apperrors.NewForbiddenError("you do not own this course")
	ErrNotSyllabusOwner = apperrors.NewForbiddenError("you do not own this syllabus")
)

// AuthorizationService handles authorization operations
type AuthorizationService struct {
	courses CourseReader
	syllabi SyllabusReader
}

// NewAuthorizationService creates a new AuthorizationService
func NewAuthorizationService(courses CourseReader, syllabi SyllabusReader) *AuthorizationService {
	return &AuthorizationService{courses: courses, syllabi: syllabi}
}

// AuthorizeCourse loads a course and checks userID owns it. A missing course is
// NotFound.
func (s *AuthorizationService) AuthorizeCourse(ctx context.Context, courseID, userID int64) (*models.Course, error) {
	course, err := s.courses.GetByID(ctx, courseID)
	if err != nil {
		return nil, err
	}
	if !course.OwnedBy(userID) {
		logger.Warn().Int64("courseID", courseID).Int64("userID", userID).Msg("Course access denied")
		return nil, ErrNotCourseOwner
	}
	return course, nil
}

// AuthorizeSyllabus loads a syllabus and its course and checks userID owns the
// course. A missing syllabus is NotFound; a missing course is Forbidden so that
// nothing about the syllabus leaks.
func (s *AuthorizationService) AuthorizeSyllabus(ctx context.Context, syllabusID, userID int64) (*models.Syllabus, *models.Course, error) {
	syllabus, err := s.syllabi.GetByID(ctx, syllabusID)
	if err != nil {
		return nil, nil, err
	}

	course, err := s.courses.GetByID(ctx, syllabus.CourseID)
	if err != nil {
		if errors.Is(err, apperrors.ErrResourceNotFound) {
			return nil, nil, ErrNotSyllabusOwner
		}
		return nil, nil, err
	}
	if !course.OwnedBy(userID) {
		logger.Warn().Int64("syllabusID", syllabusID).Int64("userID", userID).Msg("Syllabus access denied")
		return nil, nil, ErrNotSyllabusOwner
	}
	return syllabus, course, nil
}
