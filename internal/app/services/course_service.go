package services

import (
	"context"
	"errors"

	"github.com/rs/zerolog"

	"github.com/Neha-Elizabeth-Thomas/HackNet/internal/app/auth"
	"github.com/Neha-Elizabeth-Thomas/HackNet/internal/app/models"
	"github.com/Neha-Elizabeth-Thomas/HackNet/internal/app/models/dto"
	"github.com/Neha-Elizabeth-Thomas/HackNet/internal/pkg/apperrors"
	"github.com/Neha-Elizabeth-Thomas/HackNet/internal/pkg/filestorage"
)

// CourseService defines the interface for course operations
type CourseService interface {
	List(ctx context.Context, userID int64) ([]dto.CourseSummary, error)
	Get(ctx context.Context, userID, courseID int64) (*dto.CourseResponse, error)
	Delete(ctx context.Context, userID, courseID int64) error
}

type courseServiceImpl struct {
	courses      CourseStore
	syllabi      SyllabusStore
	documents    filestorage.DocumentStore
	authzService *auth.AuthorizationService
	logger       zerolog.Logger
}

// NewCourseService creates a new CourseService. documents may be nil when
// source documents are not archived.
func NewCourseService(
	courses CourseStore,
	syllabi SyllabusStore,
	documents filestorage.DocumentStore,
	authzService *auth.AuthorizationService,
	logger zerolog.Logger,
) CourseService {
	return &courseServiceImpl{
		courses:      courses,
		syllabi:      syllabi,
		documents:    documents,
		authzService: authzService,
		logger:       logger,
	}
}

// List returns the user's courses, newest first.
func (s *courseServiceImpl) List(ctx context.Context, userID int64) ([]dto.CourseSummary, error) {
	courses, err := s.courses.ListByFaculty(ctx, userID)
	if err != nil {
		return nil, err
	}

	out := make([]dto.CourseSummary, 0, len(courses))
	for _, c := range courses {
		out = append(out, dto.NewCourseSummary(c))
	}
	return out, nil
}

// Get returns an owned course with its syllabus.
func (s *courseServiceImpl) Get(ctx context.Context, userID, courseID int64) (*dto.CourseResponse, error) {
	course, err := loadOwnedCourse(ctx, s.authzService, s.syllabi, courseID, userID)
	if err != nil {
		return nil, err
	}
	resp := dto.NewCourseResponse(course)
	return &resp, nil
}

// Delete removes an owned course, its syllabus and topics. The archived source
// document is removed afterwards on a best-effort basis.
func (s *courseServiceImpl) Delete(ctx context.Context, userID, courseID int64) error {
	if _, err := s.authzService.AuthorizeCourse(ctx, courseID, userID); err != nil {
		return err
	}

	docKey, err := s.courses.Delete(ctx, courseID)
	if err != nil {
		return err
	}
	s.logger.Info().Int64("courseID", courseID).Int64("userID", userID).Msg("Course deleted")

	if docKey != "" && s.documents != nil {
		if err := s.documents.Delete(ctx, docKey); err != nil {
			s.logger.Warn().Err(err).Str("key", docKey).Msg("Failed to remove syllabus document")
		}
	}
	return nil
}

// loadOwnedCourse authorizes the course and attaches its syllabus when one exists.
func loadOwnedCourse(ctx context.Context, authz *auth.AuthorizationService, syllabi SyllabusStore, courseID, userID int64) (*models.Course, error) {
	course, err := authz.AuthorizeCourse(ctx, courseID, userID)
	if err != nil {
		return nil, err
	}

	syllabus, err := syllabi.GetByCourseID(ctx, courseID)
	switch {
	case err == nil:
		course.Syllabus = syllabus
		course.SyllabusID = &syllabus.ID
	case errors.Is(err, apperrors.ErrResourceNotFound):
	default:
		return nil, err
	}
	return course, nil
}
