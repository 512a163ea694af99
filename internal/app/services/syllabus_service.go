package services

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/Neha-Elizabeth-Thomas/HackNet/internal/app/auth"
	"github.com/Neha-Elizabeth-Thomas/HackNet/internal/app/models"
	"github.com/Neha-Elizabeth-Thomas/HackNet/internal/app/models/dto"
	"github.com/Neha-Elizabeth-Thomas/HackNet/internal/pkg/apperrors"
	"github.com/Neha-Elizabeth-Thomas/HackNet/internal/pkg/extraction"
	"github.com/Neha-Elizabeth-Thomas/HackNet/internal/pkg/filestorage"
	"github.com/Neha-Elizabeth-Thomas/HackNet/internal/pkg/validation"
)

// UploadSuccessMessage is returned with a processed syllabus.
const UploadSuccessMessage = "Syllabus processed and schedule created successfully!"

// UploadInput is a syllabus upload as received from the client.
type UploadInput struct {
	CourseName     string
	CourseCode     string
	StartDate      string
	WeeklySchedule string
	Document       extraction.Document
}

// SyllabusService defines the interface for syllabus operations
type SyllabusService interface {
	Upload(ctx context.Context, userID int64, in UploadInput) (*dto.CourseResponse, error)
	UpdateTopicStatus(ctx context.Context, userID, syllabusID int64, topicID string, completed bool) (*dto.SyllabusResponse, error)
}

type syllabusServiceImpl struct {
	courses      CourseStore
	syllabi      SyllabusStore
	extractor    TopicExtractor
	documents    filestorage.DocumentStore
	authzService *auth.AuthorizationService
	logger       zerolog.Logger
}

// NewSyllabusService creates a new SyllabusService. documents may be nil.
func NewSyllabusService(
	courses CourseStore,
	syllabi SyllabusStore,
	extractor TopicExtractor,
	documents filestorage.DocumentStore,
	authzService *auth.AuthorizationService,
	logger zerolog.Logger,
) SyllabusService {
	return &syllabusServiceImpl{
		courses:      courses,
		syllabi:      syllabi,
		extractor:    extractor,
		documents:    documents,
		authzService: authzService,
		logger:       logger,
	}
}

type validatedUpload struct {
	name, code string
	start      models.Date
	schedule   models.WeeklySchedule
	doc        extraction.Document
}

func validateUpload(in UploadInput) (*validatedUpload, error) {
	v := &validatedUpload{
		name: strings.TrimSpace(in.CourseName),
		code: strings.TrimSpace(in.CourseCode),
		doc:  in.Document,
	}
	if v.name == "" {
		return nil, apperrors.NewValidationError("courseName", "courseName is required")
	}
	if v.code == "" {
		return nil, apperrors.NewValidationError("courseCode", "courseCode is required")
	}

	start, err := models.ParseDate(strings.TrimSpace(in.StartDate))
	if err != nil {
		return nil, apperrors.NewValidationError("startDate", "startDate must be a date in YYYY-MM-DD format")
	}
	v.start = start

	schedule, err := validation.ParseWeeklySchedule(in.WeeklySchedule)
	if err != nil {
		return nil, apperrors.NewValidationError("weeklySchedule", err.Error())
	}
	v.schedule = schedule

	if len(v.doc.Data) == 0 {
		return nil, apperrors.NewValidationError("syllabusFile", "a syllabus file is required")
	}
	if v.doc.MimeType == "" || v.doc.MimeType == "application/octet-stream" {
		v.doc.MimeType = http.DetectContentType(v.doc.Data)
	}
	return v, nil
}

// extractionError maps extractor failures to client-facing upstream errors.
func extractionError(err error) error {
	switch {
	case errors.Is(err, extraction.ErrTimeout):
		return apperrors.NewExternalServiceError("The AI service took too long to process the syllabus", err)
	case errors.Is(err, extraction.ErrNoTopics):
		return apperrors.NewExternalServiceError("No topics could be extracted from the syllabus", err)
	case errors.Is(err, extraction.ErrMalformedResponse):
		return apperrors.NewExternalServiceError("The AI service returned an unreadable schedule", err)
	default:
		return apperrors.NewExternalServiceError("Failed to process the syllabus with the AI service", err)
	}
}

// Upload validates the input, extracts topics and persists course, syllabus and
// topics together. Nothing is persisted when extraction fails.
func (s *syllabusServiceImpl) Upload(ctx context.Context, userID int64, in UploadInput) (*dto.CourseResponse, error) {
	v, err := validateUpload(in)
	if err != nil {
		return nil, err
	}

	topics, err := s.extractor.Extract(ctx, extraction.Request{
		CourseName: v.name,
		CourseCode: v.code,
		StartDate:  v.start,
		Schedule:   v.schedule,
		Document:   v.doc,
	})
	if err != nil {
		s.logger.Error().Err(err).Int64("userID", userID).Str("courseCode", v.code).Msg("Syllabus extraction failed")
		return nil, extractionError(err)
	}

	var docKey string
	if s.documents != nil {
		docKey, err = s.documents.Save(ctx, v.doc.Name, v.doc.MimeType, v.doc.Data)
		if err != nil {
			s.logger.Warn().Err(err).Str("document", v.doc.Name).Msg("Failed to archive syllabus document, continuing without it")
			docKey = ""
		}
	}

	course := &models.Course{
		Name:           v.name,
		Code:           v.code,
		FacultyID:      userID,
		WeeklySchedule: v.schedule,
	}
	syllabus := &models.Syllabus{
		SourceDocument: docKey,
		Topics:         topics,
	}

	if err := s.courses.CreateWithSyllabus(ctx, course, syllabus); err != nil {
		s.logger.Error().Err(err).Int64("userID", userID).Msg("Failed to save course and syllabus")
		if docKey != "" {
			// The request context may already be gone.
			cleanupCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), 10*time.Second)
			defer cancel()
			if delErr := s.documents.Delete(cleanupCtx, docKey); delErr != nil {
				s.logger.Warn().Err(delErr).Str("key", docKey).Msg("Failed to remove orphaned syllabus document")
			}
		}
		return nil, err
	}

	s.logger.Info().
		Int64("courseID", course.ID).
		Int64("syllabusID", syllabus.ID).
		Int("topics", len(topics)).
		Msg("Syllabus uploaded")

	resp := dto.NewCourseResponse(course)
	return &resp, nil
}

// UpdateTopicStatus sets the completion flag of one topic and returns the
// syllabus as stored afterwards.
func (s *syllabusServiceImpl) UpdateTopicStatus(ctx context.Context, userID, syllabusID int64, topicID string, completed bool) (*dto.SyllabusResponse, error) {
	syllabus, _, err := s.authzService.AuthorizeSyllabus(ctx, syllabusID, userID)
	if err != nil {
		return nil, err
	}

	if _, ok := syllabus.FindTopic(topicID); !ok {
		return nil, apperrors.ErrTopicNotFound
	}

	if err := s.syllabi.SetTopicCompletion(ctx, syllabusID, topicID, completed); err != nil {
		return nil, err
	}

	updated, err := s.syllabi.GetByID(ctx, syllabusID)
	if err != nil {
		return nil, err
	}

	s.logger.Info().
		Int64("syllabusID", syllabusID).
		Str("topicID", topicID).
		Bool("isCompleted", completed).
		Msg("Topic status updated")

	resp := dto.NewSyllabusResponse(updated)
	return &resp, nil
}
