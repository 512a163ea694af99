package services

import (
	"bytes"
	"context"
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/Neha-Elizabeth-Thomas/HackNet/internal/app/auth"
	"github.com/Neha-Elizabeth-Thomas/HackNet/internal/pkg/apperrors"
	"github.com/Neha-Elizabeth-Thomas/HackNet/internal/pkg/export"
)

// ExportService renders owned courses as downloadable files.
type ExportService interface {
	Calendar(ctx context.Context, userID, courseID int64) (filename string, content string, err error)
	Workbook(ctx context.Context, userID, courseID int64) (filename string, content *bytes.Buffer, err error)
}

type exportServiceImpl struct {
	syllabi      SyllabusStore
	authzService *auth.AuthorizationService
	now          func() time.Time
}

// NewExportService creates a new ExportService
func NewExportService(syllabi SyllabusStore, authzService *auth.AuthorizationService) ExportService {
	return &exportServiceImpl{syllabi: syllabi, authzService: authzService, now: time.Now}
}

var unsafeFilename = regexp.MustCompile(`[^A-Za-z0-9_-]+`)

func exportFilename(code, ext string) string {
	base := strings.Trim(unsafeFilename.ReplaceAllString(code, "-"), "-")
	if base == "" {
		base = "syllabus"
	}
	return base + ext
}

// Calendar returns the course's topics as an iCalendar document.
func (s *exportServiceImpl) Calendar(ctx context.Context, userID, courseID int64) (string, string, error) {
	course, err := loadOwnedCourse(ctx, s.authzService, s.syllabi, courseID, userID)
	if err != nil {
		return "", "", err
	}
	if course.Syllabus == nil {
		return "", "", apperrors.ErrSyllabusNotFound
	}

	content, err := export.Calendar(course, s.now())
	if err != nil {
		return "", "", fmt.Errorf("rendering calendar: %w", err)
	}
	return exportFilename(course.Code, ".ics"), content, nil
}

// Workbook returns the course's topics as an xlsx spreadsheet.
func (s *exportServiceImpl) Workbook(ctx context.Context, userID, courseID int64) (string, *bytes.Buffer, error) {
	course, err := loadOwnedCourse(ctx, s.authzService, s.syllabi, courseID, userID)
	if err != nil {
		return "", nil, err
	}
	if course.Syllabus == nil {
		return "", nil, apperrors.ErrSyllabusNotFound
	}

	buf, err := export.Workbook(course)
	if err != nil {
		return "", nil, fmt.Errorf("rendering workbook: %w", err)
	}
	return exportFilename(course.Code, ".xlsx"), buf, nil
}
