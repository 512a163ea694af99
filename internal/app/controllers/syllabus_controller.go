package controllers

import (
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/Neha-Elizabeth-Thomas/HackNet/internal/app/models/dto"
	"github.com/Neha-Elizabeth-Thomas/HackNet/internal/app/services"
	"github.com/Neha-Elizabeth-Thomas/HackNet/internal/middleware"
	"github.com/Neha-Elizabeth-Thomas/HackNet/internal/pkg/apperrors"
	"github.com/Neha-Elizabeth-Thomas/HackNet/internal/pkg/extraction"
)

// MaxDocumentBytes is the largest syllabus accepted, the model's inline data limit.
const MaxDocumentBytes = 20 << 20

// Multipart field names of the uploaded document; "file" is accepted as an alias.
var documentFields = []string{"syllabusFile", "file"}

// SyllabusController handles syllabus upload and topic tracking
type SyllabusController struct {
	syllabusService services.SyllabusService
	logger          zerolog.Logger
}

// NewSyllabusController creates a new SyllabusController
func NewSyllabusController(syllabusService services.SyllabusService, logger zerolog.Logger) *SyllabusController {
	return &SyllabusController{syllabusService: syllabusService, logger: logger}
}

func documentHeader(ctx *gin.Context) (*multipart.FileHeader, error) {
	for _, field := range documentFields {
		fh, err := ctx.FormFile(field)
		if err == nil {
			return fh, nil
		}
		if !errors.Is(err, http.ErrMissingFile) {
			return nil, err
		}
	}
	return nil, apperrors.NewValidationError("syllabusFile", "a syllabus file is required")
}

func readDocument(fh *multipart.FileHeader) (extraction.Document, error) {
	if fh.Size > MaxDocumentBytes {
		return extraction.Document{}, apperrors.NewValidationError("syllabusFile",
			fmt.Sprintf("syllabus file must be at most %d MB", MaxDocumentBytes>>20))
	}

	f, err := fh.Open()
	if err != nil {
		return extraction.Document{}, fmt.Errorf("opening uploaded file: %w", err)
	}
	defer f.Close()

	data, err := io.ReadAll(io.LimitReader(f, MaxDocumentBytes+1))
	if err != nil {
		return extraction.Document{}, fmt.Errorf("reading uploaded file: %w", err)
	}
	if len(data) > MaxDocumentBytes {
		return extraction.Document{}, apperrors.NewValidationError("syllabusFile",
			fmt.Sprintf("syllabus file must be at most %d MB", MaxDocumentBytes>>20))
	}

	return extraction.Document{
		Name:     fh.Filename,
		MimeType: fh.Header.Get("Content-Type"),
		Data:     data,
	}, nil
}

// Upload processes a syllabus document into a course schedule
// @Summary Upload a syllabus
// @Description Extracts topics and target dates from the document with the AI service and creates the course with its syllabus. Nothing is stored when extraction fails.
// @Tags syllabus
// @Accept multipart/form-data
// @Produce json
// @Security BearerAuth
// @Param syllabusFile formData file true "Syllabus document (PDF, text or image)"
// @Param courseName formData string true "Course name"
// @Param courseCode formData string true "Course code"
// @Param startDate formData string true "First teaching day (YYYY-MM-DD)"
// @Param weeklySchedule formData string true "JSON weekday hours, e.g. {\"monday\":2,\"wednesday\":1}"
// @Success 201 {object} dto.APIResponse{data=dto.CourseResponse} "Syllabus processed"
// @Failure 400 {object} dto.ErrorResponse "Invalid request format or validation error"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 502 {object} dto.ErrorResponse "AI extraction failed"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /syllabus/upload [post]
func (c *SyllabusController) Upload(ctx *gin.Context) {
	userID, err := middleware.GetUserID(ctx)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	var form dto.UploadSyllabusForm
	if err := ctx.ShouldBind(&form); err != nil {
		c.logger.Warn().Err(err).Msg("Invalid syllabus upload form")
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(dto.HandleValidationError(err)))
		return
	}

	fh, err := documentHeader(ctx)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	doc, err := readDocument(fh)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	course, err := c.syllabusService.Upload(ctx.Request.Context(), userID, services.UploadInput{
		CourseName:     form.CourseName,
		CourseCode:     form.CourseCode,
		StartDate:      form.StartDate,
		WeeklySchedule: form.WeeklySchedule,
		Document:       doc,
	})
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	resp := dto.NewAPIResponse(course)
	resp.Message = services.UploadSuccessMessage
	ctx.JSON(http.StatusCreated, resp)
}

// UpdateTopicStatus marks a topic complete or incomplete
// @Summary Update topic completion
// @Tags syllabus
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param syllabusId path int true "Syllabus ID"
// @Param topicId path string true "Topic ID"
// @Param request body dto.UpdateTopicStatusRequest true "New status"
// @Success 200 {object} dto.APIResponse{data=dto.SyllabusResponse} "Updated syllabus"
// @Failure 400 {object} dto.ErrorResponse "Invalid request format or validation error"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 403 {object} dto.ErrorResponse "Not the owner"
// @Failure 404 {object} dto.ErrorResponse "Syllabus or topic not found"
// @Router /syllabus/{syllabusId}/topics/{topicId} [put]
func (c *SyllabusController) UpdateTopicStatus(ctx *gin.Context) {
	userID, err := middleware.GetUserID(ctx)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	syllabusID, ok := parseIDParam(ctx, "syllabusId")
	if !ok {
		return
	}

	var req dto.UpdateTopicStatusRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(dto.HandleValidationError(err)))
		return
	}

	syllabus, err := c.syllabusService.UpdateTopicStatus(ctx.Request.Context(), userID, syllabusID, ctx.Param("topicId"), *req.IsCompleted)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewAPIResponse(syllabus))
}
