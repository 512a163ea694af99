package controllers

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/Neha-Elizabeth-Thomas/HackNet/internal/app/models/dto"
	"github.com/Neha-Elizabeth-Thomas/HackNet/internal/app/services"
	"github.com/Neha-Elizabeth-Thomas/HackNet/internal/middleware"
)

const (
	contentTypeICS  = "text/calendar; charset=utf-8"
	contentTypeXLSX = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
)

// CourseController handles course operations for the authenticated faculty
type CourseController struct {
	courseService services.CourseService
	exportService services.ExportService
	logger        zerolog.Logger
}

// NewCourseController creates a new CourseController
func NewCourseController(courseService services.CourseService, exportService services.ExportService, logger zerolog.Logger) *CourseController {
	return &CourseController{
		courseService: courseService,
		exportService: exportService,
		logger:        logger,
	}
}

// List returns the caller's courses
// @Summary List my courses
// @Description Courses owned by the caller, newest first, with topic progress counts.
// @Tags courses
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.APIResponse{data=[]dto.CourseSummary} "Courses"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /courses [get]
func (c *CourseController) List(ctx *gin.Context) {
	userID, err := middleware.GetUserID(ctx)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	courses, err := c.courseService.List(ctx.Request.Context(), userID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewAPIResponse(courses))
}

// Get returns one course with its syllabus
// @Summary Get a course
// @Tags courses
// @Produce json
// @Security BearerAuth
// @Param id path int true "Course ID"
// @Success 200 {object} dto.APIResponse{data=dto.CourseResponse} "Course with syllabus"
// @Failure 400 {object} dto.ErrorResponse "Invalid ID"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 403 {object} dto.ErrorResponse "Not the owner"
// @Failure 404 {object} dto.ErrorResponse "Course not found"
// @Router /courses/{id} [get]
func (c *CourseController) Get(ctx *gin.Context) {
	userID, err := middleware.GetUserID(ctx)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	courseID, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	course, err := c.courseService.Get(ctx.Request.Context(), userID, courseID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewAPIResponse(course))
}

// Delete removes a course with its syllabus
// @Summary Delete a course
// @Tags courses
// @Produce json
// @Security BearerAuth
// @Param id path int true "Course ID"
// @Success 200 {object} dto.APIResponse "Course deleted"
// @Failure 400 {object} dto.ErrorResponse "Invalid ID"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 403 {object} dto.ErrorResponse "Not the owner"
// @Failure 404 {object} dto.ErrorResponse "Course not found"
// @Router /courses/{id} [delete]
func (c *CourseController) Delete(ctx *gin.Context) {
	userID, err := middleware.GetUserID(ctx)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	courseID, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	if err := c.courseService.Delete(ctx.Request.Context(), userID, courseID); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewMessageResponse("Course deleted successfully"))
}

// ExportCalendar downloads the schedule as iCalendar
// @Summary Export course schedule as iCalendar
// @Tags courses
// @Produce text/calendar
// @Security BearerAuth
// @Param id path int true "Course ID"
// @Success 200 {file} file "calendar.ics"
// @Failure 403 {object} dto.ErrorResponse "Not the owner"
// @Failure 404 {object} dto.ErrorResponse "Course or syllabus not found"
// @Router /courses/{id}/calendar.ics [get]
func (c *CourseController) ExportCalendar(ctx *gin.Context) {
	userID, err := middleware.GetUserID(ctx)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	courseID, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	filename, content, err := c.exportService.Calendar(ctx.Request.Context(), userID, courseID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	ctx.Data(http.StatusOK, contentTypeICS, []byte(content))
}

// ExportWorkbook downloads the schedule as a spreadsheet
// @Summary Export course schedule as xlsx
// @Tags courses
// @Produce application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Security BearerAuth
// @Param id path int true "Course ID"
// @Success 200 {file} file "schedule.xlsx"
// @Failure 403 {object} dto.ErrorResponse "Not the owner"
// @Failure 404 {object} dto.ErrorResponse "Course or syllabus not found"
// @Router /courses/{id}/export.xlsx [get]
func (c *CourseController) ExportWorkbook(ctx *gin.Context) {
	userID, err := middleware.GetUserID(ctx)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	courseID, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	filename, buf, err := c.exportService.Workbook(ctx.Request.Context(), userID, courseID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	ctx.Data(http.StatusOK, contentTypeXLSX, buf.Bytes())
}
