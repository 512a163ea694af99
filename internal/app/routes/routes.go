package routes

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/Neha-Elizabeth-Thomas/HackNet/internal/app/controllers"
	"github.com/Neha-Elizabeth-Thomas/HackNet/internal/app/models/dto"
	"github.com/Neha-Elizabeth-Thomas/HackNet/internal/middleware"
)

// HealthChecker reports whether a backing dependency is reachable.
type HealthChecker interface {
	Health(ctx context.Context) error
}

func healthHandler(checker HealthChecker) gin.HandlerFunc {
	return func(c *gin.Context) {
		if checker != nil {
			ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
			defer cancel()
			if err := checker.Health(ctx); err != nil {
				c.JSON(http.StatusServiceUnavailable, dto.NewAPIErrorResponse(
					dto.NewErrorDetail(dto.ErrorCodeDatabaseError, "Database unavailable")))
				return
			}
		}
		c.JSON(http.StatusOK, gin.H{"status": "ok", "time": time.Now().UTC()})
	}
}

// SetupRouter configures all application routes under /api. A nil health
// checker makes /api/health a plain liveness check.
func SetupRouter(
	router *gin.Engine,
	authController *controllers.AuthController,
	courseController *controllers.CourseController,
	syllabusController *controllers.SyllabusController,
	authMiddleware *middleware.AuthMiddleware,
	health HealthChecker,
) {
	api := router.Group("/api")

	api.GET("/health", healthHandler(health))

	// --- Public Auth routes ---
	auth := api.Group("/auth")
	{
		auth.POST("/register", authController.Register)
		auth.POST("/login", authController.Login)
		auth.POST("/logout", authController.Logout)
	}

	// --- Authenticated Routes Group ---
	authenticated := api.Group("")
	authenticated.Use(authMiddleware.JWTAuth())
	{
		authenticated.GET("/auth/profile", authController.Profile)

		courses := authenticated.Group("/courses")
		{
			courses.GET("", courseController.List)
			courses.GET("/:id", courseController.Get)
			courses.DELETE("/:id", courseController.Delete)
			courses.GET("/:id/calendar.ics", courseController.ExportCalendar)
			courses.GET("/:id/export.xlsx", courseController.ExportWorkbook)
		}

		syllabus := authenticated.Group("/syllabus")
		{
			syllabus.POST("/upload", syllabusController.Upload)
			syllabus.PUT("/:syllabusId/topics/:topicId", syllabusController.UpdateTopicStatus)
		}
	}
}
