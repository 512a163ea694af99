package middleware

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Neha-Elizabeth-Thomas/HackNet/internal/app/models/dto"
	"github.com/Neha-Elizabeth-Thomas/HackNet/internal/pkg/apperrors"
	"github.com/Neha-Elizabeth-Thomas/HackNet/internal/pkg/logger"
)

// errorMapping is one row of the error to response table.
type errorMapping struct {
	target  error
	status  int
	code    dto.ErrorCode
	message string
}

// Order matters: upstream failures wrap arbitrary causes and are matched first.
var errorMappings = []errorMapping{
	{apperrors.ErrExternalService, http.StatusBadGateway, dto.ErrorCodeExternalServiceError, "Upstream service failed"},
	{apperrors.ErrValidationFailed, http.StatusBadRequest, dto.ErrorCodeValidationFailed, "Validation failed"},
	{apperrors.ErrInvalidCredentials, http.StatusUnauthorized, dto.ErrorCodeInvalidCredentials, "Invalid email or password"},
	{apperrors.ErrTokenExpired, http.StatusUnauthorized, dto.ErrorCodeExpiredToken, "Token expired"},
	{apperrors.ErrTokenInvalid, http.StatusUnauthorized, dto.ErrorCodeInvalidToken, "Invalid token"},
	{apperrors.ErrUnauthenticated, http.StatusUnauthorized, dto.ErrorCodeUnauthorized, "Authentication required"},
	{apperrors.ErrPermissionDenied, http.StatusForbidden, dto.ErrorCodeForbidden, "Permission denied"},
	{apperrors.ErrUserNotFound, http.StatusNotFound, dto.ErrorCodeResourceNotFound, "User not found"},
	{apperrors.ErrResourceNotFound, http.StatusNotFound, dto.ErrorCodeResourceNotFound, "Resource not found"},
	{apperrors.ErrEmailAlreadyExists, http.StatusConflict, dto.ErrorCodeResourceAlreadyExists, "Email already exists"},
	{apperrors.ErrResourceAlreadyExists, http.StatusConflict, dto.ErrorCodeResourceAlreadyExists, "Resource already exists"},
}

// ErrorDetailFor maps an error to its HTTP status and client-facing detail.
// Internal causes never reach the client.
func ErrorDetailFor(err error) (int, *dto.ErrorDetail) {
	for _, m := range errorMappings {
		if !errors.Is(err, m.target) {
			continue
		}
		detail := dto.NewErrorDetail(m.code, m.message)
		if ce, ok := apperrors.AsCustom(err); ok {
			if ce.Message != "" {
				detail.Message = ce.Message
			}
			if ce.Field != "" {
				detail = detail.WithField(ce.Field)
			}
		}
		return m.status, detail
	}
	return http.StatusInternalServerError, dto.NewErrorDetail(dto.ErrorCodeInternalServer, "Internal server error")
}

// HandleAPIError handles common API errors and returns appropriate responses
func HandleAPIError(c *gin.Context, err error) {
	status, detail := ErrorDetailFor(err)

	event := logger.Warn()
	if status >= http.StatusInternalServerError {
		event = logger.Error()
	}
	event.Err(err).
		Str("method", c.Request.Method).
		Str("path", c.FullPath()).
		Int("status", status).
		Str("requestID", c.GetString(ContextRequestID)).
		Msg("Request failed")

	c.JSON(status, dto.NewAPIErrorResponse(detail))
}
