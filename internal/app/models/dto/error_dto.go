package dto

import "time"

// ErrorCode is the machine-readable error identifier returned to clients.
type ErrorCode string

const (
	ErrorCodeInvalidCredentials ErrorCode = "AUTH_001"
	ErrorCodeInvalidToken       ErrorCode = "AUTH_005"
	ErrorCodeExpiredToken       ErrorCode = "AUTH_006"
	ErrorCodeUnauthorized       ErrorCode = "AUTH_008"
	ErrorCodeForbidden          ErrorCode = "AUTH_009"

	ErrorCodeResourceNotFound      ErrorCode = "RES_001"
	ErrorCodeResourceAlreadyExists ErrorCode = "RES_002"

	ErrorCodeValidationFailed ErrorCode = "VAL_001"
	ErrorCodeInvalidRequest   ErrorCode = "VAL_002"

	ErrorCodeInternalServer       ErrorCode = "SRV_001"
	ErrorCodeDatabaseError        ErrorCode = "SRV_002"
	ErrorCodeExternalServiceError ErrorCode = "SRV_003"
)

// ErrorDetail describes one failed request. Details carries per-field
// validation messages; nothing internal is ever placed here.
type ErrorDetail struct {
	Code    ErrorCode   `json:"code" example:"RES_001"`
	Message string      `json:"message" example:"Course not found"`
	Field   string      `json:"field,omitempty" example:"startDate"`
	Details interface{} `json:"details,omitempty"`
}

// ErrorResponse is the envelope used by handlers that fail before reaching a service.
type ErrorResponse struct {
	Success   bool         `json:"success" example:"false"`
	Error     *ErrorDetail `json:"error"`
	Timestamp time.Time    `json:"timestamp" example:"2025-04-23T12:01:05.123Z"`
}

func NewErrorDetail(code ErrorCode, message string) *ErrorDetail {
	return &ErrorDetail{Code: code, Message: message}
}

func (e *ErrorDetail) WithField(field string) *ErrorDetail {
	e.Field = field
	return e
}

func (e *ErrorDetail) WithDetails(details interface{}) *ErrorDetail {
	e.Details = details
	return e
}

// NewErrorResponse wraps detail in a failure envelope.
func NewErrorResponse(detail *ErrorDetail) *ErrorResponse {
	return &ErrorResponse{Success: false, Error: detail, Timestamp: time.Now()}
}
