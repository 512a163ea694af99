// Package apperrors defines the error vocabulary shared by services and the HTTP layer.
package apperrors

import "errors"

// Sentinel categories. The HTTP layer maps each one to a status code.
var (
	ErrResourceNotFound      = errors.New("resource not found")
	ErrResourceAlreadyExists = errors.New("resource already exists")

	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrTokenExpired       = errors.New("token expired")
	ErrTokenInvalid       = errors.New("invalid token")
	ErrUnauthenticated    = errors.New("authentication required")

	ErrPermissionDenied = errors.New("permission denied")
	ErrValidationFailed = errors.New("validation failed")

	ErrUserNotFound       = errors.New("user not found")
	ErrEmailAlreadyExists = errors.New("email already exists")

	// Upstream dependencies (AI model, mail transport, object storage)
	ErrExternalService = errors.New("external service failure")
)

// Course and syllabus errors
var (
	ErrCourseNotFound   = NewResourceNotFoundError("course not found")
	ErrSyllabusNotFound = NewResourceNotFoundError("syllabus not found")
	ErrTopicNotFound    = NewResourceNotFoundError("topic not found")
)

// CustomError attaches a client-facing message, and optionally the offending
// input field, to one of the sentinel categories.
type CustomError struct {
	Err     error
	Message string
	Field   string
}

func (e *CustomError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	if e.Err != nil {
		return e.Err.Error()
	}
	return "unknown error"
}

func (e *CustomError) Unwrap() error {
	return e.Err
}

// NewResourceNotFoundError creates a not-found error with a specific message
func NewResourceNotFoundError(message string) error {
	return &CustomError{Err: ErrResourceNotFound, Message: message}
}

// NewForbiddenError creates a permission error with a specific message
func NewForbiddenError(message string) error {
	return &CustomError{Err: ErrPermissionDenied, Message: message}
}

// NewValidationError creates a validation error carrying the offending field.
func NewValidationError(field, message string) error {
	return &CustomError{Err: ErrValidationFailed, Message: message, Field: field}
}

// NewExternalServiceError wraps an upstream failure. The cause is kept for logs
// and errors.Is checks; Message is what clients see.
func NewExternalServiceError(message string, cause error) error {
	return &CustomError{Err: errors.Join(ErrExternalService, cause), Message: message}
}

// AsCustom extracts the outermost CustomError in err's chain.
func AsCustom(err error) (*CustomError, bool) {
	var ce *CustomError
	if errors.As(err, &ce) {
		return ce, true
	}
	return nil, false
}
