package dto

import "time"

// APIResponse is the envelope of every JSON response.
type APIResponse struct {
	Success   bool         `json:"success" example:"true"`
	Message   string       `json:"message,omitempty"`
	Data      interface{}  `json:"data,omitempty"`
	Error     *ErrorDetail `json:"error,omitempty"`
	Timestamp time.Time    `json:"timestamp" example:"2025-04-23T12:01:05.123Z"`
}

// NewAPIResponse wraps data in a success envelope.
func NewAPIResponse(data interface{}) APIResponse {
	return APIResponse{Success: true, Data: data, Timestamp: time.Now()}
}

// NewMessageResponse is a success envelope carrying only a message.
func NewMessageResponse(message string) APIResponse {
	return APIResponse{Success: true, Message: message, Timestamp: time.Now()}
}

// NewAPIErrorResponse wraps an error detail.
func NewAPIErrorResponse(detail *ErrorDetail) APIResponse {
	return APIResponse{Success: false, Error: detail, Timestamp: time.Now()}
}
