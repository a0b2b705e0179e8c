package httpclient

import (
	"errors"
	"fmt"
	"strings"
)

// APIError is returned by Send when the server answers with a non-2xx status
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	msg := strings.TrimSpace(e.Message)
	if msg == "" {
		return fmt.Sprintf("API error (status %d)", e.StatusCode)
	}
	return fmt.Sprintf("API error (status %d): %s", e.StatusCode, msg)
}

// NewAPIError creates a new APIError with the given status code and message
func NewAPIError(statusCode int, message string) error {
	return &APIError{
		StatusCode: statusCode,
		Message:    message,
	}
}

// IsClientError reports whether err is a 4xx APIError.
// Those point at bad input (an unknown ticket id, a bad role) rather than an unhealthy server.
func IsClientError(err error) bool {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr.StatusCode >= 400 && apiErr.StatusCode < 500
	}
	return false
}
