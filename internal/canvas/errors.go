package canvas

import (
	"fmt"
	"strings"
	"time"
)

// ErrorResponse represents a Canvas API error response. Canvas returns
// a list of error objects, occasionally with a top-level error_report_id.
type ErrorResponse struct {
	Errors        []ErrorItem `json:"errors"`
	ErrorReportID int64       `json:"error_report_id,omitempty"`
}

// ErrorItem is a single error entry within an ErrorResponse.
type ErrorItem struct {
	Message string `json:"message"`
}

// Error implements the error interface
func (e *ErrorResponse) Error() string {
	if len(e.Errors) == 0 {
		return "canvas API error"
	}
	msgs := make([]string, len(e.Errors))
	for i, item := range e.Errors {
		msgs[i] = item.Message
	}
	return "canvas API error: " + strings.Join(msgs, "; ")
}

// APIError wraps an ErrorResponse with additional context
type APIError struct {
	StatusCode int
	Response   *ErrorResponse
	RetryAfter time.Duration
}

// Error implements the error interface
func (e *APIError) Error() string {
	if e.Response != nil && len(e.Response.Errors) > 0 {
		return fmt.Sprintf("canvas API error %d: %s", e.StatusCode, e.Response.Errors[0].Message)
	}
	return fmt.Sprintf("canvas API error %d", e.StatusCode)
}
