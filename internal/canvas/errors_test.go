package canvas

import (
	"net/http"
	"strings"
	"testing"
)

func TestErrorResponse_Error(t *testing.T) {
	tests := []struct {
		name string
		resp ErrorResponse
		want string
	}{
		{
			name: "single message",
			resp: errorBody("Invalid access token."),
			want: "canvas API error: Invalid access token.",
		},
		{
			name: "multiple messages",
			resp: ErrorResponse{Errors: []ErrorItem{{Message: "first"}, {Message: "second"}}},
			want: "canvas API error: first; second",
		},
		{
			name: "no messages",
			resp: ErrorResponse{},
			want: "canvas API error",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.resp.Error(); got != tt.want {
				t.Errorf("Error() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestAPIError_Error(t *testing.T) {
	resp := errorBody("The specified resource does not exist.")
	err := &APIError{StatusCode: 404, Response: &resp}
	if !strings.Contains(err.Error(), "404") || !strings.Contains(err.Error(), "does not exist") {
		t.Errorf("unexpected message: %q", err.Error())
	}

	bare := &APIError{StatusCode: 502}
	if bare.Error() != "canvas API error 502" {
		t.Errorf("unexpected bare message: %q", bare.Error())
	}
}

func TestIsRetryable(t *testing.T) {
	tests := []struct {
		status int
		want   bool
	}{
		{status: http.StatusTooManyRequests, want: true},
		{status: http.StatusInternalServerError, want: true},
		{status: http.StatusBadGateway, want: true},
		{status: http.StatusBadRequest, want: false},
		{status: http.StatusUnauthorized, want: false},
		{status: http.StatusNotFound, want: false},
	}
	for _, tt := range tests {
		if got := isRetryable(tt.status); got != tt.want {
			t.Errorf("isRetryable(%d) = %v, want %v", tt.status, got, tt.want)
		}
	}
}

func TestParseRetryAfter(t *testing.T) {
	if got := parseRetryAfter("3"); got.Seconds() != 3 {
		t.Errorf("parseRetryAfter(3) = %v, want 3s", got)
	}
	if got := parseRetryAfter(""); got != 0 {
		t.Errorf("parseRetryAfter(empty) = %v, want 0", got)
	}
	if got := parseRetryAfter("garbage"); got != 0 {
		t.Errorf("parseRetryAfter(garbage) = %v, want 0", got)
	}
}
