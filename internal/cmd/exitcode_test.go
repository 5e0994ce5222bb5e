package cmd

import (
	"context"
	"testing"

	"github.com/sageleaf-labs/canvas-cli/internal/canvas"
	clierrors "github.com/sageleaf-labs/canvas-cli/internal/errors"
)

func TestExitCode(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"nil", nil, ExitOK},
		{"canceled", context.Canceled, ExitCanceled},
		{"user", clierrors.NewUserError("bad", "hint"), ExitUser},
		{"validation", &clierrors.ValidationError{Field: "x", Message: "bad"}, ExitUser},
		{"auth", &clierrors.AuthError{Reason: "no token"}, ExitAuth},
		{"rate_limit", &clierrors.RateLimitError{}, ExitRateLimit},
		{"api_404", &canvas.APIError{StatusCode: 404}, ExitNotFound},
		{"api_429", &canvas.APIError{StatusCode: 429}, ExitRateLimit},
		{"api_401", &canvas.APIError{StatusCode: 401}, ExitAuth},
		{"api_403", &canvas.APIError{StatusCode: 403}, ExitAuth},
		{"api_400", &canvas.APIError{StatusCode: 400}, ExitUser},
		{"api_500", &canvas.APIError{StatusCode: 500}, ExitSystem},
		{"auth_required", clierrors.AuthRequiredError(nil), ExitAuth},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ExitCode(tt.err); got != tt.want {
				t.Fatalf("ExitCode() = %d, want %d", got, tt.want)
			}
		})
	}
}
