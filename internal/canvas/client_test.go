package canvas

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"
)

func errorBody(message string) ErrorResponse {
	return ErrorResponse{Errors: []ErrorItem{{Message: message}}}
}

func TestDoRequest_AuthHeader(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := r.Header.Get("Authorization"); got != "Bearer test-token" {
			t.Errorf("expected bearer token header, got %q", got)
		}
		if !strings.HasPrefix(r.URL.Path, "/api/v1/") {
			t.Errorf("expected /api/v1 prefix, got %s", r.URL.Path)
		}
		w.WriteHeader(http.StatusOK)
		_ = json.NewEncoder(w).Encode(map[string]string{"status": "ok"})
	}))
	defer server.Close()

	client := NewClient(server.URL, "test-token")
	resp, err := client.doRequest(context.Background(), http.MethodGet, "/users/self", nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	_ = resp.Body.Close()
}

func TestDoRequest_RetryOn500(t *testing.T) {
	attemptCount := 0
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		attemptCount++
		if attemptCount < 2 {
			w.WriteHeader(http.StatusInternalServerError)
			_ = json.NewEncoder(w).Encode(errorBody("An internal error occurred"))
			return
		}
		w.WriteHeader(http.StatusOK)
		_ = json.NewEncoder(w).Encode(map[string]string{"status": "ok"})
	}))
	defer server.Close()

	client := NewClient(server.URL, "test-token")
	resp, err := client.doRequest(context.Background(), http.MethodGet, "/test", nil)
	if err != nil {
		t.Fatalf("expected success after retry, got error: %v", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if attemptCount != 2 {
		t.Errorf("expected 2 attempts, got %d", attemptCount)
	}
}

func TestDoRequest_RetryOn429HonorsRetryAfter(t *testing.T) {
	attemptCount := 0
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		attemptCount++
		if attemptCount < 2 {
			w.Header().Set("Retry-After", "1")
			w.WriteHeader(http.StatusTooManyRequests)
			_ = json.NewEncoder(w).Encode(errorBody("Rate limit exceeded"))
			return
		}
		w.WriteHeader(http.StatusOK)
		_ = json.NewEncoder(w).Encode(map[string]string{"status": "ok"})
	}))
	defer server.Close()

	client := NewClient(server.URL, "test-token")
	start := time.Now()
	resp, err := client.doRequest(context.Background(), http.MethodGet, "/test", nil)
	elapsed := time.Since(start)

	if err != nil {
		t.Fatalf("expected success after retry, got error: %v", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if attemptCount != 2 {
		t.Errorf("expected 2 attempts, got %d", attemptCount)
	}
	if elapsed < 900*time.Millisecond {
		t.Errorf("expected Retry-After delay of about 1s, waited only %v", elapsed)
	}
}

func TestDoRequest_NoRetryOn400(t *testing.T) {
	attemptCount := 0
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		attemptCount++
		w.WriteHeader(http.StatusBadRequest)
		_ = json.NewEncoder(w).Encode(errorBody("Invalid parameters"))
	}))
	defer server.Close()

	client := NewClient(server.URL, "test-token")
	_, err := client.doRequest(context.Background(), http.MethodGet, "/test", nil)
	if err == nil {
		t.Fatal("expected error for 400 response")
	}
	if attemptCount != 1 {
		t.Errorf("expected a single attempt for a non-retryable error, got %d", attemptCount)
	}

	var apiErr *APIError
	if !errors.As(err, &apiErr) {
		t.Fatalf("expected error to wrap *APIError, got %T", err)
	}
	if apiErr.StatusCode != 400 {
		t.Errorf("expected status 400, got %d", apiErr.StatusCode)
	}
	if !strings.Contains(apiErr.Error(), "Invalid parameters") {
		t.Errorf("expected decoded error message, got %q", apiErr.Error())
	}
}

func TestDoRequest_RetriesExhausted(t *testing.T) {
	attemptCount := 0
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		attemptCount++
		w.WriteHeader(http.StatusServiceUnavailable)
		_ = json.NewEncoder(w).Encode(errorBody("Service unavailable"))
	}))
	defer server.Close()

	client := NewClient(server.URL, "test-token").WithMaxRetries(1)
	_, err := client.doRequest(context.Background(), http.MethodGet, "/test", nil)
	if err == nil {
		t.Fatal("expected error after exhausting retries")
	}
	if attemptCount != 2 {
		t.Errorf("expected 2 attempts (1 retry), got %d", attemptCount)
	}
}

func TestDoRequest_ContextCanceledDuringBackoff(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
		_ = json.NewEncoder(w).Encode(errorBody("Service unavailable"))
	}))
	defer server.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 100*time.Millisecond)
	defer cancel()

	client := NewClient(server.URL, "test-token")
	_, err := client.doRequest(ctx, http.MethodGet, "/test", nil)
	if err == nil {
		t.Fatal("expected error when context expires during backoff")
	}
	if !errors.Is(err, context.DeadlineExceeded) {
		t.Errorf("expected context.DeadlineExceeded in chain, got %v", err)
	}
}

func TestDoRequest_UndecodableErrorBody(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
		_, _ = w.Write([]byte("not json"))
	}))
	defer server.Close()

	client := NewClient(server.URL, "test-token")
	_, err := client.doRequest(context.Background(), http.MethodGet, "/test", nil)
	if err == nil {
		t.Fatal("expected error for 403 response")
	}

	var apiErr *APIError
	if !errors.As(err, &apiErr) {
		t.Fatalf("expected error to wrap *APIError, got %T", err)
	}
	if apiErr.StatusCode != 403 {
		t.Errorf("expected status 403, got %d", apiErr.StatusCode)
	}
}

func TestDoRequest_TrimsTrailingSlash(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/v1/courses" {
			t.Errorf("expected /api/v1/courses, got %s", r.URL.Path)
		}
		w.WriteHeader(http.StatusOK)
		_ = json.NewEncoder(w).Encode([]map[string]string{})
	}))
	defer server.Close()

	client := NewClient(server.URL+"/", "test-token")
	resp, err := client.doRequest(context.Background(), http.MethodGet, "/courses", nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	_ = resp.Body.Close()
}

func TestGetRateLimitInfo_UpdatedFromHeaders(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("X-Rate-Limit-Remaining", "653.5")
		w.Header().Set("X-Request-Cost", "1.25")
		w.Header().Set("X-Request-Context-Id", "req-abc")
		w.WriteHeader(http.StatusOK)
		_ = json.NewEncoder(w).Encode(map[string]string{"status": "ok"})
	}))
	defer server.Close()

	client := NewClient(server.URL, "test-token")
	if client.GetRateLimitInfo() != nil {
		t.Error("expected nil rate limit info before any request")
	}

	resp, err := client.doRequest(context.Background(), http.MethodGet, "/test", nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	_ = resp.Body.Close()

	info := client.GetRateLimitInfo()
	if info == nil {
		t.Fatal("expected rate limit info after request")
	}
	if info.Remaining != 653.5 {
		t.Errorf("expected remaining 653.5, got %v", info.Remaining)
	}
	if info.Cost != 1.25 {
		t.Errorf("expected cost 1.25, got %v", info.Cost)
	}
	if info.RequestID != "req-abc" {
		t.Errorf("expected request ID 'req-abc', got %q", info.RequestID)
	}
}
