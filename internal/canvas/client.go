// Package canvas implements a client for the Canvas LMS REST API.
package canvas

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"math/rand"
	"net/http"
	"net/url"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/sageleaf-labs/canvas-cli/internal/debug"
	ctxerrors "github.com/sageleaf-labs/canvas-cli/internal/errors"
)

const (
	apiPrefix      = "/api/v1"
	defaultTimeout = 30 * time.Second
	maxRetries     = 3
	baseDelay      = 1 * time.Second
)

// Client is the Canvas API client. The base URL identifies the Canvas
// instance (for example https://canvas.example.edu); every request is
// made under its /api/v1 prefix.
type Client struct {
	httpClient  *http.Client
	token       string
	baseURL     string
	maxRetries  int
	rateLimiter *RateLimitTracker
}

// NewClient creates a new Canvas API client for the given instance URL
// and access token.
func NewClient(baseURL, token string) *Client {
	return &Client{
		httpClient: &http.Client{
			Timeout: defaultTimeout,
		},
		token:       token,
		baseURL:     strings.TrimRight(baseURL, "/"),
		maxRetries:  maxRetries,
		rateLimiter: NewRateLimitTracker(),
	}
}

// WithHTTPClient sets a custom HTTP client
func (c *Client) WithHTTPClient(client *http.Client) *Client {
	c.httpClient = client
	return c
}

// WithMaxRetries sets the maximum number of retries for transient errors.
func (c *Client) WithMaxRetries(n int) *Client {
	c.maxRetries = n
	return c
}

// WithDebug enables debug mode for HTTP request/response logging
func (c *Client) WithDebug() *Client {
	return c.WithDebugOutput(os.Stderr)
}

// WithDebugOutput enables debug mode for HTTP request/response logging to the provided writer.
func (c *Client) WithDebugOutput(w io.Writer) *Client {
	baseTransport := c.httpClient.Transport
	if baseTransport == nil {
		baseTransport = http.DefaultTransport
	}

	c.httpClient.Transport = debug.NewDebugTransport(baseTransport, w)
	return c
}

// doRequest performs an HTTP request with retry logic for rate limits
// and transient errors. path is relative to the /api/v1 prefix.
func (c *Client) doRequest(ctx context.Context, method, path string, body interface{}) (*http.Response, error) {
	requestURL := c.baseURL + apiPrefix + path

	var lastErr error

	for attempt := 0; attempt <= c.maxRetries; attempt++ {
		// Wait before retry (skip on first attempt)
		if attempt > 0 {
			delay := c.calculateRetryDelay(attempt, lastErr)

			if apiErr, ok := lastErr.(*APIError); ok && apiErr.StatusCode == http.StatusTooManyRequests {
				slog.Debug("rate limited, waiting before retry",
					"method", method,
					"path", path,
					"attempt", attempt,
					"delay", delay.String(),
					"retry_after", apiErr.RetryAfter.String())
			} else {
				slog.Debug("retrying request",
					"method", method,
					"path", path,
					"attempt", attempt,
					"delay", delay.String())
			}

			select {
			case <-ctx.Done():
				return nil, ctxerrors.WrapContext(method, requestURL, 0, ctx.Err())
			case <-time.After(delay):
			}
		}

		resp, err := c.doRequestOnce(ctx, method, requestURL, body)
		if err != nil {
			lastErr = err

			if apiErr, ok := err.(*APIError); ok {
				if isRetryable(apiErr.StatusCode) {
					continue
				}
			}

			// Non-retryable error, return immediately
			return nil, ctxerrors.WrapContext(method, requestURL, getStatusCode(err), err)
		}

		return resp, nil
	}

	return nil, ctxerrors.WrapContext(method, requestURL, getStatusCode(lastErr), lastErr)
}

// doRequestOnce performs a single HTTP request attempt with proper
// headers and error handling.
func (c *Client) doRequestOnce(ctx context.Context, method, requestURL string, body interface{}) (*http.Response, error) {
	var reqBody io.Reader
	contentType := ""
	if body != nil {
		jsonData, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("failed to marshal request body: %w", err)
		}
		reqBody = bytes.NewReader(jsonData)
		contentType = "application/json"
	}

	req, err := http.NewRequestWithContext(ctx, method, requestURL, reqBody)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}
	req.Header.Set("Accept", "application/json")
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}

	// Update rate limit tracker with response headers
	c.rateLimiter.Update(resp)

	if resp.StatusCode >= 400 {
		defer func() { _ = resp.Body.Close() }()
		var errResp ErrorResponse
		if err := json.NewDecoder(resp.Body).Decode(&errResp); err != nil {
			return nil, &APIError{StatusCode: resp.StatusCode}
		}
		return nil, &APIError{
			StatusCode: resp.StatusCode,
			Response:   &errResp,
			RetryAfter: parseRetryAfter(resp.Header.Get("Retry-After")),
		}
	}

	return resp, nil
}

// calculateRetryDelay calculates the delay before the next retry attempt
func (c *Client) calculateRetryDelay(attempt int, lastErr error) time.Duration {
	// Honor Retry-After when the server sent one
	if apiErr, ok := lastErr.(*APIError); ok && apiErr.RetryAfter > 0 {
		return apiErr.RetryAfter
	}

	// Exponential backoff: 1s, 2s, 4s
	delay := baseDelay * time.Duration(1<<(attempt-1))

	// Add jitter (0-25% of delay)
	jitter := time.Duration(rand.Int63n(int64(delay / 4)))
	delay += jitter

	return delay
}

// isRetryable returns true if the HTTP status code indicates a retryable error
func isRetryable(statusCode int) bool {
	return statusCode == http.StatusTooManyRequests || statusCode >= 500
}

// parseRetryAfter parses the Retry-After header value.
// Returns the duration to wait, or 0 if not parseable.
func parseRetryAfter(retryAfter string) time.Duration {
	if retryAfter == "" {
		return 0
	}

	if seconds, err := strconv.Atoi(retryAfter); err == nil {
		return time.Duration(seconds) * time.Second
	}

	if t, err := http.ParseTime(retryAfter); err == nil {
		delay := time.Until(t)
		if delay > 0 {
			return delay
		}
	}

	return 0
}

// getStatusCode extracts the HTTP status code from an error if it's an APIError
func getStatusCode(err error) int {
	if apiErr, ok := err.(*APIError); ok {
		return apiErr.StatusCode
	}
	return 0
}

// doGet performs a GET request with optional query parameters.
func (c *Client) doGet(ctx context.Context, path string, query url.Values, result interface{}) error {
	if len(query) > 0 {
		path = path + "?" + query.Encode()
	}

	resp, err := c.doRequest(ctx, http.MethodGet, path, nil)
	if err != nil {
		return err
	}
	defer func() { _ = resp.Body.Close() }()

	if result != nil {
		if err := json.NewDecoder(resp.Body).Decode(result); err != nil {
			return fmt.Errorf("failed to decode response: %w", err)
		}
	}

	return nil
}

// doGetPage performs a GET request against a paginated list endpoint and
// returns the page metadata parsed from the Link response header.
func (c *Client) doGetPage(ctx context.Context, path string, query url.Values, result interface{}) (*PageResult, error) {
	if len(query) > 0 {
		path = path + "?" + query.Encode()
	}

	resp, err := c.doRequest(ctx, http.MethodGet, path, nil)
	if err != nil {
		return nil, err
	}
	defer func() { _ = resp.Body.Close() }()

	if result != nil {
		if err := json.NewDecoder(resp.Body).Decode(result); err != nil {
			return nil, fmt.Errorf("failed to decode response: %w", err)
		}
	}

	return parsePageResult(resp.Header.Get("Link")), nil
}

// doPost performs a POST request
func (c *Client) doPost(ctx context.Context, path string, body, result interface{}) error {
	resp, err := c.doRequest(ctx, http.MethodPost, path, body)
	if err != nil {
		return err
	}
	defer func() { _ = resp.Body.Close() }()

	if result != nil {
		if err := json.NewDecoder(resp.Body).Decode(result); err != nil {
			return fmt.Errorf("failed to decode response: %w", err)
		}
	}

	return nil
}

// doPut performs a PUT request
func (c *Client) doPut(ctx context.Context, path string, body, result interface{}) error {
	resp, err := c.doRequest(ctx, http.MethodPut, path, body)
	if err != nil {
		return err
	}
	defer func() { _ = resp.Body.Close() }()

	if result != nil {
		if err := json.NewDecoder(resp.Body).Decode(result); err != nil {
			return fmt.Errorf("failed to decode response: %w", err)
		}
	}

	return nil
}

// GetRateLimitInfo returns the current rate limit information.
// Returns nil if no API requests have been made yet.
func (c *Client) GetRateLimitInfo() *RateLimitInfo {
	return c.rateLimiter.Get()
}
