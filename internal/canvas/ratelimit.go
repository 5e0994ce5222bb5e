package canvas

import (
	"net/http"
	"strconv"
	"sync"
	"time"
)

// RateLimitInfo contains throttling information from the API response.
// Canvas uses a leaky-bucket quota: each request drains Cost units from
// a bucket of roughly 700, refilled continuously.
type RateLimitInfo struct {
	// Remaining quota units in the bucket
	Remaining float64
	// Cost of the last request in quota units
	Cost float64
	// Request ID for debugging
	RequestID string
	// Last updated timestamp
	UpdatedAt time.Time
}

// RateLimitTracker tracks throttling information from API responses
type RateLimitTracker struct {
	mu   sync.RWMutex
	info *RateLimitInfo
}

// NewRateLimitTracker creates a new rate limit tracker
func NewRateLimitTracker() *RateLimitTracker {
	return &RateLimitTracker{}
}

// Update updates rate limit info from HTTP response headers.
// Canvas headers:
//   - X-Rate-Limit-Remaining: quota units left in the bucket
//   - X-Request-Cost: units the request consumed
//   - X-Request-Context-Id: unique request identifier
func (t *RateLimitTracker) Update(resp *http.Response) {
	if resp == nil {
		return
	}

	t.mu.Lock()
	defer t.mu.Unlock()

	info := &RateLimitInfo{
		RequestID: resp.Header.Get("X-Request-Context-Id"),
		UpdatedAt: time.Now(),
	}

	if remaining := resp.Header.Get("X-Rate-Limit-Remaining"); remaining != "" {
		info.Remaining, _ = strconv.ParseFloat(remaining, 64)
	}

	if cost := resp.Header.Get("X-Request-Cost"); cost != "" {
		info.Cost, _ = strconv.ParseFloat(cost, 64)
	}

	t.info = info
}

// Get returns the current rate limit info (may be nil if no requests made)
func (t *RateLimitTracker) Get() *RateLimitInfo {
	t.mu.RLock()
	defer t.mu.RUnlock()
	if t.info == nil {
		return nil
	}
	// Return a copy
	info := *t.info
	return &info
}

// IsLow returns true when the bucket is close to empty and further
// requests are likely to be throttled.
func (t *RateLimitTracker) IsLow() bool {
	t.mu.RLock()
	defer t.mu.RUnlock()
	if t.info == nil {
		return false
	}
	return t.info.Remaining > 0 && t.info.Remaining < 70
}
