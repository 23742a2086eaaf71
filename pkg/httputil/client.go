package httputil

import (
	"net/http"
	"time"
)

// DefaultTimeout bounds every outbound request.
const DefaultTimeout = 3 * time.Second

// NewClient returns an *http.Client that follows redirects and aborts any
// request exceeding timeout. A non-positive timeout selects [DefaultTimeout].
func NewClient(timeout time.Duration) *http.Client {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &http.Client{Timeout: timeout}
}

// NewNoRedirectClient returns an *http.Client that hands 3xx responses back
// to the caller untouched, so the Location header can be inspected.
func NewNoRedirectClient(timeout time.Duration) *http.Client {
	c := NewClient(timeout)
	c.CheckRedirect = func(*http.Request, []*http.Request) error {
		return http.ErrUseLastResponse
	}
	return c
}
