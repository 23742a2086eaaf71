package integrations

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime"
	"net/http"
	"net/url"
	"strconv"
	"time"

	noticeerrors "github.com/matzehuels/noticegen/pkg/errors"
	"github.com/matzehuels/noticegen/pkg/httputil"
	"github.com/matzehuels/noticegen/pkg/observability"
)

// maxBodySize bounds how much of a response body is read into memory.
// License texts are a few kilobytes; anything near this is not a license.
const maxBodySize = 4 << 20

// Client provides shared HTTP functionality for the license data sources.
// It handles retry logic, status mapping, common request headers, and
// emits [observability.HTTPHooks] events for every request.
type Client struct {
	http     *http.Client
	headers  map[string]string
	attempts int
}

// NewClient creates a Client around httpClient with default headers applied
// to every request. A nil httpClient selects [httputil.NewClient] with the
// default timeout. attempts below 1 means a single attempt.
func NewClient(httpClient *http.Client, headers map[string]string, attempts int) *Client {
	if httpClient == nil {
		httpClient = httputil.NewClient(0)
	}
	return &Client{
		http:     httpClient,
		headers:  headers,
		attempts: max(attempts, 1),
	}
}

// Response is a fully read HTTP response. It is returned without status
// mapping so callers can inspect redirects and media types themselves.
type Response struct {
	StatusCode int
	MediaType  string      // Content-Type without parameters, lowercased
	Header     http.Header // Response headers
	URL        *url.URL    // Final request URL
	Body       string
}

// OK reports whether the status code is in the 2xx range.
func (r *Response) OK() bool {
	return r.StatusCode >= 200 && r.StatusCode <= 299
}

// Get performs an HTTP GET request and JSON-decodes the response into v.
// Non-2xx responses are mapped to [ErrNotFound] or [ErrNetwork].
func (c *Client) Get(ctx context.Context, rawURL string, v any) error {
	return c.withRetry(ctx, func() error {
		resp, err := c.do(ctx, rawURL)
		if err != nil {
			return err
		}
		if err := checkStatus(resp); err != nil {
			return err
		}
		if err := json.Unmarshal([]byte(resp.Body), v); err != nil {
			return fmt.Errorf("decode %s: %w", rawURL, err)
		}
		return nil
	})
}

// GetText performs an HTTP GET request and returns the response body as a string.
// Non-2xx responses are mapped to [ErrNotFound] or [ErrNetwork].
func (c *Client) GetText(ctx context.Context, rawURL string) (string, error) {
	var body string
	err := c.withRetry(ctx, func() error {
		resp, err := c.do(ctx, rawURL)
		if err != nil {
			return err
		}
		if err := checkStatus(resp); err != nil {
			return err
		}
		body = resp.Body
		return nil
	})
	return body, err
}

// Fetch performs an HTTP GET request and returns the raw response whatever
// its status. Only transport failures are retried and returned as errors.
func (c *Client) Fetch(ctx context.Context, rawURL string) (*Response, error) {
	var resp *Response
	err := c.withRetry(ctx, func() error {
		r, err := c.do(ctx, rawURL)
		resp = r
		return err
	})
	return resp, err
}

func (c *Client) withRetry(ctx context.Context, fn func() error) error {
	return httputil.RetryWithBackoff(ctx, c.attempts, fn)
}

func (c *Client) do(ctx context.Context, rawURL string) (*Response, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, err
	}
	for k, v := range c.headers {
		req.Header.Set(k, v)
	}

	hooks := observability.HTTP()
	hooks.OnRequest(ctx, req.Method, req.URL.Host, req.URL.Path)
	start := time.Now()

	resp, err := c.http.Do(req)
	if err != nil {
		hooks.OnError(ctx, req.Method, req.URL.Host, req.URL.Path, err)
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		return nil, &httputil.RetryableError{Err: fmt.Errorf("%w: %v", ErrNetwork, err)}
	}
	defer resp.Body.Close()
	hooks.OnResponse(ctx, req.Method, req.URL.Host, req.URL.Path, resp.StatusCode, time.Since(start))

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxBodySize))
	if err != nil {
		return nil, &httputil.RetryableError{Err: fmt.Errorf("%w: read body: %v", ErrNetwork, err)}
	}

	out := &Response{
		StatusCode: resp.StatusCode,
		Header:     resp.Header,
		URL:        req.URL,
		Body:       string(data),
	}
	if resp.Request != nil && resp.Request.URL != nil {
		out.URL = resp.Request.URL
	}
	if ct := resp.Header.Get("Content-Type"); ct != "" {
		if mt, _, err := mime.ParseMediaType(ct); err == nil {
			out.MediaType = mt
		}
	}
	return out, nil
}

func checkStatus(resp *Response) error {
	code := resp.StatusCode
	switch {
	case resp.OK():
		return nil
	case code == http.StatusNotFound:
		return ErrNotFound
	case code == http.StatusTooManyRequests:
		rl := &noticeerrors.RateLimitedError{RetryAfter: retryAfterSeconds(resp.Header)}
		return &httputil.RetryableError{Err: fmt.Errorf("%w: %w", ErrNetwork, rl)}
	case code >= 500:
		return &httputil.RetryableError{Err: fmt.Errorf("%w: status %d", ErrNetwork, code)}
	default:
		return fmt.Errorf("%w: status %d", ErrNetwork, code)
	}
}

func retryAfterSeconds(h http.Header) int {
	n, err := strconv.Atoi(h.Get("Retry-After"))
	if err != nil || n < 0 {
		return 0
	}
	return n
}
