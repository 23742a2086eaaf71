// Package httputil provides HTTP plumbing shared by the license sources.
//
// # Overview
//
//   - [Retry]: Automatic retry with exponential backoff
//   - [NewClient]: An *http.Client with a per-request timeout
//   - [NewNoRedirectClient]: A client that surfaces 3xx responses instead
//     of following them, for redirect probing
//
// # Retry
//
// [Retry] re-runs an operation for transient failures only. Callers mark a
// failure as transient by wrapping it in [RetryableError]:
//
//   - Network errors
//   - 5xx server errors
//   - 429 rate limit responses
//
// Everything else, including 404, is returned on the first attempt:
//
//	err := httputil.Retry(ctx, 2, 200*time.Millisecond, func() error {
//	    return fetch(ctx)
//	})
//
// A [errors.RateLimitedError] carrying a Retry-After hint stretches the
// next delay to at least that many seconds.
//
// # Configuration
//
// Default settings match the command line defaults:
//
//   - Timeout: 3 seconds per request
//   - Attempts: 1 (no retry) unless --retries is set
//   - Base backoff: 200 milliseconds
package httputil
