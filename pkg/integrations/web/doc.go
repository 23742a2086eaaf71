// Package web fetches license candidates from arbitrary URLs.
//
// [Fetcher] downloads a URL and returns its body when the server says it is
// plain text. [Prober] issues a single request without following redirects
// and reports where a 3xx response points. Both swallow every failure: the
// cause is logged and the caller sees a not-found result.
package web
