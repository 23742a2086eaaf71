package integrations

import (
	"errors"
	"net/url"
	"strings"
)

var (
	// ErrNotFound is returned when a license or repository doesn't exist upstream.
	ErrNotFound = errors.New("resource not found")

	// ErrNetwork is returned for HTTP failures (timeouts, connection errors, non-2xx responses).
	ErrNetwork = errors.New("network error")
)

// RawContentHost serves raw file contents for github.com and *.github.io URLs.
const RawContentHost = "raw.githubusercontent.com"

// ToRawContentURL rewrites a GitHub file URL to its raw-content form: the host
// becomes [RawContentHost] and every "/blob" occurrence is removed from the path.
//
//	https://github.com/o/r/blob/main/LICENSE -> https://raw.githubusercontent.com/o/r/main/LICENSE
func ToRawContentURL(u *url.URL) *url.URL {
	out := *u
	out.Host = RawContentHost
	out.Path = strings.ReplaceAll(u.Path, "/blob", "")
	out.RawPath = ""
	return &out
}

// PathSegments splits a URL path into its non-empty segments.
func PathSegments(u *url.URL) []string {
	var segs []string
	for _, s := range strings.Split(u.Path, "/") {
		if s != "" {
			segs = append(segs, s)
		}
	}
	return segs
}

var repoURLReplacer = strings.NewReplacer(
	"git@github.com:", "https://github.com/",
	"git://github.com/", "https://github.com/",
)

// NormalizeRepoURL converts the repository URL forms found in package
// metadata to canonical HTTPS form. It handles git@, git:// and git+
// prefixes; a trailing .git suffix is kept for the resolver to strip.
// Returns empty string if raw is empty.
func NormalizeRepoURL(raw string) string {
	s := strings.TrimSpace(raw)
	if s == "" {
		return ""
	}
	s = strings.TrimPrefix(s, "git+")
	return repoURLReplacer.Replace(s)
}
