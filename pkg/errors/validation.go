package errors

import (
	"regexp"
	"strings"
	"unicode"
)

// licenseIDRegex matches SPDX-style identifiers and the expressions the NuGet
// license service accepts ("MIT", "Apache-2.0", "MIT OR Apache-2.0").
var licenseIDRegex = regexp.MustCompile(`^[A-Za-z0-9(][A-Za-z0-9.+()-]*(\s+(AND|OR|WITH)\s+[A-Za-z0-9(][A-Za-z0-9.+()-]*)*$`)

// ValidateLicenseID validates a license identifier before it is placed in a
// request path. It rejects anything that could escape the path segment.
func ValidateLicenseID(id string) error {
	if id == "" {
		return New(ErrCodeInvalidLicenseID, "license id cannot be empty")
	}
	if len(id) > 256 {
		return New(ErrCodeInvalidLicenseID, "license id too long (max 256 characters)")
	}
	if strings.Contains(id, "..") {
		return New(ErrCodeInvalidLicenseID, "license id contains invalid characters: %q", "..")
	}
	if !licenseIDRegex.MatchString(id) {
		return New(ErrCodeInvalidLicenseID, "invalid license id: %q", id)
	}
	return nil
}

// ValidateRepositoryPath validates an "/owner/repo" path for the GitHub API.
//
// Validation rules:
//   - Must start with a slash and contain exactly two non-empty segments
//   - No control characters, path traversal, or backslashes
func ValidateRepositoryPath(path string) error {
	if path == "" {
		return New(ErrCodeInvalidPath, "repository path cannot be empty")
	}
	for _, r := range path {
		if unicode.IsControl(r) {
			return New(ErrCodeInvalidPath, "repository path contains invalid characters")
		}
	}
	if strings.Contains(path, "..") || strings.Contains(path, "\\") {
		return New(ErrCodeInvalidPath, "repository path contains invalid characters: %q", path)
	}
	if !strings.HasPrefix(path, "/") {
		return New(ErrCodeInvalidPath, "repository path must start with /")
	}
	parts := strings.Split(strings.Trim(path, "/"), "/")
	if len(parts) != 2 || parts[0] == "" || parts[1] == "" {
		return New(ErrCodeInvalidPath, "repository path must be /owner/repo, got %q", path)
	}
	return nil
}

// ValidateEntryName validates the name of an entry inside a package archive.
//
// Validation rules:
//   - Name cannot be empty
//   - Maximum length of 500 characters
//   - No null bytes or control characters
//   - No absolute paths (must be relative)
//   - No path traversal sequences (..)
func ValidateEntryName(name string) error {
	if name == "" {
		return New(ErrCodeInvalidPath, "entry name cannot be empty")
	}

	const maxPathLength = 500
	if len(name) > maxPathLength {
		return New(ErrCodeInvalidPath, "entry name too long (max %d characters)", maxPathLength)
	}

	for _, r := range name {
		if r == '\x00' || unicode.IsControl(r) {
			return New(ErrCodeInvalidPath, "entry name contains invalid characters")
		}
	}

	if strings.HasPrefix(name, "/") {
		return New(ErrCodeInvalidPath, "entry name must be relative (cannot start with /)")
	}

	for _, seg := range strings.Split(name, "/") {
		if seg == ".." {
			return New(ErrCodeInvalidPath, "entry name cannot contain path traversal sequences (..)")
		}
	}

	return nil
}

// ValidateURL validates a URL string for safety.
// It ensures the URL has a safe scheme (http or https).
func ValidateURL(rawURL string) error {
	if rawURL == "" {
		return New(ErrCodeInvalidInput, "URL cannot be empty")
	}

	lower := strings.ToLower(rawURL)
	if !strings.HasPrefix(lower, "http://") && !strings.HasPrefix(lower, "https://") {
		return New(ErrCodeInvalidInput, "URL must use http or https scheme")
	}

	return nil
}
