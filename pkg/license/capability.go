package license

import (
	"context"
	"net/url"
)

// Family identifies which license signal a capability handles.
type Family int

const (
	// FamilyLicenseURL resolves a declared license URL.
	FamilyLicenseURL Family = iota
	// FamilyRepository resolves a repository URL pinned at a commit.
	FamilyRepository
	// FamilyProject resolves a project home page URL.
	FamilyProject
)

// String returns the family name used in logs and hooks.
func (f Family) String() string {
	switch f {
	case FamilyLicenseURL:
		return "license-url"
	case FamilyRepository:
		return "repository"
	case FamilyProject:
		return "project-url"
	default:
		return "unknown"
	}
}

// Request carries the URL being resolved and, for [FamilyRepository], the
// VCS type and commit from the package metadata.
type Request struct {
	URL     *url.URL
	VCSType string
	Commit  string
}

// Capability turns one kind of URL into license text.
type Capability interface {
	// Safe reports whether the capability's results can be trusted. It must
	// return the same value for the lifetime of the capability.
	Safe() bool

	// CanResolve reports whether u is handled by this capability.
	CanResolve(u *url.URL) bool

	// Resolve produces license text for req.URL. Failures are logged by the
	// capability and reported as ok == false.
	Resolve(ctx context.Context, req Request) (string, bool)
}

// Func adapts a set of functions to [Capability]. Sources that serve several
// families build one Func per family around shared fetch logic.
type Func struct {
	IsSafe bool
	Match  func(u *url.URL) bool
	Fetch  func(ctx context.Context, req Request) (string, bool)
}

// Safe implements [Capability].
func (f Func) Safe() bool { return f.IsSafe }

// CanResolve implements [Capability].
func (f Func) CanResolve(u *url.URL) bool { return f.Match(u) }

// Resolve implements [Capability].
func (f Func) Resolve(ctx context.Context, req Request) (string, bool) { return f.Fetch(ctx, req) }

var _ Capability = Func{}
