package sources

import (
	"context"
	"net/url"
	"strings"

	"github.com/matzehuels/noticegen/pkg/integrations"
	"github.com/matzehuels/noticegen/pkg/license"
)

// GitHub resolves github.com URLs.
//
//   - License URL: the file is fetched from raw.githubusercontent.com.
//   - Project URL: the path is taken as "/owner/repo" and the repository
//     license on the default branch is requested.
//   - Repository: the path must be exactly "/owner/repo" (".git" suffix
//     allowed); the license at the given commit is requested.
type GitHub struct {
	api     RepositoryLicenses
	fetcher license.PlainTextFetcher
}

// NewGitHub creates the GitHub source.
func NewGitHub(api RepositoryLicenses, fetcher license.PlainTextFetcher) *GitHub {
	return &GitHub{api: api, fetcher: fetcher}
}

// Register adds the source to all three families.
func (g *GitHub) Register(r *license.Registry) {
	r.Register(license.FamilyLicenseURL, license.Func{IsSafe: true, Match: g.match, Fetch: g.licenseURL})
	r.Register(license.FamilyRepository, license.Func{IsSafe: true, Match: g.match, Fetch: g.repository})
	r.Register(license.FamilyProject, license.Func{IsSafe: true, Match: g.match, Fetch: g.project})
}

func (g *GitHub) match(u *url.URL) bool {
	return hostIs(u, GitHubHost)
}

func (g *GitHub) licenseURL(ctx context.Context, req license.Request) (string, bool) {
	return g.fetcher.PlainText(ctx, integrations.ToRawContentURL(req.URL))
}

func (g *GitHub) project(ctx context.Context, req license.Request) (string, bool) {
	return g.api.RepositoryLicense(ctx, req.URL.Path, "")
}

func (g *GitHub) repository(ctx context.Context, req license.Request) (string, bool) {
	segs := integrations.PathSegments(req.URL)
	if len(segs) != 2 {
		return "", false
	}
	repoPath := "/" + segs[0] + "/" + strings.TrimSuffix(segs[1], ".git")
	return g.api.RepositoryLicense(ctx, repoPath, req.Commit)
}
