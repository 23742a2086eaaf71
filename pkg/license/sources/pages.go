package sources

import (
	"context"
	"net/url"
	"strings"

	"github.com/matzehuels/noticegen/pkg/integrations"
	"github.com/matzehuels/noticegen/pkg/license"
)

// GitHubPages resolves *.github.io URLs. It is unsafe: a pages site is often
// documentation, and its owner's repository of the same name is a guess.
//
//   - License URL: the file is fetched from raw.githubusercontent.com.
//   - Project URL: "https://owner.github.io/repo" is read as the
//     repository "/owner/repo".
type GitHubPages struct {
	api     RepositoryLicenses
	fetcher license.PlainTextFetcher
}

// NewGitHubPages creates the GitHub Pages source.
func NewGitHubPages(api RepositoryLicenses, fetcher license.PlainTextFetcher) *GitHubPages {
	return &GitHubPages{api: api, fetcher: fetcher}
}

// Register adds the source to the license URL and project families.
func (p *GitHubPages) Register(r *license.Registry) {
	r.Register(license.FamilyLicenseURL, license.Func{Match: p.match, Fetch: p.licenseURL})
	r.Register(license.FamilyProject, license.Func{Match: p.match, Fetch: p.project})
}

func (p *GitHubPages) match(u *url.URL) bool {
	return hostInDomain(u, GitHubIODomain)
}

func (p *GitHubPages) licenseURL(ctx context.Context, req license.Request) (string, bool) {
	return p.fetcher.PlainText(ctx, integrations.ToRawContentURL(req.URL))
}

func (p *GitHubPages) project(ctx context.Context, req license.Request) (string, bool) {
	owner, _, _ := strings.Cut(req.URL.Hostname(), ".")
	return p.api.RepositoryLicense(ctx, "/"+owner+req.URL.Path, "")
}
