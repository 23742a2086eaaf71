// Package sources provides the license capabilities for well-known hosts.
//
// Each source registers itself for the families it understands:
//
//	Source        Safe   License URL   Repository   Project URL
//	GitHub        yes    yes           yes          yes
//	GitHubPages   no     yes           -            yes
//	NuGet         yes    yes           -            -
//	OpenSource    yes    yes           -            -
//
// Use [RegisterDefaults] to install all of them in their canonical order.
package sources

import (
	"context"
	"net/url"
	"strings"

	"github.com/matzehuels/noticegen/pkg/license"
)

// Host names matched by the sources.
const (
	GitHubHost     = "github.com"
	GitHubIODomain = "github.io"
	NuGetHost      = "licenses.nuget.org"
	OpenSourceHost = "opensource.org"
)

// LicenseCatalog looks up canonical license texts by identifier.
type LicenseCatalog interface {
	LicenseByID(ctx context.Context, id string) (string, bool)
}

// RepositoryLicenses looks up the license file of a hosted repository.
type RepositoryLicenses interface {
	RepositoryLicense(ctx context.Context, repoPath, commit string) (string, bool)
}

// GitHubAPI is the subset of the GitHub client the sources use.
type GitHubAPI interface {
	LicenseCatalog
	RepositoryLicenses
}

// LicenseRegistry fetches raw license text from a license registry.
type LicenseRegistry interface {
	LicenseText(ctx context.Context, id string) (string, bool)
}

// Clients bundles the collaborators for [RegisterDefaults].
type Clients struct {
	GitHub   GitHubAPI                // Required
	Fetcher  license.PlainTextFetcher // Required
	Registry LicenseRegistry          // Optional fallback for NuGet ids GitHub does not know
}

// RegisterDefaults installs every source into r.
func RegisterDefaults(r *license.Registry, c Clients) {
	NewGitHubPages(c.GitHub, c.Fetcher).Register(r)
	NewGitHub(c.GitHub, c.Fetcher).Register(r)
	NewNuGet(c.GitHub, c.Registry).Register(r)
	NewOpenSource(c.GitHub).Register(r)
}

func hostIs(u *url.URL, host string) bool {
	return strings.EqualFold(u.Hostname(), host)
}

// hostInDomain reports whether u's host is domain or one of its subdomains.
func hostInDomain(u *url.URL, domain string) bool {
	host := strings.ToLower(u.Hostname())
	return host == domain || strings.HasSuffix(host, "."+domain)
}
