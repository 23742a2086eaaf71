package sources

import (
	"context"
	"io"
	"net/url"
	"testing"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/noticegen/pkg/license"
)

type repoCall struct{ path, commit string }

type fakeGitHub struct {
	licenses map[string]string
	repos    map[string]string
	ids      []string
	repoReqs []repoCall
}

func (g *fakeGitHub) LicenseByID(_ context.Context, id string) (string, bool) {
	g.ids = append(g.ids, id)
	text, ok := g.licenses[id]
	return text, ok
}

func (g *fakeGitHub) RepositoryLicense(_ context.Context, path, commit string) (string, bool) {
	g.repoReqs = append(g.repoReqs, repoCall{path, commit})
	text, ok := g.repos[path]
	return text, ok
}

type fakeFetcher struct {
	texts map[string]string
	urls  []string
}

func (f *fakeFetcher) PlainText(_ context.Context, u *url.URL) (string, bool) {
	f.urls = append(f.urls, u.String())
	text, ok := f.texts[u.String()]
	return text, ok
}

type fakeRegistry struct {
	texts map[string]string
	ids   []string
}

func (r *fakeRegistry) LicenseText(_ context.Context, id string) (string, bool) {
	r.ids = append(r.ids, id)
	text, ok := r.texts[id]
	return text, ok
}

type noRedirects struct{}

func (noRedirects) RedirectTarget(context.Context, *url.URL) (*url.URL, bool) { return nil, false }

type env struct {
	gh       *fakeGitHub
	fetcher  *fakeFetcher
	registry *fakeRegistry
}

func newEnv() *env {
	return &env{
		gh: &fakeGitHub{
			licenses: map[string]string{"MIT": "MIT text", "Apache-2.0": "Apache text"},
			repos:    map[string]string{"/owner/repo": "repo license", "/owner/site": "site license"},
		},
		fetcher:  &fakeFetcher{texts: map[string]string{}},
		registry: &fakeRegistry{texts: map[string]string{"LicenseRef-Custom": "registry text"}},
	}
}

func (e *env) resolver(t *testing.T, allowUnsafe bool) *license.Resolver {
	t.Helper()
	reg := license.NewRegistry()
	RegisterDefaults(reg, Clients{GitHub: e.gh, Fetcher: e.fetcher, Registry: e.registry})
	r, err := license.New(license.Options{
		Registry:    reg,
		Fetcher:     e.fetcher,
		Prober:      noRedirects{},
		AllowUnsafe: allowUnsafe,
		Logger:      log.New(io.Discard),
	})
	if err != nil {
		t.Fatal(err)
	}
	return r
}

type pkg license.Signals

func (p pkg) Signals() license.Signals { return license.Signals(p) }

func (p pkg) OpenEntry(string) (io.ReadCloser, error) { return nil, io.EOF }

func TestRegisterDefaults(t *testing.T) {
	reg := license.NewRegistry()
	e := newEnv()
	RegisterDefaults(reg, Clients{GitHub: e.gh, Fetcher: e.fetcher})

	if got := reg.Len(license.FamilyLicenseURL); got != 4 {
		t.Errorf("license URL capabilities = %d, want 4", got)
	}
	if got := reg.Len(license.FamilyRepository); got != 1 {
		t.Errorf("repository capabilities = %d, want 1", got)
	}
	if got := reg.Len(license.FamilyProject); got != 2 {
		t.Errorf("project capabilities = %d, want 2", got)
	}
}

func TestGitHub_LicenseURL(t *testing.T) {
	e := newEnv()
	e.fetcher.texts["https://raw.githubusercontent.com/owner/repo/main/LICENSE"] = "raw text"

	text, ok := e.resolver(t, false).Resolve(context.Background(), pkg{LicenseURL: "https://github.com/owner/repo/blob/main/LICENSE"})
	if !ok || text != "raw text" {
		t.Errorf("Resolve() = (%q, %v), want (raw text, true)", text, ok)
	}
}

func TestGitHub_ProjectURLMatchesRepositoryEndpoint(t *testing.T) {
	e := newEnv()
	text, ok := e.resolver(t, false).Resolve(context.Background(), pkg{ProjectURL: "https://github.com/owner/repo"})
	direct, _ := e.gh.RepositoryLicense(context.Background(), "/owner/repo", "")
	if !ok || text != direct {
		t.Errorf("Resolve() = (%q, %v), want (%q, true)", text, ok, direct)
	}
	if e.gh.repoReqs[0] != (repoCall{"/owner/repo", ""}) {
		t.Errorf("request = %+v", e.gh.repoReqs[0])
	}
}

func TestGitHub_Repository(t *testing.T) {
	tests := []struct {
		name     string
		repoURL  string
		wantOK   bool
		wantPath string
	}{
		{"plain", "https://github.com/owner/repo", true, "/owner/repo"},
		{"git suffix", "https://github.com/owner/repo.git", true, "/owner/repo"},
		{"ssh form", "git@github.com:owner/repo.git", true, "/owner/repo"},
		{"extra segments", "https://github.com/owner/repo/tree/main", false, ""},
		{"owner only", "https://github.com/owner", false, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := newEnv()
			_, ok := e.resolver(t, false).Resolve(context.Background(), pkg{
				Repository: license.Repository{URL: tt.repoURL, Type: "git", Commit: "c0ffee"},
			})
			if ok != tt.wantOK {
				t.Fatalf("Resolve() ok = %v, want %v", ok, tt.wantOK)
			}
			if tt.wantPath == "" {
				if len(e.gh.repoReqs) != 0 {
					t.Errorf("unexpected API call %+v", e.gh.repoReqs)
				}
				return
			}
			if got := e.gh.repoReqs[0]; got != (repoCall{tt.wantPath, "c0ffee"}) {
				t.Errorf("request = %+v", got)
			}
		})
	}
}

func TestGitHubPages_Gated(t *testing.T) {
	e := newEnv()
	if _, ok := e.resolver(t, false).Resolve(context.Background(), pkg{ProjectURL: "https://owner.github.io/site"}); ok {
		t.Error("pages project should be not found with unsafe sources disabled")
	}
	if len(e.gh.repoReqs) != 0 {
		t.Error("pages project must not be looked up when gated")
	}

	text, ok := e.resolver(t, true).Resolve(context.Background(), pkg{ProjectURL: "https://owner.github.io/site"})
	if !ok || text != "site license" {
		t.Errorf("Resolve() = (%q, %v), want (site license, true)", text, ok)
	}
	if got := e.gh.repoReqs[0]; got != (repoCall{"/owner/site", ""}) {
		t.Errorf("request = %+v", got)
	}
}

func TestGitHubPages_GatedLicenseURLFetchedAsPlainText(t *testing.T) {
	e := newEnv()
	const licenseURL = "https://dotnet.github.io/project/LICENSE.txt"
	e.fetcher.texts[licenseURL] = "served text"

	text, ok := e.resolver(t, false).Resolve(context.Background(), pkg{LicenseURL: licenseURL})
	if !ok || text != "served text" {
		t.Errorf("Resolve() = (%q, %v), want (served text, true)", text, ok)
	}
	if len(e.fetcher.urls) != 1 || e.fetcher.urls[0] != licenseURL {
		t.Errorf("fetched %v, want only %s", e.fetcher.urls, licenseURL)
	}
}

func TestGitHubPages_Match(t *testing.T) {
	p := NewGitHubPages(nil, nil)
	tests := []struct {
		raw  string
		want bool
	}{
		{"https://owner.github.io/site", true},
		{"https://Owner.GitHub.IO/site", true},
		{"https://github.io/", true},
		{"https://notgithub.io/site", false},
		{"https://owner.github.io.example.com/", false},
		{"https://github.com/owner/repo", false},
	}
	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			u, _ := url.Parse(tt.raw)
			if got := p.match(u); got != tt.want {
				t.Errorf("match(%s) = %v, want %v", tt.raw, got, tt.want)
			}
		})
	}
}

func TestGitHubPages_LicenseURL(t *testing.T) {
	e := newEnv()
	e.fetcher.texts["https://raw.githubusercontent.com/LICENSE"] = "pages raw"
	text, ok := e.resolver(t, true).Resolve(context.Background(), pkg{LicenseURL: "https://owner.github.io/LICENSE"})
	if !ok || text != "pages raw" {
		t.Errorf("Resolve() = (%q, %v), want (pages raw, true)", text, ok)
	}
}

func TestNuGet(t *testing.T) {
	tests := []struct {
		name         string
		licenseURL   string
		want         string
		wantOK       bool
		wantRegistry bool
	}{
		{"catalog hit", "https://licenses.nuget.org/MIT", "MIT text", true, false},
		{"registry fallback", "https://licenses.nuget.org/LicenseRef-Custom", "registry text", true, true},
		{"unknown", "https://licenses.nuget.org/Nope-1.0", "", false, true},
		{"no id", "https://licenses.nuget.org/", "", false, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := newEnv()
			text, ok := e.resolver(t, false).Resolve(context.Background(), pkg{LicenseURL: tt.licenseURL})
			if text != tt.want || ok != tt.wantOK {
				t.Errorf("Resolve() = (%q, %v), want (%q, %v)", text, ok, tt.want, tt.wantOK)
			}
			if (len(e.registry.ids) > 0) != tt.wantRegistry {
				t.Errorf("registry calls = %v, want called %v", e.registry.ids, tt.wantRegistry)
			}
			if len(e.fetcher.urls) != 0 {
				t.Error("a matched source must not fall back to plain text")
			}
		})
	}
}

func TestNuGet_NilRegistry(t *testing.T) {
	n := NewNuGet(newEnv().gh, nil)
	u, _ := url.Parse("https://licenses.nuget.org/Nope-1.0")
	if _, ok := n.licenseURL(context.Background(), license.Request{URL: u}); ok {
		t.Error("licenseURL() should be not found")
	}
}

func TestOpenSource(t *testing.T) {
	tests := []struct {
		url    string
		want   string
		wantOK bool
		wantID string
	}{
		{"https://opensource.org/licenses/MIT", "MIT text", true, "MIT"},
		{"https://OpenSource.org/licenses/Apache-2.0", "Apache text", true, "Apache-2.0"},
		{"https://opensource.org/osd", "", false, ""},
		{"https://opensource.org/licenses", "", false, ""},
	}
	for _, tt := range tests {
		t.Run(tt.url, func(t *testing.T) {
			e := newEnv()
			text, ok := e.resolver(t, false).Resolve(context.Background(), pkg{LicenseURL: tt.url})
			if text != tt.want || ok != tt.wantOK {
				t.Errorf("Resolve() = (%q, %v), want (%q, %v)", text, ok, tt.want, tt.wantOK)
			}
			if tt.wantID != "" && (len(e.gh.ids) != 1 || e.gh.ids[0] != tt.wantID) {
				t.Errorf("catalog ids = %v, want [%s]", e.gh.ids, tt.wantID)
			}
		})
	}
}
