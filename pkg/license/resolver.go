package license

import (
	"bytes"
	"context"
	"io"
	"net/url"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/noticegen/pkg/cache"
	"github.com/matzehuels/noticegen/pkg/errors"
	"github.com/matzehuels/noticegen/pkg/integrations"
)

// DefaultMaxRedirects is the redirect hop ceiling used when
// [Options.MaxRedirects] is zero.
const DefaultMaxRedirects = 10

// maxEntrySize bounds how much of an embedded license file is read.
const maxEntrySize = 4 << 20

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// Source names the signal that produced a license text.
type Source string

const (
	SourceNone       Source = ""
	SourceFile       Source = "file"
	SourceRepository Source = "repository"
	SourceLicenseURL Source = "license-url"
	SourceProjectURL Source = "project-url"
)

// PlainTextFetcher downloads a URL as license text.
type PlainTextFetcher interface {
	PlainText(ctx context.Context, u *url.URL) (string, bool)
}

// RedirectProber reports where a URL redirects to without following it.
type RedirectProber interface {
	RedirectTarget(ctx context.Context, u *url.URL) (*url.URL, bool)
}

// Options configures a [Resolver].
type Options struct {
	Registry     *Registry        // Required
	Fetcher      PlainTextFetcher // Required; last resort for license URLs
	Prober       RedirectProber   // Required
	Cache        cache.Cache      // Defaults to a new cache.MemoryCache
	AllowUnsafe  bool             // Consider unsafe capabilities
	MaxRedirects int              // Redirect hops per URL; 0 selects DefaultMaxRedirects
	Logger       *log.Logger      // Defaults to log.Default()
}

// Resolver finds license text for packages. It is safe for concurrent use
// when its collaborators are.
type Resolver struct {
	registry     *Registry
	fetcher      PlainTextFetcher
	prober       RedirectProber
	cache        cache.Cache
	allowUnsafe  bool
	maxRedirects int
	logger       *log.Logger
}

// New creates a Resolver. It fails with an errors.ErrCodeInvalidInput error
// when a required collaborator is nil.
func New(opts Options) (*Resolver, error) {
	switch {
	case opts.Registry == nil:
		return nil, errors.Required("registry")
	case opts.Fetcher == nil:
		return nil, errors.Required("plain text fetcher")
	case opts.Prober == nil:
		return nil, errors.Required("redirect prober")
	}
	if opts.MaxRedirects < 0 {
		return nil, errors.New(errors.ErrCodeInvalidInput, "max redirects must not be negative, got %d", opts.MaxRedirects)
	}

	r := &Resolver{
		registry:     opts.Registry,
		fetcher:      opts.Fetcher,
		prober:       opts.Prober,
		cache:        opts.Cache,
		allowUnsafe:  opts.AllowUnsafe,
		maxRedirects: opts.MaxRedirects,
		logger:       opts.Logger,
	}
	if r.cache == nil {
		r.cache = cache.NewMemoryCache()
	}
	if r.maxRedirects == 0 {
		r.maxRedirects = DefaultMaxRedirects
	}
	if r.logger == nil {
		r.logger = log.Default()
	}
	return r, nil
}

// Resolve returns the license text for pkg.
func (r *Resolver) Resolve(ctx context.Context, pkg Package) (string, bool) {
	text, _, ok := r.ResolveWithSource(ctx, pkg)
	return text, ok
}

// ResolveWithSource is like [Resolver.Resolve] and also reports which
// signal produced the text.
func (r *Resolver) ResolveWithSource(ctx context.Context, pkg Package) (string, Source, bool) {
	sig := pkg.Signals()

	if sig.LicenseFile != "" {
		if text, ok := r.fromFile(pkg, sig.LicenseFile); ok {
			return text, SourceFile, true
		}
	}

	if sig.Repository.URL != "" && sig.Repository.Commit != "" {
		if text, ok := r.fromRepository(ctx, sig.Repository); ok {
			return text, SourceRepository, true
		}
	}

	if sig.LicenseURL != "" {
		if text, ok := r.fromURL(ctx, FamilyLicenseURL, sig.LicenseURL); ok {
			return text, SourceLicenseURL, true
		}
	}

	if sig.ProjectURL != "" {
		if text, ok := r.fromURL(ctx, FamilyProject, sig.ProjectURL); ok {
			return text, SourceProjectURL, true
		}
	}

	return "", SourceNone, false
}

func (r *Resolver) fromFile(pkg Package, name string) (string, bool) {
	rc, err := pkg.OpenEntry(name)
	if err != nil {
		r.logger.Error("open embedded license", "file", name, "err", err)
		return "", false
	}
	defer rc.Close()

	data, err := io.ReadAll(io.LimitReader(rc, maxEntrySize))
	if err != nil {
		r.logger.Error("read embedded license", "file", name, "err", err)
		return "", false
	}
	data = bytes.TrimPrefix(data, utf8BOM)
	return string(data), len(data) > 0
}

func (r *Resolver) fromRepository(ctx context.Context, repo Repository) (string, bool) {
	raw := integrations.NormalizeRepoURL(repo.URL)
	u, ok := r.parse(raw, FamilyRepository)
	if !ok {
		return "", false
	}
	key := cache.RepositoryKey(raw, repo.Commit)
	return r.cache.GetOrCreate(ctx, cache.KeyTypeRepository, key, func(ctx context.Context) (string, bool) {
		return r.chase(ctx, FamilyRepository, Request{URL: u, VCSType: repo.Type, Commit: repo.Commit})
	})
}

func (r *Resolver) fromURL(ctx context.Context, f Family, raw string) (string, bool) {
	u, ok := r.parse(raw, f)
	if !ok {
		return "", false
	}
	return r.cache.GetOrCreate(ctx, cache.KeyTypeURL, raw, func(ctx context.Context) (string, bool) {
		return r.chase(ctx, f, Request{URL: u})
	})
}

func (r *Resolver) parse(raw string, f Family) (*url.URL, bool) {
	if err := errors.ValidateURL(raw); err != nil {
		r.logger.Error("invalid url", "family", f, "url", raw, "err", err)
		return nil, false
	}
	u, err := url.Parse(raw)
	if err != nil || u.Host == "" {
		r.logger.Error("invalid url", "family", f, "url", raw, "err", err)
		return nil, false
	}
	return u, true
}
