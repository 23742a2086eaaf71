package license

import (
	"context"

	"github.com/matzehuels/noticegen/pkg/observability"
)

// chase resolves req.URL with the first matching capability of family f,
// following HTTP redirects until one matches. Once a capability is chosen
// its answer is final, found or not.
//
// When nothing matches and the URL does not redirect, license URLs are
// fetched as plain text; other families are not found. A URL only unsafe
// capabilities claim while they are disabled is treated as unmatched for
// license URLs and ends the search for the other families, which are never
// contacted. Exceeding the hop ceiling is not found for every family.
func (r *Resolver) chase(ctx context.Context, f Family, req Request) (string, bool) {
	hooks := observability.Resolve()
	start := req.URL

	for hops := 0; ; hops++ {
		if ctx.Err() != nil {
			return "", false
		}

		if c, ok := r.registry.Find(f, req.URL, r.allowUnsafe); ok {
			r.logger.Debug("resolving", "family", f, "url", req.URL.String(), "safe", c.Safe())
			text, found := c.Resolve(ctx, req)
			return text, found && text != ""
		}

		if f != FamilyLicenseURL && !r.allowUnsafe && r.registry.Gated(f, req.URL) {
			r.logger.Debug("skipping unsafe source", "family", f, "url", req.URL.String())
			return "", false
		}

		if hops == r.maxRedirects {
			r.logger.Warn("too many redirects", "family", f, "url", start.String(), "hops", hops)
			hooks.OnRedirectLimit(ctx, f.String(), start.String(), hops)
			return "", false
		}

		next, ok := r.prober.RedirectTarget(ctx, req.URL)
		if !ok {
			break
		}
		r.logger.Debug("following redirect", "family", f, "from", req.URL.String(), "to", next.String())
		hooks.OnRedirect(ctx, f.String(), req.URL.String(), next.String())
		req.URL = next
	}

	if f != FamilyLicenseURL || ctx.Err() != nil {
		return "", false
	}
	text, ok := r.fetcher.PlainText(ctx, req.URL)
	return text, ok && text != ""
}
