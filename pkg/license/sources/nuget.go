package sources

import (
	"context"
	"net/url"

	"github.com/matzehuels/noticegen/pkg/integrations"
	"github.com/matzehuels/noticegen/pkg/license"
)

// NuGet resolves licenses.nuget.org URLs. The first path segment is the
// license identifier; its text comes from the GitHub license catalogue,
// falling back to the registry itself when one is configured.
type NuGet struct {
	catalog  LicenseCatalog
	registry LicenseRegistry
}

// NewNuGet creates the NuGet source. registry may be nil.
func NewNuGet(catalog LicenseCatalog, registry LicenseRegistry) *NuGet {
	return &NuGet{catalog: catalog, registry: registry}
}

// Register adds the source to the license URL family.
func (n *NuGet) Register(r *license.Registry) {
	r.Register(license.FamilyLicenseURL, license.Func{IsSafe: true, Match: n.match, Fetch: n.licenseURL})
}

func (n *NuGet) match(u *url.URL) bool {
	return hostIs(u, NuGetHost)
}

func (n *NuGet) licenseURL(ctx context.Context, req license.Request) (string, bool) {
	segs := integrations.PathSegments(req.URL)
	if len(segs) == 0 {
		return "", false
	}
	id := segs[0]
	if text, ok := n.catalog.LicenseByID(ctx, id); ok {
		return text, true
	}
	if n.registry == nil || ctx.Err() != nil {
		return "", false
	}
	return n.registry.LicenseText(ctx, id)
}
