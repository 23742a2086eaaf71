package sources

import (
	"context"
	"net/url"

	"github.com/matzehuels/noticegen/pkg/integrations"
	"github.com/matzehuels/noticegen/pkg/license"
)

// OpenSource resolves opensource.org/licenses/{id} URLs through the GitHub
// license catalogue.
type OpenSource struct {
	catalog LicenseCatalog
}

// NewOpenSource creates the opensource.org source.
func NewOpenSource(catalog LicenseCatalog) *OpenSource {
	return &OpenSource{catalog: catalog}
}

// Register adds the source to the license URL family.
func (o *OpenSource) Register(r *license.Registry) {
	r.Register(license.FamilyLicenseURL, license.Func{IsSafe: true, Match: o.match, Fetch: o.licenseURL})
}

func (o *OpenSource) match(u *url.URL) bool {
	return hostIs(u, OpenSourceHost)
}

func (o *OpenSource) licenseURL(ctx context.Context, req license.Request) (string, bool) {
	segs := integrations.PathSegments(req.URL)
	if len(segs) < 2 || segs[0] != "licenses" {
		return "", false
	}
	return o.catalog.LicenseByID(ctx, segs[1])
}
