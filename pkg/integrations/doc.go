// Package integrations provides HTTP clients for the remote license data sources.
//
// # Overview
//
// Each upstream has its own subpackage:
//
//   - [github]: GitHub REST API (license catalogue and repository licenses)
//   - [nuget]: licenses.nuget.org license text registry
//   - [web]: arbitrary URLs (plain-text fetch and redirect probing)
//
// # Client Pattern
//
// All clients embed the shared [Client] and expose (string, bool) lookups.
// Failures are logged where they happen and reported as not-found:
//
//	gh := github.NewClient(github.Options{Token: token, Logger: logger})
//	text, ok := gh.LicenseByID(ctx, "mit")
//
// # Shared Infrastructure
//
// [Client] maps HTTP status codes onto [ErrNotFound] and [ErrNetwork],
// retries transient failures through [httputil.Retry], and reports every
// request to [observability.HTTP].
//
// [github]: github.com/matzehuels/noticegen/pkg/integrations/github
// [nuget]: github.com/matzehuels/noticegen/pkg/integrations/nuget
// [web]: github.com/matzehuels/noticegen/pkg/integrations/web
// [httputil.Retry]: github.com/matzehuels/noticegen/pkg/httputil.Retry
// [observability.HTTP]: github.com/matzehuels/noticegen/pkg/observability.HTTP
package integrations
