// Package pkg provides the core libraries for noticegen.
//
// # Overview
//
// Noticegen finds the license text of every third-party library a .NET
// project ships and writes a notices document that groups libraries sharing
// identical text. The pkg directory is organized into four main areas:
//
//  1. [license] - Domain logic (signal priority, capability dispatch, redirects)
//  2. [integrations] - External API clients (GitHub, NuGet license registry, web)
//  3. [notices] - Orchestration (resolve → group → write)
//  4. [project], [nupkg] - Inputs (restored project, package archives)
//
// # Architecture
//
// The typical data flow through noticegen:
//
//	obj/project.assets.json
//	         ↓
//	    [project] package (enumerate libraries)
//	         ↓
//	    [nupkg] package (read license signals from each .nupkg)
//	         ↓
//	    [license] package (file → repository → license URL → project URL)
//	         ↓
//	    [notices] package (group by text, write CRLF document)
//
// # Quick Start
//
//	gh := github.NewClient(github.Options{Token: os.Getenv("GITHUB_TOKEN")})
//	fetcher := web.NewFetcher(web.Options{})
//
//	reg := license.NewRegistry()
//	sources.RegisterDefaults(reg, sources.Clients{GitHub: gh, Fetcher: fetcher})
//
//	resolver, _ := license.New(license.Options{
//	    Registry: reg,
//	    Fetcher:  fetcher,
//	    Prober:   web.NewProber(web.Options{}),
//	})
//	gen, _ := notices.NewGenerator(notices.Options{Resolver: resolver})
//
//	libs, _ := project.Load(".", project.Options{})
//	w, _ := notices.NewWriter(f)
//	summary, err := gen.Generate(ctx, libs, w)
//
// # Main Packages
//
// [license] - The resolver. Tries the embedded license file, then the source
// repository at the packaged commit, then the license URL, then the project
// URL. URLs are dispatched to the first matching capability, following HTTP
// redirects until one matches. Outcomes are memoized per run.
//
// [license/sources] - Capabilities for github.com, *.github.io (unsafe),
// licenses.nuget.org and opensource.org.
//
// [integrations] - Shared HTTP client with retry and status mapping, plus the
// GitHub, NuGet registry and plain-web clients.
//
// [cache] - At-most-once memo for resolution outcomes.
//
// [observability] - Hooks for resolution, cache and HTTP events.
//
// # Testing
//
// Run tests:
//
//	go test ./pkg/...                # All tests
//	go test ./pkg/license/...        # Specific package
//	go test -run Example ./pkg/...   # Examples only
//
// [license]: https://pkg.go.dev/github.com/matzehuels/noticegen/pkg/license
// [license/sources]: https://pkg.go.dev/github.com/matzehuels/noticegen/pkg/license/sources
// [integrations]: https://pkg.go.dev/github.com/matzehuels/noticegen/pkg/integrations
// [notices]: https://pkg.go.dev/github.com/matzehuels/noticegen/pkg/notices
// [project]: https://pkg.go.dev/github.com/matzehuels/noticegen/pkg/project
// [nupkg]: https://pkg.go.dev/github.com/matzehuels/noticegen/pkg/nupkg
// [cache]: https://pkg.go.dev/github.com/matzehuels/noticegen/pkg/cache
// [observability]: https://pkg.go.dev/github.com/matzehuels/noticegen/pkg/observability
package pkg
