// Package license finds the license text that applies to a package.
//
// # Overview
//
// A [Resolver] looks at the license signals a package exposes and tries
// them in a fixed order, returning the first non-empty text:
//
//  1. Embedded file: a license file shipped inside the package archive
//  2. Repository + commit: the license at the exact commit the package was built from
//  3. License URL: the URL the package declares as its license
//  4. Project URL: the project home page, usually a repository
//
// Steps 2 to 4 look the URL up in a [Registry] of capabilities. When no
// capability matches, the URL is probed for an HTTP redirect and the new
// target is tried, up to a hop ceiling. A license URL that matches nothing
// and does not redirect is fetched as plain text as a last resort.
//
// Every outcome of steps 2 to 4, including failures, is memoized by URL so
// libraries that share a license URL cost one round-trip.
//
// # Capabilities
//
// A [Capability] declares whether it is safe, which URLs it handles and how
// to turn one into license text. Unsafe capabilities guess (a GitHub Pages
// site is not necessarily its repository) and are skipped unless
// [Options.AllowUnsafe] is set. Concrete capabilities live in the sources
// subpackage; [Func] adapts plain functions.
//
// # Errors
//
// Resolution never fails with an error. Every problem along the way is
// logged and reported as "not found" (ok == false). Only [New] returns an
// error, when a required collaborator is missing.
package license
