// Package nupkg reads NuGet package archives.
//
// A .nupkg file is a zip archive with a single .nuspec manifest at its root.
// [Open] decodes the manifest and exposes the license hints it carries as
// [license.Signals], so an [Archive] can be handed straight to the license
// resolver:
//
//	a, err := nupkg.Open("newtonsoft.json.13.0.3.nupkg")
//	if err != nil {
//	    return err
//	}
//	defer a.Close()
//	text, ok := resolver.Resolve(ctx, a)
//
// Entry names are matched case-insensitively, with backslashes treated as
// forward slashes, because .nuspec files written on Windows refer to
// "docs\LICENSE.txt" while the archive stores "docs/LICENSE.txt".
package nupkg
