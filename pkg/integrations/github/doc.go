// Package github provides an HTTP client for the GitHub REST API.
//
// # Overview
//
// Two endpoints are used to obtain license text:
//
//   - GET /licenses/{id}: the canonical text of a well-known license
//     (JSON field "body")
//   - GET /repos/{owner}/{repo}/license[?ref={commit}]: the license file
//     detected in a repository (JSON fields "encoding" and "content")
//
// # Usage
//
//	client := github.NewClient(github.Options{Token: os.Getenv("GITHUB_TOKEN")})
//
//	text, ok := client.LicenseByID(ctx, "mit")
//	text, ok = client.RepositoryLicense(ctx, "/JamesNK/Newtonsoft.Json", "")
//
// Both lookups return ok=false for any failure. The cause is logged.
//
// # Authentication
//
// Credentials are optional but recommended to avoid rate limits. Without
// them the API allows 60 requests/hour. [Options.Token] is sent as a bearer
// token; [Options.OAuth] ("client_id:client_secret") is sent as basic auth.
// When both are set the token wins.
package github
