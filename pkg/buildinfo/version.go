// Package buildinfo provides build-time version information.
//
// Variables are set via ldflags during build:
//
//	go build -ldflags "-X github.com/matzehuels/noticegen/pkg/buildinfo.Version=v1.0.0 \
//	    -X github.com/matzehuels/noticegen/pkg/buildinfo.Commit=$(git rev-parse HEAD)"
package buildinfo

import (
	"fmt"
	"runtime/debug"
)

// Name is the program name used in the user agent and version output.
const Name = "noticegen"

var (
	// Version is the semantic version (e.g., "v1.2.3").
	Version = "dev"

	// Commit is the git commit SHA.
	Commit = "none"

	// Date is the build timestamp.
	Date = "unknown"
)

// ResolvedVersion returns Version, falling back to the module version
// recorded by "go install" when no ldflags were given.
func ResolvedVersion() string {
	if Version != "dev" {
		return Version
	}
	if info, ok := debug.ReadBuildInfo(); ok && info.Main.Version != "" && info.Main.Version != "(devel)" {
		return info.Main.Version
	}
	return Version
}

// UserAgent returns the User-Agent header value sent with every outbound
// request. GitHub rejects API requests that do not carry one.
func UserAgent() string {
	return fmt.Sprintf("%s/%s", Name, ResolvedVersion())
}

// String returns the formatted build information.
func String() string {
	return fmt.Sprintf("version: %s\ncommit: %s\nbuilt: %s", ResolvedVersion(), Commit, Date)
}

// Template returns the version template string for cobra.
func Template() string {
	return fmt.Sprintf("{{.Name}} version %s\ncommit: %s\nbuilt: %s\n", ResolvedVersion(), Commit, Date)
}
