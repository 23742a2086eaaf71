package license

import "io"

// Signals are the license hints found in a package's metadata.
// Any field may be empty.
type Signals struct {
	LicenseFile string     // Archive entry holding the license text
	LicenseURL  string     // Declared license URL
	Repository  Repository // Source repository the package was built from
	ProjectURL  string     // Project home page
}

// Repository describes the source repository of a package.
type Repository struct {
	URL    string
	Type   string // VCS type, usually "git"
	Commit string
}

// Empty reports whether no signal is present.
func (s Signals) Empty() bool {
	return s.LicenseFile == "" && s.LicenseURL == "" && s.ProjectURL == "" &&
		(s.Repository.URL == "" || s.Repository.Commit == "")
}

// Package is the view of a package archive the resolver needs.
type Package interface {
	// Signals returns the license hints from the package metadata.
	Signals() Signals

	// OpenEntry opens a file inside the archive by name.
	OpenEntry(name string) (io.ReadCloser, error)
}
