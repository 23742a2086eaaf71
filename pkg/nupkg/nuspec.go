package nupkg

import (
	"encoding/xml"
	"io"
	"net/url"
	"strings"

	"github.com/matzehuels/noticegen/pkg/license"
)

// ExpressionBaseURL is where NuGet publishes license expressions.
const ExpressionBaseURL = "https://licenses.nuget.org/"

// License types a .nuspec <license> element may declare.
const (
	LicenseTypeFile       = "file"
	LicenseTypeExpression = "expression"
)

// Metadata is the subset of a .nuspec manifest relevant to licensing.
type Metadata struct {
	ID         string
	Version    string
	License    License
	LicenseURL string
	ProjectURL string
	Repository license.Repository
}

// License is the <license> element: a file inside the archive or an SPDX
// expression.
type License struct {
	Type  string
	Value string
}

// Signals converts the manifest into resolver input.
//
// An expression license contributes the licenses.nuget.org URL for the
// expression when the manifest declares no license URL of its own.
func (m Metadata) Signals() license.Signals {
	sig := license.Signals{
		LicenseURL: m.LicenseURL,
		Repository: m.Repository,
		ProjectURL: m.ProjectURL,
	}
	switch m.License.Type {
	case LicenseTypeFile:
		sig.LicenseFile = m.License.Value
	case LicenseTypeExpression:
		if sig.LicenseURL == "" && m.License.Value != "" {
			sig.LicenseURL = ExpressionBaseURL + url.PathEscape(m.License.Value)
		}
	}
	return sig
}

type nuspecPackage struct {
	Metadata nuspecMetadata `xml:"metadata"`
}

type nuspecMetadata struct {
	ID         string            `xml:"id"`
	Version    string            `xml:"version"`
	License    *nuspecLicense    `xml:"license"`
	LicenseURL string            `xml:"licenseUrl"`
	ProjectURL string            `xml:"projectUrl"`
	Repository *nuspecRepository `xml:"repository"`
}

type nuspecLicense struct {
	Type  string `xml:"type,attr"`
	Value string `xml:",chardata"`
}

type nuspecRepository struct {
	Type   string `xml:"type,attr"`
	URL    string `xml:"url,attr"`
	Commit string `xml:"commit,attr"`
}

// ParseNuspec decodes a .nuspec manifest. Element names are matched
// regardless of the schema namespace, which differs between NuGet versions.
func ParseNuspec(r io.Reader) (Metadata, error) {
	var pkg nuspecPackage
	if err := xml.NewDecoder(r).Decode(&pkg); err != nil {
		return Metadata{}, err
	}

	m := pkg.Metadata
	meta := Metadata{
		ID:         strings.TrimSpace(m.ID),
		Version:    strings.TrimSpace(m.Version),
		LicenseURL: strings.TrimSpace(m.LicenseURL),
		ProjectURL: strings.TrimSpace(m.ProjectURL),
	}
	if m.License != nil {
		meta.License = License{
			Type:  strings.ToLower(strings.TrimSpace(m.License.Type)),
			Value: strings.TrimSpace(m.License.Value),
		}
	}
	if m.Repository != nil {
		meta.Repository = license.Repository{
			URL:    strings.TrimSpace(m.Repository.URL),
			Type:   strings.TrimSpace(m.Repository.Type),
			Commit: strings.TrimSpace(m.Repository.Commit),
		}
	}
	return meta, nil
}
