package nupkg

import (
	"archive/zip"
	"io"
	"net/url"
	"path/filepath"
	"strings"

	"github.com/matzehuels/noticegen/pkg/errors"
	"github.com/matzehuels/noticegen/pkg/license"
)

// Archive is an open package archive.
type Archive struct {
	path    string
	closer  io.Closer
	entries map[string]*zip.File
	meta    Metadata
}

var _ license.Package = (*Archive)(nil)

// Open opens the .nupkg file at path and decodes its manifest.
func Open(path string) (*Archive, error) {
	zr, err := zip.OpenReader(path)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodePackageNotFound, err, "open package %s", path)
	}
	a, err := newArchive(path, &zr.Reader)
	if err != nil {
		zr.Close()
		return nil, err
	}
	a.closer = zr
	return a, nil
}

// NewReader reads a package archive from r, which holds size bytes. name is
// used in error messages and by [Archive.Name].
func NewReader(r io.ReaderAt, size int64, name string) (*Archive, error) {
	zr, err := zip.NewReader(r, size)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidInput, err, "read package %s", name)
	}
	return newArchive(name, zr)
}

func newArchive(path string, zr *zip.Reader) (*Archive, error) {
	a := &Archive{path: path, entries: make(map[string]*zip.File, len(zr.File))}

	var manifest *zip.File
	for _, f := range zr.File {
		a.entries[entryKey(f.Name)] = f
		// Entry names are percent-encoded by the OPC packaging NuGet uses.
		if decoded, err := url.PathUnescape(f.Name); err == nil && decoded != f.Name {
			if _, dup := a.entries[entryKey(decoded)]; !dup {
				a.entries[entryKey(decoded)] = f
			}
		}
		if strings.Contains(f.Name, "/") || !strings.EqualFold(filepath.Ext(f.Name), ".nuspec") {
			continue
		}
		if manifest != nil {
			return nil, errors.New(errors.ErrCodeInvalidInput, "package %s has more than one .nuspec", path)
		}
		manifest = f
	}
	if manifest == nil {
		return nil, errors.New(errors.ErrCodeInvalidInput, "package %s has no .nuspec", path)
	}

	rc, err := manifest.Open()
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidInput, err, "open %s in %s", manifest.Name, path)
	}
	defer rc.Close()

	meta, err := ParseNuspec(rc)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidInput, err, "parse %s in %s", manifest.Name, path)
	}
	a.meta = meta
	return a, nil
}

func entryKey(name string) string {
	return strings.ToLower(strings.ReplaceAll(name, "\\", "/"))
}

// Name returns the path the archive was opened from.
func (a *Archive) Name() string { return a.path }

// Metadata returns the decoded manifest.
func (a *Archive) Metadata() Metadata { return a.meta }

// Signals implements [license.Package].
func (a *Archive) Signals() license.Signals { return a.meta.Signals() }

// OpenEntry implements [license.Package]. The lookup ignores case and
// accepts either slash direction.
func (a *Archive) OpenEntry(name string) (io.ReadCloser, error) {
	name = strings.ReplaceAll(name, "\\", "/")
	if err := errors.ValidateEntryName(name); err != nil {
		return nil, err
	}
	f, ok := a.entries[entryKey(name)]
	if !ok {
		return nil, errors.New(errors.ErrCodeEntryNotFound, "%s not found in %s", name, a.path)
	}
	return f.Open()
}

// Close releases the underlying file. It is a no-op for archives created
// with [NewReader].
func (a *Archive) Close() error {
	if a.closer == nil {
		return nil
	}
	return a.closer.Close()
}
