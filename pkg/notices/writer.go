package notices

import (
	"bufio"
	"io"
	"path/filepath"
	"slices"
	"strings"
	"unicode/utf8"

	"github.com/matzehuels/noticegen/pkg/errors"
	"github.com/matzehuels/noticegen/pkg/project"
)

// Header opens every group in the notices document.
const Header = "License notice for the following libraries:"

const crlf = "\r\n"

// Writer serializes groups to the notices document.
type Writer struct {
	out io.Writer
	buf *bufio.Writer
}

// NewWriter creates a Writer on w. When w has a Sync method (an *os.File)
// it is called after the last group.
func NewWriter(w io.Writer) (*Writer, error) {
	if w == nil {
		return nil, errors.Required("output")
	}
	return &Writer{out: w, buf: bufio.NewWriter(w)}, nil
}

// WriteGroup appends g to the document and flushes it. isLast marks the
// final group of the run.
func (w *Writer) WriteGroup(g Group, isLast bool) error {
	libs := slices.Clone(g.Libraries)
	slices.SortStableFunc(libs, func(a, b project.Library) int {
		return strings.Compare(packageName(a.PackagePath), packageName(b.PackagePath))
	})

	width := utf8.RuneCountInString(Header)
	for _, lib := range libs {
		width = max(width, utf8.RuneCountInString(lib.RelativeOutputPath))
	}

	w.line(Header)
	for _, lib := range libs {
		w.line(lib.RelativeOutputPath)
	}
	w.line(strings.Repeat("=", width))
	w.line(g.LicenseText)
	w.buf.WriteString(crlf)

	if err := w.buf.Flush(); err != nil {
		return errors.Wrap(errors.ErrCodeInternal, err, "write notices")
	}
	if isLast {
		if s, ok := w.out.(interface{ Sync() error }); ok {
			if err := s.Sync(); err != nil {
				return errors.Wrap(errors.ErrCodeInternal, err, "sync notices")
			}
		}
	}
	return nil
}

func (w *Writer) line(s string) {
	w.buf.WriteString(s)
	w.buf.WriteString(crlf)
}

// packageName is the archive file name without its extension.
func packageName(path string) string {
	base := filepath.Base(path)
	return strings.TrimSuffix(base, filepath.Ext(base))
}
