package notices

import (
	"context"
	"io"
	"iter"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/noticegen/pkg/errors"
	"github.com/matzehuels/noticegen/pkg/license"
	"github.com/matzehuels/noticegen/pkg/nupkg"
	"github.com/matzehuels/noticegen/pkg/observability"
	"github.com/matzehuels/noticegen/pkg/project"
)

// LicenseResolver finds the license text of one package.
type LicenseResolver interface {
	ResolveWithSource(ctx context.Context, pkg license.Package) (string, license.Source, bool)
}

// Archive is an open package archive.
type Archive interface {
	license.Package
	io.Closer
}

// OpenFunc opens the package archive at path.
type OpenFunc func(path string) (Archive, error)

// OpenNupkg opens a NuGet package archive.
func OpenNupkg(path string) (Archive, error) {
	a, err := nupkg.Open(path)
	if err != nil {
		return nil, err
	}
	return a, nil
}

// Options configures a [Generator].
type Options struct {
	Resolver LicenseResolver // Required
	Open     OpenFunc        // Defaults to OpenNupkg
	Logger   *log.Logger     // Defaults to log.Default()
}

// Summary reports the outcome of [Generator.Generate].
type Summary struct {
	Libraries int // Libraries in the input
	Resolved  int // Libraries with a license
	Groups    int // Distinct license texts written
}

// Unresolved returns the number of libraries left out of the output.
func (s Summary) Unresolved() int { return s.Libraries - s.Resolved }

// Generator resolves and groups library licenses.
type Generator struct {
	resolver LicenseResolver
	open     OpenFunc
	logger   *log.Logger
}

// NewGenerator creates a Generator.
func NewGenerator(opts Options) (*Generator, error) {
	if opts.Resolver == nil {
		return nil, errors.Required("license resolver")
	}
	g := &Generator{resolver: opts.Resolver, open: opts.Open, logger: opts.Logger}
	if g.open == nil {
		g.open = OpenNupkg
	}
	if g.logger == nil {
		g.logger = log.Default()
	}
	return g, nil
}

// ResolveAll resolves libs in order and yields one [Group] per distinct
// license text, in order of first appearance. Groups are yielded once every
// library has been resolved, so each group is complete.
//
// Cancellation is checked before each library; a cancelled run yields the
// context error and no groups.
func (g *Generator) ResolveAll(ctx context.Context, libs []project.Library) iter.Seq2[Group, error] {
	return func(yield func(Group, error) bool) {
		groups := newGrouper()
		for _, lib := range libs {
			if err := ctx.Err(); err != nil {
				yield(Group{}, err)
				return
			}
			if text, ok := g.resolve(ctx, lib); ok {
				groups.add(text, lib)
			}
		}
		if err := ctx.Err(); err != nil {
			yield(Group{}, err)
			return
		}
		for _, grp := range groups.groups {
			if !yield(grp, nil) {
				return
			}
		}
	}
}

func (g *Generator) resolve(ctx context.Context, lib project.Library) (string, bool) {
	hooks := observability.Resolve()
	hooks.OnLibraryStart(ctx, lib.PackagePath)
	start := time.Now()

	text, source, ok := g.resolveLibrary(ctx, lib)
	hooks.OnLibraryComplete(ctx, lib.PackagePath, string(source), ok, time.Since(start))

	if !ok && ctx.Err() == nil {
		g.logger.Warn("no license found, verify manually",
			"library", lib.RelativeOutputPath, "source", lib.SourcePath)
	}
	return text, ok
}

func (g *Generator) resolveLibrary(ctx context.Context, lib project.Library) (string, license.Source, bool) {
	g.logger.Info("resolving license", "library", lib.RelativeOutputPath)
	if lib.PackagePath == "" {
		g.logger.Error("package path is empty", "library", lib.RelativeOutputPath)
		return "", license.SourceNone, false
	}

	pkg, err := g.open(lib.PackagePath)
	if err != nil {
		g.logger.Error("open package", "library", lib.RelativeOutputPath, "package", lib.PackagePath, "err", err)
		return "", license.SourceNone, false
	}
	defer pkg.Close()

	text, source, ok := g.resolver.ResolveWithSource(ctx, pkg)
	if ok {
		g.logger.Debug("license resolved", "library", lib.RelativeOutputPath, "source", source)
	}
	return text, source, ok
}

// Generate resolves libs and writes every group to w. The summary is valid
// even when an error is returned.
func (g *Generator) Generate(ctx context.Context, libs []project.Library, w *Writer) (Summary, error) {
	summary := Summary{Libraries: len(libs)}

	var pending *Group
	for grp, err := range g.ResolveAll(ctx, libs) {
		if err != nil {
			return summary, err
		}
		if pending != nil {
			if err := w.WriteGroup(*pending, false); err != nil {
				return summary, err
			}
			summary.Groups++
			summary.Resolved += len(pending.Libraries)
		}
		pending = &grp
	}
	if pending != nil {
		if err := w.WriteGroup(*pending, true); err != nil {
			return summary, err
		}
		summary.Groups++
		summary.Resolved += len(pending.Libraries)
	}
	return summary, nil
}
