package project

import (
	"encoding/json"
	"io"
	"maps"
	"os"
	"path"
	"path/filepath"
	"slices"
	"strings"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/noticegen/pkg/errors"
)

const (
	// AssetsDir is the restore output directory relative to the project.
	AssetsDir = "obj"

	// AssetsFile is the restore output file name.
	AssetsFile = "project.assets.json"

	// placeholder marks an empty asset folder in the assets file.
	placeholder = "_._"
)

// ProjectExtensions are the MSBuild project file types recognised by
// [FindProjectFile].
var ProjectExtensions = []string{".csproj", ".fsproj", ".vbproj"}

// Library is one dependency artifact and the package archive it came from.
type Library struct {
	SourcePath         string // Absolute path of the asset in the package folder
	RelativeOutputPath string // Path of the asset in the application output
	PackagePath        string // Path of the .nupkg archive
}

// Options configures [Load] and [Parse].
type Options struct {
	// Framework selects one target framework (e.g. "net8.0"). Empty merges
	// every target; a package's output file is listed once, from the first
	// target in name order that ships it.
	Framework string

	Logger *log.Logger // Defaults to log.Default()
}

// FindProjectFile returns the single project file in dir.
func FindProjectFile(dir string) (string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return "", errors.Wrap(errors.ErrCodeProjectNotFound, err, "read %s", dir)
	}

	var found []string
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		ext := strings.ToLower(filepath.Ext(e.Name()))
		if slices.Contains(ProjectExtensions, ext) {
			found = append(found, filepath.Join(dir, e.Name()))
		}
	}

	switch len(found) {
	case 0:
		return "", errors.New(errors.ErrCodeProjectNotFound, "no C#, F#, or Visual Basic project file found in %s", dir)
	case 1:
		return found[0], nil
	default:
		return "", errors.New(errors.ErrCodeInvalidProject, "more than one project file in %s: %s", dir, strings.Join(found, ", "))
	}
}

// Load reads the assets file below projectDir.
func Load(projectDir string, opts Options) ([]Library, error) {
	var libs []Library
	err := readAssets(projectDir, func(r io.Reader) (err error) {
		libs, err = Parse(r, opts)
		return err
	})
	return libs, err
}

// Frameworks returns the target frameworks restored for the project in
// projectDir, sorted and without runtime identifiers.
func Frameworks(projectDir string) ([]string, error) {
	var assets assetsFile
	err := readAssets(projectDir, func(r io.Reader) error {
		return json.NewDecoder(r).Decode(&assets)
	})
	if err != nil {
		return nil, err
	}
	var tfms []string
	for _, name := range slices.Sorted(maps.Keys(assets.Targets)) {
		tfm, _, _ := strings.Cut(name, "/")
		if !slices.Contains(tfms, tfm) {
			tfms = append(tfms, tfm)
		}
	}
	return tfms, nil
}

func readAssets(projectDir string, decode func(io.Reader) error) error {
	assetsPath := filepath.Join(projectDir, AssetsDir, AssetsFile)
	f, err := os.Open(assetsPath)
	if err != nil {
		if os.IsNotExist(err) {
			return errors.New(errors.ErrCodeProjectNotFound,
				"%s not found; run \"dotnet restore\" in %s first", filepath.Join(AssetsDir, AssetsFile), projectDir)
		}
		return errors.Wrap(errors.ErrCodeInvalidProject, err, "open %s", assetsPath)
	}
	defer f.Close()

	if err := decode(f); err != nil {
		return errors.Wrap(errors.ErrCodeInvalidProject, err, "read %s", assetsPath)
	}
	return nil
}

type assetsFile struct {
	Targets        map[string]map[string]targetLibrary `json:"targets"`
	Libraries      map[string]libraryInfo              `json:"libraries"`
	PackageFolders map[string]json.RawMessage          `json:"packageFolders"`
}

type targetLibrary struct {
	Type    string                     `json:"type"`
	Runtime map[string]json.RawMessage `json:"runtime"`
}

type libraryInfo struct {
	Type string `json:"type"`
	Path string `json:"path"`
}

// Parse decodes an assets file from r.
func Parse(r io.Reader, opts Options) ([]Library, error) {
	logger := opts.Logger
	if logger == nil {
		logger = log.Default()
	}

	var assets assetsFile
	if err := json.NewDecoder(r).Decode(&assets); err != nil {
		return nil, err
	}

	targets, err := selectTargets(assets.Targets, opts.Framework)
	if err != nil {
		return nil, err
	}
	folders := slices.Sorted(maps.Keys(assets.PackageFolders))

	var libs []Library
	seen := make(map[string]bool)
	for _, target := range targets {
		entries := assets.Targets[target]
		for _, key := range slices.Sorted(maps.Keys(entries)) {
			entry := entries[key]
			if entry.Type != "package" {
				continue
			}
			info, ok := assets.Libraries[key]
			if !ok || info.Path == "" {
				logger.Warn("library missing from assets file", "library", key, "target", target)
				continue
			}
			id, version, ok := strings.Cut(key, "/")
			if !ok {
				logger.Warn("malformed library key", "library", key)
				continue
			}

			dir := packageDir(folders, info.Path)
			pkgPath := filepath.Join(dir, strings.ToLower(id)+"."+strings.ToLower(version)+".nupkg")
			for _, asset := range slices.Sorted(maps.Keys(entry.Runtime)) {
				out := path.Base(asset)
				if out == placeholder {
					continue
				}
				key := pkgPath + "\x00" + out
				if seen[key] {
					continue
				}
				seen[key] = true
				libs = append(libs, Library{
					SourcePath:         filepath.Join(dir, filepath.FromSlash(asset)),
					RelativeOutputPath: out,
					PackagePath:        pkgPath,
				})
			}
		}
	}
	return libs, nil
}

func selectTargets(targets map[string]map[string]targetLibrary, framework string) ([]string, error) {
	names := slices.Sorted(maps.Keys(targets))
	if framework == "" {
		return names, nil
	}

	var selected []string
	for _, name := range names {
		tfm, _, _ := strings.Cut(name, "/")
		if strings.EqualFold(tfm, framework) {
			selected = append(selected, name)
		}
	}
	if len(selected) == 0 {
		return nil, errors.New(errors.ErrCodeInvalidProject,
			"target framework %q not restored (available: %s)", framework, strings.Join(names, ", "))
	}
	return selected, nil
}

// packageDir returns the directory holding an extracted package. The first
// package folder that contains it wins; when none does (the cache was
// cleared) the first folder is assumed.
func packageDir(folders []string, libPath string) string {
	rel := filepath.FromSlash(libPath)
	for _, folder := range folders {
		dir := filepath.Join(folder, rel)
		if _, err := os.Stat(dir); err == nil {
			return dir
		}
	}
	if len(folders) == 0 {
		return rel
	}
	return filepath.Join(folders[0], rel)
}
