package repository

import (
	"context"
	"os"
	"path/filepath"
	"regexp"

	"github.com/viant/afs"
	"golang.org/x/mod/modfile"
)

// Detector walks up from a scanned root looking for the nearest project
// manifest, the way the teacher's Detector.findProjectRoot does, with
// Scarb.toml (Cairo's manifest) given priority over the generic markers a
// mixed-language monorepo might also carry above the Cairo sources.
type Detector struct {
	markers []string
}

// New returns a Detector configured with Scarb's manifest as the
// highest-priority marker, followed by the markers a Cairo corpus commonly
// sits alongside in a polyglot monorepo.
func New() *Detector {
	return &Detector{
		markers: []string{
			"Scarb.toml",
			"go.mod",
			"Cargo.toml",
			"pom.xml",
			"package.json",
			".git",
		},
	}
}

// Detect searches startDir and its ancestors for the nearest marker file and
// returns the Project it identifies. When no marker is found up to the
// filesystem root, it falls back to startDir itself named after its base
// directory, mirroring the teacher's "fall back to directory name" rule.
func (d *Detector) Detect(ctx context.Context, startDir string) Project {
	dir, err := filepath.Abs(startDir)
	if err != nil {
		dir = startDir
	}
	start := dir

	for {
		for _, marker := range d.markers {
			markerPath := filepath.Join(dir, marker)
			if _, statErr := os.Stat(markerPath); statErr == nil {
				return Project{
					RootPath: dir,
					Marker:   marker,
					Name:     d.extractName(ctx, dir, marker),
				}
			}
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}

	return Project{RootPath: start, Marker: "", Name: filepath.Base(start)}
}

func (d *Detector) extractName(ctx context.Context, rootPath, marker string) string {
	switch marker {
	case "Scarb.toml":
		if name := extractScarbPackageName(filepath.Join(rootPath, marker)); name != "" {
			return name
		}
	case "go.mod":
		if name := extractGoModuleName(ctx, filepath.Join(rootPath, marker)); name != "" {
			return name
		}
	}
	return filepath.Base(rootPath)
}

var scarbNameRegex = regexp.MustCompile(`(?m)^\s*name\s*=\s*"([^"]+)"`)

// extractScarbPackageName pulls the `[package] name = "..."` field out of a
// Scarb.toml the same lightweight regex way the teacher's extractProjectName
// family reads Cargo.toml/pyproject.toml — no TOML parser dependency exists
// in the pack, and Scarb's manifest is a strict syntactic subset of Cargo's.
func extractScarbPackageName(scarbPath string) string {
	data, err := os.ReadFile(scarbPath)
	if err != nil {
		return ""
	}
	matches := scarbNameRegex.FindSubmatch(data)
	if len(matches) < 2 {
		return ""
	}
	return string(matches[1])
}

// extractGoModuleName mirrors the teacher's extractGoModuleName: prefer
// afs (so a remote-backed go.mod resolves the same as a local one), fall
// back to a direct read, and parse with modfile exactly as the teacher does.
func extractGoModuleName(ctx context.Context, goModPath string) string {
	fs := afs.New()
	content, _ := fs.DownloadWithURL(ctx, goModPath)
	if len(content) == 0 {
		content, _ = os.ReadFile(goModPath)
	}
	if len(content) == 0 {
		return ""
	}
	mod, err := modfile.Parse(goModPath, content, nil)
	if err != nil || mod.Module == nil {
		return ""
	}
	return mod.Module.Mod.Path
}
