// Package scanner implements the File Scanner component: it enumerates
// *.cairo files under a set of input roots, applies test-file exclusion,
// and derives each file's module path.
package scanner

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/viant/afs"
	"github.com/viant/afs/storage"

	"github.com/raptor-audit/cairo-parser/internal/model"
)

// Entry is one discovered source file paired with its derived module path.
type Entry struct {
	FilePath   string
	ModulePath string
}

// Options configures a scan.
type Options struct {
	// ExcludeTests applies the §4.1 test-file exclusion rules. DefaultOptions
	// sets it to true; a zero-value Options leaves test files in the scan.
	ExcludeTests bool
	// CollectAssets records non-.cairo files encountered under each root as
	// model.Asset entries, the way the teacher's ReadAssetsRecursively
	// gathers non-Go files alongside a Go package.
	CollectAssets bool
}

// DefaultOptions returns the spec's defaults (ExcludeTests: true).
func DefaultOptions() Options {
	return Options{ExcludeTests: true, CollectAssets: true}
}

// Result is the outcome of a scan: the ordered source entries plus any
// passthrough assets collected alongside them.
type Result struct {
	Entries []Entry
	Assets  []model.Asset
}

// Scan walks each root in order and returns the ordered, deduplicated list
// of (file_path, module_path) pairs, plus any collected passthrough assets.
// A file already seen under an earlier root is skipped on a later root
// ("first occurrence wins").
func Scan(ctx context.Context, roots []string, opts Options) (Result, error) {
	fs := afs.New()
	seen := map[string]bool{}
	var result Result

	for _, root := range roots {
		absRoot, err := filepath.Abs(root)
		if err != nil {
			return Result{}, err
		}

		visitor := func(ctx context.Context, baseURL, parent string, info os.FileInfo, reader io.Reader) (bool, error) {
			if info.IsDir() {
				if opts.ExcludeTests && isExcludedDir(info.Name()) {
					return false, nil
				}
				return true, nil
			}

			fullPath := filepath.Join(absRoot, parent, info.Name())
			if seen[fullPath] {
				return true, nil
			}

			if filepath.Ext(info.Name()) != ".cairo" {
				if opts.CollectAssets {
					seen[fullPath] = true
					result.Assets = append(result.Assets, model.Asset{
						Path:       fullPath,
						ModulePath: DeriveModulePath(fullPath, absRoot),
						Size:       info.Size(),
					})
				}
				return true, nil
			}

			if opts.ExcludeTests && isExcludedFile(fullPath, info.Name()) {
				return true, nil
			}
			seen[fullPath] = true
			result.Entries = append(result.Entries, Entry{
				FilePath:   fullPath,
				ModulePath: DeriveModulePath(fullPath, absRoot),
			})
			return true, nil
		}

		var onVisit storage.OnVisit = visitor
		if err := fs.Walk(ctx, absRoot, onVisit); err != nil {
			return Result{}, err
		}
	}

	return result, nil
}

// Diff is the added/removed file sets between two scans of the same roots.
type Diff struct {
	Added   []Entry
	Removed []Entry
}

// Rescan runs Scan again and diffs the new entries against a previous
// Result by file path, the way a watch-mode caller would avoid re-deriving
// module paths for files that haven't moved. It does not mutate previous.
func Rescan(ctx context.Context, roots []string, opts Options, previous Result) (Result, Diff, error) {
	next, err := Scan(ctx, roots, opts)
	if err != nil {
		return Result{}, Diff{}, err
	}

	prevByPath := make(map[string]Entry, len(previous.Entries))
	for _, e := range previous.Entries {
		prevByPath[e.FilePath] = e
	}
	nextByPath := make(map[string]Entry, len(next.Entries))
	for _, e := range next.Entries {
		nextByPath[e.FilePath] = e
	}

	var diff Diff
	for _, e := range next.Entries {
		if _, ok := prevByPath[e.FilePath]; !ok {
			diff.Added = append(diff.Added, e)
		}
	}
	for _, e := range previous.Entries {
		if _, ok := nextByPath[e.FilePath]; !ok {
			diff.Removed = append(diff.Removed, e)
		}
	}

	return next, diff, nil
}

func isExcludedDir(name string) bool {
	return name == "tests" || name == "test"
}

func isExcludedFile(fullPath, base string) bool {
	for _, seg := range strings.Split(filepath.ToSlash(fullPath), "/") {
		if seg == "tests" || seg == "test" {
			return true
		}
	}
	if base == "tests.cairo" {
		return true
	}
	if strings.HasPrefix(base, "test_") && strings.HasSuffix(base, ".cairo") {
		return true
	}
	if strings.HasSuffix(base, "_test.cairo") {
		return true
	}
	return false
}
