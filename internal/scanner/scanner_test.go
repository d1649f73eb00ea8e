package scanner_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/raptor-audit/cairo-parser/internal/scanner"
)

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
}

func TestScan(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "src", "lib.cairo"), "mod math;")
	writeFile(t, filepath.Join(root, "src", "math", "delta.cairo"), "fn delta() {}")
	writeFile(t, filepath.Join(root, "src", "math", "delta_test.cairo"), "fn test_delta() {}")
	writeFile(t, filepath.Join(root, "src", "tests", "ignored.cairo"), "fn ignored() {}")
	writeFile(t, filepath.Join(root, "Scarb.toml"), "[package]\nname = \"demo\"\n")

	result, err := scanner.Scan(context.Background(), []string{root}, scanner.DefaultOptions())
	require.NoError(t, err)

	var modulePaths []string
	for _, e := range result.Entries {
		modulePaths = append(modulePaths, e.ModulePath)
	}
	assert.ElementsMatch(t, []string{"", "math::delta"}, modulePaths)

	var assetPaths []string
	for _, a := range result.Assets {
		assetPaths = append(assetPaths, filepath.Base(a.Path))
	}
	assert.Contains(t, assetPaths, "Scarb.toml")
}

func TestScanDuplicateRootDeduplicates(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "src", "shared.cairo"), "fn a() {}")

	result, err := scanner.Scan(context.Background(), []string{root, root}, scanner.Options{ExcludeTests: true})
	require.NoError(t, err)
	require.Len(t, result.Entries, 1)
}

func TestRescanDetectsAddedAndRemovedFiles(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "src", "a.cairo"), "mod A;")

	first, err := scanner.Scan(context.Background(), []string{root}, scanner.DefaultOptions())
	require.NoError(t, err)
	require.Len(t, first.Entries, 1)

	require.NoError(t, os.Remove(filepath.Join(root, "src", "a.cairo")))
	writeFile(t, filepath.Join(root, "src", "b.cairo"), "mod B;")

	second, diff, err := scanner.Rescan(context.Background(), []string{root}, scanner.DefaultOptions(), first)
	require.NoError(t, err)
	require.Len(t, second.Entries, 1)

	require.Len(t, diff.Added, 1)
	assert.Equal(t, "b.cairo", filepath.Base(diff.Added[0].FilePath))
	require.Len(t, diff.Removed, 1)
	assert.Equal(t, "a.cairo", filepath.Base(diff.Removed[0].FilePath))
}
