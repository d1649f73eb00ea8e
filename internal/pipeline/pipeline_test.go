package pipeline_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/raptor-audit/cairo-parser/internal/model"
	"github.com/raptor-audit/cairo-parser/internal/pipeline"
)

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
}

// TestScenarioALocalImportResolves reproduces the spec's worked example
// end to end through the real scanner and filesystem.
func TestScenarioALocalImportResolves(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "src", "a", "foo.cairo"), `#[starknet::contract]
mod Foo {
fn f() {}
}`)
	writeFile(t, filepath.Join(root, "src", "b", "bar.cairo"), `use crate::a::foo::Foo;
#[starknet::contract]
mod Bar {
}`)

	result, err := pipeline.Run(context.Background(), []string{root}, pipeline.DefaultOptions())
	require.NoError(t, err)

	assert.Equal(t, 0, result.StubReport.TotalStubs)

	bar, ok := result.Contracts["Bar"]
	require.True(t, ok)
	require.Len(t, bar.Imports, 1)
	assert.True(t, bar.Imports[0].Resolved)
	assert.False(t, bar.Imports[0].StubCreated)

	_, hasFoo := result.Contracts["Foo"]
	assert.True(t, hasFoo)
}

// TestScenarioBExternalImportIsStubbed reproduces the spec's external-import
// stubbing example end to end.
func TestScenarioBExternalImportIsStubbed(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "src", "m.cairo"), `use core::array::ArrayTrait;
mod M {
}`)

	result, err := pipeline.Run(context.Background(), []string{root}, pipeline.DefaultOptions())
	require.NoError(t, err)

	m, ok := result.Contracts["M"]
	require.True(t, ok)
	require.Len(t, m.Imports, 1)
	assert.False(t, m.Imports[0].Resolved)
	assert.True(t, m.Imports[0].StubCreated)

	assert.Contains(t, result.StubReport.StubbedModules, "core::array")
	assert.False(t, result.ExitNonZero)
}

// TestScenarioCStubMissingFalseFailsTheRun reproduces the spec's
// stub_missing=false failure example.
func TestScenarioCStubMissingFalseFailsTheRun(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "src", "m.cairo"), `use core::array::ArrayTrait;
mod M {
}`)

	opts := pipeline.DefaultOptions()
	opts.StubMissing = false
	result, err := pipeline.Run(context.Background(), []string{root}, opts)
	require.NoError(t, err)

	m := result.Contracts["M"]
	require.Len(t, m.Imports, 1)
	assert.False(t, m.Imports[0].Resolved)
	assert.False(t, m.Imports[0].StubCreated)

	require.Len(t, m.ParseErrors, 1)
	assert.Equal(t, model.DiagUnresolvedImport, m.ParseErrors[0].Kind)
	assert.True(t, result.ExitNonZero)
}

// TestReparsingStubUpgradesToReal implements testable property 7: once a
// root containing the real module is included in the scan, its import
// resolves for real instead of falling back to a stub. A first run sees
// only the importer and gets a stub; a second run over both roots shows
// the same import resolved with no stub created.
func TestReparsingStubUpgradesToReal(t *testing.T) {
	importerRoot := t.TempDir()
	writeFile(t, filepath.Join(importerRoot, "src", "b", "bar.cairo"), `use crate::a::foo::Foo;
mod Bar {
}`)

	stubbed, err := pipeline.Run(context.Background(), []string{importerRoot}, pipeline.DefaultOptions())
	require.NoError(t, err)
	bar := stubbed.Contracts["Bar"]
	require.Len(t, bar.Imports, 1)
	assert.False(t, bar.Imports[0].Resolved)
	assert.True(t, bar.Imports[0].StubCreated)

	realRoot := t.TempDir()
	writeFile(t, filepath.Join(realRoot, "src", "a", "foo.cairo"), `mod Foo {
}`)

	upgraded, err := pipeline.Run(context.Background(), []string{importerRoot, realRoot}, pipeline.DefaultOptions())
	require.NoError(t, err)

	bar2 := upgraded.Contracts["Bar"]
	require.Len(t, bar2.Imports, 1)
	assert.True(t, bar2.Imports[0].Resolved)
	assert.False(t, bar2.Imports[0].StubCreated)

	foo, ok := upgraded.Contracts["Foo"]
	require.True(t, ok)
	assert.Equal(t, model.KindModule, foo.Kind)
}

// TestAnalysisPreservesInputFileOrder implements the input-file-order half
// of testable property 6: contract names that sort differently from their
// declaration order must not reorder the analysis array.
func TestAnalysisPreservesInputFileOrder(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "src", "1_zeta.cairo"), `mod Zeta {
fn z() {}
}`)
	writeFile(t, filepath.Join(root, "src", "2_alpha.cairo"), `mod Alpha {
fn a() {}
}`)

	opts := pipeline.DefaultOptions()
	opts.Analyze = true
	result, err := pipeline.Run(context.Background(), []string{root}, opts)
	require.NoError(t, err)

	var names []string
	for _, c := range result.Analysis {
		if len(c.Functions) > 0 {
			names = append(names, c.ContractName)
		}
	}
	assert.Equal(t, []string{"Zeta", "Alpha"}, names)
}

func TestRunDetectsScarbProject(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "Scarb.toml"), "[package]\nname = \"demo_contracts\"\n")
	writeFile(t, filepath.Join(root, "src", "m.cairo"), `mod M {
}`)

	result, err := pipeline.Run(context.Background(), []string{root}, pipeline.DefaultOptions())
	require.NoError(t, err)

	assert.Equal(t, "demo_contracts", result.ProjectName)
	assert.Equal(t, root, result.ScarbRoot)
}

func TestAnalyzeProducesCFGAndDataflow(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "src", "g.cairo"), `mod M {
fn g() {
let v = self.storage.balance.read();
self.storage.balance.write(v + 1);
}
}`)

	opts := pipeline.DefaultOptions()
	opts.Analyze = true
	result, err := pipeline.Run(context.Background(), []string{root}, opts)
	require.NoError(t, err)

	var mAnalysis *model.ContractAnalysis
	for i := range result.Analysis {
		if result.Analysis[i].ContractName == "M" {
			mAnalysis = &result.Analysis[i]
		}
	}
	require.NotNil(t, mAnalysis)
	require.Len(t, mAnalysis.Functions, 1)

	fa := mAnalysis.Functions[0]
	assert.True(t, fa.HasBody)
	require.NotNil(t, fa.CFG)
	require.NotNil(t, fa.Dataflow)
	assert.Len(t, fa.Dataflow.StorageAccesses, 2)
}
