// Package report renders a pipeline.Result as the root JSON/YAML object
// §6 describes: metadata, contracts keyed by name, the stub report, and
// the optional per-function analysis array.
package report

import (
	"encoding/json"
	"sort"

	"gopkg.in/yaml.v3"

	"github.com/raptor-audit/cairo-parser/internal/model"
)

// Metadata is the run-level summary block.
type Metadata struct {
	TotalFiles      int    `json:"total_files" yaml:"total_files"`
	TotalContracts  int    `json:"total_contracts" yaml:"total_contracts"`
	StubbingEnabled bool   `json:"stubbing_enabled" yaml:"stubbing_enabled"`
	ProjectName     string `json:"project_name,omitempty" yaml:"project_name,omitempty"`
	ScarbRoot       string `json:"scarb_root,omitempty" yaml:"scarb_root,omitempty"`
}

// StubReport mirrors link.StubReport in the serializable shape §6 names.
type StubReport struct {
	TotalStubs     int      `json:"total_stubs" yaml:"total_stubs"`
	TotalResolved  int      `json:"total_resolved" yaml:"total_resolved"`
	TotalSymbols   int      `json:"total_symbols" yaml:"total_symbols"`
	StubbedModules []string `json:"stubbed_modules" yaml:"stubbed_modules"`
}

// Document is the full root object, the thing that actually gets
// marshaled. Contracts is a plain map — encoding/json already sorts
// map keys lexicographically on marshal, which is what gives us
// property 6's byte-identical output across runs.
type Document struct {
	Metadata   Metadata                        `json:"metadata" yaml:"metadata"`
	Contracts  map[string]*model.ContractInfo  `json:"contracts" yaml:"contracts"`
	StubReport StubReport                      `json:"stub_report" yaml:"stub_report"`
	Analysis   []model.ContractAnalysis        `json:"analysis,omitempty" yaml:"analysis,omitempty"`
}

// PipelineResult is the subset of pipeline.Result the reporter needs.
// Defined here rather than imported to keep report free of a dependency
// on pipeline — the CLI wires the two together.
type PipelineResult struct {
	TotalFiles      int
	TotalContracts  int
	StubbingEnabled bool
	ProjectName     string
	ScarbRoot       string
	Contracts       map[string]*model.ContractInfo
	StubReport      StubReport
	Analysis        []model.ContractAnalysis
}

// Build assembles the Document from a pipeline result.
func Build(r PipelineResult) Document {
	return Document{
		Metadata: Metadata{
			TotalFiles:      r.TotalFiles,
			TotalContracts:  r.TotalContracts,
			StubbingEnabled: r.StubbingEnabled,
			ProjectName:     r.ProjectName,
			ScarbRoot:       r.ScarbRoot,
		},
		Contracts:  r.Contracts,
		StubReport: r.StubReport,
		Analysis:   r.Analysis,
	}
}

// JSON renders the document as indented JSON, encoding/json's map keys
// sorted lexically by default. gopkg.in/yaml.v3 does the same, so the
// two formats stay byte-for-byte consistent in key order.
func JSON(doc Document) ([]byte, error) {
	return json.MarshalIndent(doc, "", "  ")
}

// YAML renders the document as YAML. gopkg.in/yaml.v3 marshals map[string]T
// with keys sorted, same as encoding/json, so determinism carries over.
func YAML(doc Document) ([]byte, error) {
	return yaml.Marshal(doc)
}

// SortedContractNames returns doc.Contracts' keys sorted, for callers
// that want to walk the map in a defined order (e.g. a text summary).
func SortedContractNames(doc Document) []string {
	names := make([]string, 0, len(doc.Contracts))
	for name := range doc.Contracts {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
