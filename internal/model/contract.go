package model

// ContractInfo is the shared shape for every top-level declaration kind:
// contracts, interfaces, traits, components, modules and synthesized
// stubs differ only by Kind. FilePath is empty for stubs.
type ContractInfo struct {
	Name     string     `json:"name" yaml:"name"`
	FilePath string     `json:"file_path,omitempty" yaml:"file_path,omitempty"`
	Kind     EntityKind `json:"kind" yaml:"kind"`

	Functions   []*FunctionInfo `json:"functions" yaml:"functions"`
	StorageVars []StorageVar    `json:"storage_vars" yaml:"storage_vars"`
	Events      []Event         `json:"events" yaml:"events"`
	Imports     []*ImportInfo   `json:"imports" yaml:"imports"`

	// StubModules maps an unresolved import's module path to the stub
	// ContractInfo materialized for it. Populated by the Stub Synthesizer.
	StubModules map[string]*ContractInfo `json:"stub_modules,omitempty" yaml:"stub_modules,omitempty"`

	UnresolvedCalls map[string]struct{} `json:"-" yaml:"-"`
	UnresolvedTypes map[string]struct{} `json:"-" yaml:"-"`

	ParseErrors []ParseError `json:"parse_errors,omitempty" yaml:"parse_errors,omitempty"`
	Warnings    []Warning    `json:"warnings,omitempty" yaml:"warnings,omitempty"`

	// SourceHash fingerprints the originating file content. The pipeline
	// sets it on each file's module-level entry only; it is empty for stubs
	// and for nested-declaration entries.
	SourceHash string `json:"source_hash,omitempty" yaml:"source_hash,omitempty"`
}

// NewContractInfo returns a ContractInfo with its set-valued fields
// initialized, ready for population by the parser.
func NewContractInfo(name string, kind EntityKind) *ContractInfo {
	return &ContractInfo{
		Name:            name,
		Kind:            kind,
		UnresolvedCalls: map[string]struct{}{},
		UnresolvedTypes: map[string]struct{}{},
	}
}

// AddUnresolvedCall records a callee name the linker/analyzer could not
// attribute to a resolved import.
func (c *ContractInfo) AddUnresolvedCall(name string) {
	if c.UnresolvedCalls == nil {
		c.UnresolvedCalls = map[string]struct{}{}
	}
	c.UnresolvedCalls[name] = struct{}{}
}

// AddUnresolvedType records a type name the linker/analyzer could not
// attribute to a resolved import.
func (c *ContractInfo) AddUnresolvedType(name string) {
	if c.UnresolvedTypes == nil {
		c.UnresolvedTypes = map[string]struct{}{}
	}
	c.UnresolvedTypes[name] = struct{}{}
}

// LookupFunction returns the function with the given name, or nil.
func (c *ContractInfo) LookupFunction(name string) *FunctionInfo {
	for _, f := range c.Functions {
		if f.Name == name {
			return f
		}
	}
	return nil
}
