package model

// Declaration is one nested contract/interface/trait/component/module
// declared inside a file (`#[starknet::contract] mod Foo { ... }`,
// `trait T { ... }`, a bare `mod X { ... }`). It is keyed in the symbol
// table under `<file's module path>::<Name>`, distinct from the file's own
// module entry.
type Declaration struct {
	Name        string
	Kind        EntityKind
	Line        int
	Functions   []*FunctionInfo
	StorageVars []StorageVar
	Events      []Event
}

// FileParse is the lexical parser's output for a single file. A file is
// itself a module, keyed in the symbol table at its bare module path: any
// function/storage/event encountered before (or outside) an explicit
// nested declaration belongs directly to the file, recorded here rather
// than in Declarations. Each explicit nested declaration found inside the
// file is appended to Declarations.
type FileParse struct {
	Path       string
	ModulePath string

	Functions   []*FunctionInfo
	StorageVars []StorageVar
	Events      []Event

	Declarations []*Declaration
	Imports      []*ImportInfo

	ParseErrors []ParseError
	Warnings    []Warning

	SourceHash string
}
