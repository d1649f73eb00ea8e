package link

import (
	"github.com/raptor-audit/cairo-parser/internal/model"
)

// Populate runs Pass 1 for a single parsed file. A file is itself a
// module: it is always inserted at its bare module path, carrying any
// function/storage/event found directly in the file plus its diagnostics.
// Each nested declaration found inside the file (an explicit
// mod/trait/contract/component) is additionally inserted at
// `<module_path>::<entity_name>`. The file's imports are attached to its
// first nested declaration, or to the file-level entry when the file
// declares none.
//
// Returns every ContractInfo created — the file-level one first, then one
// per nested declaration in source order — so the caller can keep a flat
// list for the reporter without re-walking the table.
func Populate(fp *model.FileParse, table *SymbolTable) []*model.ContractInfo {
	fileInfo := model.NewContractInfo(fp.ModulePath, model.KindModule)
	fileInfo.FilePath = fp.Path
	fileInfo.Functions = fp.Functions
	fileInfo.StorageVars = fp.StorageVars
	fileInfo.Events = fp.Events
	if len(fp.Declarations) == 0 {
		fileInfo.Imports = fp.Imports
	}
	fileInfo.ParseErrors = append(fileInfo.ParseErrors, fp.ParseErrors...)
	fileInfo.Warnings = append(fileInfo.Warnings, fp.Warnings...)
	fileInfo.SourceHash = fp.SourceHash

	if warn := table.Insert(fp.ModulePath, fileInfo); warn != nil {
		fileInfo.Warnings = append(fileInfo.Warnings, *warn)
	}

	out := []*model.ContractInfo{fileInfo}

	for i, decl := range fp.Declarations {
		key := fp.ModulePath + "::" + decl.Name

		info := model.NewContractInfo(decl.Name, decl.Kind)
		info.FilePath = fp.Path
		info.Functions = decl.Functions
		info.StorageVars = decl.StorageVars
		info.Events = decl.Events
		if i == 0 {
			info.Imports = fp.Imports
		}

		if warn := table.Insert(key, info); warn != nil {
			info.Warnings = append(info.Warnings, *warn)
		}

		out = append(out, info)
	}

	return out
}
