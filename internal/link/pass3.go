package link

import (
	"sort"

	"github.com/raptor-audit/cairo-parser/internal/model"
)

// StubReport summarizes Pass 3's output for the run-level metadata block.
type StubReport struct {
	TotalStubs     int
	TotalResolved  int
	TotalSymbols   int
	StubbedModules []string
}

// SynthesizeStubs runs Pass 3: for every unresolved import across contracts,
// materialize (or reuse) a Stub ContractInfo keyed by the import's module
// path, attach it to the importer's StubModules, and mark StubCreated.
// Duplicate imports of the same external module, even across different
// importing contracts, share one stub object — mirroring §5's memory
// discipline ("duplicate imports of the same external module within one
// contract share a single stub object"), extended here to the whole run
// since the stub pool has no reason to be reconstructed per-importer.
//
// When stubMissing is false, every unresolved import instead becomes a
// parse_error on its owning contract and no stubs are created.
func SynthesizeStubs(contracts []*model.ContractInfo, stubMissing bool) StubReport {
	stubs := map[string]*model.ContractInfo{}
	report := StubReport{}

	for _, c := range contracts {
		for _, imp := range c.Imports {
			report.TotalSymbols += len(imp.Symbols)
			if imp.Resolved {
				report.TotalResolved++
				continue
			}
			if !stubMissing {
				c.ParseErrors = append(c.ParseErrors, model.ParseError{
					Kind:    model.DiagUnresolvedImport,
					Message: "unresolved import: " + imp.Path,
					Line:    imp.Line,
				})
				continue
			}

			stub, ok := stubs[imp.Path]
			if !ok {
				stub = model.NewContractInfo(imp.Path, model.KindStub)
				stubs[imp.Path] = stub
			}
			if c.StubModules == nil {
				c.StubModules = map[string]*model.ContractInfo{}
			}
			c.StubModules[imp.Path] = stub
			imp.StubCreated = true
		}
	}

	report.TotalStubs = len(stubs)
	for path := range stubs {
		report.StubbedModules = append(report.StubbedModules, path)
	}
	sort.Strings(report.StubbedModules)

	return report
}
