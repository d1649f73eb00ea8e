package dataflow

import (
	"sort"
	"strings"

	"github.com/raptor-audit/cairo-parser/internal/cfg"
	"github.com/raptor-audit/cairo-parser/internal/model"
)

// Analyze runs the Dataflow Analyzer over a function's already-built CFG
// and returns its def-use chains, storage accesses, external calls and
// analysis warnings. parameters excludes those names from both the
// uninitialized-use and unused-definition checks.
func Analyze(g *cfg.Graph, parameters []model.Parameter, imports []*model.ImportInfo) (*model.DataflowResult, []model.Warning) {
	params := make(map[string]bool, len(parameters))
	for _, p := range parameters {
		params[p.Name] = true
	}

	defVars, usedVars := collectVariables(g)

	result := &model.DataflowResult{
		StorageAccesses: collectStorageAccesses(g),
		ExternalCalls:   collectExternalCalls(g, imports),
	}

	var warnings []model.Warning

	reach := make(map[string]map[int]map[int]bool, len(defVars))
	defsOf := make(map[string]map[int]bool, len(defVars))
	for v := range defVars {
		in, defs := reachingDefs(g, v)
		reach[v] = in
		defsOf[v] = defs
	}

	for _, v := range sortedKeys(defVars) {
		chain := model.DefUseChain{Variable: v}
		chain.Defs = sortedIntKeys(defsOf[v])
		for _, n := range g.Nodes {
			if usesVariable(n, v) && len(reach[v][n.ID]) > 0 {
				chain.Uses = append(chain.Uses, n.ID)
			}
		}
		sort.Ints(chain.Uses)
		result.DefUseChains = append(result.DefUseChains, chain)

		if params[v] || strings.HasPrefix(v, "_") {
			continue
		}
		for _, d := range chain.Defs {
			if !defReachesAnyUse(reach, v, d, g) {
				warnings = append(warnings, model.Warning{
					Kind:     model.DiagUnusedDefinition,
					Message:  "definition of " + v + " is never used",
					Line:     lineOf(g, d),
					Variable: v,
				})
			}
		}
	}

	for _, v := range sortedKeys(usedVars) {
		if params[v] {
			continue
		}
		mayUninit := mayBeUninitialized(g, v)
		for _, n := range g.Nodes {
			if !usesVariable(n, v) {
				continue
			}
			if mayUninit[n.ID] {
				warnings = append(warnings, model.Warning{
					Kind:     model.DiagUninitializedUse,
					Message:  "use of " + v + " may read before any assignment",
					Line:     n.Statement.Line,
					Variable: v,
				})
			}
		}
	}

	sort.Slice(warnings, func(i, j int) bool {
		if warnings[i].Line != warnings[j].Line {
			return warnings[i].Line < warnings[j].Line
		}
		return warnings[i].Variable < warnings[j].Variable
	})

	return result, warnings
}

func defReachesAnyUse(reach map[string]map[int]map[int]bool, variable string, defID int, g *cfg.Graph) bool {
	for _, n := range g.Nodes {
		if usesVariable(n, variable) && reach[variable][n.ID][defID] {
			return true
		}
	}
	return false
}

func usesVariable(n *cfg.Node, variable string) bool {
	if n.Statement == nil {
		return false
	}
	for _, u := range n.Statement.Used {
		if u == variable {
			return true
		}
	}
	return false
}

func collectVariables(g *cfg.Graph) (defined, used map[string]bool) {
	defined = map[string]bool{}
	used = map[string]bool{}
	for _, n := range g.Nodes {
		if n.Statement == nil {
			continue
		}
		if n.Statement.Defined != "" {
			defined[n.Statement.Defined] = true
		}
		for _, u := range n.Statement.Used {
			used[u] = true
		}
	}
	return defined, used
}

func collectStorageAccesses(g *cfg.Graph) []model.StorageAccess {
	var out []model.StorageAccess
	for _, n := range g.Nodes {
		if n.Statement == nil {
			continue
		}
		switch n.Statement.Kind {
		case model.StmtStorageRead:
			out = append(out, model.StorageAccess{AccessType: model.StorageRead, StorageVar: n.Statement.StorageVar, Line: n.Statement.Line, NodeID: n.ID})
		case model.StmtStorageWrite:
			out = append(out, model.StorageAccess{AccessType: model.StorageWrite, StorageVar: n.Statement.StorageVar, Line: n.Statement.Line, NodeID: n.ID})
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].NodeID < out[j].NodeID })
	return out
}

func collectExternalCalls(g *cfg.Graph, imports []*model.ImportInfo) []model.ExternalCall {
	var out []model.ExternalCall
	for _, n := range g.Nodes {
		if n.Statement == nil || n.Statement.Kind != model.StmtCall {
			continue
		}
		callee := n.Statement.Callee
		out = append(out, model.ExternalCall{
			FunctionName: callee,
			Arguments:    n.Statement.Used,
			Line:         n.Statement.Line,
			NodeID:       n.ID,
			Internal:     !qualifiesImportOrDispatcher(callee, imports),
		})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].NodeID < out[j].NodeID })
	return out
}

// qualifiesImportOrDispatcher reports whether callee either names an
// imported (or stubbed) symbol directly, or has the `receiver.method`
// shape Cairo contract calls go through a dispatcher instance with.
func qualifiesImportOrDispatcher(callee string, imports []*model.ImportInfo) bool {
	if strings.Contains(callee, ".") {
		return true
	}
	for _, imp := range imports {
		for _, s := range imp.Symbols {
			if s == callee {
				return true
			}
		}
	}
	return false
}

func lineOf(g *cfg.Graph, nodeID int) int {
	for _, n := range g.Nodes {
		if n.ID == nodeID && n.Statement != nil {
			return n.Statement.Line
		}
	}
	return 0
}

func sortedKeys(m map[string]bool) []string {
	out := make([]string, 0, len(m))
	for k := range m {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}

func sortedIntKeys(m map[int]bool) []int {
	out := make([]int, 0, len(m))
	for k := range m {
		out = append(out, k)
	}
	sort.Ints(out)
	return out
}
