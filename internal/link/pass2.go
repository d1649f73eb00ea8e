package link

import (
	"strings"

	"github.com/raptor-audit/cairo-parser/internal/model"
)

// Resolve runs Pass 2 for a single import against an already-frozen
// SymbolTable, implementing the resolution algorithm in order:
//  1. strip a leading crate::/super:: (super is unresolvable-external);
//  2. exact match;
//  3. progressively strip trailing segments and retry;
//  4. otherwise unresolved.
//
// On a prefix hit, the stripped tail segments are appended to imp.Symbols
// (they name the imported member, not a module).
func Resolve(imp *model.ImportInfo, table *SymbolTable) {
	path := imp.Path
	if strings.HasPrefix(path, "super::") {
		imp.Resolved = false
		return
	}
	path = strings.TrimPrefix(path, "crate::")

	if _, ok := table.Lookup(path); ok {
		imp.Resolved = true
		return
	}

	segments := strings.Split(path, "::")
	for n := len(segments) - 1; n > 0; n-- {
		prefix := strings.Join(segments[:n], "::")
		if _, ok := table.Lookup(prefix); ok {
			imp.Resolved = true
			imp.Symbols = append(append([]string{}, segments[n:]...), imp.Symbols...)
			return
		}
	}

	imp.Resolved = false
}

// ResolveAll runs Resolve over every import of every ContractInfo produced
// by Pass 1, in place.
func ResolveAll(contracts []*model.ContractInfo, table *SymbolTable) {
	for _, c := range contracts {
		for _, imp := range c.Imports {
			Resolve(imp, table)
		}
	}
}
