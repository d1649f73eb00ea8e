// Package link implements the Symbol Table, Linker and Stub Synthesizer:
// Pass 1 population, Pass 2 import resolution, and Pass 3 stub
// materialization, modeled on a linker's GOT/PLT discipline.
package link

import (
	"sort"

	"github.com/raptor-audit/cairo-parser/internal/model"
)

// SymbolTable is the GOT: a write-once-per-key mapping from fully-qualified
// module path to the ContractInfo declared there. Build it with Insert
// during Pass 1, then call Freeze before Pass 2 reads it; after Freeze the
// table is never mutated again for the remainder of the run.
type SymbolTable struct {
	entries map[string]*model.ContractInfo
	frozen  bool
}

// NewSymbolTable returns an empty, unfrozen table ready for Pass 1.
func NewSymbolTable() *SymbolTable {
	return &SymbolTable{entries: map[string]*model.ContractInfo{}}
}

// Insert records entity under key. If key is already present the existing
// entry is kept ("first wins") and a duplicate_symbol warning is returned
// for the caller to attach to the second declaration's owning contract.
func (t *SymbolTable) Insert(key string, entity *model.ContractInfo) (warning *model.Warning) {
	if t.frozen {
		panic("link: Insert after Freeze")
	}
	if _, exists := t.entries[key]; exists {
		return &model.Warning{
			Kind:    model.DiagDuplicateSymbol,
			Message: "duplicate symbol table key: " + key,
		}
	}
	t.entries[key] = entity
	return nil
}

// Freeze marks the table immutable. Pass 2 must not begin before this is
// called.
func (t *SymbolTable) Freeze() { t.frozen = true }

// Lookup returns the entity registered under key, if any.
func (t *SymbolTable) Lookup(key string) (*model.ContractInfo, bool) {
	e, ok := t.entries[key]
	return e, ok
}

// Keys returns all registered keys, sorted lexicographically — used by
// testable-property checks and deterministic reporting.
func (t *SymbolTable) Keys() []string {
	keys := make([]string, 0, len(t.entries))
	for k := range t.entries {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Len reports the number of distinct entries.
func (t *SymbolTable) Len() int { return len(t.entries) }
