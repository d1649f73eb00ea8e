// Package dataflow implements the Dataflow Analyzer component: classical
// reaching-definitions over a function's CFG, yielding def-use chains,
// storage-access and external-call records, and uninitialized-use /
// unused-definition warnings.
package dataflow

import "github.com/raptor-audit/cairo-parser/internal/cfg"

// reachingDefs computes, for one variable, the IN set at every node: the
// set of node ids whose definition of that variable reaches this node
// along some path with no intervening redefinition. Implements the
// textbook OUT(n) = GEN(n) ∪ (IN(n) − KILL(n)) restricted to a single
// variable, which is equivalent to running it over all variables at once
// since defs of distinct variables never interact.
func reachingDefs(g *cfg.Graph, variable string) (in map[int]map[int]bool, defs map[int]bool) {
	defs = map[int]bool{}
	for _, n := range g.Nodes {
		if n.Kind == cfg.KindStatement && n.Statement != nil && n.Statement.Defined == variable {
			defs[n.ID] = true
		}
	}

	in = make(map[int]map[int]bool, len(g.Nodes))
	out := make(map[int]map[int]bool, len(g.Nodes))
	for _, n := range g.Nodes {
		in[n.ID] = map[int]bool{}
		out[n.ID] = map[int]bool{}
	}

	for changed := true; changed; {
		changed = false
		for _, n := range g.Nodes {
			newIn := map[int]bool{}
			for _, p := range n.Predecessors {
				for d := range out[p] {
					newIn[d] = true
				}
			}
			if !setEqual(newIn, in[n.ID]) {
				in[n.ID] = newIn
				changed = true
			}

			var newOut map[int]bool
			if defs[n.ID] {
				newOut = map[int]bool{n.ID: true}
			} else {
				newOut = cloneSet(in[n.ID])
			}
			if !setEqual(newOut, out[n.ID]) {
				out[n.ID] = newOut
				changed = true
			}
		}
	}

	return in, defs
}

// mayBeUninitialized computes, for one variable, whether there exists a
// path from Entry reaching the point just before each node without
// passing any definition of that variable — a forward "may" analysis,
// distinct from reachingDefs, because a use can have both an
// initialized-reaching path and an uninitialized one at once.
func mayBeUninitialized(g *cfg.Graph, variable string) map[int]bool {
	defs := map[int]bool{}
	for _, n := range g.Nodes {
		if n.Kind == cfg.KindStatement && n.Statement != nil && n.Statement.Defined == variable {
			defs[n.ID] = true
		}
	}

	in := make(map[int]bool, len(g.Nodes))
	out := make(map[int]bool, len(g.Nodes))
	in[g.EntryID] = true
	out[g.EntryID] = true

	for changed := true; changed; {
		changed = false
		for _, n := range g.Nodes {
			if n.ID == g.EntryID {
				continue
			}
			newIn := false
			for _, p := range n.Predecessors {
				if out[p] {
					newIn = true
					break
				}
			}
			if newIn != in[n.ID] {
				in[n.ID] = newIn
				changed = true
			}
			newOut := newIn && !defs[n.ID]
			if newOut != out[n.ID] {
				out[n.ID] = newOut
				changed = true
			}
		}
	}

	return in
}

func cloneSet(s map[int]bool) map[int]bool {
	out := make(map[int]bool, len(s))
	for k := range s {
		out[k] = true
	}
	return out
}

func setEqual(a, b map[int]bool) bool {
	if len(a) != len(b) {
		return false
	}
	for k := range a {
		if !b[k] {
			return false
		}
	}
	return true
}
