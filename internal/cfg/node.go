// Package cfg implements the CFG Builder component: it folds a flat
// Statement sequence into a directed graph with typed nodes, and exposes
// dominators and enumerated entry-to-exit paths.
package cfg

import "github.com/raptor-audit/cairo-parser/internal/model"

// NodeKind is the closed sum of CFG node variants.
type NodeKind string

const (
	KindEntry      NodeKind = "Entry"
	KindExit       NodeKind = "Exit"
	KindStatement  NodeKind = "Statement"
	KindBranch     NodeKind = "Branch"
	KindMerge      NodeKind = "Merge"
	KindLoopHeader NodeKind = "LoopHeader"
	KindLoopBack   NodeKind = "LoopBack"
)

// Node is one arena-indexed vertex. Successors/predecessors are stored as
// index slices into the owning Graph's Nodes, not pointers, so that loop
// back-edges don't fight Go's garbage collector with ownership cycles.
type Node struct {
	ID   int      `json:"id" yaml:"id"`
	Kind NodeKind `json:"kind" yaml:"kind"`

	// Statement carries the source statement a node was built from. Set
	// for Statement nodes, and also for Branch (the if/else-if condition)
	// and LoopHeader (the loop/while/for header) nodes; nil otherwise.
	Statement *model.Statement `json:"statement,omitempty" yaml:"statement,omitempty"`

	Lines model.LineRange `json:"lines" yaml:"lines"`

	Successors   []int `json:"successors" yaml:"successors"`
	Predecessors []int `json:"predecessors" yaml:"predecessors"`
}

func (n *Node) addSuccessor(id int) {
	for _, s := range n.Successors {
		if s == id {
			return
		}
	}
	n.Successors = append(n.Successors, id)
}

func (n *Node) addPredecessor(id int) {
	for _, p := range n.Predecessors {
		if p == id {
			return
		}
	}
	n.Predecessors = append(n.Predecessors, id)
}
