package cfg

import "github.com/raptor-audit/cairo-parser/internal/model"

// Graph is a function's control-flow graph: a single Entry node, one or
// more Exit nodes, and everything connecting them.
type Graph struct {
	Nodes   []*Node `json:"nodes" yaml:"nodes"`
	EntryID int     `json:"entry_node" yaml:"entry_node"`
	ExitIDs []int   `json:"exit_nodes" yaml:"exit_nodes"`
}

// Summary flattens the graph into the plain-data shape the reporter
// serializes.
func (g *Graph) Summary() model.CFGSummary {
	nodes := make([]model.CFGNode, len(g.Nodes))
	for i, n := range g.Nodes {
		nodes[i] = model.CFGNode{
			ID:           n.ID,
			Kind:         string(n.Kind),
			Statement:    n.Statement,
			Lines:        n.Lines,
			Successors:   n.Successors,
			Predecessors: n.Predecessors,
		}
	}
	return model.CFGSummary{
		Nodes:     nodes,
		Edges:     g.Edges(),
		EntryNode: g.EntryID,
		ExitNodes: g.ExitIDs,
	}
}

// Edges returns the flattened (from, to) pairs implied by every node's
// successor list, in node-id then successor-index order — the shape the
// reporter serializes per the output spec.
func (g *Graph) Edges() [][2]int {
	var edges [][2]int
	for _, n := range g.Nodes {
		for _, s := range n.Successors {
			edges = append(edges, [2]int{n.ID, s})
		}
	}
	return edges
}

func (g *Graph) node(id int) *Node { return g.Nodes[id] }

func (g *Graph) newNode(kind NodeKind) *Node {
	n := &Node{ID: len(g.Nodes), Kind: kind}
	g.Nodes = append(g.Nodes, n)
	return n
}

func (g *Graph) connect(fromID, toID int) {
	g.Nodes[fromID].addSuccessor(toID)
	g.Nodes[toID].addPredecessor(fromID)
}
