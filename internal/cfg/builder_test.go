package cfg_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/raptor-audit/cairo-parser/internal/cfg"
	"github.com/raptor-audit/cairo-parser/internal/stmtparse"
)

// assertWellFormed checks testable property 3: every node other than
// Entry has at least one predecessor, and every node other than an Exit
// has at least one successor — except nodes explicitly left unreachable
// by dead code (no predecessor), which this helper lets the caller
// exempt by id.
func assertWellFormed(t *testing.T, g *cfg.Graph, exemptNoPredecessor map[int]bool) {
	t.Helper()
	exitSet := map[int]bool{}
	for _, id := range g.ExitIDs {
		exitSet[id] = true
	}
	for _, n := range g.Nodes {
		if n.ID != g.EntryID && !exemptNoPredecessor[n.ID] {
			assert.NotEmptyf(t, n.Predecessors, "node %d (%s) has no predecessor", n.ID, n.Kind)
		}
		if !exitSet[n.ID] {
			assert.NotEmptyf(t, n.Successors, "node %d (%s) has no successor", n.ID, n.Kind)
		}
	}
}

func TestBuildStraightLine(t *testing.T) {
	stmts := stmtparse.Parse(`let a = 1;
self.storage.total.write(a);
return a;`, 1)
	g := cfg.Build(stmts)

	require.Len(t, g.ExitIDs, 1)
	assertWellFormed(t, g, nil)

	paths, truncated := g.EnumeratePaths(10)
	assert.False(t, truncated)
	require.Len(t, paths, 1)
	assert.Equal(t, g.EntryID, paths[0][0])
	assert.Equal(t, g.ExitIDs[0], paths[0][len(paths[0])-1])
}

func TestBuildIfElseBranches(t *testing.T) {
	stmts := stmtparse.Parse(`if x {
return 1;
} else {
return 2;
}`, 1)
	g := cfg.Build(stmts)

	var branch *cfg.Node
	for _, n := range g.Nodes {
		if n.Kind == cfg.KindBranch {
			branch = n
		}
		// both arms return, so no Merge node should ever be materialized.
		assert.NotEqual(t, cfg.KindMerge, n.Kind)
	}
	require.NotNil(t, branch)
	assert.Len(t, branch.Successors, 2)

	assertWellFormed(t, g, nil)

	paths, truncated := g.EnumeratePaths(10)
	assert.False(t, truncated)
	assert.Len(t, paths, 2)
}

func TestBuildIfFallsThroughToMerge(t *testing.T) {
	stmts := stmtparse.Parse(`if x {
let a = 1;
}
return 0;`, 1)
	g := cfg.Build(stmts)

	var merge *cfg.Node
	for _, n := range g.Nodes {
		if n.Kind == cfg.KindMerge {
			merge = n
		}
	}
	require.NotNil(t, merge)
	assert.NotEmpty(t, merge.Predecessors)

	paths, truncated := g.EnumeratePaths(10)
	assert.False(t, truncated)
	assert.Len(t, paths, 2)
}

func TestBuildLoopWithBreakAndContinue(t *testing.T) {
	stmts := stmtparse.Parse(`while x {
if y {
break;
}
continue;
}
return 0;`, 1)
	g := cfg.Build(stmts)

	var header, loopBack *cfg.Node
	for _, n := range g.Nodes {
		switch n.Kind {
		case cfg.KindLoopHeader:
			header = n
		case cfg.KindLoopBack:
			loopBack = n
		}
	}
	require.NotNil(t, header)
	require.NotNil(t, loopBack)

	assert.Contains(t, loopBack.Successors, header.ID)
	assert.Len(t, header.Successors, 2)

	assertWellFormed(t, g, nil)
}

func TestBuildUnreachableStatementHasNoPredecessor(t *testing.T) {
	stmts := stmtparse.Parse(`return 1;
let a = 2;`, 1)
	g := cfg.Build(stmts)

	var deadNode *cfg.Node
	for _, n := range g.Nodes {
		if n.Kind == cfg.KindStatement && n.Statement != nil && n.Statement.Defined == "a" {
			deadNode = n
		}
	}
	require.NotNil(t, deadNode)
	assert.Empty(t, deadNode.Predecessors)
}

func TestDominatorsOfStraightLine(t *testing.T) {
	stmts := stmtparse.Parse(`let a = 1;
return a;`, 1)
	g := cfg.Build(stmts)
	dom := g.Dominators()

	for _, n := range g.Nodes {
		d := dom[n.ID]
		require.NotNil(t, d)
		assert.True(t, d[g.EntryID], "entry should dominate every reachable node")
		assert.True(t, d[n.ID], "every node dominates itself")
	}
}

func TestDominatorsMergeIsNotDominatedByEitherBranch(t *testing.T) {
	stmts := stmtparse.Parse(`if x {
let a = 1;
} else {
let b = 2;
}
return 0;`, 1)
	g := cfg.Build(stmts)
	dom := g.Dominators()

	var branch *cfg.Node
	var statementNodes []*cfg.Node
	for _, n := range g.Nodes {
		if n.Kind == cfg.KindBranch {
			branch = n
		}
		if n.Kind == cfg.KindStatement && n.Statement != nil && n.Statement.Defined != "" {
			statementNodes = append(statementNodes, n)
		}
	}
	require.NotNil(t, branch)
	require.Len(t, statementNodes, 2)

	for _, n := range g.Nodes {
		if n.Kind == cfg.KindMerge {
			assert.True(t, dom[n.ID][branch.ID])
			for _, s := range statementNodes {
				assert.False(t, dom[n.ID][s.ID], "merge must not be dominated by only one branch arm")
			}
		}
	}
}

func TestEnumeratePathsRespectsMaxPaths(t *testing.T) {
	stmts := stmtparse.Parse(`if a {
return 1;
} else if b {
return 2;
} else if c {
return 3;
} else {
return 4;
}`, 1)
	g := cfg.Build(stmts)

	paths, truncated := g.EnumeratePaths(2)
	assert.True(t, truncated)
	assert.Len(t, paths, 2)

	all, truncatedAll := g.EnumeratePaths(100)
	assert.False(t, truncatedAll)
	assert.Len(t, all, 4)
}
