package cfg

import "github.com/raptor-audit/cairo-parser/internal/model"

// item is an intermediate grouping of the flat Statement sequence into
// nested blocks, built once up front so the folding pass below doesn't
// have to track brace depth while also wiring edges. A leaf item wraps a
// single non-control Statement; a compound item wraps a control-flow
// header (if/loop/while/for) plus its body, and — for `if` — any
// else/else-if siblings that followed it.
type item struct {
	header    model.Statement
	body      []item
	elseChain []item
}

// group folds a flat Statement list into a tree of items using
// block_open/block_close as the nesting markers, exactly as §4.6
// describes: "Block delimiters { and } ... generate block_open/block_close
// statements that the CFG builder uses as structure markers."
func group(stmts []model.Statement) []item {
	i := 0
	return groupAt(stmts, &i)
}

func groupAt(stmts []model.Statement, i *int) []item {
	var items []item
	for *i < len(stmts) {
		s := stmts[*i]

		switch s.Kind {
		case model.StmtBlockClose:
			*i++
			return items
		case model.StmtElse:
			// A sibling marker for an enclosing `if`; the caller handling
			// that `if` consumes it directly, so seeing one here means this
			// block is done (defensive: a malformed/standalone else).
			return items
		case model.StmtBlockOpen:
			*i++
			continue
		}

		switch s.Kind {
		case model.StmtIf, model.StmtLoop, model.StmtWhile, model.StmtFor:
			*i++
			body := groupAt(stmts, i)
			it := item{header: s, body: body}
			if s.Kind == model.StmtIf {
				for *i < len(stmts) && stmts[*i].Kind == model.StmtElse {
					elseHeader := stmts[*i]
					*i++
					elseBody := groupAt(stmts, i)
					it.elseChain = append(it.elseChain, item{header: elseHeader, body: elseBody})
				}
			}
			items = append(items, it)
		default:
			items = append(items, item{header: s})
			*i++
		}
	}
	return items
}

// loopFrame tracks the enclosing loop's back-edge target so break/continue
// inside the current block know where to connect.
type loopFrame struct {
	loopBackID int
	breaks     []int
}

// Build constructs a Graph from a function's flat Statement sequence.
func Build(stmts []model.Statement) *Graph {
	g := &Graph{}
	entry := g.newNode(KindEntry)
	exit := g.newNode(KindExit)
	g.EntryID = entry.ID
	g.ExitIDs = []int{exit.ID}

	b := &builder{g: g, exitID: exit.ID}
	items := group(stmts)
	first, dangling := b.foldSeq(items, nil)

	if first == -1 {
		g.connect(entry.ID, exit.ID)
		return g
	}
	g.connect(entry.ID, first)
	for _, d := range dangling {
		g.connect(d, exit.ID)
	}
	return g
}

type builder struct {
	g      *Graph
	exitID int
}

// foldSeq wires a sequence of sibling items into a straight-line chain
// (with nested branches/loops folded in), returning the id of the first
// node and the set of "dangling" node ids whose successor is whatever
// follows this sequence in the enclosing scope. An item with no
// predecessor from the chain so far (because the previous item was
// terminal — a return/break/continue) is still created, per §4.6, as an
// unreachable node with no predecessor.
func (b *builder) foldSeq(items []item, loop *loopFrame) (first int, dangling []int) {
	first = -1
	var tail []int

	for idx, it := range items {
		nodeFirst, nodeTail := b.foldItem(it, loop)
		if nodeFirst == -1 {
			continue
		}
		if idx == 0 || first == -1 {
			first = nodeFirst
		}
		for _, p := range tail {
			b.g.connect(p, nodeFirst)
		}
		if len(tail) == 0 && idx > 0 {
			// previous item was terminal: nodeFirst is intentionally left
			// without a predecessor from this chain.
		}
		tail = nodeTail
	}
	return first, tail
}

func (b *builder) foldItem(it item, loop *loopFrame) (first int, dangling []int) {
	switch it.header.Kind {
	case model.StmtIf:
		return b.foldIf(it, loop)
	case model.StmtLoop, model.StmtWhile, model.StmtFor:
		return b.foldLoop(it, loop)
	case model.StmtReturn:
		n := b.statementNode(it.header)
		b.g.connect(n.ID, b.exitID)
		return n.ID, nil
	case model.StmtBreak:
		n := b.statementNode(it.header)
		if loop != nil {
			loop.breaks = append(loop.breaks, n.ID)
		} else {
			b.g.connect(n.ID, b.exitID)
		}
		return n.ID, nil
	case model.StmtContinue:
		n := b.statementNode(it.header)
		if loop != nil {
			b.g.connect(n.ID, loop.loopBackID)
		} else {
			b.g.connect(n.ID, b.exitID)
		}
		return n.ID, nil
	default:
		n := b.statementNode(it.header)
		return n.ID, []int{n.ID}
	}
}

func (b *builder) statementNode(s model.Statement) *Node {
	n := b.g.newNode(KindStatement)
	stmt := s
	n.Statement = &stmt
	n.Lines = model.LineRange{Start: s.Line, End: s.Line}
	return n
}

// lazyMerge defers allocating a Merge node until something actually needs
// to connect to it. An if/else chain where every arm terminates (returns,
// breaks, continues) never touches get(), so no dead, predecessor-less
// Merge node is left in the graph — it simply doesn't exist.
type lazyMerge struct {
	g  *Graph
	id int
}

func (m *lazyMerge) get() int {
	if m.id == -1 {
		m.id = m.g.newNode(KindMerge).ID
	}
	return m.id
}

// foldIf builds a Branch node for an if (and its else-if/else siblings,
// desugared into nested Branch/Merge per §4.6) converging on a single
// Merge node, created lazily so an all-terminal if/else leaves no trace
// of one.
func (b *builder) foldIf(it item, loop *loopFrame) (first int, dangling []int) {
	branch := b.g.newNode(KindBranch)
	stmt := it.header
	branch.Statement = &stmt

	m := &lazyMerge{g: b.g, id: -1}

	thenFirst, thenTail := b.foldSeq(it.body, loop)
	if thenFirst == -1 {
		b.g.connect(branch.ID, m.get())
	} else {
		b.g.connect(branch.ID, thenFirst)
		for _, t := range thenTail {
			b.g.connect(t, m.get())
		}
	}

	if len(it.elseChain) == 0 {
		b.g.connect(branch.ID, m.get())
	} else {
		falseFirst := b.foldElseChain(it.elseChain, 0, m, loop)
		b.g.connect(branch.ID, falseFirst)
	}

	if m.id == -1 {
		return branch.ID, nil
	}
	return branch.ID, []int{m.id}
}

func (b *builder) foldElseChain(chain []item, idx int, m *lazyMerge, loop *loopFrame) int {
	e := chain[idx]

	if e.header.Condition == "" {
		bodyFirst, bodyTail := b.foldSeq(e.body, loop)
		if bodyFirst == -1 {
			return m.get()
		}
		for _, t := range bodyTail {
			b.g.connect(t, m.get())
		}
		return bodyFirst
	}

	branch := b.g.newNode(KindBranch)
	stmt := e.header
	branch.Statement = &stmt

	thenFirst, thenTail := b.foldSeq(e.body, loop)
	if thenFirst == -1 {
		b.g.connect(branch.ID, m.get())
	} else {
		b.g.connect(branch.ID, thenFirst)
		for _, t := range thenTail {
			b.g.connect(t, m.get())
		}
	}

	if idx+1 < len(chain) {
		falseFirst := b.foldElseChain(chain, idx+1, m, loop)
		b.g.connect(branch.ID, falseFirst)
	} else {
		b.g.connect(branch.ID, m.get())
	}
	return branch.ID
}

// foldLoop builds a LoopHeader/LoopBack pair for loop/while/for. The
// header's second successor — "the node following the loop" — and every
// break site inside the body are both resolved by the caller via the
// returned dangling set, the same mechanism used for straight-line code.
func (b *builder) foldLoop(it item, _ *loopFrame) (first int, dangling []int) {
	header := b.g.newNode(KindLoopHeader)
	stmt := it.header
	header.Statement = &stmt

	loopBack := b.g.newNode(KindLoopBack)
	frame := &loopFrame{loopBackID: loopBack.ID}

	bodyFirst, bodyTail := b.foldSeq(it.body, frame)
	if bodyFirst == -1 {
		b.g.connect(header.ID, loopBack.ID)
	} else {
		b.g.connect(header.ID, bodyFirst)
		for _, t := range bodyTail {
			b.g.connect(t, loopBack.ID)
		}
	}
	b.g.connect(loopBack.ID, header.ID)

	return header.ID, append([]int{header.ID}, frame.breaks...)
}
