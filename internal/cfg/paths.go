package cfg

// EnumeratePaths depth-first enumerates node-id paths from Entry to any
// Exit node, up to maxPaths. A back-edge into a LoopHeader already on the
// current path terminates that branch of the search without counting it
// as a path — the loop is considered "taken" once, not unrolled. The search
// stops as soon as maxPaths paths have been collected and truncated is then
// true, whether or not any further path exists.
func (g *Graph) EnumeratePaths(maxPaths int) (paths [][]int, truncated bool) {
	if maxPaths <= 0 {
		return nil, false
	}

	exitSet := make(map[int]bool, len(g.ExitIDs))
	for _, id := range g.ExitIDs {
		exitSet[id] = true
	}

	onPath := make(map[int]bool)
	var current []int

	var dfs func(id int) bool
	dfs = func(id int) bool {
		current = append(current, id)
		onPath[id] = true
		defer func() {
			onPath[id] = false
			current = current[:len(current)-1]
		}()

		if exitSet[id] {
			paths = append(paths, append([]int{}, current...))
			return len(paths) >= maxPaths
		}

		for _, s := range g.node(id).Successors {
			if onPath[s] && g.node(s).Kind == KindLoopHeader {
				continue
			}
			if dfs(s) {
				return true
			}
		}
		return false
	}

	truncated = dfs(g.EntryID)
	return paths, truncated
}
