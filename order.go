package mesh

// orderTopologically sorts live nodes with Kahn's algorithm. Plug-level
// edges are collapsed into node dependencies. Edges that touch dead nodes
// are ignored. If the dependencies contain a cycle, false is returned.
//
// Any node with no remaining dependencies may be picked next, callers must
// not rely on a particular order of independent nodes.
func orderTopologically(adjacency [][][]Plug, live []bool) ([]int, bool) {
	n := len(adjacency)
	successors := make([]map[int]struct{}, n)
	indegree := make([]int, n)
	numLive := 0
	for node := range adjacency {
		if !live[node] {
			continue
		}
		numLive++
		for _, fanout := range adjacency[node] {
			for _, in := range fanout {
				if in.Node < 0 || in.Node >= n || !live[in.Node] {
					continue
				}
				if successors[node] == nil {
					successors[node] = make(map[int]struct{})
				}
				if _, ok := successors[node][in.Node]; ok {
					continue
				}
				successors[node][in.Node] = struct{}{}
				indegree[in.Node]++
			}
		}
	}

	ready := make([]int, 0, numLive)
	for node := n - 1; node >= 0; node-- {
		if live[node] && indegree[node] == 0 {
			ready = append(ready, node)
		}
	}

	ordered := make([]int, 0, numLive)
	for len(ready) > 0 {
		current := ready[len(ready)-1]
		ready = ready[:len(ready)-1]
		ordered = append(ordered, current)
		for next := range successors[current] {
			indegree[next]--
			if indegree[next] == 0 {
				ready = append(ready, next)
			}
		}
	}

	if len(ordered) < numLive {
		return nil, false
	}
	return ordered, true
}
