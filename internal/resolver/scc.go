package resolver

import "sort"

// scc is one strongly connected component, nodes in discovery order.
type scc struct {
	nodes []string
}

// tarjanSCC runs Tarjan's algorithm over g, visiting nodes in
// lexicographic order at the top level so that, among independent
// components, discovery order itself stays deterministic (§4.1.3
// only mandates determinism of the representative path within a
// single SCC, but a stable overall walk costs nothing extra here).
func tarjanSCC(g *Graph) []scc {
	nodes := g.Nodes()
	sort.Strings(nodes)

	index := 0
	indices := map[string]int{}
	lowlink := map[string]int{}
	onStack := map[string]bool{}
	var stack []string
	var result []scc

	var strongconnect func(v string)
	strongconnect = func(v string) {
		indices[v] = index
		lowlink[v] = index
		index++
		stack = append(stack, v)
		onStack[v] = true

		succs := g.Successors(v)
		sort.Strings(succs)
		for _, w := range succs {
			if _, seen := indices[w]; !seen {
				strongconnect(w)
				if lowlink[w] < lowlink[v] {
					lowlink[v] = lowlink[w]
				}
			} else if onStack[w] {
				if indices[w] < lowlink[v] {
					lowlink[v] = indices[w]
				}
			}
		}

		if lowlink[v] == indices[v] {
			var component []string
			for {
				n := len(stack) - 1
				w := stack[n]
				stack = stack[:n]
				onStack[w] = false
				component = append(component, w)
				if w == v {
					break
				}
			}
			result = append(result, scc{nodes: component})
		}
	}

	for _, v := range nodes {
		if _, seen := indices[v]; !seen {
			strongconnect(v)
		}
	}
	return result
}

// isSelfEdge reports whether v imports itself directly.
func isSelfEdge(g *Graph, v string) bool {
	_, ok := g.Edge(v, v)
	return ok
}

// representativePath finds the SCC's deterministic cycle witness
// (§4.1.3): DFS from the alphabetically smallest node in the
// component, following edges that stay within the component, until
// returning to the start.
func representativePath(g *Graph, component []string) []string {
	inComponent := map[string]bool{}
	for _, n := range component {
		inComponent[n] = true
	}
	start := component[0]
	for _, n := range component {
		if n < start {
			start = n
		}
	}

	visited := map[string]bool{}
	path := []string{start}
	cur := start
	visited[cur] = true
	for {
		succs := g.Successors(cur)
		sort.Strings(succs)
		var next string
		found := false
		for _, s := range succs {
			if !inComponent[s] {
				continue
			}
			if s == start {
				next = s
				found = true
				break
			}
			if !visited[s] {
				next = s
				found = true
				break
			}
		}
		if !found || next == start {
			break
		}
		path = append(path, next)
		visited[next] = true
		cur = next
	}
	return path
}

// pathIsTypeOnly reports whether every edge along a representative
// path (a closed walk: path[0..n-1] plus the closing edge back to
// path[0]) is type-only.
func pathIsTypeOnly(g *Graph, path []string) bool {
	for i := 0; i < len(path); i++ {
		from := path[i]
		to := path[(i+1)%len(path)]
		e, ok := g.Edge(from, to)
		if !ok || !e.IsTypeOnly {
			return false
		}
	}
	return true
}
