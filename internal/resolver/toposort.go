package resolver

import "sort"

// topoResult is the deterministic compilation order plus whether any
// cycle forced a fallback ordering for some modules (§4.1.4).
type topoResult struct {
	Order      []string
	HadCycles  bool
}

// topologicalOrder runs Kahn's algorithm over the reverse graph (so
// leaves -- modules with no imports -- come out first), breaking ties
// alphabetically for determinism (§4.1.4, §8.1 property 5). Grounded
// on the teacher's internal/module/loader.go TopologicalSort, which
// builds the same reverse-graph/in-degree structure; this version
// adds alphabetical tie-breaking and never errors, instead falling
// back to appending remaining (cyclic) modules alphabetically.
func topologicalOrder(g *Graph) topoResult {
	nodes := g.Nodes()
	sort.Strings(nodes)

	reverse := map[string][]string{}
	inDegree := map[string]int{}
	for _, n := range nodes {
		reverse[n] = nil
		inDegree[n] = 0
	}
	for _, n := range nodes {
		for _, to := range g.Successors(n) {
			reverse[to] = append(reverse[to], n)
			inDegree[n]++
		}
	}
	for _, n := range nodes {
		sort.Strings(reverse[n])
	}

	ready := []string{}
	for _, n := range nodes {
		if inDegree[n] == 0 {
			ready = append(ready, n)
		}
	}
	sort.Strings(ready)

	var order []string
	placed := map[string]bool{}
	for len(ready) > 0 {
		sort.Strings(ready)
		n := ready[0]
		ready = ready[1:]
		order = append(order, n)
		placed[n] = true
		for _, dependent := range reverse[n] {
			inDegree[dependent]--
			if inDegree[dependent] == 0 {
				ready = append(ready, dependent)
			}
		}
	}

	hadCycles := len(order) != len(nodes)
	if hadCycles {
		var remaining []string
		for _, n := range nodes {
			if !placed[n] {
				remaining = append(remaining, n)
			}
		}
		sort.Strings(remaining)
		order = append(order, remaining...)
	}

	return topoResult{Order: order, HadCycles: hadCycles}
}
