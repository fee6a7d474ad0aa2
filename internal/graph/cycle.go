package graph

import "sort"

// detectCycle walks dependsOn edges with an explicit recursion stack,
// the same approach as the teacher's internal/config/cycle_detector.go:
// a node currently "visiting" that is reached again closes the cycle.
func detectCycle(g *Graph) []string {
	visiting := make(map[string]bool, len(g.nodes))
	visited := make(map[string]bool, len(g.nodes))
	var stack []string
	var cycle []string

	var dfs func(name string) bool
	dfs = func(name string) bool {
		visiting[name] = true
		stack = append(stack, name)

		node := g.nodes[name]
		for _, dep := range node.DependsOn {
			if visited[dep] {
				continue
			}
			if visiting[dep] {
				idx := indexOf(stack, dep)
				if idx >= 0 {
					cycle = append([]string{}, stack[idx:]...)
					cycle = append(cycle, dep)
				}
				return true
			}
			if dfs(dep) {
				return true
			}
		}

		visiting[name] = false
		visited[name] = true
		stack = stack[:len(stack)-1]
		return false
	}

	names := make([]string, 0, len(g.nodes))
	for name := range g.nodes {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		if visited[name] {
			continue
		}
		if dfs(name) {
			break
		}
	}

	return cycle
}

func indexOf(stack []string, target string) int {
	for i, v := range stack {
		if v == target {
			return i
		}
	}
	return -1
}
