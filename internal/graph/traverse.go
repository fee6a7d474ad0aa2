package graph

import (
	"sort"

	manifestoerrors "github.com/avbuilds/manifesto/pkg/errors"
)

// Traverse returns the manifests reachable from start (rootName for
// "everything", else a manifest name) in depth-first post-order over
// the dependsOn relation, so each manifest appears after everything it
// depends on. Sibling order is resolved by sorting dependency names,
// matching spec.md §4.3's "implementations may sort siblings by name for
// reproducibility." The synthetic root itself is never included in the
// result.
func (g *Graph) Traverse(start string) ([]*Node, error) {
	if _, ok := g.nodes[start]; !ok {
		return nil, manifestoerrors.NewUnknownManifestError(start)
	}

	visited := make(map[string]bool, len(g.nodes))
	var order []*Node

	var visit func(name string)
	visit = func(name string) {
		if visited[name] {
			return
		}
		visited[name] = true

		node := g.nodes[name]
		deps := append([]string(nil), node.DependsOn...)
		sort.Strings(deps)
		for _, dep := range deps {
			visit(dep)
		}

		if name != rootName {
			order = append(order, node)
		}
	}

	visit(start)
	return order, nil
}
