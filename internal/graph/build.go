package graph

import (
	"fmt"
	"sort"
	"strings"

	"github.com/avbuilds/manifesto/internal/model"
	manifestoerrors "github.com/avbuilds/manifesto/pkg/errors"
)

// Warning is a non-fatal condition surfaced during Build (spec.md §4.3:
// unresolved dependencies are warned and their edge is omitted, not a
// build failure).
type Warning struct {
	Manifest string
	Message  string
}

// Build constructs the dependency graph from a name→Manifest map,
// following spec.md §4.3's four construction steps: synthetic root,
// manifest nodes, `depends` edges (with `./`-relative resolution), and a
// second pass chaining package operations in document order.
func Build(manifests map[string]*model.Manifest) (*Graph, []Warning, error) {
	g := newGraph()
	g.addNode(rootName, nil)

	names := sortedNames(manifests)
	for _, name := range names {
		g.addNode(name, manifests[name])
		// The synthetic root "depends on" every manifest purely so that
		// traversing from root visits all of them; it carries no other
		// meaning (the root itself is never included in Traverse's output).
		g.addDependsOn(rootName, name)
	}

	var warnings []Warning
	for _, name := range names {
		m := manifests[name]
		for _, dep := range m.Depends {
			resolved := resolveDependency(name, dep)
			if _, ok := g.nodes[resolved]; !ok {
				warnings = append(warnings, Warning{
					Manifest: name,
					Message:  fmt.Sprintf("unresolved dependency %q (resolved to %q)", dep, resolved),
				})
				continue
			}
			g.addDependsOn(name, resolved)
		}
	}

	chainPackageOps(g, names, manifests)

	if cycle := detectCycle(g); cycle != nil {
		return nil, warnings, manifestoerrors.NewCycleError(cycle)
	}

	return g, warnings, nil
}

// resolveDependency applies spec.md §4.3 step 3's `./`-relative rule,
// grounded on comtrya's dependency_graph.rs rsplit_once('.') logic: a
// leading `./` resolves against the manifest's own dotted prefix (the
// portion before its final dot segment, or the whole name if it has
// none).
func resolveDependency(manifestName, dep string) string {
	if !strings.HasPrefix(dep, "./") {
		return dep
	}
	rest := strings.TrimPrefix(dep, "./")

	prefix := manifestName
	if idx := strings.LastIndex(manifestName, "."); idx >= 0 {
		prefix = manifestName[:idx]
	}
	return prefix + "." + rest
}

func sortedNames(manifests map[string]*model.Manifest) []string {
	names := make([]string, 0, len(manifests))
	for name := range manifests {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
