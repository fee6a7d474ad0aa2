package graph

import "github.com/avbuilds/manifesto/internal/model"

// chainPackageOps is spec.md §4.3 step 4 and §9's "explicit second pass":
// scanning actions in document order, every package.install or
// package.repository action after the first adds a dependsOn edge onto
// the manifest holding the previous one, serializing package operations
// across the whole run (package managers lock their database).
//
// "Document order" across a map has no canonical meaning on its own;
// names is already sorted by Build, so the scan is over manifests in
// sorted-name order and actions in declaration order within each —
// deterministic, even though it is an implementation choice the source
// left unstated.
func chainPackageOps(g *Graph, names []string, manifests map[string]*model.Manifest) {
	previous := ""
	for _, name := range names {
		m := manifests[name]
		for _, action := range m.Actions {
			if !isPackageOp(action.Kind) {
				continue
			}
			if previous != "" && previous != name {
				g.addDependsOn(name, previous)
			}
			previous = name
		}
	}
}

func isPackageOp(kind model.ActionKind) bool {
	return kind == model.KindPackageInstall || kind == model.KindPackageRepository
}
