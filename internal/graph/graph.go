// Package graph builds and traverses the manifest dependency graph of
// spec.md §4.3: a synthetic root pointing at every manifest, explicit
// `depends` edges, and implicit package-operation serialization edges.
package graph

import (
	"github.com/avbuilds/manifesto/internal/model"
)

// rootName is the synthetic root's identity; no manifest may use it.
const rootName = ""

// Node is a vertex in the dependency graph: a manifest (or the synthetic
// root) plus the names it depends on, internally normalized so "depends
// on" always means "must complete first" regardless of how a given edge
// was discovered (explicit `depends`, or the package-op chain).
type Node struct {
	Name      string
	Manifest  *model.Manifest // nil for the synthetic root
	DependsOn []string
}

// Graph is the constructed dependency graph. It is built once by Build
// and is read-only afterward; the executor only calls Traverse.
type Graph struct {
	nodes map[string]*Node
	// order records manifest insertion order. Build's scans (package-op
	// chaining, unresolved-dependency warnings) iterate Build's own sorted
	// name list instead; nothing reads this field.
	order []string
}

func newGraph() *Graph {
	return &Graph{nodes: make(map[string]*Node)}
}

func (g *Graph) addNode(name string, manifest *model.Manifest) *Node {
	if existing, ok := g.nodes[name]; ok {
		return existing
	}
	node := &Node{Name: name, Manifest: manifest}
	g.nodes[name] = node
	g.order = append(g.order, name)
	return node
}

func (g *Graph) addDependsOn(name, dependsOnName string) {
	node := g.nodes[name]
	node.DependsOn = append(node.DependsOn, dependsOnName)
}

// Node looks up a node by manifest name ("" for the synthetic root).
func (g *Graph) Node(name string) (*Node, bool) {
	n, ok := g.nodes[name]
	return n, ok
}
