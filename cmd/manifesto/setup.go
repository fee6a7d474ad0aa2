package main

import (
	"fmt"
	"strings"

	"github.com/avbuilds/manifesto/internal/contexts"
	"github.com/avbuilds/manifesto/internal/graph"
	"github.com/avbuilds/manifesto/internal/logger"
	"github.com/avbuilds/manifesto/internal/manifestfile"
	"github.com/avbuilds/manifesto/internal/model"
)

// loadGraph loads every manifest under root, builds the host Contexts
// (plus any --var overrides), and constructs the dependency graph.
// Unresolved-dependency warnings (spec.md §4.3) are logged, not fatal;
// so are manifests that fail to parse, which are left out while the
// rest load. A failed directory walk or a dependency cycle is fatal.
func loadGraph(log *logger.Logger, root string, vars map[string]string) (*graph.Graph, map[string]*model.Manifest, *contexts.Contexts, error) {
	manifests, err := manifestfile.Load(root)
	if err != nil {
		if manifests == nil {
			return nil, nil, nil, fmt.Errorf("load manifests: %w", err)
		}
		log.Error(err, "skipping manifests that failed to parse")
	}

	ctxs := contexts.NewWithVars(vars)

	g, warnings, err := graph.Build(manifests)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("build dependency graph: %w", err)
	}
	for _, w := range warnings {
		log.WithFields(map[string]any{"manifest": w.Manifest}).Warn(w.Message)
	}

	return g, manifests, ctxs, nil
}

// parseVars turns repeated "key=value" flag values into a map.
func parseVars(raw []string) (map[string]string, error) {
	if len(raw) == 0 {
		return nil, nil
	}
	vars := make(map[string]string, len(raw))
	for _, kv := range raw {
		k, v, ok := strings.Cut(kv, "=")
		if !ok || k == "" {
			return nil, fmt.Errorf("invalid --var %q, expected key=value", kv)
		}
		vars[k] = v
	}
	return vars, nil
}

// splitManifests turns a comma-separated --manifests value into the
// requested start names; an empty value means "everything" ("" is the
// synthetic root's own name, which internal/graph.Traverse treats as
// "traverse from the top").
func splitManifests(raw string) []string {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return []string{""}
	}
	parts := strings.Split(raw, ",")
	names := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p != "" {
			names = append(names, p)
		}
	}
	return names
}
