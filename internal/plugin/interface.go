package plugin

import (
	"context"

	"github.com/avbuilds/manifesto/internal/model"
)

// PluginInitializer allows a plugin to receive a reference to the registry
// during startup. Plugins that do not need initialization can ignore this
// interface; the registry detects it via type assertion and only calls Init
// when implemented.
type PluginInitializer interface {
	Init(registry *PluginRegistry) error
}

// Plugin is the contract the `action: plugin` kind delegates to (spec.md
// §3's closed action set leaves `plugin` as the one open-ended variant).
// Run receives the body's `with` payload decoded into a plain map — a
// plugin is responsible for its own field validation — and returns the
// Steps internal/executor should run, exactly like any other action
// kind's plan() output.
type Plugin interface {
	PluginMetadata() PluginMetadata
	Run(ctx context.Context, with map[string]any) ([]model.Step, error)
}
