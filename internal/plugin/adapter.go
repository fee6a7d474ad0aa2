package plugin

import (
	"context"
	"fmt"

	"github.com/avbuilds/manifesto/internal/model"
)

// Adapter exposes a PluginRegistry as the action.Plugins capability the
// `action: plugin` kind delegates to: a name plus a decoded `with` payload
// in, a slice of Steps out.
type Adapter struct {
	Registry *PluginRegistry
}

// NewAdapter returns an Adapter backed by the given registry.
func NewAdapter(registry *PluginRegistry) *Adapter {
	return &Adapter{Registry: registry}
}

// Run looks up the named plugin and delegates to its Run method.
func (a *Adapter) Run(ctx context.Context, name string, with map[string]any) ([]model.Step, error) {
	if a.Registry == nil {
		return nil, fmt.Errorf("plugin %q: no plugin registry configured", name)
	}

	p, err := a.Registry.Get(name)
	if err != nil {
		return nil, err
	}

	return p.Run(ctx, with)
}
