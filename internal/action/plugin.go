package action

import (
	"context"
	"fmt"

	"github.com/avbuilds/manifesto/internal/model"
)

// planPlugin delegates to the adapted plugin registry (internal/plugin),
// which resolves b.Name to a registered implementation and turns b.With
// into that implementation's own steps. A run with no Plugins configured
// treats a plugin action as a plan failure rather than silently skipping
// it, since an author who wrote `action: plugin` meant for it to run.
func (r *Resolver) planPlugin(ctx context.Context, b *model.PluginBody) ([]model.Step, error) {
	if r.Plugins == nil {
		return nil, fmt.Errorf("action: plugin %q requested but no plugin registry is configured", b.Name)
	}
	return r.Plugins.Run(ctx, b.Name, b.With)
}
