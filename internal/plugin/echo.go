package plugin

import (
	"context"
	"fmt"

	"github.com/avbuilds/manifesto/internal/atom"
	"github.com/avbuilds/manifesto/internal/model"
)

// EchoPlugin is the one concrete implementation manifesto ships for the
// `plugin` action kind, wrapping internal/atom.Echo the same way every
// other action kind's builder in internal/action wraps its atom. It
// exists to keep the registry's extension point demonstrably reachable:
// a manifest author who writes `action: plugin, name: echo` gets a real
// atom, not a lookup failure.
type EchoPlugin struct {
	Sink atom.LineSink
}

var _ Plugin = (*EchoPlugin)(nil)

func (p *EchoPlugin) PluginMetadata() PluginMetadata {
	return PluginMetadata{
		Name:       "echo",
		Version:    "1.0.0",
		APIVersion: "1.x",
	}
}

// Run reads with["message"], the only field this plugin recognizes, and
// returns a single Step wrapping atom.Echo.
func (p *EchoPlugin) Run(_ context.Context, with map[string]any) ([]model.Step, error) {
	message, _ := with["message"].(string)
	if message == "" {
		return nil, fmt.Errorf("plugin %q: with.message is required", p.PluginMetadata().Name)
	}
	return []model.Step{{Atom: &atom.Echo{Message: message, Sink: p.Sink}}}, nil
}
