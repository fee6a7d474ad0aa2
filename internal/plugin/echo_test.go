package plugin

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
)

type recordingSink struct {
	lines []string
}

func (s *recordingSink) Line(level, text string) {
	s.lines = append(s.lines, level+": "+text)
}

func TestEchoPluginMetadataIsValid(t *testing.T) {
	t.Parallel()

	p := &EchoPlugin{}
	require.NoError(t, p.PluginMetadata().Validate())
}

func TestEchoPluginRunBuildsEchoStep(t *testing.T) {
	t.Parallel()

	sink := &recordingSink{}
	p := &EchoPlugin{Sink: sink}

	steps, err := p.Run(context.Background(), map[string]any{"message": "hello"})
	require.NoError(t, err)
	require.Len(t, steps, 1)

	require.NoError(t, steps[0].Atom.Execute(context.Background()))
	require.Equal(t, "hello", steps[0].Atom.OutputString())
	require.Contains(t, sink.lines, "info: hello")
}

func TestEchoPluginRunRequiresMessage(t *testing.T) {
	t.Parallel()

	p := &EchoPlugin{}
	_, err := p.Run(context.Background(), nil)
	require.Error(t, err)
}

func TestRegistryRunsRegisteredEchoPlugin(t *testing.T) {
	t.Parallel()

	registry := NewPluginRegistry(DefaultConfig(), nil)
	require.NoError(t, registry.Register(&EchoPlugin{}))
	require.NoError(t, registry.ValidateDependencies())

	adapter := NewAdapter(registry)
	steps, err := adapter.Run(context.Background(), "echo", map[string]any{"message": "hi"})
	require.NoError(t, err)
	require.Len(t, steps, 1)
}
