package plugin

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/avbuilds/manifesto/internal/model"
)

func TestAdapterRunDelegatesToRegisteredPlugin(t *testing.T) {
	registry := NewPluginRegistry(DefaultConfig(), nil)
	mock := NewMockPlugin("dotfiles", WithRunFunc(func(_ context.Context, with map[string]any) ([]model.Step, error) {
		return []model.Step{{Atom: nil}}, nil
	}))
	require.NoError(t, registry.Register(mock))

	adapter := NewAdapter(registry)
	steps, err := adapter.Run(context.Background(), "dotfiles", map[string]any{"k": "v"})
	require.NoError(t, err)
	require.Len(t, steps, 1)
	require.Equal(t, []string{"Run"}, mock.Calls())
}

func TestAdapterRunErrorsForUnknownPlugin(t *testing.T) {
	registry := NewPluginRegistry(DefaultConfig(), nil)
	adapter := NewAdapter(registry)

	_, err := adapter.Run(context.Background(), "missing", nil)
	require.Error(t, err)
	var notFound ErrPluginNotFound
	require.ErrorAs(t, err, &notFound)
}

func TestAdapterRunErrorsWithoutRegistry(t *testing.T) {
	adapter := &Adapter{}
	_, err := adapter.Run(context.Background(), "dotfiles", nil)
	require.Error(t, err)
}
