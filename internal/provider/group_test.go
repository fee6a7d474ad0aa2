package provider

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestUnixGroupProviderBuildsGroupaddStep(t *testing.T) {
	t.Parallel()

	p := NewUnixGroupProvider(nil)
	steps, err := p.AddGroup(context.Background(), "deploy", nil)
	require.NoError(t, err)
	require.Len(t, steps, 1)
}

func TestNoneGroupProviderReturnsNoSteps(t *testing.T) {
	t.Parallel()

	sink := &recordingSink{}
	p := &NoneGroupProvider{Sink: sink}
	steps, err := p.AddGroup(context.Background(), "deploy", nil)
	require.NoError(t, err)
	require.Empty(t, steps)
	require.Contains(t, sink.lines, "warn: this system does not have a provider for groups")
}

type recordingSink struct {
	lines []string
}

func (s *recordingSink) Line(level, text string) {
	s.lines = append(s.lines, level+": "+text)
}
