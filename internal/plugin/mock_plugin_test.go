package plugin

import (
	"context"
	"sync"

	"github.com/avbuilds/manifesto/internal/model"
)

type MockPluginOption func(*MockPlugin)

type MockPlugin struct {
	mu       sync.Mutex
	metadata PluginMetadata
	calls    []string
	runFn    func(context.Context, map[string]any) ([]model.Step, error)
}

func NewMockPlugin(name string, opts ...MockPluginOption) *MockPlugin {
	mp := &MockPlugin{
		metadata: PluginMetadata{
			Name:       name,
			Version:    "1.0.0",
			APIVersion: "1.x",
		},
	}

	for _, opt := range opts {
		opt(mp)
	}

	if mp.metadata.Dependencies == nil {
		mp.metadata.Dependencies = []Dependency{}
	}
	return mp
}

func WithDependencies(deps ...Dependency) MockPluginOption {
	copied := make([]Dependency, len(deps))
	copy(copied, deps)
	return func(mp *MockPlugin) {
		mp.metadata.Dependencies = copied
	}
}

func WithStateful(stateful bool) MockPluginOption {
	return func(mp *MockPlugin) {
		mp.metadata.Stateful = stateful
	}
}

func WithDescription(desc string) MockPluginOption {
	return func(mp *MockPlugin) {
		mp.metadata.Description = desc
	}
}

func WithRunFunc(fn func(context.Context, map[string]any) ([]model.Step, error)) MockPluginOption {
	return func(mp *MockPlugin) {
		mp.runFn = fn
	}
}

func (m *MockPlugin) PluginMetadata() PluginMetadata {
	return m.metadata
}

func (m *MockPlugin) Run(ctx context.Context, with map[string]any) ([]model.Step, error) {
	m.recordCall("Run")
	if m.runFn != nil {
		return m.runFn(ctx, with)
	}
	return nil, nil
}

func (m *MockPlugin) Calls() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	copied := make([]string, len(m.calls))
	copy(copied, m.calls)
	return copied
}

func (m *MockPlugin) recordCall(name string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls = append(m.calls, name)
}

type InitializingMockPlugin struct {
	*MockPlugin
	initFn func(*PluginRegistry) error
}

func NewInitializingMockPlugin(name string, initFn func(*PluginRegistry) error, opts ...MockPluginOption) *InitializingMockPlugin {
	base := NewMockPlugin(name, opts...)
	return &InitializingMockPlugin{MockPlugin: base, initFn: initFn}
}

func (m *InitializingMockPlugin) Init(registry *PluginRegistry) error {
	m.recordCall("Init")
	if m.initFn != nil {
		return m.initFn(registry)
	}
	return nil
}
