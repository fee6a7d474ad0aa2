package provider

import (
	"context"
	"os/user"

	"github.com/avbuilds/manifesto/internal/atom"
	"github.com/avbuilds/manifesto/internal/contexts"
	"github.com/avbuilds/manifesto/internal/model"
)

// unixGroupProvider shells out to groupadd, grounded on comtrya's
// actions/group/providers (the trait shape) — comtrya's only retrieved
// concrete provider is NoneGroupProvider, a warn-and-no-op stub used
// where no group management exists; manifesto supplies a real Unix
// implementation since useradd/groupadd are present on every Unix family
// spec.md §4.6 enumerates, and reserves the none behavior for Windows.
type unixGroupProvider struct {
	elevator Elevator
}

var _ GroupProvider = (*unixGroupProvider)(nil)

func NewUnixGroupProvider(elevator Elevator) GroupProvider {
	return &unixGroupProvider{elevator: elevator}
}

// AddGroup probes for an existing group first (os/user.LookupGroup), so
// a plan against an already-present group produces no steps.
func (p *unixGroupProvider) AddGroup(_ context.Context, name string, _ *contexts.Contexts) ([]model.Step, error) {
	if _, err := user.LookupGroup(name); err == nil {
		return nil, nil
	}
	return []model.Step{{
		Atom: &atom.Exec{
			Command:    "groupadd",
			Args:       []string{name},
			Privileged: true,
			Elevator:   wrapElevator(p.elevator),
		},
	}}, nil
}

// NoneGroupProvider is the fallback for platforms without group
// management (Windows), grounded directly on comtrya's
// providers/none.rs: logs a warning and returns no steps rather than
// failing the run.
type NoneGroupProvider struct {
	Sink atom.LineSink
}

var _ GroupProvider = (*NoneGroupProvider)(nil)

func (p *NoneGroupProvider) AddGroup(_ context.Context, _ string, _ *contexts.Contexts) ([]model.Step, error) {
	if p.Sink != nil {
		p.Sink.Line("warn", "this system does not have a provider for groups")
	}
	return nil, nil
}
