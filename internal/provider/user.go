package provider

import (
	"context"
	"os/user"

	"github.com/avbuilds/manifesto/internal/atom"
	"github.com/avbuilds/manifesto/internal/contexts"
	"github.com/avbuilds/manifesto/internal/model"
)

// unixUserProvider shells out to useradd/usermod, grounded on comtrya's
// actions/user/add.rs (the "already exists" probe before delegating to
// the provider) and actions/user/providers (the trait shape).
type unixUserProvider struct {
	elevator Elevator
}

var _ UserProvider = (*unixUserProvider)(nil)

func NewUnixUserProvider(elevator Elevator) UserProvider {
	return &unixUserProvider{elevator: elevator}
}

// AddUser probes for an existing account first (comtrya's
// uzers::get_user_by_name, translated to Go's os/user.Lookup), so a
// plan against an already-present user produces no steps.
func (p *unixUserProvider) AddUser(_ context.Context, u UserVariant, _ *contexts.Contexts) ([]model.Step, error) {
	if u.Name == "" {
		return nil, nil
	}
	if _, err := user.Lookup(u.Name); err == nil {
		return nil, nil
	}

	args := []string{}
	if u.CreateHome {
		args = append(args, "-m")
	}
	if u.Home != "" {
		args = append(args, "-d", u.Home)
	}
	if u.Shell != "" {
		args = append(args, "-s", u.Shell)
	}
	if u.Group != "" {
		args = append(args, "-g", u.Group)
	}
	args = append(args, u.Name)

	return []model.Step{{
		Atom: &atom.Exec{
			Command:    "useradd",
			Args:       args,
			Privileged: true,
			Elevator:   wrapElevator(p.elevator),
		},
	}}, nil
}

func (p *unixUserProvider) AddToGroup(_ context.Context, username, group string, _ *contexts.Contexts) ([]model.Step, error) {
	return []model.Step{{
		Atom: &atom.Exec{
			Command:    "usermod",
			Args:       []string{"-aG", group, username},
			Privileged: true,
			Elevator:   wrapElevator(p.elevator),
		},
	}}, nil
}

// NoneUserProvider is the fallback for platforms without user
// management (Windows), grounded on comtrya's providers/none.rs.
type NoneUserProvider struct {
	Sink atom.LineSink
}

var _ UserProvider = (*NoneUserProvider)(nil)

func (p *NoneUserProvider) AddUser(context.Context, UserVariant, *contexts.Contexts) ([]model.Step, error) {
	if p.Sink != nil {
		p.Sink.Line("warn", "this system does not have a provider for users")
	}
	return nil, nil
}

func (p *NoneUserProvider) AddToGroup(context.Context, string, string, *contexts.Contexts) ([]model.Step, error) {
	if p.Sink != nil {
		p.Sink.Line("warn", "this system does not have a provider for users")
	}
	return nil, nil
}
