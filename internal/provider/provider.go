// Package provider implements spec.md §4.6's Provider interface: the
// OS-specific collaborator that supplies the atoms behind package.install,
// package.repository, group.add, and user.add. Concrete providers are
// grounded on comtrya's actions/package/providers/*.rs family, one small
// file per provider, each wrapping a single package manager binary.
package provider

import (
	"context"

	"github.com/avbuilds/manifesto/internal/contexts"
	"github.com/avbuilds/manifesto/internal/model"
)

// PackageVariant is the resolved package.install action body a provider
// acts on: the package list plus any extra CLI arguments.
type PackageVariant struct {
	List      []string
	ExtraArgs []string
}

// Repository is the resolved package.repository action body.
type Repository struct {
	Name string
	URI  string
	Key  string
}

// PackageProvider is spec.md §4.6's Provider interface.
type PackageProvider interface {
	Name() string
	Available() bool
	Bootstrap(ctx context.Context, c *contexts.Contexts) ([]model.Step, error)
	Install(ctx context.Context, pkg PackageVariant, c *contexts.Contexts) ([]model.Step, error)
	HasRepository(repo Repository) bool
	AddRepository(ctx context.Context, repo Repository, c *contexts.Contexts) ([]model.Step, error)
	Query(ctx context.Context, pkg PackageVariant) ([]string, error)
}

// GroupProvider backs group.add, grounded on comtrya's
// actions/group/providers (GroupProvider trait, NoneGroupProvider stub).
type GroupProvider interface {
	AddGroup(ctx context.Context, name string, c *contexts.Contexts) ([]model.Step, error)
}

// UserProvider backs user.add and user.group, grounded on comtrya's
// actions/user/providers (UserProvider trait, NoneUserProvider stub).
type UserProvider interface {
	AddUser(ctx context.Context, user UserVariant, c *contexts.Contexts) ([]model.Step, error)
	AddToGroup(ctx context.Context, user, group string, c *contexts.Contexts) ([]model.Step, error)
}

// UserVariant is the resolved user.add action body.
type UserVariant struct {
	Name       string
	Group      string
	Shell      string
	Home       string
	CreateHome bool
}

// Elevator is the narrow interface providers need to build privileged
// steps; satisfied by *internal/privilege.Broker.
type Elevator interface {
	Rewrite(command string, args []string) (string, []string)
	Validate(ctx context.Context) error
}
