package provider

import (
	"context"
	"os/exec"

	"github.com/avbuilds/manifesto/internal/atom"
	"github.com/avbuilds/manifesto/internal/contexts"
	"github.com/avbuilds/manifesto/internal/model"
)

// shellPackageProvider is the common shape every concrete package
// provider in this file's siblings (yay.go, aptitude.go, dnf.go, ...)
// configures: one binary, one install invocation, one query probe. This
// mirrors comtrya's providers/zypper.rs: install() builds a single Exec
// step with "install -y <extra args> <packages>", privileged.
type shellPackageProvider struct {
	name        string
	binary      string
	installArgs []string
	elevator    Elevator
	// queryInstalled reports whether a single package name is already
	// installed, using whatever probe command the manager supports
	// (dpkg-query, rpm -q, pacman -Q, brew list, ...).
	queryInstalled func(ctx context.Context, pkg string) bool
	// unprivileged is set by managers that refuse to run as root
	// (Homebrew) or manage their own elevation prompts (winget).
	unprivileged bool
	// bootstrap builds the steps that install this provider's own binary
	// when it is missing, mirroring comtrya's snapcraft.rs bootstrap()
	// (apt install --yes snapd). Most providers ship with their OS and
	// leave this nil: Available() false then has no remedy, and install
	// surfaces ProviderUnavailableError instead.
	bootstrap func() []model.Step
}

var _ PackageProvider = (*shellPackageProvider)(nil)

func (p *shellPackageProvider) Name() string { return p.name }

func (p *shellPackageProvider) Available() bool {
	_, err := exec.LookPath(p.binary)
	return err == nil
}

func (p *shellPackageProvider) Bootstrap(context.Context, *contexts.Contexts) ([]model.Step, error) {
	if p.bootstrap == nil {
		return nil, nil
	}
	return p.bootstrap(), nil
}

func (p *shellPackageProvider) HasRepository(Repository) bool {
	return false
}

func (p *shellPackageProvider) AddRepository(context.Context, Repository, *contexts.Contexts) ([]model.Step, error) {
	return nil, nil
}

// Query probes each requested package and returns the ones already
// installed, per spec.md §4.6's "query() -> [string], for future
// diffing" — manifesto wires this into Install's plan phase so a
// second apply of a satisfied package.install reports should_run=false.
func (p *shellPackageProvider) Query(ctx context.Context, pkg PackageVariant) ([]string, error) {
	if p.queryInstalled == nil {
		return nil, nil
	}
	var installed []string
	for _, name := range pkg.List {
		if p.queryInstalled(ctx, name) {
			installed = append(installed, name)
		}
	}
	return installed, nil
}

func (p *shellPackageProvider) Install(_ context.Context, pkg PackageVariant, _ *contexts.Contexts) ([]model.Step, error) {
	args := append(append([]string{}, p.installArgs...), pkg.ExtraArgs...)
	args = append(args, pkg.List...)

	return []model.Step{{
		Atom: &atom.Exec{
			Command:    p.binary,
			Args:       args,
			Privileged: !p.unprivileged,
			Elevator:   wrapElevator(p.elevator),
		},
	}}, nil
}

// wrapElevator adapts this package's Elevator to atom.Elevator; both are
// structurally identical but declared separately so provider does not
// import atom's package for its interface, and atom does not import
// provider's.
func wrapElevator(e Elevator) atom.Elevator {
	if e == nil {
		return nil
	}
	return e
}

// commandSucceeds runs a probe command and reports whether it exited
// zero, discarding output. Used by the per-manager query probes.
func commandSucceeds(ctx context.Context, binary string, args ...string) bool {
	resolved, err := exec.LookPath(binary)
	if err != nil {
		return false
	}
	cmd := exec.CommandContext(ctx, resolved, args...)
	return cmd.Run() == nil
}
