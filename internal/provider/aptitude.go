package provider

import (
	"context"

	"github.com/avbuilds/manifesto/internal/atom"
	"github.com/avbuilds/manifesto/internal/model"
)

// NewAptitude returns the Debian/Ubuntu-family default provider
// (spec.md §4.6), grounded on comtrya's providers/aptitude.rs. Its
// bootstrap mirrors snapcraft.rs's own bootstrap (apt install --yes
// snapd): a minimal Debian image can lack aptitude while still carrying
// apt-get, so Bootstrap installs aptitude through it before the install
// step runs.
func NewAptitude(elevator Elevator) PackageProvider {
	return &shellPackageProvider{
		name:        "aptitude",
		binary:      "aptitude",
		installArgs: []string{"install", "-y"},
		elevator:    elevator,
		queryInstalled: func(ctx context.Context, pkg string) bool {
			return commandSucceeds(ctx, "dpkg-query", "-W", "-f=${Status}", pkg)
		},
		bootstrap: func() []model.Step {
			return []model.Step{{
				Atom: &atom.Exec{
					Command:    "apt-get",
					Args:       []string{"install", "-y", "aptitude"},
					Privileged: true,
					Elevator:   wrapElevator(elevator),
				},
			}}
		},
	}
}
