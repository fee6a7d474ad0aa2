package provider

import "context"

// NewZypper returns the openSUSE default provider (spec.md §4.6),
// grounded directly on comtrya's providers/zypper.rs: "zypper install -y"
// plus extra args plus packages, privileged, querying via rpm -q since
// zypper's own backend is RPM.
func NewZypper(elevator Elevator) PackageProvider {
	return &shellPackageProvider{
		name:        "Zypper",
		binary:      "zypper",
		installArgs: []string{"install", "-y"},
		elevator:    elevator,
		queryInstalled: func(ctx context.Context, pkg string) bool {
			return commandSucceeds(ctx, "rpm", "-q", pkg)
		},
	}
}
