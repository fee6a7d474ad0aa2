package provider

import "context"

// NewDnf returns the Red Hat-family default provider (spec.md §4.6),
// grounded on comtrya's providers/dnf.rs.
func NewDnf(elevator Elevator) PackageProvider {
	return &shellPackageProvider{
		name:        "dnf",
		binary:      "dnf",
		installArgs: []string{"install", "-y"},
		elevator:    elevator,
		queryInstalled: func(ctx context.Context, pkg string) bool {
			return commandSucceeds(ctx, "rpm", "-q", pkg)
		},
	}
}
