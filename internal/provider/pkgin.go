package provider

import "context"

// NewPkgin returns the NetBSD default provider (spec.md §4.6), grounded
// on comtrya's providers/pkgin.rs.
func NewPkgin(elevator Elevator) PackageProvider {
	return &shellPackageProvider{
		name:        "pkgin",
		binary:      "pkgin",
		installArgs: []string{"-y", "install"},
		elevator:    elevator,
		queryInstalled: func(ctx context.Context, pkg string) bool {
			return commandSucceeds(ctx, "pkg_info", "-E", pkg)
		},
	}
}
