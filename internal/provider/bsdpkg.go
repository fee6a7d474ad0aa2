package provider

import "context"

// NewBsdPkg returns the FreeBSD/DragonFly default provider (spec.md
// §4.6), grounded on comtrya's providers/bsdpkg.rs.
func NewBsdPkg(elevator Elevator) PackageProvider {
	return &shellPackageProvider{
		name:        "bsdpkg",
		binary:      "pkg",
		installArgs: []string{"install", "-y"},
		elevator:    elevator,
		queryInstalled: func(ctx context.Context, pkg string) bool {
			return commandSucceeds(ctx, "pkg", "info", "-e", pkg)
		},
	}
}
