package provider

import "context"

// NewYay returns the Arch-family default provider (spec.md §4.6),
// grounded on comtrya's providers/yay.rs sibling (paru.rs is the same
// shape with a different binary).
func NewYay(elevator Elevator) PackageProvider {
	return &shellPackageProvider{
		name:        "yay",
		binary:      "yay",
		installArgs: []string{"-S", "--noconfirm"},
		elevator:    elevator,
		queryInstalled: func(ctx context.Context, pkg string) bool {
			return commandSucceeds(ctx, "pacman", "-Q", pkg)
		},
	}
}
