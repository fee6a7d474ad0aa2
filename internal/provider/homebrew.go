package provider

import "context"

// NewHomebrew returns the macOS default provider (spec.md §4.6),
// grounded on comtrya's providers/homebrew.rs. Homebrew never runs
// elevated: it refuses to run as root.
func NewHomebrew() PackageProvider {
	return &shellPackageProvider{
		name:         "Homebrew",
		binary:       "brew",
		installArgs:  []string{"install"},
		unprivileged: true,
		queryInstalled: func(ctx context.Context, pkg string) bool {
			return commandSucceeds(ctx, "brew", "list", "--versions", pkg)
		},
	}
}
