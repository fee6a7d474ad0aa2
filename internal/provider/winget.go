package provider

import "context"

// NewWinget returns the Windows default provider (spec.md §4.6),
// grounded on comtrya's providers/winget.rs. winget manages its own UAC
// elevation prompt, so steps are never marked privileged here.
func NewWinget() PackageProvider {
	return &shellPackageProvider{
		name:         "winget",
		binary:       "winget",
		installArgs:  []string{"install", "--silent", "--accept-package-agreements", "--accept-source-agreements"},
		unprivileged: true,
		queryInstalled: func(ctx context.Context, pkg string) bool {
			return commandSucceeds(ctx, "winget", "list", "--id", pkg, "-e")
		},
	}
}
