package provider

import (
	"fmt"

	manifestoerrors "github.com/avbuilds/manifesto/pkg/errors"
)

// ByName returns the package provider with the given name, for
// package.install/package.repository bodies that pin an explicit
// provider rather than accepting the OS-family default.
func ByName(name string, elevator Elevator) (PackageProvider, error) {
	switch name {
	case "yay":
		return NewYay(elevator), nil
	case "aptitude":
		return NewAptitude(elevator), nil
	case "dnf":
		return NewDnf(elevator), nil
	case "zypper":
		return NewZypper(elevator), nil
	case "bsdpkg":
		return NewBsdPkg(elevator), nil
	case "pkgin":
		return NewPkgin(elevator), nil
	case "homebrew":
		return NewHomebrew(), nil
	case "winget":
		return NewWinget(), nil
	default:
		return nil, manifestoerrors.NewValidationError("provider", fmt.Sprintf("unknown package provider %q", name), nil)
	}
}

// ForFamily returns the default package provider for an OS family
// string (internal/contexts' "os.family"/"os" fact), per spec.md §4.6's
// enumerated mapping. Linux has no single default: the family covers
// Arch, Debian/Ubuntu, Red Hat, and openSUSE, which Go's runtime cannot
// distinguish (see internal/contexts' familyForGOOS comment) — so on
// "linux" this probes each candidate's availability in the order spec.md
// lists them and takes the first binary found on PATH.
func ForFamily(family string, elevator Elevator) (PackageProvider, error) {
	switch family {
	case "macos":
		return NewHomebrew(), nil
	case "windows":
		return NewWinget(), nil
	case "bsd":
		return NewBsdPkg(elevator), nil
	case "netbsd":
		return NewPkgin(elevator), nil
	case "linux":
		for _, candidate := range []PackageProvider{
			NewYay(elevator),
			NewAptitude(elevator),
			NewDnf(elevator),
			NewZypper(elevator),
		} {
			if candidate.Available() {
				return candidate, nil
			}
		}
		return nil, manifestoerrors.NewNoDefaultProviderError(family)
	default:
		return nil, manifestoerrors.NewNoDefaultProviderError(family)
	}
}
