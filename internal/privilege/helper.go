// Package privilege implements the privilege broker of spec.md §2.9 and
// §4.7 steps 1/3: it decides when a command invocation needs elevation,
// rewrites it to go through the configured helper, and validates the
// helper once per run before any elevated exec actually happens.
package privilege

import "fmt"

// Helper describes one of the three elevation helpers spec.md §6
// recognizes: sudo, doas, run0.
type Helper struct {
	Name string
	// ValidateArgs invokes the helper in a mode that succeeds or fails
	// without running a command, used for the one-time pre-validation of
	// §4.7 step 3. Nil means the helper has no such mode (run0), so
	// pre-validation is skipped for it, matching spec.md §6's "on
	// Windows... no pre-validation is performed" carve-out generalized to
	// any helper without a validate idiom.
	ValidateArgs []string
	// StdinPasswordArgs validates while reading the password from stdin
	// (sudo's -S) instead of the controlling terminal, which is what lets
	// the broker supply a captured credential non-interactively. Nil
	// means the helper has no such mode.
	StdinPasswordArgs []string
}

var helpers = map[string]Helper{
	"sudo": {
		Name:              "sudo",
		ValidateArgs:      []string{"-n", "-v"},
		StdinPasswordArgs: []string{"-S", "-v"},
	},
	"doas": {
		Name:              "doas",
		ValidateArgs:      []string{"-n", "true"},
		StdinPasswordArgs: nil, // doas has no stdin-password idiom; a failed -n check is ElevationDenied
	},
	"run0": {
		Name:              "run0",
		ValidateArgs:      nil,
		StdinPasswordArgs: nil,
	},
}

// ResolveHelper looks up a recognized elevation helper by name; the
// default when unspecified is sudo (spec.md §6).
func ResolveHelper(name string) (Helper, error) {
	if name == "" {
		name = "sudo"
	}
	h, ok := helpers[name]
	if !ok {
		return Helper{}, fmt.Errorf("privilege: unrecognized elevation helper %q", name)
	}
	return h, nil
}
