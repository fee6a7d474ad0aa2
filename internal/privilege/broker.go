package privilege

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"os/exec"
	"sync"

	"golang.org/x/term"

	manifestoerrors "github.com/avbuilds/manifesto/pkg/errors"
)

// Broker is the process-wide privilege broker. One Broker is constructed
// per run and shared by every Exec atom that needs elevation.
type Broker struct {
	helper Helper

	mu         sync.Mutex
	validated  bool
	credential *Credential
}

// NewBroker constructs a Broker for the named helper (sudo/doas/run0;
// empty defaults to sudo per spec.md §6).
func NewBroker(helperName string) (*Broker, error) {
	h, err := ResolveHelper(helperName)
	if err != nil {
		return nil, err
	}
	return &Broker{helper: h}, nil
}

// IsRoot reports whether the current effective user is already root, in
// which case elevation is a no-op (spec.md §4.7 step 1, §8 property 7).
func IsRoot() bool {
	return os.Geteuid() == 0
}

// Rewrite implements spec.md §4.7 step 1's elevation decision: when
// privileged is true and the current user is not root, the invocation
// becomes [helper, command, args...]; otherwise it passes through
// unchanged. Rewrite does not itself decide whether elevation is
// needed — callers (the Exec atom) already know `privileged` and check
// IsRoot; this keeps the rewrite pure and independently testable.
func (b *Broker) Rewrite(command string, args []string) (string, []string) {
	newArgs := make([]string, 0, len(args)+1)
	newArgs = append(newArgs, command)
	newArgs = append(newArgs, args...)
	return b.helper.Name, newArgs
}

// Validate performs the one-time pre-validation of spec.md §4.7 step 3.
// It is a no-op after the first successful call, and a no-op entirely
// for helpers with no validate idiom (run0). On failure it returns an
// AtomExecuteError with Kind ElevationDenied carrying the helper's
// stderr, or with Kind CommandNotFound when the helper is not on PATH.
func (b *Broker) Validate(ctx context.Context) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.validated {
		return nil
	}
	if b.helper.ValidateArgs == nil {
		b.validated = true
		return nil
	}

	helperPath, err := exec.LookPath(b.helper.Name)
	if err != nil {
		return manifestoerrors.NewAtomExecuteError("", "CommandNotFound", err)
	}

	if err := runValidate(ctx, helperPath, b.helper.ValidateArgs, nil); err == nil {
		b.validated = true
		return nil
	}

	if b.helper.StdinPasswordArgs == nil {
		return manifestoerrors.NewAtomExecuteError("", "ElevationDenied",
			fmt.Errorf("%s requires a credential but supports no stdin-password idiom", b.helper.Name))
	}

	cred, err := capturePassword(b.helper.Name)
	if err != nil {
		return manifestoerrors.NewAtomExecuteError("", "ElevationDenied", err)
	}
	b.credential = cred

	if err := runValidate(ctx, helperPath, b.helper.StdinPasswordArgs, cred.bytes); err != nil {
		return manifestoerrors.NewAtomExecuteError("", "ElevationDenied", err)
	}

	// The helper itself now caches the credential (e.g. sudo's timestamp
	// cache); the broker no longer needs to retain it.
	b.credential.Zero()
	b.credential = nil
	b.validated = true
	return nil
}

func runValidate(ctx context.Context, helperPath string, args []string, password []byte) error {
	cmd := exec.CommandContext(ctx, helperPath, args...)
	var stderr bytes.Buffer
	cmd.Stderr = &stderr
	if password != nil {
		cmd.Stdin = bytes.NewReader(append(append([]byte{}, password...), '\n'))
	} else {
		cmd.Stdin = nil
	}
	if err := cmd.Run(); err != nil {
		if stderr.Len() > 0 {
			return fmt.Errorf("%w: %s", err, stderr.String())
		}
		return err
	}
	return nil
}

func capturePassword(helperName string) (*Credential, error) {
	if !term.IsTerminal(int(os.Stdin.Fd())) {
		return nil, fmt.Errorf("%s needs a password and stdin is not a terminal", helperName)
	}
	fmt.Fprintf(os.Stderr, "[%s] password: ", helperName)
	password, err := term.ReadPassword(int(os.Stdin.Fd()))
	fmt.Fprintln(os.Stderr)
	if err != nil {
		return nil, fmt.Errorf("read password: %w", err)
	}
	return &Credential{bytes: password}, nil
}
