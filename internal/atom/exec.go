package atom

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"os/exec"
	"strings"
	"sync"

	"github.com/avbuilds/manifesto/internal/model"
	manifestoerrors "github.com/avbuilds/manifesto/pkg/errors"
)

// Elevator rewrites a command invocation to run through the configured
// elevation helper and validates that helper once per run. Satisfied by
// *internal/privilege.Broker; declared narrowly here so atom does not
// depend on privilege's concrete type.
type Elevator interface {
	Rewrite(command string, args []string) (string, []string)
	Validate(ctx context.Context) error
}

// Exec is the dominant atom kind (spec.md §4.7): it runs a child
// process, optionally elevated, streaming its output line by line.
type Exec struct {
	ManifestName string
	Command      string
	Args         []string
	WorkingDir   string
	Env          map[string]string
	Privileged   bool
	Elevator     Elevator
	Sink         LineSink

	stdout       strings.Builder
	stderr       string
	errorMessage string
}

var _ model.Atom = (*Exec)(nil)

// Plan always returns should_run=true: exec atoms have unknowable side
// effects without sandboxing, so they always run (spec.md §4.7).
func (e *Exec) Plan(context.Context) (model.Outcome, error) {
	return model.Outcome{ShouldRun: true}, nil
}

// Execute runs the six-step algorithm of spec.md §4.7: elevation
// decision, resolution, pre-validation, spawn, stream, join — plus the
// permission-denied elevated-retry fallback of step 7.
func (e *Exec) Execute(ctx context.Context) error {
	command, args := e.Command, e.Args
	if e.Privileged && e.Elevator != nil && !isRoot() {
		command, args = e.elevate(command, args)
		if err := e.Elevator.Validate(ctx); err != nil {
			e.errorMessage = err.Error()
			return err
		}
	}

	err := e.spawn(ctx, command, args)
	if err == nil {
		return nil
	}

	if isPermissionDenied(err) && e.Elevator != nil && !(e.Privileged && !isRoot()) {
		// step 7: an unprivileged spawn that fails with permission denied
		// gets one elevated retry.
		command, args = e.elevate(e.Command, e.Args)
		if valErr := e.Elevator.Validate(ctx); valErr != nil {
			e.errorMessage = valErr.Error()
			return valErr
		}
		err = e.spawn(ctx, command, args)
		if err == nil {
			return nil
		}
	}

	e.errorMessage = err.Error()
	return err
}

func (e *Exec) elevate(command string, args []string) (string, []string) {
	return e.Elevator.Rewrite(command, args)
}

func (e *Exec) spawn(ctx context.Context, command string, args []string) error {
	resolved, err := exec.LookPath(command)
	if err != nil {
		return manifestoerrors.NewAtomExecuteError(e.ManifestName, "CommandNotFound", err)
	}

	cmd := exec.CommandContext(ctx, resolved, args...)
	cmd.Dir = e.WorkingDir
	cmd.Env = buildEnv(e.Env)
	cmd.Stdin = os.Stdin

	stdoutPipe, err := cmd.StdoutPipe()
	if err != nil {
		return manifestoerrors.NewAtomExecuteError(e.ManifestName, "IoError", err)
	}
	stderrPipe, err := cmd.StderrPipe()
	if err != nil {
		return manifestoerrors.NewAtomExecuteError(e.ManifestName, "IoError", err)
	}

	if err := cmd.Start(); err != nil {
		if isPermissionDenied(err) {
			return err // surfaced as-is so Execute's retry path can detect it
		}
		return manifestoerrors.NewAtomExecuteError(e.ManifestName, "IoError", err)
	}

	var wg sync.WaitGroup
	var stdoutBuf, stderrBuf strings.Builder
	var mu sync.Mutex

	wg.Add(2)
	go e.streamPipe(&wg, stdoutPipe, &stdoutBuf, &mu)
	go e.streamPipe(&wg, stderrPipe, &stderrBuf, &mu)
	wg.Wait()

	waitErr := cmd.Wait()
	e.stdout.Reset()
	e.stdout.WriteString(stdoutBuf.String())
	e.stderr = stderrBuf.String()

	if waitErr != nil {
		if exitErr, ok := waitErr.(*exec.ExitError); ok {
			return manifestoerrors.NewAtomExecuteError(e.ManifestName, "NonZeroExit",
				fmt.Errorf("exit code %d: %s", exitErr.ExitCode(), e.stderr))
		}
		return manifestoerrors.NewAtomExecuteError(e.ManifestName, "IoError", waitErr)
	}

	return nil
}

func (e *Exec) streamPipe(wg *sync.WaitGroup, r io.Reader, into *strings.Builder, mu *sync.Mutex) {
	defer wg.Done()
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		line := scanner.Text()
		mu.Lock()
		into.WriteString(line)
		into.WriteByte('\n')
		mu.Unlock()
		if e.Sink != nil {
			e.Sink.Line(classify(line), line)
		}
	}
}

// OutputString returns the captured stdout, matching spec.md §4.7 step
// 6's "record stdout/stderr into the atom's status."
func (e *Exec) OutputString() string {
	return e.stdout.String()
}

// ErrorMessage returns the last execute error's message, if any.
func (e *Exec) ErrorMessage() string {
	return e.errorMessage
}

func buildEnv(custom map[string]string) []string {
	env := os.Environ()
	for k, v := range custom {
		env = append(env, k+"="+v)
	}
	return env
}

func isRoot() bool {
	return os.Geteuid() == 0
}

func isPermissionDenied(err error) bool {
	return err != nil && strings.Contains(strings.ToLower(err.Error()), "permission denied")
}
