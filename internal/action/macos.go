package action

import (
	"context"
	"os/exec"
	"strings"

	"github.com/avbuilds/manifesto/internal/atom"
	"github.com/avbuilds/manifesto/internal/model"
)

// planMacOSDefault models comtrya's macos.default action (present in the
// action enum but not detailed beyond its name) as a single Exec atom
// running `defaults write <domain> <key> -<type> <value>`, gated by a
// `defaults read` probe so a value already matching is a no-op.
func (r *Resolver) planMacOSDefault(manifestName string, b *model.MacOSDefaultBody) ([]model.Step, error) {
	typ := b.Type
	if typ == "" {
		typ = "string"
	}
	return wrapAtom(&macOSDefaultAtom{
		ManifestName: manifestName,
		Domain:       b.Domain,
		Key:          b.Key,
		Type:         typ,
		Value:        b.Value,
		exec: &atom.Exec{
			ManifestName: manifestName,
			Command:      "defaults",
			Args:         []string{"write", b.Domain, b.Key, "-" + typ, b.Value},
			Sink:         r.Sink,
		},
	}), nil
}

// macOSDefaultAtom wraps an Exec atom with a read-before-write probe so
// plan() reports should_run=false when the recorded value already
// matches, instead of Exec's default always-run behavior.
type macOSDefaultAtom struct {
	ManifestName string
	Domain       string
	Key          string
	Type         string
	Value        string

	exec *atom.Exec
}

var _ model.Atom = (*macOSDefaultAtom)(nil)

func (a *macOSDefaultAtom) Plan(ctx context.Context) (model.Outcome, error) {
	out, err := exec.CommandContext(ctx, "defaults", "read", a.Domain, a.Key).CombinedOutput()
	if err == nil && strings.TrimSpace(string(out)) == a.Value {
		return model.Outcome{}, nil
	}
	return model.Outcome{SideEffects: []string{"defaults write " + a.Domain + " " + a.Key}, ShouldRun: true}, nil
}

func (a *macOSDefaultAtom) Execute(ctx context.Context) error {
	return a.exec.Execute(ctx)
}

func (a *macOSDefaultAtom) OutputString() string { return a.exec.OutputString() }
func (a *macOSDefaultAtom) ErrorMessage() string  { return a.exec.ErrorMessage() }
