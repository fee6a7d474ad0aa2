package action

import (
	"github.com/avbuilds/manifesto/internal/atom"
	"github.com/avbuilds/manifesto/internal/model"
)

// planCommandRun builds the one Exec step for command.run. b.PrivilegeProvider
// names which elevation helper the author expects (sudo/doas/run0); the
// broker is resolved once per run (internal/privilege.NewBroker), so the
// field is not read here or by Summarize, and never picks a different
// broker per step.
func (r *Resolver) planCommandRun(manifestName string, b *model.CommandRunBody) ([]model.Step, error) {
	return wrapAtom(&atom.Exec{
		ManifestName: manifestName,
		Command:      b.Command,
		Args:         b.Args,
		WorkingDir:   b.Dir,
		Env:          b.Env,
		Privileged:   b.Privileged,
		Elevator:     r.Elevator,
		Sink:         r.Sink,
	}), nil
}
