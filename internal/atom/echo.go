package atom

import (
	"context"

	"github.com/avbuilds/manifesto/internal/model"
)

// Echo is the echo atom: emits a message to the sink without touching the
// system. Used by manifests purely for operator-facing progress notes, and
// by tests that want a deterministic, side-effect-free step.
type Echo struct {
	Message string
	Sink    LineSink

	output string
}

var _ model.Atom = (*Echo)(nil)

func (a *Echo) Plan(context.Context) (model.Outcome, error) {
	return model.Outcome{ShouldRun: true}, nil
}

func (a *Echo) Execute(context.Context) error {
	a.output = a.Message
	if a.Sink != nil {
		a.Sink.Line("info", a.Message)
	}
	return nil
}

func (a *Echo) OutputString() string { return a.output }
func (a *Echo) ErrorMessage() string  { return "" }
