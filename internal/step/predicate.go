package step

import (
	"context"

	"github.com/avbuilds/manifesto/internal/expr"
	"github.com/avbuilds/manifesto/internal/model"
	manifestoerrors "github.com/avbuilds/manifesto/pkg/errors"
)

// Predicate is a generic initializer that vetoes a step by evaluating a
// guard expression against a scope, reusing the same expression engine
// manifest/action/variant `where` clauses use (spec.md §4.8's "allow()
// -> bool" initializer). Useful for steps whose precondition is not
// worth a bespoke Go type.
type Predicate struct {
	Expression string
	Scope      expr.Scope
}

var _ model.Initializer = (*Predicate)(nil)

func (p *Predicate) Allow(context.Context) (bool, error) {
	if p.Expression == "" {
		return true, nil
	}
	ok, err := expr.Eval(p.Expression, p.Scope)
	if err != nil {
		return false, manifestoerrors.NewGuardError(p.Expression, err)
	}
	return ok, nil
}

// PredicateFinalizer is the finalizer counterpart: it evaluates a guard
// after the atom has run, vetoing continuation of the remaining steps in
// the action if the guard is false.
type PredicateFinalizer struct {
	Expression string
	Scope      expr.Scope
}

var _ model.Finalizer = (*PredicateFinalizer)(nil)

func (p *PredicateFinalizer) Allow(_ context.Context, _ model.Atom) (bool, error) {
	if p.Expression == "" {
		return true, nil
	}
	ok, err := expr.Eval(p.Expression, p.Scope)
	if err != nil {
		return false, manifestoerrors.NewGuardError(p.Expression, err)
	}
	return ok, nil
}
