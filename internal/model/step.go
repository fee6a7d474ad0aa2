package model

import "context"

// Outcome is the pure result of an atom's plan phase.
type Outcome struct {
	SideEffects []string
	ShouldRun   bool
}

// Atom is the smallest executable unit: plan is pure, execute mutates
// the system and may fail. OutputString/ErrorMessage expose the mutable
// status execute() fills in, for logging by the executor.
type Atom interface {
	Plan(ctx context.Context) (Outcome, error)
	Execute(ctx context.Context) error
	OutputString() string
	ErrorMessage() string
}

// Initializer runs before a step's atom and can veto execution.
type Initializer interface {
	Allow(ctx context.Context) (bool, error)
}

// Finalizer runs after a step's atom and can veto continuation of the
// remaining steps in the same action.
type Finalizer interface {
	Allow(ctx context.Context, atom Atom) (bool, error)
}

// Step brackets an atom with ordered initializers and finalizers. First
// veto wins in either list.
type Step struct {
	Atom         Atom
	Initializers []Initializer
	Finalizers   []Finalizer
}
