// Package expr implements the guard expression language used by manifest,
// action, and variant `where` clauses: identifier lookup against a flat
// scope, string/boolean literals, equality, and the boolean operators
// &&, ||, !. It is deliberately small rather than embedding a general
// scripting engine; see DESIGN.md for why.
package expr

import (
	"fmt"
)

// Scope is the flattened context an expression is evaluated against.
// Missing keys are not errors: an identifier with no entry evaluates to
// the empty string, so a comparison against it is simply false.
type Scope map[string]string

// Eval parses and evaluates expr against scope, returning a bool.
func Eval(expression string, scope Scope) (bool, error) {
	tokens, err := lex(expression)
	if err != nil {
		return false, fmt.Errorf("expr: %w", err)
	}
	p := &parser{tokens: tokens}
	node, err := p.parseOr()
	if err != nil {
		return false, fmt.Errorf("expr: %w", err)
	}
	if !p.atEnd() {
		return false, fmt.Errorf("expr: unexpected token %q", p.peek().text)
	}
	v, err := node.eval(scope)
	if err != nil {
		return false, fmt.Errorf("expr: %w", err)
	}
	return v.truthy(), nil
}
