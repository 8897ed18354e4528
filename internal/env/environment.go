// Package env implements the Environment/Closure pair: a lexically-scoped
// chain of lazy bindings for `.local`/`.input` declared variables.
//
// An environment is a linked chain of non-empty frames terminating at an
// empty frame, searched by linear scan from the innermost frame outward.
// Each frame pairs a declared name with a Closure — an unevaluated
// expression plus the environment captured at the point of declaration —
// so that declaration shadowing and the "bind against the environment
// built so far" rule for later declarations fall out of the chain shape
// instead of needing special-case bookkeeping.
package env

import "github.com/mf2compile/messageformat/pkg/datamodel"

// Closure is an unevaluated expression paired with the Environment that
// gives values to its free variables — the right-hand side of a
// declaration plus the scope it closed over at declaration time.
type Closure struct {
	Expr *datamodel.Expression
	Env  *Environment
}

// NewClosure creates a Closure capturing env as the expression's free
// variable scope.
func NewClosure(expr *datamodel.Expression, env *Environment) Closure {
	return Closure{Expr: expr, Env: env}
}

// Environment is an immutable, singly-linked chain of frames, each binding
// one declared variable name to a Closure. A nil *Environment is the empty
// environment (chain terminator); Lookup on it always reports not-found.
type Environment struct {
	name   string
	rhs    Closure
	parent *Environment
}

// Empty returns the empty environment. Exists for readability at call
// sites that build a fresh chain (`env.Empty()` rather than `(*Environment)(nil)`).
func Empty() *Environment { return nil }

// Extend returns a new environment with one additional frame binding name
// to rhs, with parent as the rest of the chain. The previous chain (parent)
// is left untouched — existing Closures that captured it keep seeing the
// frames they closed over, even after a later declaration shadows name.
func (e *Environment) Extend(name string, rhs Closure) *Environment {
	return &Environment{name: name, rhs: rhs, parent: e}
}

// Has reports whether name is bound anywhere in the chain.
func (e *Environment) Has(name string) bool {
	for f := e; f != nil; f = f.parent {
		if f.name == name {
			return true
		}
	}
	return false
}

// Lookup returns the Closure bound to name by walking the chain from the
// innermost frame outward — the first (most recently extended) match wins,
// which is how `.local $x = ...` shadowing of an earlier `$x` is resolved.
func (e *Environment) Lookup(name string) (Closure, bool) {
	for f := e; f != nil; f = f.parent {
		if f.name == name {
			return f.rhs, true
		}
	}
	return Closure{}, false
}
