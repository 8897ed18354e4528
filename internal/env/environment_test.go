package env

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mf2compile/messageformat/pkg/datamodel"
)

func exprFor(name string) *datamodel.Expression {
	return datamodel.NewExpression(datamodel.NewVariableRef(name), nil, nil)
}

func TestEmptyEnvironment(t *testing.T) {
	e := Empty()
	assert.False(t, e.Has("x"))

	_, ok := e.Lookup("x")
	assert.False(t, ok)
}

func TestExtendAndLookup(t *testing.T) {
	inner := exprFor("arg")
	e := Empty().Extend("x", NewClosure(inner, Empty()))

	require.True(t, e.Has("x"))
	closure, ok := e.Lookup("x")
	require.True(t, ok)
	assert.Same(t, inner, closure.Expr)
}

func TestInnermostBindingWins(t *testing.T) {
	first := exprFor("first")
	second := exprFor("second")

	e := Empty().Extend("x", NewClosure(first, Empty()))
	shadowed := e.Extend("x", NewClosure(second, e))

	closure, ok := shadowed.Lookup("x")
	require.True(t, ok)
	assert.Same(t, second, closure.Expr)

	// The original chain is untouched by the shadowing extension.
	closure, ok = e.Lookup("x")
	require.True(t, ok)
	assert.Same(t, first, closure.Expr)
}

func TestClosureCapturesEnvSoFar(t *testing.T) {
	// .local $a = ... / .local $b = {$a}: b's closure must capture the chain
	// containing a, and a's closure must not see b.
	aExpr := exprFor("arg")
	afterA := Empty().Extend("a", NewClosure(aExpr, Empty()))

	bExpr := exprFor("a")
	afterB := afterA.Extend("b", NewClosure(bExpr, afterA))

	bClosure, ok := afterB.Lookup("b")
	require.True(t, ok)
	assert.True(t, bClosure.Env.Has("a"))

	aClosure, ok := afterB.Lookup("a")
	require.True(t, ok)
	assert.False(t, aClosure.Env.Has("b"))
	assert.False(t, aClosure.Env.Has("a"))
}

func TestLookupWalksOutward(t *testing.T) {
	e := Empty().
		Extend("a", NewClosure(exprFor("a"), Empty())).
		Extend("b", NewClosure(exprFor("b"), Empty())).
		Extend("c", NewClosure(exprFor("c"), Empty()))

	for _, name := range []string{"a", "b", "c"} {
		assert.True(t, e.Has(name))
	}
	assert.False(t, e.Has("d"))
}
