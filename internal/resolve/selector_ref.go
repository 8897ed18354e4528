package resolve

import (
	"github.com/mf2compile/messageformat/pkg/datamodel"
	"github.com/mf2compile/messageformat/pkg/errors"
	"github.com/mf2compile/messageformat/pkg/functions"
)

// SelectorValue is the narrow capability a `.match` selector needs: an
// ordered-preference-list lookup over a fixed set of candidate keys. It is
// satisfied both by a messagevalue.MessageValue (the common case, where
// :number/:integer/:string double as their own selector) and by the
// adapter below wrapping a functions.Selector for the builtin
// selector-only names (plural/selectordinal/select/gender).
type SelectorValue interface {
	SelectKeys(keys []string) ([]string, error)
}

// selectorAdapter adapts a functions.Selector, bound to one resolved
// operand and option map, to the SelectorValue interface.
type selectorAdapter struct {
	msgCtx  functions.MessageFunctionContext
	sel     functions.Selector
	operand interface{}
	options map[string]interface{}
}

func (a selectorAdapter) SelectKeys(keys []string) ([]string, error) {
	return a.sel.SelectKeys(a.msgCtx, a.operand, a.options, keys)
}

// noopSelector always reports no preferred keys; used after a selector
// resolution error has already been reported, so pattern selection falls
// through to the catch-all variant instead of panicking on a nil value.
type noopSelector struct{}

func (noopSelector) SelectKeys([]string) ([]string, error) { return nil, nil }

// ResolveSelectorValue resolves a `.match` selector to something that can
// rank candidate keys. A variable declared via `.input`/`.local` with an
// annotation naming one of the selector-only builtins (plural,
// selectordinal, select, gender) resolves through functions.Resolve at the
// KindSelector use site instead of through the general formatter-resolving
// expression path — those names are never registered as formatters, so
// resolving them as a value (as ResolveVariableRef does) would misreport a
// legitimate selector as a formatting error. Every other variable
// (undeclared, or declared with a dual-role function like :number/:string)
// falls back to ResolveVariableRef, whose resulting MessageValue already
// implements SelectKeys.
func ResolveSelectorValue(ctx *Context, ref *datamodel.VariableRef) SelectorValue {
	closure, ok := ctx.Env.Lookup(ref.Name())
	if !ok || closure.Expr == nil || closure.Expr.FunctionRef() == nil {
		return ResolveVariableRef(ctx, ref)
	}

	fref := closure.Expr.FunctionRef()
	factory, lookupResult := functions.Resolve(functions.BuiltinSplitRegistry, ctx.Registry, fref.Name(), functions.KindSelector)
	if lookupResult != functions.ResultOK {
		// Anything that is not a selector-only builtin — the dual-role
		// formatters (:number, :integer, :string), custom functions, or an
		// unknown name — resolves the ordinary way: the resulting
		// MessageValue's own SelectKeys drives selection, and a value that
		// cannot select surfaces as a bad-selector error at the match site.
		return ResolveVariableRef(ctx, ref)
	}

	declEnvCtx := ctx.CloneWithEnv(closure.Env)
	source := "$" + ref.Name()

	var operand interface{}
	if arg, ok := closure.Expr.Arg().(datamodel.Node); ok && arg != nil {
		resolved, err := resolveValue(declEnvCtx, arg)
		if err != nil {
			log.Warn("failed to resolve selector operand", "error", err)
			if ctx.OnError != nil {
				ctx.OnError(errors.NewMessageResolutionError(errors.ErrorTypeBadOperand, err.Error(), source))
			}
			return noopSelector{}
		}
		operand = resolved
	}

	msgCtx := newCallContext(declEnvCtx, source, optionNodes(fref.Options()))
	opt := resolveOptions(declEnvCtx, optionNodes(fref.Options()))

	selectorFactory := factory.(functions.SelectorFactory)
	locale := "en"
	if len(ctx.Locales) > 0 {
		locale = ctx.Locales[0]
	}

	return selectorAdapter{
		msgCtx:  msgCtx,
		sel:     selectorFactory.CreateSelector(locale),
		operand: operand,
		options: opt,
	}
}
