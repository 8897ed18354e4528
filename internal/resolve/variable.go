package resolve

import (
	"fmt"
	"reflect"
	"strings"

	"github.com/mf2compile/messageformat/pkg/datamodel"
	"github.com/mf2compile/messageformat/pkg/errors"
	"github.com/mf2compile/messageformat/pkg/functions"
	"github.com/mf2compile/messageformat/pkg/messagevalue"
)

// UnresolvedExpression defers a declaration's expression together with the
// scope it should resolve against. Contexts assembled without the
// Environment chain may place these directly into Scope; lookup resolves
// them on first use.
type UnresolvedExpression struct {
	Expression *datamodel.Expression
	Scope      map[string]any
}

func NewUnresolvedExpression(expression *datamodel.Expression, scope map[string]any) *UnresolvedExpression {
	return &UnresolvedExpression{Expression: expression, Scope: scope}
}

// ResolveVariableRef resolves `$name` to a MessageValue: a declared name
// through its closure, an argument lifted through the default number or
// string function, anything else as its %v string form, and a miss as the
// `{$name}` fallback.
func ResolveVariableRef(ctx *Context, ref *datamodel.VariableRef) messagevalue.MessageValue {
	source := "$" + ref.Name()
	value := lookupVariableRef(ctx, ref)

	if mv, ok := value.(messagevalue.MessageValue); ok {
		if mv.Type() == "fallback" {
			return messagevalue.NewFallbackValue(source, getFirstLocale(ctx.Locales))
		}
		return mv
	}

	switch classifyArgument(value) {
	case argNumber:
		if fn, ok := ctx.Functions["number"]; ok {
			return fn(bareCallContext(ctx, source), map[string]any{}, value)
		}
	case argString:
		if fn, ok := ctx.Functions["string"]; ok {
			return fn(bareCallContext(ctx, source), map[string]any{}, value)
		}
	case argMissing:
		return messagevalue.NewFallbackValue(source, getFirstLocale(ctx.Locales))
	}

	return messagevalue.NewStringValue(fmt.Sprintf("%v", value), getFirstLocale(ctx.Locales), source)
}

// bareCallContext is the context for implicit number/string lifting: no
// options, no overrides.
func bareCallContext(ctx *Context, source string) functions.MessageFunctionContext {
	return functions.NewMessageFunctionContext(ctx.Locales, source, ctx.LocaleMatcher, ctx.OnError, nil, "", "")
}

type argumentKind int

const (
	argMissing argumentKind = iota
	argNumber
	argString
	argOther
)

// classifyArgument decides which default function lifts a bare argument.
func classifyArgument(value any) argumentKind {
	switch value.(type) {
	case nil:
		return argMissing
	case int, int8, int16, int32, int64, uint, uint8, uint16, uint32, uint64, float32, float64:
		return argNumber
	case *int, *int8, *int16, *int32, *int64, *uint, *uint8, *uint16, *uint32, *uint64, *float32, *float64:
		return argNumber
	case string, *string:
		return argString
	}
	return argOther
}

// lookupVariableRef finds `$name`: the declaration environment first, the
// flat argument scope second. A scope hit holding an
// UnresolvedExpression resolves it (once) with cycle detection.
func lookupVariableRef(ctx *Context, ref *datamodel.VariableRef) any {
	name := ref.Name()

	if value, ok := lookupEnvClosure(ctx, name); ok {
		return value
	}

	value := scopeValue(ctx.Scope, name)
	if value == nil {
		source := "$" + name
		if ctx.OnError != nil {
			ctx.OnError(errors.NewMessageResolutionError(
				errors.ErrorTypeUnresolvedVariable,
				"variable not available: "+source,
				source))
		}
		return nil
	}

	unresolved, ok := value.(*UnresolvedExpression)
	if !ok {
		return value
	}
	return resolveScopeExpression(ctx, name, unresolved)
}

// lookupEnvClosure resolves name against the declaration environment. A
// hit is a .local/.input declaration: its closure's expression is
// evaluated against the environment it captured. Cycles degrade to the
// fallback value with an unresolved-variable error.
func lookupEnvClosure(ctx *Context, name string) (any, bool) {
	closure, ok := ctx.Env.Lookup(name)
	if !ok {
		return nil, false
	}

	if ctx.ResolvingVars == nil {
		ctx.ResolvingVars = make(map[string]bool)
	}
	if ctx.ResolvingVars[name] {
		return cycleFallback(ctx, name), true
	}
	ctx.ResolvingVars[name] = true
	defer delete(ctx.ResolvingVars, name)

	return ResolveExpression(ctx.CloneWithEnv(closure.Env), closure.Expr), true
}

func cycleFallback(ctx *Context, name string) messagevalue.MessageValue {
	source := "$" + name
	if ctx.OnError != nil {
		ctx.OnError(errors.NewMessageResolutionError(
			errors.ErrorTypeUnresolvedVariable,
			"circular reference detected for variable: "+source,
			source))
	}
	return messagevalue.NewFallbackValue(source, getFirstLocale(ctx.Locales))
}

// resolveScopeExpression evaluates a scope-held unresolved expression,
// memoizing the result back into the scope and marking it local.
func resolveScopeExpression(ctx *Context, name string, unresolved *UnresolvedExpression) any {
	if ctx.ResolvingVars == nil {
		ctx.ResolvingVars = make(map[string]bool)
	}
	if ctx.ResolvingVars[name] {
		return cycleFallback(ctx, name)
	}
	ctx.ResolvingVars[name] = true
	defer delete(ctx.ResolvingVars, name)

	evalCtx := ctx
	if unresolved.Scope != nil {
		evalCtx = ctx.CloneWithScope(unresolved.Scope)
	}
	local := ResolveExpression(evalCtx, unresolved.Expression)

	ctx.Scope[name] = local
	ctx.LocalVars[local] = true
	return local
}

// scopeValue reads name out of a scope, supporting dotted paths into
// nested maps: `user.name` finds scope["user"]["name"], preferring the
// longest bound head.
func scopeValue(scope any, name string) any {
	if !indexable(scope) {
		return nil
	}

	if m, ok := scope.(map[string]any); ok {
		if value, ok := m[name]; ok {
			return value
		}
		if strings.Contains(name, ".") {
			parts := strings.Split(name, ".")
			for i := len(parts) - 1; i > 0; i-- {
				head := strings.Join(parts[:i], ".")
				if inner, ok := m[head]; ok {
					return scopeValue(inner, strings.Join(parts[i:], "."))
				}
			}
		}
		return nil
	}

	if m, ok := scope.(map[any]any); ok {
		return m[name]
	}
	return nil
}

func indexable(scope any) bool {
	if scope == nil {
		return false
	}
	switch reflect.ValueOf(scope).Kind() {
	case reflect.Map, reflect.Struct, reflect.Pointer, reflect.Func:
		return true
	}
	return false
}
