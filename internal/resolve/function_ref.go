package resolve

import (
	"fmt"

	"github.com/mf2compile/messageformat/pkg/bidi"
	"github.com/mf2compile/messageformat/pkg/datamodel"
	"github.com/mf2compile/messageformat/pkg/errors"
	"github.com/mf2compile/messageformat/pkg/functions"
	"github.com/mf2compile/messageformat/pkg/messagevalue"
)

// ResolveFunctionRef resolves a `{operand :fn options}` annotation at a
// formatter use site. Any failure — unknown name, selector at a formatter
// site, bad operand, nil result — reports through ctx.OnError and yields
// the expression's fallback value; it never aborts the format call.
func ResolveFunctionRef(
	ctx *Context,
	operand datamodel.Node,
	functionRef *datamodel.FunctionRef,
) messagevalue.MessageValue {
	source := getValueSource(operand)
	if source == "" {
		source = ":" + functionRef.Name()
	}

	result, err := callFunction(ctx, operand, functionRef, source)
	if err != nil {
		if ctx.OnError != nil {
			ctx.OnError(err)
		}
		return functions.FallbackFunction(source, getFirstLocale(ctx.Locales))
	}
	return result
}

func callFunction(
	ctx *Context,
	operand datamodel.Node,
	functionRef *datamodel.FunctionRef,
	source string,
) (messagevalue.MessageValue, error) {
	name := functionRef.Name()

	var input interface{}
	if operand != nil {
		resolved, err := resolveValue(ctx, operand)
		if err != nil {
			log.Warn("failed to resolve operand", "error", err)
			return nil, errors.NewBadOperandError(err.Error(), source)
		}
		input = resolved
	}

	formatter, err := lookupFormatter(ctx, name, source)
	if err != nil {
		return nil, err
	}

	rawOptions := optionNodes(functionRef.Options())
	msgCtx := newCallContext(ctx, source, rawOptions)
	opts := resolveOptions(ctx, rawOptions)

	res := formatter.Format(msgCtx, opts, input)
	if res == nil {
		log.Error("function returned nil result", "function", name, "source", source)
		return nil, errors.NewBadFunctionResultError(
			fmt.Sprintf("Function :%s did not return a MessageValue", name), source)
	}

	// A u:dir or u:id option wraps the value so its parts carry the
	// override.
	if msgCtx.Dir() != "" || msgCtx.ID() != "" {
		res = &annotatedValue{
			wrapped:     res,
			dir:         msgCtx.Dir(),
			id:          msgCtx.ID(),
			bidiIsolate: msgCtx.Dir() != "",
		}
	}
	return res, nil
}

// lookupFormatter finds the formatter for name: the split registries
// first (built-in before custom), then the context's plain function map
// so functions handed directly to the resolver still work. First use per
// compiled message instantiates and caches the formatter.
func lookupFormatter(ctx *Context, name, source string) (functions.Formatter, error) {
	factory, outcome := functions.Resolve(functions.BuiltinSplitRegistry, ctx.Registry, name, functions.KindFormatter)

	if outcome == functions.ResultUnknownFunction {
		if fn, ok := ctx.Functions[name]; ok {
			factory, outcome = functions.AsFormatterFactory(fn), functions.ResultOK
		}
	}

	switch outcome {
	case functions.ResultWrongKind:
		log.Warn("selector used as formatter", "function", name, "source", source)
		return nil, errors.NewMessageResolutionError(
			errors.ErrorTypeNotFormattable,
			fmt.Sprintf("Function :%s is a selector and cannot be used as a formatter", name),
			source)
	case functions.ResultUnknownFunction:
		log.Warn("unknown function", "function", name, "source", source)
		return nil, errors.NewUnknownFunctionError(name, source)
	}

	return ctx.Cache.GetOrCreate(name, factory.(functions.FormatterFactory)), nil
}

// optionNodes widens a datamodel option map so resolveOptions and the
// call context can inspect each value as a node.
func optionNodes(options datamodel.Options) map[string]interface{} {
	out := make(map[string]interface{}, len(options))
	for name, value := range options {
		out[name] = value
	}
	return out
}

// newCallContext builds the MessageFunctionContext for one invocation,
// folding in the universal options (u:dir, u:id) and recording which
// option names were literals in the source.
func newCallContext(ctx *Context, source string, options map[string]interface{}) functions.MessageFunctionContext {
	var dir, id string
	literalKeys := make(map[string]bool)

	for key, value := range options {
		if _, isLiteral := value.(*datamodel.Literal); isLiteral {
			literalKeys[key] = true
		}
	}

	if raw, ok := options["u:dir"]; ok {
		if s, ok := resolveOptionString(ctx, raw); ok {
			switch s {
			case "ltr", "rtl", "auto":
				dir = s
			case "inherit":
				// keep the context default
			default:
				if ctx.OnError != nil {
					ctx.OnError(errors.NewBadOptionError("Unsupported value for u:dir option", source))
				}
			}
		}
	}
	if raw, ok := options["u:id"]; ok {
		if s, ok := resolveOptionString(ctx, raw); ok {
			id = s
		}
	}

	return functions.NewMessageFunctionContext(
		ctx.Locales, source, ctx.LocaleMatcher, ctx.OnError, literalKeys, dir, id)
}

// resolveOptionString resolves one option value to its string form.
func resolveOptionString(ctx *Context, value interface{}) (string, bool) {
	if node, ok := value.(datamodel.Node); ok {
		resolved, err := resolveValue(ctx, node)
		if err != nil {
			log.Warn("failed to resolve option value", "error", err)
			if ctx.OnError != nil {
				ctx.OnError(errors.NewBadOptionError(err.Error(), getValueSource(node)))
			}
			return "", false
		}
		value = resolved
	}
	return fmt.Sprintf("%v", value), true
}

// resolveOptions resolves every non-universal option value: literals to
// their strings, variable references through the scope/environment, and
// MessageValues to their underlying operand.
func resolveOptions(ctx *Context, options map[string]interface{}) map[string]interface{} {
	out := make(map[string]interface{})

	for name, value := range options {
		if isUniversalOption(name) {
			continue
		}

		if node, ok := value.(datamodel.Node); ok {
			resolved, err := resolveValue(ctx, node)
			if err != nil {
				log.Warn("failed to resolve option", "option", name, "error", err)
				if ctx.OnError != nil {
					ctx.OnError(errors.NewBadOptionError(err.Error(), getValueSource(node)))
				}
				out[name] = nil
				continue
			}
			value = resolved
		}

		if mv, ok := value.(messagevalue.MessageValue); ok {
			if inner, err := mv.ValueOf(); err == nil && inner != nil {
				out[name] = inner
				continue
			}
		}
		out[name] = value
	}

	return out
}

// isUniversalOption reports whether name is in the u: namespace the
// engine itself interprets.
func isUniversalOption(name string) bool {
	return len(name) > 2 && name[:2] == "u:"
}

// annotatedValue decorates a MessageValue with the direction and id a
// u:dir/u:id option requested, propagating them onto every emitted part.
type annotatedValue struct {
	wrapped     messagevalue.MessageValue
	dir         string
	id          string
	bidiIsolate bool
}

func (av *annotatedValue) Type() string                    { return av.wrapped.Type() }
func (av *annotatedValue) Source() string                  { return av.wrapped.Source() }
func (av *annotatedValue) Locale() string                  { return av.wrapped.Locale() }
func (av *annotatedValue) Options() map[string]interface{} { return av.wrapped.Options() }

func (av *annotatedValue) Dir() bidi.Direction {
	if av.dir != "" {
		return bidi.ParseDirection(av.dir)
	}
	return av.wrapped.Dir()
}

func (av *annotatedValue) ToString() (string, error)      { return av.wrapped.ToString() }
func (av *annotatedValue) ValueOf() (interface{}, error)  { return av.wrapped.ValueOf() }

func (av *annotatedValue) SelectKeys(keys []string) ([]string, error) {
	return av.wrapped.SelectKeys(keys)
}

// HasBidiIsolate marks the value for isolation regardless of direction.
func (av *annotatedValue) HasBidiIsolate() bool { return av.bidiIsolate }

func (av *annotatedValue) ToParts() ([]messagevalue.MessagePart, error) {
	parts, err := av.wrapped.ToParts()
	if err != nil {
		return nil, err
	}
	if av.id == "" && av.dir == "" {
		return parts, nil
	}

	// Parts inherit the override; an ltr override with an id drops the
	// locale, matching how renderers key isolated spans.
	locale := av.wrapped.Locale()
	if av.dir == "ltr" && av.id != "" {
		locale = ""
	}

	out := make([]messagevalue.MessagePart, len(parts))
	for i, part := range parts {
		out[i] = &annotatedPart{wrapped: part, id: av.id, dir: av.dir, locale: locale}
	}
	return out, nil
}

// annotatedPart is one part re-labelled by an annotatedValue.
type annotatedPart struct {
	wrapped messagevalue.MessagePart
	id      string
	dir     string
	locale  string
}

func (p *annotatedPart) Type() string       { return p.wrapped.Type() }
func (p *annotatedPart) Value() interface{} { return p.wrapped.Value() }
func (p *annotatedPart) Source() string     { return p.wrapped.Source() }
func (p *annotatedPart) Locale() string     { return p.wrapped.Locale() }

func (p *annotatedPart) Dir() bidi.Direction {
	if p.dir != "" {
		return bidi.ParseDirection(p.dir)
	}
	return p.wrapped.Dir()
}

func (p *annotatedPart) GetID() string     { return p.id }
func (p *annotatedPart) GetDir() string    { return p.dir }
func (p *annotatedPart) GetLocale() string { return p.locale }
