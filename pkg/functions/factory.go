package functions

import (
	"github.com/mf2compile/messageformat/pkg/messagevalue"
)

// Formatter is the per-locale instance produced by a FormatterFactory:
//
//	Formatter.format(operand, options, context) -> FunctionValue
type Formatter interface {
	Format(ctx MessageFunctionContext, options map[string]interface{}, operand interface{}) messagevalue.MessageValue
}

// FormatterFactory builds a locale-specific Formatter. Its result is cached
// per compiled message by FormatterCache rather than rebuilt on every use.
type FormatterFactory interface {
	CreateFormatter(locale string) Formatter
}

// Selector is the per-locale instance produced by a SelectorFactory:
//
//	Selector.selectKeys(operand, options, candidateKeys) -> orderedPreferredKeys
type Selector interface {
	SelectKeys(ctx MessageFunctionContext, operand interface{}, options map[string]interface{}, candidateKeys []string) ([]string, error)
}

// SelectorFactory builds a locale-specific Selector. Selectors are never
// cached: a match expression may be evaluated with different operands
// across a single format call and selectors may hold per-call state, so a
// fresh one is built on every `match`.
type SelectorFactory interface {
	CreateSelector(locale string) Selector
}

// funcFormatterFactory adapts the plain-function style every built-in and
// custom MessageFunction already uses into a FormatterFactory/Formatter
// pair, so the registry split below needn't duplicate currency.go,
// datetime.go, number.go, string.go, etc. — it just wraps them.
type funcFormatterFactory struct{ fn MessageFunction }

func (f funcFormatterFactory) CreateFormatter(string) Formatter { return funcFormatter{f.fn} }

type funcFormatter struct{ fn MessageFunction }

func (f funcFormatter) Format(ctx MessageFunctionContext, options map[string]interface{}, operand interface{}) messagevalue.MessageValue {
	return f.fn(ctx, options, operand)
}

// AsFormatterFactory wraps an existing MessageFunction (e.g. NumberFunction,
// DatetimeFunction) as a FormatterFactory.
func AsFormatterFactory(fn MessageFunction) FormatterFactory {
	return funcFormatterFactory{fn: fn}
}

// funcSelectorFactory adapts a MessageFunction into a SelectorFactory by
// constructing the MessageValue the function would have produced as a
// formatter, then delegating to that value's own SelectKeys — exactly how
// internal/selector already drove selection before the registry split, and
// how messagevalue.NumberValue/StringValue implement plural-category and
// exact-match selection respectively.
type funcSelectorFactory struct {
	fn      MessageFunction
	prepare func(options map[string]interface{}) map[string]interface{}
}

func (f funcSelectorFactory) CreateSelector(string) Selector {
	return funcSelector{fn: f.fn, prepare: f.prepare}
}

type funcSelector struct {
	fn      MessageFunction
	prepare func(options map[string]interface{}) map[string]interface{}
}

func (s funcSelector) SelectKeys(ctx MessageFunctionContext, operand interface{}, options map[string]interface{}, candidateKeys []string) ([]string, error) {
	opts := options
	if s.prepare != nil {
		opts = s.prepare(options)
		// Keys the engine forced (e.g. selectordinal pinning select=ordinal)
		// count as literal: they were never caller-supplied variables.
		literal := make(map[string]bool, len(ctx.literalOptionKeys)+1)
		for k, v := range ctx.literalOptionKeys {
			literal[k] = v
		}
		for k, v := range opts {
			orig, ok := options[k]
			if !ok {
				literal[k] = true
				continue
			}
			if ov, okO := orig.(string); okO {
				if nv, okN := v.(string); okN && ov != nv {
					literal[k] = true
				}
			}
		}
		ctx.literalOptionKeys = literal
	}
	mv := s.fn(ctx, opts, operand)
	return mv.SelectKeys(candidateKeys)
}

// AsSelectorFactory wraps an existing MessageFunction as a SelectorFactory,
// optionally rewriting its options map first (used by `selectordinal`,
// which is `plural` forced into ordinal mode).
func AsSelectorFactory(fn MessageFunction, prepare func(map[string]interface{}) map[string]interface{}) SelectorFactory {
	return funcSelectorFactory{fn: fn, prepare: prepare}
}
