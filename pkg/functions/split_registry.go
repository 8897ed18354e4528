package functions

// Kind distinguishes the two disjoint uses a function name can be put to
// inside a single registry: a name may be registered as a formatter or as
// a selector, never both in the same registry.
type Kind int

const (
	KindFormatter Kind = iota
	KindSelector
)

// LookupResult is the outcome of resolving a function name at a use site.
type LookupResult int

const (
	// ResultOK means a usable factory of the requested Kind was found.
	ResultOK LookupResult = iota
	// ResultUnknownFunction means neither registry has fn under any kind.
	ResultUnknownFunction
	// ResultWrongKind means fn resolved, but only as the other Kind —
	// "selector-used-as-formatter" / "formatter-used-as-selector".
	ResultWrongKind
)

// SplitRegistry separates formatter factories from selector factories, so
// the engine can enforce its lookup-policy rules instead of inferring
// capability dynamically from a constructed value.
type SplitRegistry struct {
	Formatters map[string]FormatterFactory
	Selectors  map[string]SelectorFactory
}

// NewSplitRegistry creates an empty split registry.
func NewSplitRegistry() *SplitRegistry {
	return &SplitRegistry{
		Formatters: make(map[string]FormatterFactory),
		Selectors:  make(map[string]SelectorFactory),
	}
}

// RegisterFormatter adds fn under name as a formatter factory.
func (r *SplitRegistry) RegisterFormatter(name string, factory FormatterFactory) {
	r.Formatters[name] = factory
}

// RegisterSelector adds fn under name as a selector factory.
func (r *SplitRegistry) RegisterSelector(name string, factory SelectorFactory) {
	r.Selectors[name] = factory
}

// BuiltinSplitRegistry is the always-present registry:
// datetime/date/time/number/integer/string/offset (plus the draft
// percent/math/unit/currency formatters) as formatters,
// plural/selectordinal/select/gender as selectors.
var BuiltinSplitRegistry = newBuiltinSplitRegistry()

func newBuiltinSplitRegistry() *SplitRegistry {
	r := NewSplitRegistry()

	for name, fn := range DefaultFunctions {
		r.RegisterFormatter(name, AsFormatterFactory(fn))
	}
	for name, fn := range DraftFunctions {
		r.RegisterFormatter(name, AsFormatterFactory(fn))
	}

	// plural / selectordinal reuse NumberValue's exact-match-then-
	// plural-category selection (messagevalue/number.go SelectKeys);
	// selectordinal forces cardinal-vs-ordinal plural rule selection.
	r.RegisterSelector("plural", AsSelectorFactory(NumberFunction, withSelect("cardinal")))
	r.RegisterSelector("selectordinal", AsSelectorFactory(NumberFunction, withSelect("ordinal")))

	// select reuses StringValue's NFC exact-match selection.
	r.RegisterSelector("select", AsSelectorFactory(StringFunction, nil))

	// gender has no CLDR agreement logic of its own in this engine (no
	// example in the pack implements one): it is the same exact-match
	// selector as `select`, registered under its own name so `match
	// {$g :gender} when male {...}` resolves without a custom registry.
	r.RegisterSelector("gender", AsSelectorFactory(StringFunction, nil))

	return r
}

// withSelect returns an option-map rewriter that forces the "select" option
// (cardinal vs ordinal plural rule) to the given value, leaving everything
// else untouched.
func withSelect(mode string) func(map[string]interface{}) map[string]interface{} {
	return func(options map[string]interface{}) map[string]interface{} {
		out := make(map[string]interface{}, len(options)+1)
		for k, v := range options {
			out[k] = v
		}
		out["select"] = mode
		return out
	}
}

// Resolve looks up one function name at one use site, given the built-in
// registry and an optional custom registry. It returns the factory to use
// (as interface{}, narrowed by the caller via the returned Kind) and a
// LookupResult classifying the outcome.
func Resolve(builtin, custom *SplitRegistry, name string, site Kind) (factory interface{}, result LookupResult) {
	switch site {
	case KindFormatter:
		if f, ok := builtin.Formatters[name]; ok {
			return f, ResultOK
		}
		if _, ok := builtin.Selectors[name]; ok {
			return nil, ResultWrongKind // selector-used-as-formatter
		}
		if custom != nil {
			if f, ok := custom.Formatters[name]; ok {
				return f, ResultOK
			}
			if _, ok := custom.Selectors[name]; ok {
				return nil, ResultWrongKind
			}
		}
		return nil, ResultUnknownFunction

	case KindSelector:
		if s, ok := builtin.Selectors[name]; ok {
			return s, ResultOK
		}
		if _, ok := builtin.Formatters[name]; ok {
			return nil, ResultWrongKind // formatter-used-as-selector
		}
		if custom != nil {
			if s, ok := custom.Selectors[name]; ok {
				return s, ResultOK
			}
			if _, ok := custom.Formatters[name]; ok {
				return nil, ResultWrongKind
			}
		}
		return nil, ResultUnknownFunction
	}

	return nil, ResultUnknownFunction
}
