// Package messageformat compiles MessageFormat 2.0 messages and formats
// them with runtime arguments: source text (or a prebuilt data model) in,
// a formatted string — or structured parts — plus an error report out.
package messageformat

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/mf2compile/messageformat/internal/cst"
	"github.com/mf2compile/messageformat/internal/env"
	"github.com/mf2compile/messageformat/internal/resolve"
	"github.com/mf2compile/messageformat/internal/selector"
	"github.com/mf2compile/messageformat/pkg/bidi"
	"github.com/mf2compile/messageformat/pkg/datamodel"
	"github.com/mf2compile/messageformat/pkg/errors"
	"github.com/mf2compile/messageformat/pkg/functions"
	"github.com/mf2compile/messageformat/pkg/logger"
	"github.com/mf2compile/messageformat/pkg/messagevalue"
)

// BidiIsolation selects whether placeholders are wrapped in Unicode
// isolate characters.
type BidiIsolation string

const (
	// BidiDefault isolates every placeholder except when both the message
	// and the placeholder are LTR.
	BidiDefault BidiIsolation = "default"
	// BidiNone applies no isolation at all.
	BidiNone BidiIsolation = "none"
)

// Direction is the message base direction; the bidi package's type is
// authoritative.
type Direction = bidi.Direction

const (
	DirLTR  = bidi.DirLTR
	DirRTL  = bidi.DirRTL
	DirAuto = bidi.DirAuto
)

// LocaleMatcher names the locale negotiation strategy.
type LocaleMatcher string

const (
	LocaleBestFit LocaleMatcher = "best fit"
	LocaleLookup  LocaleMatcher = "lookup"
)

// MessageFormatOptions configures a MessageFormat at construction.
type MessageFormatOptions struct {
	// BidiIsolation: "default" wraps placeholders in isolate characters
	// unless everything involved is LTR; "none" never wraps.
	BidiIsolation BidiIsolation `json:"bidiIsolation,omitempty"`

	// Dir pins the message's base direction. Unset resolves from the
	// primary locale; "auto" detects from the message source text.
	Dir Direction `json:"dir,omitempty"`

	// LocaleMatcher selects the negotiation strategy for locale lists.
	LocaleMatcher LocaleMatcher `json:"localeMatcher,omitempty"`

	// Functions extends the built-in function set; same-named entries
	// shadow nothing (built-ins win at resolution).
	Functions map[string]functions.MessageFunction `json:"functions,omitempty"`

	// Logger overrides the package-global logger for this instance.
	Logger *slog.Logger `json:"-"`
}

// NewMessageFormatOptions fills the option defaults.
func NewMessageFormatOptions(opts *MessageFormatOptions) *MessageFormatOptions {
	if opts == nil {
		opts = &MessageFormatOptions{}
	}
	if opts.BidiIsolation == "" {
		opts.BidiIsolation = BidiDefault
	}
	// Dir deliberately keeps its zero value: an unset direction resolves
	// from the locale, while an explicit "auto" asks for detection from
	// the message source text. See New.
	if opts.LocaleMatcher == "" {
		opts.LocaleMatcher = LocaleBestFit
	}
	return opts
}

// MessageFormat is a compiled message: the validated data model plus the
// registries and formatter cache shared by every format call. A single
// instance must not format concurrently — the cache mutates lazily.
type MessageFormat struct {
	message       datamodel.Message
	locales       []string
	functions     map[string]functions.MessageFunction
	bidiIsolation bool
	dir           string // "ltr" | "rtl" | "auto"
	localeMatcher string
	logger        *slog.Logger

	// customRegistry holds caller-supplied functions as formatter
	// factories, consulted after functions.BuiltinSplitRegistry.
	customRegistry *functions.SplitRegistry

	// cache memoizes instantiated formatters across every format call on
	// this compiled message.
	cache *functions.FormatterCache
}

// New compiles a message. locales is a string, []string, or nil; source
// is MF2 source text or a datamodel.Message; options is either one
// *MessageFormatOptions or any number of functional Options.
func New(
	locales interface{},
	source interface{},
	options ...interface{},
) (*MessageFormat, error) {
	localeList, err := resolveLocales(locales)
	if err != nil {
		return nil, err
	}

	message, rawSource, err := resolveSource(source)
	if err != nil {
		return nil, err
	}

	if _, staticErrors := datamodel.ValidateMessageAll(message, nil); len(staticErrors) > 0 {
		return nil, staticErrors[0]
	}

	opts, err := resolveConstructorOptions(options)
	if err != nil {
		return nil, err
	}
	opts = NewMessageFormatOptions(opts)

	functionMap := make(map[string]functions.MessageFunction)
	for name, fn := range functions.DefaultFunctions {
		functionMap[name] = fn
	}
	for name, fn := range functions.DraftFunctions {
		functionMap[name] = fn
	}
	customRegistry := functions.NewSplitRegistry()
	for name, fn := range opts.Functions {
		functionMap[name] = fn
		customRegistry.RegisterFormatter(name, functions.AsFormatterFactory(fn))
	}

	instanceLogger := opts.Logger
	if instanceLogger == nil {
		instanceLogger = logger.GetLogger()
	}

	return &MessageFormat{
		message:        message,
		locales:        localeList,
		functions:      functionMap,
		bidiIsolation:  opts.BidiIsolation != BidiNone,
		dir:            resolveBaseDirection(opts.Dir, rawSource, localeList),
		localeMatcher:  string(opts.LocaleMatcher),
		logger:         instanceLogger,
		customRegistry: customRegistry,
		cache:          functions.NewFormatterCache(getFirstLocale(localeList)),
	}, nil
}

// MustNew is New panicking on error, for statically known-good messages.
func MustNew(locales interface{}, source interface{}, options ...interface{}) *MessageFormat {
	mf, err := New(locales, source, options...)
	if err != nil {
		panic(err)
	}
	return mf
}

func resolveLocales(locales interface{}) ([]string, error) {
	switch l := locales.(type) {
	case string:
		if l == "" {
			return []string{}, nil
		}
		return []string{l}, nil
	case []string:
		if l == nil {
			return []string{}, nil
		}
		return l, nil
	case nil:
		return []string{}, nil
	}
	return nil, errors.NewCustomSyntaxError("locales must be string, []string, or nil")
}

func resolveSource(source interface{}) (datamodel.Message, string, error) {
	switch s := source.(type) {
	case string:
		parsed := cst.Parse(s, false)
		if errs := parsed.Errors(); len(errs) > 0 {
			first := errs[0]
			end := first.End
			return nil, "", errors.NewMessageSyntaxError(errors.ErrorTypeParseError, first.Start, &end, nil)
		}
		message, err := datamodel.FromCST(parsed)
		if err != nil {
			return nil, "", err
		}
		return message, s, nil
	case datamodel.Message:
		return s, "", nil
	case nil:
		return nil, "", errors.NewCustomSyntaxError("source cannot be nil")
	}
	return nil, "", errors.NewCustomSyntaxError("source must be string or datamodel.Message")
}

// resolveConstructorOptions accepts either one options struct (possibly
// nil) or any number of functional options.
func resolveConstructorOptions(options []interface{}) (*MessageFormatOptions, error) {
	if len(options) == 1 {
		switch o := options[0].(type) {
		case nil:
			return &MessageFormatOptions{}, nil
		case *MessageFormatOptions:
			if o == nil {
				return &MessageFormatOptions{}, nil
			}
			return o, nil
		}
	}

	funcOpts := make([]Option, 0, len(options))
	for _, opt := range options {
		fn, ok := opt.(Option)
		if !ok {
			end := 1
			return nil, errors.NewMessageSyntaxError(errors.ErrorTypeParseError, 0, &end, nil)
		}
		funcOpts = append(funcOpts, fn)
	}
	return applyOptions(funcOpts...), nil
}

// resolveBaseDirection turns the Dir option into a concrete direction: an
// explicit ltr/rtl wins; "auto" detects from the source text; unset falls
// back to the primary locale's direction.
func resolveBaseDirection(dir Direction, rawSource string, locales []string) string {
	switch dir {
	case DirLTR, DirRTL:
		return string(dir)
	case DirAuto:
		if rawSource != "" {
			if detected := bidi.GetDirection(rawSource); detected != DirAuto {
				return string(detected)
			}
		}
	}
	if len(locales) > 0 {
		return string(bidi.GetLocaleDirection(locales[0]))
	}
	return "auto"
}

// Format renders the message with the given arguments. The optional
// trailing argument is either a func(error) callback or FormatOptions;
// errors never abort formatting — they reach the callback and the failing
// placeholder renders as its fallback.
func (mf *MessageFormat) Format(
	values map[string]interface{},
	options ...interface{},
) (string, error) {
	parts, err := mf.FormatToParts(values, options...)
	if err != nil {
		mf.logger.Error("failed to format message", "error", err)
		return "", err
	}
	return renderParts(parts), nil
}

// FormatToParts renders the message as typed parts, for consumers that
// need placeholder boundaries, markup, or isolation structure.
func (mf *MessageFormat) FormatToParts(
	values map[string]interface{},
	options ...interface{},
) ([]messagevalue.MessagePart, error) {
	onError, err := mf.resolveErrorHandler(options)
	if err != nil {
		return nil, err
	}

	ctx := mf.createContext(values, onError)
	pattern := selector.SelectPattern(ctx, mf.message)
	return mf.formatPattern(ctx, pattern), nil
}

// FormatWithReport formats like Format but returns every error raised
// during the call, in first-seen order, instead of only routing them to a
// callback. Static errors are always empty: New rejects invalid messages.
func (mf *MessageFormat) FormatWithReport(values map[string]interface{}) (string, errors.ErrorReport) {
	acc := errors.NewAccumulator()
	ctx := mf.createContext(values, acc.AddDynamic)

	pattern := selector.SelectPattern(ctx, mf.message)
	parts := mf.formatPattern(ctx, pattern)

	return renderParts(parts), acc.Report()
}

// renderParts concatenates parts into the output string; markup parts
// contribute structure only, never text.
func renderParts(parts []messagevalue.MessagePart) string {
	var out strings.Builder
	for _, part := range parts {
		if _, isMarkup := part.(*messagevalue.MarkupPart); isMarkup {
			continue
		}
		if s, ok := part.Value().(string); ok {
			out.WriteString(s)
		} else {
			out.WriteString(fmt.Sprintf("%v", part.Value()))
		}
	}
	return out.String()
}

// resolveErrorHandler accepts a bare func(error), FormatOptions, or
// nothing; the default logs each error as a warning.
func (mf *MessageFormat) resolveErrorHandler(options []interface{}) (func(error), error) {
	warn := func(err error) {
		mf.logger.Warn("MessageFormat error", "error", err)
	}

	if len(options) == 1 {
		switch o := options[0].(type) {
		case nil:
			return warn, nil
		case func(error):
			return o, nil
		}
	}

	funcOpts := make([]FormatOption, 0, len(options))
	for _, opt := range options {
		fn, ok := opt.(FormatOption)
		if !ok {
			end := 1
			return nil, errors.NewMessageSyntaxError(errors.ErrorTypeParseError, 0, &end, nil)
		}
		funcOpts = append(funcOpts, fn)
	}
	if resolved := applyFormatOptions(funcOpts...); resolved.OnError != nil {
		return resolved.OnError, nil
	}
	return warn, nil
}

// createContext assembles the per-call resolution context: the flat scope
// holds only the caller's arguments; declared names live in the
// Environment chain.
func (mf *MessageFormat) createContext(values map[string]interface{}, onError func(error)) *resolve.Context {
	scope := make(map[string]interface{}, len(values))
	for k, v := range values {
		scope[k] = v
	}

	ctx := resolve.NewContext(mf.locales, mf.functions, scope, onError)
	ctx.Env = mf.buildDeclarationEnv()
	ctx.Registry = mf.customRegistry
	ctx.Cache = mf.cache
	return ctx
}

// buildDeclarationEnv folds the declarations into an Environment in
// source order. Each frame's closure captures the chain built from the
// earlier declarations only, so a binding can never observe itself or
// anything declared after it.
func (mf *MessageFormat) buildDeclarationEnv() *env.Environment {
	current := env.Empty()

	for _, decl := range mf.message.Declarations() {
		switch d := decl.(type) {
		case *datamodel.InputDeclaration:
			if vre, ok := d.Value().(*datamodel.VariableRefExpression); ok {
				expr := datamodel.NewExpression(vre.Arg(), vre.FunctionRef(), vre.Attributes())
				current = current.Extend(d.Name(), env.NewClosure(expr, current))
			}
		case *datamodel.LocalDeclaration:
			if expr, ok := d.Value().(*datamodel.Expression); ok {
				current = current.Extend(d.Name(), env.NewClosure(expr, current))
			}
		}
	}

	return current
}

// formatPattern renders each pattern element: text verbatim, expressions
// through resolution (wrapped in isolates when the bidi policy asks for
// it), markup as structural parts.
func (mf *MessageFormat) formatPattern(ctx *resolve.Context, pattern datamodel.Pattern) []messagevalue.MessagePart {
	var parts []messagevalue.MessagePart

	for _, element := range pattern.Elements() {
		switch elem := element.(type) {
		case *datamodel.TextElement:
			parts = append(parts, messagevalue.NewTextPart(elem.Value(), elem.Value(), ""))

		case *datamodel.Expression:
			mv := resolve.ResolveExpression(ctx, elem)
			if mv == nil {
				parts = append(parts, messagevalue.NewFallbackPart("", getFirstLocale(ctx.Locales)))
				continue
			}

			isolate := mf.needsIsolation(mv)
			if isolate {
				parts = append(parts, messagevalue.NewBidiIsolationPart(isolateOpen(mv.Dir())))
			}

			valueParts, err := mv.ToParts()
			if err != nil {
				ctx.OnError(err)
				parts = append(parts, messagevalue.NewFallbackPart(mv.Source(), getFirstLocale(ctx.Locales)))
			} else {
				parts = append(parts, valueParts...)
			}

			if isolate {
				parts = append(parts, messagevalue.NewBidiIsolationPart(string(bidi.PDI)))
			}

		case *datamodel.Markup:
			parts = append(parts, resolve.FormatMarkup(ctx, elem))
		}
	}

	return parts
}

// needsIsolation applies the bidi policy: isolate whenever the message or
// the value is not plainly LTR, or the value itself demands isolation.
func (mf *MessageFormat) needsIsolation(value messagevalue.MessageValue) bool {
	if !mf.bidiIsolation {
		return false
	}
	if mf.dir != "ltr" || value.Dir() != bidi.DirLTR {
		return true
	}
	flagged, ok := value.(interface{ HasBidiIsolate() bool })
	return ok && flagged.HasBidiIsolate()
}

// isolateOpen picks the opening isolate for the value's direction; FSI
// for auto and anything unknown.
func isolateOpen(dir bidi.Direction) string {
	switch dir {
	case bidi.DirLTR:
		return string(bidi.LRI)
	case bidi.DirRTL:
		return string(bidi.RLI)
	}
	return string(bidi.FSI)
}

// Source returns the canonical MF2 source of the compiled message:
// whitespace normalized, options in stable order. For a message built
// from a data model, this is the only source form.
func (mf *MessageFormat) Source() string {
	return datamodel.StringifyMessage(mf.message)
}

// Dir returns the resolved base direction.
func (mf *MessageFormat) Dir() string { return mf.dir }

// BidiIsolation reports whether placeholder isolation is on.
func (mf *MessageFormat) BidiIsolation() bool { return mf.bidiIsolation }

func getFirstLocale(locales []string) string {
	if len(locales) > 0 {
		return locales[0]
	}
	return "en"
}

// ResolvedMessageFormatOptions is the introspection view of a compiled
// message's effective options.
type ResolvedMessageFormatOptions struct {
	BidiIsolation BidiIsolation                        `json:"bidiIsolation"`
	Dir           Direction                            `json:"dir"`
	Functions     map[string]functions.MessageFunction `json:"functions"`
	LocaleMatcher LocaleMatcher                        `json:"localeMatcher"`
}

// ResolvedOptions reports the options this instance actually runs with,
// with a copied function map so callers cannot mutate the original.
func (mf *MessageFormat) ResolvedOptions() ResolvedMessageFormatOptions {
	isolation := BidiNone
	if mf.bidiIsolation {
		isolation = BidiDefault
	}

	matcher := LocaleBestFit
	if mf.localeMatcher == string(LocaleLookup) {
		matcher = LocaleLookup
	}

	fns := make(map[string]functions.MessageFunction, len(mf.functions))
	for name, fn := range mf.functions {
		fns[name] = fn
	}

	return ResolvedMessageFormatOptions{
		BidiIsolation: isolation,
		Dir:           bidi.ParseDirection(mf.dir),
		Functions:     fns,
		LocaleMatcher: matcher,
	}
}
