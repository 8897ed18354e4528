// Package resolve provides expression resolution for MessageFormat 2.0
package resolve

import (
	"maps"

	"github.com/mf2compile/messageformat/internal/env"
	"github.com/mf2compile/messageformat/pkg/functions"
	"github.com/mf2compile/messageformat/pkg/logger"
	"github.com/mf2compile/messageformat/pkg/messagevalue"
)

// log tags every warning raised while resolving operands, functions, and
// selectors with component=resolve so it can be told apart from parser and
// selection output in the same process.
var log = logger.Component("resolve")

// Context represents the resolution context for message formatting
type Context struct {
	// Available functions
	Functions map[string]functions.MessageFunction

	// Error handler for resolution errors
	OnError func(error)

	// Locale matcher strategy
	LocaleMatcher string

	// Available locales
	Locales []string

	// Set of local variables (for cycle detection)
	LocalVars map[messagevalue.MessageValue]bool

	// Variable scope holding external arguments (and any legacy
	// UnresolvedExpression entries placed directly into scope).
	Scope map[string]interface{}

	// Env is the lexical chain of .local/.input declarations — see
	// internal/env. Declared names are looked up here first; Scope is
	// consulted for everything Env does not bind (external arguments).
	Env *env.Environment

	// Track variables currently being resolved (for circular reference detection)
	ResolvingVars map[string]bool

	// Registry holds any custom formatter/selector factories supplied for
	// this compiled message, consulted after functions.BuiltinSplitRegistry
	// per the lookup-policy table — see pkg/functions/split_registry.go.
	Registry *functions.SplitRegistry

	// Cache memoizes instantiated Formatters across every function-ref
	// resolved within this compiled message's lifetime.
	// Selectors are never cached; see pkg/functions/cache.go.
	Cache *functions.FormatterCache
}

// NewContext creates a new resolution context
func NewContext(
	locales []string,
	funcs map[string]functions.MessageFunction,
	scope map[string]interface{},
	onError func(error),
) *Context {
	if funcs == nil {
		funcs = make(map[string]functions.MessageFunction)
	}
	if scope == nil {
		scope = make(map[string]interface{})
	}

	locale := "en"
	if len(locales) > 0 {
		locale = locales[0]
	}

	return &Context{
		Functions:     funcs,
		OnError:       onError,
		LocaleMatcher: "best fit",
		Locales:       locales,
		LocalVars:     make(map[messagevalue.MessageValue]bool),
		Scope:         scope,
		Env:           env.Empty(),
		ResolvingVars: make(map[string]bool),
		Registry:      functions.NewSplitRegistry(),
		Cache:         functions.NewFormatterCache(locale),
	}
}

// Clone creates a copy of the context
func (ctx *Context) Clone() *Context {
	return &Context{
		Functions:     ctx.Functions, // Immutable, safe to share
		OnError:       ctx.OnError,
		LocaleMatcher: ctx.LocaleMatcher,
		Locales:       ctx.Locales, // Immutable, safe to share
		LocalVars:     maps.Clone(ctx.LocalVars),
		Scope:         maps.Clone(ctx.Scope),
		Env:           ctx.Env, // chain is immutable, safe to share
		ResolvingVars: ctx.ResolvingVars, // Share the resolving vars tracking
		Registry:      ctx.Registry,      // Owned by the compiled message, safe to share
		Cache:         ctx.Cache,         // Owned by the compiled message, safe to share
	}
}

// CloneWithScope creates a copy of the context with a new scope
func (ctx *Context) CloneWithScope(newScope map[string]interface{}) *Context {
	cloned := ctx.Clone()

	// Merge new scope with existing scope
	for k, v := range newScope {
		cloned.Scope[k] = v
	}

	return cloned
}

// CloneWithEnv creates a copy of the context with newEnv as the active
// declaration environment — used when resolving a Closure, which must be
// evaluated against the environment it captured, not the caller's.
func (ctx *Context) CloneWithEnv(newEnv *env.Environment) *Context {
	cloned := ctx.Clone()
	cloned.Env = newEnv
	return cloned
}

// getFirstLocale returns the primary locale, defaulting to "en".
func getFirstLocale(locales []string) string {
	if len(locales) > 0 {
		return locales[0]
	}
	return "en"
}
