// Package functions implements the MessageFormat 2.0 function layer: the
// built-in formatter and selector set, the formatter/selector registry
// split with its per-message cache, and the context handed to every
// function invocation.
package functions

import (
	"github.com/mf2compile/messageformat/pkg/messagevalue"
)

// MessageFunction is the uniform shape of every message function, built-in
// or custom: invoked with the call context, the resolved option map, and
// the resolved operand (nil when the expression has none).
type MessageFunction func(
	ctx MessageFunctionContext,
	options map[string]interface{},
	operand interface{},
) messagevalue.MessageValue

// MessageFunctionContext carries everything one function invocation may
// consult: the locale chain, the expression's fallback source, which
// option keys were literals in the source (some options, like :number's
// select, must be), and the error callback.
type MessageFunctionContext struct {
	dir               string // direction override from a u:dir option
	id                string // expression id from a u:id option
	source            string
	locales           []string
	localeMatcher     string
	onError           func(error)
	literalOptionKeys map[string]bool
}

// NewMessageFunctionContext assembles a call context; a nil literal-key
// set is normalized to empty.
func NewMessageFunctionContext(
	locales []string,
	source string,
	localeMatcher string,
	onError func(error),
	literalOptionKeys map[string]bool,
	dir string,
	id string,
) MessageFunctionContext {
	if literalOptionKeys == nil {
		literalOptionKeys = make(map[string]bool)
	}
	return MessageFunctionContext{
		dir:               dir,
		id:                id,
		source:            source,
		locales:           locales,
		localeMatcher:     localeMatcher,
		onError:           onError,
		literalOptionKeys: literalOptionKeys,
	}
}

func (ctx MessageFunctionContext) Dir() string           { return ctx.dir }
func (ctx MessageFunctionContext) ID() string            { return ctx.id }
func (ctx MessageFunctionContext) Source() string        { return ctx.source }
func (ctx MessageFunctionContext) Locales() []string     { return ctx.locales }
func (ctx MessageFunctionContext) LocaleMatcher() string { return ctx.localeMatcher }

// OnError reports a recoverable function error; safe with no handler set.
func (ctx MessageFunctionContext) OnError(err error) {
	if ctx.onError != nil {
		ctx.onError(err)
	}
}

// LiteralOptionKeys reports which option names were written as literals.
func (ctx MessageFunctionContext) LiteralOptionKeys() map[string]bool {
	return ctx.literalOptionKeys
}
