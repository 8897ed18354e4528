package resolve

import (
	"github.com/mf2compile/messageformat/pkg/datamodel"
	"github.com/mf2compile/messageformat/pkg/functions"
	"github.com/mf2compile/messageformat/pkg/messagevalue"
)

// ResolveLiteral turns a literal operand into a string value by routing it
// through the :string function, so literals and string arguments share one
// code path. The fallback source keeps the literal's |quoted| form.
func ResolveLiteral(ctx *Context, literal *datamodel.Literal) messagevalue.MessageValue {
	source := getValueSource(literal)

	stringFn, ok := ctx.Functions["string"]
	if !ok {
		return messagevalue.NewStringValue(literal.Value(), getFirstLocale(ctx.Locales), source)
	}

	msgCtx := functions.NewMessageFunctionContext(ctx.Locales, source, ctx.LocaleMatcher, ctx.OnError, nil, "", "")
	return stringFn(msgCtx, make(map[string]interface{}), literal.Value())
}
