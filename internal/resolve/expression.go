package resolve

import (
	"github.com/mf2compile/messageformat/pkg/datamodel"
	"github.com/mf2compile/messageformat/pkg/errors"
	"github.com/mf2compile/messageformat/pkg/messagevalue"
)

// ResolveExpression evaluates one placeholder: an annotated expression
// goes through its function, a bare literal or variable resolves
// directly. A malformed expression (no operand, no annotation) degrades
// to a fallback value.
func ResolveExpression(ctx *Context, expr *datamodel.Expression) messagevalue.MessageValue {
	if expr == nil {
		return messagevalue.NewFallbackValue("unknown", getFirstLocale(ctx.Locales))
	}

	if fn := expr.FunctionRef(); fn != nil {
		operand, _ := expr.Arg().(datamodel.Node)
		return ResolveFunctionRef(ctx, operand, fn)
	}

	switch arg := expr.Arg().(type) {
	case *datamodel.Literal:
		return ResolveLiteral(ctx, arg)
	case *datamodel.VariableRef:
		return ResolveVariableRef(ctx, arg)
	}

	log.Warn("expression with no operand and no annotation")
	if ctx.OnError != nil {
		ctx.OnError(errors.NewMessageResolutionError(
			errors.ErrorTypeUnsupportedOperation,
			"expression with no operand and no annotation", ""))
	}
	return messagevalue.NewFallbackValue("unknown", getFirstLocale(ctx.Locales))
}
