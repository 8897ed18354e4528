package functions

import (
	"fmt"

	"github.com/mf2compile/messageformat/pkg/errors"
	"github.com/mf2compile/messageformat/pkg/messagevalue"
)

// OffsetFunction implements :offset: shifts a numeric operand by the add
// or subtract option (exactly one required) and hands the result to the
// number pipeline — the MF1 plural-offset idiom as a standalone function.
func OffsetFunction(
	ctx MessageFunctionContext,
	options map[string]any,
	operand any,
) messagevalue.MessageValue {
	source := ctx.Source()

	input, err := readNumericOperand(operand, source)
	if err != nil {
		ctx.OnError(err)
		return messagevalue.NewFallbackValue(source, GetFirstLocale(ctx.Locales()))
	}

	add, subtract := -1, -1
	if raw, ok := options["add"]; ok {
		if n, err := asPositiveInteger(raw); err == nil {
			add = n
		} else {
			ctx.OnError(errors.NewBadOptionError(fmt.Sprintf("Value %v is not valid for :offset option add", raw), source))
			return messagevalue.NewFallbackValue(source, GetFirstLocale(ctx.Locales()))
		}
	}
	if raw, ok := options["subtract"]; ok {
		if n, err := asPositiveInteger(raw); err == nil {
			subtract = n
		} else {
			ctx.OnError(errors.NewBadOptionError(fmt.Sprintf("Value %v is not valid for :offset option subtract", raw), source))
			return messagevalue.NewFallbackValue(source, GetFirstLocale(ctx.Locales()))
		}
	}

	if (add < 0) == (subtract < 0) {
		ctx.OnError(errors.NewBadOptionError(`Exactly one of "add" or "subtract" is required as an :offset option`, source))
		return messagevalue.NewFallbackValue(source, GetFirstLocale(ctx.Locales()))
	}

	delta := add
	if add < 0 {
		delta = -subtract
	}

	shifted, ok := shiftNumeric(input.Value, delta)
	if !ok {
		ctx.OnError(errors.NewBadOperandError(fmt.Sprintf("Cannot apply offset to value of type %T", input.Value), source))
		return messagevalue.NewFallbackValue(source, GetFirstLocale(ctx.Locales()))
	}

	return NumberFunction(ctx, map[string]any{}, map[string]any{
		"valueOf": shifted,
		"options": input.Options,
	})
}
