package functions

import (
	"math/big"

	"github.com/mf2compile/messageformat/pkg/errors"
	"github.com/mf2compile/messageformat/pkg/messagevalue"
)

// MathFunction implements the :math draft function: integer addition or
// subtraction on a numeric operand, delegating the result to :number for
// formatting and selection. Exactly one of the add/subtract options must
// be present.
func MathFunction(
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

	delta, ok := mathDelta(ctx, options)
	if !ok {
		return messagevalue.NewFallbackValue(source, GetFirstLocale(ctx.Locales()))
	}

	shifted, ok := shiftNumeric(input.Value, delta)
	if !ok {
		ctx.OnError(errors.NewBadOperandError("Cannot perform math operation on non-numeric value", source))
		return messagevalue.NewFallbackValue(source, GetFirstLocale(ctx.Locales()))
	}

	// Re-wrap so NumberFunction sees the operand's original options.
	return NumberFunction(ctx, map[string]any{}, map[string]any{
		"valueOf": shifted,
		"options": input.Options,
	})
}

// mathDelta reads the add/subtract pair: exactly one must be present and
// be a non-negative integer.
func mathDelta(ctx MessageFunctionContext, options map[string]any) (int, bool) {
	source := ctx.Source()
	add, subtract := -1, -1

	if raw, ok := options["add"]; ok {
		n, err := asPositiveInteger(raw)
		if err != nil {
			ctx.OnError(errors.NewBadOptionError("Invalid add option: "+err.Error(), source))
			return 0, false
		}
		add = n
	}
	if raw, ok := options["subtract"]; ok {
		n, err := asPositiveInteger(raw)
		if err != nil {
			ctx.OnError(errors.NewBadOptionError("Invalid subtract option: "+err.Error(), source))
			return 0, false
		}
		subtract = n
	}

	if (add < 0) == (subtract < 0) {
		ctx.OnError(errors.NewBadOptionError(`Exactly one of "add" or "subtract" is required as a :math option`, source))
		return 0, false
	}
	if add >= 0 {
		return add, true
	}
	return -subtract, true
}

// shiftNumeric adds delta to a numeric value, preserving its kind.
func shiftNumeric(value any, delta int) (any, bool) {
	switch v := value.(type) {
	case int:
		return v + delta, true
	case int64:
		return v + int64(delta), true
	case float64:
		return v + float64(delta), true
	case float32:
		return float64(v) + float64(delta), true
	case *big.Int:
		return new(big.Int).Add(v, big.NewInt(int64(delta))), true
	case *big.Float:
		return new(big.Float).Add(v, big.NewFloat(float64(delta))), true
	}
	if f, ok := convertToFloat64(value); ok {
		return f + float64(delta), true
	}
	return nil, false
}

// convertToFloat64 widens the basic numeric kinds.
func convertToFloat64(value any) (float64, bool) {
	switch v := value.(type) {
	case int:
		return float64(v), true
	case int64:
		return float64(v), true
	case float64:
		return v, true
	case float32:
		return float64(v), true
	}
	return 0, false
}
