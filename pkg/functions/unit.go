package functions

import (
	"github.com/mf2compile/messageformat/pkg/errors"
	"github.com/mf2compile/messageformat/pkg/messagevalue"
)

var unitOptions = optionSpec{
	fn: "unit",
	strings: optionNames("signDisplay", "roundingMode", "roundingPriority",
		"trailingZeroDisplay", "unit", "unitDisplay", "useGrouping"),
	ints: optionNames("minimumIntegerDigits", "minimumFractionDigits",
		"maximumFractionDigits", "minimumSignificantDigits",
		"maximumSignificantDigits", "roundingIncrement"),
}

// UnitFunction implements the :unit draft function: a numeric amount with
// a unit identifier, rendered by the number pipeline in unit style. Unit
// values do not select.
func UnitFunction(
	ctx MessageFunctionContext,
	options map[string]interface{},
	operand interface{},
) messagevalue.MessageValue {
	source := ctx.Source()

	input, err := readNumericOperand(operand, source)
	if err != nil {
		ctx.OnError(err)
		return messagevalue.NewFallbackValue(source, GetFirstLocale(ctx.Locales()))
	}

	merged := mergeNumberOptions(input.Options, nil, ctx.LocaleMatcher())
	merged["style"] = "unit"

	for name, value := range options {
		if value == nil {
			continue
		}
		unitOptions.coerce(ctx, merged, name, value)
	}

	if _, ok := merged["unit"]; !ok {
		ctx.OnError(errors.NewBadOperandError("A unit identifier is required for :unit", source))
		return messagevalue.NewFallbackValue(source, GetFirstLocale(ctx.Locales()))
	}

	return getMessageNumber(ctx, input.Value, merged, false)
}
