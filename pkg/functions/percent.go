package functions

import (
	"github.com/mf2compile/messageformat/pkg/messagevalue"
)

var percentOptions = optionSpec{
	fn: "percent",
	strings: optionNames("roundingMode", "roundingPriority", "signDisplay",
		"trailingZeroDisplay", "useGrouping"),
	ints: optionNames("minimumFractionDigits", "maximumFractionDigits",
		"minimumSignificantDigits", "maximumSignificantDigits"),
}

// PercentFunction implements the :percent draft function: the operand is
// scaled by 100 and suffixed with the percent sign by the number
// pipeline; selection works on the scaled value.
func PercentFunction(
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
	merged["style"] = "percent"

	for name, value := range options {
		if value == nil {
			continue
		}
		percentOptions.coerce(ctx, merged, name, value)
	}

	return getMessageNumber(ctx, input.Value, merged, true)
}
