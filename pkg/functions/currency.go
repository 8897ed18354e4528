package functions

import (
	"github.com/mf2compile/messageformat/pkg/errors"
	"github.com/mf2compile/messageformat/pkg/messagevalue"
)

var currencyOptions = optionSpec{
	fn: "currency",
	strings: optionNames("currency", "currencySign", "roundingMode",
		"roundingPriority", "trailingZeroDisplay", "useGrouping"),
	ints: optionNames("minimumIntegerDigits", "minimumSignificantDigits",
		"maximumSignificantDigits", "roundingIncrement"),
}

// CurrencyFunction implements the :currency draft function: a monetary
// amount with an ISO currency code, rendered through go-money's
// minor-unit handling. Currency values do not select. Beyond the shared
// numeric options it understands currencyDisplay (symbol/code/name;
// "never" is unsupported) and fractionDigits ("auto" or a digit count
// pinning both fraction bounds).
func CurrencyFunction(
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

	merged := make(map[string]interface{}, len(options)+2)
	for k, v := range input.Options {
		merged[k] = v
	}
	merged["localeMatcher"] = ctx.LocaleMatcher()
	merged["style"] = "currency"

	for name, value := range options {
		if value == nil {
			continue
		}
		if currencyOptions.coerce(ctx, merged, name, value) {
			continue
		}
		switch name {
		case "currencyDisplay":
			applyCurrencyDisplay(ctx, merged, value)
		case "fractionDigits":
			applyFractionDigits(ctx, merged, value)
		}
	}

	if _, ok := merged["currency"]; !ok {
		ctx.OnError(errors.NewBadOperandError("A currency code is required for :currency", source))
		return messagevalue.NewFallbackValue(source, GetFirstLocale(ctx.Locales()))
	}

	return getMessageNumber(ctx, input.Value, merged, false)
}

func applyCurrencyDisplay(ctx MessageFunctionContext, merged map[string]interface{}, value interface{}) {
	display, err := asString(value)
	if err != nil {
		currencyOptions.badOption(ctx, "currencyDisplay", value)
		return
	}
	if display == "never" {
		ctx.OnError(errors.NewMessageResolutionError(
			errors.ErrorTypeUnsupportedOperation,
			`Currency display "never" is not yet supported`,
			ctx.Source()))
		return
	}
	merged["currencyDisplay"] = display
}

// applyFractionDigits handles the fractionDigits option: "auto" clears
// any pinned fraction bounds, a digit count pins both.
func applyFractionDigits(ctx MessageFunctionContext, merged map[string]interface{}, value interface{}) {
	raw, err := asString(value)
	if err != nil {
		currencyOptions.badOption(ctx, "fractionDigits", value)
		return
	}
	if raw == "auto" {
		delete(merged, "minimumFractionDigits")
		delete(merged, "maximumFractionDigits")
		return
	}
	digits, err := asPositiveInteger(raw)
	if err != nil {
		currencyOptions.badOption(ctx, "fractionDigits", value)
		return
	}
	merged["minimumFractionDigits"] = digits
	merged["maximumFractionDigits"] = digits
}
