package functions

import (
	"fmt"
	"math"
	"math/big"
	"strconv"

	"github.com/mf2compile/messageformat/pkg/bidi"
	"github.com/mf2compile/messageformat/pkg/errors"
	"github.com/mf2compile/messageformat/pkg/messagevalue"
)

// NumericInput is a parsed numeric operand: the value plus any options an
// object-form operand carried alongside it.
type NumericInput struct {
	Value   interface{}
	Options map[string]interface{}
}

// readNumericOperand accepts a numeric operand in any of its surface
// forms: a Go numeric, a decimal string, or a {"valueOf": n, "options":
// {...}} wrapper. Anything else is a bad-operand error.
func readNumericOperand(value interface{}, source string) (*NumericInput, error) {
	var carried map[string]interface{}

	if obj, ok := value.(map[string]interface{}); ok {
		if inner, ok := obj["valueOf"]; ok {
			if opts, ok := obj["options"].(map[string]interface{}); ok {
				carried = opts
			}
			value = inner
		}
	}

	if s, ok := value.(string); ok {
		parsed, err := parseDecimalString(s)
		if err != nil {
			return nil, errors.NewBadOperandError("Input is not numeric", source)
		}
		value = parsed
	}

	switch value.(type) {
	case int, int8, int16, int32, int64,
		uint, uint8, uint16, uint32, uint64,
		float32, float64,
		*big.Int, *big.Float:
		return &NumericInput{Value: value, Options: carried}, nil
	}
	return nil, errors.NewBadOperandError("Input is not numeric", source)
}

// parseDecimalString parses a decimal string with strconv, preferring the
// integer form; strconv.ParseFloat also accepts forms such as "+1", ".5",
// "Inf" and "NaN".
func parseDecimalString(s string) (interface{}, error) {
	if n, err := strconv.ParseInt(s, 10, 64); err == nil {
		return n, nil
	}
	if f, err := strconv.ParseFloat(s, 64); err == nil {
		return f, nil
	}
	return nil, fmt.Errorf("not a number: %q", s)
}

// NumberFunction implements :number — and the implicit lifting of bare
// numeric arguments. The result formats in decimal style and selects by
// exact match then plural category.
func NumberFunction(
	ctx MessageFunctionContext,
	options map[string]interface{},
	operand interface{},
) messagevalue.MessageValue {
	input, err := readNumericOperand(operand, ctx.Source())
	if err != nil {
		ctx.OnError(err)
		return messagevalue.NewFallbackValue(ctx.Source(), GetFirstLocale(ctx.Locales()))
	}

	merged := mergeNumberOptions(input.Options, options, ctx.LocaleMatcher())
	return getMessageNumber(ctx, input.Value, merged, true)
}

// IntegerFunction implements :integer: the operand rounds to an integer
// and formats with no fraction digits.
func IntegerFunction(
	ctx MessageFunctionContext,
	options map[string]interface{},
	operand interface{},
) messagevalue.MessageValue {
	input, err := readNumericOperand(operand, ctx.Source())
	if err != nil {
		ctx.OnError(err)
		return messagevalue.NewFallbackValue(ctx.Source(), GetFirstLocale(ctx.Locales()))
	}

	merged := mergeNumberOptions(input.Options, options, ctx.LocaleMatcher())
	merged["maximumFractionDigits"] = 0
	return getMessageNumber(ctx, roundToInteger(input.Value), merged, true)
}

func roundToInteger(value interface{}) interface{} {
	switch v := value.(type) {
	case float64:
		if isFinite(v) {
			return int64(math.Round(v))
		}
	case float32:
		if isFinite(float64(v)) {
			return int64(math.Round(float64(v)))
		}
	case *big.Float:
		if !v.IsInf() {
			half := big.NewFloat(0.5)
			if v.Sign() < 0 {
				half.Neg(half)
			}
			n, _ := new(big.Float).Add(v, half).Int64()
			return n
		}
	}
	return value
}

func isFinite(f float64) bool {
	return !math.IsInf(f, 0) && !math.IsNaN(f)
}

// getMessageNumber wraps a numeric value for formatting and selection.
// The select option must come from a literal: a variable-valued select
// reports bad-option and disables selection on the result.
func getMessageNumber(
	ctx MessageFunctionContext,
	value interface{},
	options map[string]interface{},
	canSelect bool,
) messagevalue.MessageValue {
	if canSelect {
		if selectVal, ok := options["select"]; ok {
			if !ctx.LiteralOptionKeys()["select"] {
				ctx.OnError(errors.NewBadOptionError(
					"The option select may only be set by a literal value", ctx.Source()))
				canSelect = false
			} else if s, ok := selectVal.(string); ok && s != "exact" && s != "cardinal" && s != "ordinal" {
				ctx.OnError(errors.NewBadOptionError("invalid select value: "+s, ctx.Source()))
			}
		}
	}

	locale := GetFirstLocale(ctx.Locales())
	dir := bidi.GetLocaleDirection(locale)
	if ctx.Dir() != "" {
		dir = bidi.ParseDirection(ctx.Dir())
	}
	return messagevalue.NewNumberValueWithSelection(value, locale, ctx.Source(), dir, options, canSelect)
}

// numberOptionSpec covers the options :number and :integer share.
var numberOptionSpec = optionSpec{
	fn: "number",
	strings: optionNames("roundingMode", "roundingPriority", "select",
		"signDisplay", "trailingZeroDisplay", "useGrouping", "style"),
	ints: optionNames("minimumIntegerDigits", "minimumFractionDigits",
		"maximumFractionDigits", "minimumSignificantDigits",
		"maximumSignificantDigits", "roundingIncrement"),
}

// mergeNumberOptions layers operand-carried options under expression
// options, coercing each recognized expression option. Uncoercible or
// unrecognized expression options are dropped silently — the number
// pipeline reads only what it knows.
func mergeNumberOptions(
	operandOptions map[string]interface{},
	exprOptions map[string]interface{},
	localeMatcher string,
) map[string]interface{} {
	merged := map[string]interface{}{
		"localeMatcher": localeMatcher,
		"style":         "decimal",
	}
	for k, v := range operandOptions {
		merged[k] = v
	}
	for k, v := range exprOptions {
		if k == "locale" {
			continue
		}
		switch {
		case numberOptionSpec.strings[k]:
			if s, err := asString(v); err == nil {
				merged[k] = s
			}
		case numberOptionSpec.ints[k]:
			if n, err := asPositiveInteger(v); err == nil {
				merged[k] = n
			}
		}
	}
	return merged
}
