package functions

import (
	"fmt"

	"github.com/mf2compile/messageformat/pkg/bidi"
	"github.com/mf2compile/messageformat/pkg/messagevalue"
)

// StringFunction implements :string — and the implicit lifting of bare
// string arguments. The operand stringifies through its MessageValue
// rendering when it already is one, %v otherwise; selection on the result
// is NFC exact match.
func StringFunction(
	ctx MessageFunctionContext,
	options map[string]any,
	operand any,
) messagevalue.MessageValue {
	var text string
	switch v := operand.(type) {
	case nil:
		text = ""
	case messagevalue.MessageValue:
		s, err := v.ToString()
		if err != nil {
			text = fmt.Sprintf("%v", operand)
		} else {
			text = s
		}
	default:
		text = fmt.Sprintf("%v", operand)
	}

	locale := GetFirstLocale(ctx.Locales())
	if l, ok := options["locale"].(string); ok {
		locale = l
	}

	return messagevalue.NewStringValueWithDir(text, locale, ctx.Source(), bidi.ParseDirection(ctx.Dir()))
}
