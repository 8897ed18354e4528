package functions

import (
	"github.com/mf2compile/messageformat/pkg/messagevalue"
)

// UnknownFunction wraps an operand no value kind claims, keeping it
// formattable via its %v rendering.
func UnknownFunction(source string, input any, locale string) messagevalue.MessageValue {
	return messagevalue.NewUnknownValue(source, input, locale)
}
