package functions

import (
	"github.com/mf2compile/messageformat/pkg/messagevalue"
)

// FallbackFunction wraps a failed expression's surface form as a fallback
// value; an empty source renders as U+FFFD.
func FallbackFunction(source string, locale string) messagevalue.MessageValue {
	if source == "" {
		source = "\ufffd"
	}
	return messagevalue.NewFallbackValue(source, locale)
}
