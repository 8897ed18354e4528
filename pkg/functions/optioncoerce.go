package functions

import (
	"fmt"

	"github.com/mf2compile/messageformat/pkg/errors"
)

// optionSpec names which of a numeric function's options coerce to
// strings and which to non-negative integers; anything else is left to
// the function's own switch (or ignored).
type optionSpec struct {
	fn      string // function name, for error messages
	strings map[string]bool
	ints    map[string]bool
}

func optionNames(names ...string) map[string]bool {
	set := make(map[string]bool, len(names))
	for _, name := range names {
		set[name] = true
	}
	return set
}

// coerce applies the spec to one option, writing the coerced value into
// merged. Returns false when the spec does not cover the name; a covered
// name with an uncoercible value reports bad-option and is dropped.
func (spec optionSpec) coerce(ctx MessageFunctionContext, merged map[string]any, name string, value any) bool {
	switch {
	case spec.strings[name]:
		if s, err := asString(value); err == nil {
			merged[name] = s
		} else {
			spec.badOption(ctx, name, value)
		}
		return true
	case spec.ints[name]:
		if n, err := asPositiveInteger(value); err == nil {
			merged[name] = n
		} else {
			spec.badOption(ctx, name, value)
		}
		return true
	}
	return false
}

func (spec optionSpec) badOption(ctx MessageFunctionContext, name string, value any) {
	msg := fmt.Sprintf("Value %v is not valid for :%s option %s", value, spec.fn, name)
	ctx.OnError(errors.NewBadOptionError(msg, ctx.Source()))
}
