package datamodel

import (
	"github.com/mf2compile/messageformat/internal/cst"
	"github.com/mf2compile/messageformat/pkg/errors"
)

// ParseMessage parses MF2 source text straight to the data model: one
// cst.Parse plus FromCST, surfacing the first syntax error if any.
func ParseMessage(source string) (Message, error) {
	parsed := cst.Parse(source, false)
	if errs := parsed.Errors(); len(errs) > 0 {
		first := errs[0]
		end := first.End
		return nil, errors.NewMessageSyntaxError(errors.ErrorTypeParseError, first.Start, &end, nil)
	}
	return FromCST(parsed)
}
