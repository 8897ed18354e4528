package messagevalue

import (
	"fmt"

	"github.com/mf2compile/messageformat/pkg/bidi"
)

// UnknownValue wraps an operand of a type the engine has no dedicated
// value for. It stringifies with %v and never selects.
type UnknownValue struct {
	source string
	value  interface{}
	locale string
}

func NewUnknownValue(source string, value interface{}, locale string) *UnknownValue {
	return &UnknownValue{source: source, value: value, locale: locale}
}

func (uv *UnknownValue) Type() string                    { return "unknown" }
func (uv *UnknownValue) Source() string                  { return uv.source }
func (uv *UnknownValue) Dir() bidi.Direction             { return bidi.DirAuto }
func (uv *UnknownValue) Locale() string                  { return uv.locale }
func (uv *UnknownValue) Options() map[string]interface{} { return nil }

func (uv *UnknownValue) ToString() (string, error) {
	return fmt.Sprintf("%v", uv.value), nil
}

func (uv *UnknownValue) ToParts() ([]MessagePart, error) {
	return []MessagePart{NewUnknownPart(uv.source, uv.value, uv.locale)}, nil
}

func (uv *UnknownValue) ValueOf() (interface{}, error) { return uv.value, nil }

func (uv *UnknownValue) SelectKeys([]string) ([]string, error) {
	return []string{}, nil
}

// UnknownPart carries the raw value through FormatToParts output.
type UnknownPart struct {
	partMeta
	value interface{}
}

func NewUnknownPart(source string, value interface{}, locale string) *UnknownPart {
	return &UnknownPart{
		partMeta: partMeta{source: source, locale: locale, dir: bidi.DirAuto},
		value:    value,
	}
}

func (p *UnknownPart) Type() string       { return "unknown" }
func (p *UnknownPart) Value() interface{} { return p.value }
