package messagevalue

import (
	"github.com/mf2compile/messageformat/pkg/bidi"
)

// FallbackValue renders a failed placeholder as its braced surface form
// ("{$name}", "{:fn}", "{|lit|}"). It never matches any selection key.
type FallbackValue struct {
	source string
	locale string
	dir    bidi.Direction
}

func NewFallbackValue(source, locale string) *FallbackValue {
	return NewFallbackValueWithDir(source, locale, bidi.DirAuto)
}

func NewFallbackValueWithDir(source, locale string, dir bidi.Direction) *FallbackValue {
	return &FallbackValue{source: source, locale: locale, dir: dir}
}

func (fv *FallbackValue) Type() string                    { return "fallback" }
func (fv *FallbackValue) Source() string                  { return fv.source }
func (fv *FallbackValue) Dir() bidi.Direction             { return fv.dir }
func (fv *FallbackValue) Locale() string                  { return fv.locale }
func (fv *FallbackValue) Options() map[string]interface{} { return nil }

func (fv *FallbackValue) ToString() (string, error) {
	return "{" + fv.source + "}", nil
}

func (fv *FallbackValue) ToParts() ([]MessagePart, error) {
	return []MessagePart{NewFallbackPart(fv.source, fv.locale)}, nil
}

func (fv *FallbackValue) ValueOf() (interface{}, error) { return fv.source, nil }

func (fv *FallbackValue) SelectKeys([]string) ([]string, error) {
	return []string{}, nil
}
