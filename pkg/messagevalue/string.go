package messagevalue

import (
	"golang.org/x/text/unicode/norm"

	"github.com/mf2compile/messageformat/pkg/bidi"
)

// StringValue is the MessageValue for string operands and :string results.
// Selection is NFC-normalized exact match.
type StringValue struct {
	value  string
	locale string
	dir    bidi.Direction
	source string
}

func NewStringValue(value, locale, source string) *StringValue {
	return NewStringValueWithDir(value, locale, source, bidi.DirAuto)
}

func NewStringValueWithDir(value, locale, source string, dir bidi.Direction) *StringValue {
	return &StringValue{value: value, locale: locale, dir: dir, source: source}
}

func (sv *StringValue) Type() string                    { return "string" }
func (sv *StringValue) Source() string                  { return sv.source }
func (sv *StringValue) Dir() bidi.Direction             { return sv.dir }
func (sv *StringValue) Locale() string                  { return sv.locale }
func (sv *StringValue) Options() map[string]interface{} { return nil }

func (sv *StringValue) ToString() (string, error)    { return sv.value, nil }
func (sv *StringValue) ValueOf() (interface{}, error) { return sv.value, nil }

func (sv *StringValue) ToParts() ([]MessagePart, error) {
	return []MessagePart{&StringPart{
		partMeta: partMeta{source: sv.source, locale: sv.locale, dir: sv.dir},
		value:    sv.value,
	}}, nil
}

// SelectKeys matches keys against the value under NFC normalization, so a
// key and value that differ only in composition form still match.
func (sv *StringValue) SelectKeys(keys []string) ([]string, error) {
	want := norm.NFC.String(sv.value)
	for _, key := range keys {
		if norm.NFC.String(key) == want {
			return []string{key}, nil
		}
	}
	return []string{}, nil
}

// StringPart is the single part a StringValue contributes.
type StringPart struct {
	partMeta
	value string
}

func (p *StringPart) Type() string       { return "string" }
func (p *StringPart) Value() interface{} { return p.value }
