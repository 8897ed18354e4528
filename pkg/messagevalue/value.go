// Package messagevalue defines MessageValue — the resolved, formattable
// result of evaluating an expression — and the MessagePart types that
// FormatToParts emits. Built-in value kinds cover strings, numbers,
// datetimes, fallbacks, and unknown operands; custom functions return
// their own implementations of the same interface.
package messagevalue

import (
	"github.com/mf2compile/messageformat/pkg/bidi"
)

// MessageValue is a resolved expression value: it can render itself as a
// string or parts, expose its operand and options, and rank variant keys
// when used as a selector.
type MessageValue interface {
	Type() string
	Source() string
	Dir() bidi.Direction
	Locale() string
	Options() map[string]interface{}

	ToString() (string, error)
	ToParts() ([]MessagePart, error)
	ValueOf() (interface{}, error)

	// SelectKeys returns the ordered subset of keys this value prefers,
	// most specific first; an error when the value cannot select.
	SelectKeys(keys []string) ([]string, error)
}

// MessagePart is one typed span of FormatToParts output.
type MessagePart interface {
	Type() string
	Value() interface{}
	Source() string
	Locale() string
	Dir() bidi.Direction
}

// partMeta carries the source/locale/direction triple every concrete part
// exposes.
type partMeta struct {
	source string
	locale string
	dir    bidi.Direction
}

func (m partMeta) Source() string      { return m.source }
func (m partMeta) Locale() string      { return m.locale }
func (m partMeta) Dir() bidi.Direction { return m.dir }

// TextPart is a literal text run of the pattern.
type TextPart struct {
	partMeta
	value string
}

func NewTextPart(value, source, locale string) *TextPart {
	return &TextPart{
		partMeta: partMeta{source: source, locale: locale, dir: bidi.DirAuto},
		value:    value,
	}
}

func (p *TextPart) Type() string       { return "text" }
func (p *TextPart) Value() interface{} { return p.value }

// BidiIsolationPart is one isolation control character (LRI, RLI, FSI, or
// PDI) inserted around a placeholder.
type BidiIsolationPart struct {
	partMeta
	value string
}

func NewBidiIsolationPart(value string) *BidiIsolationPart {
	return &BidiIsolationPart{partMeta: partMeta{dir: bidi.DirAuto}, value: value}
}

func (p *BidiIsolationPart) Type() string       { return "bidiIsolation" }
func (p *BidiIsolationPart) Value() interface{} { return p.value }

// MarkupPart marks an open/standalone/close markup element. It carries no
// text; consumers map it onto their own structure.
type MarkupPart struct {
	partMeta
	kind    string
	name    string
	options map[string]interface{}
}

func NewMarkupPart(kind, name, source string, options map[string]interface{}) *MarkupPart {
	if options == nil {
		options = make(map[string]interface{})
	}
	return &MarkupPart{
		partMeta: partMeta{source: source, dir: bidi.DirAuto},
		kind:     kind,
		name:     name,
		options:  options,
	}
}

func (p *MarkupPart) Type() string                    { return "markup" }
func (p *MarkupPart) Value() interface{}              { return p.name }
func (p *MarkupPart) Kind() string                    { return p.kind }
func (p *MarkupPart) Name() string                    { return p.name }
func (p *MarkupPart) Options() map[string]interface{} { return p.options }

// FallbackPart renders an unresolvable placeholder as its braced surface
// form.
type FallbackPart struct {
	partMeta
}

func NewFallbackPart(source, locale string) *FallbackPart {
	return &FallbackPart{partMeta: partMeta{source: source, locale: locale, dir: bidi.DirAuto}}
}

func (p *FallbackPart) Type() string       { return "fallback" }
func (p *FallbackPart) Value() interface{} { return "{" + p.source + "}" }
